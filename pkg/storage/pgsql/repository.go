// Copyright 2022 The jackal Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pgsqlrepository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// noLoadBalancePrefix pins write statements to the primary when running behind pgpool.
const noLoadBalancePrefix = "/*NO LOAD BALANCE*/"

func init() {
	sq.StatementBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

type conn interface {
	sq.BaseRunner
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Config contains PostgreSQL configuration parameters.
type Config struct {
	Host            string        `fig:"host" default:"localhost:5432"`
	User            string        `fig:"user"`
	Password        string        `fig:"password"`
	Database        string        `fig:"database"`
	SSLMode         string        `fig:"ssl_mode" default:"disable"`
	MaxOpenConns    int           `fig:"max_open_conns"`
	MaxIdleConns    int           `fig:"max_idle_conns"`
	ConnMaxLifetime time.Duration `fig:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `fig:"conn_max_idle_time"`
}

// Repository stores users, offline queues and server properties in PostgreSQL.
// Tables are created by sql/postgres.up.psql.
type Repository struct {
	conn conn

	host   string
	dsn    string
	cfg    Config
	db     *sql.DB
	logger kitlog.Logger
}

// New returns a Repository for cfg. The connection pool is opened on Start.
func New(cfg Config, logger kitlog.Logger) *Repository {
	dsn := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s", cfg.User, cfg.Password, cfg.Host, cfg.Database, cfg.SSLMode)
	return &Repository{
		host:   cfg.Host,
		dsn:    dsn,
		cfg:    cfg,
		logger: kitlog.With(logger, "repository", "pgsql"),
	}
}

// Start satisfies repository.Repository interface.
func (r *Repository) Start(ctx context.Context) error {
	db, err := sql.Open("postgres", r.dsn)
	if err != nil {
		return fmt.Errorf("pgsqlrepository: failed to start PgSQL connection: %w", err)
	}
	db.SetMaxIdleConns(r.cfg.MaxIdleConns)
	db.SetMaxOpenConns(r.cfg.MaxOpenConns)
	db.SetConnMaxIdleTime(r.cfg.ConnMaxIdleTime)
	db.SetConnMaxLifetime(r.cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("pgsqlrepository: unable to verify PgSQL connection: %w", err)
	}
	r.bind(db)

	level.Info(r.logger).Log("msg", "dialed PgSQL connection", "host", r.host)
	return nil
}

// Stop satisfies repository.Repository interface.
func (r *Repository) Stop(_ context.Context) error {
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("pgsqlrepository: failed to close PgSQL connection: %w", err)
	}
	level.Info(r.logger).Log("msg", "closed PgSQL connection", "host", r.host)
	return nil
}

func (r *Repository) bind(db *sql.DB) {
	r.db = db
	r.conn = db
}

// write runs a mutating statement on the primary.
func (r *Repository) write(ctx context.Context, q sq.Sqlizer) error {
	query, args, err := q.ToSql()
	if err != nil {
		return err
	}
	_, err = r.conn.ExecContext(ctx, noLoadBalancePrefix+" "+query, args...)
	return err
}

// scanInt runs a query returning a single integer column.
func (r *Repository) scanInt(ctx context.Context, q sq.SelectBuilder) (n int, err error) {
	err = q.RunWith(r.conn).QueryRowContext(ctx).Scan(&n)
	return
}

func (r *Repository) closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		level.Warn(r.logger).Log("msg", "failed to close rows", "err", err)
	}
}

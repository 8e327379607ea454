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

package boltdb

import (
	"context"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	bolt "go.etcd.io/bbolt"
)

// Config contains embedded store configuration.
type Config struct {
	Path string `fig:"path" default:".jackal-muc.db"`
}

// Repository stores users, offline queues and server properties in a single bbolt file.
type Repository struct {
	cfg    Config
	db     *bolt.DB
	logger kitlog.Logger
}

// New returns a Repository backed by the file at cfg.Path. The file is opened on Start.
func New(cfg Config, logger kitlog.Logger) *Repository {
	return &Repository{
		cfg:    cfg,
		logger: kitlog.With(logger, "repository", "boltdb"),
	}
}

// Start satisfies repository.Repository interface.
func (r *Repository) Start(_ context.Context) error {
	db, err := bolt.Open(r.cfg.Path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return err
	}
	r.db = db

	level.Info(r.logger).Log("msg", "opened embedded repository", "path", r.cfg.Path)
	return nil
}

// Stop satisfies repository.Repository interface.
func (r *Repository) Stop(_ context.Context) error {
	if err := r.db.Close(); err != nil {
		return err
	}
	level.Info(r.logger).Log("msg", "closed embedded repository")
	return nil
}

func (r *Repository) update(fn func(bs buckets) error) error {
	return r.db.Update(func(tx *bolt.Tx) error { return fn(buckets{tx: tx}) })
}

func (r *Repository) view(fn func(bs buckets) error) error {
	return r.db.View(func(tx *bolt.Tx) error { return fn(buckets{tx: tx}) })
}

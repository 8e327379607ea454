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
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	usermodel "github.com/ortuman/jackal-muc/pkg/model/user"
)

const usersTable = "users"

// UpsertUser satisfies repository.User interface.
// An already registered user keeps its original registration time.
func (r *Repository) UpsertUser(ctx context.Context, user *usermodel.User) error {
	regAt := user.RegisteredAt
	if regAt.IsZero() {
		regAt = time.Now()
	}
	return r.write(ctx, sq.Insert(usersTable).
		Columns("username", "registered_at").
		Values(user.Username, regAt.UTC()).
		Suffix("ON CONFLICT (username) DO NOTHING"),
	)
}

// DeleteUser satisfies repository.User interface.
func (r *Repository) DeleteUser(ctx context.Context, username string) error {
	return r.write(ctx, sq.Delete(usersTable).Where(sq.Eq{"username": username}))
}

// FetchUser satisfies repository.User interface.
func (r *Repository) FetchUser(ctx context.Context, username string) (*usermodel.User, error) {
	var usr usermodel.User

	err := sq.Select("username", "registered_at").
		From(usersTable).
		Where(sq.Eq{"username": username}).
		RunWith(r.conn).
		QueryRowContext(ctx).
		Scan(&usr.Username, &usr.RegisteredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &usr, nil
}

// UserExists satisfies repository.User interface.
func (r *Repository) UserExists(ctx context.Context, username string) (bool, error) {
	n, err := r.scanInt(ctx, sq.Select("COUNT(*)").From(usersTable).Where(sq.Eq{"username": username}))
	return n > 0, err
}

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

	sq "github.com/Masterminds/squirrel"
)

const propertiesTable = "properties"

// UpsertProperty satisfies repository.Properties interface.
func (r *Repository) UpsertProperty(ctx context.Context, key, value string) error {
	return r.write(ctx, sq.Insert(propertiesTable).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = $2"),
	)
}

// FetchProperty satisfies repository.Properties interface.
func (r *Repository) FetchProperty(ctx context.Context, key string) (string, bool, error) {
	var value string

	err := sq.Select("value").
		From(propertiesTable).
		Where(sq.Eq{"key": key}).
		RunWith(r.conn).
		QueryRowContext(ctx).
		Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// DeleteProperty satisfies repository.Properties interface.
func (r *Repository) DeleteProperty(ctx context.Context, key string) error {
	return r.write(ctx, sq.Delete(propertiesTable).Where(sq.Eq{"key": key}))
}

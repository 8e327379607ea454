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
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackal-xmpp/stravaganza/v2"
	xmpputil "github.com/ortuman/jackal-muc/pkg/util/xmpp"
)

const offlineMessagesTable = "offline_messages"

// InsertOfflineMessage satisfies repository.Offline interface.
func (r *Repository) InsertOfflineMessage(ctx context.Context, message *stravaganza.Message, username string) error {
	b, err := xmpputil.MarshalStanza(message)
	if err != nil {
		return err
	}
	return r.write(ctx, sq.Insert(offlineMessagesTable).
		Columns("username", "message", "size").
		Values(username, b, xmpputil.SerializedSize(message)),
	)
}

// CountOfflineMessages satisfies repository.Offline interface.
func (r *Repository) CountOfflineMessages(ctx context.Context, username string) (int, error) {
	return r.scanInt(ctx, sq.Select("COUNT(*)").From(offlineMessagesTable).Where(sq.Eq{"username": username}))
}

// OfflineMessagesSize satisfies repository.Offline interface.
func (r *Repository) OfflineMessagesSize(ctx context.Context, username string) (int, error) {
	return r.scanInt(ctx, sq.Select("COALESCE(SUM(size), 0)").From(offlineMessagesTable).Where(sq.Eq{"username": username}))
}

// FetchOfflineMessages satisfies repository.Offline interface.
// Messages are returned in insertion order.
func (r *Repository) FetchOfflineMessages(ctx context.Context, username string) ([]*stravaganza.Message, error) {
	rows, err := sq.Select("message").
		From(offlineMessagesTable).
		Where(sq.Eq{"username": username}).
		OrderBy("id").
		RunWith(r.conn).
		QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer r.closeRows(rows)

	var messages []*stravaganza.Message
	for rows.Next() {
		var b []byte
		if err := rows.Scan(&b); err != nil {
			return nil, err
		}
		stanza, err := xmpputil.UnmarshalStanza(b)
		if err != nil {
			return nil, err
		}
		msg, ok := stanza.(*stravaganza.Message)
		if !ok {
			return nil, fmt.Errorf("pgsqlrepository: offline queue of %s holds a %s stanza", username, stanza.Name())
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// DeleteOfflineMessages satisfies repository.Offline interface.
func (r *Repository) DeleteOfflineMessages(ctx context.Context, username string) error {
	return r.write(ctx, sq.Delete(offlineMessagesTable).Where(sq.Eq{"username": username}))
}

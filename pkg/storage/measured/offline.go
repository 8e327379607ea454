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

package measuredrepository

import (
	"context"

	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/ortuman/jackal-muc/pkg/storage/repository"
)

type measuredOfflineRep struct {
	rep repository.Offline
}

func (m *measuredOfflineRep) InsertOfflineMessage(ctx context.Context, message *stravaganza.Message, username string) error {
	return observe(offlineEntity, upsertOp, func() error {
		return m.rep.InsertOfflineMessage(ctx, message, username)
	})
}

func (m *measuredOfflineRep) CountOfflineMessages(ctx context.Context, username string) (int, error) {
	return observeValue(offlineEntity, fetchOp, func() (int, error) {
		return m.rep.CountOfflineMessages(ctx, username)
	})
}

func (m *measuredOfflineRep) OfflineMessagesSize(ctx context.Context, username string) (int, error) {
	return observeValue(offlineEntity, fetchOp, func() (int, error) {
		return m.rep.OfflineMessagesSize(ctx, username)
	})
}

func (m *measuredOfflineRep) FetchOfflineMessages(ctx context.Context, username string) ([]*stravaganza.Message, error) {
	return observeValue(offlineEntity, fetchOp, func() ([]*stravaganza.Message, error) {
		return m.rep.FetchOfflineMessages(ctx, username)
	})
}

func (m *measuredOfflineRep) DeleteOfflineMessages(ctx context.Context, username string) error {
	return observe(offlineEntity, deleteOp, func() error {
		return m.rep.DeleteOfflineMessages(ctx, username)
	})
}

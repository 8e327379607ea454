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
	"encoding/binary"

	"github.com/golang/protobuf/proto"
	"github.com/jackal-xmpp/stravaganza/v2"
	xmpputil "github.com/ortuman/jackal-muc/pkg/util/xmpp"
)

// offlineSizeBucket keeps the accumulated serialized size of every user queue, keyed by username.
const offlineSizeBucket = "offline_size"

// InsertOfflineMessage satisfies repository.Offline interface.
func (r *Repository) InsertOfflineMessage(_ context.Context, message *stravaganza.Message, username string) error {
	b, err := xmpputil.MarshalStanza(message)
	if err != nil {
		return err
	}
	return r.update(func(bs buckets) error {
		if err := bs.append(offlineBucket(username), b); err != nil {
			return err
		}
		size := queueSize(bs, username) + xmpputil.SerializedSize(message)
		return bs.put(offlineSizeBucket, username, uint64Bytes(uint64(size)))
	})
}

// CountOfflineMessages satisfies repository.Offline interface.
func (r *Repository) CountOfflineMessages(_ context.Context, username string) (n int, err error) {
	err = r.view(func(bs buckets) error {
		n = bs.count(offlineBucket(username))
		return nil
	})
	return
}

// OfflineMessagesSize satisfies repository.Offline interface.
func (r *Repository) OfflineMessagesSize(_ context.Context, username string) (size int, err error) {
	err = r.view(func(bs buckets) error {
		size = queueSize(bs, username)
		return nil
	})
	return
}

// FetchOfflineMessages satisfies repository.Offline interface.
func (r *Repository) FetchOfflineMessages(_ context.Context, username string) (messages []*stravaganza.Message, err error) {
	err = r.view(func(bs buckets) error {
		return bs.each(offlineBucket(username), func(_, b []byte) error {
			var elem stravaganza.PBElement
			if err := proto.Unmarshal(b, &elem); err != nil {
				return err
			}
			msg, err := stravaganza.NewBuilderFromProto(&elem).BuildMessage()
			if err != nil {
				return err
			}
			messages = append(messages, msg)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// DeleteOfflineMessages satisfies repository.Offline interface.
func (r *Repository) DeleteOfflineMessages(_ context.Context, username string) error {
	return r.update(func(bs buckets) error {
		if err := bs.drop(offlineBucket(username)); err != nil {
			return err
		}
		return bs.del(offlineSizeBucket, username)
	})
}

func queueSize(bs buckets, username string) int {
	b := bs.get(offlineSizeBucket, username)
	if len(b) != 8 {
		return 0
	}
	return int(binary.BigEndian.Uint64(b))
}

func offlineBucket(username string) string { return "offline:" + username }

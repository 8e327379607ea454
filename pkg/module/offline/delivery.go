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

package offline

import (
	"context"

	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/ortuman/jackal-muc/pkg/interceptor"
)

// Interceptor returns the interceptor that flushes a user offline queue
// as soon as an available presence with non-negative priority is received from them.
func (s *Strategy) Interceptor() interceptor.Interceptor {
	return interceptor.NewDispatcher().
		On(interceptor.Incoming, interceptor.Unprocessed, interceptor.PresenceKind, s.onPresence)
}

func (s *Strategy) onPresence(ctx context.Context, stanza stravaganza.Stanza, session interceptor.Session) error {
	pr := stanza.(*stravaganza.Presence)
	if !pr.IsAvailable() || pr.Priority() < 0 {
		return nil
	}
	username := session.Username()
	if len(username) == 0 {
		return nil
	}
	// directed presences never trigger delivery
	if toJID := pr.ToJID(); toJID != nil && (toJID.Node() != username || !s.hosts.IsLocalHost(toJID.Domain())) {
		return nil
	}
	if err := s.DeliverOfflineMessages(ctx, username); err != nil {
		level.Warn(s.logger).Log("msg", "failed to deliver offline messages", "username", username, "err", err)
	}
	return nil
}

// DeliverOfflineMessages flushes username offline queue routing every stored message.
func (s *Strategy) DeliverOfflineMessages(ctx context.Context, username string) error {
	lock, err := s.locker.AcquireLock(ctx, offlineQueueLockID(username))
	if err != nil {
		return err
	}
	msgs, err := s.rep.FetchOfflineMessages(ctx, username)
	if err != nil {
		_ = lock.Release(ctx)
		return err
	}
	if len(msgs) == 0 {
		return lock.Release(ctx)
	}
	if err := s.rep.DeleteOfflineMessages(ctx, username); err != nil {
		_ = lock.Release(ctx)
		return err
	}
	// routing may end up storing messages again, so queue lock must be released first
	if err := lock.Release(ctx); err != nil {
		return err
	}
	for _, msg := range msgs {
		if err := s.rt.RoutePacket(ctx, msg.ToJID(), msg, false); err != nil {
			level.Debug(s.logger).Log("msg", "failed to route offline message", "username", username, "err", err)
		}
	}
	offlineMessages.WithLabelValues("delivered").Add(float64(len(msgs)))

	level.Info(s.logger).Log("msg", "delivered offline messages", "queue_size", len(msgs), "username", username)
	return nil
}

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
	"fmt"

	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/stravaganza/v2"
)

// Listener is notified about offline strategy actions.
type Listener interface {
	// MessageStored is invoked after msg has been stored in its recipient offline queue.
	MessageStored(ctx context.Context, msg *stravaganza.Message) error

	// MessageBounced is invoked after msg has been bounced back to its sender.
	MessageBounced(ctx context.Context, msg *stravaganza.Message) error
}

// AddListener registers l to be notified about stored and bounced messages.
func (s *Strategy) AddListener(l Listener) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, l)
}

// RemoveListener unregisters l.
func (s *Strategy) RemoveListener(l Listener) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	for i, sl := range s.listeners {
		if sl != l {
			continue
		}
		s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
		return
	}
}

func (s *Strategy) notifyStored(msg *stravaganza.Message) {
	s.notify("stored", msg, Listener.MessageStored)
}

func (s *Strategy) notifyBounced(msg *stravaganza.Message) {
	s.notify("bounced", msg, Listener.MessageBounced)
}

func (s *Strategy) notify(event string, msg *stravaganza.Message, fn func(Listener, context.Context, *stravaganza.Message) error) {
	s.listenersMu.RLock()
	listeners := s.listeners
	s.listenersMu.RUnlock()

	if len(listeners) == 0 {
		return
	}
	s.rq.Run(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ListenerTimeout)
		defer cancel()

		for _, l := range listeners {
			if err := s.invokeListener(ctx, l, msg, fn); err != nil {
				level.Warn(s.logger).Log("msg", "offline listener failed", "event", event, "listener", fmt.Sprintf("%T", l), "err", err)
			}
		}
	})
}

func (s *Strategy) invokeListener(ctx context.Context, l Listener, msg *stravaganza.Message, fn func(Listener, context.Context, *stravaganza.Message) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("offline: listener panicked: %v", r)
		}
	}()
	return fn(l, ctx, msg)
}

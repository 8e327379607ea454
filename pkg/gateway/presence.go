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

package gateway

import (
	"context"

	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/ortuman/jackal-muc/pkg/interceptor"
)

// Interceptor returns an interceptor that opens and closes legacy sessions following
// the presence users send to transport domains.
func (r *SessionRouter) Interceptor() interceptor.Interceptor {
	return interceptor.NewDispatcher().
		On(interceptor.Incoming, interceptor.Processed, interceptor.PresenceKind, r.onPresence)
}

func (r *SessionRouter) onPresence(ctx context.Context, stanza stravaganza.Stanza, _ interceptor.Session) error {
	pr, ok := stanza.(*stravaganza.Presence)
	if !ok {
		return nil
	}
	toJID, fromJID := pr.ToJID(), pr.FromJID()
	if toJID == nil || fromJID == nil {
		return nil
	}
	t := r.reg.TransportByDomain(toJID.Domain())
	if t == nil || t.LoginHandler == nil {
		return nil
	}
	var err error
	switch {
	case pr.IsAvailable():
		if r.IsLocal(t.Name, fromJID) {
			return nil
		}
		err = r.Login(ctx, t.Name, fromJID, pr)
	case pr.Attribute(stravaganza.Type) == stravaganza.UnavailableType:
		err = r.Logout(ctx, t.Name, fromJID)
	default:
		return nil
	}
	// the stanza was already delivered, so session errors are only logged
	if err != nil {
		level.Warn(r.logger).Log("msg", "failed to follow transport presence", "transport", t.Name, "jid", fromJID.String(), "err", err)
	}
	return nil
}

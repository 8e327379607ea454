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
	"errors"
	"fmt"
	"strings"
	"sync"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	"github.com/ortuman/jackal-muc/pkg/c2s"
	"github.com/ortuman/jackal-muc/pkg/cluster/instance"
	"github.com/ortuman/jackal-muc/pkg/cluster/ownership"
)

// SessionKeyPrefix is the ownership key prefix of legacy network sessions.
const SessionKeyPrefix = "gw://"

// ErrSessionOwnedElsewhere is returned when a legacy session is already open on a different cluster node.
var ErrSessionOwnedElsewhere = errors.New("gateway: session owned by another node")

type ownershipManager interface {
	RegisterOwner(o ownership.Owner)
	Claim(ctx context.Context, key string, payload []byte) error
	Release(ctx context.Context, key string) error
	Lookup(ctx context.Context, key string) (*ownership.Record, error)
}

type streamRegistry interface {
	UserStreams(username string) []c2s.Stream
}

// SessionRouter tracks which cluster node holds every legacy network session.
// The location cache lives on top of ownership records. When a node is lost every session
// it held is opened again on the node where the user still has a live presence.
type SessionRouter struct {
	reg    *Registry
	own    ownershipManager
	stms   streamRegistry
	logger kitlog.Logger

	mu       sync.RWMutex
	sessions map[string]struct{}
}

// NewSessionRouter returns a new initialized SessionRouter.
func NewSessionRouter(reg *Registry, own ownershipManager, stms streamRegistry, logger kitlog.Logger) *SessionRouter {
	r := &SessionRouter{
		reg:      reg,
		own:      own,
		stms:     stms,
		logger:   kitlog.With(logger, "component", "gateway"),
		sessions: make(map[string]struct{}),
	}
	own.RegisterOwner(r)
	return r
}

// Login opens userJID legacy session on transport name and claims its location.
func (r *SessionRouter) Login(ctx context.Context, name string, userJID *jid.JID, pr *stravaganza.Presence) error {
	t, reg, err := r.loginContext(name, userJID)
	if err != nil {
		return err
	}
	key := SessionKey(name, userJID)
	if err := r.own.Claim(ctx, key, nil); err != nil {
		if errors.Is(err, ownership.ErrAlreadyOwned) {
			return fmt.Errorf("%w: %s", ErrSessionOwnedElsewhere, key)
		}
		return err
	}
	if err := t.LoginHandler.Login(ctx, reg, pr); err != nil {
		_ = r.own.Release(ctx, key)
		return err
	}
	r.mu.Lock()
	r.sessions[key] = struct{}{}
	r.mu.Unlock()

	level.Info(r.logger).Log("msg", "legacy session opened", "transport", name, "jid", reg.JID.String())
	return nil
}

// Logout closes userJID legacy session on transport name.
func (r *SessionRouter) Logout(ctx context.Context, name string, userJID *jid.JID) error {
	t, reg, err := r.loginContext(name, userJID)
	if err != nil {
		return err
	}
	key := SessionKey(name, userJID)

	r.mu.Lock()
	_, ok := r.sessions[key]
	delete(r.sessions, key)
	r.mu.Unlock()

	if !ok {
		return nil
	}
	if err := t.LoginHandler.Logout(ctx, reg); err != nil {
		level.Warn(r.logger).Log("msg", "failed to close legacy session", "transport", name, "err", err)
	}
	return r.own.Release(ctx, key)
}

// Locate returns the identifier of the node holding userJID session on transport name.
// An empty node identifier is returned if no session is open.
func (r *SessionRouter) Locate(ctx context.Context, name string, userJID *jid.JID) (nodeID string, err error) {
	key := SessionKey(name, userJID)

	r.mu.RLock()
	_, ok := r.sessions[key]
	r.mu.RUnlock()
	if ok {
		return instance.ID(), nil
	}
	rec, err := r.own.Lookup(ctx, key)
	if err != nil || rec == nil {
		return "", err
	}
	return rec.NodeID, nil
}

// IsLocal tells whether userJID session on transport name is held by this node.
func (r *SessionRouter) IsLocal(name string, userJID *jid.JID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.sessions[SessionKey(name, userJID)]
	return ok
}

// Prefix satisfies ownership.Owner interface.
func (r *SessionRouter) Prefix() string { return SessionKeyPrefix }

// Rederive satisfies ownership.Owner interface.
// Every evicted session whose user is still connected to this node is opened again here.
func (r *SessionRouter) Rederive(ctx context.Context, lostNodeID string, evicted map[string]ownership.Record) error {
	var relogged int
	for key := range evicted {
		name, userJID, err := parseSessionKey(key)
		if err != nil {
			level.Warn(r.logger).Log("msg", "skipping malformed session key", "key", key, "err", err)
			continue
		}
		pr := r.livePresence(userJID)
		if pr == nil {
			continue
		}
		switch err := r.Login(ctx, name, userJID, pr); {
		case err == nil:
			relogged++
		case errors.Is(err, ErrSessionOwnedElsewhere):
			// another node holding a live presence won the claim
		default:
			level.Warn(r.logger).Log("msg", "failed to re-login legacy session", "key", key, "err", err)
		}
	}
	level.Info(r.logger).Log("msg", "gateway sessions re-derived", "lost_node_id", lostNodeID, "evicted", len(evicted), "relogged", relogged)
	return nil
}

func (r *SessionRouter) loginContext(name string, userJID *jid.JID) (*Transport, Registration, error) {
	t := r.reg.Transport(name)
	if t == nil {
		return nil, Registration{}, fmt.Errorf("%w: %s", ErrTransportNotFound, name)
	}
	if t.LoginHandler == nil {
		return nil, Registration{}, fmt.Errorf("%w: %s login", ErrUnsupportedCapability, name)
	}
	reg, ok := r.reg.Registration(name, userJID)
	if !ok {
		return nil, Registration{}, fmt.Errorf("%w: %s", ErrNotRegistered, userJID.ToBareJID().String())
	}
	return t, reg, nil
}

// livePresence returns the highest priority available presence among userJID local streams.
func (r *SessionRouter) livePresence(userJID *jid.JID) *stravaganza.Presence {
	var best *stravaganza.Presence
	for _, stm := range r.stms.UserStreams(userJID.Node()) {
		if stm.JID().Domain() != userJID.Domain() {
			continue
		}
		pr := stm.Presence()
		if pr == nil || !pr.IsAvailable() {
			continue
		}
		if best == nil || pr.Priority() > best.Priority() {
			best = pr
		}
	}
	return best
}

// SessionKey returns the ownership key of userJID session on transport name.
func SessionKey(name string, userJID *jid.JID) string {
	return SessionKeyPrefix + name + "/" + userJID.ToBareJID().String()
}

func parseSessionKey(key string) (string, *jid.JID, error) {
	rest := strings.TrimPrefix(key, SessionKeyPrefix)
	idx := strings.Index(rest, "/")
	if idx <= 0 {
		return "", nil, fmt.Errorf("gateway: malformed session key: %s", key)
	}
	userJID, err := jid.NewWithString(rest[idx+1:], false)
	if err != nil {
		return "", nil, err
	}
	return rest[:idx], userJID, nil
}

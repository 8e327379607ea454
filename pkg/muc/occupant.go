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

package muc

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	"github.com/ortuman/jackal-muc/pkg/c2s"
	"github.com/ortuman/jackal-muc/pkg/cluster/instance"
	mucmodel "github.com/ortuman/jackal-muc/pkg/model/muc"
	"github.com/ortuman/jackal-muc/pkg/router"
)

// Occupant represents a user presence within a room.
// Exactly one Occupant exists cluster-wide for every (room, nickname) pair: a local one
// on the node owning the user stream, and remote proxies everywhere else.
type Occupant interface {
	Nickname() string
	RoleAddress() *jid.JID
	UserAddress() *jid.JID
	Presence() *stravaganza.Presence
	Role() mucmodel.Role
	Affiliation() mucmodel.Affiliation
	VoiceOnly() bool
	ServiceDomain() string

	// NodeID returns the identifier of the cluster node owning the occupant stream.
	NodeID() string

	// IsLocal tells whether occupant user stream is bound to this node.
	IsLocal() bool

	// ChangeNickname updates nickname, role address and presence origin as a single step.
	ChangeNickname(nick string) error

	SetRole(role mucmodel.Role)
	SetAffiliation(affiliation mucmodel.Affiliation)
	SetVoiceOnly(voiceOnly bool)

	// SetPresence replaces occupant presence, rewriting its origin to the occupant role address.
	SetPresence(presence *stravaganza.Presence) error

	// Send delivers stanza to the occupant user.
	Send(ctx context.Context, stanza stravaganza.Stanza) error

	// Destroy releases the resources held by the occupant.
	Destroy(ctx context.Context) error

	// Model returns a snapshot of occupant replicated state.
	Model() *mucmodel.Occupant
}

type occupant struct {
	mu sync.RWMutex
	m  mucmodel.Occupant
}

func (o *occupant) Nickname() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.m.Nickname
}

func (o *occupant) RoleAddress() *jid.JID {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.m.RoleAddress
}

func (o *occupant) UserAddress() *jid.JID {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.m.UserAddress
}

func (o *occupant) Presence() *stravaganza.Presence {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.m.Presence
}

func (o *occupant) Role() mucmodel.Role {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.m.Role
}

func (o *occupant) Affiliation() mucmodel.Affiliation {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.m.Affiliation
}

func (o *occupant) VoiceOnly() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.m.VoiceOnly
}

func (o *occupant) ServiceDomain() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.m.ServiceDomain
}

func (o *occupant) NodeID() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.m.NodeID
}

func (o *occupant) ChangeNickname(nick string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	roleAddr, err := jid.New(o.m.RoleAddress.Node(), o.m.RoleAddress.Domain(), nick, true)
	if err != nil {
		return fmt.Errorf("muc: invalid nickname %q: %w", nick, err)
	}
	var pr *stravaganza.Presence
	if o.m.Presence != nil {
		pr, err = readdressPresence(o.m.Presence, roleAddr)
		if err != nil {
			return err
		}
	}
	o.m.Nickname = nick
	o.m.RoleAddress = roleAddr
	o.m.Presence = pr
	return nil
}

func (o *occupant) SetRole(role mucmodel.Role) {
	o.mu.Lock()
	o.m.Role = role
	o.mu.Unlock()
}

func (o *occupant) SetAffiliation(affiliation mucmodel.Affiliation) {
	o.mu.Lock()
	o.m.Affiliation = affiliation
	o.mu.Unlock()
}

func (o *occupant) SetVoiceOnly(voiceOnly bool) {
	o.mu.Lock()
	o.m.VoiceOnly = voiceOnly
	o.mu.Unlock()
}

func (o *occupant) SetPresence(presence *stravaganza.Presence) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	pr, err := readdressPresence(presence, o.m.RoleAddress)
	if err != nil {
		return err
	}
	o.m.Presence = pr
	return nil
}

func (o *occupant) Model() *mucmodel.Occupant {
	o.mu.RLock()
	defer o.mu.RUnlock()
	m := o.m
	return &m
}

// LocalOccupant is an occupant whose user stream is bound to this node.
type LocalOccupant struct {
	occupant
	streams streamProvider
	release func(ctx context.Context, occ *LocalOccupant) error
}

type streamProvider interface {
	Stream(username, resource string) c2s.Stream
}

func newLocalOccupant(m *mucmodel.Occupant, streams streamProvider, release func(context.Context, *LocalOccupant) error) *LocalOccupant {
	m.NodeID = instance.ID()
	return &LocalOccupant{
		occupant: occupant{m: *m},
		streams:  streams,
		release:  release,
	}
}

// IsLocal satisfies Occupant interface.
func (o *LocalOccupant) IsLocal() bool { return true }

// Send satisfies Occupant interface.
func (o *LocalOccupant) Send(_ context.Context, stanza stravaganza.Stanza) error {
	userAddr := o.UserAddress()
	stm := o.streams.Stream(userAddr.Node(), userAddr.Resource())
	if stm == nil {
		return router.ErrResourceNotFound
	}
	stm.SendElement(stanza)
	return nil
}

// Destroy satisfies Occupant interface.
func (o *LocalOccupant) Destroy(ctx context.Context) error {
	if o.release == nil {
		return nil
	}
	return o.release(ctx, o)
}

// RemoteOccupant is a proxy of an occupant owned by another cluster node.
type RemoteOccupant struct {
	occupant
	rt router.RoutingTable
}

func newRemoteOccupant(m *mucmodel.Occupant, rt router.RoutingTable) *RemoteOccupant {
	return &RemoteOccupant{
		occupant: occupant{m: *m},
		rt:       rt,
	}
}

// IsLocal satisfies Occupant interface.
func (o *RemoteOccupant) IsLocal() bool { return false }

// Send satisfies Occupant interface.
func (o *RemoteOccupant) Send(ctx context.Context, stanza stravaganza.Stanza) error {
	return o.rt.RoutePacket(ctx, o.UserAddress(), stanza, false)
}

// Destroy satisfies Occupant interface.
func (o *RemoteOccupant) Destroy(_ context.Context) error { return nil }

func (o *RemoteOccupant) update(m *mucmodel.Occupant) {
	o.mu.Lock()
	o.m = *m
	o.mu.Unlock()
}

func readdressPresence(presence *stravaganza.Presence, from *jid.JID) (*stravaganza.Presence, error) {
	b := stravaganza.NewBuilderFromElement(presence).
		WithAttribute(stravaganza.From, from.String())
	return b.BuildPresence()
}

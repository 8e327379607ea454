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

	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	"github.com/ortuman/jackal-muc/pkg/cluster/instance"
	"github.com/ortuman/jackal-muc/pkg/cluster/memberlist"
	mucmodel "github.com/ortuman/jackal-muc/pkg/model/muc"
)

// OccupantKey returns the ownership key of an occupant role address.
func OccupantKey(roleAddr *jid.JID) string {
	return OccupantKeyPrefix + roleAddr.String()
}

// replicate advertises occ current state to the rest of the cluster.
// Local occupants are claimed first, so that a concurrent claim from another node fails.
func (s *Service) replicate(ctx context.Context, occ Occupant) error {
	m := occ.Model()
	b, err := mucmodel.MarshalOccupant(m)
	if err != nil {
		return err
	}
	if occ.IsLocal() {
		if err := s.own.Claim(ctx, OccupantKey(m.RoleAddress), b); err != nil {
			return err
		}
	}
	s.broadcast(ctx, replication{op: opUpsertOccupant, occupant: b})
	return nil
}

func (s *Service) unpublish(ctx context.Context, roleAddr *jid.JID) error {
	if err := s.own.Release(ctx, OccupantKey(roleAddr)); err != nil {
		return err
	}
	s.broadcast(ctx, replication{op: opRemoveOccupant, address: roleAddr.String()})
	return nil
}

// notifyRemoval asks the owner node of a remote occupant to drop it.
func (s *Service) notifyRemoval(ctx context.Context, m *mucmodel.Occupant) error {
	b, err := mucmodel.MarshalOccupant(m)
	if err != nil {
		return err
	}
	s.broadcast(ctx, replication{op: opRemoveOccupant, occupant: b, address: m.RoleAddress.String()})
	return nil
}

// publishAffiliation advertises a room affiliation change, so that other nodes
// enforce it even when the user has no occupant in the room.
func (s *Service) publishAffiliation(ctx context.Context, roomJID, userJID *jid.JID, affiliation mucmodel.Affiliation) error {
	aff, err := mucmodel.EncodeAffiliation(affiliation)
	if err != nil {
		return err
	}
	s.broadcast(ctx, replication{
		op:          opSetAffiliation,
		address:     roomJID.String(),
		user:        userJID.ToBareJID().String(),
		affiliation: aff,
	})
	return nil
}

func (s *Service) releaseOccupant(ctx context.Context, occ *LocalOccupant) error {
	return s.unpublish(ctx, occ.RoleAddress())
}

func (s *Service) broadcast(ctx context.Context, r replication) {
	err := s.tr.Broadcast(ctx, memberlist.Message{
		Type:    ReplicationMessageType,
		Payload: r.encode(),
	})
	if err != nil {
		level.Warn(s.logger).Log("msg", "failed to broadcast occupant update", "err", err)
	}
}

func (s *Service) handleReplication(ctx context.Context, msg memberlist.Message) {
	if msg.From == instance.ID() {
		return
	}
	r, err := decodeReplication(msg.Payload)
	if err != nil {
		level.Warn(s.logger).Log("msg", "discarded occupant update", "from_node", msg.From, "err", err)
		return
	}
	var m *mucmodel.Occupant
	if len(r.occupant) > 0 {
		m, err = mucmodel.UnmarshalOccupant(r.occupant)
		if err != nil {
			level.Warn(s.logger).Log("msg", "discarded occupant update", "from_node", msg.From, "err", err)
			return
		}
	}
	var addr *jid.JID
	switch {
	case len(r.address) > 0:
		addr, err = jid.NewWithString(r.address, true)
		if err != nil {
			level.Warn(s.logger).Log("msg", "discarded occupant update", "from_node", msg.From, "err", err)
			return
		}
	case m != nil:
		addr = m.RoleAddress
	default:
		level.Warn(s.logger).Log("msg", "discarded occupant update", "from_node", msg.From, "err", errMalformedReplication)
		return
	}
	err = s.exec.Submit(addr.ToBareJID().String(), func() {
		switch r.op {
		case opUpsertOccupant:
			s.applyUpsert(ctx, m)
		case opRemoveOccupant:
			s.applyRemove(ctx, addr, m)
		case opDestroyRoom:
			s.applyDestroyRoom(ctx, addr)
		case opSetAffiliation:
			s.applySetAffiliation(addr, r)
		}
	})
	if err != nil {
		level.Warn(s.logger).Log("msg", "failed to enqueue occupant update", "from_node", msg.From, "err", err)
	}
}

func (s *Service) applyUpsert(ctx context.Context, m *mucmodel.Occupant) {
	room := s.ensureRoom(m.RoleAddress.ToBareJID())
	if local := room.applyRemote(m); local != nil {
		if err := s.replicate(ctx, local); err != nil {
			level.Warn(s.logger).Log("msg", "failed to republish occupant", "address", m.RoleAddress.String(), "err", err)
		}
	}
}

func (s *Service) applyRemove(ctx context.Context, roleAddr *jid.JID, m *mucmodel.Occupant) {
	room := s.GetRoom(roleAddr.Node())
	if room == nil {
		return
	}
	if m != nil {
		room.applyAffiliation(m.UserAddress, m.Affiliation)
	}
	occ := room.removeRemote(roleAddr.Resource())
	if occ != nil && occ.IsLocal() {
		if err := occ.Destroy(ctx); err != nil {
			level.Warn(s.logger).Log("msg", "failed to destroy occupant", "address", roleAddr.String(), "err", err)
		}
	}
	s.collectRoom(room)
}

func (s *Service) applySetAffiliation(roomJID *jid.JID, r replication) {
	userJID, err := jid.NewWithString(r.user, true)
	if err != nil {
		level.Warn(s.logger).Log("msg", "discarded affiliation update", "room", roomJID.String(), "err", err)
		return
	}
	aff, err := mucmodel.DecodeAffiliation(r.affiliation)
	if err != nil {
		level.Warn(s.logger).Log("msg", "discarded affiliation update", "room", roomJID.String(), "err", err)
		return
	}
	s.ensureRoom(roomJID.ToBareJID()).applyAffiliation(userJID, aff)
}

func (s *Service) applyDestroyRoom(ctx context.Context, roomJID *jid.JID) {
	s.mu.Lock()
	room := s.rooms[roomJID.Node()]
	if room == nil {
		s.mu.Unlock()
		return
	}
	delete(s.rooms, roomJID.Node())
	s.mu.Unlock()

	activeRooms.Dec()

	// occupants were already notified by the node that destroyed the room
	for _, occ := range room.dissolve() {
		if err := occ.Destroy(ctx); err != nil {
			level.Warn(s.logger).Log("msg", "failed to destroy occupant", "room", roomJID.String(), "nick", occ.Nickname(), "err", err)
		}
	}
}

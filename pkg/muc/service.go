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
	"sort"
	"sync"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/stravaganza/v2"
	stanzaerror "github.com/jackal-xmpp/stravaganza/v2/errors/stanza"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	"github.com/ortuman/jackal-muc/pkg/c2s"
	"github.com/ortuman/jackal-muc/pkg/cluster/instance"
	"github.com/ortuman/jackal-muc/pkg/cluster/memberlist"
	"github.com/ortuman/jackal-muc/pkg/cluster/ownership"
	"github.com/ortuman/jackal-muc/pkg/executor"
	"github.com/ortuman/jackal-muc/pkg/hook"
	mucmodel "github.com/ortuman/jackal-muc/pkg/model/muc"
	"github.com/ortuman/jackal-muc/pkg/router"
	"github.com/samber/lo"
)

// Config contains multi-user chat service configuration.
type Config struct {
	Enabled         bool                `fig:"enabled"`
	Domain          string              `fig:"domain" default:"conference.localhost"`
	AllowedCreators []string            `fig:"allowed_creators"`
	SysAdmins       []string            `fig:"sysadmins"`
	RoomDefaults    mucmodel.RoomConfig `fig:"room_defaults"`
}

// Service is the multi-user chat service of a single domain.
type Service struct {
	cfg     Config
	rt      router.RoutingTable
	streams *c2s.Registry
	own     *ownership.Manager
	tr      memberlist.Transport
	exec    *executor.Executor
	hk      *hook.Hooks
	logger  kitlog.Logger

	mu      sync.RWMutex
	enabled bool
	rooms   map[string]*Room
}

// New returns a new initialized Service.
func New(
	cfg Config,
	rt router.RoutingTable,
	streams *c2s.Registry,
	own *ownership.Manager,
	tr memberlist.Transport,
	exec *executor.Executor,
	hk *hook.Hooks,
	logger kitlog.Logger,
) *Service {
	s := &Service{
		cfg:     cfg,
		rt:      rt,
		streams: streams,
		own:     own,
		tr:      tr,
		exec:    exec,
		hk:      hk,
		logger:  kitlog.With(logger, "service", "muc", "domain", cfg.Domain),
		enabled: cfg.Enabled,
		rooms:   make(map[string]*Room),
	}
	own.RegisterOwner(s)
	tr.Handle(ReplicationMessageType, s.handleReplication)
	return s
}

// Domain returns service domain.
func (s *Service) Domain() string { return s.cfg.Domain }

// Enabled tells whether the service accepts new rooms.
func (s *Service) Enabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled
}

// SetEnabled enables or disables room creation.
func (s *Service) SetEnabled(enabled bool) {
	s.mu.Lock()
	s.enabled = enabled
	s.mu.Unlock()
}

// CreateRoom creates a new room owned by creator.
func (s *Service) CreateRoom(ctx context.Context, name string, creator *jid.JID) (*Room, error) {
	if !s.Enabled() {
		return nil, notAllowed(stanzaerror.ServiceUnavailable, "service %s is disabled", s.cfg.Domain)
	}
	if !s.canCreateRooms(creator) {
		return nil, notAllowed(stanzaerror.NotAllowed, "%s is not allowed to create rooms", creator.ToBareJID().String())
	}
	roomJID, err := jid.New(name, s.cfg.Domain, "", true)
	if err != nil || len(name) == 0 {
		return nil, notAllowed(stanzaerror.JIDMalformed, "invalid room name %q", name)
	}
	s.mu.Lock()
	if s.rooms[name] != nil {
		s.mu.Unlock()
		return nil, notAllowed(stanzaerror.Conflict, "room %s already exists", roomJID.String())
	}
	room := newRoom(s, roomJID, s.cfg.RoomDefaults)
	room.setAffiliationLocked(creator, mucmodel.AffiliationOwner)
	s.rooms[name] = room
	s.mu.Unlock()

	activeRooms.Inc()

	s.runHook(ctx, hook.RoomCreated, &hook.MUCInfo{RoomJID: roomJID, UserJID: creator})
	level.Info(s.logger).Log("msg", "room created", "room", roomJID.String(), "creator", creator.String())
	return room, nil
}

// GetRoom returns the room registered under name, or nil if not present.
func (s *Service) GetRoom(name string) *Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rooms[name]
}

// GetOrCreateRoom returns the room registered under name, creating it if needed.
// created reports whether the room was created by this call.
func (s *Service) GetOrCreateRoom(ctx context.Context, name string, creator *jid.JID) (room *Room, created bool, err error) {
	if room := s.GetRoom(name); room != nil {
		return room, false, nil
	}
	room, err = s.CreateRoom(ctx, name, creator)
	if err != nil {
		if naErr, ok := IsNotAllowed(err); ok && naErr.Reason == stanzaerror.Conflict {
			return s.GetRoom(name), false, nil
		}
		return nil, false, err
	}
	return room, true, nil
}

// DestroyRoom destroys the room registered under name.
func (s *Service) DestroyRoom(ctx context.Context, name, reason string) error {
	s.mu.Lock()
	room := s.rooms[name]
	if room == nil {
		s.mu.Unlock()
		return ErrRoomNotFound
	}
	delete(s.rooms, name)
	s.mu.Unlock()

	activeRooms.Dec()

	if err := room.Destroy(ctx, reason); err != nil {
		return err
	}
	s.broadcast(ctx, replication{op: opDestroyRoom, address: room.JID().String()})

	s.runHook(ctx, hook.RoomDestroyed, &hook.MUCInfo{RoomJID: room.JID()})
	level.Info(s.logger).Log("msg", "room destroyed", "room", room.JID().String())
	return nil
}

// Rooms returns all service rooms sorted by name.
func (s *Service) Rooms() []*Room {
	s.mu.RLock()
	rooms := lo.Values(s.rooms)
	s.mu.RUnlock()

	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Name() < rooms[j].Name() })
	return rooms
}

// Prefix satisfies ownership.Owner interface.
func (s *Service) Prefix() string { return OccupantKeyPrefix }

// Rederive satisfies ownership.Owner interface.
func (s *Service) Rederive(ctx context.Context, lostNodeID string, evicted map[string]ownership.Record) error {
	var dropped int
	for _, room := range s.Rooms() {
		lost := room.dropNode(lostNodeID)
		locals := room.localOccupants()
		for _, occ := range lost {
			m := occ.Model()
			m.Role = mucmodel.RoleNone
			for _, rcp := range locals {
				room.send(ctx, rcp, occupantPresence(m, rcp.UserAddress(), stravaganza.UnavailableType, rcp.Role() == mucmodel.RoleModerator, ""))
			}
		}
		dropped += len(lost)

		for _, occ := range locals {
			if err := s.replicate(ctx, occ); err != nil {
				return err
			}
		}
		s.collectRoom(room)
	}
	level.Info(s.logger).Log("msg", "rederived room occupants", "lost_node", lostNodeID, "evicted", len(evicted), "dropped", dropped)
	return nil
}

// Start loads remote occupants advertised by other cluster nodes.
func (s *Service) Start(ctx context.Context) error {
	recs, err := s.own.Records(ctx, OccupantKeyPrefix)
	if err != nil {
		return err
	}
	for key, rec := range recs {
		if rec.NodeID == instance.ID() {
			continue
		}
		m, err := mucmodel.UnmarshalOccupant(rec.Payload)
		if err != nil {
			level.Warn(s.logger).Log("msg", "discarded occupant record", "key", key, "err", err)
			continue
		}
		m.NodeID = rec.NodeID
		s.ensureRoom(m.RoleAddress.ToBareJID()).applyRemote(m)
	}
	level.Info(s.logger).Log("msg", "started muc service", "remote_occupants", len(recs))
	return nil
}

// Stop makes all local occupants leave their rooms.
func (s *Service) Stop(ctx context.Context) error {
	for _, room := range s.Rooms() {
		for _, occ := range room.localOccupants() {
			if err := room.Leave(ctx, occ); err != nil {
				level.Warn(s.logger).Log("msg", "failed to leave room", "room", room.JID().String(), "nick", occ.Nickname(), "err", err)
			}
		}
	}
	level.Info(s.logger).Log("msg", "stopped muc service")
	return nil
}

func (s *Service) canCreateRooms(creator *jid.JID) bool {
	bare := creator.ToBareJID().String()
	if lo.Contains(s.cfg.SysAdmins, bare) {
		return true
	}
	return len(s.cfg.AllowedCreators) == 0 || lo.Contains(s.cfg.AllowedCreators, bare)
}

func (s *Service) ensureRoom(roomJID *jid.JID) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := s.rooms[roomJID.Node()]
	if room == nil {
		room = newRoom(s, roomJID, s.cfg.RoomDefaults)
		s.rooms[roomJID.Node()] = room
		activeRooms.Inc()
	}
	return room
}

func (s *Service) collectRoom(room *Room) {
	if room.Config().Persistent {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rooms[room.Name()] != room || !room.isEmpty() {
		return
	}
	delete(s.rooms, room.Name())
	activeRooms.Dec()
}

func (s *Service) runHook(ctx context.Context, hookName string, inf *hook.MUCInfo) {
	if s.hk == nil {
		return
	}
	_, err := s.hk.Run(ctx, hookName, &hook.ExecutionContext{
		Info:   inf,
		Sender: s,
	})
	if err != nil {
		level.Warn(s.logger).Log("msg", "failed to run hook", "hook", hookName, "err", err)
	}
}

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
	"errors"
	"sort"
	"sync"

	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/stravaganza/v2"
	stanzaerror "github.com/jackal-xmpp/stravaganza/v2/errors/stanza"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	"github.com/ortuman/jackal-muc/pkg/cluster/instance"
	"github.com/ortuman/jackal-muc/pkg/cluster/ownership"
	"github.com/ortuman/jackal-muc/pkg/hook"
	mucmodel "github.com/ortuman/jackal-muc/pkg/model/muc"
	xmpputil "github.com/ortuman/jackal-muc/pkg/util/xmpp"
	"github.com/samber/lo"
)

// Room represents a multi-user chat room.
type Room struct {
	svc *Service
	jd  *jid.JID

	mu           sync.RWMutex
	cfg          mucmodel.RoomConfig
	occupants    map[string]Occupant
	affiliations map[string]mucmodel.Affiliation
	destroyed    bool
}

func newRoom(svc *Service, jd *jid.JID, cfg mucmodel.RoomConfig) *Room {
	return &Room{
		svc:          svc,
		jd:           jd,
		cfg:          cfg,
		occupants:    make(map[string]Occupant),
		affiliations: make(map[string]mucmodel.Affiliation),
	}
}

// JID returns room address.
func (r *Room) JID() *jid.JID { return r.jd }

// Name returns room name.
func (r *Room) Name() string { return r.jd.Node() }

// Config returns room configuration.
func (r *Room) Config() mucmodel.RoomConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg
}

// SetConfig replaces room configuration. Current occupants are not affected.
func (r *Room) SetConfig(cfg mucmodel.RoomConfig) {
	r.mu.Lock()
	r.cfg = cfg
	r.mu.Unlock()
}

// Occupants returns all room occupants sorted by nickname.
func (r *Room) Occupants() []Occupant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.occupantsLocked()
}

// Occupant returns the occupant using nick, or nil if not present.
func (r *Room) Occupant(nick string) Occupant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.occupants[nick]
}

// OccupantsByUser returns all occupants whose user bare address matches userJID.
func (r *Room) OccupantsByUser(userJID *jid.JID) []Occupant {
	bare := userJID.ToBareJID().String()
	return lo.Filter(r.Occupants(), func(occ Occupant, _ int) bool {
		return occ.UserAddress().ToBareJID().String() == bare
	})
}

// Affiliation returns the affiliation of userJID within the room.
func (r *Room) Affiliation(userJID *jid.JID) mucmodel.Affiliation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.affiliationLocked(userJID)
}

// Join adds a new local occupant using nick to the room.
func (r *Room) Join(ctx context.Context, userJID *jid.JID, nick string, presence *stravaganza.Presence, password string) (Occupant, error) {
	return r.join(ctx, userJID, nick, presence, password, false)
}

func (r *Room) join(ctx context.Context, userJID *jid.JID, nick string, presence *stravaganza.Presence, password string, created bool) (Occupant, error) {
	if len(nick) == 0 {
		return nil, notAllowed(stanzaerror.JIDMalformed, "missing nickname")
	}
	roleAddr, err := jid.New(r.jd.Node(), r.jd.Domain(), nick, true)
	if err != nil {
		return nil, notAllowed(stanzaerror.JIDMalformed, "invalid nickname %q", nick)
	}
	r.mu.Lock()
	if r.destroyed {
		r.mu.Unlock()
		return nil, ErrRoomNotFound
	}
	if r.occupants[nick] != nil {
		r.mu.Unlock()
		return nil, notAllowed(stanzaerror.Conflict, "nickname %s already in use", nick)
	}
	aff := r.affiliationLocked(userJID)
	if err := r.checkAdmission(aff, password); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	occ := newLocalOccupant(&mucmodel.Occupant{
		ServiceDomain: r.jd.Domain(),
		Role:          r.cfg.DefaultRoomRole(aff),
		Affiliation:   aff,
		Nickname:      nick,
		RoleAddress:   roleAddr,
		UserAddress:   userJID,
	}, r.svc.streams, r.svc.releaseOccupant)

	if presence != nil {
		if err := occ.SetPresence(presence); err != nil {
			r.mu.Unlock()
			return nil, err
		}
	}
	if err := r.svc.replicate(ctx, occ); err != nil {
		r.mu.Unlock()
		if errors.Is(err, ownership.ErrAlreadyOwned) {
			return nil, notAllowed(stanzaerror.Conflict, "nickname %s already in use", nick)
		}
		return nil, err
	}
	r.occupants[nick] = occ
	recipients := r.occupantsLocked()
	subject := r.cfg.Subject
	r.mu.Unlock()

	joinedOccupants.Inc()

	// current occupants presence goes first
	isModerator := occ.Role() == mucmodel.RoleModerator
	for _, rcp := range recipients {
		if rcp == Occupant(occ) {
			continue
		}
		r.send(ctx, occ, occupantPresence(rcp.Model(), userJID, "", isModerator, ""))
	}
	var codes []string
	if created {
		codes = append(codes, statusCreated)
	}
	r.broadcastPresence(ctx, occ.Model(), "", "", recipients, codes...)

	if len(subject) > 0 {
		r.send(ctx, occ, subjectMessage(r.jd, userJID, subject))
	}
	r.svc.runHook(ctx, hook.OccupantJoined, &hook.MUCInfo{
		RoomJID:     r.jd,
		OccupantJID: roleAddr,
		UserJID:     userJID,
	})
	level.Info(r.svc.logger).Log("msg", "occupant joined room", "room", r.jd.String(), "nick", nick, "user", userJID.String())
	return occ, nil
}

func (r *Room) checkAdmission(aff mucmodel.Affiliation, password string) error {
	switch {
	case aff == mucmodel.AffiliationOutcast:
		return notAllowed(stanzaerror.Forbidden, "user is banned from %s", r.jd.String())
	case r.cfg.MembersOnly && aff < mucmodel.AffiliationMember:
		return notAllowed(stanzaerror.RegistrationRequired, "room %s is members only", r.jd.String())
	case r.cfg.PasswordProtected && password != r.cfg.Password:
		return notAllowed(stanzaerror.NotAuthorized, "invalid password for room %s", r.jd.String())
	case aff < mucmodel.AffiliationAdmin && r.cfg.IsFull(len(r.occupants)):
		return notAllowed(stanzaerror.ServiceUnavailable, "room %s is full", r.jd.String())
	}
	return nil
}

// UpdatePresence broadcasts a status change of occ.
func (r *Room) UpdatePresence(ctx context.Context, occ Occupant, presence *stravaganza.Presence) error {
	if occ.Role() == mucmodel.RoleNone {
		return notAllowed(stanzaerror.Forbidden, "occupant %s has no role", occ.Nickname())
	}
	if err := occ.SetPresence(presence); err != nil {
		return err
	}
	if err := r.svc.replicate(ctx, occ); err != nil {
		return err
	}
	r.broadcastPresence(ctx, occ.Model(), "", "", r.Occupants())
	return nil
}

// Leave removes occ from the room, notifying all remaining occupants.
func (r *Room) Leave(ctx context.Context, occ Occupant) error {
	if !r.remove(occ) {
		return notAllowed(stanzaerror.ItemNotFound, "occupant %s not found", occ.Nickname())
	}
	m := occ.Model()
	m.Role = mucmodel.RoleNone
	r.broadcastPresence(ctx, m, stravaganza.UnavailableType, "", append(r.Occupants(), occ))

	if err := occ.Destroy(ctx); err != nil {
		level.Warn(r.svc.logger).Log("msg", "failed to destroy occupant", "room", r.jd.String(), "nick", m.Nickname, "err", err)
	}
	r.svc.runHook(ctx, hook.OccupantLeft, &hook.MUCInfo{
		RoomJID:     r.jd,
		OccupantJID: m.RoleAddress,
		UserJID:     m.UserAddress,
	})
	r.svc.collectRoom(r)
	return nil
}

// ChangeNickname renames a local occupant.
func (r *Room) ChangeNickname(ctx context.Context, occ Occupant, nick string) error {
	if len(nick) == 0 {
		return notAllowed(stanzaerror.JIDMalformed, "missing nickname")
	}
	if !occ.IsLocal() {
		return notAllowed(stanzaerror.NotAllowed, "remote occupant %s cannot be renamed", occ.Nickname())
	}
	r.mu.Lock()
	if r.occupants[nick] != nil {
		r.mu.Unlock()
		return notAllowed(stanzaerror.Conflict, "nickname %s already in use", nick)
	}
	prev := occ.Model()
	if r.occupants[prev.Nickname] != occ {
		r.mu.Unlock()
		return notAllowed(stanzaerror.ItemNotFound, "occupant %s not found", prev.Nickname)
	}
	if err := occ.ChangeNickname(nick); err != nil {
		r.mu.Unlock()
		return notAllowed(stanzaerror.JIDMalformed, "invalid nickname %q", nick)
	}
	if err := r.svc.replicate(ctx, occ); err != nil {
		_ = occ.ChangeNickname(prev.Nickname)
		r.mu.Unlock()
		if errors.Is(err, ownership.ErrAlreadyOwned) {
			return notAllowed(stanzaerror.Conflict, "nickname %s already in use", nick)
		}
		return err
	}
	delete(r.occupants, prev.Nickname)
	r.occupants[nick] = occ
	recipients := r.occupantsLocked()
	r.mu.Unlock()

	if err := r.svc.unpublish(ctx, prev.RoleAddress); err != nil {
		level.Warn(r.svc.logger).Log("msg", "failed to unpublish previous occupant address", "address", prev.RoleAddress.String(), "err", err)
	}
	r.broadcastPresence(ctx, prev, stravaganza.UnavailableType, nick, recipients, statusNickChanged)
	r.broadcastPresence(ctx, occ.Model(), "", "", recipients)

	r.svc.runHook(ctx, hook.OccupantNicknameChanged, &hook.MUCInfo{
		RoomJID:          r.jd,
		OccupantJID:      occ.RoleAddress(),
		UserJID:          occ.UserAddress(),
		PreviousNickname: prev.Nickname,
	})
	return nil
}

// Broadcast sends a groupchat message from occ to every room occupant.
func (r *Room) Broadcast(ctx context.Context, from Occupant, msg *stravaganza.Message) error {
	if !r.hasVoice(from) {
		return notAllowed(stanzaerror.Forbidden, "occupant %s has no voice", from.Nickname())
	}
	fromAddr := from.RoleAddress()
	for _, rcp := range r.Occupants() {
		stanza, err := xmpputil.RewriteAddresses(msg, fromAddr, rcp.UserAddress())
		if err != nil {
			return err
		}
		r.send(ctx, rcp, stanza)
	}
	return nil
}

// SendPrivate sends msg from occ to the occupant using toNick.
func (r *Room) SendPrivate(ctx context.Context, from Occupant, toNick string, msg *stravaganza.Message) error {
	if from.Role() == mucmodel.RoleNone {
		return notAllowed(stanzaerror.Forbidden, "occupant %s has no role", from.Nickname())
	}
	target := r.Occupant(toNick)
	if target == nil {
		return notAllowed(stanzaerror.ItemNotFound, "occupant %s not found", toNick)
	}
	b := stravaganza.NewBuilderFromElement(msg).
		WithAttribute(stravaganza.From, from.RoleAddress().String()).
		WithAttribute(stravaganza.To, target.UserAddress().String())
	if msg.ChildNamespace("x", mucUserNamespace) == nil {
		b.WithChild(userElement())
	}
	pm, err := b.BuildMessage()
	if err != nil {
		return err
	}
	return target.Send(ctx, pm)
}

// SetRole changes the role of the occupant using nick on behalf of actor.
// Setting RoleNone kicks the occupant out of the room.
func (r *Room) SetRole(ctx context.Context, actor Occupant, nick string, role mucmodel.Role) error {
	target, err := r.checkRoleChange(actor, nick, role)
	if err != nil {
		return err
	}
	if role == mucmodel.RoleNone {
		return r.kick(ctx, target, statusKicked)
	}
	target.SetRole(role)
	if err := r.svc.replicate(ctx, target); err != nil {
		return err
	}
	r.broadcastPresence(ctx, target.Model(), "", "", r.Occupants())
	return nil
}

// SetAffiliation changes userJID affiliation on behalf of actor.
// Granting AffiliationOutcast bans the user, kicking all its occupants out of the room.
func (r *Room) SetAffiliation(ctx context.Context, actor Occupant, userJID *jid.JID, affiliation mucmodel.Affiliation) error {
	targets, err := r.checkAffiliationChange(actor, userJID, affiliation)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.setAffiliationLocked(userJID, affiliation)
	cfg := r.cfg
	r.mu.Unlock()

	if err := r.svc.publishAffiliation(ctx, r.jd, userJID, affiliation); err != nil {
		return err
	}
	for _, target := range targets {
		target.SetAffiliation(affiliation)
		if affiliation == mucmodel.AffiliationOutcast {
			if err := r.kick(ctx, target, statusBanned); err != nil {
				return err
			}
			continue
		}
		target.SetRole(cfg.DefaultRoomRole(affiliation))
		if err := r.svc.replicate(ctx, target); err != nil {
			return err
		}
		r.broadcastPresence(ctx, target.Model(), "", "", r.Occupants())
	}
	return nil
}

func (r *Room) checkRoleChange(actor Occupant, nick string, role mucmodel.Role) (Occupant, error) {
	target := r.Occupant(nick)
	if target == nil {
		return nil, notAllowed(stanzaerror.ItemNotFound, "occupant %s not found", nick)
	}
	if !mucmodel.CanChangeRole(actor.Model(), target.Model(), role) {
		return nil, notAllowed(stanzaerror.NotAllowed, "%s cannot set %s role to %s", actor.Nickname(), nick, role)
	}
	return target, nil
}

func (r *Room) checkAffiliationChange(actor Occupant, userJID *jid.JID, affiliation mucmodel.Affiliation) ([]Occupant, error) {
	targets := r.OccupantsByUser(userJID)

	targetModel := &mucmodel.Occupant{UserAddress: userJID, Affiliation: r.Affiliation(userJID)}
	if len(targets) > 0 {
		targetModel = targets[0].Model()
	}
	if !mucmodel.CanChangeAffiliation(actor.Model(), targetModel, affiliation) {
		return nil, notAllowed(stanzaerror.NotAllowed, "%s cannot set %s affiliation to %s", actor.Nickname(), userJID.ToBareJID().String(), affiliation)
	}
	return targets, nil
}

// Destroy removes every occupant from the room, notifying them about the destruction.
func (r *Room) Destroy(ctx context.Context, reason string) error {
	for _, occ := range r.dissolve() {
		r.send(ctx, occ, destroyPresence(occ.Model(), occ.UserAddress(), reason))
		if err := occ.Destroy(ctx); err != nil {
			level.Warn(r.svc.logger).Log("msg", "failed to destroy occupant", "room", r.jd.String(), "nick", occ.Nickname(), "err", err)
		}
	}
	return nil
}

func (r *Room) dissolve() []Occupant {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.destroyed {
		return nil
	}
	r.destroyed = true
	occupants := r.occupantsLocked()
	r.occupants = make(map[string]Occupant)
	return occupants
}

func (r *Room) kick(ctx context.Context, target Occupant, code string) error {
	if !r.remove(target) {
		return notAllowed(stanzaerror.ItemNotFound, "occupant %s not found", target.Nickname())
	}
	target.SetRole(mucmodel.RoleNone)
	m := target.Model()
	r.broadcastPresence(ctx, m, stravaganza.UnavailableType, "", append(r.Occupants(), target), code)

	if target.IsLocal() {
		return target.Destroy(ctx)
	}
	// owner node releases its entry on removal notice
	return r.svc.notifyRemoval(ctx, m)
}

func (r *Room) remove(occ Occupant) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	nick := occ.Nickname()
	if r.occupants[nick] != occ {
		return false
	}
	delete(r.occupants, nick)
	return true
}

func (r *Room) hasVoice(occ Occupant) bool {
	role := occ.Role()
	if role == mucmodel.RoleNone {
		return false
	}
	if !r.Config().Moderated {
		return true
	}
	return role.HasVoice() || occ.VoiceOnly()
}

func (r *Room) broadcastPresence(ctx context.Context, subject *mucmodel.Occupant, typ, nick string, recipients []Occupant, codes ...string) {
	for _, rcp := range recipients {
		rcpCodes := codes
		if rcp.UserAddress().String() == subject.UserAddress.String() {
			rcpCodes = append(append([]string(nil), codes...), statusSelf)
		}
		isModerator := rcp.Role() == mucmodel.RoleModerator
		r.send(ctx, rcp, occupantPresence(subject, rcp.UserAddress(), typ, isModerator, nick, rcpCodes...))
	}
}

func (r *Room) send(ctx context.Context, occ Occupant, stanza stravaganza.Stanza) {
	if err := occ.Send(ctx, stanza); err != nil {
		level.Debug(r.svc.logger).Log("msg", "failed to deliver room stanza", "room", r.jd.String(), "nick", occ.Nickname(), "err", err)
	}
}

func (r *Room) occupantByUserAddress(userJID *jid.JID) Occupant {
	addr := userJID.String()
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, occ := range r.occupants {
		if occ.UserAddress().String() == addr {
			return occ
		}
	}
	return nil
}

func (r *Room) occupantsLocked() []Occupant {
	occupants := lo.Values(r.occupants)
	sort.Slice(occupants, func(i, j int) bool {
		return occupants[i].Nickname() < occupants[j].Nickname()
	})
	return occupants
}

func (r *Room) affiliationLocked(userJID *jid.JID) mucmodel.Affiliation {
	aff, ok := r.affiliations[userJID.ToBareJID().String()]
	if !ok {
		return mucmodel.AffiliationNone
	}
	return aff
}

func (r *Room) setAffiliationLocked(userJID *jid.JID, affiliation mucmodel.Affiliation) {
	bare := userJID.ToBareJID().String()
	if affiliation == mucmodel.AffiliationNone {
		delete(r.affiliations, bare)
		return
	}
	r.affiliations[bare] = affiliation
}

func (r *Room) isEmpty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.occupants) == 0
}

// applyRemote applies an occupant update received from another node.
// A local occupant is returned when the update targets it so that its owner republishes it.
func (r *Room) applyRemote(m *mucmodel.Occupant) *LocalOccupant {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.destroyed {
		return nil
	}
	r.setAffiliationLocked(m.UserAddress, m.Affiliation)

	switch occ := r.occupants[m.Nickname].(type) {
	case nil:
		if m.NodeID == instance.ID() {
			return nil
		}
		r.occupants[m.Nickname] = newRemoteOccupant(m, r.svc.rt)

	case *RemoteOccupant:
		occ.update(m)

	case *LocalOccupant:
		if occ.UserAddress().String() != m.UserAddress.String() {
			return nil
		}
		occ.SetRole(m.Role)
		occ.SetAffiliation(m.Affiliation)
		occ.SetVoiceOnly(m.VoiceOnly)
		return occ
	}
	return nil
}

func (r *Room) applyAffiliation(userJID *jid.JID, affiliation mucmodel.Affiliation) {
	r.mu.Lock()
	r.setAffiliationLocked(userJID, affiliation)
	r.mu.Unlock()
}

// removeRemote removes the occupant using nick as notified by another node.
func (r *Room) removeRemote(nick string) Occupant {
	r.mu.Lock()
	defer r.mu.Unlock()

	occ := r.occupants[nick]
	if occ == nil {
		return nil
	}
	delete(r.occupants, nick)
	return occ
}

// dropNode removes every remote occupant owned by nodeID.
func (r *Room) dropNode(nodeID string) []Occupant {
	r.mu.Lock()
	defer r.mu.Unlock()

	var dropped []Occupant
	for nick, occ := range r.occupants {
		if occ.IsLocal() || occ.NodeID() != nodeID {
			continue
		}
		delete(r.occupants, nick)
		dropped = append(dropped, occ)
	}
	return dropped
}

func (r *Room) localOccupants() []*LocalOccupant {
	var res []*LocalOccupant
	for _, occ := range r.Occupants() {
		if local, ok := occ.(*LocalOccupant); ok {
			res = append(res, local)
		}
	}
	return res
}

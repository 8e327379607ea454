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

	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/stravaganza/v2"
	stanzaerror "github.com/jackal-xmpp/stravaganza/v2/errors/stanza"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	"github.com/ortuman/jackal-muc/pkg/executor"
	mucmodel "github.com/ortuman/jackal-muc/pkg/model/muc"
	xmpputil "github.com/ortuman/jackal-muc/pkg/util/xmpp"
	"github.com/samber/lo"
)

// ProcessStanza satisfies router.Component interface.
// Stanzas addressed to the same room are processed sequentially.
func (s *Service) ProcessStanza(ctx context.Context, stanza stravaganza.Stanza) error {
	toJID := stanza.ToJID()
	if toJID == nil || stanza.FromJID() == nil {
		return nil
	}
	err := s.exec.Submit(toJID.ToBareJID().String(), func() {
		s.processStanza(ctx, stanza)
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, executor.ErrQueueFull):
		s.replyError(ctx, stanza, notAllowed(stanzaerror.ServiceUnavailable, "room queue full"))
		return nil
	default:
		return err
	}
}

func (s *Service) processStanza(ctx context.Context, stanza stravaganza.Stanza) {
	if stanza.Attribute(stravaganza.Type) == stravaganza.ErrorType {
		return
	}
	var err error
	switch stz := stanza.(type) {
	case *stravaganza.Presence:
		processedStanzas.WithLabelValues("presence").Inc()
		err = s.processPresence(ctx, stz)
	case *stravaganza.Message:
		processedStanzas.WithLabelValues("message").Inc()
		err = s.processMessage(ctx, stz)
	case *stravaganza.IQ:
		processedStanzas.WithLabelValues("iq").Inc()
		err = s.processIQ(ctx, stz)
	}
	if err != nil {
		s.replyError(ctx, stanza, err)
	}
}

func (s *Service) processPresence(ctx context.Context, presence *stravaganza.Presence) error {
	fromJID := presence.FromJID()
	toJID := presence.ToJID()

	room := s.GetRoom(toJID.Node())
	var occ Occupant
	if room != nil {
		occ = room.occupantByUserAddress(fromJID)
	}
	switch {
	case presence.Attribute(stravaganza.Type) == stravaganza.UnavailableType:
		if occ == nil {
			return nil
		}
		return room.Leave(ctx, occ)

	case !presence.IsAvailable():
		return notAllowed(stanzaerror.BadRequest, "unexpected presence type")

	case occ == nil:
		var created bool
		var err error
		if room == nil {
			room, created, err = s.GetOrCreateRoom(ctx, toJID.Node(), fromJID)
			if err != nil {
				return err
			}
		}
		_, err = room.join(ctx, fromJID, toJID.Resource(), presence, joinPassword(presence), created)
		if err != nil {
			s.collectRoom(room)
		}
		return err

	case occ.Nickname() != toJID.Resource():
		return room.ChangeNickname(ctx, occ, toJID.Resource())

	default:
		return room.UpdatePresence(ctx, occ, presence)
	}
}

func (s *Service) processMessage(ctx context.Context, msg *stravaganza.Message) error {
	toJID := msg.ToJID()
	room := s.GetRoom(toJID.Node())
	if room == nil {
		return ErrRoomNotFound
	}
	sender := room.occupantByUserAddress(msg.FromJID())
	if sender == nil {
		return notAllowed(stanzaerror.NotAcceptable, "%s is not a room occupant", msg.FromJID().String())
	}
	isGroupChat := msg.Attribute(stravaganza.Type) == xmpputil.GroupChatType
	switch {
	case isGroupChat && !toJID.IsFull():
		return room.Broadcast(ctx, sender, msg)
	case !isGroupChat && toJID.IsFull():
		return room.SendPrivate(ctx, sender, toJID.Resource(), msg)
	default:
		return notAllowed(stanzaerror.BadRequest, "invalid message type")
	}
}

func (s *Service) processIQ(ctx context.Context, iq *stravaganza.IQ) error {
	query := iq.ChildNamespace("query", mucAdminNamespace)
	if query == nil {
		return notAllowed(stanzaerror.ServiceUnavailable, "unsupported iq")
	}
	room := s.GetRoom(iq.ToJID().Node())
	if room == nil {
		return ErrRoomNotFound
	}
	actor := room.occupantByUserAddress(iq.FromJID())
	if actor == nil {
		return notAllowed(stanzaerror.Forbidden, "%s is not a room occupant", iq.FromJID().String())
	}
	switch iq.Attribute(stravaganza.Type) {
	case stravaganza.GetType:
		return s.sendAdminList(ctx, room, actor, iq, query)
	case stravaganza.SetType:
		return s.modifyAdminList(ctx, room, actor, iq, query)
	default:
		return notAllowed(stanzaerror.BadRequest, "unexpected iq type")
	}
}

func (s *Service) sendAdminList(ctx context.Context, room *Room, actor Occupant, iq *stravaganza.IQ, query stravaganza.Element) error {
	if actor.Role() != mucmodel.RoleModerator {
		return notAllowed(stanzaerror.Forbidden, "%s is not a moderator", actor.Nickname())
	}
	item := query.Child("item")
	if item == nil {
		return notAllowed(stanzaerror.BadRequest, "missing item filter")
	}
	var filter func(occ Occupant) bool
	switch roleStr, affStr := item.Attribute("role"), item.Attribute("affiliation"); {
	case len(affStr) > 0:
		aff, err := mucmodel.ParseAffiliation(affStr)
		if err != nil {
			return notAllowed(stanzaerror.BadRequest, "%v", err)
		}
		filter = func(occ Occupant) bool { return occ.Affiliation() == aff }
	case len(roleStr) > 0:
		role, err := mucmodel.ParseRole(roleStr)
		if err != nil {
			return notAllowed(stanzaerror.BadRequest, "%v", err)
		}
		filter = func(occ Occupant) bool { return occ.Role() == role }
	default:
		return notAllowed(stanzaerror.BadRequest, "missing item filter")
	}
	qb := stravaganza.NewBuilder("query").WithAttribute(stravaganza.Namespace, mucAdminNamespace)
	for _, occ := range room.Occupants() {
		if !filter(occ) {
			continue
		}
		m := occ.Model()
		qb.WithChild(itemElement(m, true, m.Nickname))
	}
	return s.rt.RoutePacket(ctx, iq.FromJID(), xmpputil.MakeResultIQ(iq, qb.Build()), false)
}

// modifyAdminList applies the requested changes only if every one of them is allowed.
func (s *Service) modifyAdminList(ctx context.Context, room *Room, actor Occupant, iq *stravaganza.IQ, query stravaganza.Element) error {
	items := lo.Filter(query.AllChildren(), func(el stravaganza.Element, _ int) bool {
		return el.Name() == "item"
	})
	if len(items) == 0 {
		return notAllowed(stanzaerror.BadRequest, "missing items")
	}
	changes := make([]adminChange, 0, len(items))
	for _, item := range items {
		ch, err := parseAdminItem(room, item)
		if err != nil {
			return err
		}
		if err := ch.check(room, actor); err != nil {
			return err
		}
		changes = append(changes, ch)
	}
	for _, ch := range changes {
		if err := ch.apply(ctx, room, actor); err != nil {
			return err
		}
	}
	return s.rt.RoutePacket(ctx, iq.FromJID(), xmpputil.MakeResultIQ(iq, nil), false)
}

type adminChange struct {
	nick string
	role mucmodel.Role

	// non-nil for affiliation changes
	userJID     *jid.JID
	affiliation mucmodel.Affiliation
}

func parseAdminItem(room *Room, item stravaganza.Element) (adminChange, error) {
	nick := item.Attribute("nick")
	switch roleStr, affStr := item.Attribute("role"), item.Attribute("affiliation"); {
	case len(roleStr) > 0:
		role, err := mucmodel.ParseRole(roleStr)
		if err != nil {
			return adminChange{}, notAllowed(stanzaerror.BadRequest, "%v", err)
		}
		return adminChange{nick: nick, role: role}, nil

	case len(affStr) > 0:
		aff, err := mucmodel.ParseAffiliation(affStr)
		if err != nil {
			return adminChange{}, notAllowed(stanzaerror.BadRequest, "%v", err)
		}
		userJID, err := adminItemUser(room, item)
		if err != nil {
			return adminChange{}, err
		}
		return adminChange{nick: nick, userJID: userJID, affiliation: aff}, nil

	default:
		return adminChange{}, notAllowed(stanzaerror.BadRequest, "item requires a role or an affiliation")
	}
}

func (ch adminChange) check(room *Room, actor Occupant) error {
	var err error
	if ch.userJID != nil {
		_, err = room.checkAffiliationChange(actor, ch.userJID, ch.affiliation)
	} else {
		_, err = room.checkRoleChange(actor, ch.nick, ch.role)
	}
	return err
}

func (ch adminChange) apply(ctx context.Context, room *Room, actor Occupant) error {
	if ch.userJID != nil {
		return room.SetAffiliation(ctx, actor, ch.userJID, ch.affiliation)
	}
	return room.SetRole(ctx, actor, ch.nick, ch.role)
}

func adminItemUser(room *Room, item stravaganza.Element) (*jid.JID, error) {
	if jidStr := item.Attribute("jid"); len(jidStr) > 0 {
		userJID, err := jid.NewWithString(jidStr, false)
		if err != nil {
			return nil, notAllowed(stanzaerror.JIDMalformed, "invalid item jid %q", jidStr)
		}
		return userJID, nil
	}
	occ := room.Occupant(item.Attribute("nick"))
	if occ == nil {
		return nil, notAllowed(stanzaerror.ItemNotFound, "occupant %s not found", item.Attribute("nick"))
	}
	return occ.UserAddress(), nil
}

func (s *Service) replyError(ctx context.Context, stanza stravaganza.Stanza, err error) {
	var reason stanzaerror.Reason
	if naErr, ok := IsNotAllowed(err); ok {
		reason = naErr.Reason
	} else if errors.Is(err, ErrRoomNotFound) {
		reason = stanzaerror.ItemNotFound
	} else {
		level.Error(s.logger).Log("msg", "failed to process muc stanza", "err", err)
		reason = stanzaerror.InternalServerError
	}
	errStanza := xmpputil.MakeErrorStanza(stanza, reason)
	if err := s.rt.RoutePacket(ctx, errStanza.ToJID(), errStanza, false); err != nil {
		level.Debug(s.logger).Log("msg", "failed to route muc error stanza", "err", err)
	}
}

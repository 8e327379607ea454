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
	"github.com/google/uuid"
	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	mucmodel "github.com/ortuman/jackal-muc/pkg/model/muc"
	xmpputil "github.com/ortuman/jackal-muc/pkg/util/xmpp"
)

const (
	mucNamespace      = "http://jabber.org/protocol/muc"
	mucUserNamespace  = "http://jabber.org/protocol/muc#user"
	mucAdminNamespace = "http://jabber.org/protocol/muc#admin"
)

const (
	statusNonAnonymous = "100"
	statusSelf         = "110"
	statusCreated      = "201"
	statusBanned       = "301"
	statusNickChanged  = "303"
	statusKicked       = "307"
)

func itemElement(occ *mucmodel.Occupant, includeUserAddress bool, nick string) stravaganza.Element {
	b := stravaganza.NewBuilder("item").
		WithAttribute("affiliation", occ.Affiliation.String()).
		WithAttribute("role", occ.Role.String())
	if includeUserAddress && occ.UserAddress != nil {
		b.WithAttribute("jid", occ.UserAddress.String())
	}
	if len(nick) > 0 {
		b.WithAttribute("nick", nick)
	}
	return b.Build()
}

func statusElement(code string) stravaganza.Element {
	return stravaganza.NewBuilder("status").
		WithAttribute("code", code).
		Build()
}

func userElement(children ...stravaganza.Element) stravaganza.Element {
	return stravaganza.NewBuilder("x").
		WithAttribute(stravaganza.Namespace, mucUserNamespace).
		WithChildren(children...).
		Build()
}

// occupantPresence builds the presence broadcast on behalf of occ to a room occupant.
func occupantPresence(occ *mucmodel.Occupant, to *jid.JID, typ string, includeUserAddress bool, nick string, codes ...string) *stravaganza.Presence {
	b := stravaganza.NewPresenceBuilder().
		WithAttribute(stravaganza.ID, uuid.New().String()).
		WithAttribute(stravaganza.From, occ.RoleAddress.String()).
		WithAttribute(stravaganza.To, to.String())
	if len(typ) > 0 {
		b.WithAttribute(stravaganza.Type, typ)
	}
	if typ != stravaganza.UnavailableType && occ.Presence != nil {
		for _, child := range occ.Presence.AllChildren() {
			if child.Name() == "x" {
				continue
			}
			b.WithChild(child)
		}
	}
	children := []stravaganza.Element{itemElement(occ, includeUserAddress, nick)}
	for _, code := range codes {
		children = append(children, statusElement(code))
	}
	b.WithChild(userElement(children...))

	pr, _ := b.BuildPresence()
	return pr
}

func destroyPresence(occ *mucmodel.Occupant, to *jid.JID, reason string) *stravaganza.Presence {
	destroyEl := stravaganza.NewBuilder("destroy")
	if len(reason) > 0 {
		destroyEl.WithChild(stravaganza.NewBuilder("reason").WithText(reason).Build())
	}
	pr, _ := stravaganza.NewPresenceBuilder().
		WithAttribute(stravaganza.From, occ.RoleAddress.String()).
		WithAttribute(stravaganza.To, to.String()).
		WithAttribute(stravaganza.Type, stravaganza.UnavailableType).
		WithChild(userElement(
			stravaganza.NewBuilder("item").
				WithAttribute("affiliation", mucmodel.AffiliationNone.String()).
				WithAttribute("role", mucmodel.RoleNone.String()).
				Build(),
			destroyEl.Build(),
		)).
		BuildPresence()
	return pr
}

func subjectMessage(roomJID, to *jid.JID, subject string) *stravaganza.Message {
	msg, _ := stravaganza.NewMessageBuilder().
		WithAttribute(stravaganza.ID, uuid.New().String()).
		WithAttribute(stravaganza.From, roomJID.String()).
		WithAttribute(stravaganza.To, to.String()).
		WithAttribute(stravaganza.Type, xmpputil.GroupChatType).
		WithChild(stravaganza.NewBuilder("subject").WithText(subject).Build()).
		BuildMessage()
	return msg
}

func joinPassword(presence *stravaganza.Presence) string {
	x := presence.ChildNamespace("x", mucNamespace)
	if x == nil {
		return ""
	}
	pwd := x.Child("password")
	if pwd == nil {
		return ""
	}
	return pwd.Text()
}

func isJoinPresence(presence *stravaganza.Presence) bool {
	return presence.ChildNamespace("x", mucNamespace) != nil
}

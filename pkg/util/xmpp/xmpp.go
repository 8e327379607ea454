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

package xmpputil

import (
	"bytes"
	"fmt"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/jackal-xmpp/stravaganza/v2"
	stanzaerror "github.com/jackal-xmpp/stravaganza/v2/errors/stanza"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
)

const delayTimeFormat = "2006-01-02T15:04:05Z"

const (
	delayNamespace = "urn:xmpp:delay"
	hintsNamespace = "urn:xmpp:hints"
)

// GroupChatType is the groupchat message type value.
const GroupChatType = "groupchat"

// MakeResultIQ creates a new result stanza derived from iq.
func MakeResultIQ(iq *stravaganza.IQ, queryChild stravaganza.Element) *stravaganza.IQ {
	b := iq.ResultBuilder()
	if queryChild != nil {
		b.WithChild(queryChild)
	}
	resIQ, _ := b.BuildIQ()
	return resIQ
}

// MakePresence creates presence of type typ using fromJID and toJID addresses.
func MakePresence(fromJID, toJID *jid.JID, typ string, children []stravaganza.Element) *stravaganza.Presence {
	pr, _ := stravaganza.NewPresenceBuilder().
		WithAttribute(stravaganza.From, fromJID.String()).
		WithAttribute(stravaganza.To, toJID.String()).
		WithAttribute(stravaganza.Type, typ).
		WithChildren(children...).
		BuildPresence()
	return pr
}

// MakeErrorStanza creates an error stanza using errReason as reason.
func MakeErrorStanza(stanza stravaganza.Stanza, errReason stanzaerror.Reason) stravaganza.Stanza {
	errStanza, _ := stanzaerror.E(errReason, stanza).
		Stanza(false)
	return errStanza
}

// MakeDelayMessage creates a new message adding delayed information.
func MakeDelayMessage(stanza stravaganza.Stanza, stamp time.Time, from, text string) *stravaganza.Message {
	sb := stravaganza.NewBuilderFromElement(stanza)
	sb.WithChild(
		stravaganza.NewBuilder("delay").
			WithAttribute(stravaganza.Namespace, delayNamespace).
			WithAttribute(stravaganza.From, from).
			WithAttribute("stamp", stamp.UTC().Format(delayTimeFormat)).
			WithText(text).
			Build(),
	)
	dMsg, _ := sb.BuildMessage()
	return dMsg
}

// RewriteAddresses returns a copy of stanza with from and to attributes replaced.
// A nil address leaves the corresponding attribute untouched.
func RewriteAddresses(stanza stravaganza.Stanza, from, to *jid.JID) (stravaganza.Stanza, error) {
	b := stravaganza.NewBuilderFromElement(stanza)
	if from != nil {
		b.WithAttribute(stravaganza.From, from.String())
	}
	if to != nil {
		b.WithAttribute(stravaganza.To, to.String())
	}
	switch stanza.(type) {
	case *stravaganza.Presence:
		return b.BuildPresence()
	case *stravaganza.Message:
		return b.BuildMessage()
	default:
		return b.BuildIQ()
	}
}

// IsNoStoreMessage tells whether msg carries a no-store processing hint.
func IsNoStoreMessage(msg *stravaganza.Message) bool {
	return msg.ChildNamespace("no-store", hintsNamespace) != nil
}

// MessageType returns msg type attribute, defaulting to normal.
func MessageType(msg *stravaganza.Message) string {
	typ := msg.Attribute(stravaganza.Type)
	if len(typ) == 0 {
		return stravaganza.NormalType
	}
	return typ
}

// SerializedSize returns the length in bytes of the XML serialization of el.
func SerializedSize(el stravaganza.Element) int {
	buf := bytes.NewBuffer(nil)
	if err := el.ToXML(buf, true); err != nil {
		return 0
	}
	return buf.Len()
}

// MarshalStanza returns stanza binary representation.
func MarshalStanza(stanza stravaganza.Stanza) ([]byte, error) {
	return proto.Marshal(stanza.Proto())
}

// UnmarshalStanza decodes a stanza from its binary representation.
func UnmarshalStanza(b []byte) (stravaganza.Stanza, error) {
	var pb stravaganza.PBElement
	if err := proto.Unmarshal(b, &pb); err != nil {
		return nil, err
	}
	sb := stravaganza.NewBuilderFromProto(&pb)
	name := sb.Build().Name()
	switch name {
	case "message":
		return sb.BuildMessage()
	case "presence":
		return sb.BuildPresence()
	case "iq":
		return sb.BuildIQ()
	default:
		return nil, fmt.Errorf("xmpputil: unexpected stanza element: %s", name)
	}
}

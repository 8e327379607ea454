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

package router

import (
	"errors"

	"github.com/jackal-xmpp/stravaganza/v2"
	xmpputil "github.com/ortuman/jackal-muc/pkg/util/xmpp"
	"google.golang.org/protobuf/encoding/protowire"
)

// RouteMessageType is the cluster message type used to forward stanzas to their owning node.
const RouteMessageType = "route"

const (
	fwdToField     protowire.Number = 1
	fwdStanzaField protowire.Number = 2
)

var errMalformedForward = errors.New("router: malformed forwarded stanza")

func encodeForward(to string, stanza stravaganza.Stanza) ([]byte, error) {
	sb, err := xmpputil.MarshalStanza(stanza)
	if err != nil {
		return nil, err
	}
	var b []byte
	b = protowire.AppendTag(b, fwdToField, protowire.BytesType)
	b = protowire.AppendString(b, to)
	b = protowire.AppendTag(b, fwdStanzaField, protowire.BytesType)
	b = protowire.AppendBytes(b, sb)
	return b, nil
}

func decodeForward(b []byte) (to string, stanza stravaganza.Stanza, err error) {
	var sb []byte
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 || typ != protowire.BytesType {
			return "", nil, errMalformedForward
		}
		b = b[n:]

		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return "", nil, errMalformedForward
		}
		b = b[n:]

		switch num {
		case fwdToField:
			to = string(v)
		case fwdStanzaField:
			sb = v
		}
	}
	if len(to) == 0 || len(sb) == 0 {
		return "", nil, errMalformedForward
	}
	stanza, err = xmpputil.UnmarshalStanza(sb)
	if err != nil {
		return "", nil, err
	}
	return to, stanza, nil
}

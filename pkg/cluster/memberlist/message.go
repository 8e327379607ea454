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

package memberlist

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

const (
	msgTypeField    protowire.Number = 1
	msgFromField    protowire.Number = 2
	msgPayloadField protowire.Number = 3
)

var errMalformedMessage = errors.New("memberlist: malformed message")

// Message is the envelope exchanged between cluster nodes.
type Message struct {
	// Type selects the handler that processes the message on the receiving node.
	Type string

	// From is the sender node identifier.
	From string

	// Payload is the opaque handler specific message body.
	Payload []byte
}

func encodeMessage(msg Message) []byte {
	var b []byte
	b = protowire.AppendTag(b, msgTypeField, protowire.BytesType)
	b = protowire.AppendString(b, msg.Type)
	b = protowire.AppendTag(b, msgFromField, protowire.BytesType)
	b = protowire.AppendString(b, msg.From)
	b = protowire.AppendTag(b, msgPayloadField, protowire.BytesType)
	b = protowire.AppendBytes(b, msg.Payload)
	return b
}

func decodeMessage(b []byte) (Message, error) {
	var msg Message
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return Message{}, errMalformedMessage
		}
		b = b[n:]

		if typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return Message{}, errMalformedMessage
			}
			b = b[n:]
			continue
		}
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return Message{}, errMalformedMessage
		}
		b = b[n:]

		switch num {
		case msgTypeField:
			msg.Type = string(v)
		case msgFromField:
			msg.From = string(v)
		case msgPayloadField:
			msg.Payload = append([]byte(nil), v...)
		}
	}
	if len(msg.Type) == 0 {
		return Message{}, fmt.Errorf("%w: missing type", errMalformedMessage)
	}
	return msg, nil
}

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

package ownership

import (
	"errors"

	"google.golang.org/protobuf/encoding/protowire"
)

const (
	recNodeIDField  protowire.Number = 1
	recPayloadField protowire.Number = 2
)

var errMalformedRecord = errors.New("ownership: malformed record")

// Record represents an ownership cache entry.
type Record struct {
	// NodeID is the identifier of the cluster node owning the entry.
	NodeID string

	// Payload is the owner specific entry value.
	Payload []byte
}

// MarshalBinary satisfies encoding.BinaryMarshaler interface.
func (rec Record) MarshalBinary() ([]byte, error) {
	var b []byte
	b = protowire.AppendTag(b, recNodeIDField, protowire.BytesType)
	b = protowire.AppendString(b, rec.NodeID)
	b = protowire.AppendTag(b, recPayloadField, protowire.BytesType)
	b = protowire.AppendBytes(b, rec.Payload)
	return b, nil
}

// UnmarshalBinary satisfies encoding.BinaryUnmarshaler interface.
func (rec *Record) UnmarshalBinary(b []byte) error {
	var r Record
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return errMalformedRecord
		}
		b = b[n:]

		if typ != protowire.BytesType {
			if n = protowire.ConsumeFieldValue(num, typ, b); n < 0 {
				return errMalformedRecord
			}
			b = b[n:]
			continue
		}
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return errMalformedRecord
		}
		b = b[n:]

		switch num {
		case recNodeIDField:
			r.NodeID = string(v)
		case recPayloadField:
			r.Payload = append([]byte(nil), v...)
		}
	}
	if len(r.NodeID) == 0 {
		return errMalformedRecord
	}
	*rec = r
	return nil
}

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
	"errors"

	"google.golang.org/protobuf/encoding/protowire"
)

const (
	// OccupantKeyPrefix is the ownership key prefix of room occupants.
	OccupantKeyPrefix = "muc://"

	// ReplicationMessageType is the cluster message type carrying occupant updates.
	ReplicationMessageType = "muc"
)

type replicationOp uint64

const (
	opUpsertOccupant replicationOp = iota + 1
	opRemoveOccupant
	opDestroyRoom
	opSetAffiliation
)

const (
	replOpField       protowire.Number = 1
	replOccupantField protowire.Number = 2
	replAddressField  protowire.Number = 3
	replUserField     protowire.Number = 4
	replAffField      protowire.Number = 5
)

var errMalformedReplication = errors.New("muc: malformed replication message")

type replication struct {
	op       replicationOp
	occupant []byte
	address  string

	// set by opSetAffiliation
	user        string
	affiliation uint64
}

func (r replication) encode() []byte {
	var b []byte
	b = protowire.AppendTag(b, replOpField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.op))
	if len(r.occupant) > 0 {
		b = protowire.AppendTag(b, replOccupantField, protowire.BytesType)
		b = protowire.AppendBytes(b, r.occupant)
	}
	if len(r.address) > 0 {
		b = protowire.AppendTag(b, replAddressField, protowire.BytesType)
		b = protowire.AppendString(b, r.address)
	}
	if r.op == opSetAffiliation {
		b = protowire.AppendTag(b, replUserField, protowire.BytesType)
		b = protowire.AppendString(b, r.user)
		b = protowire.AppendTag(b, replAffField, protowire.VarintType)
		b = protowire.AppendVarint(b, r.affiliation)
	}
	return b
}

func decodeReplication(b []byte) (replication, error) {
	var r replication
	var hasAff bool
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return r, errMalformedReplication
		}
		b = b[n:]

		switch {
		case num == replOpField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return r, errMalformedReplication
			}
			r.op = replicationOp(v)
			b = b[n:]

		case num == replOccupantField && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return r, errMalformedReplication
			}
			r.occupant = append([]byte(nil), v...)
			b = b[n:]

		case num == replAddressField && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return r, errMalformedReplication
			}
			r.address = v
			b = b[n:]

		case num == replUserField && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return r, errMalformedReplication
			}
			r.user = v
			b = b[n:]

		case num == replAffField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return r, errMalformedReplication
			}
			r.affiliation = v
			hasAff = true
			b = b[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return r, errMalformedReplication
			}
			b = b[n:]
		}
	}
	switch {
	case r.op < opUpsertOccupant || r.op > opSetAffiliation:
		return r, errMalformedReplication
	case r.op == opSetAffiliation && (len(r.address) == 0 || len(r.user) == 0 || !hasAff):
		return r, errMalformedReplication
	}
	return r, nil
}

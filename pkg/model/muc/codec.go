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

package mucmodel

import (
	"errors"
	"fmt"

	"github.com/golang/protobuf/proto"
	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	"google.golang.org/protobuf/encoding/protowire"
)

// SchemaVersion is the occupant wire schema version.
const SchemaVersion = 1

const (
	versionField       protowire.Number = 1
	serviceDomainField protowire.Number = 2
	presenceField      protowire.Number = 3
	roleField          protowire.Number = 4
	affiliationField   protowire.Number = 5
	nicknameField      protowire.Number = 6
	voiceOnlyField     protowire.Number = 7
	roleAddressField   protowire.Number = 8
	userAddressField   protowire.Number = 9
	nodeIDField        protowire.Number = 10
)

var (
	// ErrUnsupportedVersion is returned when decoding an occupant written with an unknown schema version.
	ErrUnsupportedVersion = errors.New("mucmodel: unsupported occupant schema version")

	errMalformedOccupant = errors.New("mucmodel: malformed occupant")
)

// MarshalOccupant returns occ binary representation.
func MarshalOccupant(occ *Occupant) ([]byte, error) {
	if occ.RoleAddress == nil || occ.UserAddress == nil {
		return nil, fmt.Errorf("%w: missing occupant address", errMalformedOccupant)
	}
	role, err := encodeRole(occ.Role)
	if err != nil {
		return nil, err
	}
	aff, err := EncodeAffiliation(occ.Affiliation)
	if err != nil {
		return nil, err
	}
	var b []byte
	b = protowire.AppendTag(b, versionField, protowire.VarintType)
	b = protowire.AppendVarint(b, SchemaVersion)

	b = appendString(b, serviceDomainField, occ.ServiceDomain)

	if occ.Presence != nil {
		pb, err := proto.Marshal(occ.Presence.Proto())
		if err != nil {
			return nil, err
		}
		b = protowire.AppendTag(b, presenceField, protowire.BytesType)
		b = protowire.AppendBytes(b, pb)
	}
	b = protowire.AppendTag(b, roleField, protowire.VarintType)
	b = protowire.AppendVarint(b, role)
	b = protowire.AppendTag(b, affiliationField, protowire.VarintType)
	b = protowire.AppendVarint(b, aff)

	b = appendString(b, nicknameField, occ.Nickname)

	b = protowire.AppendTag(b, voiceOnlyField, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeBool(occ.VoiceOnly))

	b = appendString(b, roleAddressField, occ.RoleAddress.String())
	b = appendString(b, userAddressField, occ.UserAddress.String())
	b = appendString(b, nodeIDField, occ.NodeID)
	return b, nil
}

// UnmarshalOccupant decodes an occupant from its binary representation.
// Unknown fields are skipped, unknown enum values make decoding fail.
func UnmarshalOccupant(b []byte) (*Occupant, error) {
	occ := &Occupant{}

	var version uint64
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, errMalformedOccupant
		}
		b = b[n:]

		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, errMalformedOccupant
			}
			b = b[n:]

			if err := occ.setVarint(num, v, &version); err != nil {
				return nil, err
			}

		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, errMalformedOccupant
			}
			b = b[n:]

			if err := occ.setBytes(num, v); err != nil {
				return nil, err
			}

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, errMalformedOccupant
			}
			b = b[n:]
		}
	}
	if version != SchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	if err := occ.validate(); err != nil {
		return nil, err
	}
	return occ, nil
}

func (occ *Occupant) validate() error {
	var missing string
	switch {
	case len(occ.Nickname) == 0:
		missing = "nickname"
	case occ.RoleAddress == nil:
		missing = "role address"
	case occ.UserAddress == nil:
		missing = "user address"
	case len(occ.NodeID) == 0:
		missing = "node id"
	default:
		return nil
	}
	return fmt.Errorf("%w: missing %s", errMalformedOccupant, missing)
}

func (occ *Occupant) setVarint(num protowire.Number, v uint64, version *uint64) error {
	var err error
	switch num {
	case versionField:
		*version = v
	case roleField:
		occ.Role, err = decodeRole(v)
	case affiliationField:
		occ.Affiliation, err = DecodeAffiliation(v)
	case voiceOnlyField:
		occ.VoiceOnly = protowire.DecodeBool(v)
	}
	return err
}

func (occ *Occupant) setBytes(num protowire.Number, v []byte) error {
	var err error
	switch num {
	case serviceDomainField:
		occ.ServiceDomain = string(v)
	case presenceField:
		var pb stravaganza.PBElement
		if err := proto.Unmarshal(v, &pb); err != nil {
			return err
		}
		occ.Presence, err = stravaganza.NewBuilderFromProto(&pb).BuildPresence()
	case nicknameField:
		occ.Nickname = string(v)
	case roleAddressField:
		occ.RoleAddress, err = jid.NewWithString(string(v), true)
	case userAddressField:
		occ.UserAddress, err = jid.NewWithString(string(v), true)
	case nodeIDField:
		occ.NodeID = string(v)
	}
	return err
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

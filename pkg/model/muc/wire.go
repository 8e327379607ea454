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

import "errors"

var (
	// ErrUnknownRole is returned when decoding an unknown role wire value.
	ErrUnknownRole = errors.New("mucmodel: unknown role wire value")

	// ErrUnknownAffiliation is returned when decoding an unknown affiliation wire value.
	ErrUnknownAffiliation = errors.New("mucmodel: unknown affiliation wire value")
)

// Wire tables are part of the cluster protocol. Existing entries must never change;
// new values get a new index and a schema version bump.
var (
	roleToWire = map[Role]uint64{
		RoleModerator:   0,
		RoleParticipant: 1,
		RoleVisitor:     2,
		RoleNone:        3,
	}
	affiliationToWire = map[Affiliation]uint64{
		AffiliationOwner:   0,
		AffiliationAdmin:   1,
		AffiliationMember:  2,
		AffiliationOutcast: 3,
		AffiliationNone:    4,
	}

	wireToRole        = invertRoles(roleToWire)
	wireToAffiliation = invertAffiliations(affiliationToWire)
)

func encodeRole(r Role) (uint64, error) {
	v, ok := roleToWire[r]
	if !ok {
		return 0, ErrUnknownRole
	}
	return v, nil
}

func decodeRole(v uint64) (Role, error) {
	r, ok := wireToRole[v]
	if !ok {
		return RoleNone, ErrUnknownRole
	}
	return r, nil
}

// EncodeAffiliation returns the wire value of a.
func EncodeAffiliation(a Affiliation) (uint64, error) {
	v, ok := affiliationToWire[a]
	if !ok {
		return 0, ErrUnknownAffiliation
	}
	return v, nil
}

// DecodeAffiliation returns the affiliation encoded as v.
func DecodeAffiliation(v uint64) (Affiliation, error) {
	a, ok := wireToAffiliation[v]
	if !ok {
		return AffiliationNone, ErrUnknownAffiliation
	}
	return a, nil
}

func invertRoles(m map[Role]uint64) map[uint64]Role {
	res := make(map[uint64]Role, len(m))
	for k, v := range m {
		res[v] = k
	}
	return res
}

func invertAffiliations(m map[Affiliation]uint64) map[uint64]Affiliation {
	res := make(map[uint64]Affiliation, len(m))
	for k, v := range m {
		res[v] = k
	}
	return res
}

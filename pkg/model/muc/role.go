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

import "fmt"

// Role represents a session scoped occupant privilege level.
// Constants are declared in increasing privilege order.
type Role uint8

const (
	// RoleNone represents the absence of a role.
	RoleNone Role = iota

	// RoleVisitor represents a visitor occupant.
	RoleVisitor

	// RoleParticipant represents a participant occupant.
	RoleParticipant

	// RoleModerator represents a moderator occupant.
	RoleModerator
)

// Roles contains all known roles.
var Roles = []Role{RoleModerator, RoleParticipant, RoleVisitor, RoleNone}

// String satisfies fmt.Stringer interface.
func (r Role) String() string {
	switch r {
	case RoleNone:
		return "none"
	case RoleVisitor:
		return "visitor"
	case RoleParticipant:
		return "participant"
	case RoleModerator:
		return "moderator"
	}
	return fmt.Sprintf("role(%d)", uint8(r))
}

// ParseRole returns the role associated to s.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if r.String() == s {
			return r, nil
		}
	}
	return RoleNone, fmt.Errorf("mucmodel: unrecognized role: %s", s)
}

// HasVoice tells whether r is allowed to send messages to all occupants.
func (r Role) HasVoice() bool {
	return r == RoleParticipant || r == RoleModerator
}

// IsHigherThan tells whether r is more privileged than other.
func (r Role) IsHigherThan(other Role) bool {
	return r > other
}

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

// RoomConfig contains room level configuration, independent of occupancy.
type RoomConfig struct {
	Public            bool   `fig:"public"`
	Persistent        bool   `fig:"persistent"`
	PasswordProtected bool   `fig:"password_protected"`
	Password          string `fig:"password"`
	MembersOnly       bool   `fig:"members_only"`
	Moderated         bool   `fig:"moderated"`
	MaxOccupants      int    `fig:"max_occupants"`
	Subject           string `fig:"subject"`
}

// DefaultRoomRole returns the role assigned to a joining user with the given affiliation.
func (c RoomConfig) DefaultRoomRole(aff Affiliation) Role {
	switch aff {
	case AffiliationOwner, AffiliationAdmin:
		return RoleModerator
	case AffiliationMember:
		return RoleParticipant
	case AffiliationOutcast:
		return RoleNone
	}
	if c.Moderated {
		return RoleVisitor
	}
	return RoleParticipant
}

// IsFull tells whether a room with occupantCount occupants admits no new ones.
func (c RoomConfig) IsFull(occupantCount int) bool {
	return c.MaxOccupants > 0 && occupantCount >= c.MaxOccupants
}

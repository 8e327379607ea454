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
	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
)

// Occupant is the replicated state of a user presence within a room.
type Occupant struct {
	// ServiceDomain is the MUC service domain.
	ServiceDomain string

	// Presence is the last known occupant presence, addressed from RoleAddress.
	Presence *stravaganza.Presence

	// Role is the occupant role.
	Role Role

	// Affiliation is the occupant affiliation.
	Affiliation Affiliation

	// Nickname is the occupant room nickname.
	Nickname string

	// VoiceOnly tells whether the occupant was granted voice only.
	VoiceOnly bool

	// RoleAddress is the occupant room address (room@service/nickname).
	RoleAddress *jid.JID

	// UserAddress is the occupant real address.
	UserAddress *jid.JID

	// NodeID is the identifier of the cluster node owning the occupant stream.
	NodeID string
}

// HasHigherAffiliation tells whether a affiliation takes precedence over b.
func HasHigherAffiliation(a, b Affiliation) bool {
	switch a {
	case AffiliationOwner:
		return true
	case AffiliationAdmin:
		return b != AffiliationOwner
	case AffiliationMember:
		return b != AffiliationOwner && b != AffiliationAdmin
	case AffiliationNone:
		return b == AffiliationNone
	}
	return false
}

// CanChangeRole tells whether actor is allowed to set target role.
func CanChangeRole(actor, target *Occupant, role Role) bool {
	switch role {
	case RoleNone:
		return actor.Role == RoleModerator && HasHigherAffiliation(actor.Affiliation, target.Affiliation)
	case RoleVisitor:
		return actor.Role == RoleModerator && target.Role == RoleParticipant
	case RoleParticipant:
		return (actor.Role == RoleModerator && target.Role == RoleVisitor) ||
			(actor.Affiliation == AffiliationAdmin && target.Affiliation != AffiliationOwner)
	case RoleModerator:
		return actor.Affiliation == AffiliationAdmin || actor.Affiliation == AffiliationOwner
	}
	return false
}

// CanChangeAffiliation tells whether actor is allowed to set target affiliation.
func CanChangeAffiliation(actor, target *Occupant, affiliation Affiliation) bool {
	if actor.RoleAddress != nil && target.RoleAddress != nil && actor.RoleAddress.String() == target.RoleAddress.String() {
		return false
	}
	if actor.Affiliation != AffiliationAdmin && actor.Affiliation != AffiliationOwner {
		return false
	}
	switch affiliation {
	case AffiliationNone, AffiliationMember, AffiliationOutcast:
		return HasHigherAffiliation(actor.Affiliation, target.Affiliation)
	case AffiliationAdmin, AffiliationOwner:
		return actor.Affiliation == AffiliationOwner
	}
	return false
}

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

// Affiliation represents a long-lived relationship between a user and a room.
// Constants are declared in increasing privilege order.
type Affiliation uint8

const (
	// AffiliationOutcast represents a banned user.
	AffiliationOutcast Affiliation = iota

	// AffiliationNone represents the absence of an affiliation.
	AffiliationNone

	// AffiliationMember represents a room member.
	AffiliationMember

	// AffiliationAdmin represents a room admin.
	AffiliationAdmin

	// AffiliationOwner represents a room owner.
	AffiliationOwner
)

// Affiliations contains all known affiliations.
var Affiliations = []Affiliation{AffiliationOwner, AffiliationAdmin, AffiliationMember, AffiliationOutcast, AffiliationNone}

// String satisfies fmt.Stringer interface.
func (a Affiliation) String() string {
	switch a {
	case AffiliationOutcast:
		return "outcast"
	case AffiliationNone:
		return "none"
	case AffiliationMember:
		return "member"
	case AffiliationAdmin:
		return "admin"
	case AffiliationOwner:
		return "owner"
	}
	return fmt.Sprintf("affiliation(%d)", uint8(a))
}

// ParseAffiliation returns the affiliation associated to s.
func ParseAffiliation(s string) (Affiliation, error) {
	for _, a := range Affiliations {
		if a.String() == s {
			return a, nil
		}
	}
	return AffiliationNone, fmt.Errorf("mucmodel: unrecognized affiliation: %s", s)
}

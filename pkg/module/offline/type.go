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

package offline

import "fmt"

// Type defines the action applied to messages addressed to unavailable users.
type Type string

const (
	// Bounce answers every offline message with an item-not-found error.
	Bounce Type = "bounce"

	// Drop silently discards every offline message.
	Drop Type = "drop"

	// Store stores every offline message regardless of the user quota.
	Store Type = "store"

	// StoreAndBounce stores offline messages while under quota, bouncing them otherwise.
	StoreAndBounce Type = "store_and_bounce"

	// StoreAndDrop stores offline messages while under quota, dropping them otherwise.
	StoreAndDrop Type = "store_and_drop"
)

// ParseType returns the Type represented by s.
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case Bounce, Drop, Store, StoreAndBounce, StoreAndDrop:
		return t, nil
	default:
		return "", fmt.Errorf("offline: unrecognized strategy type: %s", s)
	}
}

// String satisfies fmt.Stringer interface.
func (t Type) String() string { return string(t) }

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

package hook

import (
	"github.com/jackal-xmpp/stravaganza/v2/jid"
)

const (
	// RoomCreated hook runs when a new MUC room is created.
	RoomCreated = "muc.room.created"

	// RoomDestroyed hook runs when a MUC room is destroyed.
	RoomDestroyed = "muc.room.destroyed"

	// OccupantJoined hook runs when a local occupant joins a room.
	OccupantJoined = "muc.occupant.joined"

	// OccupantLeft hook runs when a local occupant leaves a room.
	OccupantLeft = "muc.occupant.left"

	// OccupantNicknameChanged hook runs after an occupant nickname change.
	OccupantNicknameChanged = "muc.occupant.nickname_changed"
)

// MUCInfo contains all info associated to a MUC event.
type MUCInfo struct {
	// RoomJID is the event associated room address.
	RoomJID *jid.JID

	// OccupantJID is the occupant room address, if any.
	OccupantJID *jid.JID

	// UserJID is the occupant real address, if any.
	UserJID *jid.JID

	// PreviousNickname is set on nickname changes.
	PreviousNickname string
}

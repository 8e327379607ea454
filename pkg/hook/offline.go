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

import "github.com/jackal-xmpp/stravaganza/v2"

const (
	// OfflineMessageArchived hook runs after a message has been stored in a user offline queue.
	OfflineMessageArchived = "offline.message_archived"

	// OfflineMessageBounced hook runs after an offline message has been bounced back to its sender.
	OfflineMessageBounced = "offline.message_bounced"
)

// OfflineInfo contains all info associated to an offline event.
type OfflineInfo struct {
	// Username is the offline message recipient.
	Username string

	// Message is the event associated message.
	Message *stravaganza.Message
}

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

package c2s

import (
	"fmt"

	"github.com/jackal-xmpp/stravaganza/v2"
	streamerror "github.com/jackal-xmpp/stravaganza/v2/errors/stream"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
)

// StreamID represents a local C2S stream identifier.
type StreamID uint64

// String satisfies fmt.Stringer interface.
func (i StreamID) String() string {
	return fmt.Sprintf("c2s:%d", i)
}

// Stream represents a bound client stream owned by this node.
type Stream interface {
	// ID returns stream identifier.
	ID() StreamID

	// JID returns stream full address.
	JID() *jid.JID

	// Username returns stream associated username.
	Username() string

	// Resource returns stream associated resource.
	Resource() string

	// Presence returns stream last known presence or nil if none is set.
	Presence() *stravaganza.Presence

	// SendElement writes element to the underlying stream transport.
	SendElement(elem stravaganza.Element) <-chan error

	// Disconnect performs disconnection over the stream.
	Disconnect(streamErr *streamerror.Error) <-chan error

	// Done returns a channel that's closed once stream resources have been released.
	Done() <-chan struct{}
}

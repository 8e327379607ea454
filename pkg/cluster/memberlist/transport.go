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

package memberlist

import "context"

// Transport delivers typed messages between cluster nodes.
type Transport interface {
	// Handle registers the handler in charge of processing messages of a given type.
	Handle(typ string, h MessageHandler)

	// Send delivers a message to a single cluster node.
	Send(ctx context.Context, nodeID string, msg Message) error

	// Broadcast delivers a message to every cluster node but the local one.
	Broadcast(ctx context.Context, msg Message) error
}

var (
	_ Transport = (*Gossip)(nil)
	_ Transport = NopTransport{}
)

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

package interceptor

import (
	"context"

	"github.com/jackal-xmpp/stravaganza/v2"
)

// Direction represents stanza flow direction.
type Direction int8

const (
	// Incoming represents a stanza received by the server.
	Incoming Direction = iota

	// Outgoing represents a stanza sent by the server.
	Outgoing
)

// Phase represents stanza processing state.
type Phase int8

const (
	// Unprocessed represents a stanza not yet routed.
	Unprocessed Phase = iota

	// Processed represents an already routed stanza.
	Processed
)

// Kind represents a stanza kind.
type Kind int8

const (
	// MessageKind represents a message stanza.
	MessageKind Kind = iota

	// PresenceKind represents a presence stanza.
	PresenceKind

	// IQKind represents an iq stanza.
	IQKind
)

// String satisfies fmt.Stringer interface.
func (k Kind) String() string {
	switch k {
	case MessageKind:
		return "message"
	case PresenceKind:
		return "presence"
	case IQKind:
		return "iq"
	}
	return "unknown"
}

// KindOf returns stanza kind.
func KindOf(stanza stravaganza.Stanza) (Kind, bool) {
	switch stanza.(type) {
	case *stravaganza.Message:
		return MessageKind, true
	case *stravaganza.Presence:
		return PresenceKind, true
	case *stravaganza.IQ:
		return IQKind, true
	}
	return 0, false
}

// Route identifies a dispatch table entry.
type Route struct {
	Direction Direction
	Phase     Phase
	Kind      Kind
}

// HandlerFunc processes a stanza matching a dispatch table route.
type HandlerFunc func(ctx context.Context, stanza stravaganza.Stanza, session Session) error

// Dispatcher is an interceptor that routes stanzas to the handlers registered for
// their (direction, phase, kind) triple.
//
// Handlers must be registered before the dispatcher is added to a Manager.
type Dispatcher struct {
	table map[Route][]HandlerFunc
}

// NewDispatcher returns an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{table: make(map[Route][]HandlerFunc)}
}

// On appends h to the handlers associated to the given route.
func (d *Dispatcher) On(dir Direction, phase Phase, kind Kind, h HandlerFunc) *Dispatcher {
	r := Route{Direction: dir, Phase: phase, Kind: kind}
	d.table[r] = append(d.table[r], h)
	return d
}

// Handlers returns route associated handlers.
func (d *Dispatcher) Handlers(r Route) []HandlerFunc {
	return d.table[r]
}

// InterceptPacket satisfies Interceptor interface.
func (d *Dispatcher) InterceptPacket(ctx context.Context, stanza stravaganza.Stanza, session Session, incoming, processed bool) error {
	kind, ok := KindOf(stanza)
	if !ok {
		return nil
	}
	r := Route{Direction: Outgoing, Phase: Unprocessed, Kind: kind}
	if incoming {
		r.Direction = Incoming
	}
	if processed {
		r.Phase = Processed
	}
	for _, h := range d.table[r] {
		if err := h(ctx, stanza, session); err != nil {
			return err
		}
	}
	return nil
}

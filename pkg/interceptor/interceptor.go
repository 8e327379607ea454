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
	"errors"
	"fmt"
	"reflect"

	"github.com/jackal-xmpp/stravaganza/v2"
	stanzaerror "github.com/jackal-xmpp/stravaganza/v2/errors/stanza"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
)

// ErrRejectedAfterProcessing is returned when an interceptor rejects a stanza that has already been processed.
var ErrRejectedAfterProcessing = errors.New("interceptor: stanza rejected after processing")

// Session represents the stream session a stanza flows through.
type Session interface {
	// Username returns session authenticated username, empty if none.
	Username() string

	// JID returns session full address.
	JID() *jid.JID
}

// Interceptor observes and optionally vetoes stanzas before and after being processed.
type Interceptor interface {
	// InterceptPacket is invoked twice per stanza: first with processed set to false and
	// then, once the stanza has been routed, with processed set to true.
	InterceptPacket(ctx context.Context, stanza stravaganza.Stanza, session Session, incoming, processed bool) error
}

// Func is an adapter to allow the use of ordinary functions as interceptors.
type Func func(ctx context.Context, stanza stravaganza.Stanza, session Session, incoming, processed bool) error

// InterceptPacket satisfies Interceptor interface.
func (f Func) InterceptPacket(ctx context.Context, stanza stravaganza.Stanza, session Session, incoming, processed bool) error {
	return f(ctx, stanza, session, incoming, processed)
}

// RejectedError is returned by an interceptor to veto a stanza.
type RejectedError struct {
	// Reason is the stanza error condition returned to the sender.
	Reason stanzaerror.Reason

	silent bool
}

// Reject returns a rejection to be answered with a reason stanza error.
func Reject(reason stanzaerror.Reason) *RejectedError {
	return &RejectedError{Reason: reason}
}

// Drop returns a rejection that silently discards the stanza.
func Drop() *RejectedError {
	return &RejectedError{silent: true}
}

// Silent tells whether the rejected stanza must be discarded without answering.
func (e *RejectedError) Silent() bool { return e.silent }

// Error satisfies error interface.
func (e *RejectedError) Error() string {
	if e.silent {
		return "interceptor: stanza dropped"
	}
	return fmt.Sprintf("interceptor: stanza rejected: %v", e.Reason)
}

// IsRejected tells whether err is or wraps a rejection.
func IsRejected(err error) (*RejectedError, bool) {
	var rejErr *RejectedError
	if errors.As(err, &rejErr) {
		return rejErr, true
	}
	return nil, false
}

func sameInterceptor(a, b Interceptor) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	switch {
	case ta.Kind() == reflect.Func:
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	case ta.Comparable():
		return a == b
	default:
		return false
	}
}

func typeName(i Interceptor) string {
	return fmt.Sprintf("%T", i)
}

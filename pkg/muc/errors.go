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

package muc

import (
	"errors"
	"fmt"

	stanzaerror "github.com/jackal-xmpp/stravaganza/v2/errors/stanza"
)

// ErrRoomNotFound is returned when a room is not registered within the service.
var ErrRoomNotFound = errors.New("muc: room not found")

// NotAllowedError represents a policy denial. Reason is the stanza error condition
// reported back to the requesting entity.
type NotAllowedError struct {
	Reason stanzaerror.Reason
	msg    string
}

func notAllowed(reason stanzaerror.Reason, format string, args ...interface{}) *NotAllowedError {
	return &NotAllowedError{Reason: reason, msg: fmt.Sprintf(format, args...)}
}

// Error satisfies error interface.
func (e *NotAllowedError) Error() string {
	return "muc: " + e.msg
}

// IsNotAllowed tells whether err is a policy denial, returning it if so.
func IsNotAllowed(err error) (*NotAllowedError, bool) {
	var naErr *NotAllowedError
	if errors.As(err, &naErr) {
		return naErr, true
	}
	return nil, false
}

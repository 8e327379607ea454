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

package usermodel

import (
	"errors"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

const (
	usernameField     protowire.Number = 1
	registeredAtField protowire.Number = 2
)

var errMalformedUser = errors.New("usermodel: malformed user")

// User represents a registered local user.
type User struct {
	Username     string
	RegisteredAt time.Time
}

// MarshalBinary satisfies encoding.BinaryMarshaler interface.
func (u *User) MarshalBinary() ([]byte, error) {
	var b []byte
	b = protowire.AppendTag(b, usernameField, protowire.BytesType)
	b = protowire.AppendString(b, u.Username)
	if !u.RegisteredAt.IsZero() {
		b = protowire.AppendTag(b, registeredAtField, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(u.RegisteredAt.UnixNano()))
	}
	return b, nil
}

// UnmarshalBinary satisfies encoding.BinaryUnmarshaler interface.
func (u *User) UnmarshalBinary(b []byte) error {
	var usr User
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return errMalformedUser
		}
		b = b[n:]

		switch {
		case num == usernameField && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return errMalformedUser
			}
			usr.Username = v
			b = b[n:]

		case num == registeredAtField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return errMalformedUser
			}
			usr.RegisteredAt = time.Unix(0, int64(v)).UTC()
			b = b[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return errMalformedUser
			}
			b = b[n:]
		}
	}
	*u = usr
	return nil
}

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

package boltdb

import (
	"context"

	usermodel "github.com/ortuman/jackal-muc/pkg/model/user"
)

const userKey = "usr"

// UpsertUser satisfies repository.User interface.
func (r *Repository) UpsertUser(_ context.Context, user *usermodel.User) error {
	b, err := user.MarshalBinary()
	if err != nil {
		return err
	}
	return r.update(func(bs buckets) error {
		return bs.put(userBucket(user.Username), userKey, b)
	})
}

// DeleteUser satisfies repository.User interface.
func (r *Repository) DeleteUser(_ context.Context, username string) error {
	return r.update(func(bs buckets) error {
		return bs.drop(userBucket(username))
	})
}

// FetchUser satisfies repository.User interface.
func (r *Repository) FetchUser(_ context.Context, username string) (*usermodel.User, error) {
	var b []byte
	if err := r.view(func(bs buckets) error {
		b = bs.get(userBucket(username), userKey)
		return nil
	}); err != nil || b == nil {
		return nil, err
	}
	var usr usermodel.User
	if err := usr.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return &usr, nil
}

// UserExists satisfies repository.User interface.
func (r *Repository) UserExists(_ context.Context, username string) (ok bool, err error) {
	err = r.view(func(bs buckets) error {
		ok = bs.exists(userBucket(username))
		return nil
	})
	return
}

func userBucket(username string) string { return "user:" + username }

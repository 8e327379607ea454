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

package cachedrepository

import (
	"context"

	usermodel "github.com/ortuman/jackal-muc/pkg/model/user"
	"github.com/ortuman/jackal-muc/pkg/storage/repository"
)

const userKey = "usr"

type cachedUserRep struct {
	rt  readThrough
	rep repository.User
}

func (c *cachedUserRep) UpsertUser(ctx context.Context, user *usermodel.User) error {
	return c.rt.writeThrough(ctx, userNS(user.Username), []string{userKey}, func(ctx context.Context) error {
		return c.rep.UpsertUser(ctx, user)
	})
}

func (c *cachedUserRep) DeleteUser(ctx context.Context, username string) error {
	return c.rt.writeThrough(ctx, userNS(username), []string{userKey}, func(ctx context.Context) error {
		return c.rep.DeleteUser(ctx, username)
	})
}

func (c *cachedUserRep) FetchUser(ctx context.Context, username string) (*usermodel.User, error) {
	return load(ctx, c.rt, userNS(username), userKey, func(ctx context.Context) (*usermodel.User, error) {
		return c.rep.FetchUser(ctx, username)
	})
}

func (c *cachedUserRep) UserExists(ctx context.Context, username string) (bool, error) {
	return c.rt.contains(ctx, userNS(username), userKey, func(ctx context.Context) (bool, error) {
		return c.rep.UserExists(ctx, username)
	})
}

func userNS(username string) string { return "usr:" + username }

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

package measuredrepository

import (
	"context"

	usermodel "github.com/ortuman/jackal-muc/pkg/model/user"
	"github.com/ortuman/jackal-muc/pkg/storage/repository"
)

type measuredUserRep struct {
	rep repository.User
}

func (m *measuredUserRep) UpsertUser(ctx context.Context, user *usermodel.User) error {
	return observe(userEntity, upsertOp, func() error { return m.rep.UpsertUser(ctx, user) })
}

func (m *measuredUserRep) DeleteUser(ctx context.Context, username string) error {
	return observe(userEntity, deleteOp, func() error { return m.rep.DeleteUser(ctx, username) })
}

func (m *measuredUserRep) FetchUser(ctx context.Context, username string) (*usermodel.User, error) {
	return observeValue(userEntity, fetchOp, func() (*usermodel.User, error) {
		return m.rep.FetchUser(ctx, username)
	})
}

func (m *measuredUserRep) UserExists(ctx context.Context, username string) (bool, error) {
	return observeValue(userEntity, fetchOp, func() (bool, error) {
		return m.rep.UserExists(ctx, username)
	})
}

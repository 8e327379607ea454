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

	"github.com/ortuman/jackal-muc/pkg/storage/repository"
)

type measuredPropertiesRep struct {
	rep repository.Properties
}

func (m *measuredPropertiesRep) UpsertProperty(ctx context.Context, key, value string) error {
	return observe(propertyEntity, upsertOp, func() error { return m.rep.UpsertProperty(ctx, key, value) })
}

// FetchProperty counts a missing key as a successful fetch.
func (m *measuredPropertiesRep) FetchProperty(ctx context.Context, key string) (val string, ok bool, err error) {
	err = observe(propertyEntity, fetchOp, func() error {
		val, ok, err = m.rep.FetchProperty(ctx, key)
		return err
	})
	return
}

func (m *measuredPropertiesRep) DeleteProperty(ctx context.Context, key string) error {
	return observe(propertyEntity, deleteOp, func() error { return m.rep.DeleteProperty(ctx, key) })
}

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

	"github.com/ortuman/jackal-muc/pkg/storage/repository"
)

const propertiesNS = "props"

// propertyValue is the cached form of a single server property.
type propertyValue string

func (p *propertyValue) MarshalBinary() ([]byte, error) { return []byte(*p), nil }

func (p *propertyValue) UnmarshalBinary(b []byte) error {
	*p = propertyValue(b)
	return nil
}

type cachedPropertiesRep struct {
	rt  readThrough
	rep repository.Properties
}

func (c *cachedPropertiesRep) UpsertProperty(ctx context.Context, key, value string) error {
	return c.rt.writeThrough(ctx, propertiesNS, []string{key}, func(ctx context.Context) error {
		return c.rep.UpsertProperty(ctx, key, value)
	})
}

func (c *cachedPropertiesRep) FetchProperty(ctx context.Context, key string) (string, bool, error) {
	v, err := load(ctx, c.rt, propertiesNS, key, func(ctx context.Context) (*propertyValue, error) {
		val, ok, err := c.rep.FetchProperty(ctx, key)
		if err != nil || !ok {
			return nil, err
		}
		pv := propertyValue(val)
		return &pv, nil
	})
	if err != nil || v == nil {
		return "", false, err
	}
	return string(*v), true, nil
}

func (c *cachedPropertiesRep) DeleteProperty(ctx context.Context, key string) error {
	return c.rt.writeThrough(ctx, propertiesNS, []string{key}, func(ctx context.Context) error {
		return c.rep.DeleteProperty(ctx, key)
	})
}

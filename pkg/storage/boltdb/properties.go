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

import "context"

const propertiesBucket = "properties"

// UpsertProperty satisfies repository.Properties interface.
func (r *Repository) UpsertProperty(_ context.Context, key, value string) error {
	return r.update(func(bs buckets) error {
		return bs.put(propertiesBucket, key, []byte(value))
	})
}

// FetchProperty satisfies repository.Properties interface.
func (r *Repository) FetchProperty(_ context.Context, key string) (value string, ok bool, err error) {
	err = r.view(func(bs buckets) error {
		if b := bs.get(propertiesBucket, key); b != nil {
			value, ok = string(b), true
		}
		return nil
	})
	return
}

// DeleteProperty satisfies repository.Properties interface.
func (r *Repository) DeleteProperty(_ context.Context, key string) error {
	return r.update(func(bs buckets) error {
		return bs.del(propertiesBucket, key)
	})
}

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

package cache

import (
	"context"

	"github.com/ortuman/jackal-muc/pkg/cluster/kv"
)

// KVCache is a Cache implementation on top of the cluster KV.
type KVCache struct {
	kv kv.KV
}

// NewKVCache returns a new KV backed Cache.
func NewKVCache(kv kv.KV) *KVCache {
	return &KVCache{kv: kv}
}

// Get returns the value associated to key, or nil if not present.
func (c *KVCache) Get(ctx context.Context, key string) ([]byte, error) {
	return c.kv.Get(ctx, key)
}

// GetPrefix returns all entries whose key starts with prefix.
func (c *KVCache) GetPrefix(ctx context.Context, prefix string) (map[string][]byte, error) {
	return c.kv.GetPrefix(ctx, prefix)
}

// Put stores val associated to key.
func (c *KVCache) Put(ctx context.Context, key string, val []byte) error {
	return c.kv.Put(ctx, key, string(val))
}

// Del removes key associated entry.
func (c *KVCache) Del(ctx context.Context, key string) error {
	return c.kv.Del(ctx, key)
}

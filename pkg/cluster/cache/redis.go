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
	"errors"
	"strings"

	"github.com/go-redis/redis/v8"
)

const scanCount = 256

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// RedisCache is a Cache implementation storing all entries as fields of a single redis hash.
type RedisCache struct {
	rdb     *redis.Client
	hashKey string
}

// NewRedisCache returns an initialized RedisCache instance.
func NewRedisCache(rdb *redis.Client, hashKey string) *RedisCache {
	return &RedisCache{rdb: rdb, hashKey: hashKey}
}

// Get returns the value associated to key, or nil if not present.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.rdb.HGet(ctx, c.hashKey, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

// GetPrefix returns all entries whose key starts with prefix.
func (c *RedisCache) GetPrefix(ctx context.Context, prefix string) (map[string][]byte, error) {
	retVal := make(map[string][]byte)

	match := globEscaper.Replace(prefix) + "*"

	var cursor uint64
	for {
		kvs, next, err := c.rdb.HScan(ctx, c.hashKey, cursor, match, scanCount).Result()
		if err != nil {
			return nil, err
		}
		for i := 0; i+1 < len(kvs); i += 2 {
			retVal[kvs[i]] = []byte(kvs[i+1])
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	return retVal, nil
}

// Put stores val associated to key.
func (c *RedisCache) Put(ctx context.Context, key string, val []byte) error {
	return c.rdb.HSet(ctx, c.hashKey, key, val).Err()
}

// Del removes key associated entry.
func (c *RedisCache) Del(ctx context.Context, key string) error {
	return c.rdb.HDel(ctx, c.hashKey, key).Err()
}

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

// Package cache provides the cluster shared map used to keep ownership records.
package cache

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/ortuman/jackal-muc/pkg/cluster/kv"
)

const (
	kvCacheType    = "kv"
	redisCacheType = "redis"
)

// Cache represents a cluster replicated map.
type Cache interface {
	// Get returns the value associated to key, or nil if not present.
	Get(ctx context.Context, key string) ([]byte, error)

	// GetPrefix returns all entries whose key starts with prefix.
	GetPrefix(ctx context.Context, prefix string) (map[string][]byte, error)

	// Put stores val associated to key, overwriting any previous value.
	Put(ctx context.Context, key string, val []byte) error

	// Del removes key associated entry.
	Del(ctx context.Context, key string) error
}

// RedisConfig contains redis cache configuration.
type RedisConfig struct {
	Addr     string `fig:"addr" default:"localhost:6379"`
	Password string `fig:"password"`
	DB       int    `fig:"db"`
	HashKey  string `fig:"hash_key" default:"jackal-muc:ownership"`
}

// Config contains cluster cache configuration.
type Config struct {
	Type  string      `fig:"type" default:"kv"`
	Redis RedisConfig `fig:"redis"`
}

// New returns a Cache of the configured type. kv backs the 'kv' cache type.
func New(cfg Config, kv kv.KV) (Cache, error) {
	switch cfg.Type {
	case kvCacheType:
		return NewKVCache(kv), nil
	case redisCacheType:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return NewRedisCache(rdb, cfg.Redis.HashKey), nil
	default:
		return nil, fmt.Errorf("cache: unrecognized type: %s", cfg.Type)
	}
}

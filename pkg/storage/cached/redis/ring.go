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

package rediscache

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-redis/redis/v8"
	dnsutil "github.com/ortuman/jackal-muc/pkg/util/dns"
)

const (
	resolveInterval = 5 * time.Second
	resyncTimeout   = 5 * time.Second
)

type node struct {
	addr   string
	client redis.UniversalClient
}

// ring shards namespaces over redis nodes with a jump consistent hash.
// Nodes are kept sorted by address so every cluster member picks the same node for a namespace.
type ring struct {
	cfg    Config
	logger log.Logger
	rsv    *dnsutil.SRVResolver

	mu    sync.RWMutex
	nodes []node
}

func newRing(cfg Config, logger log.Logger) *ring {
	return &ring{cfg: cfg, logger: logger}
}

func (r *ring) pick(ns string) redis.Cmdable {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.nodes) == 1 {
		return r.nodes[0].client
	}
	return r.nodes[jumpHash(xxhash.Sum64String(ns), len(r.nodes))].client
}

// start connects to the configured addresses, or to the SRV record targets when one is set.
// SRV targets are then followed for the whole ring lifetime.
func (r *ring) start(ctx context.Context) error {
	if len(r.cfg.SRV) == 0 {
		return r.resync(ctx, r.cfg.Addresses, nil)
	}
	srv, proto, name, err := dnsutil.ParseSRVRecord(r.cfg.SRV)
	if err != nil {
		return err
	}
	r.rsv = dnsutil.NewSRVResolver(srv, proto, name, resolveInterval, r.logger)
	if err := r.rsv.Resolve(ctx); err != nil {
		return err
	}
	if err := r.resync(ctx, r.rsv.Targets(), nil); err != nil {
		return err
	}
	go r.follow()
	return nil
}

func (r *ring) stop(_ context.Context) error {
	if r.rsv != nil {
		r.rsv.Close()
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range r.nodes {
		_ = n.client.Close()
	}
	r.nodes = nil
	return nil
}

func (r *ring) follow() {
	for upd := range r.rsv.Update() {
		ctx, cancel := context.WithTimeout(context.Background(), resyncTimeout)
		if err := r.resync(ctx, upd.NewTargets, upd.OldTargets); err != nil {
			level.Warn(r.logger).Log("msg", "failed to resync redis ring", "err", err)
		}
		cancel()
	}
}

// resync dials added addresses and closes removed ones. On a dial failure the ring is left untouched.
func (r *ring) resync(ctx context.Context, added, removed []string) error {
	dialed := make([]node, 0, len(added))
	for _, addr := range added {
		client := r.dial(addr)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			for _, n := range dialed {
				_ = n.client.Close()
			}
			return err
		}
		dialed = append(dialed, node{addr: addr, client: client})
	}
	gone := make(map[string]struct{}, len(removed))
	for _, addr := range removed {
		gone[addr] = struct{}{}
	}

	r.mu.Lock()
	nodes := make([]node, 0, len(r.nodes)+len(dialed))
	for _, n := range r.nodes {
		if _, ok := gone[n.addr]; ok {
			_ = n.client.Close()
			continue
		}
		nodes = append(nodes, n)
	}
	nodes = append(nodes, dialed...)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].addr < nodes[j].addr })
	r.nodes = nodes
	r.mu.Unlock()

	if len(added) > 0 || len(removed) > 0 {
		level.Debug(r.logger).Log("msg", "redis ring updated", "added", len(added), "removed", len(removed), "nodes", len(nodes))
	}
	return nil
}

func (r *ring) dial(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Username:     r.cfg.Username,
		Password:     r.cfg.Password,
		DB:           r.cfg.DB,
		DialTimeout:  r.cfg.DialTimeout,
		ReadTimeout:  r.cfg.ReadTimeout,
		WriteTimeout: r.cfg.WriteTimeout,
	})
}

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

package ownership

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/ortuman/jackal-muc/pkg/cluster/cache"
	"github.com/ortuman/jackal-muc/pkg/cluster/instance"
	"github.com/ortuman/jackal-muc/pkg/cluster/locker"
	"github.com/ortuman/jackal-muc/pkg/hook"
	"golang.org/x/sync/errgroup"
)

const lockPrefix = "own://"

// ErrAlreadyOwned is returned by Claim when the entry belongs to a different cluster node.
var ErrAlreadyOwned = errors.New("ownership: entry owned by another node")

// Owner represents a component whose cluster state lives under a cache key prefix.
type Owner interface {
	// Prefix returns the cache key prefix handled by this owner.
	Prefix() string

	// Rederive is invoked once the entries owned by a lost node have been evicted.
	// Implementations drop the evicted remote state and re-claim from live local state.
	Rederive(ctx context.Context, lostNodeID string, evicted map[string]Record) error
}

// Manager keeps track of which cluster node owns every replicated entry.
type Manager struct {
	cache  cache.Cache
	locker locker.Locker
	hk     *hook.Hooks
	logger kitlog.Logger

	mu     sync.RWMutex
	owners []Owner
}

// NewManager returns a new initialized ownership manager.
func NewManager(c cache.Cache, lk locker.Locker, hk *hook.Hooks, logger kitlog.Logger) *Manager {
	return &Manager{
		cache:  c,
		locker: lk,
		hk:     hk,
		logger: logger,
	}
}

// RegisterOwner registers an owner to be notified on failover.
func (m *Manager) RegisterOwner(o Owner) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.owners = append(m.owners, o)
}

// Claim advertises key as owned by the local node.
// An entry already owned by the local node is overwritten.
func (m *Manager) Claim(ctx context.Context, key string, payload []byte) error {
	return m.withLock(ctx, key, func() error {
		rec, err := m.lookup(ctx, key)
		if err != nil {
			return err
		}
		if rec != nil && rec.NodeID != instance.ID() {
			return fmt.Errorf("%w: %s", ErrAlreadyOwned, key)
		}
		b, err := Record{NodeID: instance.ID(), Payload: payload}.MarshalBinary()
		if err != nil {
			return err
		}
		return m.cache.Put(ctx, key, b)
	})
}

// Release removes key entry in case it is owned by the local node.
func (m *Manager) Release(ctx context.Context, key string) error {
	return m.withLock(ctx, key, func() error {
		rec, err := m.lookup(ctx, key)
		if err != nil {
			return err
		}
		if rec == nil || rec.NodeID != instance.ID() {
			return nil
		}
		return m.cache.Del(ctx, key)
	})
}

// Lookup returns key associated record, or nil if not present.
func (m *Manager) Lookup(ctx context.Context, key string) (*Record, error) {
	return m.lookup(ctx, key)
}

// Records returns all records whose key starts with prefix.
func (m *Manager) Records(ctx context.Context, prefix string) (map[string]Record, error) {
	vs, err := m.cache.GetPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}
	res := make(map[string]Record, len(vs))
	for k, b := range vs {
		var rec Record
		if err := rec.UnmarshalBinary(b); err != nil {
			level.Warn(m.logger).Log("msg", "skipping malformed ownership record", "key", k, "err", err)
			continue
		}
		res[k] = rec
	}
	return res, nil
}

// Failover evicts every entry owned by nodeID and lets registered owners re-derive their state.
func (m *Manager) Failover(ctx context.Context, nodeID string) error {
	t0 := time.Now()

	m.mu.RLock()
	owners := make([]Owner, len(m.owners))
	copy(owners, m.owners)
	m.mu.RUnlock()

	evicted := make([]map[string]Record, len(owners))
	for i, o := range owners {
		ev, err := m.evict(ctx, o.Prefix(), nodeID)
		if err != nil {
			return err
		}
		evicted[i] = ev
		evictedEntries.WithLabelValues(o.Prefix()).Add(float64(len(ev)))
	}
	g, gCtx := errgroup.WithContext(ctx)
	for i, o := range owners {
		o, ev := o, evicted[i]
		g.Go(func() error {
			if err := o.Rederive(gCtx, nodeID, ev); err != nil {
				return fmt.Errorf("ownership: failed to re-derive %s entries: %w", o.Prefix(), err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	failoverDurationBucket.Observe(time.Since(t0).Seconds())

	level.Info(m.logger).Log("msg", "ownership failover completed", "lost_node_id", nodeID, "duration", time.Since(t0))
	return nil
}

// Start starts listening to cluster member list changes.
func (m *Manager) Start(_ context.Context) error {
	m.hk.AddHook(hook.MemberListUpdated, m.onMemberListUpdated, hook.DefaultPriority)
	return nil
}

// Stop stops listening to cluster member list changes.
func (m *Manager) Stop(_ context.Context) error {
	m.hk.RemoveHook(hook.MemberListUpdated, m.onMemberListUpdated)
	return nil
}

func (m *Manager) onMemberListUpdated(ctx context.Context, execCtx *hook.ExecutionContext) error {
	inf := execCtx.Info.(*hook.MemberListInfo)
	for _, nodeID := range inf.UnregisteredKeys {
		if err := m.Failover(ctx, nodeID); err != nil {
			level.Error(m.logger).Log("msg", "ownership failover failed", "lost_node_id", nodeID, "err", err)
		}
	}
	return nil
}

func (m *Manager) evict(ctx context.Context, prefix, nodeID string) (map[string]Record, error) {
	recs, err := m.Records(ctx, prefix)
	if err != nil {
		return nil, err
	}
	res := make(map[string]Record)
	for k, rec := range recs {
		if rec.NodeID != nodeID {
			continue
		}
		err := m.withLock(ctx, k, func() error {
			// re-validate, entry may have been re-claimed meanwhile
			cur, err := m.lookup(ctx, k)
			if err != nil {
				return err
			}
			if cur == nil || cur.NodeID != nodeID {
				return nil
			}
			if err := m.cache.Del(ctx, k); err != nil {
				return err
			}
			res[k] = *cur
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (m *Manager) lookup(ctx context.Context, key string) (*Record, error) {
	b, err := m.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}
	var rec Record
	if err := rec.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (m *Manager) withLock(ctx context.Context, key string, fn func() error) error {
	lk, err := m.locker.AcquireLock(ctx, lockPrefix+key)
	if err != nil {
		return err
	}
	defer func() { _ = lk.Release(ctx) }()

	return fn()
}

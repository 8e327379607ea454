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

package kv

import (
	"context"
	"strings"
	"sync"

	kvtypes "github.com/ortuman/jackal-muc/pkg/cluster/kv/types"
)

const watchChanBufferSize = 64

type watcher struct {
	prefix      string
	withPrevVal bool
	ch          chan WatchResp
}

// Memory is an in-process KV implementation, suitable for single node deployments.
type Memory struct {
	mu       sync.RWMutex
	values   map[string][]byte
	watchers map[*watcher]struct{}
}

// NewMemory returns a new empty in-process KV.
func NewMemory() *Memory {
	return &Memory{
		values:   make(map[string][]byte),
		watchers: make(map[*watcher]struct{}),
	}
}

// Put stores a new value associated to a given key.
func (m *Memory) Put(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.values[key]
	m.values[key] = []byte(value)

	m.notify(kvtypes.WatchEvent{Type: kvtypes.Put, Key: key, Val: []byte(value), PrevVal: prev})
	return nil
}

// Get retrieves a value associated to a given key.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.values[key], nil
}

// GetPrefix retrieves all values whose key matches prefix.
func (m *Memory) GetPrefix(_ context.Context, prefix string) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	retVal := make(map[string][]byte)
	for k, v := range m.values {
		if strings.HasPrefix(k, prefix) {
			retVal[k] = v
		}
	}
	return retVal, nil
}

// Del deletes a value associated to a given key.
func (m *Memory) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev, ok := m.values[key]
	if !ok {
		return nil
	}
	delete(m.values, key)

	m.notify(kvtypes.WatchEvent{Type: kvtypes.Del, Key: key, PrevVal: prev})
	return nil
}

// Watch watches on a key prefix. Returned channel is closed once ctx is done.
func (m *Memory) Watch(ctx context.Context, prefix string, withPrevVal bool) <-chan WatchResp {
	w := &watcher{
		prefix:      prefix,
		withPrevVal: withPrevVal,
		ch:          make(chan WatchResp, watchChanBufferSize),
	}
	m.mu.Lock()
	m.watchers[w] = struct{}{}
	m.mu.Unlock()

	go func() {
		<-ctx.Done()

		m.mu.Lock()
		delete(m.watchers, w)
		close(w.ch)
		m.mu.Unlock()
	}()
	return w.ch
}

// Start satisfies KV interface.
func (m *Memory) Start(_ context.Context) error { return nil }

// Stop satisfies KV interface.
func (m *Memory) Stop(_ context.Context) error { return nil }

// notify must be called holding the write lock.
func (m *Memory) notify(ev kvtypes.WatchEvent) {
	for w := range m.watchers {
		if !strings.HasPrefix(ev.Key, w.prefix) {
			continue
		}
		wev := ev
		if !w.withPrevVal {
			wev.PrevVal = nil
		}
		select {
		case w.ch <- WatchResp{Events: []kvtypes.WatchEvent{wev}}:
		default:
			// slow watcher, drop event
		}
	}
}

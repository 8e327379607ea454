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
	"strconv"
	"time"

	"github.com/ortuman/jackal-muc/pkg/cluster/instance"
)

const (
	putOpType       = "put"
	getOpType       = "get"
	getPrefixOpType = "get_prefix"
	deleteOpType    = "delete"
)

// Measured decorates a KV reporting operation counters, latencies and open watches.
type Measured struct {
	kv KV
}

// NewMeasured returns an initialized measured KV instance.
func NewMeasured(kv KV) *Measured {
	return &Measured{kv: kv}
}

// Unwrap returns the underlying KV.
func (m *Measured) Unwrap() KV { return m.kv }

// Put satisfies KV interface.
func (m *Measured) Put(ctx context.Context, key string, value string) error {
	return observe(putOpType, func() error { return m.kv.Put(ctx, key, value) })
}

// Get satisfies KV interface.
func (m *Measured) Get(ctx context.Context, key string) (v []byte, err error) {
	err = observe(getOpType, func() error {
		v, err = m.kv.Get(ctx, key)
		return err
	})
	return v, err
}

// GetPrefix satisfies KV interface.
func (m *Measured) GetPrefix(ctx context.Context, prefix string) (vs map[string][]byte, err error) {
	err = observe(getPrefixOpType, func() error {
		vs, err = m.kv.GetPrefix(ctx, prefix)
		return err
	})
	return vs, err
}

// Del satisfies KV interface.
func (m *Measured) Del(ctx context.Context, key string) error {
	return observe(deleteOpType, func() error { return m.kv.Del(ctx, key) })
}

// Watch satisfies KV interface. Open watches are tracked until the underlying channel gets closed.
func (m *Measured) Watch(ctx context.Context, prefix string, withPrevVal bool) <-chan WatchResp {
	src := m.kv.Watch(ctx, prefix, withPrevVal)
	dst := make(chan WatchResp)

	kvOpenWatches.Inc()
	go func() {
		defer kvOpenWatches.Dec()
		defer close(dst)
		for resp := range src {
			select {
			case dst <- resp:
			case <-ctx.Done():
				return
			}
		}
	}()
	return dst
}

// Start satisfies KV interface.
func (m *Measured) Start(ctx context.Context) error {
	return m.kv.Start(ctx)
}

// Stop satisfies KV interface.
func (m *Measured) Stop(ctx context.Context) error {
	return m.kv.Stop(ctx)
}

func observe(opType string, fn func() error) error {
	t0 := time.Now()
	err := fn()

	labels := []string{instance.ID(), opType, strconv.FormatBool(err == nil)}
	kvOperations.WithLabelValues(labels...).Inc()
	kvOperationDurationBucket.WithLabelValues(labels...).Observe(time.Since(t0).Seconds())
	return err
}

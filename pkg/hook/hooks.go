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

package hook

import (
	"context"
	"errors"
	"math"
	"reflect"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var runDurationBucket = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "jackal_muc",
		Subsystem: "hook",
		Name:      "run_duration_bucket",
		Help:      "Bucketed histogram of hook handlers chain execution duration.",
		Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 20),
	},
	[]string{"hook", "success"},
)

func init() {
	prometheus.MustRegister(runDurationBucket)
}

// Priority defines hook execution priority.
type Priority int32

const (
	// LowestPriority defines lowest hook execution priority.
	LowestPriority = Priority(math.MinInt32)

	// LowPriority defines low hook execution priority.
	LowPriority = Priority(math.MinInt32 + 1000)

	// DefaultPriority defines default hook execution priority.
	DefaultPriority = Priority(0)

	// HighPriority defines high hook execution priority.
	HighPriority = Priority(math.MaxInt32 - 1000)

	// HighestPriority defines highest hook execution priority.
	HighestPriority = Priority(math.MaxInt32)
)

// Handler defines a generic hook handler function.
type Handler func(ctx context.Context, execCtx *ExecutionContext) error

// ErrStopped error is returned by a handler to halt hook execution.
var ErrStopped = errors.New("hook: execution stopped")

// ExecutionContext defines a hook execution info context.
type ExecutionContext struct {
	Info   interface{}
	Sender interface{}
}

type entry struct {
	fn       Handler
	fnPtr    uintptr
	priority Priority
}

// Hooks keeps the handlers registered for every named hook.
// Handler lists are replaced on every mutation, so Run iterates over an immutable snapshot.
type Hooks struct {
	mu      sync.RWMutex
	entries map[string][]entry
}

// NewHooks returns a new initialized Hooks instance.
func NewHooks() *Hooks {
	return &Hooks{
		entries: make(map[string][]entry),
	}
}

// AddHook adds a new handler to a given hook providing an execution priority value.
// Handlers with a higher priority are executed first, equal priorities keep insertion order.
func (h *Hooks) AddHook(hook string, hnd Handler, priority Priority) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cur := h.entries[hook]
	idx := sort.Search(len(cur), func(i int) bool { return cur[i].priority < priority })

	entries := make([]entry, 0, len(cur)+1)
	entries = append(entries, cur[:idx]...)
	entries = append(entries, entry{fn: hnd, fnPtr: funcPtr(hnd), priority: priority})
	entries = append(entries, cur[idx:]...)
	h.entries[hook] = entries
}

// RemoveHook removes a hook registered handler.
func (h *Hooks) RemoveHook(hook string, hnd Handler) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cur := h.entries[hook]
	ptr := funcPtr(hnd)
	for i, e := range cur {
		if e.fnPtr != ptr {
			continue
		}
		if len(cur) == 1 {
			delete(h.entries, hook)
			return
		}
		entries := make([]entry, 0, len(cur)-1)
		entries = append(entries, cur[:i]...)
		entries = append(entries, cur[i+1:]...)
		h.entries[hook] = entries
		return
	}
}

// Run invokes all hook handlers in order.
// If halted return value is true no more handlers are invoked.
func (h *Hooks) Run(ctx context.Context, hook string, execCtx *ExecutionContext) (halted bool, err error) {
	h.mu.RLock()
	entries := h.entries[hook]
	h.mu.RUnlock()

	if len(entries) == 0 {
		return false, nil
	}
	t0 := time.Now()
	defer func() {
		runDurationBucket.WithLabelValues(hook, strconv.FormatBool(err == nil)).Observe(time.Since(t0).Seconds())
	}()

	for _, e := range entries {
		switch err := e.fn(ctx, execCtx); {
		case err == nil:
			continue
		case errors.Is(err, ErrStopped):
			return true, nil
		default:
			return false, err
		}
	}
	return false, nil
}

func funcPtr(hnd Handler) uintptr {
	if hnd == nil {
		return 0
	}
	return reflect.ValueOf(hnd).Pointer()
}

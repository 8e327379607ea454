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

package executor

import (
	"context"
	"errors"
	"sync"

	"github.com/cespare/xxhash/v2"
	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

var (
	// ErrQueueFull is returned by Submit when the selected worker queue is saturated.
	ErrQueueFull = errors.New("executor: queue full")

	// ErrStopped is returned by Submit once the executor has been stopped.
	ErrStopped = errors.New("executor: stopped")
)

// Config contains executor configuration.
type Config struct {
	Workers   int `fig:"workers" default:"16"`
	QueueSize int `fig:"queue_size" default:"1024"`
}

// Executor is a bounded worker pool.
// Tasks submitted with the same key run sequentially on the same worker.
type Executor struct {
	cfg    Config
	logger kitlog.Logger

	mu      sync.RWMutex
	queues  []chan func()
	stopped bool
	wg      sync.WaitGroup
}

// New returns a new started Executor.
func New(cfg Config, logger kitlog.Logger) *Executor {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1
	}
	e := &Executor{
		cfg:    cfg,
		logger: logger,
		queues: make([]chan func(), cfg.Workers),
	}
	for i := 0; i < cfg.Workers; i++ {
		q := make(chan func(), cfg.QueueSize)
		e.queues[i] = q

		e.wg.Add(1)
		go e.loop(q)
	}
	return e
}

// Submit enqueues fn into key associated worker.
// Returns ErrQueueFull without blocking if the worker queue is saturated.
func (e *Executor) Submit(key string, fn func()) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.stopped {
		return ErrStopped
	}
	q := e.queues[xxhash.Sum64String(key)%uint64(len(e.queues))]
	select {
	case q <- fn:
		queuedTasks.Inc()
		return nil
	default:
		rejectedTasks.Inc()
		level.Warn(e.logger).Log("msg", "executor queue full", "key", key)
		return ErrQueueFull
	}
}

// Stop stops accepting new tasks and waits until all queued ones have been executed or ctx is done.
func (e *Executor) Stop(ctx context.Context) error {
	e.mu.Lock()
	if !e.stopped {
		e.stopped = true
		for _, q := range e.queues {
			close(q)
		}
	}
	e.mu.Unlock()

	doneCh := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(doneCh)
	}()
	select {
	case <-doneCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Executor) loop(q <-chan func()) {
	defer e.wg.Done()

	for fn := range q {
		queuedTasks.Dec()
		e.run(fn)
	}
}

func (e *Executor) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			panickedTasks.Inc()
			level.Error(e.logger).Log("msg", "executor task panicked", "panic", r)
		}
	}()
	fn()
	executedTasks.Inc()
}

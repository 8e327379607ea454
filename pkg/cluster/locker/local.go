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

package locker

import (
	"context"
	"sync"
)

// LocalLocker is an in-process Locker implementation.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

// NewLocalLocker returns a new in-process locker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{
		locks: make(map[string]chan struct{}),
	}
}

// AcquireLock blocks until the lock identified by id is acquired or ctx is done.
func (l *LocalLocker) AcquireLock(ctx context.Context, id string) (Lock, error) {
	for {
		l.mu.Lock()
		ch, held := l.locks[id]
		if !held {
			l.locks[id] = make(chan struct{})
			l.mu.Unlock()
			return &localLock{l: l, id: id}, nil
		}
		l.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Start satisfies Locker interface.
func (l *LocalLocker) Start(_ context.Context) error { return nil }

// Stop satisfies Locker interface.
func (l *LocalLocker) Stop(_ context.Context) error { return nil }

func (l *LocalLocker) release(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if ch, ok := l.locks[id]; ok {
		delete(l.locks, id)
		close(ch)
	}
}

type localLock struct {
	l    *LocalLocker
	id   string
	once sync.Once
}

func (lk *localLock) Release(_ context.Context) error {
	lk.once.Do(func() { lk.l.release(lk.id) })
	return nil
}

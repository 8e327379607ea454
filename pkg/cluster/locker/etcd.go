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
	"errors"

	etcdv3 "go.etcd.io/etcd/client/v3"
	"go.etcd.io/etcd/client/v3/concurrency"
)

const etcdLockPrefix = "lock://"

type etcdLock struct {
	mu *concurrency.Mutex
}

func (m *etcdLock) Release(ctx context.Context) error { return m.mu.Unlock(ctx) }

// EtcdLocker is an etcd based distributed Locker.
type EtcdLocker struct {
	cliFn func() *etcdv3.Client
	ss    *concurrency.Session
}

// NewEtcdLocker returns a new initialized etcd locker.
// cliFn is resolved at Start, once the owning kv has dialed.
func NewEtcdLocker(cliFn func() *etcdv3.Client) *EtcdLocker {
	return &EtcdLocker{cliFn: cliFn}
}

// AcquireLock blocks until the lock identified by id is acquired or ctx is done.
func (l *EtcdLocker) AcquireLock(ctx context.Context, id string) (Lock, error) {
	if l.ss == nil {
		return nil, errors.New("locker: etcd locker not started")
	}
	mu := concurrency.NewMutex(l.ss, etcdLockPrefix+id)
	if err := mu.Lock(ctx); err != nil {
		return nil, err
	}
	return &etcdLock{mu: mu}, nil
}

// Start creates the etcd concurrency session.
func (l *EtcdLocker) Start(_ context.Context) error {
	ss, err := concurrency.NewSession(l.cliFn())
	if err != nil {
		return err
	}
	l.ss = ss
	return nil
}

// Stop closes the etcd concurrency session.
func (l *EtcdLocker) Stop(_ context.Context) error {
	return l.ss.Close()
}

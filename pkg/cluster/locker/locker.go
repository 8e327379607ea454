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
	"fmt"

	etcdv3 "go.etcd.io/etcd/client/v3"
)

const (
	etcdLockerType  = "etcd"
	localLockerType = "local"
)

// Lock represents an acquired lock.
type Lock interface {
	// Release releases the lock.
	Release(ctx context.Context) error
}

// Locker defines a named lock provider.
type Locker interface {
	// AcquireLock blocks until the lock identified by id is acquired or ctx is done.
	AcquireLock(ctx context.Context, id string) (Lock, error)

	// Start initializes locker.
	Start(ctx context.Context) error

	// Stop releases all locker underlying resources.
	Stop(ctx context.Context) error
}

// Config defines locker configuration.
type Config struct {
	Type string `fig:"type" default:"local"`
}

// New returns a Locker of the configured type.
// An etcd client is required when type is 'etcd'.
func New(cfg Config, etcdCli func() *etcdv3.Client) (Locker, error) {
	switch cfg.Type {
	case localLockerType:
		return NewLocalLocker(), nil
	case etcdLockerType:
		if etcdCli == nil {
			return nil, fmt.Errorf("locker: etcd locker requires an etcd kv")
		}
		return NewEtcdLocker(etcdCli), nil
	default:
		return nil, fmt.Errorf("locker: unrecognized type: %s", cfg.Type)
	}
}

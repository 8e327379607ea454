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

package etcdkv

import (
	"context"
	"fmt"
	"strings"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	kvtypes "github.com/ortuman/jackal-muc/pkg/cluster/kv/types"
	etcdv3 "go.etcd.io/etcd/client/v3"
	"go.etcd.io/etcd/client/v3/namespace"
)

const etcdKVType = "etcd"

// KV represents an etcd key-value store implementation.
// Keys live under the configured namespace, and every written key is bound to the node lease,
// so entries of a crashed node expire on their own.
type KV struct {
	cfg    Config
	logger kitlog.Logger

	cli     *etcdv3.Client
	kv      etcdv3.KV
	watcher etcdv3.Watcher
	lease   *nodeLease

	leaseLostFn func()
}

// New returns a new etcd key-value store instance.
func New(cfg Config, logger kitlog.Logger) *KV {
	return &KV{
		cfg:         cfg,
		logger:      kitlog.With(logger, "kv", etcdKVType),
		leaseLostFn: interruptProcess,
	}
}

// SetLeaseLostHandler sets the function invoked once the node lease can no longer be refreshed.
// By default the process is interrupted.
func (k *KV) SetLeaseLostHandler(fn func()) { k.leaseLostFn = fn }

// Client returns the underlying etcd client. Only valid after Start.
func (k *KV) Client() *etcdv3.Client { return k.cli }

// Put stores a new value associated to a given key.
func (k *KV) Put(ctx context.Context, key string, value string) error {
	_, err := k.kv.Put(ctx, key, value, etcdv3.WithLease(k.lease.id))
	return err
}

// Get retrieves a value associated to a given key.
func (k *KV) Get(ctx context.Context, key string) ([]byte, error) {
	resp, err := k.kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(resp.Kvs) == 0 {
		return nil, nil
	}
	return resp.Kvs[0].Value, nil
}

// GetPrefix retrieves all values whose key matches prefix.
func (k *KV) GetPrefix(ctx context.Context, prefix string) (map[string][]byte, error) {
	resp, err := k.kv.Get(ctx, prefix, etcdv3.WithPrefix())
	if err != nil {
		return nil, err
	}
	values := make(map[string][]byte, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		values[string(kv.Key)] = kv.Value
	}
	return values, nil
}

// Del deletes a value associated to a given key.
func (k *KV) Del(ctx context.Context, key string) error {
	_, err := k.kv.Delete(ctx, key)
	return err
}

// Watch watches on a prefix. The returned channel is closed once ctx is done.
func (k *KV) Watch(ctx context.Context, prefix string, withPrevVal bool) <-chan kvtypes.WatchResp {
	opts := []etcdv3.OpOption{etcdv3.WithPrefix()}
	if withPrevVal {
		opts = append(opts, etcdv3.WithPrevKV())
	}
	wCh := make(chan kvtypes.WatchResp)
	go func() {
		defer close(wCh)
		for resp := range k.watcher.Watch(ctx, prefix, opts...) {
			select {
			case wCh <- toWatchResp(&resp):
			case <-ctx.Done():
				return
			}
		}
	}()
	return wCh
}

// Start dials etcd and grants the node lease.
func (k *KV) Start(ctx context.Context) error {
	if err := checkHealth(k.cfg.Endpoints, k.cfg.DialTimeout); err != nil {
		return err
	}
	cli, err := dial(k.cfg)
	if err != nil {
		return err
	}
	k.cli = cli
	k.kv = namespace.NewKV(cli.KV, k.cfg.Namespace)
	k.watcher = namespace.NewWatcher(cli.Watcher, k.cfg.Namespace)

	k.lease, err = grantLease(ctx, cli, k.cfg.LeaseTTL, k.onLeaseLost, k.logger)
	if err != nil {
		_ = cli.Close()
		return err
	}
	level.Info(k.logger).Log("msg", "started kv store",
		"endpoints", strings.Join(k.cfg.Endpoints, ","),
		"namespace", k.cfg.Namespace,
		"lease_id", fmt.Sprintf("%x", k.lease.id),
	)
	return nil
}

// Stop revokes node lease and closes etcd underlying connection.
func (k *KV) Stop(ctx context.Context) error {
	if err := k.lease.revoke(ctx); err != nil {
		level.Warn(k.logger).Log("msg", "failed to revoke node lease", "err", err)
	}
	if err := k.watcher.Close(); err != nil {
		return err
	}
	if err := k.cli.Close(); err != nil {
		return err
	}
	level.Info(k.logger).Log("msg", "stopped kv store")
	return nil
}

func (k *KV) onLeaseLost() {
	// ownership records would outlive this node otherwise
	level.Error(k.logger).Log("msg", "node lease lost", "lease_id", fmt.Sprintf("%x", k.lease.id))
	if k.leaseLostFn != nil {
		k.leaseLostFn()
	}
}

func toWatchResp(wResp *etcdv3.WatchResponse) kvtypes.WatchResp {
	var events []kvtypes.WatchEvent
	for _, ev := range wResp.Events {
		var kvEvent kvtypes.WatchEvent

		switch ev.Type {
		case etcdv3.EventTypePut:
			kvEvent.Type = kvtypes.Put
		case etcdv3.EventTypeDelete:
			kvEvent.Type = kvtypes.Del
		default:
			continue
		}
		kvEvent.Key = string(ev.Kv.Key)
		if len(ev.Kv.Value) > 0 {
			kvEvent.Val = ev.Kv.Value
		}
		if ev.PrevKv != nil && len(ev.PrevKv.Value) > 0 {
			kvEvent.PrevVal = ev.PrevKv.Value
		}
		events = append(events, kvEvent)
	}
	return kvtypes.WatchResp{
		Events: events,
		Err:    wResp.Err(),
	}
}

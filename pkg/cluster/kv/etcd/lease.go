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
	"os"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	etcdv3 "go.etcd.io/etcd/client/v3"
)

const maxKeepAliveRetries = 10

var keepAliveRetryInterval = time.Second

type leaseClient interface {
	Grant(ctx context.Context, ttl int64) (*etcdv3.LeaseGrantResponse, error)
	KeepAlive(ctx context.Context, id etcdv3.LeaseID) (<-chan *etcdv3.LeaseKeepAliveResponse, error)
	Revoke(ctx context.Context, id etcdv3.LeaseID) (*etcdv3.LeaseRevokeResponse, error)
}

// nodeLease keeps the node lease alive until revoked.
type nodeLease struct {
	cli    leaseClient
	id     etcdv3.LeaseID
	lostFn func()
	logger kitlog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func grantLease(ctx context.Context, cli leaseClient, ttl time.Duration, lostFn func(), logger kitlog.Logger) (*nodeLease, error) {
	ttlSecs := int64(ttl / time.Second)
	if ttlSecs <= 0 {
		return nil, fmt.Errorf("etcdkv: invalid lease ttl: %v", ttl)
	}
	resp, err := cli.Grant(ctx, ttlSecs)
	if err != nil {
		return nil, err
	}
	kaCtx, cancel := context.WithCancel(context.Background())
	kaCh, err := cli.KeepAlive(kaCtx, resp.ID)
	if err != nil {
		cancel()
		return nil, err
	}
	l := &nodeLease{
		cli:    cli,
		id:     resp.ID,
		lostFn: lostFn,
		logger: logger,
		cancel: cancel,
	}
	l.wg.Add(1)
	go l.keepAlive(kaCtx, kaCh)
	return l, nil
}

func (l *nodeLease) revoke(ctx context.Context) error {
	l.cancel()
	l.wg.Wait()

	_, err := l.cli.Revoke(ctx, l.id)
	return err
}

// keepAlive drains keepalive responses, restarting the keepalive stream whenever it gets closed.
// A stream closed before delivering any response counts as a failed attempt.
func (l *nodeLease) keepAlive(ctx context.Context, kaCh <-chan *etcdv3.LeaseKeepAliveResponse) {
	defer l.wg.Done()

	var retries int
	for {
		for range kaCh {
			retries = 0
		}
		if ctx.Err() != nil {
			return
		}
		retries++
		if retries > maxKeepAliveRetries {
			l.lostFn()
			return
		}
		select {
		case <-time.After(keepAliveRetryInterval):
		case <-ctx.Done():
			return
		}
		ch, err := l.cli.KeepAlive(ctx, l.id)
		if err != nil {
			level.Warn(l.logger).Log("msg", "failed to perform lease keepalive", "err", err, "retries", retries)
			ch = closedKeepAliveCh()
		}
		kaCh = ch
	}
}

func closedKeepAliveCh() <-chan *etcdv3.LeaseKeepAliveResponse {
	ch := make(chan *etcdv3.LeaseKeepAliveResponse)
	close(ch)
	return ch
}

func interruptProcess() {
	p, _ := os.FindProcess(os.Getpid())
	_ = p.Signal(os.Interrupt)
}

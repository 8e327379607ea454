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

package dns

import (
	"context"
	"errors"
	"net"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/samber/lo"
)

const resolveTimeout = time.Second * 5

var errBadSRVFormat = errors.New("dns: bad SRV record format")

// SRVUpdate represents an SRV resolution update.
type SRVUpdate struct {
	// NewTargets contains the set of new targets compared to previous resolution.
	NewTargets []string

	// OldTargets contains the set of removed targets compared to previous resolution.
	OldTargets []string
}

type lookUpFunc func(ctx context.Context, service, proto, name string) (cname string, addrs []*net.SRV, err error)

// SRVResolver resolves an SRV record and optionally keeps polling it, publishing target set changes.
type SRVResolver struct {
	srv         string
	proto       string
	name        string
	rsvInterval time.Duration

	targetsMu sync.RWMutex
	targets   []string

	updateCh  chan SRVUpdate
	doneCh    chan struct{}
	closeOnce sync.Once

	lookUpFn lookUpFunc
	logger   log.Logger
}

// NewSRVResolver creates and initializes a new SRVResolver instance.
// A zero resolveInterval disables background polling.
func NewSRVResolver(service, proto, name string, resolveInterval time.Duration, logger log.Logger) *SRVResolver {
	return &SRVResolver{
		srv:         service,
		proto:       proto,
		name:        name,
		rsvInterval: resolveInterval,
		updateCh:    make(chan SRVUpdate, 1),
		doneCh:      make(chan struct{}),
		lookUpFn:    tcpResolver().LookupSRV,
		logger:      logger,
	}
}

// Resolve performs a first SRV resolution and starts background polling.
func (r *SRVResolver) Resolve(ctx context.Context) error {
	if _, _, err := r.resolve(ctx); err != nil {
		return err
	}
	if r.rsvInterval == 0 {
		close(r.updateCh)
		return nil
	}
	go r.runLoop()
	return nil
}

// Targets returns last resolved SRV targets in lexicographical order.
func (r *SRVResolver) Targets() []string {
	r.targetsMu.RLock()
	defer r.targetsMu.RUnlock()
	return r.targets
}

// Update returns the SRV record updates channel.
// The channel is closed once the resolver stops polling.
func (r *SRVResolver) Update() <-chan SRVUpdate {
	return r.updateCh
}

// Close stops background polling.
func (r *SRVResolver) Close() {
	r.closeOnce.Do(func() { close(r.doneCh) })
}

func (r *SRVResolver) runLoop() {
	defer close(r.updateCh)

	tc := time.NewTicker(r.rsvInterval)
	defer tc.Stop()

	for {
		select {
		case <-tc.C:
			upd, ok := r.poll()
			if !ok {
				continue
			}
			select {
			case r.updateCh <- upd:
			case <-r.doneCh:
				return
			}

		case <-r.doneCh:
			return
		}
	}
}

// poll re-resolves the record, reporting whether the target set changed.
func (r *SRVResolver) poll() (SRVUpdate, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	added, removed, err := r.resolve(ctx)
	if err != nil {
		level.Warn(r.logger).Log("msg", "failed to resolve SRV record", "name", r.name, "err", err)
		return SRVUpdate{}, false
	}
	if len(added) == 0 && len(removed) == 0 {
		return SRVUpdate{}, false
	}
	return SRVUpdate{NewTargets: added, OldTargets: removed}, true
}

func (r *SRVResolver) resolve(ctx context.Context) (added, removed []string, err error) {
	_, addrs, err := r.lookUpFn(ctx, r.srv, r.proto, r.name)
	if err != nil {
		return nil, nil, err
	}
	targets := hostPorts(addrs)

	r.targetsMu.Lock()
	removed, added = lo.Difference(r.targets, targets)
	r.targets = targets
	r.targetsMu.Unlock()

	return added, removed, nil
}

// hostPorts returns the sorted host:port pairs of addrs. A "." target means the service is not available.
func hostPorts(addrs []*net.SRV) []string {
	available := lo.Filter(addrs, func(a *net.SRV, _ int) bool { return a.Target != "." })
	res := lo.Map(available, func(a *net.SRV, _ int) string {
		return net.JoinHostPort(strings.TrimSuffix(a.Target, "."), strconv.Itoa(int(a.Port)))
	})
	sort.Strings(res)
	return res
}

// ParseSRVRecord splits an SRV record such as "_redis._tcp.jackal.im" into its service, proto and name parts.
func ParseSRVRecord(rec string) (srv, proto, name string, err error) {
	parts := strings.SplitN(rec, ".", 3)
	if len(parts) != 3 || len(parts[2]) == 0 {
		return "", "", "", errBadSRVFormat
	}
	for _, p := range parts[:2] {
		if len(p) < 2 || !strings.HasPrefix(p, "_") {
			return "", "", "", errBadSRVFormat
		}
	}
	return parts[0][1:], parts[1][1:], parts[2], nil
}

// tcpResolver returns a resolver querying over TCP, so large SRV answers are never truncated.
func tcpResolver() *net.Resolver {
	dialer := net.Dialer{Timeout: resolveTimeout}
	return &net.Resolver{
		Dial: func(ctx context.Context, _, address string) (net.Conn, error) {
			return dialer.DialContext(ctx, "tcp", address)
		},
	}
}

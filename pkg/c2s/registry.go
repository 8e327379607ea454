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

package c2s

import (
	"context"
	"fmt"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/stravaganza/v2"
	streamerror "github.com/jackal-xmpp/stravaganza/v2/errors/stream"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	"github.com/ortuman/jackal-muc/pkg/cluster/ownership"
	xmpputil "github.com/ortuman/jackal-muc/pkg/util/xmpp"
)

// ResourceKeyPrefix is the ownership key prefix of bound C2S resources.
const ResourceKeyPrefix = "c2s://"

const reportTotalConnectionsInterval = time.Second * 30

var errAlreadyBound = func(jd *jid.JID) error {
	return fmt.Errorf("c2s: resource %s already bound", jd.String())
}

// Registry keeps track of local bound streams and advertises their location
// to the rest of the cluster.
type Registry struct {
	own    *ownership.Manager
	logger kitlog.Logger

	mu     sync.RWMutex
	bndRes map[string]*resources
	doneCh chan chan struct{}
}

// NewRegistry returns a new initialized Registry.
func NewRegistry(own *ownership.Manager, logger kitlog.Logger) *Registry {
	r := &Registry{
		own:    own,
		logger: logger,
		bndRes: make(map[string]*resources),
		doneCh: make(chan chan struct{}),
	}
	own.RegisterOwner(r)
	return r
}

// Register binds stm and advertises it as owned by the local node.
func (r *Registry) Register(ctx context.Context, stm Stream) error {
	r.mu.Lock()
	rs := r.bndRes[stm.Username()]
	if rs == nil {
		rs = &resources{}
		r.bndRes[stm.Username()] = rs
	}
	ok := rs.bind(stm)
	r.mu.Unlock()

	if !ok {
		return errAlreadyBound(stm.JID())
	}
	totalConnections.Inc()
	return r.advertise(ctx, stm)
}

// UpdatePresence advertises stm current presence to the rest of the cluster.
func (r *Registry) UpdatePresence(ctx context.Context, stm Stream) error {
	return r.advertise(ctx, stm)
}

// Unregister unbinds stm and releases its location entry.
func (r *Registry) Unregister(ctx context.Context, stm Stream) error {
	r.mu.Lock()
	var ok bool
	if rs := r.bndRes[stm.Username()]; rs != nil {
		ok = rs.unbind(stm)
		if rs.len() == 0 {
			delete(r.bndRes, stm.Username())
		}
	}
	r.mu.Unlock()

	if !ok {
		return nil
	}
	totalConnections.Dec()
	return r.own.Release(ctx, ResourceKey(stm.JID()))
}

// Stream returns the local stream bound to username and resource, or nil if none.
func (r *Registry) Stream(username, resource string) Stream {
	r.mu.RLock()
	rs := r.bndRes[username]
	r.mu.RUnlock()

	if rs == nil {
		return nil
	}
	return rs.stream(resource)
}

// UserStreams returns all username local streams.
func (r *Registry) UserStreams(username string) []Stream {
	r.mu.RLock()
	rs := r.bndRes[username]
	r.mu.RUnlock()

	if rs == nil {
		return nil
	}
	return rs.all()
}

// Streams returns all local bound streams.
func (r *Registry) Streams() []Stream {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stms []Stream
	for _, rs := range r.bndRes {
		stms = append(stms, rs.all()...)
	}
	return stms
}

// Disconnect performs disconnection over a local bound stream.
func (r *Registry) Disconnect(username, resource string, streamErr *streamerror.Error) error {
	r.mu.RLock()
	rs := r.bndRes[username]
	r.mu.RUnlock()

	if rs == nil {
		return nil
	}
	return rs.disconnect(resource, streamErr)
}

// Prefix satisfies ownership.Owner interface.
func (r *Registry) Prefix() string { return ResourceKeyPrefix }

// Rederive satisfies ownership.Owner interface.
// Every local bound stream is advertised again so that no entry is missing after a cache loss.
func (r *Registry) Rederive(ctx context.Context, lostNodeID string, evicted map[string]ownership.Record) error {
	for _, stm := range r.Streams() {
		if err := r.advertise(ctx, stm); err != nil {
			return err
		}
	}
	level.Info(r.logger).Log("msg", "c2s resources re-derived", "lost_node_id", lostNodeID, "evicted", len(evicted))
	return nil
}

// Start starts registry metrics reporting.
func (r *Registry) Start(_ context.Context) error {
	go r.reportMetrics()
	return nil
}

// Stop disconnects all local streams.
func (r *Registry) Stop(ctx context.Context) error {
	ch := make(chan struct{})
	r.doneCh <- ch
	<-ch

	var wg sync.WaitGroup
	for _, s := range r.Streams() {
		wg.Add(1)
		go func(stm Stream) {
			defer wg.Done()
			_ = stm.Disconnect(streamerror.E(streamerror.SystemShutdown))
			select {
			case <-stm.Done():
				break
			case <-ctx.Done():
				break
			}
		}(s)
	}
	wg.Wait()
	return nil
}

func (r *Registry) advertise(ctx context.Context, stm Stream) error {
	var payload []byte
	if pr := stm.Presence(); pr != nil {
		b, err := xmpputil.MarshalStanza(pr)
		if err != nil {
			return err
		}
		payload = b
	}
	return r.own.Claim(ctx, ResourceKey(stm.JID()), payload)
}

func (r *Registry) reportMetrics() {
	tc := time.NewTicker(reportTotalConnectionsInterval)
	defer tc.Stop()

	for {
		select {
		case <-tc.C:
			totalConnections.Set(float64(len(r.Streams())))

		case ch := <-r.doneCh:
			close(ch)
			return
		}
	}
}

// ResourceKey returns the ownership key associated to a full address.
func ResourceKey(jd *jid.JID) string {
	return ResourceKeyPrefix + jd.String()
}

// DecodeResourcePresence decodes the presence advertised along with a resource location entry.
// A nil presence is returned if the resource did not send any yet.
func DecodeResourcePresence(payload []byte) (*stravaganza.Presence, error) {
	if len(payload) == 0 {
		return nil, nil
	}
	stanza, err := xmpputil.UnmarshalStanza(payload)
	if err != nil {
		return nil, err
	}
	pr, ok := stanza.(*stravaganza.Presence)
	if !ok {
		return nil, fmt.Errorf("c2s: unexpected resource payload element: %s", stanza.Name())
	}
	return pr, nil
}

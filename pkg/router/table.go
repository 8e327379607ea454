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

package router

import (
	"context"
	"fmt"
	"strings"
	"sync"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	"github.com/ortuman/jackal-muc/pkg/c2s"
	"github.com/ortuman/jackal-muc/pkg/cluster/instance"
	"github.com/ortuman/jackal-muc/pkg/cluster/memberlist"
	"github.com/ortuman/jackal-muc/pkg/cluster/ownership"
	"github.com/ortuman/jackal-muc/pkg/host"
	"github.com/ortuman/jackal-muc/pkg/interceptor"
	"github.com/samber/lo"
)

// RoutingTable delivers stanzas to their destination, either local or remote.
type RoutingTable interface {
	// RoutePacket delivers stanza to 'to' address.
	// When addressed to a bare JID, broadcast tells whether to deliver to every available
	// resource or only to the highest priority ones.
	RoutePacket(ctx context.Context, to *jid.JID, stanza stravaganza.Stanza, broadcast bool) error
}

// Component processes every stanza addressed to a registered component domain.
type Component interface {
	ProcessStanza(ctx context.Context, stanza stravaganza.Stanza) error
}

// OfflineStrategy decides the fate of a message addressed to an unavailable user.
type OfflineStrategy interface {
	StoreOffline(ctx context.Context, msg *stravaganza.Message) error
}

// Table is the cluster aware RoutingTable implementation.
type Table struct {
	hosts   *host.Hosts
	streams *c2s.Registry
	own     *ownership.Manager
	tr      memberlist.Transport
	ic      *interceptor.Manager
	logger  kitlog.Logger

	mu         sync.RWMutex
	components map[string]Component
	offline    OfflineStrategy
}

// NewTable returns a new initialized routing Table.
func NewTable(
	hosts *host.Hosts,
	streams *c2s.Registry,
	own *ownership.Manager,
	tr memberlist.Transport,
	ic *interceptor.Manager,
	logger kitlog.Logger,
) *Table {
	t := &Table{
		hosts:      hosts,
		streams:    streams,
		own:        own,
		tr:         tr,
		ic:         ic,
		logger:     logger,
		components: make(map[string]Component),
	}
	tr.Handle(RouteMessageType, t.handleForward)
	return t
}

// RegisterComponent registers a component serving domain.
func (t *Table) RegisterComponent(domain string, comp Component) {
	t.mu.Lock()
	t.components[domain] = comp
	t.mu.Unlock()

	t.hosts.RegisterComponentHost(domain)
}

// UnregisterComponent unregisters domain component.
func (t *Table) UnregisterComponent(domain string) {
	t.mu.Lock()
	delete(t.components, domain)
	t.mu.Unlock()

	t.hosts.UnregisterComponentHost(domain)
}

// SetOfflineStrategy sets the strategy applied to messages addressed to unavailable users.
func (t *Table) SetOfflineStrategy(s OfflineStrategy) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.offline = s
}

// RoutePacket satisfies RoutingTable interface.
func (t *Table) RoutePacket(ctx context.Context, to *jid.JID, stanza stravaganza.Stanza, broadcast bool) error {
	if comp := t.component(to.Domain()); comp != nil {
		routedStanzas.WithLabelValues("component").Inc()
		return comp.ProcessStanza(ctx, stanza)
	}
	if !t.hosts.IsLocalHost(to.Domain()) {
		return ErrRemoteServerNotFound
	}
	if len(to.Node()) == 0 {
		// server addressed stanzas are not handled by this router
		return nil
	}
	if to.IsFull() {
		err := t.routeToResource(ctx, to, stanza)
		if err != ErrResourceNotFound {
			return err
		}
		if _, ok := stanza.(*stravaganza.Message); !ok {
			return err
		}
		// messages addressed to an unavailable resource are handled as if addressed to the bare JID
	}
	return t.routeToUser(ctx, to.ToBareJID(), stanza, broadcast)
}

// Start starts routing table.
func (t *Table) Start(_ context.Context) error {
	level.Info(t.logger).Log("msg", "started routing table")
	return nil
}

// Stop stops routing table.
func (t *Table) Stop(_ context.Context) error {
	level.Info(t.logger).Log("msg", "stopped routing table")
	return nil
}

func (t *Table) routeToResource(ctx context.Context, to *jid.JID, stanza stravaganza.Stanza) error {
	if stm := t.streams.Stream(to.Node(), to.Resource()); stm != nil {
		return t.deliverLocal(ctx, stm, stanza)
	}
	rec, err := t.own.Lookup(ctx, c2s.ResourceKey(to))
	if err != nil {
		return err
	}
	if rec == nil || rec.NodeID == instance.ID() {
		// stale local entries are never trusted, the registry is the source of truth
		return ErrResourceNotFound
	}
	return t.forward(ctx, rec.NodeID, to, stanza)
}

func (t *Table) routeToUser(ctx context.Context, to *jid.JID, stanza stravaganza.Stanza, broadcast bool) error {
	targets, err := t.availableResources(ctx, to)
	if err != nil {
		return err
	}
	if !broadcast {
		targets = highestPriority(targets)
	}
	var delivered int
	for _, tgt := range targets {
		var err error
		if tgt.nodeID == instance.ID() {
			stm := t.streams.Stream(tgt.jd.Node(), tgt.jd.Resource())
			if stm == nil {
				continue
			}
			err = t.deliverLocal(ctx, stm, stanza)
		} else {
			err = t.forward(ctx, tgt.nodeID, tgt.jd, stanza)
		}
		if err != nil {
			level.Warn(t.logger).Log("msg", "failed to route stanza", "to", tgt.jd.String(), "err", err)
			continue
		}
		delivered++
	}
	if delivered > 0 {
		return nil
	}
	msg, ok := stanza.(*stravaganza.Message)
	if !ok {
		return ErrUserNotAvailable
	}
	t.mu.RLock()
	offline := t.offline
	t.mu.RUnlock()

	if offline == nil {
		return ErrUserNotAvailable
	}
	routedStanzas.WithLabelValues("offline").Inc()
	return offline.StoreOffline(ctx, msg)
}

type target struct {
	jd       *jid.JID
	nodeID   string
	priority int8
}

func (t *Table) availableResources(ctx context.Context, to *jid.JID) ([]target, error) {
	recs, err := t.own.Records(ctx, c2s.ResourceKeyPrefix+to.String()+"/")
	if err != nil {
		return nil, err
	}
	var res []target
	for k, rec := range recs {
		pr, err := c2s.DecodeResourcePresence(rec.Payload)
		if err != nil {
			level.Warn(t.logger).Log("msg", "failed to decode resource presence", "key", k, "err", err)
			continue
		}
		if pr == nil || !pr.IsAvailable() || pr.Priority() < 0 {
			continue
		}
		jd, err := jid.NewWithString(strings.TrimPrefix(k, c2s.ResourceKeyPrefix), true)
		if err != nil {
			continue
		}
		res = append(res, target{jd: jd, nodeID: rec.NodeID, priority: pr.Priority()})
	}
	return res, nil
}

func (t *Table) deliverLocal(ctx context.Context, stm c2s.Stream, stanza stravaganza.Stanza) error {
	if t.ic != nil {
		if err := t.ic.InvokeInterceptors(ctx, stanza, stm, false, false); err != nil {
			if _, ok := interceptor.IsRejected(err); ok {
				return nil
			}
		}
	}
	stm.SendElement(stanza)
	routedStanzas.WithLabelValues("local").Inc()

	if t.ic != nil {
		_ = t.ic.InvokeInterceptors(ctx, stanza, stm, false, true)
	}
	return nil
}

func (t *Table) forward(ctx context.Context, nodeID string, to *jid.JID, stanza stravaganza.Stanza) error {
	b, err := encodeForward(to.String(), stanza)
	if err != nil {
		return err
	}
	if err := t.tr.Send(ctx, nodeID, memberlist.Message{Type: RouteMessageType, Payload: b}); err != nil {
		return fmt.Errorf("router: failed to forward stanza to node %s: %w", nodeID, err)
	}
	routedStanzas.WithLabelValues("remote").Inc()
	return nil
}

func (t *Table) handleForward(ctx context.Context, msg memberlist.Message) {
	to, stanza, err := decodeForward(msg.Payload)
	if err != nil {
		level.Warn(t.logger).Log("msg", "discarded forwarded stanza", "from_node", msg.From, "err", err)
		return
	}
	toJID, err := jid.NewWithString(to, true)
	if err != nil {
		level.Warn(t.logger).Log("msg", "discarded forwarded stanza", "from_node", msg.From, "err", err)
		return
	}
	stm := t.streams.Stream(toJID.Node(), toJID.Resource())
	if stm == nil {
		level.Debug(t.logger).Log("msg", "forwarded stanza target not found", "to", to, "from_node", msg.From)
		return
	}
	_ = t.deliverLocal(ctx, stm, stanza)
}

func (t *Table) component(domain string) Component {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.components[domain]
}

func highestPriority(targets []target) []target {
	if len(targets) == 0 {
		return nil
	}
	maxPrio := lo.MaxBy(targets, func(a, b target) bool { return a.priority > b.priority }).priority
	return lo.Filter(targets, func(tgt target, _ int) bool { return tgt.priority == maxPrio })
}

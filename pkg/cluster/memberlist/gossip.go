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

package memberlist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/hashicorp/memberlist"
	"github.com/jackal-xmpp/runqueue/v2"
	"github.com/ortuman/jackal-muc/pkg/cluster/instance"
	"github.com/ortuman/jackal-muc/pkg/hook"
)

const leaveTimeout = time.Second * 5

// ErrNodeNotFound is returned when a message targets a node not present in the gossip pool.
var ErrNodeNotFound = errors.New("memberlist: node not found")

// MessageHandler processes a message received from a remote node.
type MessageHandler func(ctx context.Context, msg Message)

// GossipConfig contains gossip transport configuration.
type GossipConfig struct {
	BindAddr string `fig:"bind_addr" default:"0.0.0.0"`
	Port     int    `fig:"port" default:"14369"`
}

// Gossip is the node to node message transport, built on top of hashicorp memberlist.
// Node discovery is driven by MemberList: every registered node is joined into the gossip pool.
// Received messages are dispatched in arrival order.
type Gossip struct {
	cfg     GossipConfig
	members *MemberList
	hk      *hook.Hooks
	logger  kitlog.Logger

	ml *memberlist.Memberlist
	rq *runqueue.RunQueue

	mu       sync.RWMutex
	handlers map[string]MessageHandler
}

// NewGossip returns a new gossip transport.
func NewGossip(cfg GossipConfig, members *MemberList, hk *hook.Hooks, logger kitlog.Logger) *Gossip {
	return &Gossip{
		cfg:      cfg,
		members:  members,
		hk:       hk,
		logger:   logger,
		handlers: make(map[string]MessageHandler),
	}
}

// Handle registers the handler for messages of type typ.
func (g *Gossip) Handle(typ string, h MessageHandler) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.handlers[typ] = h
}

// Send delivers msg to the node identified by nodeID.
func (g *Gossip) Send(_ context.Context, nodeID string, msg Message) error {
	node := g.node(nodeID)
	if node == nil {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
	}
	msg.From = instance.ID()
	return g.ml.SendReliable(node, encodeMessage(msg))
}

// Broadcast delivers msg to every remote node in the gossip pool.
// Delivery failures are logged, and the first one is returned.
func (g *Gossip) Broadcast(_ context.Context, msg Message) error {
	msg.From = instance.ID()
	b := encodeMessage(msg)

	var retErr error
	for _, node := range g.ml.Members() {
		if node.Name == instance.ID() {
			continue
		}
		if err := g.ml.SendReliable(node, b); err != nil {
			level.Warn(g.logger).Log("msg", "failed to broadcast cluster message", "node_id", node.Name, "type", msg.Type, "err", err)
			if retErr == nil {
				retErr = err
			}
		}
	}
	return retErr
}

// Start creates the gossip pool and joins already registered nodes.
func (g *Gossip) Start(_ context.Context) error {
	conf := memberlist.DefaultLANConfig()
	conf.Name = instance.ID()
	conf.BindAddr = g.cfg.BindAddr
	conf.BindPort = g.cfg.Port
	conf.AdvertisePort = g.cfg.Port
	conf.Delegate = g
	conf.LogOutput = io.Discard

	g.rq = runqueue.New("gossip")

	ml, err := memberlist.Create(conf)
	if err != nil {
		return err
	}
	g.ml = ml

	g.hk.AddHook(hook.MemberListUpdated, g.onMemberListUpdated, hook.HighestPriority)

	var addrs []string
	for _, m := range g.members.GetMembers() {
		addrs = append(addrs, m.String())
	}
	if err := g.join(addrs); err != nil {
		level.Warn(g.logger).Log("msg", "failed to join gossip pool", "err", err)
	}
	level.Info(g.logger).Log("msg", "started gossip transport", "bind_addr", g.cfg.BindAddr, "port", g.cfg.Port)
	return nil
}

// Stop leaves the gossip pool.
func (g *Gossip) Stop(_ context.Context) error {
	g.hk.RemoveHook(hook.MemberListUpdated, g.onMemberListUpdated)

	if err := g.ml.Leave(leaveTimeout); err != nil {
		level.Warn(g.logger).Log("msg", "failed to leave gossip pool", "err", err)
	}
	if err := g.ml.Shutdown(); err != nil {
		return err
	}
	ch := make(chan struct{})
	g.rq.Stop(func() { close(ch) })
	<-ch

	level.Info(g.logger).Log("msg", "stopped gossip transport")
	return nil
}

// NodeMeta satisfies memberlist.Delegate interface.
func (g *Gossip) NodeMeta(_ int) []byte { return nil }

// NotifyMsg satisfies memberlist.Delegate interface.
func (g *Gossip) NotifyMsg(b []byte) {
	msg, err := decodeMessage(b)
	if err != nil {
		level.Warn(g.logger).Log("msg", "discarded cluster message", "err", err)
		return
	}
	g.mu.RLock()
	h := g.handlers[msg.Type]
	g.mu.RUnlock()

	if h == nil {
		level.Warn(g.logger).Log("msg", "no handler registered for cluster message", "type", msg.Type)
		return
	}
	g.rq.Run(func() {
		h(context.Background(), msg)
	})
}

// GetBroadcasts satisfies memberlist.Delegate interface.
func (g *Gossip) GetBroadcasts(_, _ int) [][]byte { return nil }

// LocalState satisfies memberlist.Delegate interface.
func (g *Gossip) LocalState(_ bool) []byte { return nil }

// MergeRemoteState satisfies memberlist.Delegate interface.
func (g *Gossip) MergeRemoteState(_ []byte, _ bool) {}

func (g *Gossip) onMemberListUpdated(_ context.Context, execCtx *hook.ExecutionContext) error {
	inf := execCtx.Info.(*hook.MemberListInfo)

	var addrs []string
	for _, nodeID := range inf.Registered {
		m, ok := g.members.GetMember(nodeID)
		if !ok {
			continue
		}
		addrs = append(addrs, m.String())
	}
	if err := g.join(addrs); err != nil {
		level.Warn(g.logger).Log("msg", "failed to join gossip members", "err", err)
	}
	return nil
}

func (g *Gossip) join(addrs []string) error {
	if len(addrs) == 0 || g.ml == nil {
		return nil
	}
	_, err := g.ml.Join(addrs)
	return err
}

func (g *Gossip) node(nodeID string) *memberlist.Node {
	for _, node := range g.ml.Members() {
		if node.Name == nodeID {
			return node
		}
	}
	return nil
}

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

package muc

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	kitlog "github.com/go-kit/log"
	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	"github.com/ortuman/jackal-muc/pkg/c2s"
	"github.com/ortuman/jackal-muc/pkg/cluster/cache"
	"github.com/ortuman/jackal-muc/pkg/cluster/kv"
	"github.com/ortuman/jackal-muc/pkg/cluster/locker"
	"github.com/ortuman/jackal-muc/pkg/cluster/memberlist"
	"github.com/ortuman/jackal-muc/pkg/cluster/ownership"
	"github.com/ortuman/jackal-muc/pkg/executor"
	"github.com/ortuman/jackal-muc/pkg/hook"
	"github.com/stretchr/testify/require"
)

const testDomain = "conference.jackal.im"

type testEnv struct {
	svc     *Service
	streams *c2s.Registry
	cache   cache.Cache
	own     *ownership.Manager
	tr      *transportMock
	rt      *routingTableMock
	hk      *hook.Hooks

	mu      sync.Mutex
	sent    map[string][]stravaganza.Element
	handler memberlist.MessageHandler
	nextID  uint64
}

func setupTest(t *testing.T, cfg Config) *testEnv {
	t.Helper()

	if len(cfg.Domain) == 0 {
		cfg.Domain = testDomain
	}
	env := &testEnv{
		sent: make(map[string][]stravaganza.Element),
		hk:   hook.NewHooks(),
	}
	env.cache = cache.NewKVCache(kv.NewMemory())
	env.own = ownership.NewManager(env.cache, locker.NewLocalLocker(), env.hk, kitlog.NewNopLogger())
	env.streams = c2s.NewRegistry(env.own, kitlog.NewNopLogger())

	env.tr = &transportMock{}
	env.tr.HandleFunc = func(typ string, h memberlist.MessageHandler) {
		env.handler = h
	}
	env.tr.BroadcastFunc = func(ctx context.Context, msg memberlist.Message) error { return nil }

	env.rt = &routingTableMock{}
	env.rt.RoutePacketFunc = func(ctx context.Context, to *jid.JID, stanza stravaganza.Stanza, broadcast bool) error {
		env.record(to.String(), stanza)
		return nil
	}
	exec := executor.New(executor.Config{Workers: 1, QueueSize: 64}, kitlog.NewNopLogger())
	t.Cleanup(func() { _ = exec.Stop(context.Background()) })

	env.svc = New(cfg, env.rt, env.streams, env.own, env.tr, exec, env.hk, kitlog.NewNopLogger())
	return env
}

func (e *testEnv) connect(t *testing.T, fullJID string) *jid.JID {
	t.Helper()

	jd, _ := jid.NewWithString(fullJID, true)
	id := c2s.StreamID(atomic.AddUint64(&e.nextID, 1))

	stmMock := &streamMock{}
	stmMock.IDFunc = func() c2s.StreamID { return id }
	stmMock.JIDFunc = func() *jid.JID { return jd }
	stmMock.UsernameFunc = func() string { return jd.Node() }
	stmMock.ResourceFunc = func() string { return jd.Resource() }
	stmMock.PresenceFunc = func() *stravaganza.Presence { return nil }
	stmMock.SendElementFunc = func(elem stravaganza.Element) <-chan error {
		e.record(jd.String(), elem)
		return nil
	}
	require.Nil(t, e.streams.Register(context.Background(), stmMock))
	return jd
}

func (e *testEnv) record(to string, elem stravaganza.Element) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sent[to] = append(e.sent[to], elem)
}

func (e *testEnv) sentTo(to string) []stravaganza.Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]stravaganza.Element(nil), e.sent[to]...)
}

func (e *testEnv) reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sent = make(map[string][]stravaganza.Element)
}

func (e *testEnv) replications(t *testing.T) []replication {
	t.Helper()

	var res []replication
	for _, call := range e.tr.BroadcastCalls() {
		r, err := decodeReplication(call.Msg.Payload)
		require.Nil(t, err)
		res = append(res, r)
	}
	return res
}

func mustJID(s string) *jid.JID {
	jd, _ := jid.NewWithString(s, true)
	return jd
}

func testJoinPresence(from, to string, children ...stravaganza.Element) *stravaganza.Presence {
	children = append(children, stravaganza.NewBuilder("x").
		WithAttribute(stravaganza.Namespace, mucNamespace).
		Build(),
	)
	pr, _ := stravaganza.NewPresenceBuilder().
		WithAttribute(stravaganza.From, from).
		WithAttribute(stravaganza.To, to).
		WithChildren(children...).
		BuildPresence()
	return pr
}

func testGroupChat(from, to, body string) *stravaganza.Message {
	msg, _ := stravaganza.NewMessageBuilder().
		WithAttribute(stravaganza.From, from).
		WithAttribute(stravaganza.To, to).
		WithAttribute(stravaganza.Type, "groupchat").
		WithChild(stravaganza.NewBuilder("body").WithText(body).Build()).
		BuildMessage()
	return msg
}

func statusCodes(elem stravaganza.Element) []string {
	x := elem.ChildNamespace("x", mucUserNamespace)
	if x == nil {
		return nil
	}
	var codes []string
	for _, child := range x.AllChildren() {
		if child.Name() == "status" {
			codes = append(codes, child.Attribute("code"))
		}
	}
	return codes
}

func itemOf(elem stravaganza.Element) stravaganza.Element {
	x := elem.ChildNamespace("x", mucUserNamespace)
	if x == nil {
		return nil
	}
	return x.Child("item")
}

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
	"strings"
	"sync"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/ortuman/jackal-muc/pkg/cluster/instance"
	"github.com/ortuman/jackal-muc/pkg/cluster/kv"
	kvtypes "github.com/ortuman/jackal-muc/pkg/cluster/kv/types"
	"github.com/ortuman/jackal-muc/pkg/hook"
	"github.com/ortuman/jackal-muc/pkg/version"
)

// MemberList keeps track of live cluster nodes.
// Every node registers itself into the shared KV, and a node leaves the list when its key
// is deleted or its KV lease expires.
type MemberList struct {
	localPort int
	kv        kv.KV
	hk        *hook.Hooks
	logger    kitlog.Logger
	ctx       context.Context
	ctxCancel context.CancelFunc

	mu      sync.RWMutex
	members map[string]Member

	stopCh chan struct{}
}

// New will create a new MemberList instance. localPort is the gossip port advertised to other nodes.
func New(kv kv.KV, localPort int, hk *hook.Hooks, logger kitlog.Logger) *MemberList {
	ctx, cancelFn := context.WithCancel(context.Background())
	return &MemberList{
		localPort: localPort,
		kv:        kv,
		hk:        hk,
		logger:    logger,
		ctx:       ctx,
		ctxCancel: cancelFn,
		members:   make(map[string]Member),
		stopCh:    make(chan struct{}),
	}
}

// Start registers the local node and starts watching member list changes.
func (ml *MemberList) Start(ctx context.Context) error {
	if err := ml.kv.Put(ctx, memberKey(instance.ID()), encodeMember(ml.localMember())); err != nil {
		return err
	}
	if err := ml.refreshMemberList(ctx); err != nil {
		return err
	}
	level.Info(ml.logger).Log("msg", "registered local node", "node_id", instance.ID(), "port", ml.localPort)
	return nil
}

// Stop unregisters the local node.
func (ml *MemberList) Stop(ctx context.Context) error {
	ml.ctxCancel()
	<-ml.stopCh

	if err := ml.kv.Del(ctx, memberKey(instance.ID())); err != nil {
		return err
	}
	level.Info(ml.logger).Log("msg", "unregistered local node", "node_id", instance.ID())
	return nil
}

// GetMember returns cluster member info associated to a node identifier.
func (ml *MemberList) GetMember(nodeID string) (m Member, ok bool) {
	ml.mu.RLock()
	defer ml.mu.RUnlock()
	m, ok = ml.members[nodeID]
	return
}

// GetMembers returns all registered remote members.
func (ml *MemberList) GetMembers() map[string]Member {
	ml.mu.RLock()
	defer ml.mu.RUnlock()

	res := make(map[string]Member, len(ml.members))
	for k, v := range ml.members {
		res[k] = v
	}
	return res
}

func (ml *MemberList) localMember() Member {
	return Member{
		NodeID: instance.ID(),
		Host:   instance.Hostname(),
		Port:   ml.localPort,
		APIVer: version.ClusterAPIVersion,
	}
}

func (ml *MemberList) refreshMemberList(ctx context.Context) error {
	ch := make(chan error, 1)
	go func() {
		defer close(ml.stopCh)

		wCh := ml.kv.Watch(ml.ctx, memberKeyPrefix, false)

		ms, err := ml.getMembers(ctx)
		if err != nil {
			ch <- err
			return
		}
		var registered []string

		ml.mu.Lock()
		for _, m := range ms {
			ml.members[m.NodeID] = m
			registered = append(registered, m.NodeID)
		}
		ml.mu.Unlock()

		if err := ml.runHook(ctx, &hook.MemberListInfo{Registered: registered}); err != nil {
			ch <- err
			return
		}
		close(ch)

		for wResp := range wCh {
			if err := wResp.Err; err != nil {
				level.Warn(ml.logger).Log("msg", "error occurred watching member list", "err", err)
				continue
			}
			if err := ml.processKVEvents(ml.ctx, wResp.Events); err != nil {
				level.Warn(ml.logger).Log("msg", "failed to process member list changes", "err", err)
			}
		}
	}()
	return <-ch
}

func (ml *MemberList) getMembers(ctx context.Context) ([]Member, error) {
	vs, err := ml.kv.GetPrefix(ctx, memberKeyPrefix)
	if err != nil {
		return nil, err
	}
	res := make([]Member, 0, len(vs))
	for k, val := range vs {
		if isLocalMemberKey(k) {
			continue
		}
		m, err := decodeMember(k, string(val))
		if err != nil {
			level.Warn(ml.logger).Log("msg", "failed to decode cluster member", "err", err)
			continue
		}
		if !isCompatible(m) {
			level.Warn(ml.logger).Log("msg", "ignoring incompatible cluster member", "node_id", m.NodeID, "cluster_api_ver", m.APIVer.String())
			continue
		}
		res = append(res, *m)
	}
	return res, nil
}

func (ml *MemberList) processKVEvents(ctx context.Context, kvEvents []kvtypes.WatchEvent) error {
	var registered, unregistered []string

	ml.mu.Lock()
	for _, ev := range kvEvents {
		if isLocalMemberKey(ev.Key) {
			continue
		}
		switch ev.Type {
		case kvtypes.Put:
			m, err := decodeMember(ev.Key, string(ev.Val))
			if err != nil {
				ml.mu.Unlock()
				return err
			}
			if !isCompatible(m) {
				continue
			}
			ml.members[m.NodeID] = *m
			registered = append(registered, m.NodeID)

			level.Info(ml.logger).Log("msg", "registered cluster member", "node_id", m.NodeID, "address", m.String(), "cluster_api_ver", m.APIVer.String())

		case kvtypes.Del:
			nodeID := strings.TrimPrefix(ev.Key, memberKeyPrefix)
			delete(ml.members, nodeID)
			unregistered = append(unregistered, nodeID)

			level.Info(ml.logger).Log("msg", "unregistered cluster member", "node_id", nodeID)
		}
	}
	ml.mu.Unlock()

	if len(registered) == 0 && len(unregistered) == 0 {
		return nil
	}
	return ml.runHook(ctx, &hook.MemberListInfo{
		Registered:       registered,
		UnregisteredKeys: unregistered,
	})
}

func (ml *MemberList) runHook(ctx context.Context, inf *hook.MemberListInfo) error {
	_, err := ml.hk.Run(ctx, hook.MemberListUpdated, &hook.ExecutionContext{
		Info:   inf,
		Sender: ml,
	})
	return err
}

func isCompatible(m *Member) bool {
	return m.APIVer.IsCompatible(version.ClusterAPIVersion)
}

func isLocalMemberKey(k string) bool {
	return k == memberKey(instance.ID())
}

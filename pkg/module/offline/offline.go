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

package offline

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/runqueue/v2"
	"github.com/jackal-xmpp/stravaganza/v2"
	stanzaerror "github.com/jackal-xmpp/stravaganza/v2/errors/stanza"
	"github.com/ortuman/jackal-muc/pkg/cluster/locker"
	"github.com/ortuman/jackal-muc/pkg/hook"
	"github.com/ortuman/jackal-muc/pkg/privacy"
	"github.com/ortuman/jackal-muc/pkg/router"
	"github.com/ortuman/jackal-muc/pkg/storage/repository"
	xmpputil "github.com/ortuman/jackal-muc/pkg/util/xmpp"
)

const (
	quotaProperty = "xmpp.offline.quota"
	typeProperty  = "xmpp.offline.type"
)

// Config contains offline strategy configuration.
type Config struct {
	// Type is the initial strategy type, overridden by the persisted one.
	Type string `fig:"type" default:"store_and_bounce"`

	// Quota is the initial per-user offline queue quota in bytes, overridden by the persisted one.
	Quota int `fig:"quota" default:"102400"`

	// ListenerTimeout bounds every listener notification round.
	ListenerTimeout time.Duration `fig:"listener_timeout" default:"5s"`
}

// Strategy decides the fate of messages addressed to users that are not available.
type Strategy struct {
	cfg     Config
	hosts   hosts
	rt      router.RoutingTable
	rep     repository.Repository
	privacy privacy.Checker
	locker  locker.Locker
	hk      *hook.Hooks
	logger  kitlog.Logger

	mu    sync.RWMutex
	quota int
	typ   Type

	listenersMu sync.RWMutex
	listeners   []Listener

	rq *runqueue.RunQueue
}

// New returns a new initialized offline Strategy.
func New(
	cfg Config,
	hosts hosts,
	rt router.RoutingTable,
	rep repository.Repository,
	privacyChecker privacy.Checker,
	locker locker.Locker,
	hk *hook.Hooks,
	logger kitlog.Logger,
) (*Strategy, error) {
	typ, err := ParseType(cfg.Type)
	if err != nil {
		return nil, err
	}
	if privacyChecker == nil {
		privacyChecker = privacy.Nop{}
	}
	return &Strategy{
		cfg:     cfg,
		hosts:   hosts,
		rt:      rt,
		rep:     rep,
		privacy: privacyChecker,
		locker:  locker,
		hk:      hk,
		logger:  kitlog.With(logger, "module", "offline"),
		quota:   cfg.Quota,
		typ:     typ,
		rq:      runqueue.New("offline"),
	}, nil
}

// Start loads persisted strategy settings.
func (s *Strategy) Start(ctx context.Context) error {
	val, ok, err := s.rep.FetchProperty(ctx, quotaProperty)
	if err != nil {
		return err
	}
	if ok {
		quota, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("offline: invalid persisted quota %q: %w", val, err)
		}
		s.mu.Lock()
		s.quota = quota
		s.mu.Unlock()
	}
	val, ok, err = s.rep.FetchProperty(ctx, typeProperty)
	if err != nil {
		return err
	}
	if ok {
		typ, err := ParseType(val)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.typ = typ
		s.mu.Unlock()
	}
	level.Info(s.logger).Log("msg", "started offline strategy", "type", s.Type(), "quota", s.Quota())
	return nil
}

// Stop waits until pending listener notifications are completed.
func (s *Strategy) Stop(ctx context.Context) error {
	ch := make(chan struct{})
	s.rq.Stop(func() { close(ch) })

	select {
	case <-ch:
		level.Info(s.logger).Log("msg", "stopped offline strategy")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Quota returns current per-user offline queue quota in bytes.
func (s *Strategy) Quota() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quota
}

// SetQuota persists and applies a new per-user offline queue quota.
func (s *Strategy) SetQuota(ctx context.Context, quota int) error {
	if err := s.rep.UpsertProperty(ctx, quotaProperty, strconv.Itoa(quota)); err != nil {
		return err
	}
	s.mu.Lock()
	s.quota = quota
	s.mu.Unlock()

	level.Info(s.logger).Log("msg", "offline quota updated", "quota", quota)
	return nil
}

// Type returns current strategy type.
func (s *Strategy) Type() Type {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.typ
}

// SetType persists and applies a new strategy type.
func (s *Strategy) SetType(ctx context.Context, typ Type) error {
	if _, err := ParseType(string(typ)); err != nil {
		return err
	}
	if err := s.rep.UpsertProperty(ctx, typeProperty, string(typ)); err != nil {
		return err
	}
	s.mu.Lock()
	s.typ = typ
	s.mu.Unlock()

	level.Info(s.logger).Log("msg", "offline strategy type updated", "type", typ)
	return nil
}

// StoreOffline applies current strategy to a message addressed to an unavailable user.
func (s *Strategy) StoreOffline(ctx context.Context, msg *stravaganza.Message) error {
	toJID := msg.ToJID()
	if toJID == nil || len(toJID.Node()) == 0 || !s.hosts.IsLocalHost(toJID.Domain()) {
		return nil
	}
	switch xmpputil.MessageType(msg) {
	case xmpputil.GroupChatType, stravaganza.ErrorType, stravaganza.HeadlineType:
		return nil
	}
	username := toJID.Node()

	exists, err := s.rep.UserExists(ctx, username)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	blocked, err := s.privacy.ShouldBlockPacket(ctx, username, msg, true)
	if err != nil {
		return err
	}
	if blocked {
		return nil
	}

	switch s.Type() {
	case Bounce:
		return s.bounce(ctx, msg)

	case Drop:
		offlineMessages.WithLabelValues("dropped").Inc()
		return nil

	case Store:
		_, err := s.store(ctx, msg, username, false)
		return err

	case StoreAndBounce:
		stored, err := s.store(ctx, msg, username, true)
		if err != nil || stored {
			return err
		}
		return s.bounce(ctx, msg)

	case StoreAndDrop:
		stored, err := s.store(ctx, msg, username, true)
		if err == nil && !stored {
			offlineMessages.WithLabelValues("dropped").Inc()
		}
		return err
	}
	return nil
}

// store inserts msg into username offline queue.
// When checkQuota is set msg is stored only if it fits into the user quota.
func (s *Strategy) store(ctx context.Context, msg *stravaganza.Message, username string, checkQuota bool) (bool, error) {
	if xmpputil.IsNoStoreMessage(msg) {
		return false, nil
	}
	lock, err := s.locker.AcquireLock(ctx, offlineQueueLockID(username))
	if err != nil {
		return false, err
	}
	defer func() { _ = lock.Release(ctx) }()

	if checkQuota {
		size, err := s.rep.OfflineMessagesSize(ctx, username)
		if err != nil {
			return false, err
		}
		if !underQuota(s.Quota(), size, msg) {
			return false, nil
		}
	}
	dMsg := xmpputil.MakeDelayMessage(msg, time.Now(), msg.ToJID().Domain(), "Offline Storage")
	if err := s.rep.InsertOfflineMessage(ctx, dMsg, username); err != nil {
		return false, err
	}
	offlineMessages.WithLabelValues("stored").Inc()

	if _, err := s.hk.Run(ctx, hook.OfflineMessageArchived, &hook.ExecutionContext{
		Info: &hook.OfflineInfo{
			Username: username,
			Message:  dMsg,
		},
		Sender: s,
	}); err != nil {
		level.Warn(s.logger).Log("msg", "offline archived hook failed", "username", username, "err", err)
	}
	s.notifyStored(dMsg)

	level.Debug(s.logger).Log("msg", "stored offline message", "id", msg.Attribute(stravaganza.ID), "username", username)
	return true, nil
}

func (s *Strategy) bounce(ctx context.Context, msg *stravaganza.Message) error {
	fromJID := msg.FromJID()
	if fromJID == nil {
		return nil
	}
	// never bounce back to a served domain itself
	if len(fromJID.Node()) == 0 && s.hosts.IsLocalHost(fromJID.Domain()) {
		return nil
	}
	errStanza := xmpputil.MakeErrorStanza(msg, stanzaerror.ItemNotFound)
	if err := s.rt.RoutePacket(ctx, fromJID, errStanza, false); err != nil {
		level.Debug(s.logger).Log("msg", "failed to route bounced offline message", "to", fromJID.String(), "err", err)
	}
	offlineMessages.WithLabelValues("bounced").Inc()

	if _, err := s.hk.Run(ctx, hook.OfflineMessageBounced, &hook.ExecutionContext{
		Info: &hook.OfflineInfo{
			Username: msg.ToJID().Node(),
			Message:  msg,
		},
		Sender: s,
	}); err != nil {
		level.Warn(s.logger).Log("msg", "offline bounced hook failed", "err", err)
	}
	s.notifyBounced(msg)
	return nil
}

func underQuota(quota, size int, msg *stravaganza.Message) bool {
	return quota > size+xmpputil.SerializedSize(msg)
}

func offlineQueueLockID(username string) string {
	return fmt.Sprintf("offline:queue:%s", username)
}

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

package interceptor

import (
	"context"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/stravaganza/v2"
)

// Config contains interceptor manager configuration.
type Config struct {
	// Timeout is the deadline applied to every interceptor invocation. Zero means no timeout.
	Timeout time.Duration `fig:"timeout"`
}

// Manager keeps the ordered set of registered interceptors.
//
// Every mutation replaces the underlying slice, so dispatch iterates over an immutable snapshot.
type Manager struct {
	cfg    Config
	logger kitlog.Logger

	mu     sync.RWMutex
	global []Interceptor
	users  map[string][]Interceptor
}

// NewManager returns a new initialized interceptor Manager.
func NewManager(cfg Config, logger kitlog.Logger) *Manager {
	return &Manager{
		cfg:    cfg,
		logger: logger,
		users:  make(map[string][]Interceptor),
	}
}

// AddInterceptor appends i to the global interceptor list.
// Returns false if i was already registered.
func (m *Manager) AddInterceptor(i Interceptor) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	ics, ok := insertAt(m.global, len(m.global), i)
	if !ok {
		return false
	}
	m.global = ics
	return true
}

// AddInterceptorAt inserts i into the global interceptor list at index position.
// Out of range indexes are clamped. Returns false if i was already registered.
func (m *Manager) AddInterceptorAt(index int, i Interceptor) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	ics, ok := insertAt(m.global, index, i)
	if !ok {
		return false
	}
	m.global = ics
	return true
}

// RemoveInterceptor removes i from the global interceptor list.
func (m *Manager) RemoveInterceptor(i Interceptor) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	ics, ok := remove(m.global, i)
	if !ok {
		return false
	}
	m.global = ics
	return true
}

// Interceptors returns the registered global interceptors in invocation order.
func (m *Manager) Interceptors() []Interceptor {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]Interceptor(nil), m.global...)
}

// AddUserInterceptor appends i to username interceptor list.
func (m *Manager) AddUserInterceptor(username string, i Interceptor) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	ics, ok := insertAt(m.users[username], len(m.users[username]), i)
	if !ok {
		return false
	}
	m.users[username] = ics
	return true
}

// RemoveUserInterceptor removes i from username interceptor list.
func (m *Manager) RemoveUserInterceptor(username string, i Interceptor) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	ics, ok := remove(m.users[username], i)
	if !ok {
		return false
	}
	if len(ics) == 0 {
		delete(m.users, username)
	} else {
		m.users[username] = ics
	}
	return true
}

// UserInterceptors returns username registered interceptors in invocation order.
func (m *Manager) UserInterceptors(username string) []Interceptor {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]Interceptor(nil), m.users[username]...)
}

// InvokeInterceptors runs global interceptors followed by session user ones.
//
// In the unprocessed phase the first rejection halts the chain and is returned.
// In the processed phase a rejection is logged and ErrRejectedAfterProcessing is returned
// once every interceptor has been invoked. Any other interceptor error is logged and ignored.
func (m *Manager) InvokeInterceptors(ctx context.Context, stanza stravaganza.Stanza, session Session, incoming, processed bool) error {
	t0 := time.Now()
	dir, phase := directionLabel(incoming), phaseLabel(processed)
	defer func() {
		invocationsTotal.WithLabelValues(dir, phase).Inc()
		invocationDurationBucket.WithLabelValues(dir, phase).Observe(time.Since(t0).Seconds())
	}()

	m.mu.RLock()
	global := m.global
	var user []Interceptor
	if session != nil && len(session.Username()) > 0 {
		user = m.users[session.Username()]
	}
	m.mu.RUnlock()

	var rejectedAfterProcessing bool
	for _, ics := range [][]Interceptor{global, user} {
		for _, ic := range ics {
			err := m.invoke(ctx, ic, stanza, session, incoming, processed)
			if err == nil {
				continue
			}
			if rejErr, ok := IsRejected(err); ok {
				rejectionsTotal.WithLabelValues(typeName(ic), phase).Inc()
				if !processed {
					return rejErr
				}
				level.Error(m.logger).Log("msg", "interceptor rejected an already processed stanza",
					"interceptor", typeName(ic), "direction", dir, "err", rejErr,
				)
				rejectedAfterProcessing = true
				continue
			}
			failuresTotal.WithLabelValues(typeName(ic)).Inc()
			level.Warn(m.logger).Log("msg", "interceptor failed",
				"interceptor", typeName(ic), "direction", dir, "phase", phase, "err", err,
			)
		}
	}
	if rejectedAfterProcessing {
		return ErrRejectedAfterProcessing
	}
	return nil
}

func (m *Manager) invoke(ctx context.Context, ic Interceptor, stanza stravaganza.Stanza, session Session, incoming, processed bool) error {
	if m.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.Timeout)
		defer cancel()
	}
	return ic.InterceptPacket(ctx, stanza, session, incoming, processed)
}

func insertAt(ics []Interceptor, index int, i Interceptor) ([]Interceptor, bool) {
	if indexOf(ics, i) != -1 {
		return ics, false
	}
	if index < 0 {
		index = 0
	}
	if index > len(ics) {
		index = len(ics)
	}
	res := make([]Interceptor, 0, len(ics)+1)
	res = append(res, ics[:index]...)
	res = append(res, i)
	res = append(res, ics[index:]...)
	return res, true
}

func remove(ics []Interceptor, i Interceptor) ([]Interceptor, bool) {
	idx := indexOf(ics, i)
	if idx == -1 {
		return ics, false
	}
	res := make([]Interceptor, 0, len(ics)-1)
	res = append(res, ics[:idx]...)
	res = append(res, ics[idx+1:]...)
	return res, true
}

func indexOf(ics []Interceptor, i Interceptor) int {
	for idx, ic := range ics {
		if sameInterceptor(ic, i) {
			return idx
		}
	}
	return -1
}

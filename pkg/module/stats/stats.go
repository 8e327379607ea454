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

// Package stats counts processed stanzas by direction and kind.
package stats

import (
	"context"
	"sync/atomic"

	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/ortuman/jackal-muc/pkg/interceptor"
	"github.com/prometheus/client_golang/prometheus"
)

var processedStanzas = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "jackal_muc",
		Subsystem: "stats",
		Name:      "processed_stanzas_total",
		Help:      "The total number of processed stanzas by direction and kind.",
	},
	[]string{"direction", "kind"},
)

func init() {
	prometheus.MustRegister(processedStanzas)
}

var kinds = []interceptor.Kind{interceptor.MessageKind, interceptor.PresenceKind, interceptor.IQKind}

// Snapshot contains stanza counters values.
type Snapshot struct {
	Incoming map[string]uint64 `json:"incoming" yaml:"incoming"`
	Outgoing map[string]uint64 `json:"outgoing" yaml:"outgoing"`
}

// Stats keeps processed stanza counters.
// A stanza is counted once per direction, when it reaches the processed phase.
type Stats struct {
	counters [2][3]uint64
	d        *interceptor.Dispatcher
}

// New returns a new initialized Stats instance.
func New() *Stats {
	s := &Stats{d: interceptor.NewDispatcher()}
	for _, dir := range []interceptor.Direction{interceptor.Incoming, interceptor.Outgoing} {
		for _, kind := range kinds {
			s.d.On(dir, interceptor.Processed, kind, s.counterFn(dir, kind))
		}
	}
	return s
}

// Interceptor returns the stats interceptor to be registered in the interceptor manager.
func (s *Stats) Interceptor() interceptor.Interceptor { return s.d }

// Snapshot returns current counters values.
func (s *Stats) Snapshot() Snapshot {
	snap := Snapshot{
		Incoming: make(map[string]uint64, len(kinds)),
		Outgoing: make(map[string]uint64, len(kinds)),
	}
	for _, kind := range kinds {
		snap.Incoming[kind.String()] = atomic.LoadUint64(&s.counters[interceptor.Incoming][kind])
		snap.Outgoing[kind.String()] = atomic.LoadUint64(&s.counters[interceptor.Outgoing][kind])
	}
	return snap
}

func (s *Stats) counterFn(dir interceptor.Direction, kind interceptor.Kind) interceptor.HandlerFunc {
	dirLabel := "incoming"
	if dir == interceptor.Outgoing {
		dirLabel = "outgoing"
	}
	cnt := processedStanzas.WithLabelValues(dirLabel, kind.String())
	return func(_ context.Context, _ stravaganza.Stanza, _ interceptor.Session) error {
		atomic.AddUint64(&s.counters[dir][kind], 1)
		cnt.Inc()
		return nil
	}
}

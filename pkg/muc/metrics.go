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

import "github.com/prometheus/client_golang/prometheus"

var (
	activeRooms = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "jackal_muc",
		Subsystem: "muc",
		Name:      "rooms",
		Help:      "Number of rooms known by this node.",
	})
	joinedOccupants = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "jackal_muc",
		Subsystem: "muc",
		Name:      "joined_occupants_total",
		Help:      "Total number of local room joins.",
	})
	processedStanzas = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jackal_muc",
		Subsystem: "muc",
		Name:      "processed_stanzas_total",
		Help:      "Total number of stanzas processed by the multi-user chat service.",
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(activeRooms, joinedOccupants, processedStanzas)
}

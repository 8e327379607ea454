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

package ownership

import "github.com/prometheus/client_golang/prometheus"

var (
	evictedEntries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jackal_muc",
			Subsystem: "ownership",
			Name:      "evicted_total",
			Help:      "The total number of ownership entries evicted after a node loss.",
		},
		[]string{"prefix"},
	)
	failoverDurationBucket = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "jackal_muc",
			Subsystem: "ownership",
			Name:      "failover_duration_seconds",
			Help:      "Ownership failover duration in seconds.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)
)

func init() {
	prometheus.MustRegister(evictedEntries)
	prometheus.MustRegister(failoverDurationBucket)
}

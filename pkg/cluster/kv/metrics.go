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

package kv

import "github.com/prometheus/client_golang/prometheus"

var (
	kvOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jackal_muc",
			Subsystem: "kv",
			Name:      "operations_total",
			Help:      "The total number of cluster kv operations.",
		},
		[]string{"instance", "type", "success"},
	)
	kvOperationDurationBucket = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jackal_muc",
			Subsystem: "kv",
			Name:      "operations_duration_bucket",
			Help:      "Bucketed histogram of cluster kv operation duration.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 20),
		},
		[]string{"instance", "type", "success"},
	)
	kvOpenWatches = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "jackal_muc",
			Subsystem: "kv",
			Name:      "open_watches",
			Help:      "The number of currently open cluster kv watches.",
		},
	)
)

func init() {
	prometheus.MustRegister(kvOperations)
	prometheus.MustRegister(kvOperationDurationBucket)
	prometheus.MustRegister(kvOpenWatches)
}

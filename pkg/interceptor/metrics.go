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

import "github.com/prometheus/client_golang/prometheus"

var (
	invocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jackal_muc",
			Subsystem: "interceptor",
			Name:      "invocations_total",
			Help:      "The total number of interceptor chain invocations.",
		},
		[]string{"direction", "phase"},
	)
	rejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jackal_muc",
			Subsystem: "interceptor",
			Name:      "rejections_total",
			Help:      "The total number of stanzas rejected by an interceptor.",
		},
		[]string{"interceptor", "phase"},
	)
	failuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jackal_muc",
			Subsystem: "interceptor",
			Name:      "failures_total",
			Help:      "The total number of failed interceptor invocations.",
		},
		[]string{"interceptor"},
	)
	invocationDurationBucket = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jackal_muc",
			Subsystem: "interceptor",
			Name:      "invocation_duration_seconds",
			Help:      "Interceptor chain invocation duration in seconds.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"direction", "phase"},
	)
)

func init() {
	prometheus.MustRegister(invocationsTotal)
	prometheus.MustRegister(rejectionsTotal)
	prometheus.MustRegister(failuresTotal)
	prometheus.MustRegister(invocationDurationBucket)
}

func directionLabel(incoming bool) string {
	if incoming {
		return "incoming"
	}
	return "outgoing"
}

func phaseLabel(processed bool) string {
	if processed {
		return "processed"
	}
	return "unprocessed"
}

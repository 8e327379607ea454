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

package executor

import "github.com/prometheus/client_golang/prometheus"

var (
	queuedTasks = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "jackal_muc",
			Subsystem: "executor",
			Name:      "queued_tasks",
			Help:      "The number of tasks waiting to be executed.",
		},
	)
	executedTasks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "jackal_muc",
			Subsystem: "executor",
			Name:      "executed_tasks_total",
			Help:      "The total number of executed tasks.",
		},
	)
	rejectedTasks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "jackal_muc",
			Subsystem: "executor",
			Name:      "rejected_tasks_total",
			Help:      "The total number of tasks rejected due to a full queue.",
		},
	)
	panickedTasks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "jackal_muc",
			Subsystem: "executor",
			Name:      "panicked_tasks_total",
			Help:      "The total number of tasks that panicked.",
		},
	)
)

func init() {
	prometheus.MustRegister(queuedTasks)
	prometheus.MustRegister(executedTasks)
	prometheus.MustRegister(rejectedTasks)
	prometheus.MustRegister(panickedTasks)
}

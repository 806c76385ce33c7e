// Copyright (c) 2026, Tidevault Authors.  All rights reserved.
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

package updater

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tidevault_cycles_total",
			Help: "Total number of update cycles by outcome",
		},
		[]string{"status"},
	)

	cycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tidevault_cycle_duration_seconds",
			Help:    "Update cycle duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	snapshotsPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tidevault_snapshots_pruned_total",
			Help: "Total number of snapshot files removed by retention pruning",
		},
	)

	privateCycles = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tidevault_private_cycles_total",
			Help: "Total number of cycles whose position was redacted",
		},
	)

	lastCycleValues = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tidevault_last_cycle_values",
			Help: "Number of path values written in the most recent snapshot",
		},
	)
)

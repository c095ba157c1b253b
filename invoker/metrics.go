// Copyright 2025 ProcStream
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

package invoker

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus metrics for invocation monitoring
var (
	promInvocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "procstream_invocations_total",
			Help: "Total stored procedure invocations by driver and status",
		},
		[]string{"driver", "status"},
	)

	promInvocationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "procstream_invocation_duration_seconds",
			Help:    "End-to-end invocation latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"driver"},
	)

	promRowsStreamed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "procstream_rows_streamed_total",
			Help: "Total result rows serialized to JSON",
		},
	)

	promPoolInits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "procstream_pool_inits_total",
			Help: "Connection pool constructions (expected once per process)",
		},
	)

	promCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "procstream_cache_hits_total",
			Help: "Invocations served from the result cache",
		},
	)
)

func init() {
	prometheus.MustRegister(promInvocationsTotal)
	prometheus.MustRegister(promInvocationDuration)
	prometheus.MustRegister(promRowsStreamed)
	prometheus.MustRegister(promPoolInits)
	prometheus.MustRegister(promCacheHits)
}

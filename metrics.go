// Copyright 2019 Fabian Wenzelmann
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package brickmos

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tilesQuantized = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "brickmos",
		Name:      "tiles_quantized_total",
		Help:      "Number of mosaic cells replaced by a palette color.",
	})

	matchCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "brickmos",
		Name:      "match_cache_lookups_total",
		Help:      "Lookups in the nearest color cache by result.",
	}, []string{"result"})

	matchCacheHits   = matchCacheLookups.WithLabelValues("hit")
	matchCacheMisses = matchCacheLookups.WithLabelValues("miss")

	quantizeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "brickmos",
		Name:      "quantize_duration_seconds",
		Help:      "Time spent quantizing a mosaic.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
	})

	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "brickmos",
		Name:      "runs_total",
		Help:      "Pipeline runs by status.",
	}, []string{"status"})

	runsSucceeded = runsTotal.WithLabelValues("success")
	runsFailed    = runsTotal.WithLabelValues("error")
)

// NeighborCF - User-Based Collaborative Filtering
// Copyright 2026 Recolib
// SPDX-License-Identifier: Apache-2.0
// https://github.com/recolib/neighborcf

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// All collectors register on the default Prometheus registry. The library
// exposes no /metrics endpoint itself; a host process that already serves
// one picks these up automatically.
var (
	// Matrix Build Metrics
	MatrixBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "neighborcf_matrix_build_duration_seconds",
			Help:    "Duration of dense rating matrix builds in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	MatrixBuildRecords = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "neighborcf_matrix_build_records",
			Help:    "Number of rating records per matrix build",
			Buckets: []float64{10, 100, 1000, 10000, 100000, 1000000},
		},
	)

	// Similarity Metrics
	SimilarityDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "neighborcf_similarity_duration_seconds",
			Help:    "Duration of pairwise similarity computation in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30, 120},
		},
	)

	SimilarityDegeneratePairs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "neighborcf_similarity_degenerate_pairs_total",
			Help: "Total number of user pairs with undefined (zero variance) similarity",
		},
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "neighborcf_recommend_requests_total",
			Help: "Total number of recommendation requests",
		},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "neighborcf_recommend_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecommendEmptyResults = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "neighborcf_recommend_empty_results_total",
			Help: "Total number of recommendation requests that returned no items",
		},
	)

	RecommendErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "neighborcf_recommend_errors_total",
			Help: "Total number of failed engine operations",
		},
		[]string{"operation"}, // "similar_users", "recommend", "compute_similarity"
	)
)

// NeighborCF - User-Based Collaborative Filtering
// Copyright 2026 Recolib
// SPDX-License-Identifier: Apache-2.0
// https://github.com/recolib/neighborcf

/*
Package metrics provides Prometheus instrumentation for the engine.

Collectors cover the three pipeline stages:

  - neighborcf_matrix_build_duration_seconds: matrix build latency (histogram)
  - neighborcf_matrix_build_records: records per build (histogram)
  - neighborcf_similarity_duration_seconds: similarity computation latency (histogram)
  - neighborcf_similarity_degenerate_pairs_total: zero-variance pairs (counter)
  - neighborcf_recommend_requests_total: recommendation requests (counter)
  - neighborcf_recommend_duration_seconds: recommendation latency (histogram)
  - neighborcf_recommend_empty_results_total: empty recommendation lists (counter)
  - neighborcf_recommend_errors_total: failed operations (counter)
    Labels: operation (similar_users, recommend, compute_similarity)

Collectors register on the default registry via promauto at package load.
The library deliberately ships no HTTP surface; embedding applications that
serve promhttp expose these metrics without extra wiring.
*/
package metrics

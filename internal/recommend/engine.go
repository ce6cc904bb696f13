// NeighborCF - User-Based Collaborative Filtering
// Copyright 2026 Recolib
// SPDX-License-Identifier: Apache-2.0
// https://github.com/recolib/neighborcf

package recommend

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/recolib/neighborcf/internal/metrics"
)

// Engine runs the collaborative-filtering pipeline and caches its derived
// artifacts. Build and ComputeSimilarity take the write lock; every read
// path takes the read lock, so concurrent readers are safe once the
// matrices exist and rebuild-while-read is serialized internally.
type Engine[U, I cmp.Ordered] struct {
	config *Config
	logger zerolog.Logger

	mu         sync.RWMutex
	records    []Rating[U, I]
	matrix     *RatingMatrix[U, I]
	similarity *SimilarityMatrix[U]
}

// New creates an engine with the given configuration. A nil config uses
// defaults.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New[U, I cmp.Ordered](cfg *Config, logger zerolog.Logger) (*Engine[U, I], error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine[U, I]{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine[U, I]) Config() *Config {
	return e.config.Clone()
}

// Build converts records into the dense rating matrix and caches both the
// records and the matrix. Any previously computed similarity matrix is
// discarded; callers must invoke ComputeSimilarity again after a rebuild.
func (e *Engine[U, I]) Build(records []Rating[U, I]) *RatingMatrix[U, I] {
	start := time.Now()

	matrix := BuildMatrix(records, e.config.Missing)

	e.mu.Lock()
	e.records = slices.Clone(records)
	e.matrix = matrix
	e.similarity = nil
	e.mu.Unlock()

	metrics.MatrixBuildDuration.Observe(time.Since(start).Seconds())
	metrics.MatrixBuildRecords.Observe(float64(len(records)))

	e.logger.Info().
		Int("records", len(records)).
		Int("users", matrix.NumUsers()).
		Int("items", matrix.NumItems()).
		Msg("rating matrix built")

	return matrix
}

// Matrix returns the cached rating matrix, or ErrMatrixNotBuilt.
func (e *Engine[U, I]) Matrix() (*RatingMatrix[U, I], error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.matrix == nil {
		return nil, ErrMatrixNotBuilt
	}
	return e.matrix, nil
}

// ComputeSimilarity derives and caches the pairwise user-similarity matrix
// from the built rating matrix. It must be called after Build and is only
// recomputed on an explicit call; the cached matrix is immutable otherwise.
func (e *Engine[U, I]) ComputeSimilarity() (*SimilarityMatrix[U], error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.matrix == nil {
		metrics.RecommendErrors.WithLabelValues("compute_similarity").Inc()
		return nil, fmt.Errorf("compute similarity: %w", ErrMatrixNotBuilt)
	}

	start := time.Now()
	sim := ComputeSimilarity(e.matrix)
	e.similarity = sim

	degenerate := countDegeneratePairs(sim)
	metrics.SimilarityDuration.Observe(time.Since(start).Seconds())
	metrics.SimilarityDegeneratePairs.Add(float64(degenerate))

	e.logger.Info().
		Int("users", len(sim.users)).
		Int("degenerate_pairs", degenerate).
		Msg("similarity matrix computed")

	return sim, nil
}

// Similarity returns the cached similarity matrix, or
// ErrSimilarityNotComputed.
func (e *Engine[U, I]) Similarity() (*SimilarityMatrix[U], error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.similarity == nil {
		return nil, ErrSimilarityNotComputed
	}
	return e.similarity, nil
}

// SimilarUsers returns up to n users ranked by similarity to userID,
// most similar first. The query user is excluded. Undefined (NaN)
// similarities rank below every defined value; ties keep ascending user
// order. Fewer than n users are returned when fewer exist.
//
// n <= 0 falls back to the configured neighbor count.
func (e *Engine[U, I]) SimilarUsers(userID U, n int) ([]U, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	neighbors, err := e.neighborsLocked(userID, n)
	if err != nil {
		metrics.RecommendErrors.WithLabelValues("similar_users").Inc()
		return nil, err
	}

	users := make([]U, len(neighbors))
	for i, nb := range neighbors {
		users[i] = nb.UserID
	}
	return users, nil
}

// Neighbors is SimilarUsers with the similarity scores attached.
func (e *Engine[U, I]) Neighbors(userID U, n int) ([]Neighbor[U], error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	neighbors, err := e.neighborsLocked(userID, n)
	if err != nil {
		metrics.RecommendErrors.WithLabelValues("similar_users").Inc()
		return nil, err
	}
	return neighbors, nil
}

// neighborsLocked ranks all other users by similarity to userID.
// Must be called with at least the read lock held.
func (e *Engine[U, I]) neighborsLocked(userID U, n int) ([]Neighbor[U], error) {
	if e.similarity == nil {
		return nil, fmt.Errorf("similar users: %w", ErrSimilarityNotComputed)
	}

	sim := e.similarity
	row, ok := sim.userIndex[userID]
	if !ok {
		return nil, fmt.Errorf("similar users: %w: %v", ErrUnknownUser, userID)
	}

	if n <= 0 {
		n = e.config.NeighborCount
	}

	neighbors := make([]Neighbor[U], 0, len(sim.users)-1)
	for i, other := range sim.users {
		if i == row {
			continue
		}
		neighbors = append(neighbors, Neighbor[U]{
			UserID:     other,
			Similarity: sim.cells[row][i],
		})
	}

	// Descending similarity, NaN last. The candidate list is already in
	// ascending user order, so a stable sort gives the tie-break.
	sort.SliceStable(neighbors, func(i, j int) bool {
		a, b := neighbors[i].Similarity, neighbors[j].Similarity
		if math.IsNaN(a) != math.IsNaN(b) {
			return !math.IsNaN(a)
		}
		return a > b
	})

	if len(neighbors) > n {
		neighbors = neighbors[:n]
	}
	return neighbors, nil
}

// Recommend returns up to n items ranked for userID by the mean rating of
// the user's nearest neighbors. The neighbor set size is the configured
// neighbor count, independent of n. Items with equal means rank in
// ascending item order. Items the target user has already rated are kept
// unless the ExcludeRated option is set.
//
// An empty result is not an error: it simply means no neighbor has rated
// anything usable.
//
// n <= 0 falls back to the configured default recommendation count.
func (e *Engine[U, I]) Recommend(userID U, n int) ([]I, error) {
	start := time.Now()
	metrics.RecommendRequests.Inc()

	logger := e.logger.With().
		Str("request_id", uuid.NewString()).
		Any("user_id", userID).
		Logger()

	e.mu.RLock()
	defer e.mu.RUnlock()

	neighbors, err := e.neighborsLocked(userID, e.config.NeighborCount)
	if err != nil {
		metrics.RecommendErrors.WithLabelValues("recommend").Inc()
		return nil, fmt.Errorf("recommend: %w", err)
	}

	if n <= 0 {
		n = e.config.DefaultRecommendations
	}

	items := e.aggregateLocked(userID, neighbors, n)

	metrics.RecommendDuration.Observe(time.Since(start).Seconds())
	if len(items) == 0 {
		metrics.RecommendEmptyResults.Inc()
	}

	logger.Debug().
		Int("neighbors", len(neighbors)).
		Int("returned", len(items)).
		Msg("recommendation complete")

	return items, nil
}

// aggregateLocked groups neighbor-authored ratings by item, ranks items by
// mean rating, and returns the top n item identifiers.
// Must be called with at least the read lock held.
func (e *Engine[U, I]) aggregateLocked(userID U, neighbors []Neighbor[U], n int) []I {
	neighborSet := make(map[U]struct{}, len(neighbors))
	for _, nb := range neighbors {
		neighborSet[nb.UserID] = struct{}{}
	}

	// Duplicate (user, item) records resolve to the last occurrence,
	// matching the matrix build policy.
	type cell struct {
		user U
		item I
	}
	latest := make(map[cell]float64)
	rated := make(map[I]struct{})

	for _, rec := range e.records {
		if rec.UserID == userID {
			rated[rec.ItemID] = struct{}{}
		}
		if _, ok := neighborSet[rec.UserID]; !ok {
			continue
		}
		latest[cell{user: rec.UserID, item: rec.ItemID}] = rec.Value
	}

	sums := make(map[I]float64)
	counts := make(map[I]int)
	for c, value := range latest {
		sums[c.item] += value
		counts[c.item]++
	}

	candidates := make([]I, 0, len(sums))
	for item := range sums {
		if e.config.ExcludeRated {
			if _, ok := rated[item]; ok {
				continue
			}
		}
		candidates = append(candidates, item)
	}

	// Ascending item order first so the stable sort by mean breaks ties
	// deterministically.
	slices.Sort(candidates)
	sort.SliceStable(candidates, func(i, j int) bool {
		mi := sums[candidates[i]] / float64(counts[candidates[i]])
		mj := sums[candidates[j]] / float64(counts[candidates[j]])
		return mi > mj
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}

// countDegeneratePairs counts distinct user pairs (diagonal included) with
// undefined similarity.
func countDegeneratePairs[U cmp.Ordered](s *SimilarityMatrix[U]) int {
	count := 0
	for a := range s.cells {
		for b := a; b < len(s.cells); b++ {
			if math.IsNaN(s.cells[a][b]) {
				count++
			}
		}
	}
	return count
}

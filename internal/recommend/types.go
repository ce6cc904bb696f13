// NeighborCF - User-Based Collaborative Filtering
// Copyright 2026 Recolib
// SPDX-License-Identifier: Apache-2.0
// https://github.com/recolib/neighborcf

package recommend

import (
	"cmp"
	"errors"
	"fmt"
	"math"
)

// Sentinel errors returned by the engine. They may be wrapped with
// additional context, so callers should match them with errors.Is.
var (
	// ErrMatrixNotBuilt is returned when the rating matrix is requested
	// before Build has been called.
	ErrMatrixNotBuilt = errors.New("rating matrix not built")

	// ErrSimilarityNotComputed is returned when a similarity-dependent
	// operation runs before ComputeSimilarity has been called.
	ErrSimilarityNotComputed = errors.New("similarity matrix not computed")

	// ErrUnknownUser is returned when the requested user is not part of
	// the built rating matrix.
	ErrUnknownUser = errors.New("unknown user")

	// ErrInvalidConfig is returned by New when the configuration fails
	// validation.
	ErrInvalidConfig = errors.New("invalid engine config")
)

// Rating is a single observed (user, item, rating) record.
type Rating[U, I cmp.Ordered] struct {
	// UserID identifies the rating author.
	UserID U `json:"user_id"`

	// ItemID identifies the rated item.
	ItemID I `json:"item_id"`

	// Value is the numeric rating score.
	Value float64 `json:"rating"`
}

// MissingValuePolicy controls the value substituted for (user, item) cells
// with no observed rating when building the dense matrix.
//
// The zero value preserves the historical behavior of treating missing
// ratings as 0, which conflates "no opinion" with "lowest rating". The
// policy exists so that choice is explicit and overridable rather than
// hardcoded.
type MissingValuePolicy struct {
	// FillValue is written into cells with no observed rating.
	FillValue float64 `json:"fill_value"`
}

// DefaultMissingValuePolicy returns the zero-fill policy.
func DefaultMissingValuePolicy() MissingValuePolicy {
	return MissingValuePolicy{FillValue: 0}
}

// RatingMatrix is a dense user-by-item rating table. Rows follow Users and
// columns follow Items, both sorted ascending for deterministic ordering.
type RatingMatrix[U, I cmp.Ordered] struct {
	users []U
	items []I

	userIndex map[U]int
	itemIndex map[I]int

	// cells[r][c] holds the rating of users[r] for items[c], or the
	// policy fill value when no rating was observed.
	cells [][]float64

	policy MissingValuePolicy
}

// Users returns the distinct user identifiers in ascending order.
// The returned slice must not be modified.
func (m *RatingMatrix[U, I]) Users() []U {
	return m.users
}

// Items returns the distinct item identifiers in ascending order.
// The returned slice must not be modified.
func (m *RatingMatrix[U, I]) Items() []I {
	return m.items
}

// NumUsers returns the number of distinct users.
func (m *RatingMatrix[U, I]) NumUsers() int {
	return len(m.users)
}

// NumItems returns the number of distinct items.
func (m *RatingMatrix[U, I]) NumItems() int {
	return len(m.items)
}

// Value returns the cell for (userID, itemID). The second return is false
// when either identifier is outside the matrix universe.
func (m *RatingMatrix[U, I]) Value(userID U, itemID I) (float64, bool) {
	r, ok := m.userIndex[userID]
	if !ok {
		return 0, false
	}
	c, ok := m.itemIndex[itemID]
	if !ok {
		return 0, false
	}
	return m.cells[r][c], true
}

// HasUser reports whether userID is part of the matrix universe.
func (m *RatingMatrix[U, I]) HasUser(userID U) bool {
	_, ok := m.userIndex[userID]
	return ok
}

// row returns the full zero-padded rating vector for a user row index.
func (m *RatingMatrix[U, I]) row(r int) []float64 {
	return m.cells[r]
}

// SimilarityMatrix is a symmetric user-by-user Pearson correlation table.
// Cells are NaN when either user's rating vector has zero variance.
type SimilarityMatrix[U cmp.Ordered] struct {
	users     []U
	userIndex map[U]int
	cells     [][]float64
}

// Users returns the user identifiers in ascending order.
// The returned slice must not be modified.
func (s *SimilarityMatrix[U]) Users() []U {
	return s.users
}

// Score returns the similarity between two users. The second return is
// false when either user is outside the matrix universe. A true return
// with a NaN value means the similarity is undefined (zero variance).
func (s *SimilarityMatrix[U]) Score(a, b U) (float64, bool) {
	ra, ok := s.userIndex[a]
	if !ok {
		return 0, false
	}
	rb, ok := s.userIndex[b]
	if !ok {
		return 0, false
	}
	return s.cells[ra][rb], true
}

// Neighbor pairs a user with their similarity to a query user.
type Neighbor[U cmp.Ordered] struct {
	UserID     U       `json:"user_id"`
	Similarity float64 `json:"similarity"`
}

// Config contains the tunable parameters of the engine.
type Config struct {
	// NeighborCount is the number of most similar users consulted when
	// aggregating ratings into recommendations.
	NeighborCount int `json:"neighbor_count"`

	// DefaultRecommendations is the number of items returned when a
	// request asks for zero or a negative count.
	DefaultRecommendations int `json:"default_recommendations"`

	// ExcludeRated drops items the target user has already rated from
	// the recommendation list. Off by default to match the historical
	// aggregation behavior.
	ExcludeRated bool `json:"exclude_rated"`

	// Missing is the fill policy applied when building the matrix.
	Missing MissingValuePolicy `json:"missing"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		NeighborCount:          5,
		DefaultRecommendations: 5,
		ExcludeRated:           false,
		Missing:                DefaultMissingValuePolicy(),
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.NeighborCount <= 0 {
		return fmt.Errorf("%w: neighbor_count must be > 0, got %d", ErrInvalidConfig, c.NeighborCount)
	}
	if c.DefaultRecommendations <= 0 {
		return fmt.Errorf("%w: default_recommendations must be > 0, got %d", ErrInvalidConfig, c.DefaultRecommendations)
	}
	if math.IsNaN(c.Missing.FillValue) || math.IsInf(c.Missing.FillValue, 0) {
		return fmt.Errorf("%w: fill_value must be finite", ErrInvalidConfig)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}

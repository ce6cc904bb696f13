// NeighborCF - User-Based Collaborative Filtering
// Copyright 2026 Recolib
// SPDX-License-Identifier: Apache-2.0
// https://github.com/recolib/neighborcf

package recommend

import (
	"cmp"
	"math"
	"slices"
)

// ComputeSimilarity derives the pairwise user-similarity matrix from a
// dense rating matrix via Pearson linear correlation.
//
// Correlation is computed over the FULL item-universe vectors, fill value
// included. Cells that were never rated contribute the fill value to both
// vectors, which inflates overlap between sparse users. That is the
// historical contract of this pipeline; do not substitute a co-rated-only
// correlation here.
//
// The result is symmetric. When either user's vector has zero variance the
// similarity is NaN, which later stages rank below every defined value.
// Diagonal entries are 1 for users with nonzero variance.
func ComputeSimilarity[U, I cmp.Ordered](m *RatingMatrix[U, I]) *SimilarityMatrix[U] {
	n := m.NumUsers()

	cells := make([][]float64, n)
	for r := range cells {
		cells[r] = make([]float64, n)
	}

	for a := 0; a < n; a++ {
		for b := a; b < n; b++ {
			sim := pearson(m.row(a), m.row(b))
			cells[a][b] = sim
			cells[b][a] = sim
		}
	}

	userIndex := make(map[U]int, n)
	for r, u := range m.users {
		userIndex[u] = r
	}

	return &SimilarityMatrix[U]{
		// Cloned so the similarity matrix never aliases the rating
		// matrix's user slice.
		users:     slices.Clone(m.users),
		userIndex: userIndex,
		cells:     cells,
	}
}

// pearson computes the Pearson correlation coefficient between two equal
// length vectors. Returns NaN when either vector has zero variance.
func pearson(a, b []float64) float64 {
	if len(a) == 0 {
		return math.NaN()
	}

	var sumA, sumB float64
	for i := range a {
		sumA += a[i]
		sumB += b[i]
	}
	meanA := sumA / float64(len(a))
	meanB := sumB / float64(len(b))

	var cov, varA, varB float64
	for i := range a {
		da := a[i] - meanA
		db := b[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}

	if varA == 0 || varB == 0 {
		return math.NaN()
	}

	return cov / (math.Sqrt(varA) * math.Sqrt(varB))
}

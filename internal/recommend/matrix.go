// NeighborCF - User-Based Collaborative Filtering
// Copyright 2026 Recolib
// SPDX-License-Identifier: Apache-2.0
// https://github.com/recolib/neighborcf

package recommend

import (
	"cmp"
	"slices"
)

// BuildMatrix converts raw rating records into a dense user-by-item matrix.
//
// The row and column universes are exactly the distinct user and item
// identifiers seen in the input, sorted ascending. Cells with no observed
// rating take the policy fill value. When the input contains duplicate
// (user, item) pairs the LAST occurrence wins; records are applied in input
// order, so later writes overwrite earlier ones.
//
// The input slice is not mutated.
func BuildMatrix[U, I cmp.Ordered](records []Rating[U, I], policy MissingValuePolicy) *RatingMatrix[U, I] {
	userSet := make(map[U]struct{}, len(records))
	itemSet := make(map[I]struct{}, len(records))

	for _, rec := range records {
		userSet[rec.UserID] = struct{}{}
		itemSet[rec.ItemID] = struct{}{}
	}

	users := make([]U, 0, len(userSet))
	for u := range userSet {
		users = append(users, u)
	}
	slices.Sort(users)

	items := make([]I, 0, len(itemSet))
	for i := range itemSet {
		items = append(items, i)
	}
	slices.Sort(items)

	userIndex := make(map[U]int, len(users))
	for r, u := range users {
		userIndex[u] = r
	}
	itemIndex := make(map[I]int, len(items))
	for c, i := range items {
		itemIndex[i] = c
	}

	cells := make([][]float64, len(users))
	for r := range cells {
		row := make([]float64, len(items))
		if policy.FillValue != 0 {
			for c := range row {
				row[c] = policy.FillValue
			}
		}
		cells[r] = row
	}

	for _, rec := range records {
		cells[userIndex[rec.UserID]][itemIndex[rec.ItemID]] = rec.Value
	}

	return &RatingMatrix[U, I]{
		users:     users,
		items:     items,
		userIndex: userIndex,
		itemIndex: itemIndex,
		cells:     cells,
		policy:    policy,
	}
}

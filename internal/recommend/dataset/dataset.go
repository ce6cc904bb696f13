// NeighborCF - User-Based Collaborative Filtering
// Copyright 2026 Recolib
// SPDX-License-Identifier: Apache-2.0
// https://github.com/recolib/neighborcf

// Package dataset loads rating records for the demonstration driver.
package dataset

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/recolib/neighborcf/internal/recommend"
)

// Load reads an ordered JSON array of rating records from path:
//
//	[{"user_id": 1, "item_id": 101, "rating": 5}, ...]
func Load(path string) ([]recommend.Rating[int, int], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}

	var records []recommend.Rating[int, int]
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}

	return records, nil
}

// Sample returns the built-in demonstration dataset: four users rating a
// catalog of five items.
func Sample() []recommend.Rating[int, int] {
	return []recommend.Rating[int, int]{
		{UserID: 1, ItemID: 101, Value: 5},
		{UserID: 1, ItemID: 102, Value: 4},
		{UserID: 1, ItemID: 103, Value: 3},
		{UserID: 2, ItemID: 101, Value: 4},
		{UserID: 2, ItemID: 104, Value: 5},
		{UserID: 3, ItemID: 102, Value: 2},
		{UserID: 3, ItemID: 105, Value: 4},
		{UserID: 4, ItemID: 103, Value: 3},
	}
}

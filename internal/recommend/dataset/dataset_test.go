// NeighborCF - User-Based Collaborative Filtering
// Copyright 2026 Recolib
// SPDX-License-Identifier: Apache-2.0
// https://github.com/recolib/neighborcf

package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/recolib/neighborcf/internal/recommend"
)

func TestSample(t *testing.T) {
	records := Sample()

	if len(records) != 8 {
		t.Fatalf("Sample() returned %d records, want 8", len(records))
	}

	users := make(map[int]struct{})
	items := make(map[int]struct{})
	for _, r := range records {
		users[r.UserID] = struct{}{}
		items[r.ItemID] = struct{}{}
		if r.Value <= 0 {
			t.Errorf("record %+v has non-positive rating", r)
		}
	}

	if len(users) != 4 {
		t.Errorf("Sample() spans %d users, want 4", len(users))
	}
	if len(items) != 5 {
		t.Errorf("Sample() spans %d items, want 5", len(items))
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratings.json")
	content := []byte(`[
		{"user_id": 1, "item_id": 101, "rating": 5},
		{"user_id": 2, "item_id": 102, "rating": 3.5}
	]`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write dataset: %v", err)
	}

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []recommend.Rating[int, int]{
		{UserID: 1, ItemID: 101, Value: 5},
		{UserID: 2, ItemID: 102, Value: 3.5},
	}
	if len(records) != len(want) {
		t.Fatalf("Load() returned %d records, want %d", len(records), len(want))
	}
	for i := range want {
		if records[i] != want[i] {
			t.Errorf("records[%d] = %+v, want %+v", i, records[i], want[i])
		}
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load() error = nil for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() error = nil for malformed file")
	}
}

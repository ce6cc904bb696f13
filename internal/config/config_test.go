// NeighborCF - User-Based Collaborative Filtering
// Copyright 2026 Recolib
// SPDX-License-Identifier: Apache-2.0
// https://github.com/recolib/neighborcf

package config

import (
	"os"
	"path/filepath"
	"testing"
)

// chdirEmpty moves the test into an empty directory so no stray
// config.yaml from the working tree leaks into Load.
func chdirEmpty(t *testing.T) {
	t.Helper()
	// testing.T.Chdir requires Go 1.24; do the equivalent by hand.
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("Chdir() back error = %v", err)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	chdirEmpty(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}
	if cfg.Engine.NeighborCount != 5 {
		t.Errorf("Engine.NeighborCount = %d, want 5", cfg.Engine.NeighborCount)
	}
	if cfg.Engine.RecommendCount != 5 {
		t.Errorf("Engine.RecommendCount = %d, want 5", cfg.Engine.RecommendCount)
	}
	if cfg.Engine.ExcludeRated {
		t.Error("Engine.ExcludeRated = true, want false by default")
	}
	if cfg.Dataset.Path != "" {
		t.Errorf("Dataset.Path = %q, want empty", cfg.Dataset.Path)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirEmpty(t)
	t.Setenv("NEIGHBORCF_LOGGING_FORMAT", "console")
	t.Setenv("NEIGHBORCF_ENGINE_NEIGHBOR_COUNT", "10")
	t.Setenv("NEIGHBORCF_ENGINE_EXCLUDE_RATED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "console")
	}
	if cfg.Engine.NeighborCount != 10 {
		t.Errorf("Engine.NeighborCount = %d, want 10", cfg.Engine.NeighborCount)
	}
	if !cfg.Engine.ExcludeRated {
		t.Error("Engine.ExcludeRated = false, want true")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	chdirEmpty(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("logging:\n  level: debug\nengine:\n  recommend_count: 3\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Engine.RecommendCount != 3 {
		t.Errorf("Engine.RecommendCount = %d, want 3", cfg.Engine.RecommendCount)
	}
	// Untouched settings keep their defaults.
	if cfg.Engine.NeighborCount != 5 {
		t.Errorf("Engine.NeighborCount = %d, want 5", cfg.Engine.NeighborCount)
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	chdirEmpty(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("NEIGHBORCF_LOGGING_LEVEL", "error")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want env override %q", cfg.Logging.Level, "error")
	}
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "unknown log format",
			env:  map[string]string{"NEIGHBORCF_LOGGING_FORMAT": "xml"},
		},
		{
			name: "unknown log level",
			env:  map[string]string{"NEIGHBORCF_LOGGING_LEVEL": "verbose"},
		},
		{
			name: "non-positive neighbor count",
			env:  map[string]string{"NEIGHBORCF_ENGINE_NEIGHBOR_COUNT": "0"},
		},
		{
			name: "negative recommend count",
			env:  map[string]string{"NEIGHBORCF_ENGINE_RECOMMEND_COUNT": "-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirEmpty(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := Load(); err == nil {
				t.Error("Load() error = nil, want validation failure")
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{key: "NEIGHBORCF_LOGGING_LEVEL", want: "logging.level"},
		{key: "NEIGHBORCF_ENGINE_NEIGHBOR_COUNT", want: "engine.neighbor_count"},
		{key: "NEIGHBORCF_DATASET_PATH", want: "dataset.path"},
		{key: "NEIGHBORCF_BARE", want: ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.key); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestConfig_EngineConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Engine.NeighborCount = 7
	cfg.Engine.FillValue = 2.5
	cfg.Engine.ExcludeRated = true

	ec := cfg.EngineConfig()

	if ec.NeighborCount != 7 {
		t.Errorf("NeighborCount = %d, want 7", ec.NeighborCount)
	}
	if ec.Missing.FillValue != 2.5 {
		t.Errorf("Missing.FillValue = %v, want 2.5", ec.Missing.FillValue)
	}
	if !ec.ExcludeRated {
		t.Error("ExcludeRated = false, want true")
	}
	if err := ec.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

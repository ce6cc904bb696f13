// NeighborCF - User-Based Collaborative Filtering
// Copyright 2026 Recolib
// SPDX-License-Identifier: Apache-2.0
// https://github.com/recolib/neighborcf

// Package config loads NeighborCF configuration from layered sources with
// clear precedence: environment variables > config file > defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/recolib/neighborcf/internal/recommend"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/neighborcf/config.yaml",
	"/etc/neighborcf/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefix namespaces the environment variables read by Load.
const envPrefix = "NEIGHBORCF_"

// Config is the full application configuration.
type Config struct {
	Logging LoggingConfig `koanf:"logging"`
	Engine  EngineConfig  `koanf:"engine"`
	Dataset DatasetConfig `koanf:"dataset"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	// Level is the minimum log level.
	Level string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`

	// Format selects json or console output.
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// EngineConfig configures the recommendation engine.
type EngineConfig struct {
	// NeighborCount is the number of most similar users consulted during
	// aggregation.
	NeighborCount int `koanf:"neighbor_count" validate:"gt=0"`

	// RecommendCount is the default number of recommended items.
	RecommendCount int `koanf:"recommend_count" validate:"gt=0"`

	// ExcludeRated drops items the target user has already rated.
	ExcludeRated bool `koanf:"exclude_rated"`

	// FillValue is substituted for missing ratings in the dense matrix.
	FillValue float64 `koanf:"fill_value"`
}

// DatasetConfig configures the demo dataset source.
type DatasetConfig struct {
	// Path is a JSON ratings file. Empty means the embedded sample.
	Path string `koanf:"path"`
}

// defaultConfig returns a Config with all defaults applied. Defaults load
// first and are overridden by the config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Engine: EngineConfig{
			NeighborCount:  5,
			RecommendCount: 5,
			ExcludeRated:   false,
			FillValue:      0,
		},
		Dataset: DatasetConfig{
			Path: "",
		},
	}
}

// Load builds the configuration from layered sources:
//  1. Defaults: built-in values from defaultConfig
//  2. Config file: optional YAML file (CONFIG_PATH or default paths)
//  3. Environment variables: NEIGHBORCF_-prefixed, highest priority
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// NEIGHBORCF_ENGINE_NEIGHBOR_COUNT -> engine.neighbor_count
	envProvider := env.Provider(envPrefix, ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration against its struct constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	return c.EngineConfig().Validate()
}

// EngineConfig converts the loaded settings into an engine configuration.
func (c *Config) EngineConfig() *recommend.Config {
	return &recommend.Config{
		NeighborCount:          c.Engine.NeighborCount,
		DefaultRecommendations: c.Engine.RecommendCount,
		ExcludeRated:           c.Engine.ExcludeRated,
		Missing:                recommend.MissingValuePolicy{FillValue: c.Engine.FillValue},
	}
}

// findConfigFile searches for a config file, honoring CONFIG_PATH first.
// Returns empty string when none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransformFunc maps a NEIGHBORCF_-prefixed environment variable name
// to a koanf config path. The first underscore-delimited token after the
// prefix is the section; the remainder keeps its underscores:
//
//	NEIGHBORCF_LOGGING_LEVEL          -> logging.level
//	NEIGHBORCF_ENGINE_NEIGHBOR_COUNT  -> engine.neighbor_count
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	section, rest, found := strings.Cut(key, "_")
	if !found {
		// No section qualifier; drop the key rather than guess.
		return ""
	}
	return section + "." + rest
}

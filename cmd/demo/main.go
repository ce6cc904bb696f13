// NeighborCF - User-Based Collaborative Filtering
// Copyright 2026 Recolib
// SPDX-License-Identifier: Apache-2.0
// https://github.com/recolib/neighborcf

// Package main is the NeighborCF demonstration driver.
//
// It runs the full collaborative-filtering pipeline over a rating dataset
// and logs ranked recommendations for every user:
//
//  1. Configuration: load settings from environment variables and an
//     optional config file (Koanf v2)
//  2. Dataset: read a JSON ratings file, or fall back to the embedded
//     sample when none is configured
//  3. Pipeline: build the dense rating matrix, compute the pairwise
//     similarity matrix, then rank neighbors and recommendations
//
// # Configuration
//
// Settings load via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (NEIGHBORCF_ prefix)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Example Usage
//
//	export NEIGHBORCF_LOGGING_FORMAT=console
//	export NEIGHBORCF_DATASET_PATH=ratings.json
//	./demo
package main

import (
	"os"

	"github.com/recolib/neighborcf/internal/config"
	"github.com/recolib/neighborcf/internal/logging"
	"github.com/recolib/neighborcf/internal/recommend"
	"github.com/recolib/neighborcf/internal/recommend/dataset"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Error().Err(err).Msg("failed to load configuration")
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	records, err := loadRecords(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load dataset")
		os.Exit(1)
	}

	engine, err := recommend.New[int, int](cfg.EngineConfig(), logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create engine")
		os.Exit(1)
	}

	matrix := engine.Build(records)
	if _, err := engine.ComputeSimilarity(); err != nil {
		logger.Error().Err(err).Msg("failed to compute similarity")
		os.Exit(1)
	}

	for _, userID := range matrix.Users() {
		neighbors, err := engine.Neighbors(userID, cfg.Engine.NeighborCount)
		if err != nil {
			logger.Error().Err(err).Int("user_id", userID).Msg("neighbor selection failed")
			os.Exit(1)
		}

		items, err := engine.Recommend(userID, cfg.Engine.RecommendCount)
		if err != nil {
			logger.Error().Err(err).Int("user_id", userID).Msg("recommendation failed")
			os.Exit(1)
		}

		logger.Info().
			Int("user_id", userID).
			Ints("recommended_items", items).
			Interface("neighbors", neighbors).
			Msg("recommendations")
	}
}

// loadRecords reads the configured dataset, falling back to the embedded
// sample when no path is set.
func loadRecords(cfg *config.Config) ([]recommend.Rating[int, int], error) {
	if cfg.Dataset.Path == "" {
		logging.Debug().Msg("no dataset configured, using embedded sample")
		return dataset.Sample(), nil
	}
	return dataset.Load(cfg.Dataset.Path)
}

// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/tomtom215/shopperspectrum/internal/artifact"
	"github.com/tomtom215/shopperspectrum/internal/config"
	"github.com/tomtom215/shopperspectrum/internal/logging"
	"github.com/tomtom215/shopperspectrum/internal/recommend"
	"github.com/tomtom215/shopperspectrum/internal/segment"
)

// app is the wired domain layer shared by serve and the one-shot commands.
type app struct {
	provider *artifact.Provider
	engine   *recommend.Engine
	segments *segment.Service
	closer   io.Closer
}

// artifactSource is a loader for both artifact kinds.
type artifactSource interface {
	artifact.SimilarityLoader
	artifact.SegmentationLoader
}

// openSource returns the configured artifact backend. The closer is nil
// for backends without resources to release.
func openSource(cfg *config.ArtifactsConfig) (artifactSource, io.Closer, error) {
	switch cfg.Backend {
	case config.BackendSnapshot:
		store, err := artifact.NewSnapshotStore(cfg.SnapshotDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open snapshot store: %w", err)
		}
		return store, nil, nil
	case config.BackendBadger:
		store, err := artifact.OpenBadgerStore(cfg.BadgerDir, true)
		if err != nil {
			return nil, nil, fmt.Errorf("open badger store: %w", err)
		}
		return store, store, nil
	default:
		return &artifact.FileLoader{
			SimilarityPath:   cfg.SimilarityPath,
			SegmentationPath: cfg.SegmentationPath,
		}, nil, nil
	}
}

// brokenSource fails every load with the error that kept the backend from
// opening.
type brokenSource struct{ err error }

func (b brokenSource) LoadSimilarity(context.Context) (*artifact.Similarity, error) {
	return nil, b.err
}

func (b brokenSource) LoadSegmentation(context.Context) (*artifact.Segmentation, error) {
	return nil, b.err
}

// engineConfig maps the recommend config section onto the engine's.
func engineConfig(cfg *config.RecommendConfig) *recommend.Config {
	return &recommend.Config{
		DefaultTopN:  cfg.DefaultTopN,
		MaxTopN:      cfg.MaxTopN,
		PopularCount: cfg.PopularCount,
		Cache: recommend.CacheConfig{
			Enabled: cfg.CacheEnabled,
			Size:    cfg.CacheSize,
			TTL:     cfg.CacheTTL,
		},
	}
}

// labelOverrides converts configured labels to segment labels.
func labelOverrides(cfg *config.SegmentConfig) map[int]segment.Label {
	if len(cfg.Labels) == 0 {
		return nil
	}
	out := make(map[int]segment.Label, len(cfg.Labels))
	for _, l := range cfg.Labels {
		out[l.ID] = segment.Label{Name: l.Name, Description: l.Description}
	}
	return out
}

// newApp wires the artifact provider, the recommendation engine and the
// segmentation service from cfg. Nothing is loaded yet.
func newApp(cfg *config.Config) (*app, error) {
	source, closer, err := openSource(&cfg.Artifacts)
	if err != nil {
		// Both features report unavailable instead of aborting startup.
		logging.Error().Err(err).Str("backend", cfg.Artifacts.Backend).Msg("artifact backend unavailable")
		source = brokenSource{err: err}
	}

	provider := artifact.NewProvider(source, source, artifact.ProviderOptions{
		LoadTimeout: cfg.Artifacts.LoadTimeout,
		Logger:      logging.Logger(),
	})

	engine, err := recommend.NewEngine(engineConfig(&cfg.Recommend), provider, logging.WithComponent("recommend"))
	if err != nil {
		closeQuietly(closer)
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}

	segments, err := segment.NewService(provider, labelOverrides(&cfg.Segment), logging.WithComponent("segment"))
	if err != nil {
		closeQuietly(closer)
		return nil, fmt.Errorf("create segmentation service: %w", err)
	}

	logging.Info().
		Str("backend", cfg.Artifacts.Backend).
		Int("default_top_n", cfg.Recommend.DefaultTopN).
		Bool("cache", cfg.Recommend.CacheEnabled).
		Int("label_overrides", len(cfg.Segment.Labels)).
		Msg("application wired")

	return &app{provider: provider, engine: engine, segments: segments, closer: closer}, nil
}

func (a *app) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func closeQuietly(c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logging.Warn().Err(err).Msg("close artifact backend")
	}
}

// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package config

import (
	"fmt"
	"strings"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateArtifacts(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateSegment(); err != nil {
		return err
	}
	return c.validateSecurity()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("SERVER_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %v", c.Server.RequestTimeout)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, panic, disabled; got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateArtifacts() error {
	a := &c.Artifacts
	switch a.Backend {
	case BackendFile:
		if a.SimilarityPath == "" && a.SegmentationPath == "" {
			return fmt.Errorf("file backend requires SIMILARITY_ARTIFACT_PATH or SEGMENTATION_ARTIFACT_PATH")
		}
	case BackendSnapshot:
		if a.SnapshotDir == "" {
			return fmt.Errorf("ARTIFACT_SNAPSHOT_DIR is required when ARTIFACT_BACKEND=snapshot")
		}
	case BackendBadger:
		if a.BadgerDir == "" {
			return fmt.Errorf("ARTIFACT_BADGER_DIR is required when ARTIFACT_BACKEND=badger")
		}
	default:
		return fmt.Errorf("ARTIFACT_BACKEND must be file, snapshot or badger, got %q", a.Backend)
	}
	if a.RetainVersions < 1 {
		return fmt.Errorf("ARTIFACT_RETAIN_VERSIONS must be positive, got %d", a.RetainVersions)
	}
	if a.LoadTimeout <= 0 {
		return fmt.Errorf("ARTIFACT_LOAD_TIMEOUT must be positive, got %v", a.LoadTimeout)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := &c.Recommend
	if r.DefaultTopN < 1 {
		return fmt.Errorf("RECOMMEND_DEFAULT_TOP_N must be positive, got %d", r.DefaultTopN)
	}
	if r.MaxTopN < r.DefaultTopN {
		return fmt.Errorf("RECOMMEND_MAX_TOP_N must be >= RECOMMEND_DEFAULT_TOP_N, got %d < %d", r.MaxTopN, r.DefaultTopN)
	}
	if r.PopularCount < 1 {
		return fmt.Errorf("POPULAR_PRODUCTS_COUNT must be positive, got %d", r.PopularCount)
	}
	if r.CacheEnabled {
		if r.CacheSize < 1 {
			return fmt.Errorf("RECOMMEND_CACHE_SIZE must be positive when caching is enabled, got %d", r.CacheSize)
		}
		if r.CacheTTL < 0 {
			return fmt.Errorf("RECOMMEND_CACHE_TTL must be non-negative, got %v", r.CacheTTL)
		}
	}
	return nil
}

func (c *Config) validateSegment() error {
	seen := make(map[int]bool, len(c.Segment.Labels))
	for _, l := range c.Segment.Labels {
		if l.ID < 0 {
			return fmt.Errorf("segment.labels: cluster id must be non-negative, got %d", l.ID)
		}
		if seen[l.ID] {
			return fmt.Errorf("segment.labels: duplicate cluster id %d", l.ID)
		}
		if strings.TrimSpace(l.Name) == "" {
			return fmt.Errorf("segment.labels: cluster %d has an empty name", l.ID)
		}
		seen[l.ID] = true
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

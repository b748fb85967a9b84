// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package recommend

import (
	"fmt"
	"time"
)

// Config contains the recommendation engine settings.
type Config struct {
	// DefaultTopN is used when a request does not ask for a size.
	// Default: 5.
	DefaultTopN int `json:"default_top_n"`

	// MaxTopN caps the requested size.
	// Default: 50.
	MaxTopN int `json:"max_top_n"`

	// PopularCount is the size of the popular products view.
	// Default: 10.
	PopularCount int `json:"popular_count"`

	Cache CacheConfig `json:"cache"`
}

// CacheConfig configures the result cache.
type CacheConfig struct {
	Enabled bool `json:"enabled"`

	// Size is the maximum number of cached results.
	// Default: 1024.
	Size int `json:"size"`

	// TTL is the entry lifetime. Zero keeps entries until evicted by size.
	// Default: 10m.
	TTL time.Duration `json:"ttl"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultTopN:  5,
		MaxTopN:      50,
		PopularCount: 10,
		Cache: CacheConfig{
			Enabled: true,
			Size:    1024,
			TTL:     10 * time.Minute,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.DefaultTopN < 1 {
		return fmt.Errorf("default_top_n must be positive, got %d", c.DefaultTopN)
	}
	if c.MaxTopN < c.DefaultTopN {
		return fmt.Errorf("max_top_n must be >= default_top_n, got %d < %d", c.MaxTopN, c.DefaultTopN)
	}
	if c.PopularCount < 1 {
		return fmt.Errorf("popular_count must be positive, got %d", c.PopularCount)
	}
	if c.Cache.Enabled && c.Cache.Size < 1 {
		return fmt.Errorf("cache.size must be positive, got %d", c.Cache.Size)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be non-negative, got %v", c.Cache.TTL)
	}
	return nil
}

// resolveTopN applies the default for n <= 0 and clamps to MaxTopN.
func (c *Config) resolveTopN(n int) int {
	if n <= 0 {
		return c.DefaultTopN
	}
	if n > c.MaxTopN {
		return c.MaxTopN
	}
	return n
}

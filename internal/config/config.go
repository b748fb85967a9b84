// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

// Package config loads Shopper Spectrum configuration from defaults, an
// optional YAML file and environment variables, in that order of precedence.
package config

import (
	"net"
	"strconv"
	"time"
)

// Artifact backends.
const (
	BackendFile     = "file"
	BackendSnapshot = "snapshot"
	BackendBadger   = "badger"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
	Recommend RecommendConfig `koanf:"recommend"`
	Segment   SegmentConfig   `koanf:"segment"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`          // read/write timeout
	RequestTimeout  time.Duration `koanf:"request_timeout"`  // per-handler context deadline
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"` // graceful drain
	Environment     string        `koanf:"environment"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// ArtifactsConfig locates the precomputed similarity and segmentation artifacts.
type ArtifactsConfig struct {
	// Backend selects where artifacts are read from: file, snapshot or badger.
	Backend string `koanf:"backend"`

	// SimilarityPath and SegmentationPath are JSON or YAML exports (file backend).
	SimilarityPath   string `koanf:"similarity_path"`
	SegmentationPath string `koanf:"segmentation_path"`

	// SnapshotDir holds versioned {kind}_v{n}.gob.gz snapshots (snapshot backend).
	SnapshotDir string `koanf:"snapshot_dir"`

	// BadgerDir is the BadgerDB directory (badger backend).
	BadgerDir string `koanf:"badger_dir"`

	// RetainVersions is how many snapshot versions an import keeps.
	RetainVersions int `koanf:"retain_versions"`

	// LoadTimeout bounds a single artifact load.
	LoadTimeout time.Duration `koanf:"load_timeout"`

	// WarmOnStart loads both artifacts when the server starts rather than on first use.
	WarmOnStart bool `koanf:"warm_on_start"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	DefaultTopN  int           `koanf:"default_top_n"`
	MaxTopN      int           `koanf:"max_top_n"`
	PopularCount int           `koanf:"popular_count"`
	CacheEnabled bool          `koanf:"cache_enabled"`
	CacheSize    int           `koanf:"cache_size"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`
}

// SegmentConfig holds customer segmentation settings.
type SegmentConfig struct {
	// Labels overrides entries of the label table shipped with the
	// segmentation artifact. Empty means use the artifact's table.
	Labels []LabelConfig `koanf:"labels"`
}

// LabelConfig is one cluster label override.
type LabelConfig struct {
	ID          int    `koanf:"id"`
	Name        string `koanf:"name"`
	Description string `koanf:"description"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Addr returns the host:port listen address.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

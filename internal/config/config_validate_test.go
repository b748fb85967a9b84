// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package config

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"unknown backend", func(c *Config) { c.Artifacts.Backend = "s3" }, "ARTIFACT_BACKEND"},
		{"file backend without paths", func(c *Config) {
			c.Artifacts.SimilarityPath = ""
			c.Artifacts.SegmentationPath = ""
		}, "file backend"},
		{"snapshot backend without dir", func(c *Config) {
			c.Artifacts.Backend = BackendSnapshot
			c.Artifacts.SnapshotDir = ""
		}, "ARTIFACT_SNAPSHOT_DIR"},
		{"badger backend without dir", func(c *Config) {
			c.Artifacts.Backend = BackendBadger
			c.Artifacts.BadgerDir = ""
		}, "ARTIFACT_BADGER_DIR"},
		{"default top n zero", func(c *Config) { c.Recommend.DefaultTopN = 0 }, "RECOMMEND_DEFAULT_TOP_N"},
		{"max below default", func(c *Config) { c.Recommend.MaxTopN = 2 }, "RECOMMEND_MAX_TOP_N"},
		{"cache size zero", func(c *Config) { c.Recommend.CacheSize = 0 }, "RECOMMEND_CACHE_SIZE"},
		{"cache size ignored when disabled", func(c *Config) {
			c.Recommend.CacheEnabled = false
			c.Recommend.CacheSize = 0
		}, ""},
		{"duplicate label", func(c *Config) {
			c.Segment.Labels = []LabelConfig{{ID: 1, Name: "A"}, {ID: 1, Name: "B"}}
		}, "duplicate cluster id"},
		{"empty label name", func(c *Config) {
			c.Segment.Labels = []LabelConfig{{ID: 7, Name: " "}}
		}, "empty name"},
		{"rate limit zero", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQUESTS"},
		{"rate limit zero but disabled", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestServerConfig_Addr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8501}
	if got := s.Addr(); got != "127.0.0.1:8501" {
		t.Errorf("Addr() = %q", got)
	}
}

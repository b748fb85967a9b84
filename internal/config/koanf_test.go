// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8501 {
		t.Errorf("Server.Port = %d, want 8501", cfg.Server.Port)
	}
	if cfg.Artifacts.Backend != BackendFile {
		t.Errorf("Artifacts.Backend = %q, want %q", cfg.Artifacts.Backend, BackendFile)
	}
	if cfg.Recommend.DefaultTopN != 5 {
		t.Errorf("Recommend.DefaultTopN = %d, want 5", cfg.Recommend.DefaultTopN)
	}
	if cfg.Recommend.PopularCount != 10 {
		t.Errorf("Recommend.PopularCount = %d, want 10", cfg.Recommend.PopularCount)
	}
	if cfg.Security.RateLimitWindow != time.Minute {
		t.Errorf("Security.RateLimitWindow = %v, want 1m", cfg.Security.RateLimitWindow)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoadFrom_DefaultsOnly(t *testing.T) {
	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("Server.Timeout = %v, want 30s", cfg.Server.Timeout)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}
}

func TestLoadFrom_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9000
artifacts:
  backend: snapshot
  snapshot_dir: /var/lib/shopper/snapshots
recommend:
  default_top_n: 8
  max_top_n: 20
segment:
  labels:
    - id: 4
      name: Dormant
      description: No purchases in over a year.
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Artifacts.Backend != BackendSnapshot {
		t.Errorf("Artifacts.Backend = %q, want snapshot", cfg.Artifacts.Backend)
	}
	if cfg.Recommend.DefaultTopN != 8 {
		t.Errorf("Recommend.DefaultTopN = %d, want 8", cfg.Recommend.DefaultTopN)
	}
	// Unset keys keep their defaults.
	if cfg.Recommend.PopularCount != 10 {
		t.Errorf("Recommend.PopularCount = %d, want 10", cfg.Recommend.PopularCount)
	}
	if len(cfg.Segment.Labels) != 1 || cfg.Segment.Labels[0].Name != "Dormant" || cfg.Segment.Labels[0].ID != 4 {
		t.Errorf("Segment.Labels = %+v", cfg.Segment.Labels)
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	if _, err := LoadFrom("/non/existent/config.yaml"); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("HTTP_PORT", "9100")
	t.Setenv("SIMILARITY_ARTIFACT_PATH", "/srv/similarity.yaml")
	t.Setenv("RECOMMEND_CACHE_TTL", "90s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want 9100", cfg.Server.Port)
	}
	if cfg.Artifacts.SimilarityPath != "/srv/similarity.yaml" {
		t.Errorf("Artifacts.SimilarityPath = %q", cfg.Artifacts.SimilarityPath)
	}
	if cfg.Recommend.CacheTTL != 90*time.Second {
		t.Errorf("Recommend.CacheTTL = %v, want 90s", cfg.Recommend.CacheTTL)
	}
	want := []string{"https://a.example", "https://b.example"}
	if strings.Join(cfg.Security.CORSOrigins, "|") != strings.Join(want, "|") {
		t.Errorf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
}

func TestFindConfigFile_EnvVar(t *testing.T) {
	dir := t.TempDir()
	customPath := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(customPath, []byte("server:\n  port: 9001\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(ConfigPathEnvVar, customPath)
	if got := findConfigFile(); got != customPath {
		t.Errorf("findConfigFile() = %q, want %q", got, customPath)
	}

	t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")
	if got := findConfigFile(); got == "/non/existent/config.yaml" {
		t.Error("findConfigFile() returned a path that does not exist")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"LOG_LEVEL", "logging.level"},
		{"ARTIFACT_BACKEND", "artifacts.backend"},
		{"SEGMENTATION_ARTIFACT_PATH", "artifacts.segmentation_path"},
		{"POPULAR_PRODUCTS_COUNT", "recommend.popular_count"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := envTransformFunc(tt.key); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

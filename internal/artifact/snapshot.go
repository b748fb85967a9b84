// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package artifact

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
)

const snapshotExt = ".gob.gz"

// SnapshotStore keeps versioned artifact snapshots in a directory, one file
// per version named {kind}_v{version}.gob.gz. Loads read the latest version.
type SnapshotStore struct {
	baseDir string
	mu      sync.RWMutex

	// versions holds every version on disk per kind, ascending.
	versions map[string][]int
}

// NewSnapshotStore opens the snapshot directory, creating it if needed.
func NewSnapshotStore(baseDir string) (*SnapshotStore, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil { //nolint:gosec // 0750 is acceptable for artifact storage
		return nil, fmt.Errorf("create snapshot directory: %w", err)
	}
	s := &SnapshotStore{
		baseDir:  baseDir,
		versions: make(map[string][]int),
	}
	if err := s.scan(); err != nil {
		return nil, fmt.Errorf("scan snapshots: %w", err)
	}
	return s, nil
}

func (s *SnapshotStore) scan() error {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		kind, version, ok := parseSnapshotName(entry.Name())
		if !ok {
			continue
		}
		s.versions[kind] = append(s.versions[kind], version)
	}
	for kind := range s.versions {
		slices.Sort(s.versions[kind])
	}
	return nil
}

// parseSnapshotName splits "similarity_v3.gob.gz" into ("similarity", 3).
func parseSnapshotName(name string) (string, int, bool) {
	base, ok := strings.CutSuffix(name, snapshotExt)
	if !ok {
		return "", 0, false
	}
	i := strings.LastIndex(base, "_v")
	if i <= 0 {
		return "", 0, false
	}
	version, err := strconv.Atoi(base[i+2:])
	if err != nil || version < 1 {
		return "", 0, false
	}
	return base[:i], version, true
}

func (s *SnapshotStore) path(kind string, version int) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("%s_v%d%s", kind, version, snapshotExt))
}

// Save writes payload as the next version of kind and returns the stored
// metadata. The file is written to a temporary name and renamed into place.
func (s *SnapshotStore) Save(ctx context.Context, kind string, payload any, meta Metadata) (Metadata, error) {
	if err := ctx.Err(); err != nil {
		return meta, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	meta.Kind = kind
	meta.Version = s.latest(kind) + 1
	data, meta, err := sealEnvelope(payload, meta)
	if err != nil {
		return meta, err
	}

	final := s.path(kind, meta.Version)
	tmp, err := os.CreateTemp(s.baseDir, ".snapshot-*")
	if err != nil {
		return meta, fmt.Errorf("create snapshot file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()         //nolint:errcheck // write error takes precedence
		_ = os.Remove(tmpName) //nolint:errcheck // best effort cleanup
		return meta, fmt.Errorf("write snapshot file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName) //nolint:errcheck // best effort cleanup
		return meta, fmt.Errorf("close snapshot file: %w", err)
	}
	if err := os.Rename(tmpName, final); err != nil {
		_ = os.Remove(tmpName) //nolint:errcheck // best effort cleanup
		return meta, fmt.Errorf("publish snapshot file: %w", err)
	}

	s.versions[kind] = append(s.versions[kind], meta.Version)
	return meta, nil
}

// Load decodes a version of kind into target. Version 0 means latest.
func (s *SnapshotStore) Load(ctx context.Context, kind string, version int, target any) (*Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if version == 0 {
		version = s.latest(kind)
	}
	if version == 0 || !slices.Contains(s.versions[kind], version) {
		return nil, fmt.Errorf("%s snapshot v%d in %s: %w", kind, version, s.baseDir, ErrNotFound)
	}

	data, err := os.ReadFile(s.path(kind, version))
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	return openEnvelope(bytes.NewReader(data), target)
}

// LatestVersion returns the newest version of kind, or false if none exist.
func (s *SnapshotStore) LatestVersion(kind string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := s.latest(kind)
	return v, v > 0
}

func (s *SnapshotStore) latest(kind string) int {
	vs := s.versions[kind]
	if len(vs) == 0 {
		return 0
	}
	return vs[len(vs)-1]
}

// List returns metadata for every stored version, grouped by kind and
// ordered by version. Unreadable files are skipped.
func (s *SnapshotStore) List(ctx context.Context) ([]Metadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	kinds := make([]string, 0, len(s.versions))
	for kind := range s.versions {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)

	var out []Metadata
	for _, kind := range kinds {
		for _, version := range s.versions[kind] {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			f, err := os.Open(s.path(kind, version))
			if err != nil {
				continue
			}
			meta, _, err := readMetadata(f)
			_ = f.Close() //nolint:errcheck // read-only handle
			if err != nil {
				continue
			}
			out = append(out, *meta)
		}
	}
	return out, nil
}

// Prune removes old versions of kind, keeping the newest keep versions.
func (s *SnapshotStore) Prune(ctx context.Context, kind string, keep int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keep < 1 {
		keep = 1
	}
	vs := s.versions[kind]
	if len(vs) <= keep {
		return 0, nil
	}
	stale := vs[:len(vs)-keep]
	removed := 0
	for _, version := range stale {
		if err := ctx.Err(); err != nil {
			break
		}
		if err := os.Remove(s.path(kind, version)); err != nil && !os.IsNotExist(err) {
			s.versions[kind] = slices.Clone(vs[removed:])
			return removed, fmt.Errorf("delete %s snapshot v%d: %w", kind, version, err)
		}
		removed++
	}
	s.versions[kind] = slices.Clone(vs[removed:])
	return removed, nil
}

// LoadSimilarity implements SimilarityLoader with the latest snapshot.
func (s *SnapshotStore) LoadSimilarity(ctx context.Context) (*Similarity, error) {
	var sim Similarity
	if _, err := s.Load(ctx, KindSimilarity, 0, &sim); err != nil {
		return nil, err
	}
	return &sim, nil
}

// LoadSegmentation implements SegmentationLoader with the latest snapshot.
func (s *SnapshotStore) LoadSegmentation(ctx context.Context) (*Segmentation, error) {
	var seg Segmentation
	if _, err := s.Load(ctx, KindSegmentation, 0, &seg); err != nil {
		return nil, err
	}
	return &seg, nil
}

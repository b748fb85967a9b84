// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package artifact

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/shopperspectrum/internal/metrics"
	"github.com/tomtom215/shopperspectrum/internal/recommend"
	"github.com/tomtom215/shopperspectrum/internal/segment"
)

// State is the load state of one artifact.
type State string

// Artifact states.
const (
	StateNotLoaded   State = "not_loaded"
	StateAvailable   State = "available"
	StateUnavailable State = "unavailable"
)

// Status describes one artifact for health reporting.
type Status struct {
	Kind       string         `json:"kind"`
	State      State          `json:"state"`
	Error      string         `json:"error,omitempty"`
	LoadedAt   *time.Time     `json:"loaded_at,omitempty"`
	DurationMS int64          `json:"duration_ms,omitempty"`
	Entries    map[string]int `json:"entries,omitempty"`
}

// DefaultLoadTimeout bounds a single artifact load when none is configured.
const DefaultLoadTimeout = 30 * time.Second

// ProviderOptions configures a Provider.
type ProviderOptions struct {
	LoadTimeout time.Duration
	Logger      zerolog.Logger
}

// slot holds the outcome of the one load of an artifact kind.
type slot[T any] struct {
	kind   string
	done   bool
	value  T
	err    error
	status Status
}

// Provider loads each artifact at most once per process and serves the
// result to the recommendation engine and the segmentation service.
//
// Concurrent first requests share one load. The outcome, success or failure,
// is kept for the life of the process; a failed artifact leaves only its
// own feature unavailable.
type Provider struct {
	similarity   SimilarityLoader
	segmentation SegmentationLoader
	loadTimeout  time.Duration
	logger       zerolog.Logger

	group singleflight.Group
	mu    sync.RWMutex

	dataset *slot[*recommend.Dataset]
	model   *slot[*segment.Model]
}

var (
	_ recommend.DataProvider = (*Provider)(nil)
	_ segment.ModelProvider  = (*Provider)(nil)
)

// NewProvider creates a provider. A nil loader makes its feature
// permanently unavailable.
func NewProvider(sim SimilarityLoader, seg SegmentationLoader, opts ProviderOptions) *Provider {
	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = DefaultLoadTimeout
	}
	return &Provider{
		similarity:   sim,
		segmentation: seg,
		loadTimeout:  opts.LoadTimeout,
		logger:       opts.Logger.With().Str("component", "artifact").Logger(),
		dataset:      &slot[*recommend.Dataset]{kind: KindSimilarity, status: Status{Kind: KindSimilarity, State: StateNotLoaded}},
		model:        &slot[*segment.Model]{kind: KindSegmentation, status: Status{Kind: KindSegmentation, State: StateNotLoaded}},
	}
}

// Dataset implements recommend.DataProvider.
func (p *Provider) Dataset(ctx context.Context) (*recommend.Dataset, error) {
	return loadOnce(ctx, p, p.dataset, func(ctx context.Context) (*recommend.Dataset, map[string]int, error) {
		if p.similarity == nil {
			return nil, nil, fmt.Errorf("no similarity loader configured: %w", ErrNotFound)
		}
		sim, err := p.similarity.LoadSimilarity(ctx)
		if err != nil {
			return nil, nil, err
		}
		ds, err := sim.Dataset()
		if err != nil {
			return nil, nil, err
		}
		return ds, sim.Entries(), nil
	})
}

// Model implements segment.ModelProvider.
func (p *Provider) Model(ctx context.Context) (*segment.Model, error) {
	return loadOnce(ctx, p, p.model, func(ctx context.Context) (*segment.Model, map[string]int, error) {
		if p.segmentation == nil {
			return nil, nil, fmt.Errorf("no segmentation loader configured: %w", ErrNotFound)
		}
		seg, err := p.segmentation.LoadSegmentation(ctx)
		if err != nil {
			return nil, nil, err
		}
		model, err := seg.Build()
		if err != nil {
			return nil, nil, err
		}
		return model, seg.Entries(), nil
	})
}

// Warm loads both artifacts and returns the joined load errors. Each
// failure is also kept as that feature's unavailable state.
func (p *Provider) Warm(ctx context.Context) error {
	var wg sync.WaitGroup
	var simErr, segErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, simErr = p.Dataset(ctx)
	}()
	go func() {
		defer wg.Done()
		_, segErr = p.Model(ctx)
	}()
	wg.Wait()
	return errors.Join(simErr, segErr)
}

// Status reports the similarity and segmentation artifacts, in that order.
func (p *Provider) Status() []Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return []Status{cloneStatus(p.dataset.status), cloneStatus(p.model.status)}
}

func cloneStatus(s Status) Status {
	s.Entries = maps.Clone(s.Entries)
	return s
}

type loadFunc[T any] func(ctx context.Context) (T, map[string]int, error)

func loadOnce[T any](ctx context.Context, p *Provider, s *slot[T], fn loadFunc[T]) (T, error) {
	if v, done, err := peek(p, s); done {
		return v, err
	}

	ch := p.group.DoChan(s.kind, func() (any, error) {
		if _, done, _ := peek(p, s); done {
			return nil, nil
		}
		// The load outlives any single caller; it is shared and cached.
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.loadTimeout)
		defer cancel()

		start := time.Now()
		value, entries, err := fn(loadCtx)
		elapsed := time.Since(start)
		metrics.RecordArtifactLoad(s.kind, elapsed, err)

		loadedAt := time.Now().UTC()
		status := Status{
			Kind:       s.kind,
			LoadedAt:   &loadedAt,
			DurationMS: elapsed.Milliseconds(),
		}
		if err != nil {
			err = fmt.Errorf("%w: %s: %w", ErrUnavailable, s.kind, err)
			status.State = StateUnavailable
			status.Error = err.Error()
			p.logger.Error().Err(err).Str("kind", s.kind).Dur("duration", elapsed).Msg("Artifact load failed; feature disabled")
		} else {
			status.State = StateAvailable
			status.Entries = entries
			for dim, n := range entries {
				metrics.SetArtifactEntries(s.kind, dim, n)
			}
			p.logger.Info().Str("kind", s.kind).Dur("duration", elapsed).Interface("entries", entries).Msg("Artifact loaded")
		}

		p.mu.Lock()
		s.done = true
		s.value = value
		s.err = err
		s.status = status
		p.mu.Unlock()
		return nil, nil
	})

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case <-ch:
	}
	v, _, err := peek(p, s)
	return v, err
}

// peek returns the stored outcome of s, if its load has finished.
func peek[T any](p *Provider, s *slot[T]) (T, bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return s.value, s.done, s.err
}

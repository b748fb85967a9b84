// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package artifact

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingLoader counts loads and can block until released.
type countingLoader struct {
	sim     *Similarity
	seg     *Segmentation
	err     error
	release chan struct{}
	simHits atomic.Int32
	segHits atomic.Int32
}

func (l *countingLoader) wait(ctx context.Context) error {
	if l.release == nil {
		return nil
	}
	select {
	case <-l.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *countingLoader) LoadSimilarity(ctx context.Context) (*Similarity, error) {
	l.simHits.Add(1)
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	if l.err != nil {
		return nil, l.err
	}
	return l.sim, nil
}

func (l *countingLoader) LoadSegmentation(ctx context.Context) (*Segmentation, error) {
	l.segHits.Add(1)
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	if l.err != nil {
		return nil, l.err
	}
	return l.seg, nil
}

func newTestProvider(sim SimilarityLoader, seg SegmentationLoader) *Provider {
	return NewProvider(sim, seg, ProviderOptions{LoadTimeout: 5 * time.Second, Logger: zerolog.Nop()})
}

func TestProvider_LoadsOnce(t *testing.T) {
	loader := &countingLoader{sim: fixtureSimilarity(t), seg: fixtureSegmentation(t), release: make(chan struct{})}
	p := newTestProvider(loader, loader)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			ds, err := p.Dataset(ctx)
			assert.NoError(t, err)
			assert.NotNil(t, ds)
		}()
		go func() {
			defer wg.Done()
			m, err := p.Model(ctx)
			assert.NoError(t, err)
			assert.NotNil(t, m)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(loader.release)
	wg.Wait()

	_, err := p.Dataset(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), loader.simHits.Load())
	assert.Equal(t, int32(1), loader.segHits.Load())

	for _, st := range p.Status() {
		assert.Equal(t, StateAvailable, st.State, st.Kind)
		assert.NotNil(t, st.LoadedAt)
	}
}

func TestProvider_FailureIsCachedAndIsolated(t *testing.T) {
	broken := &countingLoader{err: errors.New("disk on fire")}
	good := &countingLoader{seg: fixtureSegmentation(t)}
	p := newTestProvider(broken, good)
	ctx := context.Background()

	_, err := p.Dataset(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Contains(t, err.Error(), "disk on fire")

	_, err = p.Dataset(ctx)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Equal(t, int32(1), broken.simHits.Load())

	model, err := p.Model(ctx)
	require.NoError(t, err)
	assert.NotNil(t, model)

	status := p.Status()
	require.Len(t, status, 2)
	assert.Equal(t, KindSimilarity, status[0].Kind)
	assert.Equal(t, StateUnavailable, status[0].State)
	assert.Contains(t, status[0].Error, "disk on fire")
	assert.Equal(t, StateAvailable, status[1].State)
	assert.Equal(t, 2, status[1].Entries["clusters"])
}

func TestProvider_InvalidArtifactIsUnavailable(t *testing.T) {
	p := newTestProvider(
		&Static{Similarity: &Similarity{Products: []ProductRecord{{ID: ""}}}},
		&Static{Segmentation: &Segmentation{}},
	)
	ctx := context.Background()

	_, err := p.Dataset(ctx)
	assert.True(t, errors.Is(err, ErrUnavailable))
	_, err = p.Model(ctx)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestProvider_NilLoaders(t *testing.T) {
	p := newTestProvider(nil, nil)
	_, err := p.Dataset(context.Background())
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestProvider_NotLoadedStatus(t *testing.T) {
	p := newTestProvider(&Static{}, &Static{})
	for _, st := range p.Status() {
		assert.Equal(t, StateNotLoaded, st.State)
		assert.Nil(t, st.LoadedAt)
	}
}

func TestProvider_CallerCancelDoesNotPoisonLoad(t *testing.T) {
	loader := &countingLoader{sim: fixtureSimilarity(t), release: make(chan struct{})}
	p := newTestProvider(loader, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := p.Dataset(ctx)
		done <- err
	}()
	time.Sleep(10 * time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	close(loader.release)
	ds, err := p.Dataset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, ds.Catalog.Len())
	assert.Equal(t, int32(1), loader.simHits.Load())
}

func TestProvider_Warm(t *testing.T) {
	p := newTestProvider(&Static{Similarity: fixtureSimilarity(t)}, &Static{})
	err := p.Warm(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
	status := p.Status()
	assert.Equal(t, StateAvailable, status[0].State)
	assert.Equal(t, StateUnavailable, status[1].State)

	ok := newTestProvider(&Static{Similarity: fixtureSimilarity(t)}, &Static{Segmentation: fixtureSegmentation(t)})
	assert.NoError(t, ok.Warm(context.Background()))
}

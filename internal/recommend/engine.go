// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

// Package recommend turns a free-text product query into co-purchase
// recommendations.
//
// A query is normalized (trimmed, uppercased) and matched against product
// descriptions by literal substring. The first match in catalog order is the
// anchor; its co-occurrence neighbors are ranked by count. Three outcomes
// are possible and distinct: no match, a match with nothing to recommend,
// and a ranked list.
package recommend

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"

	"github.com/tomtom215/shopperspectrum/internal/catalog"
	"github.com/tomtom215/shopperspectrum/internal/logging"
	"github.com/tomtom215/shopperspectrum/internal/metrics"
)

// Engine answers recommendation queries over a DataProvider. It holds no
// mutable state besides counters and the result cache, and is safe for
// concurrent use.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	provider DataProvider

	// Results are a pure function of (query, topN) over immutable data.
	cache *expirable.LRU[cacheKey, *Result]

	requestCount atomic.Int64
	rankedCount  atomic.Int64
	emptyCount   atomic.Int64
	noMatchCount atomic.Int64
	errorCount   atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
}

type cacheKey struct {
	query string
	topN  int
}

// NewEngine creates a recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, provider DataProvider, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if provider == nil {
		return nil, fmt.Errorf("data provider is required")
	}

	e := &Engine{
		config:   cfg,
		logger:   logger.With().Str("component", "recommend").Logger(),
		provider: provider,
	}
	if cfg.Cache.Enabled {
		e.cache = expirable.NewLRU[cacheKey, *Result](cfg.Cache.Size, nil, cfg.Cache.TTL)
	}
	return e, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return *e.config
}

// Recommend resolves query to an anchor product and ranks its co-purchased
// products. topN <= 0 uses the configured default; larger values are capped
// at MaxTopN.
//
// The returned error is non-nil only when the dataset cannot be obtained or
// ctx is done; no match and empty results are reported through Outcome.
func (e *Engine) Recommend(ctx context.Context, query string, topN int) (*Result, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if err := ctx.Err(); err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	normalized := catalog.Normalize(query)
	topN = e.config.resolveTopN(topN)
	key := cacheKey{query: normalized, topN: topN}

	if e.cache != nil {
		if cached, ok := e.cache.Get(key); ok {
			e.cacheHits.Add(1)
			metrics.RecordRecommendCache(true)
			e.count(cached.Outcome)
			metrics.RecordRecommendation(string(cached.Outcome), len(cached.Items), time.Since(start))
			return cached.clone(), nil
		}
		e.cacheMisses.Add(1)
		metrics.RecordRecommendCache(false)
	}

	ds, err := e.provider.Dataset(ctx)
	if err != nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation("error", 0, time.Since(start))
		return nil, fmt.Errorf("recommendations unavailable: %w", err)
	}

	result := resolve(ds, normalized, topN)
	e.count(result.Outcome)
	metrics.RecordRecommendation(string(result.Outcome), len(result.Items), time.Since(start))

	e.logger.Debug().
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Str("query", normalized).
		Str("outcome", string(result.Outcome)).
		Int("items", len(result.Items)).
		Dur("duration", time.Since(start)).
		Msg("recommendation resolved")

	if e.cache != nil {
		e.cache.Add(key, result.clone())
	}
	return result, nil
}

// resolve is the pure query pipeline: match, then rank.
func resolve(ds *Dataset, normalized string, topN int) *Result {
	result := &Result{
		Outcome: OutcomeNoMatch,
		Query:   normalized,
		TopN:    topN,
		Items:   []RankedRecommendation{},
	}

	anchor, ok := ds.Catalog.First(normalized)
	if !ok {
		return result
	}
	result.Anchor = &anchor

	neighbors := ds.Index.Neighbors(anchor.ID)
	if len(neighbors) == 0 {
		result.Outcome = OutcomeEmpty
		return result
	}

	result.Outcome = OutcomeRanked
	result.Items = Rank(ds.Catalog, neighbors, anchor, topN)
	return result
}

func (e *Engine) count(o Outcome) {
	switch o {
	case OutcomeRanked:
		e.rankedCount.Add(1)
	case OutcomeEmpty:
		e.emptyCount.Add(1)
	case OutcomeNoMatch:
		e.noMatchCount.Add(1)
	}
}

// Popular returns up to n products from the artifact's top products list,
// in list order. n <= 0 uses the configured PopularCount.
func (e *Engine) Popular(ctx context.Context, n int) ([]catalog.Product, error) {
	if n <= 0 {
		n = e.config.PopularCount
	}
	ds, err := e.provider.Dataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("popular products unavailable: %w", err)
	}
	return ds.Catalog.Popular(ds.TopProducts, n), nil
}

// Search returns up to limit products whose description contains query, in
// catalog order. The first entry is the anchor Recommend would use.
func (e *Engine) Search(ctx context.Context, query string, limit int) ([]catalog.Product, error) {
	if limit <= 0 || limit > e.config.MaxTopN {
		limit = e.config.MaxTopN
	}
	ds, err := e.provider.Dataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("product search unavailable: %w", err)
	}
	products := ds.Catalog.SearchLimit(query, limit)
	if products == nil {
		products = []catalog.Product{}
	}
	return products, nil
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:    e.requestCount.Load(),
		Ranked:      e.rankedCount.Load(),
		Empty:       e.emptyCount.Load(),
		NoMatch:     e.noMatchCount.Load(),
		Errors:      e.errorCount.Load(),
		CacheHits:   e.cacheHits.Load(),
		CacheMisses: e.cacheMisses.Load(),
	}
}

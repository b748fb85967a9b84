// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package recommend

import (
	"context"

	"github.com/tomtom215/shopperspectrum/internal/catalog"
	"github.com/tomtom215/shopperspectrum/internal/cooccur"
)

// Outcome tags a recommendation result. NoMatch and Empty are normal
// outcomes, not errors, and callers are expected to branch on them.
type Outcome string

const (
	// OutcomeNoMatch means the query matched no product description.
	OutcomeNoMatch Outcome = "no_match"

	// OutcomeEmpty means the query matched an anchor product that has no
	// co-occurrence entry.
	OutcomeEmpty Outcome = "empty"

	// OutcomeRanked means neighbors were ranked. Items can still be empty
	// if every surviving neighbor was missing from the catalog.
	OutcomeRanked Outcome = "ranked"
)

// RankedRecommendation is one recommended product.
type RankedRecommendation struct {
	ProductID         string `json:"product_id"`
	Description       string `json:"description"`
	CoOccurrenceCount int64  `json:"co_occurrence_count"`
	Frequency         int64  `json:"frequency"`
}

// Result is the tagged outcome of a recommendation query.
type Result struct {
	Outcome Outcome                `json:"outcome"`
	Query   string                 `json:"query"`
	TopN    int                    `json:"top_n"`
	Anchor  *catalog.Product       `json:"anchor,omitempty"`
	Items   []RankedRecommendation `json:"items"`
}

// Matched reports whether the query resolved to an anchor product.
func (r *Result) Matched() bool {
	return r.Outcome != OutcomeNoMatch
}

func (r *Result) clone() *Result {
	out := *r
	if r.Anchor != nil {
		anchor := *r.Anchor
		out.Anchor = &anchor
	}
	out.Items = make([]RankedRecommendation, len(r.Items))
	copy(out.Items, r.Items)
	return &out
}

// Dataset is the loaded similarity artifact: the catalog, the co-occurrence
// index and the ordered top products list for the popular view.
type Dataset struct {
	Catalog     *catalog.Catalog
	Index       *cooccur.Index
	TopProducts []string
}

// DataProvider supplies the dataset. Implementations load it once and return
// the same instance afterwards; an error means recommendations are
// unavailable.
type DataProvider interface {
	Dataset(ctx context.Context) (*Dataset, error)
}

// Stats is a snapshot of engine counters.
type Stats struct {
	Requests    int64 `json:"requests"`
	Ranked      int64 `json:"ranked"`
	Empty       int64 `json:"empty"`
	NoMatch     int64 `json:"no_match"`
	Errors      int64 `json:"errors"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
}

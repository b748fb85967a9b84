// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package recommend

import (
	"cmp"
	"slices"

	"github.com/tomtom215/shopperspectrum/internal/catalog"
	"github.com/tomtom215/shopperspectrum/internal/cooccur"
)

// Rank orders the neighbors of anchor by co-occurrence count, highest first,
// and returns at most topN of them.
//
// Equal counts keep the order the artifact listed the neighbors in (a stable
// sort), so ties resolve the same way on every call.
//
// Truncation happens before filtering: neighbors that are the anchor itself
// or are missing from the catalog are dropped after the top topN are taken,
// which can leave fewer than topN results. Frequencies come from the catalog.
//
//nolint:gocritic // hugeParam: catalog.Product is small and read-only here
func Rank(cat *catalog.Catalog, neighbors []cooccur.Neighbor, anchor catalog.Product, topN int) []RankedRecommendation {
	if topN <= 0 || len(neighbors) == 0 {
		return []RankedRecommendation{}
	}

	sorted := make([]cooccur.Neighbor, len(neighbors))
	copy(sorted, neighbors)
	slices.SortStableFunc(sorted, func(a, b cooccur.Neighbor) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if len(sorted) > topN {
		sorted = sorted[:topN]
	}

	out := make([]RankedRecommendation, 0, len(sorted))
	for _, n := range sorted {
		if n.ID == anchor.ID {
			continue
		}
		p, ok := cat.Lookup(n.ID)
		if !ok {
			continue
		}
		out = append(out, RankedRecommendation{
			ProductID:         p.ID,
			Description:       p.Description,
			CoOccurrenceCount: n.Count,
			Frequency:         p.Frequency,
		})
	}
	return out
}

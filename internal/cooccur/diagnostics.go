// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package cooccur

// maxSymmetrySamples caps how many offending pairs a SymmetryReport keeps.
const maxSymmetrySamples = 20

// Asymmetry describes a directed pair whose reverse disagrees.
type Asymmetry struct {
	From           string `json:"from"`
	To             string `json:"to"`
	Forward        int64  `json:"forward"`
	Reverse        int64  `json:"reverse"`
	ReverseMissing bool   `json:"reverse_missing"`
}

// SymmetryReport summarizes whether a->b counts equal b->a counts.
type SymmetryReport struct {
	Pairs      int         `json:"pairs"`
	Symmetric  int         `json:"symmetric"`
	Mismatched int         `json:"mismatched"`
	OneWay     int         `json:"one_way"`
	SelfLoops  int         `json:"self_loops"`
	Samples    []Asymmetry `json:"samples,omitempty"`
}

// IsSymmetric reports whether every directed pair has an equal reverse.
func (r *SymmetryReport) IsSymmetric() bool {
	return r.Mismatched == 0 && r.OneWay == 0
}

// CheckSymmetry walks every directed pair and compares it with its reverse.
// Self loops (a->a) are counted separately and otherwise ignored.
func (idx *Index) CheckSymmetry() SymmetryReport {
	type pair struct{ from, to string }
	counts := make(map[pair]int64, idx.pairs)
	for _, from := range idx.order {
		for _, n := range idx.neighbors[from] {
			counts[pair{from, n.ID}] = n.Count
		}
	}

	var report SymmetryReport
	for _, from := range idx.order {
		for _, n := range idx.neighbors[from] {
			report.Pairs++
			if n.ID == from {
				report.SelfLoops++
				continue
			}
			reverse, ok := counts[pair{n.ID, from}]
			switch {
			case !ok:
				report.OneWay++
			case reverse != n.Count:
				report.Mismatched++
			default:
				report.Symmetric++
				continue
			}
			if len(report.Samples) < maxSymmetrySamples {
				report.Samples = append(report.Samples, Asymmetry{
					From:           from,
					To:             n.ID,
					Forward:        n.Count,
					Reverse:        reverse,
					ReverseMissing: !ok,
				})
			}
		}
	}
	return report
}

// Dangling returns identifiers referenced by the index, as anchor or
// neighbor, for which known returns false. Each identifier appears once, in
// first-seen order.
func (idx *Index) Dangling(known func(id string) bool) []string {
	seen := make(map[string]bool)
	var out []string
	check := func(id string) {
		if seen[id] {
			return
		}
		seen[id] = true
		if !known(id) {
			out = append(out, id)
		}
	}
	for _, from := range idx.order {
		check(from)
		for _, n := range idx.neighbors[from] {
			check(n.ID)
		}
	}
	return out
}

// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

// Package cooccur holds the sparse product co-occurrence index built offline
// from transaction baskets:
//
//	cooccurrence[product_a][product_b] = transactions containing both
//
// The index is read-only once built. Symmetry (a->b equal to b->a) is a
// property of whatever job produced the artifact and is not assumed here;
// CheckSymmetry reports on it.
package cooccur

import (
	"maps"
	"slices"
)

// Neighbor is one co-purchased product and its co-occurrence count.
type Neighbor struct {
	ID    string `json:"id"`
	Count int64  `json:"count"`
}

// Entry is the neighbor list of one anchor product, in artifact order.
type Entry struct {
	ID        string
	Neighbors []Neighbor
}

// Index maps a product identifier to its co-purchased products.
type Index struct {
	neighbors map[string][]Neighbor
	order     []string
	pairs     int
}

// New builds an index from entries, preserving the order of anchors and of
// each anchor's neighbors. That order is what equal counts fall back to when
// recommendations are ranked.
//
// A repeated anchor or neighbor keeps its first position and takes its last
// count, matching how a JSON object with duplicate keys decodes.
func New(entries []Entry) *Index {
	idx := &Index{
		neighbors: make(map[string][]Neighbor, len(entries)),
		order:     make([]string, 0, len(entries)),
	}
	for _, e := range entries {
		existing, seen := idx.neighbors[e.ID]
		if !seen {
			idx.order = append(idx.order, e.ID)
		}
		idx.pairs -= len(existing)
		merged := mergeNeighbors(existing, e.Neighbors)
		idx.neighbors[e.ID] = merged
		idx.pairs += len(merged)
	}
	return idx
}

func mergeNeighbors(dst, src []Neighbor) []Neighbor {
	pos := make(map[string]int, len(dst)+len(src))
	out := make([]Neighbor, 0, len(dst)+len(src))
	for _, n := range dst {
		pos[n.ID] = len(out)
		out = append(out, n)
	}
	for _, n := range src {
		if i, ok := pos[n.ID]; ok {
			out[i].Count = n.Count
			continue
		}
		pos[n.ID] = len(out)
		out = append(out, n)
	}
	return out
}

// FromMap builds an index from nested maps. Go maps carry no order, so
// anchors and neighbors are ordered by identifier.
func FromMap(m map[string]map[string]int64) *Index {
	entries := make([]Entry, 0, len(m))
	for _, id := range slices.Sorted(maps.Keys(m)) {
		inner := m[id]
		neighbors := make([]Neighbor, 0, len(inner))
		for _, nid := range slices.Sorted(maps.Keys(inner)) {
			neighbors = append(neighbors, Neighbor{ID: nid, Count: inner[nid]})
		}
		entries = append(entries, Entry{ID: id, Neighbors: neighbors})
	}
	return New(entries)
}

// Neighbors returns the co-purchased products of id in artifact order, or an
// empty slice when id has no entry. The returned slice is a copy the caller
// may reorder.
func (idx *Index) Neighbors(id string) []Neighbor {
	src := idx.neighbors[id]
	if len(src) == 0 {
		return nil
	}
	out := make([]Neighbor, len(src))
	copy(out, src)
	return out
}

// NeighborMap returns the neighbors of id as a map, empty when id is absent.
func (idx *Index) NeighborMap(id string) map[string]int64 {
	src := idx.neighbors[id]
	out := make(map[string]int64, len(src))
	for _, n := range src {
		out[n.ID] = n.Count
	}
	return out
}

// Len returns the number of anchor products.
func (idx *Index) Len() int {
	return len(idx.order)
}

// Pairs returns the number of directed (anchor, neighbor) pairs.
func (idx *Index) Pairs() int {
	return idx.pairs
}

// Entries returns the index contents in artifact order.
func (idx *Index) Entries() []Entry {
	out := make([]Entry, 0, len(idx.order))
	for _, id := range idx.order {
		out = append(out, Entry{ID: id, Neighbors: idx.Neighbors(id)})
	}
	return out
}

// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package cooccur

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_PreservesOrder(t *testing.T) {
	idx := New([]Entry{
		{ID: "B", Neighbors: []Neighbor{{"Z", 1}, {"A", 1}, {"M", 3}}},
		{ID: "A", Neighbors: []Neighbor{{"B", 2}}},
	})

	require.Equal(t, 2, idx.Len())
	assert.Equal(t, 4, idx.Pairs())
	assert.Equal(t, []Neighbor{{"Z", 1}, {"A", 1}, {"M", 3}}, idx.Neighbors("B"))

	entries := idx.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "B", entries[0].ID)
	assert.Equal(t, "A", entries[1].ID)
}

func TestNew_DuplicateKeysKeepFirstPositionLastCount(t *testing.T) {
	idx := New([]Entry{
		{ID: "A", Neighbors: []Neighbor{{"B", 1}, {"C", 2}, {"B", 9}}},
		{ID: "A", Neighbors: []Neighbor{{"D", 4}, {"C", 7}}},
	})

	assert.Equal(t, 1, idx.Len())
	assert.Equal(t, 3, idx.Pairs())
	assert.Equal(t, []Neighbor{{"B", 9}, {"C", 7}, {"D", 4}}, idx.Neighbors("A"))
}

func TestNeighbors(t *testing.T) {
	idx := FromMap(map[string]map[string]int64{
		"A1": {"A2": 5, "A3": 2},
		"A4": {},
	})

	tests := []struct {
		name string
		id   string
		want []Neighbor
	}{
		{"present", "A1", []Neighbor{{"A2", 5}, {"A3", 2}}},
		{"empty entry", "A4", nil},
		{"absent", "nope", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, idx.Neighbors(tt.id))
		})
	}
}

func TestNeighbors_ReturnsCopy(t *testing.T) {
	idx := FromMap(map[string]map[string]int64{"A": {"B": 1, "C": 2}})

	got := idx.Neighbors("A")
	got[0], got[1] = got[1], got[0]

	assert.Equal(t, []Neighbor{{"B", 1}, {"C", 2}}, idx.Neighbors("A"))
}

func TestNeighborMap(t *testing.T) {
	idx := FromMap(map[string]map[string]int64{"A": {"B": 1, "C": 2}})

	assert.Equal(t, map[string]int64{"B": 1, "C": 2}, idx.NeighborMap("A"))
	m := idx.NeighborMap("missing")
	assert.NotNil(t, m)
	assert.Empty(t, m)
}

func TestFromMap_DoesNotAliasInput(t *testing.T) {
	src := map[string]map[string]int64{"A": {"B": 1}}
	idx := FromMap(src)
	src["A"]["B"] = 100
	src["A"]["C"] = 1

	assert.Equal(t, []Neighbor{{"B", 1}}, idx.Neighbors("A"))
}

func TestCheckSymmetry(t *testing.T) {
	t.Run("symmetric", func(t *testing.T) {
		idx := FromMap(map[string]map[string]int64{
			"A": {"B": 3, "C": 1},
			"B": {"A": 3},
			"C": {"A": 1},
		})
		report := idx.CheckSymmetry()
		assert.True(t, report.IsSymmetric())
		assert.Equal(t, 4, report.Pairs)
		assert.Equal(t, 4, report.Symmetric)
		assert.Empty(t, report.Samples)
	})

	t.Run("asymmetric", func(t *testing.T) {
		idx := FromMap(map[string]map[string]int64{
			"A": {"A": 1, "B": 3, "C": 1},
			"B": {"A": 2},
		})
		report := idx.CheckSymmetry()
		assert.False(t, report.IsSymmetric())
		assert.Equal(t, 4, report.Pairs)
		assert.Equal(t, 1, report.SelfLoops)
		assert.Equal(t, 2, report.Mismatched) // A->B and B->A
		assert.Equal(t, 1, report.OneWay)     // A->C
		require.Len(t, report.Samples, 3)
		assert.Equal(t, Asymmetry{From: "A", To: "B", Forward: 3, Reverse: 2}, report.Samples[0])
		assert.Equal(t, Asymmetry{From: "A", To: "C", Forward: 1, ReverseMissing: true}, report.Samples[1])
	})
}

func TestDangling(t *testing.T) {
	idx := New([]Entry{
		{ID: "A", Neighbors: []Neighbor{{"X", 1}, {"B", 2}}},
		{ID: "Y", Neighbors: []Neighbor{{"X", 1}, {"A", 1}}},
	})
	known := map[string]bool{"A": true, "B": true}

	got := idx.Dangling(func(id string) bool { return known[id] })
	assert.Equal(t, []string{"X", "Y"}, got)
}

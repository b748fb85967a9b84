// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package catalog

import (
	"errors"
	"testing"
)

func mugCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New([]Product{
		{ID: "A1", Description: "RED MUG", Frequency: 40},
		{ID: "A2", Description: "BLUE MUG", Frequency: 25},
		{ID: "A3", Description: "Red Plate", Frequency: 12},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		products []Product
		wantErr  bool
		dupErr   bool
	}{
		{"empty catalog", nil, false, false},
		{"valid", []Product{{ID: "A", Description: "x"}, {ID: "B", Description: "y"}}, false, false},
		{"empty id", []Product{{ID: "", Description: "x"}}, true, false},
		{"duplicate id", []Product{{ID: "A"}, {ID: "A"}}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.products)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.dupErr && !errors.Is(err, ErrDuplicateProduct) {
				t.Errorf("expected ErrDuplicateProduct, got %v", err)
			}
			if err == nil && c.Len() != len(tt.products) {
				t.Errorf("Len() = %d, want %d", c.Len(), len(tt.products))
			}
		})
	}
}

func TestNew_ClampsNegativeFrequency(t *testing.T) {
	c, err := New([]Product{{ID: "A", Description: "x", Frequency: -3}})
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Frequency("A"); got != 0 {
		t.Errorf("Frequency() = %d, want 0", got)
	}
}

func TestLookup(t *testing.T) {
	c := mugCatalog(t)

	p, ok := c.Lookup("A2")
	if !ok || p.Description != "BLUE MUG" || p.Frequency != 25 {
		t.Errorf("Lookup(A2) = %+v, %v", p, ok)
	}
	if _, ok := c.Lookup("ZZ"); ok {
		t.Error("Lookup(ZZ) should be absent")
	}
	if c.Frequency("ZZ") != 0 {
		t.Error("Frequency of unknown product should be 0")
	}
}

func TestSearch(t *testing.T) {
	c := mugCatalog(t)

	tests := []struct {
		query string
		want  []string
	}{
		{"RED", []string{"A1", "A3"}},
		{"red", []string{"A1", "A3"}},
		{"  mug  ", []string{"A1", "A2"}},
		{"D MU", []string{"A1"}},
		{"GREEN", nil},
		{"", nil},
		{"   ", nil},
		// Literal containment, not tokenized: word order matters.
		{"MUG RED", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := c.Search(tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("Search(%q) returned %d products, want %d", tt.query, len(got), len(tt.want))
			}
			for i, p := range got {
				if p.ID != tt.want[i] {
					t.Errorf("Search(%q)[%d] = %s, want %s", tt.query, i, p.ID, tt.want[i])
				}
			}
		})
	}
}

func TestFirst_UsesCatalogOrder(t *testing.T) {
	c := mugCatalog(t)

	p, ok := c.First("red")
	if !ok || p.ID != "A1" {
		t.Errorf("First(red) = %+v, %v; want A1", p, ok)
	}

	// Reordering the catalog changes the anchor.
	reordered, err := New([]Product{
		{ID: "A3", Description: "RED PLATE"},
		{ID: "A1", Description: "RED MUG"},
	})
	if err != nil {
		t.Fatal(err)
	}
	p, _ = reordered.First("RED")
	if p.ID != "A3" {
		t.Errorf("First(RED) on reordered catalog = %s, want A3", p.ID)
	}

	if _, ok := c.First("GREEN"); ok {
		t.Error("First(GREEN) should not match")
	}
}

func TestSearchLimit(t *testing.T) {
	c := mugCatalog(t)
	if got := c.SearchLimit("MUG", 1); len(got) != 1 || got[0].ID != "A1" {
		t.Errorf("SearchLimit(MUG, 1) = %+v", got)
	}
	if got := c.SearchLimit("MUG", 0); len(got) != 2 {
		t.Errorf("SearchLimit(MUG, 0) returned %d products, want 2", len(got))
	}
}

func TestProducts_ReturnsCopy(t *testing.T) {
	c := mugCatalog(t)
	products := c.Products()
	products[0].Description = "CHANGED"

	p, _ := c.Lookup("A1")
	if p.Description != "RED MUG" {
		t.Error("mutating Products() result changed the catalog")
	}
}

func TestPopular(t *testing.T) {
	c := mugCatalog(t)

	tests := []struct {
		name string
		ids  []string
		n    int
		want []string
	}{
		{"in order", []string{"A2", "A1", "A3"}, 10, []string{"A2", "A1", "A3"}},
		{"truncated", []string{"A2", "A1", "A3"}, 2, []string{"A2", "A1"}},
		{"dangling skipped within window", []string{"A2", "GONE", "A3"}, 2, []string{"A2"}},
		{"zero", []string{"A1"}, 0, nil},
		{"empty ids", nil, 10, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Popular(tt.ids, tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("Popular() returned %d products, want %d", len(got), len(tt.want))
			}
			for i, p := range got {
				if p.ID != tt.want[i] {
					t.Errorf("Popular()[%d] = %s, want %s", i, p.ID, tt.want[i])
				}
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  white hanging heart \t"); got != "WHITE HANGING HEART" {
		t.Errorf("Normalize() = %q", got)
	}
}

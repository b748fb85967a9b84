// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package segment

import "testing"

func TestDefaultLabels(t *testing.T) {
	table := DefaultLabels()
	if table.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", table.Len())
	}

	want := map[int]string{
		0: "High-Value Customers",
		1: "Regular Customers",
		2: "Occasional Shoppers",
		3: "At-Risk Customers",
	}
	for id, name := range want {
		label, known := table.Lookup(id)
		if !known {
			t.Errorf("Lookup(%d) not known", id)
		}
		if label.Name != name {
			t.Errorf("Lookup(%d).Name = %q, want %q", id, label.Name, name)
		}
		if label.Description == "" {
			t.Errorf("Lookup(%d).Description is empty", id)
		}
	}
}

func TestLabelTable_UnknownFallback(t *testing.T) {
	table := DefaultLabels()

	for _, id := range []int{4, 17, -1} {
		label, known := table.Lookup(id)
		if known {
			t.Errorf("Lookup(%d) known = true", id)
		}
		if label.Name != UnknownName || label.Description != UnknownDescription {
			t.Errorf("Lookup(%d) = %+v, want Unknown Cluster fallback", id, label)
		}
	}
}

func TestNewLabelTable(t *testing.T) {
	tests := []struct {
		name    string
		labels  map[int]Label
		wantErr bool
	}{
		{"six clusters", map[int]Label{0: {Name: "A"}, 5: {Name: "F", Description: "six"}}, false},
		{"empty", nil, false},
		{"negative id", map[int]Label{-1: {Name: "A"}}, true},
		{"blank name", map[int]Label{2: {Name: "  "}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLabelTable(tt.labels)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewLabelTable() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLabelTable_MissingDescriptionFallsBack(t *testing.T) {
	table, err := NewLabelTable(map[int]Label{7: {Name: "Seasonal"}})
	if err != nil {
		t.Fatal(err)
	}
	label, known := table.Lookup(7)
	if !known || label.Name != "Seasonal" || label.Description != UnknownDescription {
		t.Errorf("Lookup(7) = %+v, %v", label, known)
	}
}

func TestLabelTable_With(t *testing.T) {
	base := DefaultLabels()
	merged := base.With(map[int]Label{1: {Name: "Core"}, 4: {Name: "Dormant"}})

	if merged.Len() != 5 {
		t.Errorf("merged Len() = %d, want 5", merged.Len())
	}
	if l, _ := merged.Lookup(1); l.Name != "Core" {
		t.Errorf("override not applied: %+v", l)
	}
	if l, _ := base.Lookup(1); l.Name != "Regular Customers" {
		t.Errorf("With() modified the base table: %+v", l)
	}
}

func TestLabelTable_Entries(t *testing.T) {
	table, _ := NewLabelTable(map[int]Label{3: {Name: "C"}, 0: {Name: "A"}, 1: {Name: "B"}})
	entries := table.Entries()
	if len(entries) != 3 {
		t.Fatalf("Entries() len = %d", len(entries))
	}
	for i, want := range []int{0, 1, 3} {
		if entries[i].ID != want {
			t.Errorf("Entries()[%d].ID = %d, want %d", i, entries[i].ID, want)
		}
	}
}

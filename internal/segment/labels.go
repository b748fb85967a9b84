// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package segment

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Fallback label for cluster ids the table does not know.
const (
	UnknownName        = "Unknown Cluster"
	UnknownDescription = "No description available"
)

// Label is the business name and description of a cluster.
type Label struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// LabeledCluster pairs a cluster id with its label.
type LabeledCluster struct {
	ID int `json:"id"`
	Label
}

// LabelTable maps cluster ids to labels. Lookups of unknown ids return the
// Unknown Cluster label instead of failing, so a classifier trained with a
// different number of clusters still produces usable output.
type LabelTable struct {
	labels map[int]Label
}

var defaultLabels = map[int]Label{
	0: {
		Name:        "High-Value Customers",
		Description: "Premium customers with frequent purchases and high spending. These are your most valuable customers.",
	},
	1: {
		Name:        "Regular Customers",
		Description: "Steady customers with moderate purchase frequency and spending. Core customer base.",
	},
	2: {
		Name:        "Occasional Shoppers",
		Description: "Infrequent shoppers with lower spending. Potential for growth with targeted campaigns.",
	},
	3: {
		Name:        "At-Risk Customers",
		Description: "Customers with declining activity. Require re-engagement strategies.",
	},
}

// DefaultLabels returns the built-in four-cluster table, used when the
// segmentation artifact ships without one.
func DefaultLabels() *LabelTable {
	return &LabelTable{labels: maps.Clone(defaultLabels)}
}

// NewLabelTable builds a table. Ids must be non-negative and names non-empty.
func NewLabelTable(labels map[int]Label) (*LabelTable, error) {
	for id, l := range labels {
		if id < 0 {
			return nil, fmt.Errorf("cluster id must be non-negative, got %d", id)
		}
		if strings.TrimSpace(l.Name) == "" {
			return nil, fmt.Errorf("cluster %d has an empty name", id)
		}
	}
	return &LabelTable{labels: maps.Clone(labels)}, nil
}

// Lookup returns the label for id and whether the table knows it.
func (t *LabelTable) Lookup(id int) (Label, bool) {
	if l, ok := t.labels[id]; ok {
		if l.Description == "" {
			l.Description = UnknownDescription
		}
		return l, true
	}
	return Label{Name: UnknownName, Description: UnknownDescription}, false
}

// With returns a copy of t with overrides applied on top.
func (t *LabelTable) With(overrides map[int]Label) *LabelTable {
	merged := maps.Clone(t.labels)
	if merged == nil {
		merged = make(map[int]Label, len(overrides))
	}
	maps.Copy(merged, overrides)
	return &LabelTable{labels: merged}
}

// Len returns the number of known clusters.
func (t *LabelTable) Len() int {
	return len(t.labels)
}

// Entries returns the table ordered by cluster id.
func (t *LabelTable) Entries() []LabeledCluster {
	out := make([]LabeledCluster, 0, len(t.labels))
	for _, id := range slices.Sorted(maps.Keys(t.labels)) {
		l, _ := t.Lookup(id)
		out = append(out, LabeledCluster{ID: id, Label: l})
	}
	return out
}

// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

// Package artifact loads the precomputed similarity and segmentation
// artifacts produced by the offline pipeline.
//
// Each artifact kind has a loader interface with a single load operation.
// Backends:
//
//   - FileLoader reads JSON or YAML exports.
//   - SnapshotStore reads versioned, checksummed gob snapshots from a directory.
//   - BadgerStore reads the same snapshots from a BadgerDB directory.
//   - Static serves in-memory fixtures.
//
// Provider sits in front of the loaders. It loads each artifact once per
// process, shares concurrent first loads, and turns a failed load into a
// per-feature unavailable state (ErrUnavailable) instead of a process exit.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/tomtom215/shopperspectrum/internal/catalog"
	"github.com/tomtom215/shopperspectrum/internal/cooccur"
	"github.com/tomtom215/shopperspectrum/internal/recommend"
	"github.com/tomtom215/shopperspectrum/internal/segment"
)

// Artifact kinds.
const (
	KindSimilarity   = "similarity"
	KindSegmentation = "segmentation"
)

var (
	// ErrNotFound is returned by loaders when the artifact does not exist.
	ErrNotFound = errors.New("artifact not found")

	// ErrUnavailable is returned by Provider for a feature whose artifact
	// failed to load. It wraps the underlying cause.
	ErrUnavailable = errors.New("artifact unavailable")
)

// ProductRecord is one product_dict entry.
type ProductRecord struct {
	ID          string
	Description string
}

// Similarity is the decoded similarity artifact. Slices keep the order the
// artifact listed products and co-occurrence entries in.
type Similarity struct {
	Products     []ProductRecord
	CoOccurrence []cooccur.Entry
	Frequency    map[string]int64
	TopProducts  []string
}

// Segmentation is the decoded segmentation artifact: a nearest-centroid
// model and the label table that goes with it. Nil Labels means the
// built-in four-cluster table.
type Segmentation struct {
	Model  segment.CentroidConfig
	Labels map[int]segment.Label
}

// SimilarityLoader loads the similarity artifact.
type SimilarityLoader interface {
	LoadSimilarity(ctx context.Context) (*Similarity, error)
}

// SegmentationLoader loads the segmentation artifact.
type SegmentationLoader interface {
	LoadSegmentation(ctx context.Context) (*Segmentation, error)
}

// Dataset builds the recommendation dataset. Products missing from the
// frequency table get frequency 0. A product listed twice keeps its first
// position and its last description.
func (s *Similarity) Dataset() (*recommend.Dataset, error) {
	pos := make(map[string]int, len(s.Products))
	products := make([]catalog.Product, 0, len(s.Products))
	for _, p := range s.Products {
		if i, ok := pos[p.ID]; ok {
			products[i].Description = p.Description
			continue
		}
		pos[p.ID] = len(products)
		products = append(products, catalog.Product{
			ID:          p.ID,
			Description: p.Description,
			Frequency:   s.Frequency[p.ID],
		})
	}

	cat, err := catalog.New(products)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	return &recommend.Dataset{
		Catalog:     cat,
		Index:       cooccur.New(s.CoOccurrence),
		TopProducts: slices.Clone(s.TopProducts),
	}, nil
}

// Entries reports the artifact size for logs and metrics.
func (s *Similarity) Entries() map[string]int {
	pairs := 0
	for _, e := range s.CoOccurrence {
		pairs += len(e.Neighbors)
	}
	return map[string]int{
		"products":     len(s.Products),
		"anchors":      len(s.CoOccurrence),
		"pairs":        pairs,
		"top_products": len(s.TopProducts),
	}
}

// Build constructs the segmentation model.
func (s *Segmentation) Build() (*segment.Model, error) {
	classifier, err := segment.NewCentroidModel(s.Model)
	if err != nil {
		return nil, fmt.Errorf("build classifier: %w", err)
	}
	model := &segment.Model{Classifier: classifier}
	if len(s.Labels) > 0 {
		labels, err := segment.NewLabelTable(s.Labels)
		if err != nil {
			return nil, fmt.Errorf("build label table: %w", err)
		}
		model.Labels = labels
	}
	return model, nil
}

// UnlabeledClusters validates the artifact and returns, in ascending order,
// the cluster ids the classifier can produce that its label table does not
// name. Those assignments come back as Unknown Cluster.
func (s *Segmentation) UnlabeledClusters() ([]int, error) {
	model, err := s.Build()
	if err != nil {
		return nil, err
	}
	labels := model.Labels
	if labels == nil {
		labels = segment.DefaultLabels()
	}
	clusters := len(s.Model.Centroids)
	if cm, ok := model.Classifier.(*segment.CentroidModel); ok {
		clusters = cm.Clusters()
	}
	var out []int
	for id := range clusters {
		if _, known := labels.Lookup(id); !known {
			out = append(out, id)
		}
	}
	return out, nil
}

// Entries reports the artifact size for logs and metrics.
func (s *Segmentation) Entries() map[string]int {
	return map[string]int{
		"clusters": len(s.Model.Centroids),
		"labels":   len(s.Labels),
	}
}

// parseLabelKeys converts string-keyed label maps (JSON object keys) to
// cluster ids.
func parseLabelKeys(in map[string]segment.Label) (map[int]segment.Label, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(map[int]segment.Label, len(in))
	for k, v := range in {
		id, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("label key %q is not a cluster id", k)
		}
		out[id] = v
	}
	return out, nil
}

// Static serves in-memory artifacts. A nil artifact loads as ErrNotFound.
type Static struct {
	Similarity   *Similarity
	Segmentation *Segmentation
}

// LoadSimilarity implements SimilarityLoader.
func (s *Static) LoadSimilarity(ctx context.Context) (*Similarity, error) {
	if s.Similarity == nil {
		return nil, fmt.Errorf("%s: %w", KindSimilarity, ErrNotFound)
	}
	return s.Similarity, nil
}

// LoadSegmentation implements SegmentationLoader.
func (s *Static) LoadSegmentation(ctx context.Context) (*Segmentation, error) {
	if s.Segmentation == nil {
		return nil, fmt.Errorf("%s: %w", KindSegmentation, ErrNotFound)
	}
	return s.Segmentation, nil
}

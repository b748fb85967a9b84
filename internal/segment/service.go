// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

// Package segment assigns customers to segments from RFM metrics.
//
// The classifier is a black box behind the Classifier interface. Its cluster
// id is turned into a business label through a LabelTable shipped with the
// segmentation artifact; ids the table does not know come back as
// "Unknown Cluster" rather than an error.
package segment

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/shopperspectrum/internal/logging"
	"github.com/tomtom215/shopperspectrum/internal/metrics"
)

// Model is a loaded segmentation artifact.
type Model struct {
	Classifier Classifier
	// Labels may be nil, in which case DefaultLabels applies.
	Labels *LabelTable
}

// ModelProvider supplies the segmentation model. Implementations load it
// once; an error means segmentation is unavailable.
type ModelProvider interface {
	Model(ctx context.Context) (*Model, error)
}

// Assignment is the result of classifying one customer.
type Assignment struct {
	ClusterID   int      `json:"cluster_id"`
	Name        string   `json:"label"`
	Description string   `json:"description"`
	Known       bool     `json:"known"`
	Insights    Insights `json:"insights"`
	RFM         RFM      `json:"rfm"`
}

// Service classifies customers. It is safe for concurrent use.
type Service struct {
	provider  ModelProvider
	overrides map[int]Label
	logger    zerolog.Logger

	mu          sync.Mutex
	labelsFor   *Model
	labelsCache *LabelTable
}

// NewService creates a segmentation service. overrides, if any, replace
// entries of the model's label table.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(provider ModelProvider, overrides map[int]Label, logger zerolog.Logger) (*Service, error) {
	if provider == nil {
		return nil, fmt.Errorf("model provider is required")
	}
	if _, err := NewLabelTable(overrides); err != nil {
		return nil, fmt.Errorf("invalid label overrides: %w", err)
	}
	return &Service{
		provider:  provider,
		overrides: overrides,
		logger:    logger.With().Str("component", "segment").Logger(),
	}, nil
}

// Classify validates rfm, predicts its cluster and attaches the label and
// insight badges. Unknown cluster ids are not an error.
func (s *Service) Classify(ctx context.Context, rfm RFM) (*Assignment, error) {
	if err := rfm.Validate(); err != nil {
		metrics.RecordClassificationError("invalid_input")
		return nil, err
	}

	model, err := s.provider.Model(ctx)
	if err != nil {
		metrics.RecordClassificationError("unavailable")
		return nil, fmt.Errorf("segmentation unavailable: %w", err)
	}

	clusterID, err := model.Classifier.Predict(ctx, rfm)
	if err != nil {
		metrics.RecordClassificationError("predict")
		return nil, fmt.Errorf("predict cluster: %w", err)
	}

	label, known := s.labels(model).Lookup(clusterID)
	metrics.RecordClassification(clusterID, known)
	if !known {
		s.logger.Warn().
			Str("request_id", logging.RequestIDFromContext(ctx)).
			Int("cluster_id", clusterID).
			Msg("classifier returned a cluster id with no label")
	}

	return &Assignment{
		ClusterID:   clusterID,
		Name:        label.Name,
		Description: label.Description,
		Known:       known,
		Insights:    InsightsFor(rfm),
		RFM:         rfm,
	}, nil
}

// Labels returns the effective label table, ordered by cluster id.
func (s *Service) Labels(ctx context.Context) ([]LabeledCluster, error) {
	model, err := s.provider.Model(ctx)
	if err != nil {
		return nil, fmt.Errorf("segmentation unavailable: %w", err)
	}
	return s.labels(model).Entries(), nil
}

// labels merges overrides into the model's table once per model.
func (s *Service) labels(model *Model) *LabelTable {
	base := model.Labels
	if base == nil {
		base = DefaultLabels()
	}
	if len(s.overrides) == 0 {
		return base
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.labelsFor != model {
		s.labelsFor = model
		s.labelsCache = base.With(s.overrides)
	}
	return s.labelsCache
}

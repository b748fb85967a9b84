// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package models

import (
	"github.com/tomtom215/shopperspectrum/internal/artifact"
	"github.com/tomtom215/shopperspectrum/internal/catalog"
	"github.com/tomtom215/shopperspectrum/internal/middleware"
	"github.com/tomtom215/shopperspectrum/internal/recommend"
	"github.com/tomtom215/shopperspectrum/internal/segment"
)

// ClassifyRequest is the body of POST /api/v1/segments/classify. Fields are
// pointers so a missing value is distinguishable from zero; range checks
// happen in segment.RFM.Validate.
type ClassifyRequest struct {
	Recency   *int     `json:"recency" validate:"required"`
	Frequency *int     `json:"frequency" validate:"required"`
	Monetary  *float64 `json:"monetary" validate:"required"`
}

// RFM converts a validated request. It must only be called after the
// required checks passed.
func (r *ClassifyRequest) RFM() segment.RFM {
	return segment.RFM{Recency: *r.Recency, Frequency: *r.Frequency, Monetary: *r.Monetary}
}

// ProductsData is the payload of the product list endpoints.
type ProductsData struct {
	Query    string            `json:"query,omitempty"`
	Count    int               `json:"count"`
	Products []catalog.Product `json:"products"`
}

// SegmentLabelsData is the payload of GET /api/v1/segments/labels.
type SegmentLabelsData struct {
	Count  int                      `json:"count"`
	Labels []segment.LabeledCluster `json:"labels"`
}

// Feature availability values.
const (
	FeatureAvailable   = "available"
	FeatureUnavailable = "unavailable"
)

// HealthStatus is the payload of GET /api/v1/health.
type HealthStatus struct {
	Status          string            `json:"status"`
	Version         string            `json:"version"`
	Uptime          float64           `json:"uptime"`
	Recommendations string            `json:"recommendations"`
	Segmentation    string            `json:"segmentation"`
	Artifacts       []artifact.Status `json:"artifacts"`
	Engine          recommend.Stats   `json:"engine"`
}

// ReadinessStatus is the payload of GET /api/v1/health/ready.
type ReadinessStatus struct {
	Ready           bool    `json:"ready_to_serve"`
	Recommendations string  `json:"recommendations"`
	Segmentation    string  `json:"segmentation"`
	Uptime          float64 `json:"uptime"`
}

// PerformanceData is the payload of GET /api/v1/health/performance.
type PerformanceData struct {
	Endpoints []middleware.EndpointStats `json:"endpoints"`
}

// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package api

import (
	"fmt"
	"time"

	"github.com/tomtom215/shopperspectrum/internal/artifact"
	"github.com/tomtom215/shopperspectrum/internal/middleware"
	"github.com/tomtom215/shopperspectrum/internal/recommend"
	"github.com/tomtom215/shopperspectrum/internal/segment"
)

// StatusReporter reports artifact load state for the health endpoints.
// *artifact.Provider implements it.
type StatusReporter interface {
	Status() []artifact.Status
}

// Handler serves the API endpoints.
type Handler struct {
	engine    *recommend.Engine
	segments  *segment.Service
	status    StatusReporter
	monitor   *middleware.PerformanceMonitor
	version   string
	startTime time.Time
}

// HandlerOptions are the Handler dependencies. Monitor is optional.
type HandlerOptions struct {
	Engine   *recommend.Engine
	Segments *segment.Service
	Status   StatusReporter
	Monitor  *middleware.PerformanceMonitor
	Version  string
}

// NewHandler creates a handler.
func NewHandler(opts HandlerOptions) (*Handler, error) {
	if opts.Engine == nil {
		return nil, fmt.Errorf("recommendation engine is required")
	}
	if opts.Segments == nil {
		return nil, fmt.Errorf("segmentation service is required")
	}
	if opts.Status == nil {
		return nil, fmt.Errorf("status reporter is required")
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	return &Handler{
		engine:    opts.Engine,
		segments:  opts.Segments,
		status:    opts.Status,
		monitor:   opts.Monitor,
		version:   opts.Version,
		startTime: time.Now(),
	}, nil
}

// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/shopperspectrum/internal/artifact"
	"github.com/tomtom215/shopperspectrum/internal/middleware"
	"github.com/tomtom215/shopperspectrum/internal/models"
)

// featureStates maps artifact status to the two feature availability
// strings. An artifact that has not finished loading counts as unavailable.
func featureStates(statuses []artifact.Status) (recommendations, segmentation string) {
	recommendations, segmentation = models.FeatureUnavailable, models.FeatureUnavailable
	for _, st := range statuses {
		if st.State != artifact.StateAvailable {
			continue
		}
		switch st.Kind {
		case artifact.KindSimilarity:
			recommendations = models.FeatureAvailable
		case artifact.KindSegmentation:
			segmentation = models.FeatureAvailable
		}
	}
	return recommendations, segmentation
}

// Health handles GET /api/v1/health. It always answers 200; status is
// "healthy" when both features are available and "degraded" otherwise.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	statuses := h.status.Status()
	rec, seg := featureStates(statuses)
	status := "healthy"
	if rec != models.FeatureAvailable || seg != models.FeatureAvailable {
		status = "degraded"
	}

	respondSuccess(w, r, models.HealthStatus{
		Status:          status,
		Version:         h.version,
		Uptime:          time.Since(h.startTime).Seconds(),
		Recommendations: rec,
		Segmentation:    seg,
		Artifacts:       statuses,
		Engine:          h.engine.Stats(),
	}, start)
}

// HealthLive handles GET /api/v1/health/live. It answers 200 while the
// process is up, regardless of artifacts.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, time.Now())
}

// HealthReady handles GET /api/v1/health/ready. It answers 200 when at
// least one feature can serve, and 503 when neither can.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rec, seg := featureStates(h.status.Status())
	ready := rec == models.FeatureAvailable || seg == models.FeatureAvailable

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, r, statusCode, &models.APIResponse{
		Status: status,
		Data: models.ReadinessStatus{
			Ready:           ready,
			Recommendations: rec,
			Segmentation:    seg,
			Uptime:          time.Since(h.startTime).Seconds(),
		},
	})
}

// HealthPerformance handles GET /api/v1/health/performance.
func (h *Handler) HealthPerformance(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	data := models.PerformanceData{Endpoints: []middleware.EndpointStats{}}
	if h.monitor != nil {
		data.Endpoints = h.monitor.Stats()
	}
	respondSuccess(w, r, data, start)
}

// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/shopperspectrum/internal/models"
	"github.com/tomtom215/shopperspectrum/internal/segment"
	"github.com/tomtom215/shopperspectrum/internal/validation"
)

// ClassifyQuery handles GET /api/v1/segments/classify?recency=&frequency=&monetary=.
func (h *Handler) ClassifyQuery(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	recency, err := requiredIntParam(r, "recency")
	if err != nil {
		respondParamError(w, r, "recency", err)
		return
	}
	frequency, err := requiredIntParam(r, "frequency")
	if err != nil {
		respondParamError(w, r, "frequency", err)
		return
	}
	monetary, err := requiredFloatParam(r, "monetary")
	if err != nil {
		respondParamError(w, r, "monetary", err)
		return
	}

	h.classify(w, r, segment.RFM{Recency: recency, Frequency: frequency, Monetary: monetary}, start)
}

// ClassifyBody handles POST /api/v1/segments/classify.
func (h *Handler) ClassifyBody(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ClassifyRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, "Request body must be a JSON object with recency, frequency and monetary", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	h.classify(w, r, req.RFM(), start)
}

func (h *Handler) classify(w http.ResponseWriter, r *http.Request, rfm segment.RFM, start time.Time) {
	assignment, err := h.segments.Classify(r.Context(), rfm)
	if err != nil {
		respondServiceError(w, r, "Segmentation", err)
		return
	}
	respondSuccess(w, r, assignment, start)
}

// SegmentLabels handles GET /api/v1/segments/labels.
func (h *Handler) SegmentLabels(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	labels, err := h.segments.Labels(r.Context())
	if err != nil {
		respondServiceError(w, r, "Segmentation", err)
		return
	}
	respondSuccess(w, r, models.SegmentLabelsData{Count: len(labels), Labels: labels}, start)
}

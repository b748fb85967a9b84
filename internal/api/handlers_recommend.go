// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/shopperspectrum/internal/models"
)

// maxQueryLen bounds free-text queries.
const maxQueryLen = 256

func queryParam(r *http.Request) (string, error) {
	q := r.URL.Query().Get("q")
	if len(q) > maxQueryLen {
		return "", fmt.Errorf("must be at most %d bytes", maxQueryLen)
	}
	return q, nil
}

// positiveOrDefault parses an optional count parameter: absent means 0
// (engine default), present must be >= 1.
func positiveOrDefault(r *http.Request, name string) (int, error) {
	n, err := intParam(r, name, 0)
	if err != nil {
		return 0, err
	}
	if r.URL.Query().Has(name) && n < 1 {
		return 0, fmt.Errorf("must be at least 1")
	}
	return n, nil
}

// Recommendations handles GET /api/v1/recommendations?q=&n=.
//
// NoMatch and Empty outcomes are 200 responses; clients branch on
// data.outcome. n above the configured maximum is capped.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	query, err := queryParam(r)
	if err != nil {
		respondParamError(w, r, "q", err)
		return
	}
	topN, err := positiveOrDefault(r, "n")
	if err != nil {
		respondParamError(w, r, "n", err)
		return
	}

	result, err := h.engine.Recommend(r.Context(), query, topN)
	if err != nil {
		respondServiceError(w, r, "Recommendations", err)
		return
	}
	respondSuccess(w, r, result, start)
}

// PopularProducts handles GET /api/v1/products/popular?n=.
func (h *Handler) PopularProducts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	n, err := positiveOrDefault(r, "n")
	if err != nil {
		respondParamError(w, r, "n", err)
		return
	}

	products, err := h.engine.Popular(r.Context(), n)
	if err != nil {
		respondServiceError(w, r, "Recommendations", err)
		return
	}
	respondSuccess(w, r, models.ProductsData{Count: len(products), Products: products}, start)
}

// SearchProducts handles GET /api/v1/products?q=&limit=. Results are in
// catalog order, so the first one is the anchor a recommendation for the
// same query would use.
func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	query, err := queryParam(r)
	if err != nil {
		respondParamError(w, r, "q", err)
		return
	}
	if strings.TrimSpace(query) == "" {
		respondParamError(w, r, "q", fmt.Errorf("is required"))
		return
	}
	limit, err := positiveOrDefault(r, "limit")
	if err != nil {
		respondParamError(w, r, "limit", err)
		return
	}

	products, err := h.engine.Search(r.Context(), query, limit)
	if err != nil {
		respondServiceError(w, r, "Recommendations", err)
		return
	}
	respondSuccess(w, r, models.ProductsData{Query: query, Count: len(products), Products: products}, start)
}

// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

/*
Package models defines the HTTP API request and response structures.

Key Components:

  - APIResponse: standard response envelope with Metadata and APIError
  - ClassifyRequest: segmentation request body
  - RecommendationsData, ProductsData: recommendation payloads
  - HealthStatus, ReadinessStatus: health endpoint payloads

Domain types (recommend.Result, segment.Assignment, artifact.Status) are
embedded directly rather than mirrored.
*/
package models

// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

/*
Package api provides the HTTP API on a chi router.

Endpoints:

	GET  /api/v1/recommendations?q=&n=        recommendations for a free-text query
	GET  /api/v1/products?q=&limit=           catalog search, anchor first
	GET  /api/v1/products/popular?n=          most purchased products
	GET  /api/v1/segments/classify?recency=&frequency=&monetary=
	POST /api/v1/segments/classify            {"recency":..,"frequency":..,"monetary":..}
	GET  /api/v1/segments/labels              effective cluster label table
	GET  /api/v1/health                       artifact status and engine counters
	GET  /api/v1/health/live                  liveness probe
	GET  /api/v1/health/ready                 per-feature readiness
	GET  /api/v1/health/performance           latency percentiles per route
	GET  /metrics                             Prometheus metrics

Every response uses models.APIResponse. A feature whose artifact failed to
load answers 503 SERVICE_UNAVAILABLE while the other feature keeps serving.
*/
package api

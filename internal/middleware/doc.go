// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

/*
Package middleware provides HTTP middleware for the API router.

Key Components:

  - RequestID: X-Request-ID propagation and a request-scoped logger
  - PrometheusMetrics: request count, latency and in-flight gauges labelled by route pattern
  - PerformanceMonitor: sliding-window latency percentiles per route, slow request logging

All middleware uses the func(http.Handler) http.Handler shape so it can be
mounted with chi's Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(monitor.Middleware)
*/
package middleware

// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/shopperspectrum/internal/middleware"
)

// Router wires handlers and middleware into a chi router.
type Router struct {
	handler        *Handler
	chiMiddleware  *ChiMiddleware
	monitor        *middleware.PerformanceMonitor
	requestTimeout time.Duration
}

// RouterOptions configures NewRouter. Monitor and Middleware are optional.
type RouterOptions struct {
	Middleware     *ChiMiddleware
	Monitor        *middleware.PerformanceMonitor
	RequestTimeout time.Duration
}

// NewRouter creates a router for handler.
func NewRouter(handler *Handler, opts RouterOptions) *Router {
	if opts.Middleware == nil {
		opts.Middleware = NewChiMiddleware(nil)
	}
	return &Router{
		handler:        handler,
		chiMiddleware:  opts.Middleware,
		monitor:        opts.Monitor,
		requestTimeout: opts.RequestTimeout,
	}
}

// SetupChi builds the route tree.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogging)
	r.Use(middleware.PrometheusMetrics)
	if router.monitor != nil {
		r.Use(router.monitor.Middleware)
	}
	r.Use(router.chiMiddleware.CORS())

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/performance", router.handler.HealthPerformance)
	})

	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitByIP())
		if router.requestTimeout > 0 {
			r.Use(chimiddleware.Timeout(router.requestTimeout))
		}
		r.Use(chimiddleware.Compress(5, "application/json"))

		r.Get("/api/v1/recommendations", router.handler.Recommendations)
		r.Get("/api/v1/products", router.handler.SearchProducts)
		r.Get("/api/v1/products/popular", router.handler.PopularProducts)

		r.Route("/api/v1/segments", func(r chi.Router) {
			r.Get("/classify", router.handler.ClassifyQuery)
			r.Post("/classify", router.handler.ClassifyBody)
			r.Get("/labels", router.handler.SegmentLabels)
		})
	})

	return r
}

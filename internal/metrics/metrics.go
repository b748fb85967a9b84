// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

// Package metrics defines the Prometheus metrics exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopper_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shopper_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shopper_api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopper_recommend_requests_total",
			Help: "Recommendation requests by outcome (ranked, empty, no_match, error)",
		},
		[]string{"outcome"},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shopper_recommend_duration_seconds",
			Help:    "Time to resolve and rank a recommendation query",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		},
	)

	RecommendItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shopper_recommend_items",
			Help:    "Number of recommendations returned per ranked query",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 20, 50},
		},
	)

	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shopper_recommend_cache_hits_total",
			Help: "Recommendation result cache hits",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shopper_recommend_cache_misses_total",
			Help: "Recommendation result cache misses",
		},
	)

	// Segmentation Metrics
	SegmentClassifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopper_segment_classifications_total",
			Help: "Customer classifications by cluster id and whether the label table knew it",
		},
		[]string{"cluster", "known"},
	)

	SegmentErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopper_segment_errors_total",
			Help: "Failed classifications by reason",
		},
		[]string{"reason"},
	)

	// Artifact Metrics
	ArtifactLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopper_artifact_loads_total",
			Help: "Artifact load attempts by kind and result",
		},
		[]string{"kind", "result"},
	)

	ArtifactLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shopper_artifact_load_duration_seconds",
			Help:    "Time to read and decode an artifact",
			Buckets: []float64{.01, .05, .1, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"kind"},
	)

	ArtifactAvailable = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "shopper_artifact_available",
			Help: "1 if the artifact loaded and its feature is serving, 0 otherwise",
		},
		[]string{"kind"},
	)

	ArtifactEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "shopper_artifact_entries",
			Help: "Size of a loaded artifact (products, pairs, clusters, labels)",
		},
		[]string{"kind", "dimension"},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one recommendation query.
func RecordRecommendation(outcome string, items int, duration time.Duration) {
	RecommendRequests.WithLabelValues(outcome).Inc()
	RecommendDuration.Observe(duration.Seconds())
	if outcome == "ranked" {
		RecommendItems.Observe(float64(items))
	}
}

// RecordRecommendCache records a result cache lookup.
func RecordRecommendCache(hit bool) {
	if hit {
		RecommendCacheHits.Inc()
	} else {
		RecommendCacheMisses.Inc()
	}
}

// RecordClassification records a successful classification.
func RecordClassification(clusterID int, known bool) {
	SegmentClassifications.WithLabelValues(strconv.Itoa(clusterID), strconv.FormatBool(known)).Inc()
}

// RecordClassificationError records a failed classification.
func RecordClassificationError(reason string) {
	SegmentErrors.WithLabelValues(reason).Inc()
}

// RecordArtifactLoad records an artifact load attempt and flips the
// availability gauge for its kind.
func RecordArtifactLoad(kind string, duration time.Duration, err error) {
	ArtifactLoadDuration.WithLabelValues(kind).Observe(duration.Seconds())
	if err != nil {
		ArtifactLoads.WithLabelValues(kind, "error").Inc()
		ArtifactAvailable.WithLabelValues(kind).Set(0)
		return
	}
	ArtifactLoads.WithLabelValues(kind, "success").Inc()
	ArtifactAvailable.WithLabelValues(kind).Set(1)
}

// SetArtifactEntries records the size of a loaded artifact along one dimension.
func SetArtifactEntries(kind, dimension string, n int) {
	ArtifactEntries.WithLabelValues(kind, dimension).Set(float64(n))
}

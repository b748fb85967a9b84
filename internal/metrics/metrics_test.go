// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations", "200"))

	RecordAPIRequest("GET", "/api/v1/recommendations", "200", 3*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations", "200"))
	if after != before+1 {
		t.Errorf("APIRequestsTotal = %v, want %v", after, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}

func TestRecordRecommendation(t *testing.T) {
	tests := []struct {
		outcome string
		items   int
	}{
		{"ranked", 5},
		{"empty", 0},
		{"no_match", 0},
	}

	for _, tt := range tests {
		t.Run(tt.outcome, func(t *testing.T) {
			before := testutil.ToFloat64(RecommendRequests.WithLabelValues(tt.outcome))
			RecordRecommendation(tt.outcome, tt.items, time.Millisecond)
			after := testutil.ToFloat64(RecommendRequests.WithLabelValues(tt.outcome))
			if after != before+1 {
				t.Errorf("RecommendRequests{%s} = %v, want %v", tt.outcome, after, before+1)
			}
		})
	}
}

func TestRecordRecommendCache(t *testing.T) {
	hits := testutil.ToFloat64(RecommendCacheHits)
	misses := testutil.ToFloat64(RecommendCacheMisses)

	RecordRecommendCache(true)
	RecordRecommendCache(false)
	RecordRecommendCache(false)

	if got := testutil.ToFloat64(RecommendCacheHits); got != hits+1 {
		t.Errorf("hits = %v, want %v", got, hits+1)
	}
	if got := testutil.ToFloat64(RecommendCacheMisses); got != misses+2 {
		t.Errorf("misses = %v, want %v", got, misses+2)
	}
}

func TestRecordClassification(t *testing.T) {
	before := testutil.ToFloat64(SegmentClassifications.WithLabelValues("7", "false"))
	RecordClassification(7, false)
	if got := testutil.ToFloat64(SegmentClassifications.WithLabelValues("7", "false")); got != before+1 {
		t.Errorf("SegmentClassifications{7,false} = %v, want %v", got, before+1)
	}
}

func TestRecordArtifactLoad(t *testing.T) {
	RecordArtifactLoad("similarity", 10*time.Millisecond, nil)
	if got := testutil.ToFloat64(ArtifactAvailable.WithLabelValues("similarity")); got != 1 {
		t.Errorf("available after success = %v, want 1", got)
	}

	failures := testutil.ToFloat64(ArtifactLoads.WithLabelValues("segmentation", "error"))
	RecordArtifactLoad("segmentation", time.Millisecond, errors.New("missing file"))
	if got := testutil.ToFloat64(ArtifactAvailable.WithLabelValues("segmentation")); got != 0 {
		t.Errorf("available after failure = %v, want 0", got)
	}
	if got := testutil.ToFloat64(ArtifactLoads.WithLabelValues("segmentation", "error")); got != failures+1 {
		t.Errorf("error loads = %v, want %v", got, failures+1)
	}
}

func TestSetArtifactEntries(t *testing.T) {
	SetArtifactEntries("similarity", "products", 3877)
	if got := testutil.ToFloat64(ArtifactEntries.WithLabelValues("similarity", "products")); got != 3877 {
		t.Errorf("ArtifactEntries = %v, want 3877", got)
	}
}

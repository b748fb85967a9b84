// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package segment

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// FeatureCount is the length of an RFM feature vector.
const FeatureCount = 3

// Classifier assigns an RFM vector to a cluster. Implementations must be
// deterministic and return small non-negative ids; nothing else about the
// algorithm is assumed.
type Classifier interface {
	Predict(ctx context.Context, rfm RFM) (int, error)
}

// ClassifierFunc adapts a function to Classifier.
type ClassifierFunc func(ctx context.Context, rfm RFM) (int, error)

// Predict calls f.
func (f ClassifierFunc) Predict(ctx context.Context, rfm RFM) (int, error) {
	return f(ctx, rfm)
}

// CentroidConfig describes a nearest-centroid model as exported by the
// offline clustering job: optional log1p transform, optional standard
// scaling, then one centroid per cluster in scaled feature space.
type CentroidConfig struct {
	Centroids    [][]float64 `json:"centroids" yaml:"centroids"`
	Mean         []float64   `json:"mean,omitempty" yaml:"mean,omitempty"`
	Scale        []float64   `json:"scale,omitempty" yaml:"scale,omitempty"`
	LogTransform bool        `json:"log_transform" yaml:"log_transform"`
}

// CentroidModel assigns each input to the nearest centroid by Euclidean
// distance. Equal distances go to the lower cluster id.
type CentroidModel struct {
	centroids    [][]float64
	mean         []float64
	scale        []float64
	logTransform bool
}

// NewCentroidModel validates cfg and builds a model. Centroids must have
// FeatureCount finite coordinates; Mean and Scale must both be empty or
// both have FeatureCount entries, with every scale non-zero.
func NewCentroidModel(cfg CentroidConfig) (*CentroidModel, error) {
	if len(cfg.Centroids) == 0 {
		return nil, fmt.Errorf("centroid model needs at least one centroid")
	}
	m := &CentroidModel{
		centroids:    make([][]float64, len(cfg.Centroids)),
		logTransform: cfg.LogTransform,
	}
	for i, c := range cfg.Centroids {
		if err := checkVector(c); err != nil {
			return nil, fmt.Errorf("centroid %d: %w", i, err)
		}
		m.centroids[i] = append([]float64(nil), c...)
	}

	switch {
	case len(cfg.Mean) == 0 && len(cfg.Scale) == 0:
	case len(cfg.Mean) == 0 || len(cfg.Scale) == 0:
		return nil, fmt.Errorf("scaler needs both mean and scale")
	default:
		if err := checkVector(cfg.Mean); err != nil {
			return nil, fmt.Errorf("scaler mean: %w", err)
		}
		if err := checkVector(cfg.Scale); err != nil {
			return nil, fmt.Errorf("scaler scale: %w", err)
		}
		for i, s := range cfg.Scale {
			if s == 0 {
				return nil, fmt.Errorf("scaler scale[%d] is zero", i)
			}
		}
		m.mean = append([]float64(nil), cfg.Mean...)
		m.scale = append([]float64(nil), cfg.Scale...)
	}
	return m, nil
}

func checkVector(v []float64) error {
	if len(v) != FeatureCount {
		return fmt.Errorf("expected %d values, got %d", FeatureCount, len(v))
	}
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("value %d is not finite", i)
		}
	}
	return nil
}

// Clusters returns the number of centroids.
func (m *CentroidModel) Clusters() int {
	return len(m.centroids)
}

// Transform maps raw features into the model's feature space.
func (m *CentroidModel) Transform(features []float64) []float64 {
	x := append([]float64(nil), features...)
	if m.logTransform {
		for i := range x {
			x[i] = math.Log1p(x[i])
		}
	}
	if m.mean != nil {
		floats.Sub(x, m.mean)
		floats.Div(x, m.scale)
	}
	return x
}

// Predict returns the index of the centroid nearest to rfm.
func (m *CentroidModel) Predict(ctx context.Context, rfm RFM) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	x := m.Transform(rfm.Vector())

	best, bestDist := 0, math.Inf(1)
	for i, c := range m.centroids {
		if d := floats.Distance(x, c, 2); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, nil
}

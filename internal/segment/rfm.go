// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package segment

import (
	"errors"
	"fmt"

	"github.com/tomtom215/shopperspectrum/internal/validation"
)

// ErrInvalidInput is wrapped around RFM validation failures.
var ErrInvalidInput = errors.New("invalid RFM input")

// RFM is a customer's Recency/Frequency/Monetary feature vector. Any
// non-negative recency and monetary value and any positive frequency is
// accepted; tighter bounds belong to whatever collects the input.
type RFM struct {
	// Recency is days since the last purchase.
	Recency int `json:"recency" validate:"gte=0"`

	// Frequency is the number of purchases.
	Frequency int `json:"frequency" validate:"gte=1"`

	// Monetary is total spend.
	Monetary float64 `json:"monetary" validate:"finite,gte=0"`
}

// Validate returns an error wrapping ErrInvalidInput and the
// *validation.RequestValidationError describing each failing field.
func (r RFM) Validate() error {
	if verr := validation.ValidateStruct(&r); verr != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, verr)
	}
	return nil
}

// Vector returns the features in classifier order: recency, frequency, monetary.
func (r RFM) Vector() []float64 {
	return []float64{float64(r.Recency), float64(r.Frequency), r.Monetary}
}

// Insight thresholds for the per-metric badges shown next to a segment.
const (
	RecentDaysThreshold     = 30
	HighFrequencyThreshold  = 50
	HighMonetaryThreshold   = 1000.0
	InsightRecent           = "Recent"
	InsightInactive         = "Inactive"
	InsightHighFrequency    = "High"
	InsightLowFrequency     = "Low"
	InsightHighValue        = "High Value"
	InsightStandardMonetary = "Standard"
)

// Insights are simple per-metric badges derived directly from RFM values,
// independent of the classifier.
type Insights struct {
	Recency   string `json:"recency"`
	Frequency string `json:"frequency"`
	Monetary  string `json:"monetary"`
}

// InsightsFor computes the badges for r.
func InsightsFor(r RFM) Insights {
	in := Insights{
		Recency:   InsightInactive,
		Frequency: InsightLowFrequency,
		Monetary:  InsightStandardMonetary,
	}
	if r.Recency < RecentDaysThreshold {
		in.Recency = InsightRecent
	}
	if r.Frequency > HighFrequencyThreshold {
		in.Frequency = InsightHighFrequency
	}
	if r.Monetary > HighMonetaryThreshold {
		in.Monetary = InsightHighValue
	}
	return in
}

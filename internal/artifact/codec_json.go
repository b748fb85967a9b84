// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package artifact

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/shopperspectrum/internal/cooccur"
	"github.com/tomtom215/shopperspectrum/internal/segment"
)

// similarityDoc is the JSON export layout of the similarity artifact.
type similarityDoc struct {
	ProductDict      orderedProducts     `json:"product_dict"`
	CoOccurrence     orderedCoOccurrence `json:"co_occurrence"`
	ProductFrequency orderedCounts       `json:"product_frequency"`
	TopProducts      []string            `json:"top_products"`
}

// segmentationDoc is the export layout of the segmentation artifact. The
// same struct serves JSON and YAML.
type segmentationDoc struct {
	Centroids    [][]float64              `json:"centroids" yaml:"centroids"`
	Scaler       *scalerDoc               `json:"scaler,omitempty" yaml:"scaler,omitempty"`
	LogTransform bool                     `json:"log_transform" yaml:"log_transform"`
	Labels       map[string]segment.Label `json:"labels,omitempty" yaml:"labels,omitempty"`
}

type scalerDoc struct {
	Mean  []float64 `json:"mean" yaml:"mean"`
	Scale []float64 `json:"scale" yaml:"scale"`
}

// DecodeSimilarityJSON decodes a JSON similarity export.
func DecodeSimilarityJSON(data []byte) (*Similarity, error) {
	var doc similarityDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode similarity artifact: %w", err)
	}
	if doc.ProductDict == nil {
		return nil, fmt.Errorf("decode similarity artifact: missing product_dict")
	}
	freq := make(map[string]int64, len(doc.ProductFrequency))
	for _, c := range doc.ProductFrequency {
		freq[c.ID] = c.Count
	}
	return &Similarity{
		Products:     doc.ProductDict,
		CoOccurrence: doc.CoOccurrence,
		Frequency:    freq,
		TopProducts:  doc.TopProducts,
	}, nil
}

// DecodeSegmentationJSON decodes a JSON segmentation export.
func DecodeSegmentationJSON(data []byte) (*Segmentation, error) {
	var doc segmentationDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode segmentation artifact: %w", err)
	}
	return doc.segmentation()
}

func (d *segmentationDoc) segmentation() (*Segmentation, error) {
	labels, err := parseLabelKeys(d.Labels)
	if err != nil {
		return nil, fmt.Errorf("decode segmentation artifact: %w", err)
	}
	seg := &Segmentation{
		Model: segment.CentroidConfig{
			Centroids:    d.Centroids,
			LogTransform: d.LogTransform,
		},
		Labels: labels,
	}
	if d.Scaler != nil {
		seg.Model.Mean = d.Scaler.Mean
		seg.Model.Scale = d.Scaler.Scale
	}
	return seg, nil
}

// orderedProducts decodes product_dict keeping key order. A null
// description decodes as "".
type orderedProducts []ProductRecord

func (o *orderedProducts) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	out := orderedProducts{}
	err := walkObject(data, func(key string, dec *json.Decoder) error {
		var desc *string
		if err := dec.Decode(&desc); err != nil {
			return fmt.Errorf("product_dict[%q]: %w", key, err)
		}
		rec := ProductRecord{ID: key}
		if desc != nil {
			rec.Description = *desc
		}
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return err
	}
	*o = out
	return nil
}

// orderedCoOccurrence decodes the nested co_occurrence object keeping both
// anchor and neighbor order.
type orderedCoOccurrence []cooccur.Entry

func (o *orderedCoOccurrence) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	out := orderedCoOccurrence{}
	err := walkObject(data, func(key string, dec *json.Decoder) error {
		var counts orderedCounts
		if err := dec.Decode(&counts); err != nil {
			return fmt.Errorf("co_occurrence[%q]: %w", key, err)
		}
		out = append(out, cooccur.Entry{ID: key, Neighbors: counts})
		return nil
	})
	if err != nil {
		return err
	}
	*o = out
	return nil
}

// orderedCounts decodes an object of integer counts keeping key order.
// Integral floats such as 3.0 are accepted; pandas exports write them.
type orderedCounts []cooccur.Neighbor

func (o *orderedCounts) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	out := orderedCounts{}
	err := walkObject(data, func(key string, dec *json.Decoder) error {
		var num json.Number
		if err := dec.Decode(&num); err != nil {
			return fmt.Errorf("count for %q: %w", key, err)
		}
		n, err := parseCount(string(num))
		if err != nil {
			return fmt.Errorf("count for %q: %w", key, err)
		}
		out = append(out, cooccur.Neighbor{ID: key, Count: n})
		return nil
	})
	if err != nil {
		return err
	}
	*o = out
	return nil
}

// isNull reports whether data is the JSON literal null. Unmarshalers leave
// their target untouched on null so absent and null sections look alike.
func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

// walkObject calls fn for every key of a JSON object in document order.
// fn must consume exactly one value from dec.
func walkObject(data []byte, fn func(key string, dec *json.Decoder) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		if err := fn(key, dec); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}

func parseCount(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q", s)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("count %q is not an integer", s)
	}
	return int64(f), nil
}

// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package artifact

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tomtom215/shopperspectrum/internal/cooccur"
)

// DecodeSimilarityYAML decodes a YAML similarity export. Mapping order is
// read from the node tree, so product and neighbor order survive.
func DecodeSimilarityYAML(data []byte) (*Similarity, error) {
	root, err := yamlRoot(data)
	if err != nil {
		return nil, fmt.Errorf("decode similarity artifact: %w", err)
	}

	sim := &Similarity{Frequency: map[string]int64{}}
	seenDict := false
	err = eachPair(root, func(key string, val *yaml.Node) error {
		switch key {
		case "product_dict":
			seenDict = val.Tag != "!!null"
			return eachPair(val, func(id string, desc *yaml.Node) error {
				rec := ProductRecord{ID: id}
				switch {
				case desc.Tag == "!!null":
				case desc.Kind == yaml.ScalarNode:
					rec.Description = desc.Value
				default:
					return fmt.Errorf("product_dict[%q]: description must be a scalar", id)
				}
				sim.Products = append(sim.Products, rec)
				return nil
			})
		case "co_occurrence":
			return eachPair(val, func(id string, inner *yaml.Node) error {
				neighbors, err := yamlCounts(inner)
				if err != nil {
					return fmt.Errorf("co_occurrence[%q]: %w", id, err)
				}
				sim.CoOccurrence = append(sim.CoOccurrence, cooccur.Entry{ID: id, Neighbors: neighbors})
				return nil
			})
		case "product_frequency":
			counts, err := yamlCounts(val)
			if err != nil {
				return fmt.Errorf("product_frequency: %w", err)
			}
			for _, c := range counts {
				sim.Frequency[c.ID] = c.Count
			}
		case "top_products":
			if err := val.Decode(&sim.TopProducts); err != nil {
				return fmt.Errorf("top_products: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("decode similarity artifact: %w", err)
	}
	if !seenDict {
		return nil, fmt.Errorf("decode similarity artifact: missing product_dict")
	}
	return sim, nil
}

// DecodeSegmentationYAML decodes a YAML segmentation export.
func DecodeSegmentationYAML(data []byte) (*Segmentation, error) {
	var doc segmentationDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode segmentation artifact: %w", err)
	}
	return doc.segmentation()
}

func yamlRoot(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0], nil
	}
	return nil, fmt.Errorf("empty document")
}

// eachPair calls fn for every key of a mapping node in document order. A
// null node is treated as an empty mapping.
func eachPair(node *yaml.Node, fn func(key string, val *yaml.Node) error) error {
	if node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if err := fn(node.Content[i].Value, node.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func yamlCounts(node *yaml.Node) ([]cooccur.Neighbor, error) {
	out := []cooccur.Neighbor{}
	err := eachPair(node, func(id string, val *yaml.Node) error {
		if val.Kind != yaml.ScalarNode {
			return fmt.Errorf("count for %q must be a scalar", id)
		}
		n, err := parseCount(val.Value)
		if err != nil {
			return fmt.Errorf("count for %q: %w", id, err)
		}
		out = append(out, cooccur.Neighbor{ID: id, Count: n})
		return nil
	})
	return out, err
}

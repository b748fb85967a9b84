// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package artifact

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FileLoader reads artifact exports from disk. The format follows the file
// extension.
type FileLoader struct {
	SimilarityPath   string
	SegmentationPath string
}

// LoadSimilarity implements SimilarityLoader.
func (l *FileLoader) LoadSimilarity(ctx context.Context) (*Similarity, error) {
	format, data, err := readExport(ctx, KindSimilarity, l.SimilarityPath)
	if err != nil {
		return nil, err
	}
	if format == FormatYAML {
		return DecodeSimilarityYAML(data)
	}
	return DecodeSimilarityJSON(data)
}

// LoadSegmentation implements SegmentationLoader.
func (l *FileLoader) LoadSegmentation(ctx context.Context) (*Segmentation, error) {
	format, data, err := readExport(ctx, KindSegmentation, l.SegmentationPath)
	if err != nil {
		return nil, err
	}
	if format == FormatYAML {
		return DecodeSegmentationYAML(data)
	}
	return DecodeSegmentationJSON(data)
}

// FormatOf returns the export format for path based on its extension.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported artifact format %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

func readExport(ctx context.Context, kind, path string) (string, []byte, error) {
	if path == "" {
		return "", nil, fmt.Errorf("%s: no path configured: %w", kind, ErrNotFound)
	}
	format, err := FormatOf(path)
	if err != nil {
		return "", nil, err
	}
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil, fmt.Errorf("%s: %s: %w", kind, path, ErrNotFound)
	}
	if err != nil {
		return "", nil, fmt.Errorf("read %s artifact: %w", kind, err)
	}
	return format, data, nil
}

// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package artifact

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrChecksumMismatch is returned when a stored payload does not match the
// checksum recorded when it was saved.
var ErrChecksumMismatch = errors.New("artifact checksum mismatch")

// Metadata describes one stored artifact version.
type Metadata struct {
	Kind      string         `json:"kind"`
	Version   int            `json:"version"`
	Source    string         `json:"source,omitempty"`
	SavedAt   time.Time      `json:"saved_at"`
	Checksum  string         `json:"checksum"`
	SizeBytes int64          `json:"size_bytes"`
	Entries   map[string]int `json:"entries,omitempty"`
}

// envelope is the stored form of a versioned artifact: metadata plus the
// gzip-compressed gob payload. The checksum covers the uncompressed payload.
type envelope struct {
	Metadata       Metadata
	CompressedData []byte
}

// sealEnvelope encodes payload and fills in the checksum, size and save
// time of meta.
func sealEnvelope(payload any, meta Metadata) ([]byte, Metadata, error) {
	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(payload); err != nil {
		return nil, meta, fmt.Errorf("encode artifact: %w", err)
	}
	sum := sha256.Sum256(raw.Bytes())
	meta.Checksum = hex.EncodeToString(sum[:])

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw.Bytes()); err != nil {
		return nil, meta, fmt.Errorf("compress artifact: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return nil, meta, fmt.Errorf("finalize compression: %w", err)
	}
	meta.SizeBytes = int64(compressed.Len())
	meta.SavedAt = time.Now().UTC()

	var out bytes.Buffer
	if err := gob.NewEncoder(&out).Encode(envelope{Metadata: meta, CompressedData: compressed.Bytes()}); err != nil {
		return nil, meta, fmt.Errorf("encode envelope: %w", err)
	}
	return out.Bytes(), meta, nil
}

// readMetadata decodes only the envelope header.
func readMetadata(r io.Reader) (*Metadata, *envelope, error) {
	var env envelope
	if err := gob.NewDecoder(r).Decode(&env); err != nil {
		return nil, nil, fmt.Errorf("read envelope: %w", err)
	}
	return &env.Metadata, &env, nil
}

// openEnvelope verifies the checksum and decodes the payload into target.
func openEnvelope(r io.Reader, target any) (*Metadata, error) {
	meta, env, err := readMetadata(r)
	if err != nil {
		return nil, err
	}

	gzr, err := gzip.NewReader(bytes.NewReader(env.CompressedData))
	if err != nil {
		return nil, fmt.Errorf("decompress artifact: %w", err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // close after full read is not actionable

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, fmt.Errorf("read decompressed artifact: %w", err)
	}

	sum := sha256.Sum256(raw)
	if got := hex.EncodeToString(sum[:]); got != meta.Checksum {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrChecksumMismatch, meta.Checksum, got)
	}

	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(target); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	return meta, nil
}

// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package artifact

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore keeps versioned artifact envelopes in BadgerDB.
//
// Keys:
//
//	artifact/{kind}/latest  decimal version number
//	artifact/{kind}/v{n}    envelope for version n
type BadgerStore struct {
	db       *badger.DB
	readOnly bool
}

// OpenBadgerStore opens dir. The server opens it read-only; only the
// offline import command writes.
func OpenBadgerStore(dir string, readOnly bool) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	opts.ReadOnly = readOnly
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger artifact store: %w", err)
	}
	return &BadgerStore{db: db, readOnly: readOnly}, nil
}

// Close closes the database.
func (b *BadgerStore) Close() error {
	return b.db.Close()
}

func latestKey(kind string) []byte {
	return []byte("artifact/" + kind + "/latest")
}

func versionPrefix(kind string) []byte {
	return []byte("artifact/" + kind + "/v")
}

func versionKey(kind string, version int) []byte {
	return strconv.AppendInt(versionPrefix(kind), int64(version), 10)
}

// Save stores payload as the next version of kind and moves the latest
// pointer to it in one transaction.
func (b *BadgerStore) Save(ctx context.Context, kind string, payload any, meta Metadata) (Metadata, error) {
	if b.readOnly {
		return meta, fmt.Errorf("badger artifact store is read-only")
	}
	if err := ctx.Err(); err != nil {
		return meta, err
	}

	err := b.db.Update(func(txn *badger.Txn) error {
		latest, err := readLatest(txn, kind)
		if err != nil {
			return err
		}
		meta.Kind = kind
		meta.Version = latest + 1

		data, sealed, err := sealEnvelope(payload, meta)
		if err != nil {
			return err
		}
		meta = sealed

		if err := txn.Set(versionKey(kind, meta.Version), data); err != nil {
			return err
		}
		return txn.Set(latestKey(kind), []byte(strconv.Itoa(meta.Version)))
	})
	if err != nil {
		return meta, fmt.Errorf("save %s artifact: %w", kind, err)
	}
	return meta, nil
}

func readLatest(txn *badger.Txn, kind string) (int, error) {
	item, err := txn.Get(latestKey(kind))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var version int
	err = item.Value(func(val []byte) error {
		v, err := strconv.Atoi(string(val))
		if err != nil {
			return fmt.Errorf("corrupt latest pointer for %s: %w", kind, err)
		}
		version = v
		return nil
	})
	return version, err
}

// Load decodes a version of kind into target. Version 0 means latest.
func (b *BadgerStore) Load(ctx context.Context, kind string, version int, target any) (*Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var meta *Metadata
	err := b.db.View(func(txn *badger.Txn) error {
		if version == 0 {
			latest, err := readLatest(txn, kind)
			if err != nil {
				return err
			}
			if latest == 0 {
				return fmt.Errorf("%s: no versions stored: %w", kind, ErrNotFound)
			}
			version = latest
		}

		item, err := txn.Get(versionKey(kind, version))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%s v%d: %w", kind, version, ErrNotFound)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			m, err := openEnvelope(bytes.NewReader(val), target)
			meta = m
			return err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("load %s artifact: %w", kind, err)
	}
	return meta, nil
}

// Versions lists the stored versions of kind in ascending order.
func (b *BadgerStore) Versions(ctx context.Context, kind string) ([]int, error) {
	var versions []int
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := versionPrefix(kind)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := strconv.Atoi(string(it.Item().Key()[len(prefix):]))
			if err != nil {
				continue
			}
			versions = append(versions, v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s versions: %w", kind, err)
	}
	slices.Sort(versions)
	return versions, nil
}

// Prune deletes all but the newest keep versions of kind.
func (b *BadgerStore) Prune(ctx context.Context, kind string, keep int) (int, error) {
	if b.readOnly {
		return 0, fmt.Errorf("badger artifact store is read-only")
	}
	if keep < 1 {
		keep = 1
	}
	versions, err := b.Versions(ctx, kind)
	if err != nil {
		return 0, err
	}
	if len(versions) <= keep {
		return 0, nil
	}
	stale := versions[:len(versions)-keep]
	err = b.db.Update(func(txn *badger.Txn) error {
		for _, v := range stale {
			if err := txn.Delete(versionKey(kind, v)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("prune %s versions: %w", kind, err)
	}
	return len(stale), nil
}

// LoadSimilarity implements SimilarityLoader with the latest version.
func (b *BadgerStore) LoadSimilarity(ctx context.Context) (*Similarity, error) {
	var sim Similarity
	if _, err := b.Load(ctx, KindSimilarity, 0, &sim); err != nil {
		return nil, err
	}
	return &sim, nil
}

// LoadSegmentation implements SegmentationLoader with the latest version.
func (b *BadgerStore) LoadSegmentation(ctx context.Context) (*Segmentation, error) {
	var seg Segmentation
	if _, err := b.Load(ctx, KindSegmentation, 0, &seg); err != nil {
		return nil, err
	}
	return &seg, nil
}

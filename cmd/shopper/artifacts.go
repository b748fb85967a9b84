// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tomtom215/shopperspectrum/internal/artifact"
	"github.com/tomtom215/shopperspectrum/internal/config"
	"github.com/tomtom215/shopperspectrum/internal/cooccur"
	"github.com/tomtom215/shopperspectrum/internal/logging"
)

func newArtifactsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artifacts",
		Short: "Manage and inspect the precomputed artifacts",
	}
	cmd.AddCommand(
		newArtifactsImportCmd(c),
		newArtifactsInspectCmd(c),
		newArtifactsListCmd(c),
	)
	return cmd
}

// artifactStore is a versioned backend that import can write to.
type artifactStore interface {
	Save(ctx context.Context, kind string, payload any, meta artifact.Metadata) (artifact.Metadata, error)
	Prune(ctx context.Context, kind string, keep int) (int, error)
}

// openStore opens backend for writing.
func openStore(cfg *config.ArtifactsConfig, backend string) (artifactStore, io.Closer, error) {
	switch backend {
	case config.BackendSnapshot:
		store, err := artifact.NewSnapshotStore(cfg.SnapshotDir)
		return store, nil, err
	case config.BackendBadger:
		store, err := artifact.OpenBadgerStore(cfg.BadgerDir, false)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("cannot import into %q backend (want snapshot or badger)", backend)
	}
}

func newArtifactsImportCmd(c *cli) *cobra.Command {
	var (
		similarityPath   string
		segmentationPath string
		target           string
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import JSON or YAML exports into a versioned store",
		Long: `Decode artifact exports, validate them and save them as a new version
in the snapshot or badger store. Old versions beyond
artifacts.retain_versions are pruned.

Examples:
  shopper artifacts import --similarity data/similarity.json --segmentation data/segmentation.yaml
  shopper artifacts import --similarity data/similarity.json --to badger`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if similarityPath == "" && segmentationPath == "" {
				return errors.New("nothing to import: set --similarity and/or --segmentation")
			}
			if target == "" {
				target = c.cfg.Artifacts.Backend
				if target == config.BackendFile {
					target = config.BackendSnapshot
				}
			}
			store, closer, err := openStore(&c.cfg.Artifacts, target)
			if err != nil {
				return fmt.Errorf("open %s store: %w", target, err)
			}
			defer closeQuietly(closer)

			imp := importer{
				store:  store,
				source: &artifact.FileLoader{SimilarityPath: similarityPath, SegmentationPath: segmentationPath},
				retain: c.cfg.Artifacts.RetainVersions,
				out:    cmd.OutOrStdout(),
			}
			return imp.run(cmd.Context(), similarityPath, segmentationPath)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&similarityPath, "similarity", "", "similarity export (.json, .yaml)")
	flags.StringVar(&segmentationPath, "segmentation", "", "segmentation export (.json, .yaml)")
	flags.StringVar(&target, "to", "", "target backend: snapshot or badger (default: artifacts.backend, or snapshot)")
	return cmd
}

type importer struct {
	store  artifactStore
	source *artifact.FileLoader
	retain int
	out    io.Writer
}

func (imp importer) run(ctx context.Context, similarityPath, segmentationPath string) error {
	if similarityPath != "" {
		sim, err := imp.source.LoadSimilarity(ctx)
		if err != nil {
			return err
		}
		// Reject artifacts the server could not serve.
		if _, err := sim.Dataset(); err != nil {
			return fmt.Errorf("%s: %w", similarityPath, err)
		}
		if err := imp.save(ctx, artifact.KindSimilarity, sim, similarityPath, sim.Entries()); err != nil {
			return err
		}
	}
	if segmentationPath != "" {
		seg, err := imp.source.LoadSegmentation(ctx)
		if err != nil {
			return err
		}
		if _, err := seg.Build(); err != nil {
			return fmt.Errorf("%s: %w", segmentationPath, err)
		}
		if err := imp.save(ctx, artifact.KindSegmentation, seg, segmentationPath, seg.Entries()); err != nil {
			return err
		}
	}
	return nil
}

func (imp importer) save(ctx context.Context, kind string, payload any, source string, entries map[string]int) error {
	meta, err := imp.store.Save(ctx, kind, payload, artifact.Metadata{
		Source:  filepath.Base(source),
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("save %s: %w", kind, err)
	}
	removed, err := imp.store.Prune(ctx, kind, imp.retain)
	if err != nil {
		logging.Warn().Err(err).Str("kind", kind).Msg("prune old artifact versions")
	}
	logging.Info().
		Str("kind", kind).
		Int("version", meta.Version).
		Str("checksum", meta.Checksum).
		Int("pruned", removed).
		Msg("artifact imported")
	_, err = fmt.Fprintf(imp.out, "%s: saved version %d (%d bytes, sha256 %s)\n", kind, meta.Version, meta.SizeBytes, meta.Checksum)
	return err
}

// similarityReport summarizes a similarity artifact for inspection.
type similarityReport struct {
	Entries  map[string]int         `json:"entries"`
	Symmetry cooccur.SymmetryReport `json:"symmetry"`
	// Dangling are ids in the co-occurrence data with no product entry.
	Dangling []string `json:"dangling_ids"`
	// MissingTop are top_products ids with no product entry.
	MissingTop []string `json:"missing_top_products"`
}

type segmentationReport struct {
	Entries   map[string]int `json:"entries"`
	Unlabeled []int          `json:"unlabeled_clusters,omitempty"`
}

type inspectReport struct {
	Backend           string              `json:"backend"`
	Similarity        *similarityReport   `json:"similarity,omitempty"`
	SimilarityError   string              `json:"similarity_error,omitempty"`
	Segmentation      *segmentationReport `json:"segmentation,omitempty"`
	SegmentationError string              `json:"segmentation_error,omitempty"`
}

func newArtifactsInspectCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Report artifact sizes, co-occurrence symmetry and dangling ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			source, closer, err := openSource(&c.cfg.Artifacts)
			if err != nil {
				return err
			}
			defer closeQuietly(closer)

			report := inspect(cmd.Context(), c.cfg.Artifacts.Backend, source)
			if c.jsonOut {
				return printJSON(cmd.OutOrStdout(), report)
			}
			return printInspect(cmd.OutOrStdout(), report)
		},
	}
}

func inspect(ctx context.Context, backend string, source artifactSource) inspectReport {
	report := inspectReport{Backend: backend}

	if sim, err := source.LoadSimilarity(ctx); err != nil {
		report.SimilarityError = err.Error()
	} else if ds, err := sim.Dataset(); err != nil {
		report.SimilarityError = err.Error()
	} else {
		sr := &similarityReport{
			Entries:  sim.Entries(),
			Symmetry: ds.Index.CheckSymmetry(),
			Dangling: ds.Index.Dangling(ds.Catalog.Contains),
		}
		for _, id := range ds.TopProducts {
			if !ds.Catalog.Contains(id) {
				sr.MissingTop = append(sr.MissingTop, id)
			}
		}
		report.Similarity = sr
	}

	if seg, err := source.LoadSegmentation(ctx); err != nil {
		report.SegmentationError = err.Error()
	} else if unlabeled, err := seg.UnlabeledClusters(); err != nil {
		report.SegmentationError = err.Error()
	} else {
		report.Segmentation = &segmentationReport{Entries: seg.Entries(), Unlabeled: unlabeled}
	}
	return report
}

func printInspect(w io.Writer, r inspectReport) error {
	fmt.Fprintf(w, "Backend: %s\n\n", r.Backend)

	fmt.Fprintln(w, "Similarity:")
	if r.Similarity == nil {
		fmt.Fprintf(w, "  unavailable: %s\n", r.SimilarityError)
	} else {
		s := r.Similarity
		fmt.Fprintf(w, "  products: %d  anchors: %d  pairs: %d  top products: %d\n",
			s.Entries["products"], s.Entries["anchors"], s.Entries["pairs"], s.Entries["top_products"])
		sym := "yes"
		if !s.Symmetry.IsSymmetric() {
			sym = "no"
		}
		fmt.Fprintf(w, "  symmetric: %s (%d symmetric, %d mismatched, %d one-way, %d self-loops)\n",
			sym, s.Symmetry.Symmetric, s.Symmetry.Mismatched, s.Symmetry.OneWay, s.Symmetry.SelfLoops)
		for _, a := range s.Symmetry.Samples {
			if a.ReverseMissing {
				fmt.Fprintf(w, "    %s -> %s: %d, reverse missing\n", a.From, a.To, a.Forward)
				continue
			}
			fmt.Fprintf(w, "    %s -> %s: %d, reverse: %d\n", a.From, a.To, a.Forward, a.Reverse)
		}
		fmt.Fprintf(w, "  dangling ids: %d %v\n", len(s.Dangling), s.Dangling)
		fmt.Fprintf(w, "  top products missing from catalog: %d %v\n", len(s.MissingTop), s.MissingTop)
	}

	fmt.Fprintln(w, "\nSegmentation:")
	if r.Segmentation == nil {
		_, err := fmt.Fprintf(w, "  unavailable: %s\n", r.SegmentationError)
		return err
	}
	fmt.Fprintf(w, "  clusters: %d  labels: %d\n", r.Segmentation.Entries["clusters"], r.Segmentation.Entries["labels"])
	_, err := fmt.Fprintf(w, "  unlabeled clusters: %d %v\n", len(r.Segmentation.Unlabeled), r.Segmentation.Unlabeled)
	return err
}

func newArtifactsListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored artifact versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()
			switch c.cfg.Artifacts.Backend {
			case config.BackendSnapshot:
				store, err := artifact.NewSnapshotStore(c.cfg.Artifacts.SnapshotDir)
				if err != nil {
					return err
				}
				metas, err := store.List(ctx)
				if err != nil {
					return err
				}
				if c.jsonOut {
					return printJSON(w, metas)
				}
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "KIND\tVERSION\tSOURCE\tSAVED\tBYTES\tSHA256")
				for _, m := range metas {
					fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%d\t%.12s\n", m.Kind, m.Version, m.Source, m.SavedAt.Format("2006-01-02 15:04:05"), m.SizeBytes, m.Checksum)
				}
				return tw.Flush()

			case config.BackendBadger:
				store, err := artifact.OpenBadgerStore(c.cfg.Artifacts.BadgerDir, true)
				if err != nil {
					return err
				}
				defer closeQuietly(store)
				versions := make(map[string][]int, 2)
				for _, kind := range []string{artifact.KindSimilarity, artifact.KindSegmentation} {
					v, err := store.Versions(ctx, kind)
					if err != nil {
						return err
					}
					versions[kind] = v
				}
				if c.jsonOut {
					return printJSON(w, versions)
				}
				for _, kind := range []string{artifact.KindSimilarity, artifact.KindSegmentation} {
					fmt.Fprintf(w, "%s: %v\n", kind, versions[kind])
				}
				return nil

			default:
				return fmt.Errorf("the %s backend is not versioned", c.cfg.Artifacts.Backend)
			}
		},
	}
}

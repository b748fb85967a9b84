// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tomtom215/shopperspectrum/internal/catalog"
	"github.com/tomtom215/shopperspectrum/internal/recommend"
)

func newRecommendCmd(c *cli) *cobra.Command {
	var topN int
	cmd := &cobra.Command{
		Use:   "recommend <query>",
		Short: "Recommend products bought together with the first match for query",
		Long: `Recommend products frequently bought together with a product.

The query is matched case-insensitively as a substring of product
descriptions; the first match in catalog order is the anchor.

Examples:
  shopper recommend "white hanging heart"
  shopper recommend LANTERN -n 10
  shopper recommend mug --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(c.cfg)
			if err != nil {
				return err
			}
			defer closeQuietly(a)

			result, err := a.engine.Recommend(cmd.Context(), strings.Join(args, " "), topN)
			if err != nil {
				return err
			}
			if c.jsonOut {
				return printJSON(cmd.OutOrStdout(), result)
			}
			return printResult(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().IntVarP(&topN, "top", "n", 0, "number of recommendations (default: recommend.default_top_n)")
	return cmd
}

func printResult(w io.Writer, r *recommend.Result) error {
	if !r.Matched() {
		_, err := fmt.Fprintf(w, "No product matches %q.\n", r.Query)
		return err
	}
	if r.Outcome == recommend.OutcomeEmpty {
		_, err := fmt.Fprintf(w, "Matched %s (%s) but it has no co-purchase data.\n", r.Anchor.Description, r.Anchor.ID)
		return err
	}

	fmt.Fprintf(w, "Customers who bought %s (%s) also bought:\n\n", r.Anchor.Description, r.Anchor.ID)
	if len(r.Items) == 0 {
		_, err := fmt.Fprintln(w, "  (none of the co-purchased products are in the catalog)")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPRODUCT\tDESCRIPTION\tBOUGHT TOGETHER\tFREQUENCY")
	for i, item := range r.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\n", i+1, item.ProductID, item.Description, item.CoOccurrenceCount, item.Frequency)
	}
	return tw.Flush()
}

func newPopularCmd(c *cli) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "popular",
		Short: "List the most purchased products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(c.cfg)
			if err != nil {
				return err
			}
			defer closeQuietly(a)

			products, err := a.engine.Popular(cmd.Context(), n)
			if err != nil {
				return err
			}
			if c.jsonOut {
				return printJSON(cmd.OutOrStdout(), products)
			}
			return printProducts(cmd.OutOrStdout(), products)
		},
	}
	cmd.Flags().IntVarP(&n, "count", "n", 0, "number of products (default: recommend.popular_count)")
	return cmd
}

func printProducts(w io.Writer, products []catalog.Product) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPRODUCT\tDESCRIPTION\tFREQUENCY")
	for i, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", i+1, p.ID, p.Description, p.Frequency)
	}
	return tw.Flush()
}

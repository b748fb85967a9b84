// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tomtom215/shopperspectrum/internal/segment"
)

func newClassifyCmd(c *cli) *cobra.Command {
	var rfm segment.RFM
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Assign a customer to a segment from RFM values",
		Long: `Assign a customer to a segment from Recency, Frequency and Monetary values.

Examples:
  shopper classify --recency 10 --frequency 40 --monetary 800
  shopper classify -r 200 -f 1 -m 15.5 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(c.cfg)
			if err != nil {
				return err
			}
			defer closeQuietly(a)

			assignment, err := a.segments.Classify(cmd.Context(), rfm)
			if err != nil {
				return err
			}
			if c.jsonOut {
				return printJSON(cmd.OutOrStdout(), assignment)
			}
			return printAssignment(cmd.OutOrStdout(), assignment)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&rfm.Recency, "recency", "r", 0, "days since last purchase")
	flags.IntVarP(&rfm.Frequency, "frequency", "f", 0, "number of purchases")
	flags.Float64VarP(&rfm.Monetary, "monetary", "m", 0, "total spend")
	for _, name := range []string{"recency", "frequency", "monetary"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func printAssignment(w io.Writer, a *segment.Assignment) error {
	_, err := fmt.Fprintf(w, `Segment:    %s (cluster %d)
            %s

Recency:    %d days  [%s]
Frequency:  %d       [%s]
Monetary:   %.2f  [%s]
`,
		a.Name, a.ClusterID, a.Description,
		a.RFM.Recency, a.Insights.Recency,
		a.RFM.Frequency, a.Insights.Frequency,
		a.RFM.Monetary, a.Insights.Monetary,
	)
	return err
}

// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

// Command shopper serves product recommendations and customer segments over
// HTTP and answers the same queries from the command line.
//
//	shopper serve                       run the API server
//	shopper recommend "HEART" -n 5      co-purchase recommendations
//	shopper popular                     most purchased products
//	shopper classify --recency 10 --frequency 40 --monetary 800
//	shopper artifacts import|inspect|list
//
// Configuration comes from defaults, an optional YAML file (--config or
// CONFIG_PATH) and environment variables, in increasing precedence.
package main

import (
	"os"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package supervisor_test

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/shopperspectrum/internal/artifact"
	"github.com/tomtom215/shopperspectrum/internal/logging"
	"github.com/tomtom215/shopperspectrum/internal/supervisor"
	"github.com/tomtom215/shopperspectrum/internal/supervisor/services"
)

// The tree as cmd/shopper assembles it. No Output comment: the example is
// compiled but not run, since it binds a port.
func ExampleSupervisorTree() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := logging.Logger()
	provider := artifact.NewProvider(&artifact.Static{}, &artifact.Static{}, artifact.ProviderOptions{
		LoadTimeout: time.Second,
		Logger:      logger,
	})
	srv := &http.Server{Addr: "127.0.0.1:8080", Handler: http.NotFoundHandler(), ReadHeaderTimeout: 10 * time.Second}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return
	}
	tree.AddArtifactService(services.NewWarmupService(provider, logger))
	tree.AddAPIService(services.NewHTTPServerService(srv, srv.Addr, 10*time.Second, logger))
	_ = tree.Serve(ctx)
}

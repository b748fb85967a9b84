// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

/*
Package supervisor runs the long-lived parts of the server under suture v4.

The tree has two layers so that artifact problems stay out of the request
path:

	shopperspectrum
	├── artifact-layer
	│   └── WarmupService (loads both artifacts once at startup)
	└── api-layer
	    └── HTTPServerService

Suture events (panics, restarts, backoff) are logged through sutureslog,
which takes a *slog.Logger; the server passes logging.NewSlogLogger() so the
events end up in the same zerolog stream as everything else.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}
	tree.AddArtifactService(services.NewWarmupService(provider, logger))
	tree.AddAPIService(services.NewHTTPServerService(srv, srv.Addr, cfg.Server.ShutdownTimeout, logger))
	return tree.Serve(ctx)

Services live in the services subpackage.
*/
package supervisor

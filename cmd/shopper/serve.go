// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/shopperspectrum/internal/api"
	"github.com/tomtom215/shopperspectrum/internal/config"
	"github.com/tomtom215/shopperspectrum/internal/logging"
	"github.com/tomtom215/shopperspectrum/internal/middleware"
	"github.com/tomtom215/shopperspectrum/internal/supervisor"
	"github.com/tomtom215/shopperspectrum/internal/supervisor/services"
)

func newServeCmd(c *cli) *cobra.Command {
	var (
		host string
		port int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server under a supervisor tree.

Artifacts are loaded once, in the background at startup when
artifacts.warm_on_start is set, otherwise on first use. A missing or
invalid artifact disables only the feature that needs it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if host != "" {
				c.cfg.Server.Host = host
			}
			if port != 0 {
				c.cfg.Server.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, c.cfg)
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "override server.host")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "override server.port")
	return cmd
}

// newHTTPHandler builds the routed handler for a.
func newHTTPHandler(cfg *config.Config, a *app, monitor *middleware.PerformanceMonitor) (http.Handler, error) {
	handler, err := api.NewHandler(api.HandlerOptions{
		Engine:   a.engine,
		Segments: a.segments,
		Status:   a.provider,
		Monitor:  monitor,
		Version:  version,
	})
	if err != nil {
		return nil, fmt.Errorf("create API handler: %w", err)
	}
	router := api.NewRouter(handler, api.RouterOptions{
		Middleware:     api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(&cfg.Security)),
		Monitor:        monitor,
		RequestTimeout: cfg.Server.RequestTimeout,
	})
	return router.SetupChi(), nil
}

func runServe(ctx context.Context, cfg *config.Config) error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer closeQuietly(a)

	monitor := middleware.NewPerformanceMonitor(middleware.DefaultPerformanceWindow, middleware.DefaultSlowThreshold)
	handler, err := newHTTPHandler(cfg, a, monitor)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	if cfg.Artifacts.WarmOnStart {
		tree.AddArtifactService(services.NewWarmupService(a.provider, logging.Logger()))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout, logging.Logger()))

	logging.Info().
		Str("addr", server.Addr).
		Str("environment", cfg.Server.Environment).
		Str("version", version).
		Msg("starting shopper spectrum")

	if err := <-tree.ServeBackground(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("supervisor tree stopped with error")
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("service failed to stop within timeout")
		}
	}

	logging.Info().Msg("shopper spectrum stopped")
	return nil
}

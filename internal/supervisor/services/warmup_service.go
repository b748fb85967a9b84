// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/shopperspectrum/internal/artifact"
)

// ArtifactWarmer loads artifacts ahead of the first request and reports
// their state. *artifact.Provider satisfies it.
type ArtifactWarmer interface {
	Warm(ctx context.Context) error
	Status() []artifact.Status
}

// WarmupService loads both artifacts once at startup so the first request
// does not pay the load cost.
//
// It runs exactly once. Load outcomes are cached by the provider for the
// life of the process, so a restart could not change anything; Serve
// always returns suture.ErrDoNotRestart once the loads finish, including
// when one of them failed. The failed feature answers 503 from then on.
type WarmupService struct {
	warmer ArtifactWarmer
	logger zerolog.Logger
}

// NewWarmupService creates the warmup service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewWarmupService(warmer ArtifactWarmer, logger zerolog.Logger) *WarmupService {
	return &WarmupService{
		warmer: warmer,
		logger: logger.With().Str("service", "artifact-warmup").Logger(),
	}
}

// Serve implements suture.Service.
func (s *WarmupService) Serve(ctx context.Context) error {
	start := time.Now()
	s.logger.Info().Msg("loading artifacts")

	if err := s.warmer.Warm(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Warn().Err(err).Msg("artifact warmup finished with errors; affected features stay unavailable")
	}

	for _, st := range s.warmer.Status() {
		switch st.State {
		case artifact.StateAvailable:
			ev := s.logger.Info().
				Str("kind", st.Kind).
				Int64("duration_ms", st.DurationMS)
			for name, n := range st.Entries {
				ev = ev.Int(name, n)
			}
			ev.Msg("artifact available")
		default:
			s.logger.Warn().
				Str("kind", st.Kind).
				Str("state", string(st.State)).
				Str("error", st.Error).
				Msg("artifact unavailable")
		}
	}

	s.logger.Info().Dur("duration", time.Since(start)).Msg("artifact warmup complete")
	return suture.ErrDoNotRestart
}

// String names the service in suture events.
func (s *WarmupService) String() string {
	return "artifact-warmup"
}

// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

/*
Package services adapts server components to suture's Serve(ctx) error
contract.

HTTPServerService runs an *http.Server. ListenAndServe happens in a
goroutine; when the supervisor cancels the context the server is shut down
gracefully within the configured timeout. A listener failure is returned as
an error so suture can restart it with backoff.

WarmupService loads the similarity and segmentation artifacts once at
startup and logs what it found. It returns suture.ErrDoNotRestart when done,
whatever the outcome, because load results are fixed for the process.

Both implement fmt.Stringer so suture events name them.
*/
package services

// SPDX-License-Identifier: MIT

// Package nw: functional configuration for Align.
//
// Design:
//   - Option / options with documented defaults (single source of truth below).
//   - WithX constructors panic only on nonsensical values (programmer error):
//     a nil logger or a negative timeout.
//   - Worker count and strategy are NOT checked here: they are configuration
//     errors that Align reports before any worker starts.

package nw

import (
	"log/slog"
	"time"

	"github.com/katalvlaran/wavealign/score"
	"github.com/katalvlaran/wavealign/wavefront"
)

const (
	// DefaultWorkers is the fill pool size when WithWorkers is not given.
	DefaultWorkers = 4

	// DefaultTimeout disables the global fill deadline. Without WithTimeout
	// a fill that never finishes blocks until ctx ends.
	DefaultTimeout time.Duration = 0
)

const (
	panicNilLogger       = "nw: WithLogger: nil logger"
	panicNegativeTimeout = "nw: WithTimeout: timeout must be >= 0"
)

// Option mutates the Align configuration. Later options override earlier ones.
type Option func(*options)

type options struct {
	scoring  Scoring
	workers  int
	strategy wavefront.Strategy
	timeout  time.Duration
	logger   *slog.Logger
	observer score.Observer
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts ...Option) options {
	o := options{
		scoring:  DefaultScoring(),
		workers:  DefaultWorkers,
		strategy: wavefront.DefaultStrategy,
		timeout:  DefaultTimeout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithScoring replaces the whole cost model.
func WithScoring(s Scoring) Option {
	return func(o *options) { o.scoring = s }
}

// WithMatch sets the score for equal symbols.
func WithMatch(v int) Option {
	return func(o *options) { o.scoring.Match = v }
}

// WithMismatch sets the score for different symbols.
func WithMismatch(v int) Option {
	return func(o *options) { o.scoring.Mismatch = v }
}

// WithGap sets the per-symbol gap penalty (usually negative).
func WithGap(v int) Option {
	return func(o *options) { o.scoring.Gap = v }
}

// WithWorkers sets the fill pool size. Non-positive values make Align fail
// with wavefront.ErrInvalidWorkers.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithStrategy selects how cells are partitioned over workers.
func WithStrategy(s wavefront.Strategy) Option {
	return func(o *options) { o.strategy = s }
}

// WithTimeout bounds the fill phase; 0 means no deadline.
// Panics if d is negative.
func WithTimeout(d time.Duration) Option {
	if d < 0 {
		panic(panicNegativeTimeout)
	}

	return func(o *options) { o.timeout = d }
}

// WithLogger routes run logs to l. Panics if l is nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}

	return func(o *options) { o.logger = l }
}

// WithObserver installs a grid observer for instrumented runs.
func WithObserver(obs score.Observer) Option {
	return func(o *options) { o.observer = obs }
}

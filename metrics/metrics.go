// SPDX-License-Identifier: MIT

// Package metrics exports alignment runs as Prometheus collectors.
//
// Collectors are registered on the registry handed to New, never on the
// global default one, so tests and the CLI own their exposition.
package metrics

import (
	"context"
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/wavealign/config"
	"github.com/katalvlaran/wavealign/nw"
	"github.com/katalvlaran/wavealign/wavefront"
)

const (
	namespace = "wavealign"
	subsystem = "align"
)

// Failure kinds reported by ObserveFailure.
const (
	KindConfig    = "config"
	KindDeadline  = "deadline"
	KindCanceled  = "canceled"
	KindIntegrity = "integrity"
	KindOther     = "other"
)

// Metrics holds the collectors of one process.
type Metrics struct {
	runs       *prometheus.CounterVec
	failures   *prometheus.CounterVec
	cells      *prometheus.CounterVec
	fill       *prometheus.HistogramVec
	traceback  prometheus.Histogram
	cellRate   *prometheus.GaugeVec
	lastScore  prometheus.Gauge
	lastLength *prometheus.GaugeVec
}

// New creates the collectors and registers them on reg.
// Panics if a collector with the same name is already registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "runs_total",
			Help:      "Completed alignment runs",
		}, []string{"strategy", "workers"}),
		failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "failures_total",
			Help:      "Alignment runs that returned an error, by kind",
		}, []string{"kind"}),
		cells: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cells_total",
			Help:      "Interior score cells computed",
		}, []string{"strategy"}),
		fill: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "fill_duration_seconds",
			Help:      "Parallel fill duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"strategy"}),
		traceback: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "traceback_duration_seconds",
			Help:      "Traceback duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
		cellRate: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cells_per_second",
			Help:      "Fill throughput of the last run",
		}, []string{"strategy"}),
		lastScore: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "last_score",
			Help:      "Optimal score of the last run",
		}),
		lastLength: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "last_sequence_length",
			Help:      "Sequence lengths of the last run",
		}, []string{"sequence"}),
	}
}

// Observe records a successful run.
func (m *Metrics) Observe(res *nw.Result) {
	st := res.Strategy.String()
	cells := res.Cells()

	m.runs.WithLabelValues(st, strconv.Itoa(res.Workers)).Inc()
	m.cells.WithLabelValues(st).Add(float64(cells))
	m.fill.WithLabelValues(st).Observe(res.FillTime.Seconds())
	m.traceback.Observe(res.TracebackTime.Seconds())
	if secs := res.FillTime.Seconds(); secs > 0 {
		m.cellRate.WithLabelValues(st).Set(float64(cells) / secs)
	}
	m.lastScore.Set(float64(res.Score))
	m.lastLength.WithLabelValues("x").Set(float64(res.Grid.Rows() - 1))
	m.lastLength.WithLabelValues("y").Set(float64(res.Grid.Cols() - 1))
}

// ObserveFailure counts a failed run under the kind Classify assigns err.
func (m *Metrics) ObserveFailure(err error) {
	m.failures.WithLabelValues(Classify(err)).Inc()
}

// Classify maps an Align error onto a failure kind.
func Classify(err error) string {
	switch {
	case errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, wavefront.ErrInvalidWorkers),
		errors.Is(err, wavefront.ErrUnknownStrategy),
		errors.Is(err, wavefront.ErrInvalidLength),
		errors.Is(err, wavefront.ErrBadPartition),
		errors.Is(err, nw.ErrGapInInput):
		return KindConfig
	case errors.Is(err, wavefront.ErrDeadline):
		return KindDeadline
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, nw.ErrIntegrity):
		return KindIntegrity
	}

	return KindOther
}

// WriteFile writes the text exposition of g to path.
func WriteFile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}

// SPDX-License-Identifier: MIT

package nw

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter; no-ops until an SDK is installed.
var (
	tracer = otel.Tracer("wavealign.nw")
	meter  = otel.Meter("wavealign.nw")
)

var (
	fillLatency metric.Float64Histogram
	alignTotal  metric.Int64Counter
	cellsTotal  metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics creates the instruments once.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		fillLatency, err = meter.Float64Histogram(
			"nw_fill_duration_seconds",
			metric.WithDescription("Duration of the parallel score matrix fill"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		alignTotal, err = meter.Int64Counter(
			"nw_align_total",
			metric.WithDescription("Total number of alignment runs"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		cellsTotal, err = meter.Int64Counter(
			"nw_cells_total",
			metric.WithDescription("Interior cells computed by the fill"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})

	return metricsErr
}

// startAlignSpan opens the span covering one Align call.
func startAlignSpan(ctx context.Context, runID string, lenX, lenY, workers int, strategy string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "nw.Align",
		trace.WithAttributes(
			attribute.String("nw.run_id", runID),
			attribute.Int("nw.len_x", lenX),
			attribute.Int("nw.len_y", lenY),
			attribute.Int("nw.workers", workers),
			attribute.String("nw.strategy", strategy),
		),
	)
}

// endAlignSpan records the outcome on span.
func endAlignSpan(span trace.Span, final int, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return
	}
	span.SetAttributes(attribute.Int("nw.score", final))
	span.SetStatus(codes.Ok, "")
}

// recordAlignMetrics records one finished run.
func recordAlignMetrics(ctx context.Context, strategy string, fill time.Duration, cells int, success bool) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("strategy", strategy),
		attribute.Bool("success", success),
	)
	fillLatency.Record(ctx, fill.Seconds(), attrs)
	alignTotal.Add(ctx, 1, attrs)
	if success {
		cellsTotal.Add(ctx, int64(cells), metric.WithAttributes(attribute.String("strategy", strategy)))
	}
}

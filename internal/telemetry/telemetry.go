// SPDX-License-Identifier: MIT

// Package telemetry installs OpenTelemetry providers for one CLI process.
//
// The nw package records spans and instruments through the otel globals;
// they stay no-ops until Setup installs an SDK behind them.
//
//   - Traces go to a writer through the stdout exporter (synchronous, so a
//     short-lived process loses nothing).
//   - Metrics are bridged into a Prometheus registry, next to the collectors
//     of the metrics package, so one text file carries both.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
)

// ServiceName identifies the process in exported telemetry.
const ServiceName = "wavealign"

// Options selects the exporters. A nil field disables that signal.
type Options struct {
	TraceWriter io.Writer             // stdout span exporter target
	Registerer  prometheus.Registerer // Prometheus bridge target
	Version     string                // service.version attribute
}

// Setup installs the requested providers as otel globals and returns a
// shutdown that flushes them. Call shutdown exactly once.
//
// otel delegates its globals only once per process: providers installed by
// a second Setup replace the globals but not tracers and meters obtained
// before the first one.
func Setup(opts Options) (shutdown func(context.Context) error, err error) {
	var shutdowns []func(context.Context) error
	shutdown = func(ctx context.Context) error {
		var errs []error
		for _, fn := range shutdowns {
			errs = append(errs, fn(ctx))
		}

		return errors.Join(errs...)
	}

	res := resource.NewWithAttributes("",
		attribute.String("service.name", ServiceName),
		attribute.String("service.version", opts.Version),
	)

	if opts.TraceWriter != nil {
		exp, err := stdouttrace.New(stdouttrace.WithWriter(opts.TraceWriter), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("telemetry: trace exporter: %w", err)
		}
		tp := trace.NewTracerProvider(
			trace.WithSyncer(exp),
			trace.WithResource(res),
			trace.WithSampler(trace.AlwaysSample()),
		)
		otel.SetTracerProvider(tp)
		shutdowns = append(shutdowns, tp.Shutdown)
	}

	if opts.Registerer != nil {
		exp, err := promexporter.New(promexporter.WithRegisterer(opts.Registerer))
		if err != nil {
			return nil, errors.Join(fmt.Errorf("telemetry: prometheus exporter: %w", err), shutdown(context.Background()))
		}
		mp := metric.NewMeterProvider(metric.WithResource(res), metric.WithReader(exp))
		otel.SetMeterProvider(mp)
		shutdowns = append(shutdowns, mp.Shutdown)
	}

	return shutdown, nil
}

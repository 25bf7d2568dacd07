// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/wavealign/config"
	"github.com/katalvlaran/wavealign/internal/telemetry"
	"github.com/katalvlaran/wavealign/metrics"
	"github.com/katalvlaran/wavealign/nw"
	"github.com/katalvlaran/wavealign/sequence"
)

var errInput = errors.New("wavealign: give each sequence either as a file or as a literal")

type alignFlags struct {
	fileX, fileY string
	seqX, seqY   string
	uppercase    bool

	workers  int
	strategy string
	timeout  time.Duration
	match    int
	mismatch int
	gap      int

	printMatrix bool
	metricsFile string
	trace       bool
}

func newAlignCmd(a *app) *cobra.Command {
	var f alignFlags
	cmd := &cobra.Command{
		Use:   "align",
		Short: "Globally align two sequences and print the score and alignment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runAlign(cmd, &f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.fileX, "x", "", "file holding sequence X (raw or single FASTA record)")
	fl.StringVar(&f.fileY, "y", "", "file holding sequence Y (raw or single FASTA record)")
	fl.StringVar(&f.seqX, "seq-x", "", "sequence X given literally")
	fl.StringVar(&f.seqY, "seq-y", "", "sequence Y given literally")
	fl.BoolVar(&f.uppercase, "uppercase", false, "fold sequence files to upper case")
	fl.IntVar(&f.workers, "workers", nw.DefaultWorkers, "fill worker count")
	fl.StringVar(&f.strategy, "strategy", "", "partition strategy: diagonals, rows or cursor")
	fl.DurationVar(&f.timeout, "timeout", config.DefaultTimeout, "fill deadline, 0 for none")
	fl.IntVar(&f.match, "match", nw.DefaultMatch, "score for equal symbols")
	fl.IntVar(&f.mismatch, "mismatch", nw.DefaultMismatch, "score for different symbols")
	fl.IntVar(&f.gap, "gap", nw.DefaultGap, "score per gap symbol")
	fl.BoolVar(&f.printMatrix, "print-matrix", false, "print the full score matrix")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus text metrics of the run to this file")
	fl.BoolVar(&f.trace, "trace", false, "print OpenTelemetry spans of the run to stderr")

	return cmd
}

// override copies explicitly set flags over the loaded config.
func (f *alignFlags) override(cmd *cobra.Command, cfg config.Config) config.Config {
	fl := cmd.Flags()
	if fl.Changed("workers") {
		cfg.Workers = f.workers
	}
	if fl.Changed("strategy") {
		cfg.Strategy = f.strategy
	}
	if fl.Changed("timeout") {
		cfg.Timeout = f.timeout
	}
	if fl.Changed("match") {
		cfg.Scoring.Match = f.match
	}
	if fl.Changed("mismatch") {
		cfg.Scoring.Mismatch = f.mismatch
	}
	if fl.Changed("gap") {
		cfg.Scoring.Gap = f.gap
	}

	return cfg
}

func (a *app) runAlign(cmd *cobra.Command, f *alignFlags) error {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	topts := telemetry.Options{Version: version}
	if f.trace {
		topts.TraceWriter = cmd.ErrOrStderr()
	}
	if f.metricsFile != "" {
		topts.Registerer = reg
	}
	if topts.TraceWriter != nil || topts.Registerer != nil {
		shutdown, err := telemetry.Setup(topts)
		if err != nil {
			return err
		}
		defer func() {
			if serr := shutdown(context.WithoutCancel(cmd.Context())); serr != nil {
				a.logger.Warn("telemetry shutdown failed", slog.Any("error", serr))
			}
		}()
	}

	err := a.align(cmd, f, m)
	if err != nil {
		m.ObserveFailure(err)
	}
	if f.metricsFile != "" {
		if werr := metrics.WriteFile(f.metricsFile, reg); werr != nil {
			return errors.Join(err, fmt.Errorf("wavealign: metrics: %w", werr))
		}
	}

	return err
}

func (a *app) align(cmd *cobra.Command, f *alignFlags, m *metrics.Metrics) error {
	cfg := f.override(cmd, a.cfg)
	opts, err := cfg.AlignOptions()
	if err != nil {
		return err
	}
	opts = append(opts, nw.WithLogger(a.logger))

	var readOpts []sequence.ReadOption
	if f.uppercase {
		readOpts = append(readOpts, sequence.WithUppercase())
	}
	x, err := loadSequence("x", f.fileX, f.seqX, readOpts)
	if err != nil {
		return err
	}
	y, err := loadSequence("y", f.fileY, f.seqY, readOpts)
	if err != nil {
		return err
	}

	res, err := nw.Align(cmd.Context(), x, y, opts...)
	if err != nil {
		return err
	}
	defer res.Grid.Release()
	m.Observe(res)

	return report(cmd.OutOrStdout(), res, f.printMatrix)
}

// loadSequence resolves one sequence from exactly one of file or literal.
func loadSequence(which, file, literal string, opts []sequence.ReadOption) (sequence.Sequence, error) {
	switch {
	case file != "" && literal != "":
		return sequence.Sequence{}, fmt.Errorf("%w: both --%s and --seq-%s set", errInput, which, which)
	case file != "":
		return sequence.ReadFile(file, opts...)
	case literal != "":
		return sequence.FromString(literal), nil
	}

	return sequence.Sequence{}, fmt.Errorf("%w: --%s or --seq-%s is required", errInput, which, which)
}

// report prints the run in a fixed, grep-friendly layout.
func report(w io.Writer, res *nw.Result, printMatrix bool) error {
	if printMatrix {
		if err := res.Grid.Render(w); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	_, err := fmt.Fprintf(w,
		"Score: %d\n%s\nWorkers: %d (%s)\nFill: %s\nTraceback: %s\n",
		res.Score, res.Alignment, res.Workers, res.Strategy,
		res.FillTime.Round(time.Microsecond), res.TracebackTime.Round(time.Microsecond),
	)

	return err
}

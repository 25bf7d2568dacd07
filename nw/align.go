// SPDX-License-Identifier: MIT

package nw

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/wavealign/score"
	"github.com/katalvlaran/wavealign/sequence"
	"github.com/katalvlaran/wavealign/wavefront"
)

// Result is the outcome of one successful Align call.
type Result struct {
	RunID     string             // unique per call, also logged and traced
	Grid      *score.Grid        // completed matrix, read-only
	Alignment Alignment          // one optimal alignment
	Score     int                // S[lenX][lenY]
	Scoring   Scoring            // cost model used
	Workers   int                // effective pool size after clamping
	Strategy  wavefront.Strategy // partition policy used

	FillTime      time.Duration
	TracebackTime time.Duration
}

// Cells returns the number of interior cells that were computed.
func (r *Result) Cells() int {
	return (r.Grid.Rows() - 1) * (r.Grid.Cols() - 1)
}

// Align fills the score matrix of x against y with a fixed worker pool and
// recovers one optimal alignment.
//
// Implementation:
//   - Stage 1: resolve options and build the wavefront plan. A bad worker
//     count or strategy fails here, before any goroutine starts.
//   - Stage 2: allocate the grid (boundary pre-published) and run the pool
//     under the optional deadline.
//   - Stage 3: after the pool joined, trace back and read the final score.
//
// No Result is returned with an error; the grid of a failed run is released.
//
// Liveness is only reported under a deadline: pass WithTimeout or a ctx with
// its own deadline. With neither, a stalled fill blocks Align until ctx is
// canceled. The CLI always sets one (see config.Default).
//
// Errors:
//   - wavefront.ErrInvalidWorkers, wavefront.ErrUnknownStrategy,
//     ErrGapInInput (configuration).
//   - wavefront.ErrDeadline (liveness), context.Canceled.
//   - ErrIntegrity (traceback could not explain the matrix).
func Align(ctx context.Context, x, y sequence.Sequence, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)
	if err := checkSymbols(x, y); err != nil {
		return nil, fmt.Errorf("nw: Align: %w", err)
	}

	plan, err := wavefront.NewPlan(x.Len(), y.Len(), o.workers, o.strategy)
	if err != nil {
		return nil, fmt.Errorf("nw: Align: %w", err)
	}

	runID := uuid.NewString()
	log := o.logger.With(
		slog.String("run_id", runID),
		slog.Int("len_x", x.Len()),
		slog.Int("len_y", y.Len()),
		slog.Int("workers", plan.Workers()),
		slog.String("strategy", plan.Strategy().String()),
	)
	ctx, span := startAlignSpan(ctx, runID, x.Len(), y.Len(), plan.Workers(), plan.Strategy().String())
	defer span.End()

	var gridOpts []score.GridOption
	if o.observer != nil {
		gridOpts = append(gridOpts, score.WithObserver(o.observer))
	}
	grid, err := score.NewGrid(x.Len(), y.Len(), o.scoring.Gap, gridOpts...)
	if err != nil {
		endAlignSpan(span, 0, err)

		return nil, fmt.Errorf("nw: Align: %w", err)
	}

	fillCtx := ctx
	if o.timeout > 0 {
		var cancel context.CancelFunc
		fillCtx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	log.Debug("fill started", slog.Duration("timeout", o.timeout))
	xs, ys := x.Bytes(), y.Bytes()
	start := time.Now()
	err = wavefront.Run(fillCtx, plan, grid, func(i, j int) error {
		return fillCell(grid, xs, ys, o.scoring, i, j)
	})
	fillTime := time.Since(start)
	if err != nil {
		return nil, fail(ctx, log, span, grid, plan, fillTime, "fill failed", err)
	}

	start = time.Now()
	aln, err := Traceback(grid, x, y, o.scoring)
	tbTime := time.Since(start)
	if err != nil {
		return nil, fail(ctx, log, span, grid, plan, fillTime, "traceback failed", err)
	}
	final, err := grid.At(x.Len(), y.Len())
	if err != nil {
		return nil, fail(ctx, log, span, grid, plan, fillTime, "final cell unreadable", err)
	}

	cells := x.Len() * y.Len()
	endAlignSpan(span, final, nil)
	recordAlignMetrics(ctx, plan.Strategy().String(), fillTime, cells, true)
	log.Info("alignment complete",
		slog.Int("score", final),
		slog.Int("columns", aln.Len()),
		slog.Duration("fill", fillTime),
		slog.Duration("traceback", tbTime),
	)

	return &Result{
		RunID:         runID,
		Grid:          grid,
		Alignment:     aln,
		Score:         final,
		Scoring:       o.scoring,
		Workers:       plan.Workers(),
		Strategy:      plan.Strategy(),
		FillTime:      fillTime,
		TracebackTime: tbTime,
	}, nil
}

// fail reports a failed run on every channel and releases its grid.
func fail(ctx context.Context, log *slog.Logger, span trace.Span, grid *score.Grid,
	plan *wavefront.Plan, fill time.Duration, msg string, err error) error {
	grid.Release()
	endAlignSpan(span, 0, err)
	recordAlignMetrics(ctx, plan.Strategy().String(), fill, 0, false)
	log.Error(msg, slog.Duration("fill", fill), slog.Any("error", err))

	return fmt.Errorf("nw: Align: %w", err)
}

// fillCell computes (i,j) from its three neighbours and publishes it.
func fillCell(g *score.Grid, x, y []byte, s Scoring, i, j int) error {
	diag, err := g.Get(i-1, j-1)
	if err != nil {
		return err
	}
	up, err := g.Get(i-1, j)
	if err != nil {
		return err
	}
	left, err := g.Get(i, j-1)
	if err != nil {
		return err
	}

	return g.Publish(i, j, Evaluate(diag, up, left, x[i-1], y[j-1], s))
}

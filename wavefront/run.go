// SPDX-License-Identifier: MIT

package wavefront

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// CellFunc computes and publishes one interior cell. It may block on the
// cell's dependencies; it must not block on anything else.
type CellFunc func(i, j int) error

// Aborter is the part of the shared grid Run needs: a way to release every
// worker parked on an unpublished cell. *score.Grid implements it.
type Aborter interface {
	Abort(cause error)
}

// Run executes plan with exactly plan.Workers() goroutines, started once and
// joined before Run returns.
//
// Implementation:
//   - Stage 1: re-validate the plan; configuration errors return before any
//     goroutine starts.
//   - Stage 2: arm a context hook that aborts the grid when ctx ends, so a
//     worker parked on a cell that never arrives is released.
//   - Stage 3: fan out one errgroup goroutine per worker; the first worker
//     error aborts the grid and cancels its peers.
//   - Stage 4: join; report ctx deadline as ErrDeadline, otherwise the first
//     worker error. A ctx that ends after the last cell but before the hook
//     is disarmed has already aborted the grid, so it is reported as well.
//
// Errors:
//   - ErrBadPartition from Validate.
//   - ErrDeadline wrapping context.DeadlineExceeded on a liveness failure.
//   - context.Canceled if ctx was canceled.
//   - the first error returned by fn.
func Run(ctx context.Context, plan *Plan, grid Aborter, fn CellFunc) error {
	if plan == nil {
		return fmt.Errorf("%w: nil plan", ErrBadPartition)
	}
	if err := plan.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return ctxError(err)
	}
	if plan.workers == 0 {
		return nil
	}

	stop := context.AfterFunc(ctx, func() { grid.Abort(context.Cause(ctx)) })

	eg, egCtx := errgroup.WithContext(ctx)
	var cursor atomic.Int64
	cursor.Store(1)
	for w := 0; w < plan.workers; w++ {
		eg.Go(func() error {
			if err := plan.walk(egCtx, w, &cursor, fn); err != nil {
				grid.Abort(err)

				return err
			}

			return nil
		})
	}

	err := eg.Wait()
	if !stop() {
		// the hook ran: the grid is aborted even if every worker finished
		return ctxError(ctx.Err())
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxError(ctxErr)
		}

		return err
	}

	return nil
}

// ctxError maps a context error onto the package's liveness report.
func ctxError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrDeadline, err)
	}

	return err
}

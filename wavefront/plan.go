// SPDX-License-Identifier: MIT

package wavefront

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrDynamicPlan is returned by Plan.Cells for DiagonalCursor plans, whose
// cell ownership is only decided while running.
var ErrDynamicPlan = errors.New("wavefront: plan assigns cells dynamically")

// errStop ends a Cells walk early without reporting an error.
var errStop = errors.New("wavefront: stop")

// Range is an inclusive interval [Lo, Hi] of diagonal indices or row indices.
type Range struct {
	Lo, Hi int
}

// Len returns the number of indices in r.
func (r Range) Len() int { return r.Hi - r.Lo + 1 }

// Plan is a validated assignment of interior cells to workers.
//
//   - DiagonalRanges: ranges[w] is a diagonal interval; union == [2, lenX+lenY].
//   - RowBands:       ranges[w] is a row interval;      union == [1, lenX].
//   - DiagonalCursor: no ranges; diagonals are claimed at run time.
//
// A Plan is immutable and may be shared by concurrent Runs.
type Plan struct {
	lenX, lenY int
	strategy   Strategy
	workers    int
	ranges     []Range
}

// NewPlan partitions the (lenX×lenY) interior over at most workers workers.
//
// Implementation:
//   - Stage 1: validate inputs (ErrInvalidWorkers, ErrInvalidLength, ErrUnknownStrategy).
//   - Stage 2: clamp the worker count to the number of units (diagonals or
//     rows) so every static range is non-empty; an empty interior gets zero workers.
//   - Stage 3: split units into contiguous ranges. Diagonal ranges are
//     balanced by cell count since middle diagonals are longer.
//   - Stage 4: Validate, so a Plan that exists always covers every cell once.
//
// Complexity:
//   - Time O(lenX+lenY), Space O(workers).
func NewPlan(lenX, lenY, workers int, strategy Strategy) (*Plan, error) {
	if workers <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, workers)
	}
	if lenX < 0 || lenY < 0 {
		return nil, fmt.Errorf("%w: %d×%d", ErrInvalidLength, lenX, lenY)
	}
	if !strategy.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(strategy))
	}

	p := &Plan{lenX: lenX, lenY: lenY, strategy: strategy}
	p.workers = min(workers, p.units())
	switch strategy {
	case DiagonalRanges:
		p.ranges = splitDiagonals(lenX, lenY, p.workers)
	case RowBands:
		p.ranges = splitRows(lenX, p.workers)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Workers returns the effective (clamped) worker count.
func (p *Plan) Workers() int { return p.workers }

// Strategy returns the plan's strategy.
func (p *Plan) Strategy() Strategy { return p.strategy }

// Dims returns the sequence lengths the plan was built for.
func (p *Plan) Dims() (lenX, lenY int) { return p.lenX, p.lenY }

// Ranges returns a copy of the per-worker ranges (nil for DiagonalCursor).
func (p *Plan) Ranges() []Range {
	if p.ranges == nil {
		return nil
	}
	out := make([]Range, len(p.ranges))
	copy(out, p.ranges)

	return out
}

// units is the number of schedulable units: rows for RowBands, diagonals
// otherwise. An empty sequence leaves no interior cell and no unit.
func (p *Plan) units() int {
	if p.lenX == 0 || p.lenY == 0 {
		return 0
	}
	if p.strategy == RowBands {
		return p.lenX
	}

	return p.lenX + p.lenY - 1
}

// domain is the interval the static ranges must tile.
func (p *Plan) domain() Range {
	if p.strategy == RowBands {
		return Range{Lo: 1, Hi: p.lenX}
	}

	return Range{Lo: 2, Hi: p.lenX + p.lenY}
}

// Validate checks the exactly-once coverage invariant.
//
// Errors:
//   - ErrBadPartition wrapped with the first offending worker and index.
func (p *Plan) Validate() error {
	if p.strategy == DiagonalCursor || p.units() == 0 {
		if len(p.ranges) != 0 {
			return fmt.Errorf("%w: %s plan carries %d static ranges", ErrBadPartition, p.strategy, len(p.ranges))
		}
		if p.workers < 0 || p.workers > p.units() {
			return fmt.Errorf("%w: %d workers for %d units", ErrBadPartition, p.workers, p.units())
		}

		return nil
	}
	if p.workers <= 0 || len(p.ranges) != p.workers {
		return fmt.Errorf("%w: %d ranges for %d workers", ErrBadPartition, len(p.ranges), p.workers)
	}

	dom := p.domain()
	next := dom.Lo
	for w, r := range p.ranges {
		if r.Lo != next {
			return fmt.Errorf("%w: worker %d starts at %d, want %d", ErrBadPartition, w, r.Lo, next)
		}
		if r.Hi < r.Lo {
			return fmt.Errorf("%w: worker %d has empty range [%d,%d]", ErrBadPartition, w, r.Lo, r.Hi)
		}
		next = r.Hi + 1
	}
	if next != dom.Hi+1 {
		return fmt.Errorf("%w: ranges end at %d, want %d", ErrBadPartition, next-1, dom.Hi)
	}

	return nil
}

// Cells calls fn for every cell owned by worker w, in compute order.
// Returning false from fn stops the walk.
//
// Errors:
//   - ErrDynamicPlan for DiagonalCursor plans.
//   - ErrInvalidWorkers if w is not in [0, Workers()).
func (p *Plan) Cells(w int, fn func(i, j int) bool) error {
	if p.strategy == DiagonalCursor {
		return ErrDynamicPlan
	}
	if w < 0 || w >= p.workers {
		return fmt.Errorf("%w: worker %d of %d", ErrInvalidWorkers, w, p.workers)
	}
	err := p.walk(context.Background(), w, nil, func(i, j int) error {
		if !fn(i, j) {
			return errStop
		}

		return nil
	})
	if errors.Is(err, errStop) {
		return nil
	}

	return err
}

// walk drives worker w through its cells. cursor is only used by DiagonalCursor
// and must start at 1 (the first claim yields diagonal 2).
func (p *Plan) walk(ctx context.Context, w int, cursor *atomic.Int64, fn CellFunc) error {
	switch p.strategy {
	case DiagonalRanges:
		r := p.ranges[w]
		for k := r.Lo; k <= r.Hi; k++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := p.diagonal(k, 1, p.lenX, fn); err != nil {
				return err
			}
		}

	case RowBands:
		// The band's first diagonal is (Lo,1), its last (Hi,lenY).
		r := p.ranges[w]
		for k := r.Lo + 1; k <= r.Hi+p.lenY; k++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := p.diagonal(k, r.Lo, r.Hi, fn); err != nil {
				return err
			}
		}

	case DiagonalCursor:
		last := p.lenX + p.lenY
		for {
			k := int(cursor.Add(1))
			if k > last {
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := p.diagonal(k, 1, p.lenX, fn); err != nil {
				return err
			}
		}
	}

	return nil
}

// diagonal visits the cells of diagonal k with rows in [rowLo,rowHi],
// i ascending and j = k-i within [1,lenY].
func (p *Plan) diagonal(k, rowLo, rowHi int, fn CellFunc) error {
	lo := max(rowLo, k-p.lenY)
	hi := min(rowHi, k-1)
	for i := lo; i <= hi; i++ {
		if err := fn(i, k-i); err != nil {
			return err
		}
	}

	return nil
}

// cellsOn returns the number of interior cells on diagonal k.
func cellsOn(k, lenX, lenY int) int {
	return min(lenX, k-1) - max(1, k-lenY) + 1
}

// splitDiagonals tiles [2, lenX+lenY] with workers contiguous ranges whose
// cell counts are as even as the diagonal granularity allows. Each worker
// leaves at least one diagonal for every worker after it.
func splitDiagonals(lenX, lenY, workers int) []Range {
	if workers == 0 {
		return nil
	}
	first, last := 2, lenX+lenY
	total := lenX * lenY
	ranges := make([]Range, 0, workers)

	lo, cum := first, 0
	for w := 0; w < workers; w++ {
		limit := last - (workers - w - 1)
		target := total * (w + 1) / workers
		hi := lo
		cum += cellsOn(hi, lenX, lenY)
		for hi < limit && cum < target {
			hi++
			cum += cellsOn(hi, lenX, lenY)
		}
		ranges = append(ranges, Range{Lo: lo, Hi: hi})
		lo = hi + 1
	}

	return ranges
}

// splitRows tiles [1, lenX] with workers bands; the first lenX%workers bands
// get one extra row.
func splitRows(lenX, workers int) []Range {
	if workers == 0 {
		return nil
	}
	ranges := make([]Range, 0, workers)
	size, extra := lenX/workers, lenX%workers

	lo := 1
	for w := 0; w < workers; w++ {
		n := size
		if w < extra {
			n++
		}
		ranges = append(ranges, Range{Lo: lo, Hi: lo + n - 1})
		lo += n
	}

	return ranges
}

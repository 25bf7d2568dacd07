// SPDX-License-Identifier: MIT

// Package wavefront schedules the interior cells of a DP grid over a fixed
// pool of workers so that no cell is attempted before its dependencies.
//
// 🚀 Anti-diagonals:
//
//	Cell (i,j) depends on (i-1,j-1), (i-1,j) and (i,j-1). Grouping cells by
//	k = i+j gives diagonals 2 … lenX+lenY; diagonal k only depends on k-1 and
//	k-2, and cells inside one diagonal are independent of each other.
//
// ✨ Strategies:
//   - DiagonalRanges (default): each worker owns a contiguous inclusive range
//     of diagonals, balanced by cell count, and walks it in increasing k.
//   - RowBands: each worker owns a contiguous band of rows and sweeps every
//     diagonal over its band, trailing the band above it.
//   - DiagonalCursor: workers claim the next diagonal from a shared atomic
//     cursor until the range is exhausted.
//
// In every strategy a worker walks a diagonal with i ascending and j = k-i.
// Blocking reads on the grid (not barriers) enforce the dependency order.
//
// ⚙️ Guarantees:
//
//	NewPlan validates that the per-worker ranges cover the diagonal (or row)
//	interval exactly once: no gaps, no overlap. A cell that no worker owns
//	would deadlock its readers, so the invariant is checked before any worker
//	starts rather than discovered at runtime.
//
// Usage:
//
//	plan, err := wavefront.NewPlan(lenX, lenY, 4, wavefront.DiagonalRanges)
//	err = wavefront.Run(ctx, plan, grid, func(i, j int) error { ... })
package wavefront

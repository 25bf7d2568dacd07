// SPDX-License-Identifier: MIT

// Package score holds the alignment score matrix shared by wavefront workers.
//
// 🚀 What is a Grid?
//
//	A Grid is an (n+1)×(m+1) matrix of signed scores stored in one flat
//	row-major buffer (offset = i*cols + j). Row 0 and column 0 hold the
//	boundary values k*gap and are published by NewGrid. Every interior cell
//	is write-once: exactly one Publish, then read-only forever.
//
// ✨ Cell synchronization:
//   - Get(i,j) blocks until (i,j) is published. The fast path is one atomic
//     load of the cell's ready flag.
//   - The slow path parks on the gate of the cell's anti-diagonal k=i+j, so
//     a Grid owns O(n+m) mutex/cond pairs instead of one per cell.
//   - Publish(i,j,v) stores v, release-stores the ready flag, and wakes the
//     gate only when a reader is parked there.
//   - Abort(cause) wakes every parked reader; Get then fails with ErrAborted.
//
// ⚙️ Usage:
//
//	g, err := score.NewGrid(len(x), len(y), -2)
//	// workers:
//	diag, err := g.Get(i-1, j-1)
//	err = g.Publish(i, j, v)
//	// after all workers joined:
//	final, err := g.At(g.Rows()-1, g.Cols()-1)
//
// Complexity:
//
//   - NewGrid: O(n·m) time and memory.
//   - Get/Publish/At: O(1) when no reader has to park.
package score

// SPDX-License-Identifier: MIT

// Package score - write-once score grid with per-anti-diagonal wait gates.
//
// Purpose:
//   - Flat row-major storage (offset i*cols + j) shared by all fill workers.
//   - Publication contract: a value stored by Publish is visible to every Get
//     that observes the cell's ready flag (atomic release/acquire).
//   - Blocking reads park on the gate of anti-diagonal k=i+j. A cell on
//     diagonal k is only ever awaited by cells on k+1 and k+2, so one gate per
//     diagonal is enough and keeps sync objects at O(rows+cols).
//
// Complexity quicksheet:
//   - NewGrid: O(r*c); Get/Publish/At: O(1) amortized; Abort: O(r+c).

package score

import (
	"sync"
	"sync/atomic"
)

// gate is the wait point of one anti-diagonal.
//   - waiters counts readers parked (or about to park) on the gate; Publish
//     reads it to skip the mutex when nobody waits.
type gate struct {
	mu      sync.Mutex
	cond    *sync.Cond
	waiters atomic.Int32
}

// Grid is the score matrix of one alignment run.
type Grid struct {
	rows, cols int           // lenX+1, lenY+1
	gap        int           // boundary step used by NewGrid
	buf        *buffers      // pooled storage; nil after Release
	data       []int         // len == rows*cols, row-major
	ready      []atomic.Bool // ready[idx] is set once data[idx] is final
	gates      []gate        // one per anti-diagonal k in [0, rows+cols-2]

	aborted atomic.Bool
	cause   atomic.Pointer[error]
	obs     Observer
}

// GridOption configures a Grid at construction time.
type GridOption func(*Grid)

// WithObserver installs o to receive publish/read events. A nil o is ignored.
func WithObserver(o Observer) GridOption {
	return func(g *Grid) {
		if o != nil {
			g.obs = o
		}
	}
}

// NewGrid allocates a (lenX+1)×(lenY+1) grid and publishes its boundary:
// S[i][0] = i*gap and S[0][j] = j*gap.
//
// Zero lengths are legal and give a single boundary row or column.
//
// Errors:
//   - ErrInvalidDimensions if lenX or lenY is negative.
func NewGrid(lenX, lenY, gap int, opts ...GridOption) (*Grid, error) {
	if lenX < 0 || lenY < 0 {
		return nil, ErrInvalidDimensions
	}
	rows, cols := lenX+1, lenY+1
	buf := acquireBuffers(rows * cols)
	g := &Grid{
		rows:  rows,
		cols:  cols,
		gap:   gap,
		buf:   buf,
		data:  buf.data,
		ready: buf.ready,
		gates: make([]gate, rows+cols-1),
	}
	for k := range g.gates {
		g.gates[k].cond = sync.NewCond(&g.gates[k].mu)
	}
	for _, opt := range opts {
		opt(g)
	}

	// Boundary is written single-threaded before any worker can see the grid.
	for i := 0; i < rows; i++ {
		g.data[i*cols] = i * gap
		g.ready[i*cols].Store(true)
	}
	for j := 1; j < cols; j++ {
		g.data[j] = j * gap
		g.ready[j].Store(true)
	}

	return g, nil
}

// Rows returns lenX+1.
func (g *Grid) Rows() int { return g.rows }

// Cols returns lenY+1.
func (g *Grid) Cols() int { return g.cols }

// Gap returns the boundary step the grid was built with.
func (g *Grid) Gap() int { return g.gap }

// index maps (i,j) to the flat offset or reports ErrOutOfRange.
func (g *Grid) index(i, j int) (int, error) {
	if i < 0 || i >= g.rows || j < 0 || j >= g.cols {
		return 0, ErrOutOfRange
	}

	return i*g.cols + j, nil
}

// Get returns the score of (i,j), blocking until it is published.
//
// Errors:
//   - ErrOutOfRange for coordinates outside the grid.
//   - ErrAborted (wrapping the abort cause) if the grid was aborted while the
//     cell was still unpublished.
func (g *Grid) Get(i, j int) (int, error) {
	idx, err := g.index(i, j)
	if err != nil {
		return 0, gridErrorf(ctxGet, i, j, err)
	}
	if !g.ready[idx].Load() {
		if err = g.await(i+j, idx); err != nil {
			return 0, gridErrorf(ctxGet, i, j, err)
		}
	}
	v := g.data[idx]
	if g.obs != nil {
		g.obs.OnRead(i, j, v)
	}

	return v, nil
}

// await parks on gate k until ready[idx] is set or the grid is aborted.
// The waiter is registered before the ready flag is re-checked, so a
// concurrent Publish either sees the waiter or the waiter sees the flag.
func (g *Grid) await(k, idx int) error {
	gt := &g.gates[k]
	gt.mu.Lock()
	defer gt.mu.Unlock()

	gt.waiters.Add(1)
	defer gt.waiters.Add(-1)
	for !g.ready[idx].Load() {
		if g.aborted.Load() {
			return g.abortErr()
		}
		gt.cond.Wait()
	}

	return nil
}

// Publish stores v into the interior cell (i,j) and wakes its readers.
//
// Errors:
//   - ErrOutOfRange, ErrBoundaryCell, ErrAlreadyPublished.
//
// Notes:
//   - Write-once is checked, not arbitrated: two concurrent writers to one
//     cell is a scheduling bug that the wavefront plan rules out.
func (g *Grid) Publish(i, j, v int) error {
	idx, err := g.index(i, j)
	if err != nil {
		return gridErrorf(ctxPublish, i, j, err)
	}
	if i == 0 || j == 0 {
		return gridErrorf(ctxPublish, i, j, ErrBoundaryCell)
	}
	if g.ready[idx].Load() {
		return gridErrorf(ctxPublish, i, j, ErrAlreadyPublished)
	}

	g.data[idx] = v
	if g.obs != nil {
		g.obs.OnPublish(i, j, v)
	}
	g.ready[idx].Store(true)

	gt := &g.gates[i+j]
	if gt.waiters.Load() > 0 {
		gt.mu.Lock()
		gt.cond.Broadcast()
		gt.mu.Unlock()
	}

	return nil
}

// At is the non-blocking read used once the fill has joined.
//
// Errors:
//   - ErrOutOfRange, ErrUnpublished.
func (g *Grid) At(i, j int) (int, error) {
	idx, err := g.index(i, j)
	if err != nil {
		return 0, gridErrorf(ctxAt, i, j, err)
	}
	if !g.ready[idx].Load() {
		return 0, gridErrorf(ctxAt, i, j, ErrUnpublished)
	}

	return g.data[idx], nil
}

// Published reports whether (i,j) holds its final value.
// Out-of-range coordinates report false.
func (g *Grid) Published(i, j int) bool {
	idx, err := g.index(i, j)
	if err != nil {
		return false
	}

	return g.ready[idx].Load()
}

// Complete reports whether every cell is published.
func (g *Grid) Complete() bool {
	for idx := range g.ready {
		if !g.ready[idx].Load() {
			return false
		}
	}

	return true
}

// Abort releases every parked reader. Readers of unpublished cells, now and
// later, get ErrAborted wrapping cause. Only the first cause is kept.
func (g *Grid) Abort(cause error) {
	if cause == nil {
		cause = ErrAborted
	}
	if !g.cause.CompareAndSwap(nil, &cause) {
		return
	}
	g.aborted.Store(true)
	for k := range g.gates {
		gt := &g.gates[k]
		gt.mu.Lock()
		gt.cond.Broadcast()
		gt.mu.Unlock()
	}
}

// Aborted reports whether Abort was called.
func (g *Grid) Aborted() bool { return g.aborted.Load() }

func (g *Grid) abortErr() error {
	cause := *g.cause.Load()
	if cause == ErrAborted {
		return ErrAborted
	}

	return &abortError{cause: cause}
}

// abortError matches both ErrAborted and the abort cause under errors.Is.
type abortError struct{ cause error }

func (e *abortError) Error() string   { return ErrAborted.Error() + ": " + e.cause.Error() }
func (e *abortError) Unwrap() []error { return []error{ErrAborted, e.cause} }

// Row returns a copy of row i with unpublished cells reported as zero.
func (g *Grid) Row(i int) ([]int, error) {
	if i < 0 || i >= g.rows {
		return nil, gridErrorf(ctxAt, i, 0, ErrOutOfRange)
	}
	out := make([]int, g.cols)
	copy(out, g.data[i*g.cols:(i+1)*g.cols])

	return out, nil
}

// Values returns a row-by-row copy of the whole grid.
func (g *Grid) Values() [][]int {
	out := make([][]int, g.rows)
	for i := range out {
		out[i] = make([]int, g.cols)
		copy(out[i], g.data[i*g.cols:(i+1)*g.cols])
	}

	return out
}

// Release returns the grid storage to the shared pool. The grid must not be
// used afterwards; calling Release twice is a no-op.
func (g *Grid) Release() {
	if g.buf == nil {
		return
	}
	releaseBuffers(g.buf)
	g.buf, g.data, g.ready = nil, nil, nil
	g.rows, g.cols = 0, 0
}

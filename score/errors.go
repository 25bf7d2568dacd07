// SPDX-License-Identifier: MIT

package score

import (
	"errors"
	"fmt"
)

// Sentinel errors. Branch with errors.Is; call sites attach coordinates with %w.
var (
	// ErrInvalidDimensions indicates a negative sequence length.
	ErrInvalidDimensions = errors.New("score: invalid grid dimensions")

	// ErrOutOfRange indicates coordinates outside [0,rows)×[0,cols).
	ErrOutOfRange = errors.New("score: index out of range")

	// ErrAlreadyPublished indicates a second Publish on a write-once cell.
	ErrAlreadyPublished = errors.New("score: cell already published")

	// ErrBoundaryCell indicates a Publish on row 0 or column 0. Boundary
	// cells are published by NewGrid and never change.
	ErrBoundaryCell = errors.New("score: boundary cell is read-only")

	// ErrUnpublished indicates a non-blocking read of a cell nobody published.
	ErrUnpublished = errors.New("score: cell not published")

	// ErrAborted is returned by Get after Abort; the abort cause is wrapped too.
	ErrAborted = errors.New("score: grid aborted")
)

// method tags used in error wrappers
const (
	ctxGet     = "Get"
	ctxPublish = "Publish"
	ctxAt      = "At"
)

// gridErrorf wraps err with the Grid method and the cell coordinates.
func gridErrorf(method string, i, j int, err error) error {
	return fmt.Errorf("Grid.%s(%d,%d): %w", method, i, j, err)
}

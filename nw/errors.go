// SPDX-License-Identifier: MIT

package nw

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/wavealign/sequence"
)

var (
	// ErrIntegrity indicates a score matrix that no recurrence branch explains
	// at some cell. It means the fill and the recurrence disagree; the run's
	// result is discarded.
	ErrIntegrity = errors.New("nw: score matrix inconsistent with recurrence")

	// ErrShapeMismatch indicates a grid whose dimensions do not match the
	// sequences handed to Traceback.
	ErrShapeMismatch = errors.New("nw: grid shape does not match sequences")

	// ErrGapInInput indicates an input sequence holding GapSymbol, which
	// would make the aligned rows ambiguous.
	ErrGapInInput = errors.New("nw: input sequence contains the gap symbol")
)

// checkSymbols rejects inputs that contain GapSymbol.
func checkSymbols(x, y sequence.Sequence) error {
	if at := x.IndexByte(GapSymbol); at >= 0 {
		return fmt.Errorf("%w: x[%d]", ErrGapInInput, at)
	}
	if at := y.IndexByte(GapSymbol); at >= 0 {
		return fmt.Errorf("%w: y[%d]", ErrGapInInput, at)
	}

	return nil
}

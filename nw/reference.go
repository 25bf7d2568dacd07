// SPDX-License-Identifier: MIT

package nw

import (
	"fmt"

	"github.com/katalvlaran/wavealign/score"
	"github.com/katalvlaran/wavealign/sequence"
)

// FillSequential fills a grid row by row on the calling goroutine. It is the
// reference the parallel fill is checked against; every Get it issues is
// already published, so it never blocks.
//
// Complexity: O(lenX·lenY) time and memory.
func FillSequential(x, y sequence.Sequence, s Scoring) (*score.Grid, error) {
	g, err := score.NewGrid(x.Len(), y.Len(), s.Gap)
	if err != nil {
		return nil, fmt.Errorf("nw: FillSequential: %w", err)
	}
	xs, ys := x.Bytes(), y.Bytes()
	for i := 1; i <= len(xs); i++ {
		for j := 1; j <= len(ys); j++ {
			if err = fillCell(g, xs, ys, s, i, j); err != nil {
				return nil, fmt.Errorf("nw: FillSequential: %w", err)
			}
		}
	}

	return g, nil
}

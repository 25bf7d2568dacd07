// SPDX-License-Identifier: MIT

package nw

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/wavealign/score"
	"github.com/katalvlaran/wavealign/sequence"
)

// GapSymbol marks a gap in an aligned sequence.
const GapSymbol = '-'

// Alignment is a pair of equal-length gapped sequences.
type Alignment struct {
	X []byte
	Y []byte
}

// Len returns the alignment length (columns).
func (a Alignment) Len() int { return len(a.X) }

// String renders the two rows on separate lines.
func (a Alignment) String() string { return string(a.X) + "\n" + string(a.Y) }

// Score recomputes the alignment's score column by column under s.
func (a Alignment) Score(s Scoring) int {
	total := 0
	for c := range a.X {
		if a.X[c] == GapSymbol || a.Y[c] == GapSymbol {
			total += s.Gap

			continue
		}
		total += s.Sub(a.X[c], a.Y[c])
	}

	return total
}

// Gaps returns the number of gap columns.
func (a Alignment) Gaps() int {
	n := 0
	for c := range a.X {
		if a.X[c] == GapSymbol || a.Y[c] == GapSymbol {
			n++
		}
	}

	return n
}

// Traceback recovers one optimal alignment from a completed grid.
//
// Algorithm:
//   - Start at (lenX,lenY); stop at (0,0).
//   - Diagonal if i>0, j>0 and S[i][j] == S[i-1][j-1] + sub(X[i-1],Y[j-1]).
//   - else Up if i>0 and S[i][j] == S[i-1][j] + gap.
//   - else Left, which must satisfy j>0 and S[i][j] == S[i][j-1] + gap.
//   - Columns are emitted back-to-front and reversed at the end.
//
// It must only run after every fill worker joined: it uses the
// non-blocking Grid.At.
//
// Errors:
//   - ErrShapeMismatch if grid is not (lenX+1)×(lenY+1).
//   - ErrGapInInput if x or y holds GapSymbol.
//   - ErrIntegrity (with coordinates) if no branch explains a cell.
//   - score.ErrUnpublished if the grid is incomplete.
//
// Complexity: O(lenX+lenY) time and memory.
func Traceback(g *score.Grid, x, y sequence.Sequence, s Scoring) (Alignment, error) {
	if g.Rows() != x.Len()+1 || g.Cols() != y.Len()+1 {
		return Alignment{}, fmt.Errorf("%w: grid %d×%d, sequences %d×%d",
			ErrShapeMismatch, g.Rows(), g.Cols(), x.Len(), y.Len())
	}
	if err := checkSymbols(x, y); err != nil {
		return Alignment{}, err
	}

	ax := make([]byte, 0, x.Len()+y.Len())
	ay := make([]byte, 0, x.Len()+y.Len())
	i, j := x.Len(), y.Len()
	for i > 0 || j > 0 {
		cur, err := g.At(i, j)
		if err != nil {
			return Alignment{}, err
		}
		move, err := predecessor(g, x, y, s, i, j, cur)
		if err != nil {
			return Alignment{}, err
		}
		switch move {
		case Diagonal:
			ax = append(ax, x.At(i-1))
			ay = append(ay, y.At(j-1))
			i, j = i-1, j-1
		case Up:
			ax = append(ax, x.At(i-1))
			ay = append(ay, GapSymbol)
			i--
		case Left:
			ax = append(ax, GapSymbol)
			ay = append(ay, y.At(j-1))
			j--
		}
	}
	slices.Reverse(ax)
	slices.Reverse(ay)

	return Alignment{X: ax, Y: ay}, nil
}

// predecessor picks the move that explains cur at (i,j), in tie order.
func predecessor(g *score.Grid, x, y sequence.Sequence, s Scoring, i, j, cur int) (Move, error) {
	if i > 0 && j > 0 {
		diag, err := g.At(i-1, j-1)
		if err != nil {
			return None, err
		}
		if cur == diag+s.Sub(x.At(i-1), y.At(j-1)) {
			return Diagonal, nil
		}
	}
	if i > 0 {
		up, err := g.At(i-1, j)
		if err != nil {
			return None, err
		}
		if cur == up+s.Gap {
			return Up, nil
		}
	}
	if j > 0 {
		left, err := g.At(i, j-1)
		if err != nil {
			return None, err
		}
		if cur == left+s.Gap {
			return Left, nil
		}
	}

	return None, fmt.Errorf("%w: no predecessor explains S[%d][%d]=%d", ErrIntegrity, i, j, cur)
}

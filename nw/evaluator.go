// SPDX-License-Identifier: MIT

package nw

// Scoring defaults.
const (
	DefaultMatch    = 1
	DefaultMismatch = -1
	DefaultGap      = -2
)

// Scoring is the linear cost model of one run.
type Scoring struct {
	Match    int // added on equal symbols
	Mismatch int // added on different symbols
	Gap      int // added per gap symbol; also the boundary step
}

// DefaultScoring returns +1 / −1 / −2.
func DefaultScoring() Scoring {
	return Scoring{Match: DefaultMatch, Mismatch: DefaultMismatch, Gap: DefaultGap}
}

// Sub returns the substitution score of aligning a against b.
func (s Scoring) Sub(a, b byte) int {
	if a == b {
		return s.Match
	}

	return s.Mismatch
}

// Move names the predecessor a cell's score came from.
type Move uint8

const (
	// None is the origin (0,0).
	None Move = iota
	// Diagonal aligns X[i-1] with Y[j-1].
	Diagonal
	// Up aligns X[i-1] with a gap.
	Up
	// Left aligns a gap with Y[j-1].
	Left
)

// String returns an arrow for the move.
func (m Move) String() string {
	switch m {
	case Diagonal:
		return "↘"
	case Up:
		return "↓"
	case Left:
		return "→"
	case None:
		return "×"
	}

	return "?"
}

// Choose evaluates the recurrence for one cell from its three published
// neighbours and returns the winning score and move. Ties prefer Diagonal,
// then Up, then Left.
func Choose(diag, up, left int, a, b byte, s Scoring) (int, Move) {
	best, move := diag+s.Sub(a, b), Diagonal
	if v := up + s.Gap; v > best {
		best, move = v, Up
	}
	if v := left + s.Gap; v > best {
		best, move = v, Left
	}

	return best, move
}

// Evaluate is Choose without the move: the pure cell recurrence.
func Evaluate(diag, up, left int, a, b byte, s Scoring) int {
	v, _ := Choose(diag, up, left, a, b, s)

	return v
}

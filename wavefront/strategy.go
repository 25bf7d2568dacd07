// SPDX-License-Identifier: MIT

package wavefront

import (
	"fmt"
	"strings"
)

// Strategy selects how interior cells are distributed over workers.
type Strategy int

const (
	// DiagonalRanges gives each worker one contiguous range of anti-diagonals.
	DiagonalRanges Strategy = iota

	// RowBands gives each worker one contiguous band of rows.
	RowBands

	// DiagonalCursor lets workers claim diagonals one at a time.
	DiagonalCursor
)

// DefaultStrategy is the strategy used when none is configured.
const DefaultStrategy = DiagonalRanges

var strategyNames = [...]string{
	DiagonalRanges: "diagonals",
	RowBands:       "rows",
	DiagonalCursor: "cursor",
}

// String returns the flag/config name of s.
func (s Strategy) String() string {
	if !s.valid() {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}

	return strategyNames[s]
}

func (s Strategy) valid() bool {
	return s >= DiagonalRanges && s <= DiagonalCursor
}

// ParseStrategy maps a name ("diagonals", "rows", "cursor") to a Strategy.
// Matching is case-insensitive; the empty string yields DefaultStrategy.
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultStrategy, nil
	}
	for s, n := range strategyNames {
		if n == name {
			return Strategy(s), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

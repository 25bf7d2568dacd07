package wavefront_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/wavealign/wavefront"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var staticStrategies = []wavefront.Strategy{wavefront.DiagonalRanges, wavefront.RowBands}

// TestNewPlan_InvalidInputs ensures configuration errors fail fast.
func TestNewPlan_InvalidInputs(t *testing.T) {
	_, err := wavefront.NewPlan(3, 3, 0, wavefront.DiagonalRanges)
	assert.ErrorIs(t, err, wavefront.ErrInvalidWorkers)

	_, err = wavefront.NewPlan(3, 3, -4, wavefront.RowBands)
	assert.ErrorIs(t, err, wavefront.ErrInvalidWorkers)

	_, err = wavefront.NewPlan(-1, 3, 2, wavefront.DiagonalRanges)
	assert.ErrorIs(t, err, wavefront.ErrInvalidLength)

	_, err = wavefront.NewPlan(3, 3, 2, wavefront.Strategy(42))
	assert.ErrorIs(t, err, wavefront.ErrUnknownStrategy)
}

// TestNewPlan_ClampsWorkers checks that no worker is left with an empty range.
func TestNewPlan_ClampsWorkers(t *testing.T) {
	p, err := wavefront.NewPlan(2, 2, 8, wavefront.DiagonalRanges)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Workers(), "2×2 interior has diagonals 2,3,4")
	assert.Equal(t, []wavefront.Range{{2, 2}, {3, 3}, {4, 4}}, p.Ranges())

	p, err = wavefront.NewPlan(2, 5, 8, wavefront.RowBands)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Workers())
	assert.Equal(t, []wavefront.Range{{1, 1}, {2, 2}}, p.Ranges())

	p, err = wavefront.NewPlan(1, 1, 3, wavefront.DiagonalCursor)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Workers())
	assert.Nil(t, p.Ranges())
}

// TestNewPlan_EmptyInterior covers zero-length sequences: no cells, no workers.
func TestNewPlan_EmptyInterior(t *testing.T) {
	for _, s := range []wavefront.Strategy{wavefront.DiagonalRanges, wavefront.RowBands, wavefront.DiagonalCursor} {
		p, err := wavefront.NewPlan(0, 7, 4, s)
		require.NoError(t, err, s.String())
		assert.Equal(t, 0, p.Workers())
		assert.Empty(t, p.Ranges())
		lenX, lenY := p.Dims()
		assert.Equal(t, 0, lenX)
		assert.Equal(t, 7, lenY)
	}
}

// TestNewPlan_DiagonalBalance checks that diagonal ranges are balanced by cells:
// on a square grid the two halves of a 2-worker plan split at the main anti-diagonal.
func TestNewPlan_DiagonalBalance(t *testing.T) {
	p, err := wavefront.NewPlan(10, 10, 2, wavefront.DiagonalRanges)
	require.NoError(t, err)
	r := p.Ranges()
	require.Len(t, r, 2)

	count := func(rg wavefront.Range) int {
		n := 0
		for k := rg.Lo; k <= rg.Hi; k++ {
			n += wavefront.CellsOnForTest(k, 10, 10)
		}

		return n
	}
	assert.Equal(t, 100, count(r[0])+count(r[1]))
	assert.InDelta(t, 50, count(r[0]), 11, "first half holds about half the cells")
}

// TestRowBands_Split verifies the remainder rows go to the first bands.
func TestRowBands_Split(t *testing.T) {
	p, err := wavefront.NewPlan(10, 3, 3, wavefront.RowBands)
	require.NoError(t, err)
	assert.Equal(t, []wavefront.Range{{1, 4}, {5, 7}, {8, 10}}, p.Ranges())
	assert.Equal(t, 4, p.Ranges()[0].Len())
}

// TestPlan_CoverageProperty is the randomized exactly-once property: for any
// (lenX, lenY, workers) every interior cell is owned by exactly one worker, the
// static ranges tile their domain, and each worker visits its cells in
// dependency order (diagonal ascending, then row ascending).
func TestPlan_CoverageProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(20241017))
	for trial := 0; trial < 300; trial++ {
		lenX := rng.Intn(40)
		lenY := rng.Intn(40)
		workers := 1 + rng.Intn(16)
		for _, s := range staticStrategies {
			p, err := wavefront.NewPlan(lenX, lenY, workers, s)
			require.NoError(t, err)
			require.NoError(t, p.Validate())

			seen := make([]int, (lenX+1)*(lenY+1))
			for w := 0; w < p.Workers(); w++ {
				prevK, prevI := 0, 0
				err := p.Cells(w, func(i, j int) bool {
					require.True(t, i >= 1 && i <= lenX && j >= 1 && j <= lenY, "cell (%d,%d) outside interior", i, j)
					seen[i*(lenY+1)+j]++
					k := i + j
					require.True(t, k > prevK || (k == prevK && i > prevI),
						"worker %d visits (%d,%d) after k=%d,i=%d", w, i, j, prevK, prevI)
					prevK, prevI = k, i

					return true
				})
				require.NoError(t, err)
			}
			for i := 1; i <= lenX; i++ {
				for j := 1; j <= lenY; j++ {
					require.Equal(t, 1, seen[i*(lenY+1)+j],
						"%s lenX=%d lenY=%d workers=%d cell (%d,%d)", s, lenX, lenY, workers, i, j)
				}
			}

			if p.Workers() == 0 {
				continue
			}
			ranges := p.Ranges()
			lo, hi := 2, lenX+lenY
			if s == wavefront.RowBands {
				lo, hi = 1, lenX
			}
			assert.Equal(t, lo, ranges[0].Lo)
			assert.Equal(t, hi, ranges[len(ranges)-1].Hi)
			for w := 1; w < len(ranges); w++ {
				assert.Equal(t, ranges[w-1].Hi+1, ranges[w].Lo, "ranges must be contiguous")
			}
		}
	}
}

// TestPlan_CellsStopAndErrors covers early stop and invalid calls.
func TestPlan_CellsStopAndErrors(t *testing.T) {
	p, err := wavefront.NewPlan(4, 4, 2, wavefront.DiagonalRanges)
	require.NoError(t, err)

	n := 0
	require.NoError(t, p.Cells(0, func(i, j int) bool {
		n++

		return n < 2
	}))
	assert.Equal(t, 2, n)

	assert.ErrorIs(t, p.Cells(2, func(int, int) bool { return true }), wavefront.ErrInvalidWorkers)

	c, err := wavefront.NewPlan(4, 4, 2, wavefront.DiagonalCursor)
	require.NoError(t, err)
	assert.ErrorIs(t, c.Cells(0, func(int, int) bool { return true }), wavefront.ErrDynamicPlan)
}

// TestValidate_BadPartitions feeds hand-built plans that violate the tiling.
func TestValidate_BadPartitions(t *testing.T) {
	cases := []struct {
		name string
		plan *wavefront.Plan
	}{
		{"gap", wavefront.NewPlanForTest(3, 3, 2, wavefront.DiagonalRanges, []wavefront.Range{{2, 3}, {5, 6}})},
		{"overlap", wavefront.NewPlanForTest(3, 3, 2, wavefront.DiagonalRanges, []wavefront.Range{{2, 4}, {4, 6}})},
		{"short", wavefront.NewPlanForTest(3, 3, 2, wavefront.DiagonalRanges, []wavefront.Range{{2, 3}, {4, 5}})},
		{"late start", wavefront.NewPlanForTest(3, 3, 1, wavefront.DiagonalRanges, []wavefront.Range{{3, 6}})},
		{"empty range", wavefront.NewPlanForTest(3, 3, 2, wavefront.DiagonalRanges, []wavefront.Range{{2, 6}, {7, 6}})},
		{"count mismatch", wavefront.NewPlanForTest(3, 3, 3, wavefront.DiagonalRanges, []wavefront.Range{{2, 6}})},
		{"row overrun", wavefront.NewPlanForTest(3, 3, 1, wavefront.RowBands, []wavefront.Range{{1, 4}})},
		{"cursor with ranges", wavefront.NewPlanForTest(3, 3, 1, wavefront.DiagonalCursor, []wavefront.Range{{2, 6}})},
		{"too many workers", wavefront.NewPlanForTest(1, 1, 4, wavefront.DiagonalCursor, nil)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.plan.Validate(), wavefront.ErrBadPartition)
		})
	}
}

// TestParseStrategy maps names both ways.
func TestParseStrategy(t *testing.T) {
	for _, s := range []wavefront.Strategy{wavefront.DiagonalRanges, wavefront.RowBands, wavefront.DiagonalCursor} {
		got, err := wavefront.ParseStrategy(" " + s.String() + " ")
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	got, err := wavefront.ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, wavefront.DefaultStrategy, got)

	got, err = wavefront.ParseStrategy("ROWS")
	require.NoError(t, err)
	assert.Equal(t, wavefront.RowBands, got)

	_, err = wavefront.ParseStrategy("spiral")
	assert.ErrorIs(t, err, wavefront.ErrUnknownStrategy)
	assert.Equal(t, "Strategy(9)", wavefront.Strategy(9).String())
}

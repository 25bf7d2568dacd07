package nw_test

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/katalvlaran/wavealign/nw"
	"github.com/katalvlaran/wavealign/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orderChecker flags any read of an interior cell that was not yet
// published, or that returned a value other than the published one.
type orderChecker struct {
	cols      int
	published []atomic.Bool
	values    []atomic.Int64
	reads     atomic.Int64

	mu         sync.Mutex
	violations []string
}

func newOrderChecker(lenX, lenY int) *orderChecker {
	n := (lenX + 1) * (lenY + 1)

	return &orderChecker{
		cols:      lenY + 1,
		published: make([]atomic.Bool, n),
		values:    make([]atomic.Int64, n),
	}
}

func (c *orderChecker) OnPublish(i, j, v int) {
	idx := i*c.cols + j
	c.values[idx].Store(int64(v))
	c.published[idx].Store(true)
}

func (c *orderChecker) OnRead(i, j, v int) {
	c.reads.Add(1)
	if i == 0 || j == 0 {
		return
	}
	idx := i*c.cols + j
	switch {
	case !c.published[idx].Load():
		c.report(fmt.Sprintf("read (%d,%d) before publish", i, j))
	case c.values[idx].Load() != int64(v):
		c.report(fmt.Sprintf("read (%d,%d)=%d, published %d", i, j, v, c.values[idx].Load()))
	}
}

func (c *orderChecker) report(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.violations = append(c.violations, msg)
}

// TestAlign_NoReadBeforePublish stresses the fill with more workers than
// cores and checks the publication order on every read.
func TestAlign_NoReadBeforePublish(t *testing.T) {
	if testing.Short() {
		t.Skip("stress test")
	}
	rng := rand.New(rand.NewSource(99))

	for trial := 0; trial < 40; trial++ {
		lenX, lenY := 1+rng.Intn(60), 1+rng.Intn(60)
		x, err := sequence.Generate(lenX, sequence.WithRand(rng))
		require.NoError(t, err)
		y, err := sequence.Generate(lenY, sequence.WithRand(rng))
		require.NoError(t, err)
		st := allStrategies[trial%len(allStrategies)]

		chk := newOrderChecker(lenX, lenY)
		res, err := nw.Align(context.Background(), x, y,
			nw.WithWorkers(16), nw.WithStrategy(st), nw.WithObserver(chk), quiet())
		require.NoError(t, err, "trial %d", trial)

		assert.Empty(t, chk.violations, "trial %d %s %dx%d", trial, st, lenX, lenY)
		assert.Equal(t, int64(3*lenX*lenY), chk.reads.Load(), "each interior cell reads three neighbours")
		assert.True(t, res.Grid.Complete())
	}
}

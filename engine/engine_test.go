package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbl8/increng/builtin"
	"github.com/sbl8/increng/core"
	"github.com/sbl8/increng/engine"
)

func TestLinearChainRecomputesOnlyOncePerSet(t *testing.T) {
	eng := engine.New()
	x, setX := builtin.Variable(eng, 0)

	touches := make([]int, 10)
	cur := x
	for i := 0; i < 10; i++ {
		idx := i
		cur = builtin.Map1(eng, cur, func(v int) int {
			touches[idx]++
			return v + 1
		})
	}
	z := cur
	eng.MarkObserved(z.Token())

	require.Equal(t, 10, engine.Get(eng, z))
	for _, c := range touches {
		assert.Equal(t, 1, c)
	}

	setX.Set(1)
	require.Equal(t, 11, engine.Get(eng, z))
	for _, c := range touches {
		assert.Equal(t, 2, c)
	}
}

func TestCutoffSuppressesSmallChanges(t *testing.T) {
	eng := engine.New()
	x, setX := builtin.Variable(eng, 100)
	c := builtin.Cutoff(eng, x, func(newVal, lastKept int) bool {
		diff := newVal - lastKept
		if diff < 0 {
			diff = -diff
		}
		return diff >= 50
	})
	yRuns := 0
	y := builtin.Map1(eng, c, func(v int) int {
		yRuns++
		return v + 10
	})
	eng.MarkObserved(y.Token())

	require.Equal(t, 110, engine.Get(eng, y))
	assert.Equal(t, 1, yRuns)

	setX.Set(125)
	require.Equal(t, 110, engine.Get(eng, y))
	assert.Equal(t, 1, yRuns, "closure for y must not re-run when cutoff suppresses")

	setX.Set(151)
	require.Equal(t, 161, engine.Get(eng, y))
	assert.Equal(t, 2, yRuns)

	setX.Set(125)
	require.Equal(t, 161, engine.Get(eng, y))
	assert.Equal(t, 2, yRuns)
}

func TestObservedMarkingPropagatesNecessity(t *testing.T) {
	eng := engine.New()
	v, _ := builtin.Variable(eng, 1)
	a := builtin.Map1(eng, v, func(i int) int { return i + 1 })
	b := builtin.Map1(eng, a, func(i int) int { return i + 1 })
	c := builtin.Map1(eng, b, func(i int) int { return i + 1 })

	eng.MarkObserved(a.Token())
	eng.MarkObserved(c.Token())

	assert.Equal(t, core.Unnecessary, eng.CheckObserved(v.Token()))
	assert.Equal(t, core.Observed, eng.CheckObserved(a.Token()))
	assert.Equal(t, core.Unnecessary, eng.CheckObserved(b.Token()))
	assert.Equal(t, core.Observed, eng.CheckObserved(c.Token()))

	eng.Stabilize()

	assert.Equal(t, core.Necessary, eng.CheckObserved(v.Token()))
	assert.Equal(t, core.Observed, eng.CheckObserved(a.Token()))
	assert.Equal(t, core.Necessary, eng.CheckObserved(b.Token()))
	assert.Equal(t, core.Observed, eng.CheckObserved(c.Token()))

	eng.MarkUnobserved(c.Token())
	assert.Equal(t, core.Unnecessary, eng.CheckObserved(b.Token()))
	assert.Equal(t, core.Unnecessary, eng.CheckObserved(c.Token()))
	assert.Equal(t, core.Necessary, eng.CheckObserved(v.Token()))
	assert.Equal(t, core.Observed, eng.CheckObserved(a.Token()))

	eng.MarkUnobserved(a.Token())
	assert.Equal(t, core.Unnecessary, eng.CheckObserved(v.Token()))
	assert.Equal(t, core.Unnecessary, eng.CheckObserved(a.Token()))
}

func TestDynamicCycleThroughThenPanics(t *testing.T) {
	eng := engine.New()
	cfg, _ := builtin.Variable(eng, 0)

	var loop engine.Handle[int]
	loop = builtin.Then(eng, cfg, func(int) engine.Handle[int] {
		return builtin.Map1(eng, loop, func(v int) int { return v + 1 })
	})
	eng.MarkObserved(loop.Token())

	assert.Panics(t, func() { eng.Stabilize() })
}

func TestDroppingPendingHandleIsSafe(t *testing.T) {
	eng := engine.New()
	x, _ := builtin.Variable(eng, 0)
	y := builtin.Map1(eng, x, func(v int) int { return v * 2 })
	eng.MarkObserved(y.Token())
	y.Release()

	assert.NotPanics(t, func() { eng.Stabilize() })
}

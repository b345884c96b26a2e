package builtin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbl8/increng/builtin"
	"github.com/sbl8/increng/engine"
)

func TestMap2RecomputesOnEitherInput(t *testing.T) {
	eng := engine.New()
	a, setA := builtin.Variable(eng, 1)
	b, setB := builtin.Variable(eng, 10)
	runs := 0
	sum := builtin.Map2(eng, a, b, func(x, y int) int {
		runs++
		return x + y
	})
	eng.MarkObserved(sum.Token())

	require.Equal(t, 11, engine.Get(eng, sum))
	assert.Equal(t, 1, runs)

	setA.Set(2)
	require.Equal(t, 12, engine.Get(eng, sum))
	assert.Equal(t, 2, runs)

	setB.Set(20)
	require.Equal(t, 22, engine.Get(eng, sum))
	assert.Equal(t, 3, runs)
}

func TestMapSliceHandlesArbitraryArity(t *testing.T) {
	eng := engine.New()
	handles := make([]engine.Handle[int], 5)
	setters := make([]*builtin.Setter[int], 5)
	for i := range handles {
		handles[i], setters[i] = builtin.Variable(eng, i)
	}
	total := builtin.MapSlice(eng, handles, func(vals []int) int {
		sum := 0
		for _, v := range vals {
			sum += v
		}
		return sum
	})
	eng.MarkObserved(total.Token())

	require.Equal(t, 0+1+2+3+4, engine.Get(eng, total))
	setters[2].Set(100)
	require.Equal(t, 0+1+100+3+4, engine.Get(eng, total))
}

func TestRefMapProjectsWithoutCaching(t *testing.T) {
	eng := engine.New()
	pair, setPair := builtin.Variable(eng, builtin.Pair[int, string]{First: 1, Second: "one"})
	first, second := builtin.Split2[int, string](eng, pair)
	eng.MarkObserved(first.Token())
	eng.MarkObserved(second.Token())

	require.Equal(t, 1, engine.Get(eng, first))
	require.Equal(t, "one", engine.Get(eng, second))

	setPair.Set(builtin.Pair[int, string]{First: 2, Second: "two"})
	require.Equal(t, 2, engine.Get(eng, first))
	require.Equal(t, "two", engine.Get(eng, second))
}

package builtin_test

import (
	"testing"

	"github.com/benbjohnson/immutable"
	"github.com/stretchr/testify/require"

	"github.com/sbl8/increng/builtin"
	"github.com/sbl8/increng/engine"
)

func TestFoldDiffsAgainstLastObservedVersion(t *testing.T) {
	eng := engine.New()

	base := immutable.NewMap[string, int](nil)
	base = base.Set("a", 1)
	base = base.Set("b", 2)

	m, setM := builtin.Variable[*immutable.Map[string, int]](eng, base)

	sum := builtin.Fold(eng, m, 0,
		func(acc int, key string, newVal int) int { return acc + newVal },
		func(acc int, key string, oldVal int) int { return acc - oldVal },
	)
	eng.MarkObserved(sum.Token())

	require.Equal(t, 3, engine.Get(eng, sum))

	next := base.Set("c", 10)
	setM.Set(next)
	require.Equal(t, 13, engine.Get(eng, sum))

	next = next.Delete("a")
	setM.Set(next)
	require.Equal(t, 12, engine.Get(eng, sum))
}

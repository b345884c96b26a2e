package builtin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbl8/increng/builtin"
	"github.com/sbl8/increng/core"
	"github.com/sbl8/increng/engine"
)

func TestThenSelectsBranchAndUnrequestsOld(t *testing.T) {
	eng := engine.New()
	unread, setUnread := builtin.Variable(eng, 999)
	realName := builtin.Constant(eng, "Robo")
	fallback := builtin.Constant(eng, "Lazybum")

	name := builtin.Then(eng, unread, func(u int) engine.Handle[string] {
		if u < 100 {
			return realName.Clone()
		}
		return fallback.Clone()
	})
	eng.MarkObserved(name.Token())

	require.Equal(t, "Lazybum", engine.Get(eng, name))
	assert.Equal(t, core.Necessary, eng.CheckObserved(fallback.Token()))
	assert.Equal(t, core.Unnecessary, eng.CheckObserved(realName.Token()))

	setUnread.Set(50)
	require.Equal(t, "Robo", engine.Get(eng, name))
	assert.Equal(t, core.Necessary, eng.CheckObserved(realName.Token()))
	assert.Equal(t, core.Unnecessary, eng.CheckObserved(fallback.Token()),
		"switching branches must unrequest the old one")
}

package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sbl8/increng/core"
)

func TestTokenIdentity(t *testing.T) {
	a := core.NewToken(3, 1)
	b := core.NewToken(3, 1)
	c := core.NewToken(3, 2)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c, "a token minted for a reused slot must differ from the one before it")
	assert.Equal(t, uint32(3), a.Index())
	assert.Equal(t, uint32(1), a.Generation())
	assert.True(t, core.Token{}.IsZero())
	assert.False(t, a.IsZero())
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "#3.1", core.NewToken(3, 1).String())
}

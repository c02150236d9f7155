package tools

import (
	"testing"

	"sol-ix-gateway/internal/consts"
	"sol-ix-gateway/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSPLTokenProgram(t *testing.T) {
	assert.True(t, IsSPLTokenProgram(consts.TokenProgram))
	assert.True(t, IsSPLTokenProgram(consts.TokenProgram2022))
	assert.False(t, IsSPLTokenProgram(consts.SystemProgram))
}

func TestResolveTokenProgram(t *testing.T) {
	p, err := ResolveTokenProgram("")
	require.NoError(t, err)
	assert.Equal(t, consts.TokenProgram, p)

	p, err = ResolveTokenProgram(consts.TokenProgram2022Str)
	require.NoError(t, err)
	assert.Equal(t, consts.TokenProgram2022, p)

	_, err = ResolveTokenProgram(consts.SystemProgramStr)
	assert.ErrorIs(t, err, ErrNotTokenProgram)

	_, err = ResolveTokenProgram("bad!")
	assert.ErrorIs(t, err, types.ErrInvalidPubkey)
}

package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrueCount(t *testing.T) {
	assert.InDelta(t, 5.0, TrueCount(10, 104, 52), 1e-9)
	assert.InDelta(t, -2.0, TrueCount(-6, 156, 52), 1e-9)
	assert.Equal(t, 0.0, TrueCount(5, 0, 52))
	assert.InDelta(t, 4.0, TrueCount(2, 26, 0), 1e-9)
}

func TestParseCountEntry(t *testing.T) {
	v, err := ParseCountEntry(" +3 ")
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	v, err = ParseCountEntry("-7")
	require.NoError(t, err)
	assert.Equal(t, -7, v)

	_, err = ParseCountEntry("seven")
	assert.ErrorIs(t, err, ErrInvalidCountEntry)

	_, err = ParseCountEntry("")
	assert.ErrorIs(t, err, ErrInvalidCountEntry)
}

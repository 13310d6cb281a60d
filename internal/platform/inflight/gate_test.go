package inflight

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate_RejectsOverlapSameKey(t *testing.T) {
	g := New()

	release, err := g.Acquire("client-1")
	require.NoError(t, err)
	assert.True(t, g.Busy("client-1"))

	_, err = g.Acquire("client-1")
	assert.True(t, errors.Is(err, ErrBusy))

	// otra key no se bloquea
	releaseOther, err := g.Acquire("client-2")
	require.NoError(t, err)
	releaseOther()

	release()
	release()
	assert.False(t, g.Busy("client-1"))

	release2, err := g.Acquire("client-1")
	require.NoError(t, err)
	release2()
}

package replay_test

import (
	"testing"

	"blunderlog/internal/replay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorAdvanceToEnd(t *testing.T) {
	c := replay.NewCursor([]string{"e4", "e5", "Nf3"})
	assert.True(t, c.AtStart())
	assert.False(t, c.CanRetreat())

	for i := 1; i <= 3; i++ {
		assert.True(t, c.Advance())
		assert.Equal(t, i, c.Ply())
	}

	assert.True(t, c.AtEnd())
	assert.False(t, c.CanAdvance())

	// Fourth advance is a no-op.
	assert.False(t, c.Advance())
	assert.Equal(t, 3, c.Ply())
}

func TestCursorRetreatAtStart(t *testing.T) {
	c := replay.NewCursor([]string{"e4"})
	assert.False(t, c.Retreat())
	assert.Equal(t, 0, c.Ply())
}

func TestCursorSeekAtomic(t *testing.T) {
	c := replay.NewCursor([]string{"e4", "e5", "Nf3"})
	require.NoError(t, c.Seek(2))
	assert.Equal(t, 2, c.Ply())

	// Failed seek leaves the cursor exactly where it was.
	var oor *replay.IndexOutOfRangeError
	require.ErrorAs(t, c.Seek(7), &oor)
	assert.Equal(t, 2, c.Ply())
	require.ErrorAs(t, c.Seek(-1), &oor)
	assert.Equal(t, 2, c.Ply())

	require.NoError(t, c.Seek(0))
	assert.True(t, c.AtStart())
}

func TestCursorPosition(t *testing.T) {
	c := replay.NewCursor([]string{"e4", "e5", "Nf3"})
	fen, err := c.Position()
	require.NoError(t, err)
	assert.Equal(t, replay.StartingFEN, fen)

	require.NoError(t, c.Seek(3))
	fen, err = c.Position()
	require.NoError(t, err)
	assert.Equal(t, "b", replay.SideToMove(fen))
}

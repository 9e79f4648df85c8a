package replay_test

import (
	"testing"

	"blunderlog/internal/core"
	"blunderlog/internal/replay"

	"github.com/stretchr/testify/assert"
)

func TestPlyToMoveNumber(t *testing.T) {
	assert.Equal(t, 0, replay.PlyToMoveNumber(0))
	assert.Equal(t, 1, replay.PlyToMoveNumber(1))
	assert.Equal(t, 1, replay.PlyToMoveNumber(2))
	assert.Equal(t, 2, replay.PlyToMoveNumber(3))
	assert.Equal(t, 2, replay.PlyToMoveNumber(4))
	assert.Equal(t, 21, replay.PlyToMoveNumber(41))
}

func TestIsWhitePlyAlternates(t *testing.T) {
	// Ply 1 is White's first move; the colors alternate strictly from there.
	for i := 1; i <= 40; i++ {
		assert.Equal(t, i%2 == 1, replay.IsWhitePly(i), "ply %d", i)
	}
}

func TestMoveNumberAndColorToPly(t *testing.T) {
	assert.Equal(t, 1, replay.MoveNumberAndColorToPly(1, core.ColorWhite))
	assert.Equal(t, 2, replay.MoveNumberAndColorToPly(1, core.ColorBlack))
	assert.Equal(t, 3, replay.MoveNumberAndColorToPly(2, core.ColorWhite))
	// The journaling player is Black and references "move 2": ply 4.
	assert.Equal(t, 4, replay.MoveNumberAndColorToPly(2, core.ColorBlack))
}

func TestMoveNumberRoundTrip(t *testing.T) {
	// plyToMoveNumber composed with the color-aware inverse recovers the
	// ply for every index.
	for i := 1; i <= 100; i++ {
		n := replay.PlyToMoveNumber(i)
		color := core.ColorBlack
		if replay.IsWhitePly(i) {
			color = core.ColorWhite
		}
		assert.Equal(t, i, replay.MoveNumberAndColorToPly(n, color), "ply %d", i)
	}
}

func TestClampPly(t *testing.T) {
	assert.Equal(t, 0, replay.ClampPly(-3, 10))
	assert.Equal(t, 10, replay.ClampPly(14, 10))
	assert.Equal(t, 7, replay.ClampPly(7, 10))
}

func TestMoveLabel(t *testing.T) {
	assert.Equal(t, "start", replay.MoveLabel(0))
	assert.Equal(t, "1.", replay.MoveLabel(1))
	assert.Equal(t, "1...", replay.MoveLabel(2))
	assert.Equal(t, "2.", replay.MoveLabel(3))
	assert.Equal(t, "13...", replay.MoveLabel(26))
}

package replay_test

import (
	"strings"
	"testing"

	"blunderlog/internal/replay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Morphy's opera game, 33 plies. Exercises castling, captures, checks
// and mate during replay.
var operaGame = strings.Fields(
	"e4 e5 Nf3 d6 d4 Bg4 dxe5 Bxf3 Qxf3 dxe5 Bc4 Nf6 Qb3 Qe7 Nc3 c6 " +
		"Bg5 b5 Nxb5 cxb5 Bxb5+ Nbd7 O-O-O Rd8 Rxd7 Rxd7 Rd1 Qe6 Bxd7+ Nxd7 " +
		"Qb8+ Nxb8 Rd8#")

func TestPositionAtStart(t *testing.T) {
	for _, moves := range [][]string{nil, {"e4"}, operaGame} {
		fen, err := replay.PositionAt(moves, 0)
		require.NoError(t, err)
		assert.Equal(t, replay.StartingFEN, fen)
	}
}

func TestPositionAtKnownFEN(t *testing.T) {
	moves := []string{"e4", "e5", "Nf3"}

	fen, err := replay.PositionAt(moves, 3)
	require.NoError(t, err)
	assert.Equal(t, "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2", fen)
	assert.Equal(t, "b", replay.SideToMove(fen))
}

func TestPositionAtOutOfRange(t *testing.T) {
	moves := []string{"e4", "e5", "Nf3"}

	_, err := replay.PositionAt(moves, 4)
	var oor *replay.IndexOutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, 4, oor.Requested)
	assert.Equal(t, 3, oor.Total)
	assert.Contains(t, err.Error(), "4")
	assert.Contains(t, err.Error(), "3")

	_, err = replay.PositionAt(moves, -1)
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, -1, oor.Requested)
}

func TestPositionAtIdempotent(t *testing.T) {
	for i := 0; i <= len(operaGame); i++ {
		a, err := replay.PositionAt(operaGame, i)
		require.NoError(t, err)
		b, err := replay.PositionAt(operaGame, i)
		require.NoError(t, err)
		assert.Equal(t, a, b, "ply %d", i)
	}
}

func TestPositionAtMonotonicDistinct(t *testing.T) {
	// Every move changes the position.
	prev, err := replay.PositionAt(operaGame, 0)
	require.NoError(t, err)
	for i := 1; i <= len(operaGame); i++ {
		fen, err := replay.PositionAt(operaGame, i)
		require.NoError(t, err)
		assert.NotEqual(t, prev, fen, "ply %d", i)
		prev = fen
	}
}

func TestPositionAtFinalPly(t *testing.T) {
	fen, err := replay.PositionAt(operaGame, len(operaGame))
	require.NoError(t, err)
	assert.NotEqual(t, replay.StartingFEN, fen)
}

func TestPositionAtReplayError(t *testing.T) {
	// An illegal move in a supposedly-validated list is data corruption.
	moves := []string{"e4", "e4"}
	_, err := replay.PositionAt(moves, 2)
	var re *replay.ReplayError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 2, re.Ply)
	assert.Equal(t, "e4", re.Token)
}

func TestTotalPlies(t *testing.T) {
	assert.Equal(t, 0, replay.TotalPlies(nil))
	assert.Equal(t, 33, replay.TotalPlies(operaGame))
}

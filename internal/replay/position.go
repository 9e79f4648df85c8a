package replay

import (
	"strings"

	"github.com/notnil/chess"
)

// TotalPlies returns the half-move count of a validated move list.
func TotalPlies(moves []string) int {
	return len(moves)
}

// PositionAt replays moves [0, plyIndex) from the initial position and
// returns the resulting FEN. Every call builds its own engine game, so
// concurrent callers never share mutable replay state.
//
// plyIndex 0 returns StartingFEN without touching the engine. An index
// outside [0, TotalPlies] fails with *IndexOutOfRangeError. A move that
// fails to apply fails with *ReplayError; stored move lists were validated
// at import, so that means corrupted data, not user error.
func PositionAt(moves []string, plyIndex int) (string, error) {
	total := TotalPlies(moves)
	if plyIndex < 0 || plyIndex > total {
		return "", &IndexOutOfRangeError{Requested: plyIndex, Total: total}
	}
	if plyIndex == 0 {
		return StartingFEN, nil
	}

	g := chess.NewGame()
	for i := 0; i < plyIndex; i++ {
		if err := g.MoveStr(moves[i]); err != nil {
			return "", &ReplayError{Ply: i + 1, Token: moves[i], Cause: err}
		}
	}
	return g.Position().String(), nil
}

// SideToMove reads the active-color field out of a FEN string.
func SideToMove(fen string) string {
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

package replay

import (
	"fmt"

	"blunderlog/internal/core"
)

// Ply indexing convention: ply k counts completed half-moves, so ply 0 is
// the initial position, ply 1 is the position after White's first move,
// ply 2 after Black's first move, and so on. Conversions between this
// zero-based index and the conventional 1-based move number live here and
// nowhere else.

// PlyToMoveNumber maps a ply index to the conventional move number.
// Ply 0 maps to 0; callers display it as the start sentinel, see MoveLabel.
func PlyToMoveNumber(plyIndex int) int {
	if plyIndex <= 0 {
		return 0
	}
	return (plyIndex + 1) / 2
}

// IsWhitePly reports whether the half-move that produced the position at
// plyIndex was played by White. Ply 1 is White's first move.
func IsWhitePly(plyIndex int) bool {
	return plyIndex%2 == 1
}

// MoveNumberAndColorToPly maps "the journaling player's move N" back to a
// ply index. The result is unclamped; callers on best-effort navigation
// paths clamp with ClampPly before use.
func MoveNumberAndColorToPly(moveNumber int, journalingColor core.Color) int {
	if journalingColor == core.ColorWhite {
		return (moveNumber-1)*2 + 1
	}
	return (moveNumber-1)*2 + 2
}

// ClampPly bounds a ply index to [0, totalPlies].
func ClampPly(plyIndex, totalPlies int) int {
	if plyIndex < 0 {
		return 0
	}
	if plyIndex > totalPlies {
		return totalPlies
	}
	return plyIndex
}

// MoveLabel renders a ply index for display: "start" for ply 0, then the
// standard "1." / "1..." continuation style.
func MoveLabel(plyIndex int) string {
	if plyIndex <= 0 {
		return "start"
	}
	n := PlyToMoveNumber(plyIndex)
	if IsWhitePly(plyIndex) {
		return fmt.Sprintf("%d.", n)
	}
	return fmt.Sprintf("%d...", n)
}

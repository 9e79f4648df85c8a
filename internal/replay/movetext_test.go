package replay_test

import (
	"testing"

	"blunderlog/internal/replay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanMovetextStripsAnnotations(t *testing.T) {
	raw := `[Event "Casual Game"]
[White "Alice"]
[Black "Bob"]
[Result "1-0"]

1. e4 {[%clk 0:09:58]} e5 $1 2. Nf3!? (2. f4 exf4 3. Nf3) Nc6 ; best by test
3. Bb5 a6?? 1-0`

	assert.Equal(t, "e4 e5 Nf3 Nc6 Bb5 a6", replay.CleanMovetext(raw))
}

func TestCleanMovetextGluedMoveNumbers(t *testing.T) {
	assert.Equal(t, "e4 c5 Nf3 d6", replay.CleanMovetext("1.e4 c5 2.Nf3 d6 *"))
	assert.Equal(t, "e4 c5", replay.CleanMovetext("1. e4 1... c5"))
}

func TestCleanMovetextZeroCastling(t *testing.T) {
	assert.Equal(t, "e4 e5 Nf3 Nc6 Bc4 Bc5 O-O", replay.CleanMovetext("1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 4. 0-0"))
}

func TestCleanMovetextNestedVariations(t *testing.T) {
	raw := "1. d4 (1. e4 e5 (1... c5 2. Nf3) 2. Nf3) d5 2. c4"
	assert.Equal(t, "d4 d5 c4", replay.CleanMovetext(raw))
}

func TestExtractHeaders(t *testing.T) {
	raw := `[White "Alice"]
[Black "Bob"]
[WhiteElo "1500"]
[BlackElo "1710"]
[TimeControl "600+5"]
[Date "2024.03.09"]
[Result "0-1"]
1. e4 e5`

	h := replay.ExtractHeaders(raw)
	assert.Equal(t, "Alice", h.White)
	assert.Equal(t, "Bob", h.Black)
	assert.Equal(t, "1500", h.WhiteElo)
	assert.Equal(t, "1710", h.BlackElo)
	assert.Equal(t, "600+5", h.TimeControl)
	assert.Equal(t, "2024.03.09", h.Date)
	assert.Equal(t, "0-1", h.Result)
}

func TestExtractHeadersIgnoresPlaceholders(t *testing.T) {
	h := replay.ExtractHeaders(`[White "?"]` + "\n" + `[Date "????.??.??"]`)
	assert.Empty(t, h.White)
	assert.Empty(t, h.Date)
}

func TestParseMovetext(t *testing.T) {
	pg, headers, err := replay.ParseMovetext(`[White "Alice"]
1. e4 {good} e5 2. Nf3 1/2-1/2`)
	require.NoError(t, err)
	assert.Equal(t, []string{"e4", "e5", "Nf3"}, pg.Moves)
	assert.Equal(t, 3, pg.TotalPlies())
	assert.Equal(t, "e4 e5 Nf3", pg.MoveText())
	assert.Equal(t, "b", replay.SideToMove(pg.FinalFEN))
	assert.Equal(t, "Alice", headers.White)
}

func TestParseMovetextIllegalMove(t *testing.T) {
	_, _, err := replay.ParseMovetext("1. e4 e4")
	var pe *replay.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Ply)
	assert.Equal(t, "e4", pe.Token)
}

func TestParseMovetextEmpty(t *testing.T) {
	_, _, err := replay.ParseMovetext("{only a comment} 1-0")
	var pe *replay.ParseError
	require.ErrorAs(t, err, &pe)
}

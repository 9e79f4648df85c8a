package storage_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"blunderlog/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupStore opens a fresh named in-memory database per test. The shared
// cache keeps every pooled connection on the same database.
func setupStore(t *testing.T) *storage.Store {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	s, err := storage.NewStore(dsn, false)
	require.NoError(t, err)
	require.NoError(t, s.InitDB())
	t.Cleanup(func() { s.Close() })
	return s
}

func newGame(moveText string) storage.GameRecord {
	return storage.GameRecord{
		GameID:      uuid.New().String(),
		MoveText:    moveText,
		TotalPlies:  len(strings.Fields(moveText)),
		PlayerColor: "w",
		CreatedAt:   time.Now().UTC(),
	}
}

func newMistake(gameID string, ply int) storage.MistakeRecord {
	now := time.Now().UTC()
	return storage.MistakeRecord{
		MistakeID:   uuid.New().String(),
		GameID:      gameID,
		PlyIndex:    ply,
		PositionFEN: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		Description: "hung a pawn",
		Tag:         "hanging-piece",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestInsertAndGetGame(t *testing.T) {
	s := setupStore(t)

	rating := 1650
	g := newGame("e4 e5 Nf3")
	g.Opponent = "bob"
	g.OpponentRating = &rating
	g.TimeControl = "600+5"
	g.Result = "0-1"
	g.DatePlayed = "2024-03-09"
	require.NoError(t, s.InsertGame(g))

	got, err := s.GetGame(g.GameID)
	require.NoError(t, err)
	assert.Equal(t, g.MoveText, got.MoveText)
	assert.Equal(t, 3, got.TotalPlies)
	assert.Equal(t, "w", got.PlayerColor)
	assert.Equal(t, "bob", got.Opponent)
	require.NotNil(t, got.OpponentRating)
	assert.Equal(t, 1650, *got.OpponentRating)
	assert.Equal(t, "600+5", got.TimeControl)
	assert.Equal(t, "2024-03-09", got.DatePlayed)
}

func TestGetGameNotFound(t *testing.T) {
	s := setupStore(t)
	_, err := s.GetGame(uuid.New().String())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDuplicateMoveTextRejected(t *testing.T) {
	s := setupStore(t)

	require.NoError(t, s.InsertGame(newGame("e4 e5 Nf3")))
	err := s.InsertGame(newGame("e4 e5 Nf3"))
	assert.ErrorIs(t, err, storage.ErrDuplicateGame)
}

func TestListGamesNewestFirst(t *testing.T) {
	s := setupStore(t)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		g := newGame(fmt.Sprintf("e4 e5 Nf3 Nc6 Bb5 a%d", i+1))
		g.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, s.InsertGame(g))
	}

	games, err := s.ListGames(10, 0)
	require.NoError(t, err)
	require.Len(t, games, 3)
	assert.True(t, games[0].CreatedAt.After(games[2].CreatedAt))

	page, err := s.ListGames(2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}

func TestUpdateGameMeta(t *testing.T) {
	s := setupStore(t)

	g := newGame("d4 d5")
	require.NoError(t, s.InsertGame(g))

	rating := 1800
	tc := "180+2"
	require.NoError(t, s.UpdateGameMeta(g.GameID, storage.GameMetaPatch{
		OpponentRating: &rating,
		TimeControl:    &tc,
	}))

	got, err := s.GetGame(g.GameID)
	require.NoError(t, err)
	require.NotNil(t, got.OpponentRating)
	assert.Equal(t, 1800, *got.OpponentRating)
	assert.Equal(t, "180+2", got.TimeControl)
	assert.Equal(t, g.MoveText, got.MoveText) // untouched

	err = s.UpdateGameMeta(uuid.New().String(), storage.GameMetaPatch{TimeControl: &tc})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteGameCascades(t *testing.T) {
	s := setupStore(t)

	g := newGame("e4 c5")
	require.NoError(t, s.InsertGame(g))
	m := newMistake(g.GameID, 1)
	require.NoError(t, s.InsertMistake(m))

	require.NoError(t, s.DeleteGame(g.GameID))

	_, err := s.GetGame(g.GameID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.GetMistake(m.MistakeID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, s.DeleteGame(g.GameID), storage.ErrNotFound)
}

func TestMistakeCRUD(t *testing.T) {
	s := setupStore(t)

	g := newGame("e4 e5 Nf3 Nc6")
	require.NoError(t, s.InsertGame(g))

	m := newMistake(g.GameID, 3)
	m.Reflection = "I always drop this pawn in the Italian"
	require.NoError(t, s.InsertMistake(m))

	got, err := s.GetMistake(m.MistakeID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.PlyIndex)
	assert.Equal(t, m.PositionFEN, got.PositionFEN)
	assert.Equal(t, "I always drop this pawn in the Italian", got.Reflection)

	desc := "missed the fork"
	tag := "tactics"
	require.NoError(t, s.UpdateMistake(m.MistakeID, storage.MistakePatch{
		Description: &desc,
		Tag:         &tag,
	}, time.Now().UTC().Add(time.Minute)))

	got, err = s.GetMistake(m.MistakeID)
	require.NoError(t, err)
	assert.Equal(t, "missed the fork", got.Description)
	assert.Equal(t, "tactics", got.Tag)
	assert.Equal(t, 3, got.PlyIndex) // immutable
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))

	require.NoError(t, s.DeleteMistake(m.MistakeID))
	_, err = s.GetMistake(m.MistakeID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListMistakesFilters(t *testing.T) {
	s := setupStore(t)

	g1 := newGame("e4 e5")
	g2 := newGame("d4 d5")
	require.NoError(t, s.InsertGame(g1))
	require.NoError(t, s.InsertGame(g2))

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	tags := []string{"tactics", "time-trouble", "tactics"}
	for i, tag := range tags {
		m := newMistake(g1.GameID, i)
		m.Tag = tag
		m.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		m.UpdatedAt = m.CreatedAt
		require.NoError(t, s.InsertMistake(m))
	}
	require.NoError(t, s.InsertMistake(newMistake(g2.GameID, 0)))

	all, err := s.ListMistakes(storage.MistakeFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	byGame, err := s.ListMistakes(storage.MistakeFilter{GameID: g1.GameID})
	require.NoError(t, err)
	assert.Len(t, byGame, 3)
	// Newest first.
	assert.Equal(t, 2, byGame[0].PlyIndex)

	byTag, err := s.ListMistakes(storage.MistakeFilter{Tag: "tactics"})
	require.NoError(t, err)
	assert.Len(t, byTag, 2)

	paged, err := s.ListMistakes(storage.MistakeFilter{GameID: g1.GameID, Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, paged, 1)
}

func TestTagCounts(t *testing.T) {
	s := setupStore(t)

	g := newGame("e4 e6")
	require.NoError(t, s.InsertGame(g))

	for i, tag := range []string{"tactics", "tactics", "endgame", "tactics", "endgame"} {
		m := newMistake(g.GameID, i)
		m.Tag = tag
		require.NoError(t, s.InsertMistake(m))
	}

	counts, err := s.TagCounts()
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, storage.TagCount{Tag: "tactics", Count: 3}, counts[0])
	assert.Equal(t, storage.TagCount{Tag: "endgame", Count: 2}, counts[1])
}

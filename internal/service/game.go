package service

import (
	"strconv"
	"strings"
	"time"

	"blunderlog/internal/core"
	"blunderlog/internal/replay"
	"blunderlog/internal/storage"

	"github.com/google/uuid"
)

// ImportGame validates raw movetext by full replay and stores the game.
// Metadata given in the request wins over anything found in PGN headers.
// The canonical cleaned move list is the dedup key: importing the same
// game twice returns storage.ErrDuplicateGame.
func (s *Service) ImportGame(req core.ImportGameRequest) (*core.GameResponse, error) {
	parsed, headers, err := replay.ParseMovetext(req.MoveText)
	if err != nil {
		return nil, err
	}

	record := storage.GameRecord{
		GameID:      uuid.New().String(),
		MoveText:    parsed.MoveText(),
		TotalPlies:  parsed.TotalPlies(),
		PlayerColor: req.PlayerColor,
		Opponent:    req.Opponent,
		TimeControl: req.TimeControl,
		Result:      req.Result,
		DatePlayed:  req.DatePlayed,
		CreatedAt:   time.Now().UTC(),
	}
	if req.OpponentRating != nil {
		r := *req.OpponentRating
		record.OpponentRating = &r
	}
	mergeHeaders(&record, headers)

	if err := s.store.InsertGame(record); err != nil {
		return nil, err
	}
	return gameResponse(&record), nil
}

// mergeHeaders fills record fields left empty by the request from PGN tag
// pairs. The opponent is the side the journaling player did not play.
func mergeHeaders(record *storage.GameRecord, h replay.Headers) {
	if record.Opponent == "" {
		if record.PlayerColor == string(core.ColorWhite) {
			record.Opponent = h.Black
		} else {
			record.Opponent = h.White
		}
	}
	if record.OpponentRating == nil {
		elo := h.BlackElo
		if record.PlayerColor == string(core.ColorBlack) {
			elo = h.WhiteElo
		}
		if n, err := strconv.Atoi(elo); err == nil && n > 0 {
			record.OpponentRating = &n
		}
	}
	if record.TimeControl == "" {
		record.TimeControl = h.TimeControl
	}
	if record.Result == "" {
		record.Result = h.Result
	}
	if record.DatePlayed == "" {
		record.DatePlayed = normalizePGNDate(h.Date)
	}
}

// normalizePGNDate converts the PGN "2024.03.09" form to ISO "2024-03-09".
// Anything that does not look like a full date is dropped.
func normalizePGNDate(d string) string {
	parts := strings.Split(d, ".")
	if len(parts) != 3 {
		return ""
	}
	for _, p := range parts {
		if strings.Contains(p, "?") {
			return ""
		}
	}
	if len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return ""
	}
	return parts[0] + "-" + parts[1] + "-" + parts[2]
}

// GetGame retrieves a stored game by ID
func (s *Service) GetGame(gameID string) (*core.GameResponse, error) {
	record, err := s.store.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return gameResponse(record), nil
}

// ListGames retrieves stored games newest first.
func (s *Service) ListGames(limit, offset int) (*core.GameListResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	records, err := s.store.ListGames(limit, offset)
	if err != nil {
		return nil, err
	}

	games := make([]core.GameResponse, 0, len(records))
	for i := range records {
		games = append(games, *gameResponse(&records[i]))
	}
	return &core.GameListResponse{Games: games, Limit: limit, Offset: offset}, nil
}

// UpdateGameMeta patches mutable game metadata and returns the result.
func (s *Service) UpdateGameMeta(gameID string, req core.UpdateGameRequest) (*core.GameResponse, error) {
	patch := storage.GameMetaPatch{
		Opponent:       req.Opponent,
		OpponentRating: req.OpponentRating,
		TimeControl:    req.TimeControl,
		Result:         req.Result,
		DatePlayed:     req.DatePlayed,
	}
	if err := s.store.UpdateGameMeta(gameID, patch); err != nil {
		return nil, err
	}
	return s.GetGame(gameID)
}

// DeleteGame removes a game and, through the schema cascade, its mistakes.
func (s *Service) DeleteGame(gameID string) error {
	return s.store.DeleteGame(gameID)
}

// GetPosition computes the position of a stored game at a ply index by
// fresh replay. Ply 0 is the initial position.
func (s *Service) GetPosition(gameID string, plyIndex int) (*core.PositionResponse, error) {
	record, err := s.store.GetGame(gameID)
	if err != nil {
		return nil, err
	}

	moves := strings.Fields(record.MoveText)
	fen, err := replay.PositionAt(moves, plyIndex)
	if err != nil {
		return nil, err
	}

	return &core.PositionResponse{
		GameID:     record.GameID,
		PlyIndex:   plyIndex,
		TotalPlies: record.TotalPlies,
		FEN:        fen,
		MoveLabel:  replay.MoveLabel(plyIndex),
		SideToMove: replay.SideToMove(fen),
	}, nil
}

// ResolveMoveNumber maps "my move N" onto a ply index for the side the
// journaling player played, clamping out-of-range targets to the nearest
// valid ply. The response flags when clamping happened.
func (s *Service) ResolveMoveNumber(gameID string, moveNumber int) (*core.ResolveResponse, error) {
	record, err := s.store.GetGame(gameID)
	if err != nil {
		return nil, err
	}

	target := replay.MoveNumberAndColorToPly(moveNumber, core.Color(record.PlayerColor))
	plyIndex := replay.ClampPly(target, record.TotalPlies)

	moves := strings.Fields(record.MoveText)
	fen, err := replay.PositionAt(moves, plyIndex)
	if err != nil {
		return nil, err
	}

	return &core.ResolveResponse{
		GameID:     record.GameID,
		MoveNumber: moveNumber,
		PlyIndex:   plyIndex,
		FEN:        fen,
		Clamped:    plyIndex != target,
	}, nil
}

func gameResponse(record *storage.GameRecord) *core.GameResponse {
	resp := &core.GameResponse{
		GameID:      record.GameID,
		MoveText:    record.MoveText,
		TotalPlies:  record.TotalPlies,
		PlayerColor: record.PlayerColor,
		Opponent:    record.Opponent,
		TimeControl: record.TimeControl,
		Result:      record.Result,
		DatePlayed:  record.DatePlayed,
		CreatedAt:   record.CreatedAt.UTC().Format(time.RFC3339),
	}
	if record.OpponentRating != nil {
		r := *record.OpponentRating
		resp.OpponentRating = &r
	}
	return resp
}

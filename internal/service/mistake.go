package service

import (
	"strings"
	"time"

	"blunderlog/internal/core"
	"blunderlog/internal/replay"
	"blunderlog/internal/storage"

	"github.com/google/uuid"
)

// RecordMistake annotates a position in a stored game. The ply is bounds
// checked against the game and the position snapshot is captured once, at
// write time; it is never re-derived afterwards.
func (s *Service) RecordMistake(gameID string, req core.CreateMistakeRequest) (*core.MistakeResponse, error) {
	record, err := s.store.GetGame(gameID)
	if err != nil {
		return nil, err
	}

	plyIndex := *req.PlyIndex
	moves := strings.Fields(record.MoveText)
	fen, err := replay.PositionAt(moves, plyIndex)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	mistake := storage.MistakeRecord{
		MistakeID:   uuid.New().String(),
		GameID:      gameID,
		PlyIndex:    plyIndex,
		PositionFEN: fen,
		Description: req.Description,
		Tag:         req.Tag,
		Reflection:  req.Reflection,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.InsertMistake(mistake); err != nil {
		return nil, err
	}
	return mistakeResponse(&mistake), nil
}

// GetMistake retrieves one annotation by ID
func (s *Service) GetMistake(mistakeID string) (*core.MistakeResponse, error) {
	record, err := s.store.GetMistake(mistakeID)
	if err != nil {
		return nil, err
	}
	return mistakeResponse(record), nil
}

// ListMistakes retrieves annotations newest first, optionally narrowed to
// a game and/or an exact tag.
func (s *Service) ListMistakes(gameID, tag string, limit, offset int) (*core.MistakeListResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	records, err := s.store.ListMistakes(storage.MistakeFilter{
		GameID: gameID,
		Tag:    tag,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}

	mistakes := make([]core.MistakeResponse, 0, len(records))
	for i := range records {
		mistakes = append(mistakes, *mistakeResponse(&records[i]))
	}
	return &core.MistakeListResponse{Mistakes: mistakes, Limit: limit, Offset: offset}, nil
}

// UpdateMistake patches the annotation text fields. The ply and the
// position snapshot are immutable.
func (s *Service) UpdateMistake(mistakeID string, req core.UpdateMistakeRequest) (*core.MistakeResponse, error) {
	patch := storage.MistakePatch{
		Description: req.Description,
		Tag:         req.Tag,
		Reflection:  req.Reflection,
	}
	if err := s.store.UpdateMistake(mistakeID, patch, time.Now().UTC()); err != nil {
		return nil, err
	}
	return s.GetMistake(mistakeID)
}

// DeleteMistake removes one annotation
func (s *Service) DeleteMistake(mistakeID string) error {
	return s.store.DeleteMistake(mistakeID)
}

// TagCounts aggregates annotation frequency per tag, most used first.
func (s *Service) TagCounts() (*core.TagListResponse, error) {
	counts, err := s.store.TagCounts()
	if err != nil {
		return nil, err
	}

	tags := make([]core.TagCount, 0, len(counts))
	for _, c := range counts {
		tags = append(tags, core.TagCount{Tag: c.Tag, Count: c.Count})
	}
	return &core.TagListResponse{Tags: tags}, nil
}

func mistakeResponse(record *storage.MistakeRecord) *core.MistakeResponse {
	return &core.MistakeResponse{
		MistakeID:   record.MistakeID,
		GameID:      record.GameID,
		PlyIndex:    record.PlyIndex,
		FEN:         record.PositionFEN,
		MoveLabel:   replay.MoveLabel(record.PlyIndex),
		Description: record.Description,
		Tag:         record.Tag,
		Reflection:  record.Reflection,
		CreatedAt:   record.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   record.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

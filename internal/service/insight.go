package service

import (
	"context"

	"blunderlog/internal/core"
	"blunderlog/internal/insight"
	"blunderlog/internal/replay"
	"blunderlog/internal/storage"
)

// How many annotations go into a summary when the request does not say.
const defaultInsightLimit = 25

// SummarizeMistakes sends the most recent annotations, optionally
// narrowed to one tag, to the LLM and returns its structured report.
// With nothing recorded yet it answers locally instead of burning a call.
func (s *Service) SummarizeMistakes(ctx context.Context, req core.InsightRequest) (*core.InsightResponse, error) {
	if s.llm == nil {
		return nil, ErrInsightUnavailable
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultInsightLimit
	}

	mistakes, err := s.store.ListMistakes(storage.MistakeFilter{Tag: req.Tag, Limit: limit})
	if err != nil {
		return nil, err
	}
	if len(mistakes) == 0 {
		return &core.InsightResponse{
			Patterns: []core.InsightPattern{},
			Advice:   "No annotations recorded yet. Import a game and mark some mistakes first.",
			Examined: 0,
		}, nil
	}

	entries, err := s.buildEntries(mistakes)
	if err != nil {
		return nil, err
	}

	obj, err := s.llm.GenerateJSON(ctx,
		insight.SystemPrompt(), insight.BuildPrompt(entries),
		insight.ReportSchemaName, insight.ReportSchema())
	if err != nil {
		return nil, err
	}

	report, err := insight.DecodeReport(obj)
	if err != nil {
		return nil, err
	}

	patterns := make([]core.InsightPattern, 0, len(report.Patterns))
	for _, p := range report.Patterns {
		patterns = append(patterns, core.InsightPattern{
			Theme:       p.Theme,
			Description: p.Description,
			Tags:        p.Tags,
		})
	}
	return &core.InsightResponse{
		Patterns: patterns,
		Advice:   report.Advice,
		Examined: len(entries),
	}, nil
}

// buildEntries joins each mistake with the side its game was played from.
// Games are fetched once and cached across the batch.
func (s *Service) buildEntries(mistakes []storage.MistakeRecord) ([]insight.Entry, error) {
	games := make(map[string]*storage.GameRecord)
	entries := make([]insight.Entry, 0, len(mistakes))

	for _, m := range mistakes {
		g, ok := games[m.GameID]
		if !ok {
			var err error
			g, err = s.store.GetGame(m.GameID)
			if err != nil {
				return nil, err
			}
			games[m.GameID] = g
		}
		entries = append(entries, insight.Entry{
			Mistake:     m,
			PlayerColor: g.PlayerColor,
			MoveNumber:  replay.PlyToMoveNumber(m.PlyIndex),
		})
	}
	return entries, nil
}

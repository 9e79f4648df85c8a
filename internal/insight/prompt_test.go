package insight_test

import (
	"testing"

	"blunderlog/internal/insight"
	"blunderlog/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	entries := []insight.Entry{
		{
			Mistake: storage.MistakeRecord{
				PositionFEN: "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2",
				Tag:         "tactics",
				Description: "missed a knight fork",
				Reflection:  "I stopped calculating after one move",
			},
			PlayerColor: "b",
			MoveNumber:  2,
		},
		{
			Mistake: storage.MistakeRecord{
				PositionFEN: "8/8/8/8/8/4k3/4p3/4K3 w - - 0 60",
				Tag:         "endgame",
				Description: "gave up the opposition",
			},
			PlayerColor: "w",
			MoveNumber:  60,
		},
	}

	prompt := insight.BuildPrompt(entries)
	assert.Contains(t, prompt, "2 entries")
	assert.Contains(t, prompt, "Playing as: Black")
	assert.Contains(t, prompt, "Playing as: White")
	assert.Contains(t, prompt, "missed a knight fork")
	assert.Contains(t, prompt, "Reflection: I stopped calculating after one move")
	// No reflection line for the entry without one.
	assert.Contains(t, prompt, "gave up the opposition")
	assert.Contains(t, prompt, "Move number: 60")
}

func TestDecodeReport(t *testing.T) {
	obj := map[string]any{
		"patterns": []any{
			map[string]any{
				"theme":       "shallow calculation",
				"description": "tactical oversights repeat in open positions",
				"tags":        []any{"tactics"},
			},
		},
		"advice": "drill two-move tactics daily",
	}

	report, err := insight.DecodeReport(obj)
	require.NoError(t, err)
	require.Len(t, report.Patterns, 1)
	assert.Equal(t, "shallow calculation", report.Patterns[0].Theme)
	assert.Equal(t, []string{"tactics"}, report.Patterns[0].Tags)
	assert.Equal(t, "drill two-move tactics daily", report.Advice)
}

func TestDecodeReportEmptyPatterns(t *testing.T) {
	report, err := insight.DecodeReport(map[string]any{"advice": "keep journaling"})
	require.NoError(t, err)
	assert.NotNil(t, report.Patterns)
	assert.Empty(t, report.Patterns)
}

func TestReportSchemaShape(t *testing.T) {
	schema := insight.ReportSchema()
	assert.Equal(t, "object", schema["type"])
	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "patterns")
	assert.Contains(t, props, "advice")
}

package insight

import (
	"encoding/json"
	"fmt"
	"strings"

	"blunderlog/internal/storage"
)

// Pattern is one recurring weakness the model identified.
type Pattern struct {
	Theme       string   `json:"theme"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Report is the structured summary returned by the model.
type Report struct {
	Patterns []Pattern `json:"patterns"`
	Advice   string    `json:"advice"`
}

const systemPrompt = `You are a chess coach reviewing a student's self-annotated mistake journal.
Each entry gives the position (FEN), which side the student played, the move number,
the student's own description of what went wrong, a category tag, and sometimes a
written reflection. Identify the recurring weaknesses across the entries and give
concrete, prioritized study advice. Ground every pattern in the entries provided;
do not invent mistakes the student did not record.`

// ReportSchemaName identifies the structured output format.
const ReportSchemaName = "mistake_report"

// ReportSchema is the json_schema the model output must conform to.
func ReportSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"patterns": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"theme":       map[string]any{"type": "string"},
						"description": map[string]any{"type": "string"},
						"tags": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
					},
					"required":             []string{"theme", "description", "tags"},
					"additionalProperties": false,
				},
			},
			"advice": map[string]any{"type": "string"},
		},
		"required":             []string{"patterns", "advice"},
		"additionalProperties": false,
	}
}

// Entry pairs a mistake with the side the student played in that game.
type Entry struct {
	Mistake     storage.MistakeRecord
	PlayerColor string // "w" or "b"
	MoveNumber  int
}

// BuildPrompt renders journal entries into the user message.
func BuildPrompt(entries []Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Mistake journal, %d entries, newest first.\n", len(entries))

	for i, e := range entries {
		side := "White"
		if e.PlayerColor == "b" {
			side = "Black"
		}
		fmt.Fprintf(&b, "\nEntry %d\n", i+1)
		fmt.Fprintf(&b, "Playing as: %s\n", side)
		fmt.Fprintf(&b, "Move number: %d\n", e.MoveNumber)
		fmt.Fprintf(&b, "Position: %s\n", e.Mistake.PositionFEN)
		fmt.Fprintf(&b, "Tag: %s\n", e.Mistake.Tag)
		fmt.Fprintf(&b, "What went wrong: %s\n", e.Mistake.Description)
		if e.Mistake.Reflection != "" {
			fmt.Fprintf(&b, "Reflection: %s\n", e.Mistake.Reflection)
		}
	}
	return b.String()
}

// SystemPrompt returns the coaching instructions.
func SystemPrompt() string {
	return systemPrompt
}

// DecodeReport converts the raw structured output into a Report.
func DecodeReport(obj map[string]any) (*Report, error) {
	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("re-encode report: %w", err)
	}
	var report Report
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	if report.Patterns == nil {
		report.Patterns = []Pattern{}
	}
	return &report, nil
}

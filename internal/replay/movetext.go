// Package replay provides the move-index model for stored games: a
// zero-based ply index as the single source of truth for "where in the
// game we are", deterministic position computation at any ply, conversion
// to and from conventional move numbers, and a navigation cursor. Chess
// rule enforcement, SAN decoding, and FEN generation are delegated to
// github.com/notnil/chess; this package only replays sequentially.
package replay

import (
	"errors"
	"regexp"
	"strings"

	"github.com/notnil/chess"
)

// StartingFEN is the canonical initial position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Headers holds the PGN tag pairs relevant to a journal import.
type Headers struct {
	White       string
	Black       string
	WhiteElo    string
	BlackElo    string
	TimeControl string
	Date        string
	Result      string
}

// ParsedGame is a fully-validated move list, produced by ParseMovetext.
type ParsedGame struct {
	Moves    []string // cleaned SAN tokens
	FinalFEN string
}

func (p *ParsedGame) TotalPlies() int {
	return len(p.Moves)
}

// MoveText returns the canonical stored form of the move list, which is
// also the dedup key for imports.
func (p *ParsedGame) MoveText() string {
	return strings.Join(p.Moves, " ")
}

var (
	tagPairRe = regexp.MustCompile(`\[\s*(\w+)\s+"([^"]*)"\s*\]`)
	bracketRe = regexp.MustCompile(`\[[^\]]*\]`)
)

// ExtractHeaders pulls the journal-relevant PGN tag pairs out of raw
// movetext. Missing tags stay empty.
func ExtractHeaders(raw string) Headers {
	var h Headers
	for _, m := range tagPairRe.FindAllStringSubmatch(raw, -1) {
		key, val := m[1], strings.TrimSpace(m[2])
		if val == "" || val == "?" || val == "????.??.??" {
			continue
		}
		switch key {
		case "White":
			h.White = val
		case "Black":
			h.Black = val
		case "WhiteElo":
			h.WhiteElo = val
		case "BlackElo":
			h.BlackElo = val
		case "TimeControl":
			h.TimeControl = val
		case "Date", "UTCDate":
			if h.Date == "" {
				h.Date = val
			}
		case "Result":
			h.Result = val
		}
	}
	return h
}

// CleanMovetext strips everything the replay engine must not see: PGN tag
// pairs, brace comments (clock annotations included), semicolon comments,
// recursive variations, NAGs, move numbers, annotation glyphs, and result
// tokens. The return value is the SAN tokens joined by single spaces.
func CleanMovetext(raw string) string {
	var b strings.Builder
	inBrace := false
	depth := 0

	for _, line := range strings.Split(raw, "\n") {
		skipRest := false
		for _, r := range line {
			if skipRest {
				continue
			}
			switch {
			case inBrace:
				if r == '}' {
					inBrace = false
				}
			case r == '{':
				inBrace = true
			case r == '(':
				depth++
			case r == ')':
				if depth > 0 {
					depth--
				}
			case r == ';' && depth == 0:
				skipRest = true
			case depth == 0:
				b.WriteRune(r)
			}
		}
		b.WriteByte(' ')
	}

	// Tag pairs survive the rune scan as "[Key ...]"; drop anything bracketed.
	text := bracketRe.ReplaceAllString(b.String(), " ")

	out := make([]string, 0, 64)
	for _, tok := range strings.Fields(text) {
		if strings.HasPrefix(tok, "$") {
			continue
		}
		switch tok {
		case "1-0", "0-1", "1/2-1/2", "*", "e.p.":
			continue
		}
		tok = trimMoveNumber(tok)
		tok = strings.TrimRight(tok, "!?")
		tok = normalizeCastling(tok)
		if tok == "" {
			continue
		}
		out = append(out, tok)
	}
	return strings.Join(out, " ")
}

// trimMoveNumber removes a leading "12." or "12..." prefix, glued or
// standalone. Tokens that start with digits but are not move numbers
// ("0-0", "1-0") pass through untouched.
func trimMoveNumber(tok string) string {
	i := 0
	for i < len(tok) && tok[i] >= '0' && tok[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(tok) || tok[i] != '.' {
		if i == len(tok) {
			return "" // bare number
		}
		return tok
	}
	for i < len(tok) && tok[i] == '.' {
		i++
	}
	return tok[i:]
}

// normalizeCastling rewrites zero-style castling to the SAN letter form.
func normalizeCastling(tok string) string {
	suffix := ""
	base := tok
	if n := len(base); n > 0 && (base[n-1] == '+' || base[n-1] == '#') {
		suffix = base[n-1:]
		base = base[:n-1]
	}
	switch base {
	case "0-0":
		return "O-O" + suffix
	case "0-0-0":
		return "O-O-O" + suffix
	}
	return tok
}

// ParseMovetext cleans raw movetext and validates it by full replay. On
// success it returns the parsed move list and any PGN headers found in the
// raw input. Failure is a permanent *ParseError.
func ParseMovetext(raw string) (*ParsedGame, Headers, error) {
	headers := ExtractHeaders(raw)
	cleaned := CleanMovetext(raw)
	if cleaned == "" {
		return nil, headers, &ParseError{Ply: 0, Token: "", Reason: errEmptyMovetext}
	}

	moves := strings.Fields(cleaned)
	g := chess.NewGame()
	for i, san := range moves {
		if err := g.MoveStr(san); err != nil {
			return nil, headers, &ParseError{Ply: i + 1, Token: san, Reason: err}
		}
	}

	return &ParsedGame{
		Moves:    moves,
		FinalFEN: g.Position().String(),
	}, headers, nil
}

var errEmptyMovetext = errors.New("no moves found after cleaning")

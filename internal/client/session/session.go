// Package session holds the interactive shell's state between commands.
package session

import (
	"blunderlog/internal/client/api"
	"blunderlog/internal/core"
	"blunderlog/internal/replay"
)

// Session tracks the authenticated connection and the currently open
// game with its navigation cursor.
type Session struct {
	APIBaseURL string
	Client     *api.Client
	AuthToken  string
	Verbose    bool

	Game   *core.GameResponse
	Walker *replay.Cursor
}

func (s *Session) GetAPIBaseURL() string    { return s.APIBaseURL }
func (s *Session) SetAPIBaseURL(url string) { s.APIBaseURL = url }
func (s *Session) GetClient() *api.Client   { return s.Client }
func (s *Session) IsVerbose() bool          { return s.Verbose }
func (s *Session) GetAuthToken() string     { return s.AuthToken }

func (s *Session) SetAuthToken(token string) {
	s.AuthToken = token
	s.Client.SetToken(token)
}

func (s *Session) CurrentGame() *core.GameResponse { return s.Game }

// SetCurrentGame swaps the open game and resets navigation to the start.
// A nil game closes the current one.
func (s *Session) SetCurrentGame(g *core.GameResponse, cursor *replay.Cursor) {
	s.Game = g
	s.Walker = cursor
}

func (s *Session) Cursor() *replay.Cursor { return s.Walker }

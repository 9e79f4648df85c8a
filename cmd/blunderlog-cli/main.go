// Package main implements the interactive journal shell: a readline REPL
// for importing games, stepping through positions, and marking mistakes.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"blunderlog/internal/client/api"
	"blunderlog/internal/client/commands"
	"blunderlog/internal/client/display"
	"blunderlog/internal/client/session"
	"blunderlog/internal/replay"

	"github.com/chzyer/readline"
)

func main() {
	baseURL := os.Getenv("BLUNDERLOG_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	s := &session.Session{
		APIBaseURL: baseURL,
		Client:     api.New(baseURL),
		Verbose:    false,
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          display.Prompt("blunderlog"),
		HistoryFile:     ".blunderlog_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("%s%s%s\n", display.Red, err.Error(), display.Reset)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Printf("%sBlunderlog Journal Shell%s\n", display.Cyan, display.Reset)
	fmt.Printf("%sAPI: %s%s\n", display.Cyan, s.APIBaseURL, display.Reset)
	fmt.Printf("Type 'login' to authenticate, 'help' for commands\n\n")

	registry := commands.NewRegistry(s)

	for {
		rl.SetPrompt(buildPrompt(s))

		line, err := rl.Readline()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if line == "exit" || line == "quit" || line == "x" {
			break
		}

		// Check for verbose flag
		if strings.HasSuffix(line, " -v") {
			s.Verbose = true
			line = strings.TrimSuffix(line, " -v")
		} else {
			s.Verbose = false
		}

		registry.Execute(line)
	}
}

// buildPrompt shows the open game and the cursor's place in it.
func buildPrompt(s *session.Session) string {
	promptStr := "blunderlog"

	if s.AuthToken == "" {
		return display.Prompt(promptStr + display.Red + " [unauthenticated]" + display.Reset)
	}

	if s.Game != nil {
		promptStr += fmt.Sprintf("%s [%s%s%s", display.Yellow, display.White, s.Game.GameID[:8], display.Reset)
		if s.Walker != nil {
			promptStr += fmt.Sprintf(" %s%s %d/%d%s",
				display.Cyan, replay.MoveLabel(s.Walker.Ply()), s.Walker.Ply(), s.Walker.TotalPlies(), display.Reset)
		}
		promptStr += display.Yellow + "]" + display.Reset
	}

	return display.Prompt(promptStr)
}

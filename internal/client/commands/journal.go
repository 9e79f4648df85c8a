package commands

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"blunderlog/internal/client/display"
	"blunderlog/internal/core"
	"blunderlog/internal/replay"
)

func (r *Registry) registerJournalCommands() {
	r.Register(&Command{
		Name:        "import",
		ShortName:   "i",
		Description: "Import a game from a PGN file or pasted movetext",
		Usage:       "import [file]",
		Handler:     importHandler,
	})

	r.Register(&Command{
		Name:        "games",
		ShortName:   "g",
		Description: "List imported games",
		Usage:       "games [limit]",
		Handler:     listGamesHandler,
	})

	r.Register(&Command{
		Name:        "open",
		ShortName:   "o",
		Description: "Open a game for navigation",
		Usage:       "open <gameId>",
		Handler:     openHandler,
	})

	r.Register(&Command{
		Name:        "show",
		ShortName:   "h",
		Description: "Show the board at the current ply",
		Usage:       "show",
		Handler:     showHandler,
	})

	r.Register(&Command{
		Name:        "next",
		ShortName:   "n",
		Description: "Step one ply forward",
		Usage:       "next",
		Handler:     nextHandler,
	})

	r.Register(&Command{
		Name:        "prev",
		ShortName:   "p",
		Description: "Step one ply back",
		Usage:       "prev",
		Handler:     prevHandler,
	})

	r.Register(&Command{
		Name:        "goto",
		ShortName:   "t",
		Description: "Jump to a ply, 'start', 'end', or my move mN",
		Usage:       "goto <ply|start|end|mN>",
		Handler:     gotoHandler,
	})

	r.Register(&Command{
		Name:        "mark",
		ShortName:   "m",
		Description: "Record a mistake at the current ply",
		Usage:       "mark",
		Handler:     markHandler,
	})

	r.Register(&Command{
		Name:        "mistakes",
		ShortName:   "s",
		Description: "List mistakes (current game, or all with 'all')",
		Usage:       "mistakes [all] [tag]",
		Handler:     listMistakesHandler,
	})

	r.Register(&Command{
		Name:        "tags",
		ShortName:   "a",
		Description: "Show tag frequency",
		Usage:       "tags",
		Handler:     tagsHandler,
	})

	r.Register(&Command{
		Name:        "insight",
		ShortName:   "q",
		Description: "Ask the coach for recurring patterns",
		Usage:       "insight [tag]",
		Handler:     insightHandler,
	})

	r.Register(&Command{
		Name:        "delete",
		ShortName:   "d",
		Description: "Delete a game and its mistakes",
		Usage:       "delete [gameId]",
		Handler:     deleteGameHandler,
	})
}

func importHandler(s Session, args []string) error {
	c := s.GetClient()
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var moveText string
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		moveText = string(data)
	} else {
		fmt.Printf("%sPaste PGN or movetext, end with a line containing only '.'%s\n", display.Cyan, display.Reset)
		var lines []string
		for scanner.Scan() {
			line := scanner.Text()
			if strings.TrimSpace(line) == "." {
				break
			}
			lines = append(lines, line)
		}
		moveText = strings.Join(lines, "\n")
	}
	if strings.TrimSpace(moveText) == "" {
		return fmt.Errorf("no movetext given")
	}

	fmt.Print(display.Yellow + "Which side did you play? (w/b) [w]: " + display.Reset)
	scanner.Scan()
	color := strings.ToLower(strings.TrimSpace(scanner.Text()))
	if color == "" {
		color = "w"
	}
	if color != "w" && color != "b" {
		return fmt.Errorf("side must be w or b")
	}

	game, err := c.ImportGame(&core.ImportGameRequest{
		MoveText:    moveText,
		PlayerColor: color,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%sImported game %s (%d plies)%s\n", display.Green, game.GameID, game.TotalPlies, display.Reset)
	return openGame(s, game)
}

func listGamesHandler(s Session, args []string) error {
	limit := 20
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			limit = n
		}
	}

	resp, err := s.GetClient().ListGames(limit, 0)
	if err != nil {
		return err
	}
	if len(resp.Games) == 0 {
		fmt.Println("No games imported yet")
		return nil
	}

	for _, g := range resp.Games {
		side := display.ColorForTurn(g.PlayerColor)
		opponent := g.Opponent
		if opponent == "" {
			opponent = "?"
		}
		fmt.Printf("  %s%s%s  as %s vs %-20s %3d plies  %s\n",
			display.White, g.GameID[:8], display.Reset, side, opponent, g.TotalPlies, g.DatePlayed)
	}
	return nil
}

func openHandler(s Session, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: open <gameId>")
	}

	game, err := s.GetClient().GetGame(args[0])
	if err != nil {
		return err
	}
	return openGame(s, game)
}

// openGame builds a local navigation cursor over the game's move list and
// renders the starting position.
func openGame(s Session, game *core.GameResponse) error {
	cursor := replay.NewCursor(strings.Fields(game.MoveText))
	s.SetCurrentGame(game, cursor)
	return renderCursor(s)
}

func showHandler(s Session, args []string) error {
	return renderCursor(s)
}

func nextHandler(s Session, args []string) error {
	cursor, err := requireOpenGame(s)
	if err != nil {
		return err
	}
	if !cursor.Advance() {
		fmt.Printf("%sAlready at the end%s\n", display.Yellow, display.Reset)
		return nil
	}
	return renderCursor(s)
}

func prevHandler(s Session, args []string) error {
	cursor, err := requireOpenGame(s)
	if err != nil {
		return err
	}
	if !cursor.Retreat() {
		fmt.Printf("%sAlready at the start%s\n", display.Yellow, display.Reset)
		return nil
	}
	return renderCursor(s)
}

func gotoHandler(s Session, args []string) error {
	cursor, err := requireOpenGame(s)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: goto <ply|start|end|mN>")
	}

	game := s.CurrentGame()
	arg := strings.ToLower(args[0])
	switch {
	case arg == "start":
		if err := cursor.Seek(0); err != nil {
			return err
		}
	case arg == "end":
		if err := cursor.Seek(cursor.TotalPlies()); err != nil {
			return err
		}
	case strings.HasPrefix(arg, "m"):
		// "m12" means the journaling player's 12th move; the server
		// resolves and clamps it.
		moveNumber, err := strconv.Atoi(arg[1:])
		if err != nil || moveNumber < 1 {
			return fmt.Errorf("move number must be a positive integer")
		}
		res, err := s.GetClient().ResolveMoveNumber(game.GameID, moveNumber)
		if err != nil {
			return err
		}
		if res.Clamped {
			fmt.Printf("%sMove %d is past the end; showing ply %d%s\n",
				display.Yellow, moveNumber, res.PlyIndex, display.Reset)
		}
		if err := cursor.Seek(res.PlyIndex); err != nil {
			return err
		}
	default:
		plyIndex, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("ply must be an integer, 'start', 'end', or mN")
		}
		if err := cursor.Seek(plyIndex); err != nil {
			return err
		}
	}
	return renderCursor(s)
}

func markHandler(s Session, args []string) error {
	cursor, err := requireOpenGame(s)
	if err != nil {
		return err
	}
	game := s.CurrentGame()
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Printf("%sMarking mistake at %s (ply %d)%s\n",
		display.Cyan, replay.MoveLabel(cursor.Ply()), cursor.Ply(), display.Reset)

	fmt.Print(display.Yellow + "What went wrong: " + display.Reset)
	scanner.Scan()
	description := strings.TrimSpace(scanner.Text())
	if description == "" {
		return fmt.Errorf("description required")
	}

	fmt.Print(display.Yellow + "Tag: " + display.Reset)
	scanner.Scan()
	tag := strings.TrimSpace(scanner.Text())
	if tag == "" {
		return fmt.Errorf("tag required")
	}

	fmt.Print(display.Yellow + "Reflection (optional): " + display.Reset)
	scanner.Scan()
	reflection := strings.TrimSpace(scanner.Text())

	plyIndex := cursor.Ply()
	mistake, err := s.GetClient().CreateMistake(game.GameID, &core.CreateMistakeRequest{
		PlyIndex:    &plyIndex,
		Description: description,
		Tag:         tag,
		Reflection:  reflection,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%sRecorded mistake %s at %s%s\n",
		display.Green, mistake.MistakeID[:8], mistake.MoveLabel, display.Reset)
	return nil
}

func listMistakesHandler(s Session, args []string) error {
	gameID := ""
	if game := s.CurrentGame(); game != nil {
		gameID = game.GameID
	}

	tag := ""
	for _, arg := range args {
		if arg == "all" {
			gameID = ""
			continue
		}
		tag = arg
	}

	resp, err := s.GetClient().ListMistakes(gameID, tag, 50)
	if err != nil {
		return err
	}
	if len(resp.Mistakes) == 0 {
		fmt.Println("No mistakes recorded")
		return nil
	}

	for _, m := range resp.Mistakes {
		fmt.Printf("  %s%s%s  %-6s %s[%s]%s %s\n",
			display.White, m.MistakeID[:8], display.Reset,
			m.MoveLabel, display.Magenta, m.Tag, display.Reset, m.Description)
	}
	return nil
}

func tagsHandler(s Session, args []string) error {
	resp, err := s.GetClient().ListTags()
	if err != nil {
		return err
	}
	if len(resp.Tags) == 0 {
		fmt.Println("No tags yet")
		return nil
	}

	for _, t := range resp.Tags {
		fmt.Printf("  %s%-20s%s %d\n", display.Magenta, t.Tag, display.Reset, t.Count)
	}
	return nil
}

func insightHandler(s Session, args []string) error {
	req := &core.InsightRequest{}
	if len(args) > 0 {
		req.Tag = args[0]
	}

	fmt.Printf("%sAsking the coach...%s\n", display.Cyan, display.Reset)
	resp, err := s.GetClient().GenerateInsight(req)
	if err != nil {
		return err
	}

	fmt.Printf("\n%sPatterns (%d annotations examined):%s\n", display.Cyan, resp.Examined, display.Reset)
	for _, p := range resp.Patterns {
		fmt.Printf("  %s%s%s", display.Yellow, p.Theme, display.Reset)
		if len(p.Tags) > 0 {
			fmt.Printf(" %s[%s]%s", display.Magenta, strings.Join(p.Tags, ", "), display.Reset)
		}
		fmt.Printf("\n    %s\n", p.Description)
	}
	fmt.Printf("\n%sAdvice:%s %s\n", display.Green, display.Reset, resp.Advice)
	return nil
}

func deleteGameHandler(s Session, args []string) error {
	gameID := ""
	if len(args) > 0 {
		gameID = args[0]
	} else if game := s.CurrentGame(); game != nil {
		gameID = game.GameID
	}
	if gameID == "" {
		return fmt.Errorf("usage: delete <gameId>")
	}

	if err := s.GetClient().DeleteGame(gameID); err != nil {
		return err
	}

	if game := s.CurrentGame(); game != nil && game.GameID == gameID {
		s.SetCurrentGame(nil, nil)
	}
	fmt.Printf("%sDeleted game %s%s\n", display.Green, gameID, display.Reset)
	return nil
}

// requireOpenGame returns the navigation cursor or a usage error.
func requireOpenGame(s Session) (*replay.Cursor, error) {
	cursor := s.Cursor()
	if cursor == nil {
		return nil, fmt.Errorf("no game open; use 'open <gameId>' first")
	}
	return cursor, nil
}

// renderCursor draws the board at the cursor's ply from a local replay.
func renderCursor(s Session) error {
	cursor, err := requireOpenGame(s)
	if err != nil {
		return err
	}

	fen, err := cursor.Position()
	if err != nil {
		return err
	}

	fmt.Println()
	display.RenderFEN(fen)
	sideToMove := replay.SideToMove(fen)
	fmt.Printf("%s (ply %d/%d), %s to move\n",
		replay.MoveLabel(cursor.Ply()), cursor.Ply(), cursor.TotalPlies(),
		display.ColorForTurn(sideToMove))
	return nil
}

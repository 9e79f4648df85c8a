package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// InsertGame records an imported game. A move-text collision returns
// ErrDuplicateGame so the import collaborator can answer "already
// imported".
func (s *Store) InsertGame(record GameRecord) error {
	return s.withTx(func(tx *sql.Tx) error {
		query := `INSERT INTO games (
			game_id, move_text, total_plies, player_color,
			opponent, opponent_rating, time_control, result, date_played,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

		_, err := tx.Exec(query,
			record.GameID, record.MoveText, record.TotalPlies, record.PlayerColor,
			nullString(record.Opponent), nullInt(record.OpponentRating),
			nullString(record.TimeControl), nullString(record.Result),
			nullString(record.DatePlayed), record.CreatedAt,
		)
		if isUniqueViolation(err) {
			return ErrDuplicateGame
		}
		return err
	})
}

// GetGame retrieves a game by ID
func (s *Store) GetGame(gameID string) (*GameRecord, error) {
	row := s.db.QueryRow(`SELECT `+gameColumns+` FROM games WHERE game_id = ?`, gameID)
	return scanGame(row)
}

// ListGames retrieves games newest first.
func (s *Store) ListGames(limit, offset int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT `+gameColumns+` FROM games ORDER BY created_at DESC, game_id LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return games, nil
}

// UpdateGameMeta patches the mutable metadata fields. Move text and
// player color are immutable by design and cannot be reached here.
func (s *Store) UpdateGameMeta(gameID string, patch GameMetaPatch) error {
	set := ""
	var args []any
	add := func(col string, v any) {
		if set != "" {
			set += ", "
		}
		set += col + " = ?"
		args = append(args, v)
	}

	if patch.Opponent != nil {
		add("opponent", nullString(*patch.Opponent))
	}
	if patch.OpponentRating != nil {
		add("opponent_rating", *patch.OpponentRating)
	}
	if patch.TimeControl != nil {
		add("time_control", nullString(*patch.TimeControl))
	}
	if patch.Result != nil {
		add("result", nullString(*patch.Result))
	}
	if patch.DatePlayed != nil {
		add("date_played", nullString(*patch.DatePlayed))
	}
	if set == "" {
		return nil // nothing to patch
	}
	args = append(args, gameID)

	return s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(`UPDATE games SET `+set+` WHERE game_id = ?`, args...)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// DeleteGame removes a game; the foreign key cascades to its mistakes.
func (s *Store) DeleteGame(gameID string) error {
	return s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(`DELETE FROM games WHERE game_id = ?`, gameID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

const gameColumns = `game_id, move_text, total_plies, player_color,
	opponent, opponent_rating, time_control, result, date_played, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*GameRecord, error) {
	var g GameRecord
	var opponent, timeControl, result, datePlayed sql.NullString
	var rating sql.NullInt64

	err := row.Scan(
		&g.GameID, &g.MoveText, &g.TotalPlies, &g.PlayerColor,
		&opponent, &rating, &timeControl, &result, &datePlayed, &g.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	g.Opponent = opponent.String
	g.TimeControl = timeControl.String
	g.Result = result.String
	g.DatePlayed = datePlayed.String
	if rating.Valid {
		r := int(rating.Int64)
		g.OpponentRating = &r
	}
	return &g, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

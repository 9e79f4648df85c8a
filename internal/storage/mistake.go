package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// InsertMistake records an annotation. The caller has already validated
// the ply bounds and captured the position snapshot.
func (s *Store) InsertMistake(record MistakeRecord) error {
	return s.withTx(func(tx *sql.Tx) error {
		query := `INSERT INTO mistakes (
			mistake_id, game_id, ply_index, position_fen,
			description, tag, reflection, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

		_, err := tx.Exec(query,
			record.MistakeID, record.GameID, record.PlyIndex, record.PositionFEN,
			record.Description, record.Tag, nullString(record.Reflection),
			record.CreatedAt, record.UpdatedAt,
		)
		return err
	})
}

// GetMistake retrieves a single annotation by ID
func (s *Store) GetMistake(mistakeID string) (*MistakeRecord, error) {
	row := s.db.QueryRow(`SELECT `+mistakeColumns+` FROM mistakes WHERE mistake_id = ?`, mistakeID)
	return scanMistake(row)
}

// ListMistakes retrieves annotations newest first, with optional exact-tag
// and game filters.
func (s *Store) ListMistakes(filter MistakeFilter) ([]MistakeRecord, error) {
	query := `SELECT ` + mistakeColumns + ` FROM mistakes WHERE 1=1`
	var args []any

	if filter.GameID != "" {
		query += " AND game_id = ?"
		args = append(args, filter.GameID)
	}
	if filter.Tag != "" {
		query += " AND tag = ?"
		args = append(args, filter.Tag)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += " ORDER BY created_at DESC, mistake_id LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var mistakes []MistakeRecord
	for rows.Next() {
		m, err := scanMistake(rows)
		if err != nil {
			return nil, err
		}
		mistakes = append(mistakes, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return mistakes, nil
}

// UpdateMistake patches description/tag/reflection and touches updated_at.
// PlyIndex and PositionFEN are immutable after creation.
func (s *Store) UpdateMistake(mistakeID string, patch MistakePatch, now time.Time) error {
	set := "updated_at = ?"
	args := []any{now}

	if patch.Description != nil {
		set += ", description = ?"
		args = append(args, *patch.Description)
	}
	if patch.Tag != nil {
		set += ", tag = ?"
		args = append(args, *patch.Tag)
	}
	if patch.Reflection != nil {
		set += ", reflection = ?"
		args = append(args, nullString(*patch.Reflection))
	}
	args = append(args, mistakeID)

	return s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(`UPDATE mistakes SET `+set+` WHERE mistake_id = ?`, args...)
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

// DeleteMistake removes one annotation
func (s *Store) DeleteMistake(mistakeID string) error {
	return s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(`DELETE FROM mistakes WHERE mistake_id = ?`, mistakeID)
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

// TagCounts aggregates annotation frequency per tag, most used first.
func (s *Store) TagCounts() ([]TagCount, error) {
	rows, err := s.db.Query(`SELECT tag, COUNT(*) FROM mistakes GROUP BY tag ORDER BY COUNT(*) DESC, tag`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var counts []TagCount
	for rows.Next() {
		var tc TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		counts = append(counts, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return counts, nil
}

const mistakeColumns = `mistake_id, game_id, ply_index, position_fen,
	description, tag, reflection, created_at, updated_at`

func scanMistake(row rowScanner) (*MistakeRecord, error) {
	var m MistakeRecord
	var reflection sql.NullString

	err := row.Scan(
		&m.MistakeID, &m.GameID, &m.PlyIndex, &m.PositionFEN,
		&m.Description, &m.Tag, &reflection, &m.CreatedAt, &m.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	m.Reflection = reflection.String
	return &m, nil
}

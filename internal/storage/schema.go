package storage

import "time"

// GameRecord represents a row in the games table. Move text is immutable
// after creation and unique across all records: it is the dedup key that
// rejects importing the same game twice.
type GameRecord struct {
	GameID         string    `db:"game_id"`
	MoveText       string    `db:"move_text"`
	TotalPlies     int       `db:"total_plies"`
	PlayerColor    string    `db:"player_color"` // "w" or "b"
	Opponent       string    `db:"opponent"`
	OpponentRating *int      `db:"opponent_rating"`
	TimeControl    string    `db:"time_control"`
	Result         string    `db:"result"`
	DatePlayed     string    `db:"date_played"` // "2006-01-02" or empty
	CreatedAt      time.Time `db:"created_at"`
}

// MistakeRecord represents a row in the mistakes table. PlyIndex and
// PositionFEN are paired at write time and immutable after creation; the
// stored snapshot is authoritative for display and is never re-derived.
type MistakeRecord struct {
	MistakeID   string    `db:"mistake_id"`
	GameID      string    `db:"game_id"`
	PlyIndex    int       `db:"ply_index"`
	PositionFEN string    `db:"position_fen"`
	Description string    `db:"description"`
	Tag         string    `db:"tag"`
	Reflection  string    `db:"reflection"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// GameMetaPatch carries the mutable metadata fields of a game. Nil fields
// are left untouched.
type GameMetaPatch struct {
	Opponent       *string
	OpponentRating *int
	TimeControl    *string
	Result         *string
	DatePlayed     *string
}

// MistakePatch carries the mutable fields of a mistake annotation.
type MistakePatch struct {
	Description *string
	Tag         *string
	Reflection  *string
}

// MistakeFilter narrows and pages a mistake listing.
type MistakeFilter struct {
	GameID string
	Tag    string // exact match
	Limit  int
	Offset int
}

// TagCount is one row of the tag-frequency aggregation.
type TagCount struct {
	Tag   string
	Count int
}

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS games (
	game_id TEXT PRIMARY KEY,
	move_text TEXT NOT NULL UNIQUE,
	total_plies INTEGER NOT NULL CHECK(total_plies >= 0),
	player_color TEXT NOT NULL CHECK(player_color IN ('w', 'b')),
	opponent TEXT,
	opponent_rating INTEGER,
	time_control TEXT,
	result TEXT,
	date_played TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_games_created_at ON games(created_at);

CREATE TABLE IF NOT EXISTS mistakes (
	mistake_id TEXT PRIMARY KEY,
	game_id TEXT NOT NULL,
	ply_index INTEGER NOT NULL CHECK(ply_index >= 0),
	position_fen TEXT NOT NULL,
	description TEXT NOT NULL,
	tag TEXT NOT NULL,
	reflection TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (game_id) REFERENCES games(game_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_mistakes_game_id ON mistakes(game_id);
CREATE INDEX IF NOT EXISTS idx_mistakes_tag ON mistakes(tag);
CREATE INDEX IF NOT EXISTS idx_mistakes_created_at ON mistakes(created_at);
`

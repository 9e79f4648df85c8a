package core

// Request types

type LoginRequest struct {
	Passphrase string `json:"passphrase" validate:"required,min=1,max=256"`
}

type ImportGameRequest struct {
	MoveText       string `json:"moveText" validate:"required,min=2,max=20000"`
	PlayerColor    string `json:"playerColor" validate:"required,oneof=w b"`
	Opponent       string `json:"opponent,omitempty" validate:"omitempty,max=120"`
	OpponentRating *int   `json:"opponentRating,omitempty" validate:"omitempty,min=0,max=4000"`
	TimeControl    string `json:"timeControl,omitempty" validate:"omitempty,max=40"` // free-form, e.g. "600+5"
	Result         string `json:"result,omitempty" validate:"omitempty,oneof=1-0 0-1 1/2-1/2 *"`
	DatePlayed     string `json:"datePlayed,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateGameRequest patches optional metadata only; move text is immutable.
type UpdateGameRequest struct {
	Opponent       *string `json:"opponent,omitempty" validate:"omitempty,max=120"`
	OpponentRating *int    `json:"opponentRating,omitempty" validate:"omitempty,min=0,max=4000"`
	TimeControl    *string `json:"timeControl,omitempty" validate:"omitempty,max=40"`
	Result         *string `json:"result,omitempty" validate:"omitempty,oneof=1-0 0-1 1/2-1/2 *"`
	DatePlayed     *string `json:"datePlayed,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type CreateMistakeRequest struct {
	PlyIndex    *int   `json:"plyIndex" validate:"required,min=0,max=1024"`
	Description string `json:"description" validate:"required,min=1,max=500"`
	Tag         string `json:"tag" validate:"required,min=1,max=80"`
	Reflection  string `json:"reflection,omitempty" validate:"omitempty,max=5000"`
}

type UpdateMistakeRequest struct {
	Description *string `json:"description,omitempty" validate:"omitempty,min=1,max=500"`
	Tag         *string `json:"tag,omitempty" validate:"omitempty,min=1,max=80"`
	Reflection  *string `json:"reflection,omitempty" validate:"omitempty,max=5000"`
}

type InsightRequest struct {
	Tag   string `json:"tag,omitempty" validate:"omitempty,max=80"`
	Limit int    `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
}

// Response types

type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"` // unix seconds
}

type GameResponse struct {
	GameID         string `json:"gameId"`
	MoveText       string `json:"moveText"`
	TotalPlies     int    `json:"totalPlies"`
	PlayerColor    string `json:"playerColor"`
	Opponent       string `json:"opponent,omitempty"`
	OpponentRating *int   `json:"opponentRating,omitempty"`
	TimeControl    string `json:"timeControl,omitempty"`
	Result         string `json:"result,omitempty"`
	DatePlayed     string `json:"datePlayed,omitempty"`
	CreatedAt      string `json:"createdAt"`
}

type GameListResponse struct {
	Games  []GameResponse `json:"games"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

type PositionResponse struct {
	GameID     string `json:"gameId"`
	PlyIndex   int    `json:"plyIndex"`
	TotalPlies int    `json:"totalPlies"`
	FEN        string `json:"fen"`
	MoveLabel  string `json:"moveLabel"` // "start", "1.", "1...", ...
	SideToMove string `json:"sideToMove"`
}

type ResolveResponse struct {
	GameID     string `json:"gameId"`
	MoveNumber int    `json:"moveNumber"`
	PlyIndex   int    `json:"plyIndex"`
	FEN        string `json:"fen"`
	Clamped    bool   `json:"clamped"`
}

type MistakeResponse struct {
	MistakeID   string `json:"mistakeId"`
	GameID      string `json:"gameId"`
	PlyIndex    int    `json:"plyIndex"`
	FEN         string `json:"fen"`
	MoveLabel   string `json:"moveLabel"`
	Description string `json:"description"`
	Tag         string `json:"tag"`
	Reflection  string `json:"reflection,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type MistakeListResponse struct {
	Mistakes []MistakeResponse `json:"mistakes"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type TagListResponse struct {
	Tags []TagCount `json:"tags"`
}

type InsightPattern struct {
	Theme       string   `json:"theme"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type InsightResponse struct {
	Patterns []InsightPattern `json:"patterns"`
	Advice   string           `json:"advice"`
	Examined int              `json:"examined"` // annotations included in the prompt
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

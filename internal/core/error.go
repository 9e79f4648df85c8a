package core

// Error codes
const (
	ErrGameNotFound      = "GAME_NOT_FOUND"
	ErrMistakeNotFound   = "MISTAKE_NOT_FOUND"
	ErrDuplicateGame     = "DUPLICATE_GAME"
	ErrParseFailed       = "PARSE_FAILED"
	ErrIndexOutOfRange   = "INDEX_OUT_OF_RANGE"
	ErrReplayFailed      = "REPLAY_FAILED"
	ErrRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrInvalidContent    = "INVALID_CONTENT_TYPE"
	ErrInvalidRequest    = "INVALID_REQUEST"
	ErrUnauthorized      = "UNAUTHORIZED"
	ErrInsightFailed     = "INSIGHT_FAILED"
	ErrInternalError     = "INTERNAL_ERROR"
)

package replay

import "fmt"

// ParseError reports movetext that cannot be replayed as legal chess.
// It is a permanent rejection of the input, never retried.
type ParseError struct {
	Ply    int    // 1-based half-move at which replay failed
	Token  string // the offending SAN token
	Reason error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("movetext invalid at ply %d (%q): %v", e.Ply, e.Token, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Reason
}

// IndexOutOfRangeError reports a ply index outside [0, total].
type IndexOutOfRangeError struct {
	Requested int
	Total     int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("ply index %d out of range [0, %d]", e.Requested, e.Total)
}

// ReplayError reports a move from previously-validated stored movetext
// failing to apply. This indicates corrupted storage or a replay defect,
// not user error, and must not be retried.
type ReplayError struct {
	Ply   int // 1-based half-move that failed
	Token string
	Cause error
}

func (e *ReplayError) Error() string {
	return fmt.Sprintf("replay of stored move list failed at ply %d (%q): %v", e.Ply, e.Token, e.Cause)
}

func (e *ReplayError) Unwrap() error {
	return e.Cause
}

package replay

// Cursor is a navigation position over a fixed move list. Its only state
// is the integer ply index; board positions are always re-derived through
// PositionAt, so cursor state and displayed position cannot diverge.
type Cursor struct {
	moves   []string
	current int
}

// NewCursor starts at ply 0 (the initial position).
func NewCursor(moves []string) *Cursor {
	return &Cursor{moves: moves}
}

func (c *Cursor) Ply() int {
	return c.current
}

func (c *Cursor) TotalPlies() int {
	return len(c.moves)
}

// Advance steps one ply forward. At the end of the game it is a no-op and
// returns false.
func (c *Cursor) Advance() bool {
	if c.current >= len(c.moves) {
		return false
	}
	c.current++
	return true
}

// Retreat steps one ply back. At the start it is a no-op and returns false.
func (c *Cursor) Retreat() bool {
	if c.current <= 0 {
		return false
	}
	c.current--
	return true
}

// Seek jumps to an arbitrary ply. Out-of-range targets leave the cursor
// untouched and return *IndexOutOfRangeError; a seek never partially
// applies.
func (c *Cursor) Seek(plyIndex int) error {
	if plyIndex < 0 || plyIndex > len(c.moves) {
		return &IndexOutOfRangeError{Requested: plyIndex, Total: len(c.moves)}
	}
	c.current = plyIndex
	return nil
}

func (c *Cursor) AtStart() bool {
	return c.current == 0
}

func (c *Cursor) AtEnd() bool {
	return c.current == len(c.moves)
}

func (c *Cursor) CanAdvance() bool {
	return c.current < len(c.moves)
}

func (c *Cursor) CanRetreat() bool {
	return c.current > 0
}

// Position computes the board position at the cursor's ply.
func (c *Cursor) Position() (string, error) {
	return PositionAt(c.moves, c.current)
}

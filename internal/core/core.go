package core

// Color identifies which side of the board the journaling user played.
type Color string

const (
	ColorWhite Color = "w"
	ColorBlack Color = "b"
)

func (c Color) Valid() bool {
	return c == ColorWhite || c == ColorBlack
}

func (c Color) String() string {
	return string(c)
}

func OppositeColor(c Color) Color {
	if c == ColorWhite {
		return ColorBlack
	}
	return ColorWhite
}

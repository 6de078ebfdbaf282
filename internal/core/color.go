package core

// Color is the foreground color of a screen cell. The platform decides how
// each value is shown; games only pick one.
type Color uint8

// Screen colors. ColorDefault leaves the terminal foreground alone.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray

	// NumColors is the number of defined colors.
	NumColors = int(iota)
)

// Valid reports whether c is one of the defined colors.
func (c Color) Valid() bool {
	return int(c) < NumColors
}

package core

// Color represents a foreground color for a screen cell.
// The TUI layer maps these to ANSI colors; the game core only tags cells.
type Color uint8

// Predefined colors. The first seven after Default follow the guideline
// tetromino palette (I cyan, O yellow, T magenta, S green, Z red, J blue,
// L orange) so board cells can be tagged directly with a piece color.
const (
	ColorDefault Color = iota
	ColorCyan
	ColorYellow
	ColorMagenta
	ColorGreen
	ColorRed
	ColorBlue
	ColorOrange
	ColorWhite
	ColorGray
	ColorBrightWhite
)

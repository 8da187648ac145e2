package multiplayer

import (
	"github.com/termtris/termtris/internal/core"
	"github.com/termtris/termtris/internal/game"
)

// Board snapshots travel as one byte per visible cell, row-major from
// the bottom row up: 0 for empty, 1..7 for the seven piece colors.
// Garbage and anything unrecognized collapse into 7.

func cellToIndex(c core.Color) byte {
	switch c {
	case core.ColorDefault:
		return 0
	case core.ColorCyan:
		return 1
	case core.ColorYellow:
		return 2
	case core.ColorMagenta:
		return 3
	case core.ColorGreen:
		return 4
	case core.ColorRed:
		return 5
	case core.ColorBlue:
		return 6
	default:
		return 7
	}
}

func cellFromIndex(i byte) core.Color {
	switch i {
	case 0:
		return core.ColorDefault
	case 1:
		return core.ColorCyan
	case 2:
		return core.ColorYellow
	case 3:
		return core.ColorMagenta
	case 4:
		return core.ColorGreen
	case 5:
		return core.ColorRed
	case 6:
		return core.ColorBlue
	default:
		return core.ColorOrange
	}
}

// EncodeBoard serializes the visible rows of a board. The buffer rows
// above the skyline never travel.
func EncodeBoard(b *game.Board) []byte {
	cells := make([]byte, 0, game.BoardHeight*game.BoardWidth)
	for row := 0; row < game.BoardHeight; row++ {
		for col := 0; col < game.BoardWidth; col++ {
			cell, _ := b.Get(row, col)
			cells = append(cells, cellToIndex(cell.Color))
		}
	}
	return cells
}

// OpponentView mirrors the far side of a match for rendering. It is
// updated from snapshot events and read by the render loop; the TUI
// owns it single-threaded.
type OpponentView struct {
	Name     string
	Cells    [game.BoardHeight][game.BoardWidth]core.Color
	Points   uint64
	Lines    int
	Level    int
	GameOver bool
}

// NewOpponentView returns an empty view with a placeholder name.
func NewOpponentView() *OpponentView {
	return &OpponentView{Name: "Opponent", Level: 1}
}

// Apply updates the view from a board snapshot. Short payloads leave
// the remaining cells untouched.
func (v *OpponentView) Apply(cells []byte, points uint64, lines, level int) {
	v.Points = points
	v.Lines = lines
	v.Level = level
	for row := 0; row < game.BoardHeight; row++ {
		for col := 0; col < game.BoardWidth; col++ {
			idx := row*game.BoardWidth + col
			if idx < len(cells) {
				v.Cells[row][col] = cellFromIndex(cells[idx])
			}
		}
	}
}

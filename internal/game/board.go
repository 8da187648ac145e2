package game

import "github.com/termtris/termtris/internal/core"

// Standard board dimensions.
const (
	BoardWidth   = 10
	BoardHeight  = 20 // visible rows
	BufferHeight = 4  // hidden rows above the visible area for spawning
	TotalHeight  = BoardHeight + BufferHeight
)

// Cell is a single board cell: empty, or filled with a piece color.
type Cell struct {
	Color core.Color // ColorDefault means empty
}

// IsEmpty reports whether the cell holds no block.
func (c Cell) IsEmpty() bool { return c.Color == core.ColorDefault }

// IsFilled reports whether the cell holds a locked block.
func (c Cell) IsFilled() bool { return c.Color != core.ColorDefault }

// Position is an absolute (row, col) board coordinate.
// Row 0 is the bottom row; rows increase upward.
type Position struct {
	Row, Col int
}

// Board is the cell grid. It is mutated only by LockPiece, ClearLines, and
// garbage injection; piece movement only queries it.
type Board struct {
	// cells[row][col], row 0 = bottom.
	cells [TotalHeight][BoardWidth]Cell
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{}
}

// Get returns the cell at (row, col) and whether the coordinate is in
// bounds.
func (b *Board) Get(row, col int) (Cell, bool) {
	if row < 0 || col < 0 || row >= TotalHeight || col >= BoardWidth {
		return Cell{}, false
	}
	return b.cells[row][col], true
}

// Set writes a cell at (row, col). Returns false without mutating when the
// coordinate is out of bounds.
func (b *Board) Set(row, col int, cell Cell) bool {
	if row < 0 || col < 0 || row >= TotalHeight || col >= BoardWidth {
		return false
	}
	b.cells[row][col] = cell
	return true
}

// IsValidPosition reports whether a block may occupy (row, col): inside
// the horizontal bounds, not below the floor, and not overlapping a locked
// cell. Rows at or above the total height are valid so pieces can spawn
// and rotate above the grid.
func (b *Board) IsValidPosition(row, col int) bool {
	if col < 0 || col >= BoardWidth {
		return false
	}
	if row < 0 {
		return false
	}
	if row >= TotalHeight {
		return true
	}
	return b.cells[row][col].IsEmpty()
}

// ArePositionsValid reports whether every given position is valid.
// This is the single collision query behind all movement and spawning.
func (b *Board) ArePositionsValid(positions []Position) bool {
	for _, p := range positions {
		if !b.IsValidPosition(p.Row, p.Col) {
			return false
		}
	}
	return true
}

// LockPiece commits a piece's blocks onto the board with its kind color.
// Positions must already have been validated by the caller.
func (b *Board) LockPiece(positions []Position, kind Kind) {
	color := kind.Color()
	for _, p := range positions {
		b.Set(p.Row, p.Col, Cell{Color: color})
	}
}

// ClearLines removes every full row and returns how many were cleared.
// Kept rows shift down in their original order (a single bottom-to-top
// write pass), and the vacated rows at the top are emptied.
func (b *Board) ClearLines() int {
	cleared := 0
	writeRow := 0

	for readRow := 0; readRow < TotalHeight; readRow++ {
		if b.isLineFull(readRow) {
			cleared++
			continue
		}
		if writeRow != readRow {
			b.cells[writeRow] = b.cells[readRow]
		}
		writeRow++
	}

	for row := writeRow; row < TotalHeight; row++ {
		b.cells[row] = [BoardWidth]Cell{}
	}

	return cleared
}

func (b *Board) isLineFull(row int) bool {
	for col := 0; col < BoardWidth; col++ {
		if b.cells[row][col].IsEmpty() {
			return false
		}
	}
	return true
}

// IsEmpty reports whether every cell, buffer included, is empty.
// Used for the all-clear scoring bonus.
func (b *Board) IsEmpty() bool {
	for row := 0; row < TotalHeight; row++ {
		for col := 0; col < BoardWidth; col++ {
			if b.cells[row][col].IsFilled() {
				return false
			}
		}
	}
	return true
}

// AddGarbage shifts the whole stack up by `lines` rows and fills the
// bottom with gray garbage rows that share a single gap column. Rows
// pushed past the top of the grid are lost; the caller detects the
// resulting top-out on the next lock.
func (b *Board) AddGarbage(lines, gapCol int) {
	if lines <= 0 {
		return
	}
	if lines > TotalHeight {
		lines = TotalHeight
	}
	if gapCol < 0 || gapCol >= BoardWidth {
		gapCol = 0
	}

	for row := TotalHeight - 1; row >= lines; row-- {
		b.cells[row] = b.cells[row-lines]
	}
	for row := 0; row < lines; row++ {
		for col := 0; col < BoardWidth; col++ {
			if col == gapCol {
				b.cells[row][col] = Cell{}
			} else {
				b.cells[row][col] = Cell{Color: core.ColorGray}
			}
		}
	}
}

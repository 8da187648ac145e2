package game

import (
	"testing"

	"github.com/termtris/termtris/internal/core"
)

func TestNewBoardIsEmpty(t *testing.T) {
	if !NewBoard().IsEmpty() {
		t.Error("new board should be empty")
	}
}

func TestBoardSetAndGet(t *testing.T) {
	b := NewBoard()
	if !b.Set(5, 5, Cell{Color: core.ColorRed}) {
		t.Fatal("in-bounds Set returned false")
	}
	cell, ok := b.Get(5, 5)
	if !ok || cell.Color != core.ColorRed {
		t.Errorf("Get(5,5) = %v, %v; want red cell", cell, ok)
	}
}

func TestBoardOutOfBounds(t *testing.T) {
	b := NewBoard()
	cases := []struct{ row, col int }{
		{-1, 0},
		{0, -1},
		{TotalHeight, 0},
		{0, BoardWidth},
	}
	for _, c := range cases {
		if _, ok := b.Get(c.row, c.col); ok {
			t.Errorf("Get(%d,%d) should be out of bounds", c.row, c.col)
		}
		if b.Set(c.row, c.col, Cell{Color: core.ColorRed}) {
			t.Errorf("Set(%d,%d) should be out of bounds", c.row, c.col)
		}
	}
}

func TestIsValidPosition(t *testing.T) {
	b := NewBoard()
	b.Set(3, 3, Cell{Color: core.ColorBlue})

	tests := []struct {
		name     string
		row, col int
		want     bool
	}{
		{"empty cell", 0, 0, true},
		{"occupied cell", 3, 3, false},
		{"below floor", -1, 4, false},
		{"left of wall", 4, -1, false},
		{"right of wall", 4, BoardWidth, false},
		{"above the grid", TotalHeight, 4, true},
		{"far above the grid", TotalHeight + 10, 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.IsValidPosition(tt.row, tt.col); got != tt.want {
				t.Errorf("IsValidPosition(%d,%d) = %v, want %v", tt.row, tt.col, got, tt.want)
			}
		})
	}
}

func TestClearSingleLine(t *testing.T) {
	b := NewBoard()
	for col := 0; col < BoardWidth; col++ {
		b.Set(0, col, Cell{Color: core.ColorCyan})
	}
	// Marker above the full row.
	b.Set(1, 0, Cell{Color: core.ColorRed})

	if cleared := b.ClearLines(); cleared != 1 {
		t.Fatalf("ClearLines() = %d, want 1", cleared)
	}

	// The marker shifts down preserving order.
	cell, _ := b.Get(0, 0)
	if cell.Color != core.ColorRed {
		t.Errorf("cell (0,0) = %v, want red marker", cell.Color)
	}
	cell, _ = b.Get(1, 0)
	if !cell.IsEmpty() {
		t.Error("cell (1,0) should be empty after compaction")
	}
}

func TestClearPreservesRowOrder(t *testing.T) {
	b := NewBoard()
	// Rows 0 and 2 full, rows 1 and 3 carry distinct markers.
	for col := 0; col < BoardWidth; col++ {
		b.Set(0, col, Cell{Color: core.ColorCyan})
		b.Set(2, col, Cell{Color: core.ColorCyan})
	}
	b.Set(1, 4, Cell{Color: core.ColorRed})
	b.Set(3, 7, Cell{Color: core.ColorGreen})

	if cleared := b.ClearLines(); cleared != 2 {
		t.Fatalf("ClearLines() = %d, want 2", cleared)
	}

	cell, _ := b.Get(0, 4)
	if cell.Color != core.ColorRed {
		t.Errorf("red marker should land on row 0, got %v", cell.Color)
	}
	cell, _ = b.Get(1, 7)
	if cell.Color != core.ColorGreen {
		t.Errorf("green marker should land on row 1, got %v", cell.Color)
	}
}

func TestIsEmptyIncludesBuffer(t *testing.T) {
	b := NewBoard()
	b.Set(BoardHeight+1, 0, Cell{Color: core.ColorBlue})
	if b.IsEmpty() {
		t.Error("board with a block in the buffer should not be empty")
	}
}

func TestAddGarbage(t *testing.T) {
	b := NewBoard()
	b.Set(0, 2, Cell{Color: core.ColorRed})

	b.AddGarbage(2, 5)

	// Existing stack shifted up by 2.
	cell, _ := b.Get(2, 2)
	if cell.Color != core.ColorRed {
		t.Errorf("stack should shift up, cell (2,2) = %v", cell.Color)
	}

	// Garbage rows share one gap column.
	for row := 0; row < 2; row++ {
		for col := 0; col < BoardWidth; col++ {
			cell, _ := b.Get(row, col)
			if col == 5 {
				if cell.IsFilled() {
					t.Errorf("gap (%d,%d) should be empty", row, col)
				}
			} else if cell.Color != core.ColorGray {
				t.Errorf("garbage cell (%d,%d) = %v, want gray", row, col, cell.Color)
			}
		}
	}
}

package game

import (
	"testing"

	"github.com/termtris/termtris/internal/core"
)

func TestSpawnPosition(t *testing.T) {
	tests := []struct {
		kind    Kind
		wantRow int
	}{
		{KindI, BoardHeight},
		{KindO, BoardHeight},
		{KindT, BoardHeight + 1},
		{KindS, BoardHeight + 1},
	}
	for _, tt := range tests {
		p := NewPiece(tt.kind)
		if p.Row != tt.wantRow || p.Col != 4 {
			t.Errorf("%v spawn = (%d,%d), want (%d,4)", tt.kind, p.Row, p.Col, tt.wantRow)
		}
		if p.Rotation != North {
			t.Errorf("%v should spawn facing North", tt.kind)
		}
	}
}

func TestMoveAndRevert(t *testing.T) {
	board := NewBoard()
	p := NewPiece(KindT)

	// Walk into the left wall; the final attempt must not move the piece.
	for p.MoveLeft(board) {
	}
	col := p.Col
	if p.MoveLeft(board) {
		t.Error("MoveLeft at the wall should fail")
	}
	if p.Col != col {
		t.Errorf("failed move mutated col: %d -> %d", col, p.Col)
	}
}

func TestMoveDownResetsLastKick(t *testing.T) {
	board := NewBoard()
	p := NewPiece(KindT)
	if !p.Rotate(Clockwise, board) {
		t.Fatal("rotation in open space should succeed")
	}
	if p.LastKick == 0 {
		t.Fatal("successful rotation should record a kick index")
	}
	if !p.MoveDown(board) {
		t.Fatal("move down in open space should succeed")
	}
	if p.LastKick != 0 {
		t.Error("a plain move should reset LastKick")
	}
}

func TestRotateInOpenSpaceUsesIdentityKick(t *testing.T) {
	board := NewBoard()
	p := NewPiece(KindJ)
	if !p.Rotate(Clockwise, board) {
		t.Fatal("rotation should succeed")
	}
	if p.LastKick != 1 {
		t.Errorf("LastKick = %d, want 1 (identity kick)", p.LastKick)
	}
	if p.Rotation != East {
		t.Errorf("rotation = %v, want East", p.Rotation)
	}
}

func TestRotateRevertsOnFailure(t *testing.T) {
	board := NewBoard()
	// Box the piece in completely so no kick can succeed.
	p := NewPiece(KindT)
	p.Row = 1
	for row := 0; row < 6; row++ {
		for col := 0; col < BoardWidth; col++ {
			board.Set(row, col, Cell{Color: core.ColorGray})
		}
	}
	// Carve out exactly the piece's own cells.
	for _, pos := range p.BlockPositions() {
		board.Set(pos.Row, pos.Col, Cell{})
	}

	row, col, rot := p.Row, p.Col, p.Rotation
	if p.Rotate(Clockwise, board) {
		t.Fatal("rotation inside a tight pocket should fail")
	}
	if p.Row != row || p.Col != col || p.Rotation != rot {
		t.Error("failed rotation must restore row/col/rotation")
	}
}

func TestRotationCycle(t *testing.T) {
	board := NewBoard()
	p := NewPiece(KindL)
	for i := 0; i < 4; i++ {
		if !p.Rotate(Clockwise, board) {
			t.Fatalf("rotation %d failed in open space", i)
		}
	}
	if p.Rotation != North {
		t.Errorf("four CW rotations should return to North, got %v", p.Rotation)
	}
}

func TestHardDropDistance(t *testing.T) {
	board := NewBoard()
	p := NewPiece(KindI)
	startRow := p.Row
	distance := p.HardDrop(board)
	if distance != startRow-p.Row {
		t.Errorf("distance %d does not match rows fallen %d", distance, startRow-p.Row)
	}
	if p.MoveDown(board) {
		t.Error("piece should rest on the floor after hard drop")
	}
}

func TestGhostRowOnEmptyBoard(t *testing.T) {
	board := NewBoard()
	p := NewPiece(KindT)
	ghost := p.GhostRow(board)

	clone := *p
	clone.HardDrop(board)
	if ghost != clone.Row {
		t.Errorf("GhostRow = %d, want hard-drop row %d", ghost, clone.Row)
	}
}

func TestGhostRowAboveStack(t *testing.T) {
	board := NewBoard()
	for col := 0; col < BoardWidth; col++ {
		board.Set(0, col, Cell{Color: core.ColorGray})
		board.Set(1, col, Cell{Color: core.ColorGray})
	}
	p := NewPiece(KindO)
	ghost := p.GhostRow(board)
	// O pivot carries its blocks at rows 0 and -1, so resting on top of a
	// 2-row stack puts the pivot at row 3.
	if ghost != 3 {
		t.Errorf("GhostRow = %d, want 3", ghost)
	}
}

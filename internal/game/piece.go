package game

// Piece is the active falling tetromino: a kind, a rotation state, and a
// pivot position on the board. Movement methods are speculative: they
// apply the move, validate against the board, and revert on collision.
type Piece struct {
	Kind     Kind
	Rotation Rotation
	// Pivot position. Row 0 is the bottom of the board.
	Row, Col int
	// LastKick records which wall-kick offset the most recent successful
	// rotation used: 0 = no rotation (or a plain move since), 1-5 = the
	// 1-based kick index. Consumed by T-spin detection.
	LastKick int
}

// NewPiece creates a piece at its spawn position above the visible area.
func NewPiece(kind Kind) *Piece {
	row, col := kind.SpawnOffset()
	return &Piece{
		Kind:     kind,
		Rotation: North,
		Row:      BoardHeight + row,
		Col:      col,
	}
}

// BlockPositions returns the absolute positions of the 4 blocks.
func (p *Piece) BlockPositions() [4]Position {
	offsets := p.Kind.Shape(p.Rotation)
	var positions [4]Position
	for i, off := range offsets {
		positions[i] = Position{Row: p.Row + off.Row, Col: p.Col + off.Col}
	}
	return positions
}

// MoveLeft tries to shift the piece one column left.
func (p *Piece) MoveLeft(board *Board) bool {
	return p.tryMove(board, 0, -1)
}

// MoveRight tries to shift the piece one column right.
func (p *Piece) MoveRight(board *Board) bool {
	return p.tryMove(board, 0, 1)
}

// MoveDown tries to move the piece one row down.
func (p *Piece) MoveDown(board *Board) bool {
	return p.tryMove(board, -1, 0)
}

func (p *Piece) tryMove(board *Board, dRow, dCol int) bool {
	p.Row += dRow
	p.Col += dCol
	positions := p.BlockPositions()
	if board.ArePositionsValid(positions[:]) {
		// A plain translation invalidates T-spin eligibility.
		p.LastKick = 0
		return true
	}
	p.Row -= dRow
	p.Col -= dCol
	return false
}

// Rotate attempts an SRS rotation, trying each wall kick in order and
// accepting the first offset that validates. On success LastKick records
// the 1-based index of the kick used; on failure the piece is restored to
// its pre-attempt state.
func (p *Piece) Rotate(direction RotationDirection, board *Board) bool {
	var target Rotation
	switch direction {
	case Clockwise:
		target = p.Rotation.CW()
	case CounterClockwise:
		target = p.Rotation.CCW()
	}

	kicks := WallKicks(p.Kind, p.Rotation, direction)

	origRow, origCol, origRotation := p.Row, p.Col, p.Rotation

	for i, kick := range kicks {
		p.Row = origRow + kick.Row
		p.Col = origCol + kick.Col
		p.Rotation = target

		positions := p.BlockPositions()
		if board.ArePositionsValid(positions[:]) {
			p.LastKick = i + 1
			return true
		}
	}

	p.Row, p.Col, p.Rotation = origRow, origCol, origRotation
	return false
}

// HardDrop moves the piece down as far as it goes and returns the
// distance fallen, for scoring.
func (p *Piece) HardDrop(board *Board) int {
	distance := 0
	for p.MoveDown(board) {
		distance++
	}
	return distance
}

// GhostRow returns the row the pivot would rest at if the piece fell
// straight down from its current position. Pure query, no mutation.
func (p *Piece) GhostRow(board *Board) int {
	offsets := p.Kind.Shape(p.Rotation)
	row := p.Row
	for {
		row--
		var positions [4]Position
		for i, off := range offsets {
			positions[i] = Position{Row: row + off.Row, Col: p.Col + off.Col}
		}
		if !board.ArePositionsValid(positions[:]) {
			return row + 1
		}
	}
}

// IsTPiece reports whether this piece can score a T-spin.
func (p *Piece) IsTPiece() bool {
	return p.Kind == KindT
}

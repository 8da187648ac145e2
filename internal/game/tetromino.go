// Package game implements the deterministic Tetris simulation: board,
// falling piece, SRS rotation, seeded 7-bag, guideline scoring, and the
// round state machine. It performs no I/O and no rendering; the platform
// layers drive it with actions and a clock and read its state back.
package game

import "github.com/termtris/termtris/internal/core"

// Kind identifies one of the 7 tetrominoes.
type Kind int

const (
	KindI Kind = iota // cyan, long bar
	KindO             // yellow, square
	KindT             // magenta, T-shape
	KindS             // green, S-shape
	KindZ             // red, Z-shape
	KindJ             // blue, J-shape
	KindL             // orange, L-shape
)

// KindCount is the number of distinct tetrominoes.
const KindCount = 7

// AllKinds returns every kind in canonical order, for bag shuffling.
func AllKinds() [KindCount]Kind {
	return [KindCount]Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}
}

// String returns the standard single-letter name.
func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindO:
		return "O"
	case KindT:
		return "T"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	default:
		return "?"
	}
}

// Color returns the guideline color tag for this kind.
func (k Kind) Color() core.Color {
	switch k {
	case KindI:
		return core.ColorCyan
	case KindO:
		return core.ColorYellow
	case KindT:
		return core.ColorMagenta
	case KindS:
		return core.ColorGreen
	case KindZ:
		return core.ColorRed
	case KindJ:
		return core.ColorBlue
	default:
		return core.ColorOrange
	}
}

// Rotation is one of the four SRS rotation states.
// North is the spawn state.
type Rotation int

const (
	North Rotation = iota
	East
	South
	West
)

// CW returns the next rotation clockwise: North → East → South → West.
func (r Rotation) CW() Rotation {
	return (r + 1) % 4
}

// CCW returns the next rotation counter-clockwise.
func (r Rotation) CCW() Rotation {
	return (r + 3) % 4
}

func (r Rotation) String() string {
	switch r {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	default:
		return "West"
	}
}

// RotationDirection selects which way a rotation attempt turns.
type RotationDirection int

const (
	Clockwise RotationDirection = iota
	CounterClockwise
)

// Offset is a (row, col) delta. Rows increase upward, columns rightward.
type Offset struct {
	Row, Col int
}

// Shape returns the 4 block offsets for a kind at a rotation, relative to
// the piece pivot. The coordinate system is row-up: row +1 is one cell
// above the pivot.
func (k Kind) Shape(rotation Rotation) [4]Offset {
	switch k {
	case KindI:
		switch rotation {
		case North:
			return [4]Offset{{0, -1}, {0, 0}, {0, 1}, {0, 2}}
		case East:
			return [4]Offset{{1, 1}, {0, 1}, {-1, 1}, {-2, 1}}
		case South:
			return [4]Offset{{-1, -1}, {-1, 0}, {-1, 1}, {-1, 2}}
		default: // West
			return [4]Offset{{1, 0}, {0, 0}, {-1, 0}, {-2, 0}}
		}
	case KindO:
		// O piece has a single visual orientation.
		return [4]Offset{{0, 0}, {0, 1}, {-1, 0}, {-1, 1}}
	case KindT:
		switch rotation {
		case North:
			return [4]Offset{{0, -1}, {0, 0}, {0, 1}, {1, 0}}
		case East:
			return [4]Offset{{1, 0}, {0, 0}, {-1, 0}, {0, 1}}
		case South:
			return [4]Offset{{0, -1}, {0, 0}, {0, 1}, {-1, 0}}
		default: // West
			return [4]Offset{{1, 0}, {0, 0}, {-1, 0}, {0, -1}}
		}
	case KindS:
		// North: .SS    East: S.    South: SS.   West: .S
		//        SS.          SS           .SS        SS
		//                     .S                      S.
		switch rotation {
		case North:
			return [4]Offset{{1, 0}, {1, 1}, {0, -1}, {0, 0}}
		case East:
			return [4]Offset{{1, 0}, {0, 0}, {0, 1}, {-1, 1}}
		case South:
			return [4]Offset{{0, 0}, {0, 1}, {-1, -1}, {-1, 0}}
		default: // West
			return [4]Offset{{1, -1}, {0, -1}, {0, 0}, {-1, 0}}
		}
	case KindZ:
		// North: ZZ.    East: .Z    South: .ZZ   West: Z.
		//        .ZZ          ZZ           ZZ.        ZZ
		//                     Z.                      .Z
		switch rotation {
		case North:
			return [4]Offset{{1, -1}, {1, 0}, {0, 0}, {0, 1}}
		case East:
			return [4]Offset{{1, 1}, {0, 0}, {0, 1}, {-1, 0}}
		case South:
			return [4]Offset{{0, -1}, {0, 0}, {-1, 0}, {-1, 1}}
		default: // West
			return [4]Offset{{1, 0}, {0, -1}, {0, 0}, {-1, -1}}
		}
	case KindJ:
		switch rotation {
		case North:
			return [4]Offset{{1, -1}, {0, -1}, {0, 0}, {0, 1}}
		case East:
			return [4]Offset{{1, 0}, {1, 1}, {0, 0}, {-1, 0}}
		case South:
			return [4]Offset{{0, -1}, {0, 0}, {0, 1}, {-1, 1}}
		default: // West
			return [4]Offset{{1, 0}, {0, 0}, {-1, 0}, {-1, -1}}
		}
	default: // KindL
		switch rotation {
		case North:
			return [4]Offset{{1, 1}, {0, -1}, {0, 0}, {0, 1}}
		case East:
			return [4]Offset{{1, 0}, {0, 0}, {-1, 0}, {-1, 1}}
		case South:
			return [4]Offset{{0, -1}, {0, 0}, {0, 1}, {-1, -1}}
		default: // West
			return [4]Offset{{1, -1}, {1, 0}, {0, 0}, {-1, 0}}
		}
	}
}

// SpawnOffset returns the (row, col) the pivot spawns at, relative to the
// bottom of the hidden buffer. I and O sit flat in their spawn row; the
// rest need one extra row of headroom for their top block.
func (k Kind) SpawnOffset() (row, col int) {
	switch k {
	case KindI, KindO:
		return 0, 4
	default:
		return 1, 4
	}
}

package game

// Super Rotation System wall-kick data.
//
// When a rotation collides, these offsets are tried in order and the first
// valid one wins. Offsets use the same row-up coordinate system as the
// shape tables, so the row components are negated relative to the usual
// row-down SRS listings. Index 0 is always the identity (no kick).

// WallKicks returns the 5 kick offsets to try for rotating a piece of the
// given kind out of `from` in the given direction.
func WallKicks(kind Kind, from Rotation, direction RotationDirection) [5]Offset {
	switch kind {
	case KindO:
		// O never meaningfully rotates; identity kicks keep the caller simple.
		return [5]Offset{}
	case KindI:
		return iKicks(from, direction)
	default:
		return jlstzKicks(from, direction)
	}
}

// jlstzKicks is the shared table for the J, L, S, T, and Z pieces.
func jlstzKicks(from Rotation, direction RotationDirection) [5]Offset {
	cw := direction == Clockwise
	switch {
	case from == North && cw: // 0→R
		return [5]Offset{{0, 0}, {0, -1}, {1, -1}, {-2, 0}, {-2, -1}}
	case from == East && !cw: // R→0
		return [5]Offset{{0, 0}, {0, 1}, {-1, 1}, {2, 0}, {2, 1}}
	case from == East && cw: // R→2
		return [5]Offset{{0, 0}, {0, 1}, {-1, 1}, {2, 0}, {2, 1}}
	case from == South && !cw: // 2→R
		return [5]Offset{{0, 0}, {0, -1}, {1, -1}, {-2, 0}, {-2, -1}}
	case from == South && cw: // 2→L
		return [5]Offset{{0, 0}, {0, 1}, {1, 1}, {-2, 0}, {-2, 1}}
	case from == West && !cw: // L→2
		return [5]Offset{{0, 0}, {0, -1}, {-1, -1}, {2, 0}, {2, -1}}
	case from == West && cw: // L→0
		return [5]Offset{{0, 0}, {0, -1}, {-1, -1}, {2, 0}, {2, -1}}
	default: // 0→L
		return [5]Offset{{0, 0}, {0, 1}, {1, 1}, {-2, 0}, {-2, 1}}
	}
}

// iKicks is the I piece table, which is asymmetric to the shared one.
func iKicks(from Rotation, direction RotationDirection) [5]Offset {
	cw := direction == Clockwise
	switch {
	case from == North && cw: // 0→R
		return [5]Offset{{0, 0}, {0, -2}, {0, 1}, {1, -2}, {-2, 1}}
	case from == East && !cw: // R→0
		return [5]Offset{{0, 0}, {0, 2}, {0, -1}, {-1, 2}, {2, -1}}
	case from == East && cw: // R→2
		return [5]Offset{{0, 0}, {0, -1}, {0, 2}, {-1, -1}, {2, 2}}
	case from == South && !cw: // 2→R
		return [5]Offset{{0, 0}, {0, 1}, {0, -2}, {1, 1}, {-2, -2}}
	case from == South && cw: // 2→L
		return [5]Offset{{0, 0}, {0, 2}, {0, -1}, {1, 2}, {-2, -1}}
	case from == West && !cw: // L→2
		return [5]Offset{{0, 0}, {0, -2}, {0, 1}, {-1, -2}, {2, 1}}
	case from == West && cw: // L→0
		return [5]Offset{{0, 0}, {0, 1}, {0, -2}, {1, 1}, {-2, -2}}
	default: // 0→L
		return [5]Offset{{0, 0}, {0, -1}, {0, 2}, {-1, -1}, {2, 2}}
	}
}

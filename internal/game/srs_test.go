package game

import "testing"

var allRotations = []Rotation{North, East, South, West}
var allDirections = []RotationDirection{Clockwise, CounterClockwise}

func TestFirstKickIsIdentity(t *testing.T) {
	for _, kind := range AllKinds() {
		for _, from := range allRotations {
			for _, dir := range allDirections {
				kicks := WallKicks(kind, from, dir)
				if kicks[0] != (Offset{0, 0}) {
					t.Errorf("WallKicks(%v, %v, %v)[0] = %v, want (0,0)",
						kind, from, dir, kicks[0])
				}
			}
		}
	}
}

func TestKickTablesDistinct(t *testing.T) {
	// The I piece uses its own table, distinct from the shared one.
	iKicks := WallKicks(KindI, North, Clockwise)
	tKicks := WallKicks(KindT, North, Clockwise)
	if iKicks == tKicks {
		t.Error("I piece should not share the JLSTZ kick table")
	}

	// O only ever gets identity offsets.
	oKicks := WallKicks(KindO, East, CounterClockwise)
	for i, k := range oKicks {
		if k != (Offset{0, 0}) {
			t.Errorf("O kick %d = %v, want identity", i, k)
		}
	}
}

func TestSharedTableCoversJLSTZ(t *testing.T) {
	want := WallKicks(KindT, East, Clockwise)
	for _, kind := range []Kind{KindJ, KindL, KindS, KindZ} {
		if got := WallKicks(kind, East, Clockwise); got != want {
			t.Errorf("%v kicks = %v, want shared table %v", kind, got, want)
		}
	}
}

package game

import (
	"testing"
	"time"

	"github.com/termtris/termtris/internal/core"
)

// newPlaying builds a round on a fake clock and runs the countdown out.
func newPlaying(t *testing.T, mode Mode, seed int64) (*Game, *FakeClock) {
	t.Helper()
	clock := NewFakeClock()
	g := NewWithClock(mode, seed, clock)
	clock.Advance(3 * time.Second)
	g.Update()
	if g.State() != StatePlaying {
		t.Fatalf("state after countdown = %v, want Playing", g.State())
	}
	return g, clock
}

// groundPiece soft-drops the current piece until it rests on the stack.
func groundPiece(g *Game) {
	for i := 0; i < TotalHeight+BufferHeight; i++ {
		g.ProcessAction(core.ActionSoftDrop)
	}
}

func TestCountdown(t *testing.T) {
	clock := NewFakeClock()
	g := NewWithClock(ModeMarathon, 1, clock)

	if g.State() != StateCountdown || g.Countdown() != 3 {
		t.Fatalf("fresh game = %v countdown %d, want Countdown 3", g.State(), g.Countdown())
	}

	clock.Advance(time.Second)
	g.Update()
	if g.Countdown() != 2 {
		t.Errorf("countdown after 1s = %d, want 2", g.Countdown())
	}

	// Input is dead until play starts.
	row := g.CurrentPiece().Row
	g.ProcessAction(core.ActionSoftDrop)
	if g.CurrentPiece().Row != row {
		t.Error("input during countdown should be ignored")
	}

	clock.Advance(2 * time.Second)
	g.Update()
	if g.State() != StatePlaying {
		t.Errorf("state after 3s = %v, want Playing", g.State())
	}
}

func TestGravityInterval(t *testing.T) {
	g, clock := newPlaying(t, ModeMarathon, 1)
	row := g.CurrentPiece().Row

	// Level 1 falls once per second.
	clock.Advance(999 * time.Millisecond)
	g.Update()
	if g.CurrentPiece().Row != row {
		t.Fatal("piece fell before the gravity interval elapsed")
	}

	clock.Advance(time.Millisecond)
	g.Update()
	if g.CurrentPiece().Row != row-1 {
		t.Errorf("row = %d, want %d after one gravity step", g.CurrentPiece().Row, row-1)
	}
}

func TestLockDelay(t *testing.T) {
	g, clock := newPlaying(t, ModeMarathon, 1)
	groundPiece(g)
	g.Update() // arms the lock timer

	clock.Advance(499 * time.Millisecond)
	g.Update()
	if locked, _ := g.TakeLockEvent(); locked {
		t.Fatal("piece locked before the 500ms delay")
	}

	clock.Advance(time.Millisecond)
	g.Update()
	if locked, _ := g.TakeLockEvent(); !locked {
		t.Error("piece should lock once the delay elapses")
	}
}

func TestLockResetCap(t *testing.T) {
	g, clock := newPlaying(t, ModeMarathon, 1)
	groundPiece(g)
	g.Update()

	// Wiggling forever must not stall the lock indefinitely. Each move
	// resets the timer until the per-piece budget runs out.
	locked := false
	for i := 0; i < 40; i++ {
		clock.Advance(400 * time.Millisecond)
		if i%2 == 0 {
			g.ProcessAction(core.ActionMoveLeft)
		} else {
			g.ProcessAction(core.ActionMoveRight)
		}
		g.Update()
		if ok, _ := g.TakeLockEvent(); ok {
			locked = true
			break
		}
	}
	if !locked {
		t.Error("piece never locked despite the reset cap")
	}
}

func TestHardDropScoring(t *testing.T) {
	g, _ := newPlaying(t, ModeMarathon, 42)

	// The round's first piece comes from a bag with the same seed.
	want := NewBag(42).Next()
	if g.CurrentPiece().Kind != want {
		t.Fatalf("first piece = %v, want %v", g.CurrentPiece().Kind, want)
	}

	clone := *g.CurrentPiece()
	distance := clone.HardDrop(NewBoard())

	g.ProcessAction(core.ActionHardDrop)
	if got := g.Score().Points; got != uint64(2*distance) {
		t.Errorf("points = %d, want %d (2 per row)", got, 2*distance)
	}
	if locked, _ := g.TakeLockEvent(); !locked {
		t.Error("hard drop should lock immediately")
	}
}

func TestTakeLockEventDrainsOnce(t *testing.T) {
	g, _ := newPlaying(t, ModeMarathon, 1)
	g.ProcessAction(core.ActionHardDrop)

	if locked, _ := g.TakeLockEvent(); !locked {
		t.Fatal("first take should report the lock")
	}
	if locked, _ := g.TakeLockEvent(); locked {
		t.Error("second take should find the outbox empty")
	}
}

func TestHoldSwapAndOncePerPiece(t *testing.T) {
	g, _ := newPlaying(t, ModeMarathon, 7)
	first := g.CurrentPiece().Kind

	g.ProcessAction(core.ActionHold)
	held, ok := g.HoldPiece()
	if !ok || held != first {
		t.Fatalf("held = %v, %v; want %v", held, ok, first)
	}

	// A second hold before locking is ignored.
	swapped := g.CurrentPiece().Kind
	g.ProcessAction(core.ActionHold)
	if g.CurrentPiece().Kind != swapped {
		t.Error("hold twice without locking should be a no-op")
	}

	// After a lock the hold is available again and swaps back.
	g.ProcessAction(core.ActionHardDrop)
	g.ProcessAction(core.ActionHold)
	if g.CurrentPiece().Kind != first {
		t.Errorf("hold after lock = %v, want the stored %v", g.CurrentPiece().Kind, first)
	}
}

func TestPauseFreezesInput(t *testing.T) {
	g, _ := newPlaying(t, ModeMarathon, 1)

	g.ProcessAction(core.ActionPause)
	if g.State() != StatePaused {
		t.Fatalf("state = %v, want Paused", g.State())
	}

	row := g.CurrentPiece().Row
	g.ProcessAction(core.ActionSoftDrop)
	if g.CurrentPiece().Row != row {
		t.Error("input while paused should be ignored")
	}

	g.ProcessAction(core.ActionPause)
	if g.State() != StatePlaying {
		t.Errorf("state = %v, want Playing after resume", g.State())
	}
}

func TestQuitEndsRound(t *testing.T) {
	g, _ := newPlaying(t, ModeMarathon, 1)
	g.ProcessAction(core.ActionQuit)
	if g.State() != StateGameOver {
		t.Errorf("state = %v, want GameOver", g.State())
	}
}

func TestSameSeedSamePieces(t *testing.T) {
	a, _ := newPlaying(t, ModeMarathon, 99)
	b, _ := newPlaying(t, ModeMarathon, 99)

	for i := 0; i < 10; i++ {
		if a.CurrentPiece().Kind != b.CurrentPiece().Kind {
			t.Fatalf("piece %d diverged: %v vs %v", i, a.CurrentPiece().Kind, b.CurrentPiece().Kind)
		}
		a.ProcessAction(core.ActionHardDrop)
		b.ProcessAction(core.ActionHardDrop)
	}
}

func TestBlockOutEndsGame(t *testing.T) {
	g, _ := newPlaying(t, ModeMarathon, 5)

	// A 20-high column under the spawn area forces the next piece to lock
	// entirely above the visible board.
	for row := 0; row < BoardHeight; row++ {
		for col := 0; col <= 4; col++ {
			g.Board().Set(row, col, Cell{Color: core.ColorGray})
		}
	}
	g.ProcessAction(core.ActionHardDrop)
	if g.State() != StateGameOver {
		t.Errorf("state = %v, want GameOver after block out", g.State())
	}
}

func TestSprintVictory(t *testing.T) {
	g, _ := newPlaying(t, ModeSprint, 1)
	g.Score().Lines = 40
	g.Update()
	if g.State() != StateVictory {
		t.Errorf("state = %v, want Victory at 40 lines", g.State())
	}
}

func TestUltraTimeUp(t *testing.T) {
	g, clock := newPlaying(t, ModeUltra, 1)
	clock.Advance(3 * time.Minute)
	g.Update()
	if g.State() != StateGameOver {
		t.Errorf("state = %v, want GameOver when Ultra time runs out", g.State())
	}
}

func TestInjectGarbageRaisesStack(t *testing.T) {
	g, _ := newPlaying(t, ModeVersus, 1)
	g.Board().Set(0, 0, Cell{Color: core.ColorRed})

	g.InjectGarbage(2, 4)

	cell, _ := g.Board().Get(2, 0)
	if cell.Color != core.ColorRed {
		t.Error("existing stack should shift up by the garbage height")
	}
	cell, _ = g.Board().Get(0, 0)
	if cell.Color != core.ColorGray {
		t.Error("bottom rows should be garbage")
	}

	// The active piece survives the shift.
	positions := g.CurrentPiece().BlockPositions()
	if !g.Board().ArePositionsValid(positions[:]) {
		t.Error("active piece overlaps the stack after garbage")
	}
}

func TestInjectGarbageIgnoredWhilePaused(t *testing.T) {
	g, _ := newPlaying(t, ModeVersus, 1)
	g.ProcessAction(core.ActionPause)
	g.InjectGarbage(2, 4)
	if cell, _ := g.Board().Get(0, 0); cell.IsFilled() {
		t.Error("garbage must not land while paused")
	}
}

func TestDetectTSpinClassification(t *testing.T) {
	fill := func(g *Game, positions ...Position) {
		for _, p := range positions {
			g.Board().Set(p.Row, p.Col, Cell{Color: core.ColorGray})
		}
	}
	// T pivot at (2,2), North. Corners: down pair (3,1) (3,3),
	// up pair (1,1) (1,3); the up pair is the front for North.
	newT := func(lastKick int) *Piece {
		return &Piece{Kind: KindT, Rotation: North, Row: 2, Col: 2, LastKick: lastKick}
	}

	t.Run("full via front corners", func(t *testing.T) {
		g, _ := newPlaying(t, ModeMarathon, 1)
		fill(g, Position{1, 1}, Position{1, 3}, Position{3, 1})
		tspin, mini, any := g.detectTSpin(newT(2))
		if !tspin || mini || !any {
			t.Errorf("got (%v,%v,%v), want full T-spin", tspin, mini, any)
		}
	})

	t.Run("mini with front corner open", func(t *testing.T) {
		g, _ := newPlaying(t, ModeMarathon, 1)
		fill(g, Position{3, 1}, Position{3, 3}, Position{1, 1})
		tspin, mini, any := g.detectTSpin(newT(2))
		if tspin || !mini || !any {
			t.Errorf("got (%v,%v,%v), want mini", tspin, mini, any)
		}
	})

	t.Run("final kick upgrades mini to full", func(t *testing.T) {
		g, _ := newPlaying(t, ModeMarathon, 1)
		fill(g, Position{3, 1}, Position{3, 3}, Position{1, 1})
		tspin, mini, any := g.detectTSpin(newT(5))
		if !tspin || mini || !any {
			t.Errorf("got (%v,%v,%v), want full via kick 5", tspin, mini, any)
		}
	})

	t.Run("no rotation no spin", func(t *testing.T) {
		g, _ := newPlaying(t, ModeMarathon, 1)
		fill(g, Position{1, 1}, Position{1, 3}, Position{3, 1}, Position{3, 3})
		if _, _, any := g.detectTSpin(newT(0)); any {
			t.Error("a T placed without rotating never spins")
		}
	})

	t.Run("two corners no spin", func(t *testing.T) {
		g, _ := newPlaying(t, ModeMarathon, 1)
		fill(g, Position{1, 1}, Position{1, 3})
		if _, _, any := g.detectTSpin(newT(2)); any {
			t.Error("fewer than 3 filled corners never spins")
		}
	})

	t.Run("walls count as filled", func(t *testing.T) {
		g, _ := newPlaying(t, ModeMarathon, 1)
		// Pivot in the corner of the well: (row 0, col 0). The floor and
		// wall supply three out-of-bounds corners, including both West
		// fronts.
		piece := &Piece{Kind: KindT, Rotation: West, Row: 0, Col: 0, LastKick: 2}
		tspin, _, any := g.detectTSpin(piece)
		if !any || !tspin {
			t.Error("out-of-bounds corners should count as filled")
		}
	})
}

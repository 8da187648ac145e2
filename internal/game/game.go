package game

import (
	"time"

	"github.com/termtris/termtris/internal/core"
)

// Lock delay tuning. Fixed by the guideline, not configurable.
const (
	lockDelay     = 500 * time.Millisecond
	maxLockResets = 15
	countdownFrom = 3
)

// State is the round state machine.
type State int

const (
	StateCountdown State = iota // 3-2-1 before play starts
	StatePlaying
	StatePaused
	StateGameOver
	StateVictory // Sprint target reached
)

func (s State) String() string {
	switch s {
	case StateCountdown:
		return "Countdown"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateGameOver:
		return "GameOver"
	default:
		return "Victory"
	}
}

// ClearInfo describes a scoring lock, consumed by the versus layer to
// compute garbage. BackToBack is only set when this clear was itself
// difficult and back-to-back was already active before it.
type ClearInfo struct {
	Lines      int
	IsTSpin    bool
	Combo      int
	BackToBack bool
}

// Game owns the board, the falling piece, the bag, and the score, and
// orchestrates them into a single round. Drive it with ProcessAction for
// player input and Update once per frame; read state back through the
// accessor surface. Single-threaded: one goroutine calls everything.
type Game struct {
	board    *Board
	current  *Piece
	holdKind Kind
	hasHold  bool
	holdUsed bool
	bag      *Bag
	score    *Score
	state    State
	mode     *ModeState
	clock    Clock

	countdown      int
	countdownStart time.Time

	lastFall   time.Time
	lockTimer  time.Time
	lockActive bool
	lockResets int
	lowestRow  int

	softDropDistance int
	lastAction       string

	// Single-slot outbox for the versus layer: filled on lock, drained
	// exactly once via TakeLockEvent.
	justLocked    bool
	lastClearInfo *ClearInfo
}

// New creates a round with a time-derived seed.
func New(mode Mode) *Game {
	return NewWithSeed(mode, time.Now().UnixNano())
}

// NewWithSeed creates a round whose piece sequence is fully determined by
// the seed. Versus play constructs both ends with the same seed.
func NewWithSeed(mode Mode, seed int64) *Game {
	return newGame(mode, seed, SystemClock{})
}

// NewWithClock is NewWithSeed with an injected time source, for tests.
func NewWithClock(mode Mode, seed int64, clock Clock) *Game {
	return newGame(mode, seed, clock)
}

func newGame(mode Mode, seed int64, clock Clock) *Game {
	bag := NewBag(seed)
	score := NewScore()
	score.SetStartingLevel(mode.StartingLevel())

	now := clock.Now()
	return &Game{
		board:          NewBoard(),
		current:        NewPiece(bag.Next()),
		bag:            bag,
		score:          score,
		state:          StateCountdown,
		mode:           NewModeState(mode, clock),
		clock:          clock,
		countdown:      countdownFrom,
		countdownStart: now,
		lastFall:       now,
		lowestRow:      TotalHeight + BufferHeight,
	}
}

// Board returns the board for read-only inspection.
func (g *Game) Board() *Board { return g.board }

// CurrentPiece returns the falling piece, or nil between pieces.
func (g *Game) CurrentPiece() *Piece { return g.current }

// HoldPiece returns the held kind and whether one is held.
func (g *Game) HoldPiece() (Kind, bool) { return g.holdKind, g.hasHold }

// Score returns the score bookkeeping.
func (g *Game) Score() *Score { return g.score }

// State returns the current machine state.
func (g *Game) State() State { return g.state }

// Countdown returns the remaining pre-game count (valid in StateCountdown).
func (g *Game) Countdown() int { return g.countdown }

// ModeState returns mode progress (elapsed time, targets).
func (g *Game) ModeState() *ModeState { return g.mode }

// Preview returns the next n pieces from the bag.
func (g *Game) Preview(n int) []Kind { return g.bag.Preview(n) }

// LastAction returns the display string for the most recent scoring lock,
// e.g. "B2B Tetris Combo x2", or "" when the last lock scored nothing.
func (g *Game) LastAction() string { return g.lastAction }

// TakeLockEvent drains the lock outbox: whether a piece locked since the
// previous call, and the clear info if that lock scored (nil otherwise).
func (g *Game) TakeLockEvent() (locked bool, info *ClearInfo) {
	locked, info = g.justLocked, g.lastClearInfo
	g.justLocked = false
	g.lastClearInfo = nil
	return locked, info
}

// ProcessAction applies a player action. Only meaningful while playing,
// except Pause (which also resumes) and Quit (any non-terminal state).
func (g *Game) ProcessAction(action core.Action) {
	switch g.state {
	case StateCountdown:
		// Input is ignored until play starts.
	case StatePaused:
		switch action {
		case core.ActionPause:
			g.state = StatePlaying
			g.resumeClocks()
		case core.ActionQuit:
			g.state = StateGameOver
		}
	case StatePlaying:
		switch action {
		case core.ActionMoveLeft:
			g.moveLeft()
		case core.ActionMoveRight:
			g.moveRight()
		case core.ActionSoftDrop:
			g.softDrop()
		case core.ActionHardDrop:
			g.hardDrop()
		case core.ActionRotateCW:
			g.rotate(Clockwise)
		case core.ActionRotateCCW:
			g.rotate(CounterClockwise)
		case core.ActionHold:
			g.hold()
		case core.ActionPause:
			g.state = StatePaused
		case core.ActionQuit:
			g.state = StateGameOver
		}
	case StateGameOver, StateVictory:
		// Terminal; the caller discards the round.
	}
}

// Update advances time-driven behavior: the countdown, the mode timer,
// gravity, and lock delay. Call once per frame.
func (g *Game) Update() {
	if g.state == StateCountdown {
		elapsed := int(g.clock.Now().Sub(g.countdownStart).Seconds())
		remaining := countdownFrom - elapsed
		if remaining <= 0 {
			g.state = StatePlaying
			g.mode.Start()
			g.lastFall = g.clock.Now()
		} else {
			g.countdown = remaining
		}
		return
	}

	if g.state != StatePlaying {
		return
	}

	g.mode.Update()

	if g.mode.IsComplete(g.score.Lines) {
		switch g.mode.Mode {
		case ModeSprint:
			g.state = StateVictory
		case ModeUltra:
			// Time's up. Ultra has no win condition, only a score to beat.
			g.state = StateGameOver
		}
		if g.state != StatePlaying {
			return
		}
	}

	if g.current == nil {
		return
	}

	if g.onGround() {
		if g.lockActive {
			if g.clock.Now().Sub(g.lockTimer) >= lockDelay {
				g.lockPiece()
			}
		} else {
			g.lockActive = true
			g.lockTimer = g.clock.Now()
		}
		return
	}

	// Airborne: cancel any lock countdown and apply gravity.
	g.lockActive = false
	fallInterval := time.Duration(g.score.FallSpeed() * float64(time.Second))
	if g.clock.Now().Sub(g.lastFall) >= fallInterval {
		g.current.MoveDown(g.board)
		g.lastFall = g.clock.Now()
	}
}

// onGround reports whether the piece would collide one row lower.
func (g *Game) onGround() bool {
	positions := g.current.BlockPositions()
	below := make([]Position, len(positions))
	for i, p := range positions {
		below[i] = Position{Row: p.Row - 1, Col: p.Col}
	}
	return !g.board.ArePositionsValid(below)
}

func (g *Game) resumeClocks() {
	now := g.clock.Now()
	g.lastFall = now
	if g.lockActive {
		g.lockTimer = now
	}
}

func (g *Game) moveLeft() {
	if g.current != nil && g.current.MoveLeft(g.board) {
		g.tryResetLock()
	}
}

func (g *Game) moveRight() {
	if g.current != nil && g.current.MoveRight(g.board) {
		g.tryResetLock()
	}
}

func (g *Game) softDrop() {
	if g.current != nil && g.current.MoveDown(g.board) {
		g.softDropDistance++
		g.lastFall = g.clock.Now()
		g.lockActive = false
	}
}

func (g *Game) hardDrop() {
	if g.current == nil {
		return
	}
	distance := g.current.HardDrop(g.board)
	g.score.AddHardDrop(distance)
	g.lockPiece()
}

func (g *Game) rotate(direction RotationDirection) {
	if g.current != nil && g.current.Rotate(direction, g.board) {
		g.tryResetLock()
	}
}

func (g *Game) hold() {
	if g.holdUsed || g.current == nil {
		return
	}

	outgoing := g.current.Kind
	var replacement *Piece
	if g.hasHold {
		replacement = NewPiece(g.holdKind)
	} else {
		replacement = NewPiece(g.bag.Next())
	}
	g.holdKind = outgoing
	g.hasHold = true

	positions := replacement.BlockPositions()
	if !g.board.ArePositionsValid(positions[:]) {
		g.current = nil
		g.state = StateGameOver
		return
	}

	g.current = replacement
	g.resetPieceState()
	g.holdUsed = true
}

// tryResetLock restarts the lock-delay timer after a successful move or
// rotation, bounded to maxLockResets per piece. Reaching a new lowest row
// refunds the reset budget.
func (g *Game) tryResetLock() {
	if g.current == nil {
		return
	}

	if g.current.Row < g.lowestRow {
		g.lowestRow = g.current.Row
		g.lockResets = 0
	}

	if g.lockResets < maxLockResets && g.lockActive {
		g.lockTimer = g.clock.Now()
		g.lockResets++
	}
}

// lockPiece commits the current piece and runs the full lock procedure:
// soft-drop score, lock, T-spin detection, line clear, all-clear check,
// scoring, the lock outbox, and the next spawn with its top-out checks.
func (g *Game) lockPiece() {
	piece := g.current
	if piece == nil {
		return
	}
	g.current = nil

	g.score.AddSoftDrop(g.softDropDistance)

	positions := piece.BlockPositions()
	g.board.LockPiece(positions[:], piece.Kind)

	// T-spin detection must see the pre-clear board.
	tspin, mini, isSpin := g.detectTSpin(piece)

	linesCleared := g.board.ClearLines()
	allClear := g.board.IsEmpty()

	wasBackToBack := g.score.BackToBack

	if linesCleared > 0 || isSpin {
		var clearType ClearType
		switch {
		case tspin:
			clearType = TSpin(linesCleared)
		case mini:
			clearType = MiniTSpin(linesCleared)
		default:
			clearType = Regular(linesCleared)
		}
		g.lastAction = g.score.AddClear(clearType, allClear)
		g.lastClearInfo = &ClearInfo{
			Lines:      linesCleared,
			IsTSpin:    isSpin,
			Combo:      g.score.Combo,
			BackToBack: wasBackToBack && (linesCleared == 4 || isSpin),
		}
	} else {
		g.score.ResetCombo()
		g.lastAction = ""
		g.lastClearInfo = nil
	}

	g.justLocked = true

	next := NewPiece(g.bag.Next())
	nextPositions := next.BlockPositions()
	if !g.board.ArePositionsValid(nextPositions[:]) {
		g.state = StateGameOver
		return
	}

	// Block out: a locked cell at or above the visible area ends the game.
	for _, p := range positions {
		if p.Row >= BoardHeight {
			g.state = StateGameOver
			return
		}
	}

	g.current = next
	g.resetPieceState()
}

func (g *Game) resetPieceState() {
	g.holdUsed = false
	g.lockActive = false
	g.lockResets = 0
	g.lowestRow = TotalHeight + BufferHeight
	g.lastFall = g.clock.Now()
	g.softDropDistance = 0
}

// detectTSpin classifies the lock of a T piece placed by rotation.
// Returns (full, mini, any). A corner counts as filled when occupied or
// out of bounds. At least 3 filled corners make a spin; both front
// corners filled (or the final kick, index 5) make it a full T-spin.
func (g *Game) detectTSpin(piece *Piece) (tspin, mini, any bool) {
	if !piece.IsTPiece() || piece.LastKick == 0 {
		return false, false, false
	}

	corners := [4]Position{
		{piece.Row + 1, piece.Col - 1}, // 0: down-left
		{piece.Row + 1, piece.Col + 1}, // 1: down-right
		{piece.Row - 1, piece.Col - 1}, // 2: up-left
		{piece.Row - 1, piece.Col + 1}, // 3: up-right
	}

	var filled [4]bool
	filledCount := 0
	for i, c := range corners {
		cell, ok := g.board.Get(c.Row, c.Col)
		filled[i] = !ok || cell.IsFilled()
		if filled[i] {
			filledCount++
		}
	}

	if filledCount < 3 {
		return false, false, false
	}

	// Front corners are the pair the T's flat top faces.
	var frontA, frontB int
	switch piece.Rotation {
	case North:
		frontA, frontB = 2, 3
	case East:
		frontA, frontB = 1, 3
	case South:
		frontA, frontB = 0, 1
	default: // West
		frontA, frontB = 0, 2
	}

	if filled[frontA] && filled[frontB] {
		return true, false, true
	}
	if piece.LastKick == 5 {
		return true, false, true
	}
	return false, true, true
}

// InjectGarbage raises the stack by the given garbage lines with a gap at
// gapCol. The active piece is pushed up if the shift would bury it.
// Called by the versus layer between frames; no-op outside Playing.
func (g *Game) InjectGarbage(lines, gapCol int) {
	if g.state != StatePlaying || lines <= 0 {
		return
	}
	g.board.AddGarbage(lines, gapCol)

	if g.current == nil {
		return
	}
	positions := g.current.BlockPositions()
	for !g.board.ArePositionsValid(positions[:]) && g.current.Row < TotalHeight+BufferHeight {
		g.current.Row++
		positions = g.current.BlockPositions()
	}
}

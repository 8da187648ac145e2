package multiplayer

import (
	"math/rand"
	"sync"
	"time"

	"github.com/termtris/termtris/internal/game"
)

// VersusMatch relays state between two sessions running the same
// seeded round. The match is not authoritative over the boards; it
// computes garbage from reported clears, picks the gap columns, and
// decides the winner when one side reports game over.
type VersusMatch struct {
	id   MatchID
	code string
	seed int64

	player1Session SessionHandle
	player2Session SessionHandle

	mu       sync.Mutex
	score1   uint64
	score2   uint64
	gapRng   *rand.Rand
	finished bool

	startedAt time.Time
	done      chan struct{}
	doneOnce  sync.Once

	onComplete func(MatchResult)
}

// MatchResult is the outcome of a completed match.
type MatchResult struct {
	MatchID  MatchID
	Reason   MatchEndReason
	Winner   PlayerID
	Score1   uint64
	Score2   uint64
	Duration time.Duration
}

// NewVersusMatch pairs two sessions into a match. The seed feeds both
// players' bags and the gap column sequence.
func NewVersusMatch(id MatchID, code string, seed int64, p1, p2 SessionHandle) *VersusMatch {
	return &VersusMatch{
		id:             id,
		code:           code,
		seed:           seed,
		player1Session: p1,
		player2Session: p2,
		gapRng:         rand.New(rand.NewSource(seed)),
		startedAt:      time.Now(),
		done:           make(chan struct{}),
	}
}

// ID returns the match identifier.
func (m *VersusMatch) ID() MatchID { return m.id }

// Code returns the join code the match was created from.
func (m *VersusMatch) Code() string { return m.code }

// Seed returns the shared round seed.
func (m *VersusMatch) Seed() int64 { return m.seed }

// Start begins watching the sessions. The callback fires exactly once
// when the match ends, from whichever goroutine ends it.
func (m *VersusMatch) Start(onComplete func(MatchResult)) {
	m.onComplete = onComplete
	go m.monitorSessions()
}

// RelayBoard forwards a player's board snapshot to their opponent.
func (m *VersusMatch) RelayBoard(from PlayerID, cells []byte, points uint64, lines, level int) {
	m.mu.Lock()
	if m.finished {
		m.mu.Unlock()
		return
	}
	if from == Player1 {
		m.score1 = points
	} else {
		m.score2 = points
	}
	target := m.sessionFor(from.Opponent())
	m.mu.Unlock()

	target.Send(OpponentBoardEvent{
		MatchID: m.id,
		Cells:   cells,
		Points:  points,
		Lines:   lines,
		Level:   level,
	})
}

// RelayLock converts a reported clear into garbage for the opponent.
// Locks that send no garbage are dropped here.
func (m *VersusMatch) RelayLock(from PlayerID, lines int, isTSpin bool, combo int, backToBack bool) {
	garbage := CalculateGarbage(lines, isTSpin, combo, backToBack)
	if garbage == 0 {
		return
	}

	m.mu.Lock()
	if m.finished {
		m.mu.Unlock()
		return
	}
	gap := m.gapRng.Intn(game.BoardWidth)
	target := m.sessionFor(from.Opponent())
	m.mu.Unlock()

	target.Send(GarbageEvent{
		MatchID: m.id,
		Lines:   garbage,
		GapCol:  gap,
	})
}

// HandleGameOver ends the match in the opponent's favor.
func (m *VersusMatch) HandleGameOver(from PlayerID, finalScore uint64, forfeit bool) {
	m.mu.Lock()
	if m.finished {
		m.mu.Unlock()
		return
	}
	if from == Player1 {
		m.score1 = finalScore
	} else {
		m.score2 = finalScore
	}
	reason := MatchEndReasonTopOut
	if forfeit {
		reason = MatchEndReasonForfeit
	}
	result := m.resultLocked(reason, from.Opponent())
	m.mu.Unlock()

	m.finish(result)
}

// PlayerDisconnected ends the match in favor of whoever stayed.
func (m *VersusMatch) PlayerDisconnected(sessionID SessionID) {
	m.mu.Lock()
	if m.finished {
		m.mu.Unlock()
		return
	}
	winner := Player1
	if sessionID == m.player1Session.ID() {
		winner = Player2
	}
	result := m.resultLocked(MatchEndReasonDisconnect, winner)
	m.mu.Unlock()

	m.finish(result)
}

// Stop tears the match down without declaring a winner.
func (m *VersusMatch) Stop() {
	m.doneOnce.Do(func() {
		close(m.done)
	})
}

// Sessions returns both session handles, host first.
func (m *VersusMatch) Sessions() (SessionHandle, SessionHandle) {
	return m.player1Session, m.player2Session
}

func (m *VersusMatch) sessionFor(p PlayerID) SessionHandle {
	if p == Player1 {
		return m.player1Session
	}
	return m.player2Session
}

// resultLocked builds the final result and marks the match finished.
// Caller holds the mutex.
func (m *VersusMatch) resultLocked(reason MatchEndReason, winner PlayerID) MatchResult {
	m.finished = true
	return MatchResult{
		MatchID:  m.id,
		Reason:   reason,
		Winner:   winner,
		Score1:   m.score1,
		Score2:   m.score2,
		Duration: time.Since(m.startedAt),
	}
}

func (m *VersusMatch) finish(result MatchResult) {
	m.doneOnce.Do(func() {
		close(m.done)
	})
	if m.onComplete != nil {
		m.onComplete(result)
	}
}

func (m *VersusMatch) monitorSessions() {
	select {
	case <-m.player1Session.Done():
		m.PlayerDisconnected(m.player1Session.ID())
	case <-m.player2Session.Done():
		m.PlayerDisconnected(m.player2Session.ID())
	case <-m.done:
	}
}

// Package multiplayer hosts versus matches between two SSH sessions.
// Each player runs their own simulation from a shared seed; the
// coordinator pairs sessions into matches and the match relays board
// snapshots and garbage between them.
package multiplayer

// PlayerID identifies a side of a versus match. Player1 is always the
// lobby host.
type PlayerID int

const (
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// Opponent returns the other side.
func (p PlayerID) Opponent() PlayerID {
	if p == Player1 {
		return Player2
	}
	return Player1
}

func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "Player 1"
	case Player2:
		return "Player 2"
	default:
		return "Nobody"
	}
}

// SessionID uniquely identifies a connected session (one SSH
// connection or one local TUI).
type SessionID string

// MatchID uniquely identifies a running versus match.
type MatchID string

package multiplayer

// SessionEvent is an event sent from the coordinator or a match to a
// session.
type SessionEvent interface {
	sessionEvent()
}

// LobbyCreatedEvent confirms a freshly hosted lobby and carries its
// join code.
type LobbyCreatedEvent struct {
	Code string
}

func (LobbyCreatedEvent) sessionEvent() {}

// LobbyErrorEvent reports a failed lobby operation.
type LobbyErrorEvent struct {
	Message string
}

func (LobbyErrorEvent) sessionEvent() {}

// LobbyPlayerLeftEvent tells the host their joiner left before the
// match started.
type LobbyPlayerLeftEvent struct {
	Code string
}

func (LobbyPlayerLeftEvent) sessionEvent() {}

// MatchStartedEvent launches the round on a session. Both sides
// receive the same seed so their bags deal identical pieces.
type MatchStartedEvent struct {
	MatchID      MatchID
	Side         PlayerID
	Code         string
	Seed         int64
	OpponentName string
}

func (MatchStartedEvent) sessionEvent() {}

// MatchEndedEvent closes the match on both sessions.
type MatchEndedEvent struct {
	MatchID MatchID
	Reason  MatchEndReason
	Winner  PlayerID // 0 when nobody won
	Score1  uint64
	Score2  uint64
}

func (MatchEndedEvent) sessionEvent() {}

// MatchEndReason describes why a match ended.
type MatchEndReason int

const (
	MatchEndReasonTopOut     MatchEndReason = iota // a player topped out
	MatchEndReasonDisconnect                       // opponent connection dropped
	MatchEndReasonHostLeft                         // host closed the lobby
	MatchEndReasonForfeit                          // a player quit mid-match
)

func (r MatchEndReason) String() string {
	switch r {
	case MatchEndReasonTopOut:
		return "Match completed"
	case MatchEndReasonDisconnect:
		return "Opponent disconnected"
	case MatchEndReasonHostLeft:
		return "Host left"
	case MatchEndReasonForfeit:
		return "Opponent forfeited"
	default:
		return "Unknown"
	}
}

// OpponentBoardEvent carries the far side's latest board snapshot.
type OpponentBoardEvent struct {
	MatchID MatchID
	Cells   []byte
	Points  uint64
	Lines   int
	Level   int
}

func (OpponentBoardEvent) sessionEvent() {}

// GarbageEvent delivers attack lines to inject at the bottom of the
// receiving board. All lines share the one gap column.
type GarbageEvent struct {
	MatchID MatchID
	Lines   int
	GapCol  int
}

func (GarbageEvent) sessionEvent() {}

// CoordinatorMessage is a message from a session to the coordinator.
type CoordinatorMessage interface {
	coordinatorMessage()
}

// CreateLobbyMsg requests a new lobby.
type CreateLobbyMsg struct {
	SessionID SessionID
}

func (CreateLobbyMsg) coordinatorMessage() {}

// JoinLobbyMsg requests joining an existing lobby by code.
type JoinLobbyMsg struct {
	SessionID SessionID
	Code      string
}

func (JoinLobbyMsg) coordinatorMessage() {}

// CancelLobbyMsg tears down a hosted lobby.
type CancelLobbyMsg struct {
	SessionID SessionID
	Code      string
}

func (CancelLobbyMsg) coordinatorMessage() {}

// LeaveLobbyMsg requests leaving a lobby, from either side.
type LeaveLobbyMsg struct {
	SessionID SessionID
	Code      string
}

func (LeaveLobbyMsg) coordinatorMessage() {}

// BoardUpdateMsg publishes a player's board to their opponent. Sent on
// every piece lock.
type BoardUpdateMsg struct {
	MatchID MatchID
	Player  PlayerID
	Cells   []byte
	Points  uint64
	Lines   int
	Level   int
}

func (BoardUpdateMsg) coordinatorMessage() {}

// PieceLockedMsg reports a scoring lock so the match can compute and
// relay garbage.
type PieceLockedMsg struct {
	MatchID    MatchID
	Player     PlayerID
	Lines      int
	IsTSpin    bool
	Combo      int
	BackToBack bool
}

func (PieceLockedMsg) coordinatorMessage() {}

// GameOverMsg reports that a player topped out or quit.
type GameOverMsg struct {
	MatchID    MatchID
	Player     PlayerID
	FinalScore uint64
	Forfeit    bool
}

func (GameOverMsg) coordinatorMessage() {}

// SessionDisconnectedMsg is sent when a session's connection drops.
type SessionDisconnectedMsg struct {
	SessionID SessionID
}

func (SessionDisconnectedMsg) coordinatorMessage() {}

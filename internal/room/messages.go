package room

import "royale-chess/internal/game"

// Rejection reasons reported back to the initiating caller.
const (
	ReasonRoomFull         = "room_full"
	ReasonAlreadyStarted   = "already_started"
	ReasonNotAdmin         = "not_admin"
	ReasonNotEnoughPlayers = "not_enough_players"
	ReasonRoomClosed       = "room_closed"
)

// Join: new player or reconnect, keyed by the opaque session id.
type Join struct {
	SessionID  string
	Name       string
	WantsAdmin bool
	Reply      chan<- JoinReply
}

type JoinReply struct {
	Reason    string // empty on success
	PlayerID  string
	Reconnect bool
	Self      game.PlayerDetail
	Snapshot  game.Snapshot
}

// Start: admin requests the match to begin.
type Start struct {
	PlayerID string
	Reply    chan<- ActionReply
}

type ActionReply struct {
	Reason   string // empty on success
	Snapshot game.Snapshot
}

// Move: single-piece move attempt. Invalid moves are no-ops, not errors.
type Move struct {
	PlayerID string
	PieceID  string
	ToRow    int
	ToCol    int
	Reply    chan<- MoveReply
}

type MoveReply struct {
	Valid    bool
	Snapshot game.Snapshot
}

// Reset: admin returns the room to the lobby. Silently ignored otherwise.
type Reset struct {
	PlayerID string
	Reply    chan<- ActionReply
}

// Disconnect: issued by the transport when a player's connection drops.
type Disconnect struct {
	PlayerID string
}

// internal timer callbacks, funneled through the same inbox
type cooldownExpired struct{ pieceID string }

type removalCheck struct{ playerID string }

package room

import (
	"hexfief/internal/engine"
	"hexfief/internal/save"
	"hexfief/internal/types"
)

// Msg is the room actor's inbox protocol. Every mutating operation on a
// room arrives as one of these and is processed to completion before the
// next; that serialization is the room's whole concurrency story.
type Msg interface{ isRoomMsg() }

// Join registers a new player. Color is optional; when empty a random
// unused color is assigned.
type Join struct {
	ClientID string
	Name     string
	Color    engine.Color
	Outbox   chan types.ServerMessage
	Reply    chan JoinReply
}

type JoinReply struct {
	Player *engine.Player
	Err    *types.ErrorPayload
}

// Rejoin reclaims a disconnected player's seat by color under a new
// connection identity.
type Rejoin struct {
	ClientID string
	Color    engine.Color
	Outbox   chan types.ServerMessage
	Reply    chan RejoinReply
}

type RejoinReply struct {
	Resync *types.RejoinPayload
	Err    *types.ErrorPayload
}

// ClaimColor binds a connection to one color of a loaded game.
type ClaimColor struct {
	ClientID string
	Name     string
	Color    engine.Color
	Outbox   chan types.ServerMessage
	Reply    chan RejoinReply
}

// Leave drops a connection. Before the game starts the player is removed
// outright; afterwards the seat is kept for reconnection.
type Leave struct{ ClientID string }

// Intent carries a gameplay wire message from a joined client.
type Intent struct {
	ClientID string
	Msg      types.ClientMessage
}

// Colors asks for the palette still unclaimed in this room.
type Colors struct{ Reply chan []engine.Color }

// Capture asks for a persistence snapshot of the current state.
type Capture struct{ Reply chan *save.Snapshot }

// SaveTo writes a snapshot through the given store from inside the room's
// own loop, so persistence never races a mutation on the same room.
type SaveTo struct {
	Store save.Store
	Name  string
	Reply chan SaveReply
}

type SaveReply struct {
	Snapshot *save.Snapshot
	Err      error
}

// GetState reflects internal state for tests without data races.
type GetState struct{ Reply chan View }

type View struct {
	Phase      engine.Phase
	NumPlayers int
	NumClients int
	LeaderID   string
	TurnPlayer string
	Locked     bool
	Started    bool
	GameEnding bool
	DukeID     string
	Draft      *engine.DraftState
	Unclaimed  int
}

type Shutdown struct{}

func (Join) isRoomMsg()       {}
func (Rejoin) isRoomMsg()     {}
func (ClaimColor) isRoomMsg() {}
func (Leave) isRoomMsg()      {}
func (Intent) isRoomMsg()     {}
func (Colors) isRoomMsg()     {}
func (Capture) isRoomMsg()    {}
func (SaveTo) isRoomMsg()     {}
func (GetState) isRoomMsg()   {}
func (Shutdown) isRoomMsg()   {}

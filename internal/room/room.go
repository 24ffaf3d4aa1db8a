package room

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hexfief/internal/engine"
	"hexfief/internal/save"
	"hexfief/internal/types"
)

// MaxPlayers matches the color palette.
const MaxPlayers = 4

// Room is one game session: board, players, phase machine and the clients
// watching it. A single goroutine owns all of it; see messages.go.
type Room struct {
	inbox  chan Msg
	ctx    context.Context
	cancel context.CancelFunc
	log    *zap.Logger
	rng    *rand.Rand

	// onEmpty tells the hub the room lost its last player before the game
	// started and can be torn down.
	onEmpty func(roomID string)

	id      string
	boardID string
	board   *engine.Board
	players map[string]*engine.Player
	turns   *engine.TurnState
	leader  string
	phase   engine.Phase
	locked  bool
	started bool
	draft   *engine.DraftState
	moved   engine.MoveTracker
	history []types.HistoryEntry

	clients map[string]chan types.ServerMessage

	// Loaded-game state: players waiting to be claimed by color, and the
	// phase to resume once every color is taken.
	unclaimed   map[engine.Color]*engine.Player
	resumePhase engine.Phase
}

func New(parent context.Context, id string, log *zap.Logger, onEmpty func(string)) *Room {
	ctx, cancel := context.WithCancel(parent)
	r := &Room{
		inbox:   make(chan Msg, 64),
		ctx:     ctx,
		cancel:  cancel,
		log:     log.With(zap.String("room", id)),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		onEmpty: onEmpty,
		id:      id,
		boardID: uuid.NewString(),
		board:   engine.NewBoard(),
		players: make(map[string]*engine.Player),
		turns:   &engine.TurnState{},
		phase:   engine.PhaseWaiting,
		moved:   engine.MoveTracker{},
		clients: make(map[string]chan types.ServerMessage),
	}
	go r.loop()
	return r
}

// NewFromSnapshot builds a fresh room in the LOADED sub-state: the board and
// players are restored under their saved identities, and every color must be
// claimed before the saved phase resumes.
func NewFromSnapshot(parent context.Context, id string, snap *save.Snapshot, log *zap.Logger, onEmpty func(string)) *Room {
	r := New(parent, id, log, onEmpty)
	r.boardID = snap.BoardID
	r.board = snap.Board
	r.locked = snap.LockedForEntry
	r.started = snap.GameStarted
	r.draft = snap.Placement
	r.phase = engine.PhaseLoaded
	r.resumePhase = snap.GamePhase
	r.turns = &engine.TurnState{
		Order:             append([]string(nil), snap.TurnOrder...),
		GameEnding:        snap.GameEnding,
		DukePlayerID:      snap.DukePlayerID,
		FinalRoundStartID: snap.FinalRoundStartPlayerID,
	}
	r.unclaimed = make(map[engine.Color]*engine.Player, len(snap.Players))
	for _, p := range snap.Players {
		r.unclaimed[p.Color] = p
		if p.Color == snap.PlayerOnTurnColor {
			r.turns.SetCurrent(p.ID)
		}
	}
	return r
}

func (r *Room) ID() string            { return r.id }
func (r *Room) Inbox() chan<- Msg     { return r.inbox }
func (r *Room) Done() <-chan struct{} { return r.ctx.Done() }

func (r *Room) loop() {
	for {
		select {
		case <-r.ctx.Done():
			r.shutdown()
			return

		case m := <-r.inbox:
			switch msg := m.(type) {
			case Join:
				msg.Reply <- r.handleJoin(msg)
			case Rejoin:
				msg.Reply <- r.handleRejoin(msg)
			case ClaimColor:
				msg.Reply <- r.handleClaimColor(msg)
			case Leave:
				r.handleLeave(msg.ClientID)
			case Intent:
				r.dispatch(msg)
			case Colors:
				msg.Reply <- r.availableColors()
			case Capture:
				msg.Reply <- r.capture()
			case SaveTo:
				snap := r.capture()
				err := msg.Store.Save(r.ctx, msg.Name, snap)
				if err != nil {
					r.log.Error("save failed", zap.String("name", msg.Name), zap.Error(err))
				}
				msg.Reply <- SaveReply{Snapshot: snap, Err: err}
			case GetState:
				msg.Reply <- r.view()
			case Shutdown:
				r.shutdown()
				return
			}
		}
	}
}

// dispatch guards every gameplay intent: a panic in a handler must not take
// the room down or leak; it is logged and answered with a generic error to
// the origin connection only.
func (r *Room) dispatch(msg Intent) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("intent handler panicked",
				zap.Any("panic", rec),
				zap.String("client", msg.ClientID),
				zap.String("intent", msg.Msg.Type))
			r.sendTo(msg.ClientID, types.ErrorMsg(types.CodeInternalError, "internal error"))
		}
	}()
	r.handleIntent(msg.ClientID, msg.Msg)
}

func (r *Room) shutdown() {
	for id, ch := range r.clients {
		close(ch)
		delete(r.clients, id)
	}
	r.cancel()
}

// broadcast fans a notification out to every connected client. Slow clients
// are dropped rather than blocking the room.
func (r *Room) broadcast(msg types.ServerMessage) {
	for id, ch := range r.clients {
		select {
		case ch <- msg:
		default:
			r.log.Warn("dropping slow client", zap.String("client", id))
			close(ch)
			delete(r.clients, id)
		}
	}
}

func (r *Room) sendTo(clientID string, msg types.ServerMessage) {
	ch, ok := r.clients[clientID]
	if !ok {
		return
	}
	select {
	case ch <- msg:
	default:
		r.log.Warn("dropping slow client", zap.String("client", clientID))
		close(ch)
		delete(r.clients, clientID)
	}
}

// orderedPlayers returns the players in join order.
func (r *Room) orderedPlayers() []*engine.Player {
	out := make([]*engine.Player, 0, len(r.players))
	for _, id := range r.turns.Order {
		if p, ok := r.players[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (r *Room) playerColor(clientID string) engine.Color {
	if p, ok := r.players[clientID]; ok {
		return p.Color
	}
	return ""
}

func (r *Room) view() View {
	v := View{
		Phase:      r.phase,
		NumPlayers: len(r.players),
		NumClients: len(r.clients),
		LeaderID:   r.leader,
		TurnPlayer: r.turns.Current(),
		Locked:     r.locked,
		Started:    r.started,
		GameEnding: r.turns.GameEnding,
		DukeID:     r.turns.DukePlayerID,
		Unclaimed:  len(r.unclaimed),
	}
	if r.draft != nil {
		d := *r.draft
		v.Draft = &d
	}
	return v
}

func (r *Room) capture() *save.Snapshot {
	onTurn := r.playerColor(r.turns.Current())
	players := make(map[string]*engine.Player, len(r.players))
	for id, p := range r.players {
		players[id] = p
	}
	return &save.Snapshot{
		Version:                 save.SnapshotVersion,
		SavedAt:                 time.Now().UTC(),
		RoomID:                  r.id,
		BoardID:                 r.boardID,
		GamePhase:               r.phase,
		GameStarted:             r.started,
		LockedForEntry:          r.locked,
		Board:                   r.board,
		Players:                 players,
		TurnOrder:               append([]string(nil), r.turns.Order...),
		PlayerOnTurnColor:       onTurn,
		Placement:               r.draft,
		GameEnding:              r.turns.GameEnding,
		DukePlayerID:            r.turns.DukePlayerID,
		FinalRoundStartPlayerID: r.turns.FinalRoundStartID,
	}
}

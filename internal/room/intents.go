package room

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"hexfief/internal/engine"
	"hexfief/internal/types"
)

// historyLimit bounds the room's action log; the oldest entries fall off.
const historyLimit = 100

func (r *Room) handleIntent(clientID string, m types.ClientMessage) {
	switch m.Type {
	case types.IntentRandomDistribution:
		r.handleDistribution(clientID)
	case types.IntentPlacePiece:
		r.handlePlacePiece(clientID, m)
	case types.IntentBattleAction:
		r.handleBattleAction(clientID, m)
	case types.IntentEndTurn:
		r.handleEndTurn(clientID)
	case types.IntentRestartGame:
		r.handleRestart(clientID, m)
	default:
		r.sendTo(clientID, types.ErrorMsg(types.CodeBadPayload, "unknown intent "+m.Type))
	}
}

// handleDistribution runs WAITING→PLACEMENT→INITIAL_PLACEMENT in one go:
// the leader locks the room, the pooled tiles grow the board, and the
// placement draft opens with the first seat.
func (r *Room) handleDistribution(clientID string) {
	if r.phase != engine.PhaseWaiting {
		r.sendTo(clientID, types.ErrorMsg(types.CodeWrongPhase, "the board is already distributed"))
		return
	}
	if clientID != r.leader {
		r.sendTo(clientID, types.ErrorMsg(types.CodeNotLeader, "only the room leader can start the game"))
		return
	}
	if len(r.players) == 0 {
		r.sendTo(clientID, types.ErrorMsg(types.CodeBadPayload, "no players in the room"))
		return
	}

	r.locked = true
	r.started = true
	r.phase = engine.PhasePlacement
	r.broadcast(types.Msg(types.EvtPhaseChanged, types.PhaseChangedPayload{Phase: r.phase}))

	engine.DistributeTiles(r.board, r.orderedPlayers(), r.rng)
	r.broadcast(types.Msg(types.EvtCreateBoard, types.BoardPayload{BoardID: r.boardID, Board: r.board}))
	r.broadcast(types.Msg(types.EvtDrawPlayers, types.PlayersPayload{Players: r.orderedPlayers()}))
	r.addHistory("distribution", r.playerColor(clientID), "board distributed")

	draft, err := engine.NewDraft(r.turns.Order)
	if err != nil {
		// Unreachable with 1-4 players; dispatch() turns a broken draft into
		// an internal error rather than a stuck room.
		panic(err)
	}
	r.draft = draft
	r.phase = engine.PhaseInitialPlacement
	r.broadcast(types.Msg(types.EvtPhaseChanged, types.PhaseChangedPayload{Phase: r.phase}))

	first := draft.Current()
	r.turns.SetCurrent(first.PlayerID)
	r.broadcast(types.Msg(types.EvtPlacementStarted, types.PlacementTurnPayload{
		PlayerID:  first.PlayerID,
		Color:     r.playerColor(first.PlayerID),
		Remaining: first.Cities,
	}))
	r.broadcast(types.Msg(types.EvtTurnChanged, types.TurnChangedPayload{
		PlayerID: first.PlayerID, Color: r.playerColor(first.PlayerID),
	}))
}

func (r *Room) handlePlacePiece(clientID string, m types.ClientMessage) {
	if r.phase != engine.PhaseInitialPlacement || r.draft == nil {
		r.sendTo(clientID, types.ErrorMsg(types.CodeWrongPhase, "not in the placement phase"))
		return
	}
	if r.draft.Current().PlayerID != clientID {
		r.sendTo(clientID, types.ErrorMsg(types.CodeNotYourTurn, "not your placement turn"))
		return
	}
	p := r.players[clientID]
	if err := engine.PlaceCity(r.board, p, m.Row, m.Col); err != nil {
		r.sendTo(clientID, types.ErrorMsg(err.Code, err.Message))
		return
	}

	adv := r.draft.Advance()
	r.broadcast(types.Msg(types.EvtPiecePlaced, types.PiecePlacedPayload{
		Row: m.Row, Col: m.Col, Color: p.Color, Remaining: adv.Remaining,
	}))
	r.broadcast(types.Msg(types.EvtUpdateBoard, types.BoardPayload{Board: r.board}))
	r.broadcast(types.Msg(types.EvtDrawPlayers, types.PlayersPayload{Players: r.orderedPlayers()}))
	r.addHistory("placeCity", p.Color, fmt.Sprintf("city at %d,%d", m.Row, m.Col))

	switch {
	case adv.Completed:
		r.draft = nil
		r.phase = engine.PhaseBattle
		r.turns.SetCurrent(r.leader)
		r.broadcast(types.Msg(types.EvtPlacementComplete, nil))
		r.broadcast(types.Msg(types.EvtPhaseChanged, types.PhaseChangedPayload{Phase: r.phase}))
		r.broadcast(types.Msg(types.EvtTurnChanged, types.TurnChangedPayload{
			PlayerID: r.leader, Color: r.playerColor(r.leader),
		}))
	case adv.TurnChanged:
		r.turns.SetCurrent(adv.PlayerID)
		r.broadcast(types.Msg(types.EvtPlacementUpdate, types.PlacementTurnPayload{
			PlayerID: adv.PlayerID, Color: r.playerColor(adv.PlayerID), Remaining: adv.Remaining,
		}))
		r.broadcast(types.Msg(types.EvtTurnChanged, types.TurnChangedPayload{
			PlayerID: adv.PlayerID, Color: r.playerColor(adv.PlayerID),
		}))
	default:
		r.broadcast(types.Msg(types.EvtPlacementUpdate, types.PlacementTurnPayload{
			PlayerID: adv.PlayerID, Color: r.playerColor(adv.PlayerID), Remaining: adv.Remaining,
		}))
	}
}

func (r *Room) handleBattleAction(clientID string, m types.ClientMessage) {
	if r.phase != engine.PhaseBattle {
		r.sendTo(clientID, types.ErrorMsg(types.CodeWrongPhase, "not in the battle phase"))
		return
	}
	if r.turns.Current() != clientID {
		r.sendTo(clientID, types.ErrorMsg(types.CodeNotYourTurn, "not your turn"))
		return
	}
	p := r.players[clientID]

	var res engine.ActionResult
	switch m.Action {
	case types.ActionRecruit:
		res = engine.Recruit(r.board, p, m.Row, m.Col, m.Count)
	case types.ActionMove:
		res = engine.Move(r.board, r.players, p,
			engine.Coord{Row: m.FromRow, Col: m.FromCol},
			engine.Coord{Row: m.ToRow, Col: m.ToCol}, r.moved)
	case types.ActionBuild:
		res = engine.Build(r.board, p, m.Row, m.Col, engine.PieceType(m.Structure))
	case types.ActionFoundCity:
		res = engine.FoundCity(r.board, p, m.Row, m.Col)
	case types.ActionExpedition:
		res = engine.Expedition(r.board, p, m.Row, m.Col)
	case types.ActionNobleTitle:
		res = engine.NobleTitle(p)
	default:
		r.sendTo(clientID, types.ErrorMsg(types.CodeBadPayload, "unknown battle action "+m.Action))
		return
	}

	r.sendTo(clientID, types.Msg(types.EvtActionResult, res))
	if !res.Success {
		return
	}

	r.broadcast(types.Msg(types.EvtUpdateBoard, types.BoardPayload{Board: r.board}))
	r.broadcast(types.Msg(types.EvtDrawPlayers, types.PlayersPayload{Players: r.orderedPlayers()}))
	r.addHistory(m.Action, p.Color, res.Message)

	if res.CheckVictory && p.Title == engine.TitleDuke {
		if r.turns.LatchVictory(clientID) {
			r.broadcast(types.Msg(types.EvtDukeAnnounced, types.DukeAnnouncedPayload{
				PlayerID: clientID, Color: p.Color, Name: p.Name,
			}))
			r.addHistory("duke", p.Color, p.Name+" reached duke, final round begins")
		}
	}
}

func (r *Room) handleEndTurn(clientID string) {
	if r.phase != engine.PhaseBattle {
		r.sendTo(clientID, types.ErrorMsg(types.CodeWrongPhase, "not in the battle phase"))
		return
	}
	if r.turns.Current() != clientID {
		r.sendTo(clientID, types.ErrorMsg(types.CodeNotYourTurn, "not your turn"))
		return
	}
	r.advanceTurn()
}

// advanceTurn rotates to the next seat, clearing the per-turn move tracker.
// A completed round under a set victory latch ends the game here and
// nowhere else, so every player gets the same number of turns.
func (r *Room) advanceTurn() {
	r.moved = engine.MoveTracker{}
	next, wrapped := r.turns.Advance()
	if r.turns.ShouldEnd(wrapped) {
		r.endGame()
		return
	}
	r.broadcast(types.Msg(types.EvtTurnChanged, types.TurnChangedPayload{
		PlayerID: next, Color: r.playerColor(next),
	}))
}

func (r *Room) endGame() {
	r.phase = engine.PhaseEnded
	scores := engine.FinalScores(r.orderedPlayers())
	r.broadcast(types.Msg(types.EvtPhaseChanged, types.PhaseChangedPayload{Phase: r.phase}))
	payload := types.GameEndedPayload{Scores: scores}
	if len(scores) > 0 {
		payload.Winner = scores[0]
		r.addHistory("gameEnded", scores[0].Color, scores[0].Name+" wins")
	}
	r.broadcast(types.Msg(types.EvtGameEnded, payload))
}

// handleRestart returns the room to WAITING, keeping membership and colors
// but resetting every piece of game state.
func (r *Room) handleRestart(clientID string, m types.ClientMessage) {
	if m.ConfirmRoomID != r.id {
		r.sendTo(clientID, types.ErrorMsg(types.CodeBadPayload, "restart must confirm the room id"))
		return
	}
	if clientID != r.leader {
		r.sendTo(clientID, types.ErrorMsg(types.CodeNotLeader, "only the room leader can restart"))
		return
	}

	r.board = engine.NewBoard()
	r.boardID = uuid.NewString()
	for id, p := range r.players {
		r.players[id] = engine.NewPlayer(id, p.Name, p.Color)
	}
	r.turns = &engine.TurnState{Order: append([]string(nil), r.turns.Order...)}
	r.draft = nil
	r.moved = engine.MoveTracker{}
	r.history = nil
	r.phase = engine.PhaseWaiting
	r.locked = false
	r.started = false

	r.broadcast(types.Msg(types.EvtPhaseChanged, types.PhaseChangedPayload{Phase: r.phase}))
	r.broadcast(types.Msg(types.EvtCreateBoard, types.BoardPayload{BoardID: r.boardID, Board: r.board}))
	r.broadcast(types.Msg(types.EvtDrawPlayers, types.PlayersPayload{Players: r.orderedPlayers()}))
	r.broadcast(types.Msg(types.EvtTurnChanged, types.TurnChangedPayload{
		PlayerID: r.turns.Current(), Color: r.playerColor(r.turns.Current()),
	}))
}

func (r *Room) addHistory(action string, color engine.Color, details string) {
	entry := types.HistoryEntry{
		Action:    action,
		Color:     color,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
	r.history = append(r.history, entry)
	if len(r.history) > historyLimit {
		r.history = r.history[len(r.history)-historyLimit:]
	}
	r.broadcast(types.Msg(types.EvtHistoryEntry, entry))
}

package room

import (
	"hexfief/internal/engine"
	"hexfief/internal/types"
)

func errPayload(code, msg string) *types.ErrorPayload {
	return &types.ErrorPayload{Code: code, Message: msg}
}

// availableColors lists the palette minus colors already held. In a loaded
// room it instead lists the saved colors still waiting to be claimed.
func (r *Room) availableColors() []engine.Color {
	if r.phase == engine.PhaseLoaded {
		out := []engine.Color{}
		for _, c := range engine.AllColors {
			if _, ok := r.unclaimed[c]; ok {
				out = append(out, c)
			}
		}
		return out
	}
	taken := make(map[engine.Color]bool, MaxPlayers)
	for _, p := range r.players {
		taken[p.Color] = true
	}
	for c := range r.unclaimed {
		taken[c] = true
	}
	out := []engine.Color{}
	for _, c := range engine.AllColors {
		if !taken[c] {
			out = append(out, c)
		}
	}
	return out
}

func (r *Room) handleJoin(msg Join) JoinReply {
	if r.phase == engine.PhaseLoaded {
		return JoinReply{Err: errPayload(types.CodeRoomLocked, "loaded game: claim a color instead")}
	}
	if len(r.players) >= MaxPlayers {
		return JoinReply{Err: errPayload(types.CodeRoomFull, "the room already has 4 players")}
	}
	if r.locked {
		return JoinReply{Err: errPayload(types.CodeRoomLocked, "the board is already distributed")}
	}
	if r.started {
		return JoinReply{Err: errPayload(types.CodeGameStarted, "the game has already started")}
	}

	color := msg.Color
	free := r.availableColors()
	if color == "" {
		color = free[r.rng.Intn(len(free))]
	} else {
		ok := false
		for _, c := range free {
			if c == color {
				ok = true
				break
			}
		}
		if !ok {
			return JoinReply{Err: errPayload(types.CodeColorTaken, "that color is already taken")}
		}
	}

	name := msg.Name
	if name == "" {
		name = string(color)
	}
	p := engine.NewPlayer(msg.ClientID, name, color)
	r.players[msg.ClientID] = p
	r.turns.Add(msg.ClientID)
	r.clients[msg.ClientID] = msg.Outbox
	if r.leader == "" {
		r.leader = msg.ClientID
	}

	r.broadcast(types.Msg(types.EvtDrawPlayers, types.PlayersPayload{Players: r.orderedPlayers()}))
	return JoinReply{Player: p}
}

func (r *Room) handleLeave(clientID string) {
	if ch, ok := r.clients[clientID]; ok {
		close(ch)
		delete(r.clients, clientID)
	}
	p, ok := r.players[clientID]
	if !ok {
		return
	}

	if !r.started {
		delete(r.players, clientID)
		r.turns.Remove(clientID)
		if r.leader == clientID {
			r.leader = ""
			if len(r.turns.Order) > 0 {
				r.leader = r.turns.Order[0]
				r.sendTo(r.leader, types.Msg(types.EvtYouAreLeader, nil))
			}
		}
		if len(r.players) == 0 {
			if r.onEmpty != nil {
				r.onEmpty(r.id)
			}
			r.cancel()
			return
		}
		r.broadcast(types.Msg(types.EvtPlayerDisconnected, types.PlayerDisconnectedPayload{
			PlayerID: clientID, Color: p.Color, Name: p.Name,
		}))
		r.broadcast(types.Msg(types.EvtDrawPlayers, types.PlayersPayload{Players: r.orderedPlayers()}))
		return
	}

	// Mid-game: the seat survives for a reconnect; only the turn moves on.
	r.broadcast(types.Msg(types.EvtPlayerDisconnected, types.PlayerDisconnectedPayload{
		PlayerID: clientID, Color: p.Color, Name: p.Name,
	}))
	if r.phase == engine.PhaseBattle && r.turns.Current() == clientID {
		r.advanceTurn()
	}
}

// handleRejoin reattaches a dropped player by color. The color is the
// durable identity: every reference to the old connection id is remapped in
// one pass so no partially updated state survives.
func (r *Room) handleRejoin(msg Rejoin) RejoinReply {
	var oldID string
	for id, p := range r.players {
		if p.Color == msg.Color {
			oldID = id
			break
		}
	}
	if oldID == "" {
		return RejoinReply{Err: errPayload(types.CodeColorUnknown, "no player with that color in this room")}
	}
	if _, connected := r.clients[oldID]; connected {
		return RejoinReply{Err: errPayload(types.CodeColorTaken, "that player is still connected")}
	}

	r.remapIdentity(oldID, msg.ClientID)
	r.clients[msg.ClientID] = msg.Outbox
	p := r.players[msg.ClientID]

	r.broadcast(types.Msg(types.EvtDrawPlayers, types.PlayersPayload{Players: r.orderedPlayers()}))
	return RejoinReply{Resync: r.resyncPayload(p)}
}

// handleClaimColor binds a connection to one saved color of a loaded game.
// When the last color is claimed the saved phase resumes.
func (r *Room) handleClaimColor(msg ClaimColor) RejoinReply {
	if r.phase != engine.PhaseLoaded {
		return RejoinReply{Err: errPayload(types.CodeWrongPhase, "this room is not waiting for claims")}
	}
	p, ok := r.unclaimed[msg.Color]
	if !ok {
		return RejoinReply{Err: errPayload(types.CodeColorUnknown, "that color is not claimable")}
	}

	oldID := p.ID
	delete(r.unclaimed, msg.Color)
	r.players[oldID] = p
	r.remapIdentity(oldID, msg.ClientID)
	if msg.Name != "" {
		p.Name = msg.Name
	}
	r.clients[msg.ClientID] = msg.Outbox
	if r.leader == "" {
		r.leader = msg.ClientID
		r.sendTo(msg.ClientID, types.Msg(types.EvtYouAreLeader, nil))
	}

	if len(r.unclaimed) == 0 {
		r.phase = r.resumePhase
		r.broadcast(types.Msg(types.EvtPhaseChanged, types.PhaseChangedPayload{Phase: r.phase}))
		r.broadcast(types.Msg(types.EvtCreateBoard, types.BoardPayload{BoardID: r.boardID, Board: r.board}))
		r.broadcast(types.Msg(types.EvtDrawPlayers, types.PlayersPayload{Players: r.orderedPlayers()}))
		r.broadcast(types.Msg(types.EvtTurnChanged, types.TurnChangedPayload{
			PlayerID: r.turns.Current(), Color: r.playerColor(r.turns.Current()),
		}))
	}
	return RejoinReply{Resync: r.resyncPayload(p)}
}

// remapIdentity rewrites one connection identity everywhere it can appear.
func (r *Room) remapIdentity(oldID, newID string) {
	p, ok := r.players[oldID]
	if !ok || oldID == newID {
		return
	}
	delete(r.players, oldID)
	p.ID = newID
	r.players[newID] = p
	r.board.RemapOwner(oldID, newID)
	r.turns.Remap(oldID, newID)
	if r.draft != nil {
		r.draft.RemapPlayer(oldID, newID)
	}
	if r.leader == oldID {
		r.leader = newID
	}
}

func (r *Room) resyncPayload(p *engine.Player) *types.RejoinPayload {
	return &types.RejoinPayload{
		RoomID:     r.id,
		Player:     p,
		Players:    r.orderedPlayers(),
		Board:      r.board,
		Phase:      r.phase,
		TurnPlayer: r.turns.Current(),
		IsLeader:   r.leader == p.ID,
		Placement:  r.draft,
		History:    r.history,
	}
}

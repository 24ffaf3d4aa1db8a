package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"hexfief/internal/engine"
	"hexfief/internal/hub"
	"hexfief/internal/room"
	"hexfief/internal/save"
	"hexfief/internal/types"
)

const writeTimeout = 3 * time.Second

// session is the per-connection state: one client identity, at most one
// room, and an outbox the room broadcasts into.
type session struct {
	clientID string
	conn     *websocket.Conn
	h        *hub.Hub
	store    save.Store
	log      *zap.Logger

	cur    *room.Room
	outbox chan types.ServerMessage
}

// Handler upgrades the connection and runs the session until the client
// disconnects. All game traffic flows over this one socket.
func Handler(h *hub.Hub, store save.Store, origins []string, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: origins,
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		clientID := uuid.NewString()
		s := &session{
			clientID: clientID,
			conn:     conn,
			h:        h,
			store:    store,
			log:      log.With(zap.String("client", clientID)),
			outbox:   make(chan types.ServerMessage, 64),
		}
		s.run(r.Context())
	}
}

func (s *session) run(ctx context.Context) {
	// Writer goroutine: relays room notifications until the room closes the
	// outbox (shutdown or slow-client drop).
	writeCtx, writeCancel := context.WithCancel(ctx)
	defer writeCancel()
	go func() {
		for msg := range s.outbox {
			s.write(writeCtx, msg)
		}
		s.conn.Close(websocket.StatusGoingAway, "room closed")
	}()

	defer func() {
		if s.cur != nil {
			s.cur.Inbox() <- room.Leave{ClientID: s.clientID}
		}
	}()

	for {
		_, data, err := s.conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			default:
				s.log.Debug("read ended", zap.Error(err))
			}
			return
		}

		var cm types.ClientMessage
		if err := json.Unmarshal(data, &cm); err != nil {
			s.write(ctx, types.ErrorMsg(types.CodeBadPayload, "bad json"))
			continue
		}
		s.handle(ctx, cm)
	}
}

func (s *session) handle(ctx context.Context, m types.ClientMessage) {
	switch m.Type {
	case types.IntentCreateRoom:
		s.createRoom(ctx, m)
	case types.IntentJoinRoom, types.IntentJoinRoomWithColor:
		s.joinRoom(ctx, m)
	case types.IntentRejoinRoom:
		s.rejoinRoom(ctx, m)
	case types.IntentJoinLoadedGame:
		s.joinLoadedGame(ctx, m)
	case types.IntentGetAvailableColors:
		s.availableColors(ctx, m)
	case types.IntentSaveGame:
		s.saveGame(ctx, m)
	case types.IntentListSaves:
		s.listSaves(ctx)
	case types.IntentLoadGame:
		s.loadGame(ctx, m)
	case types.IntentLoadLocalSave:
		s.loadLocalSave(ctx, m)
	default:
		// everything else is a gameplay intent for the joined room
		if s.cur == nil {
			s.write(ctx, types.ErrorMsg(types.CodeRoomNotFound, "join a room first"))
			return
		}
		s.cur.Inbox() <- room.Intent{ClientID: s.clientID, Msg: m}
	}
}

func (s *session) createRoom(ctx context.Context, m types.ClientMessage) {
	if s.cur != nil {
		s.write(ctx, types.ErrorMsg(types.CodeBadPayload, "already in a room"))
		return
	}
	reply := make(chan *room.Room, 1)
	s.h.Inbox() <- hub.CreateRoom{Reply: reply}
	rm := <-reply

	p, errp := s.join(rm, m)
	if errp != nil {
		s.write(ctx, types.Msg(types.EvtError, *errp))
		return
	}
	s.cur = rm
	s.write(ctx, types.Msg(types.EvtRoomCreated, types.RoomCreatedPayload{
		RoomID: rm.ID(), Player: p, Leader: true,
	}))
}

func (s *session) joinRoom(ctx context.Context, m types.ClientMessage) {
	if s.cur != nil {
		s.write(ctx, types.ErrorMsg(types.CodeBadPayload, "already in a room"))
		return
	}
	rm := s.getRoom(m.RoomID)
	if rm == nil {
		s.write(ctx, types.ErrorMsg(types.CodeRoomNotFound, "no room with code "+m.RoomID))
		return
	}
	p, errp := s.join(rm, m)
	if errp != nil {
		s.write(ctx, types.Msg(types.EvtError, *errp))
		return
	}
	s.cur = rm
	s.write(ctx, types.Msg(types.EvtRoomJoined, types.RoomJoinedPayload{RoomID: rm.ID(), Player: p}))
}

func (s *session) join(rm *room.Room, m types.ClientMessage) (*engine.Player, *types.ErrorPayload) {
	reply := make(chan room.JoinReply, 1)
	rm.Inbox() <- room.Join{
		ClientID: s.clientID,
		Name:     m.Name,
		Color:    engine.Color(m.Color),
		Outbox:   s.outbox,
		Reply:    reply,
	}
	jr := <-reply
	return jr.Player, jr.Err
}

func (s *session) rejoinRoom(ctx context.Context, m types.ClientMessage) {
	if s.cur != nil {
		s.write(ctx, types.ErrorMsg(types.CodeBadPayload, "already in a room"))
		return
	}
	rm := s.getRoom(m.RoomID)
	if rm == nil {
		s.write(ctx, types.Msg(types.EvtRejoinFailed, types.ErrorPayload{
			Code: types.CodeRoomNotFound, Message: "no room with code " + m.RoomID,
		}))
		return
	}
	reply := make(chan room.RejoinReply, 1)
	rm.Inbox() <- room.Rejoin{
		ClientID: s.clientID,
		Color:    engine.Color(m.Color),
		Outbox:   s.outbox,
		Reply:    reply,
	}
	rr := <-reply
	if rr.Err != nil {
		s.write(ctx, types.Msg(types.EvtRejoinFailed, *rr.Err))
		return
	}
	s.cur = rm
	s.write(ctx, types.Msg(types.EvtRejoinSuccess, rr.Resync))
}

func (s *session) joinLoadedGame(ctx context.Context, m types.ClientMessage) {
	if s.cur != nil {
		s.write(ctx, types.ErrorMsg(types.CodeBadPayload, "already in a room"))
		return
	}
	rm := s.getRoom(m.RoomID)
	if rm == nil {
		s.write(ctx, types.ErrorMsg(types.CodeRoomNotFound, "no room with code "+m.RoomID))
		return
	}
	reply := make(chan room.RejoinReply, 1)
	rm.Inbox() <- room.ClaimColor{
		ClientID: s.clientID,
		Name:     m.Name,
		Color:    engine.Color(m.Color),
		Outbox:   s.outbox,
		Reply:    reply,
	}
	rr := <-reply
	if rr.Err != nil {
		s.write(ctx, types.Msg(types.EvtError, *rr.Err))
		return
	}
	s.cur = rm
	s.write(ctx, types.Msg(types.EvtRejoinSuccess, rr.Resync))
}

func (s *session) availableColors(ctx context.Context, m types.ClientMessage) {
	rm := s.cur
	if m.RoomID != "" {
		rm = s.getRoom(m.RoomID)
	}
	if rm == nil {
		s.write(ctx, types.ErrorMsg(types.CodeRoomNotFound, "no room with code "+m.RoomID))
		return
	}
	reply := make(chan []engine.Color, 1)
	rm.Inbox() <- room.Colors{Reply: reply}
	s.write(ctx, types.Msg(types.EvtAvailableColors, types.AvailableColorsPayload{
		RoomID: rm.ID(), Colors: <-reply,
	}))
}

func (s *session) saveGame(ctx context.Context, m types.ClientMessage) {
	if s.cur == nil {
		s.write(ctx, types.ErrorMsg(types.CodeRoomNotFound, "join a room first"))
		return
	}
	name := m.Filename
	if name == "" {
		name = s.cur.ID()
	}
	reply := make(chan room.SaveReply, 1)
	s.cur.Inbox() <- room.SaveTo{Store: s.store, Name: name, Reply: reply}
	sr := <-reply
	if sr.Err != nil {
		s.write(ctx, types.ErrorMsg(types.CodeInternalError, "save failed"))
		return
	}
	s.write(ctx, types.Msg(types.EvtGameSaved, types.SaveInfo{
		Name: name, RoomID: sr.Snapshot.RoomID, SavedAt: sr.Snapshot.SavedAt,
	}))
}

func (s *session) listSaves(ctx context.Context) {
	infos, err := s.store.List(ctx)
	if err != nil {
		s.log.Error("list saves", zap.Error(err))
		s.write(ctx, types.ErrorMsg(types.CodeInternalError, "could not list saves"))
		return
	}
	out := make([]types.SaveInfo, 0, len(infos))
	for _, in := range infos {
		out = append(out, types.SaveInfo{Name: in.Name, RoomID: in.RoomID, SavedAt: in.SavedAt})
	}
	s.write(ctx, types.Msg(types.EvtSaveList, types.SaveListPayload{Saves: out}))
}

func (s *session) loadGame(ctx context.Context, m types.ClientMessage) {
	snap, err := s.store.Load(ctx, m.Filename)
	if err != nil {
		s.write(ctx, types.ErrorMsg(types.CodeBadPayload, "could not load save "+m.Filename))
		return
	}
	s.openLoaded(ctx, snap)
}

// loadLocalSave accepts a save file the client uploaded inline.
func (s *session) loadLocalSave(ctx context.Context, m types.ClientMessage) {
	snap, err := save.Decode(m.Save)
	if err != nil {
		s.write(ctx, types.ErrorMsg(types.CodeBadPayload, "invalid save file"))
		return
	}
	s.openLoaded(ctx, snap)
}

func (s *session) openLoaded(ctx context.Context, snap *save.Snapshot) {
	reply := make(chan *room.Room, 1)
	s.h.Inbox() <- hub.CreateFromSnapshot{Snapshot: snap, Reply: reply}
	rm := <-reply
	s.write(ctx, types.Msg(types.EvtLoadedGameColorSelect, types.ColorSelectPayload{
		RoomID: rm.ID(), Colors: snap.Colors(),
	}))
}

func (s *session) getRoom(code string) *room.Room {
	reply := make(chan *room.Room, 1)
	s.h.Inbox() <- hub.GetRoom{Code: code, Reply: reply}
	return <-reply
}

func (s *session) write(ctx context.Context, msg types.ServerMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		s.log.Error("marshal outbound", zap.Error(err))
		return
	}
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	_ = s.conn.Write(wctx, websocket.MessageText, payload)
}

package hub

import (
	"context"
	"crypto/rand"
	"math/big"

	"go.uber.org/zap"

	"hexfief/internal/room"
	"hexfief/internal/save"
)

type HubMsg interface{ isHubMsg() }

// CreateRoom makes a fresh room under a newly generated code.
type CreateRoom struct {
	Reply chan *room.Room
}

// CreateFromSnapshot makes a room in the claim-by-color state from a saved
// game. The snapshot must already be decoded and validated.
type CreateFromSnapshot struct {
	Snapshot *save.Snapshot
	Reply    chan *room.Room
}

type GetRoom struct {
	Code  string
	Reply chan *room.Room
}

type RemoveRoom struct {
	Code string
}

type ShutdownHub struct{}

func (CreateRoom) isHubMsg()         {}
func (CreateFromSnapshot) isHubMsg() {}
func (GetRoom) isHubMsg()            {}
func (RemoveRoom) isHubMsg()         {}
func (ShutdownHub) isHubMsg()        {}

// Hub owns the room map. Like a room it is a single goroutine fed by typed
// messages, so the map needs no lock.
type Hub struct {
	inbox  chan HubMsg
	rooms  map[string]*room.Room
	log    *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(parent context.Context, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:  make(chan HubMsg, 64),
		rooms:  make(map[string]*room.Room),
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

// GenerateCode returns a 6-character room code drawn from crypto/rand.
func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

func (h *Hub) freshCode() string {
	for {
		code, err := GenerateCode()
		if err != nil {
			// crypto/rand read failure is not recoverable at this level
			panic(err)
		}
		if h.rooms[code] == nil {
			return code
		}
		h.log.Warn("room code collision, regenerating", zap.String("code", code))
	}
}

// onEmpty hands a teardown notification back through the inbox so the map
// mutation happens on the hub goroutine.
func (h *Hub) onEmpty(code string) {
	select {
	case h.inbox <- RemoveRoom{Code: code}:
	case <-h.ctx.Done():
	}
}

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateRoom:
				code := h.freshCode()
				rm := room.New(h.ctx, code, h.log, h.onEmpty)
				h.rooms[code] = rm
				h.log.Info("room created", zap.String("room", code))
				msg.Reply <- rm

			case CreateFromSnapshot:
				code := h.freshCode()
				rm := room.NewFromSnapshot(h.ctx, code, msg.Snapshot, h.log, h.onEmpty)
				h.rooms[code] = rm
				h.log.Info("room loaded from save",
					zap.String("room", code),
					zap.String("savedRoom", msg.Snapshot.RoomID))
				msg.Reply <- rm

			case GetRoom:
				msg.Reply <- h.rooms[msg.Code] // may be nil

			case RemoveRoom:
				if rm := h.rooms[msg.Code]; rm != nil {
					delete(h.rooms, msg.Code)
					h.log.Info("room removed", zap.String("room", msg.Code))
				}

			case ShutdownHub:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) shutdown() {
	for code, rm := range h.rooms {
		select {
		case rm.Inbox() <- room.Shutdown{}:
		default:
		}
		delete(h.rooms, code)
	}
	h.cancel()
}

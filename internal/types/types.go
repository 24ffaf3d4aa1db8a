package types

import (
	"encoding/json"
	"time"

	"hexfief/internal/engine"
)

// Inbound intent types.
const (
	IntentCreateRoom         = "createRoom"
	IntentJoinRoom           = "joinRoom"
	IntentJoinRoomWithColor  = "joinRoomWithColor"
	IntentGetAvailableColors = "getAvailableColors"
	IntentRandomDistribution = "randomDistribution"
	IntentPlacePiece         = "placePiece"
	IntentBattleAction       = "battleAction"
	IntentEndTurn            = "endTurn"
	IntentRestartGame        = "restartGame"
	IntentRejoinRoom         = "rejoinRoom"
	IntentSaveGame           = "saveGame"
	IntentListSaves          = "listSaves"
	IntentLoadGame           = "loadGame"
	IntentLoadLocalSave      = "loadLocalSave"
	IntentJoinLoadedGame     = "joinLoadedGame"
)

// Battle sub-actions carried by battleAction intents.
const (
	ActionRecruit    = "recruit"
	ActionMove       = "move"
	ActionBuild      = "build"
	ActionFoundCity  = "foundCity"
	ActionExpedition = "expedition"
	ActionNobleTitle = "nobleTitle"
)

// ClientMessage is the single inbound wire envelope; which fields matter
// depends on Type (and, for battleAction, on Action).
type ClientMessage struct {
	Type          string          `json:"type"`
	RoomID        string          `json:"roomId,omitempty"`
	Name          string          `json:"name,omitempty"`
	Color         string          `json:"color,omitempty"`
	Row           int             `json:"row,omitempty"`
	Col           int             `json:"col,omitempty"`
	Action        string          `json:"action,omitempty"`
	Count         int             `json:"count,omitempty"`
	FromRow       int             `json:"fromRow,omitempty"`
	FromCol       int             `json:"fromCol,omitempty"`
	ToRow         int             `json:"toRow,omitempty"`
	ToCol         int             `json:"toCol,omitempty"`
	Structure     string          `json:"structure,omitempty"`
	Filename      string          `json:"filename,omitempty"`
	Save          json.RawMessage `json:"save,omitempty"`
	ConfirmRoomID string          `json:"confirmRoomId,omitempty"`
}

// Outbound notification events.
const (
	EvtRoomCreated           = "roomCreated"
	EvtRoomJoined            = "roomJoined"
	EvtAvailableColors       = "availableColors"
	EvtCreateBoard           = "createBoard"
	EvtUpdateBoard           = "updateBoard"
	EvtDrawPlayers           = "drawPlayers"
	EvtTurnChanged           = "turnChanged"
	EvtPhaseChanged          = "phaseChanged"
	EvtPiecePlaced           = "piecePlaced"
	EvtPlacementStarted      = "initialPlacementStarted"
	EvtPlacementUpdate       = "initialPlacementUpdate"
	EvtPlacementComplete     = "initialPlacementComplete"
	EvtActionResult          = "actionResult"
	EvtDukeAnnounced         = "dukeAnnounced"
	EvtGameEnded             = "gameEnded"
	EvtPlayerDisconnected    = "playerDisconnected"
	EvtYouAreLeader          = "youAreLeader"
	EvtHistoryEntry          = "historyEntry"
	EvtRejoinSuccess         = "rejoinSuccess"
	EvtRejoinFailed          = "rejoinFailed"
	EvtLoadedGameColorSelect = "loadedGameColorSelect"
	EvtGameSaved             = "gameSaved"
	EvtSaveList              = "saveList"
	EvtError                 = "error"
)

// Session-level error codes; rule-level codes come from the engine package.
const (
	CodeRoomNotFound  = "ROOM_NOT_FOUND"
	CodeRoomFull      = "ROOM_FULL"
	CodeRoomLocked    = "ROOM_LOCKED"
	CodeGameStarted   = "GAME_STARTED"
	CodeNotYourTurn   = "NOT_YOUR_TURN"
	CodeWrongPhase    = "WRONG_PHASE"
	CodeNotLeader     = "NOT_LEADER"
	CodeColorTaken    = "COLOR_TAKEN"
	CodeColorUnknown  = "COLOR_NOT_FOUND"
	CodeBadPayload    = "BAD_PAYLOAD"
	CodeInternalError = "INTERNAL_ERROR"
)

// ServerMessage is the outbound envelope: an event name plus its payload.
type ServerMessage struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

func Msg(event string, data any) ServerMessage { return ServerMessage{Event: event, Data: data} }

func ErrorMsg(code, message string) ServerMessage {
	return ServerMessage{Event: EvtError, Data: ErrorPayload{Code: code, Message: message}}
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RoomCreatedPayload struct {
	RoomID string         `json:"roomId"`
	Player *engine.Player `json:"player"`
	Leader bool           `json:"leader"`
}

type RoomJoinedPayload struct {
	RoomID string         `json:"roomId"`
	Player *engine.Player `json:"player"`
}

type AvailableColorsPayload struct {
	RoomID string         `json:"roomId"`
	Colors []engine.Color `json:"colors"`
}

type BoardPayload struct {
	BoardID string        `json:"boardId,omitempty"`
	Board   *engine.Board `json:"board"`
}

type PlayersPayload struct {
	Players []*engine.Player `json:"players"`
}

type TurnChangedPayload struct {
	PlayerID string       `json:"playerId"`
	Color    engine.Color `json:"color"`
}

type PhaseChangedPayload struct {
	Phase engine.Phase `json:"phase"`
}

type PiecePlacedPayload struct {
	Row       int          `json:"row"`
	Col       int          `json:"col"`
	Color     engine.Color `json:"color"`
	Remaining int          `json:"remaining"`
}

type PlacementTurnPayload struct {
	PlayerID  string       `json:"playerId"`
	Color     engine.Color `json:"color"`
	Remaining int          `json:"remaining"`
}

type DukeAnnouncedPayload struct {
	PlayerID string       `json:"playerId"`
	Color    engine.Color `json:"color"`
	Name     string       `json:"name"`
}

type GameEndedPayload struct {
	Scores []engine.ScoreEntry `json:"scores"`
	Winner engine.ScoreEntry   `json:"winner"`
}

type PlayerDisconnectedPayload struct {
	PlayerID string       `json:"playerId"`
	Color    engine.Color `json:"color"`
	Name     string       `json:"name"`
}

// HistoryEntry is one line of the room's bounded action log.
type HistoryEntry struct {
	Action    string       `json:"action"`
	Color     engine.Color `json:"playerColor"`
	Details   string       `json:"details"`
	Timestamp time.Time    `json:"timestamp"`
}

// RejoinPayload carries the full resync a reconnecting client needs.
type RejoinPayload struct {
	RoomID     string             `json:"roomId"`
	Player     *engine.Player     `json:"player"`
	Players    []*engine.Player   `json:"players"`
	Board      *engine.Board      `json:"board"`
	Phase      engine.Phase       `json:"phase"`
	TurnPlayer string             `json:"turnPlayerId"`
	IsLeader   bool               `json:"isLeader"`
	Placement  *engine.DraftState `json:"initialPlacementState,omitempty"`
	History    []HistoryEntry     `json:"history,omitempty"`
}

type SaveInfo struct {
	Name    string    `json:"name"`
	RoomID  string    `json:"roomId"`
	SavedAt time.Time `json:"savedAt"`
}

type SaveListPayload struct {
	Saves []SaveInfo `json:"saves"`
}

type ColorSelectPayload struct {
	RoomID string         `json:"roomId"`
	Colors []engine.Color `json:"colors"`
}

package save

import (
	"errors"
	"fmt"
	"time"

	"hexfief/internal/engine"
)

// SnapshotVersion guards the on-disk format.
const SnapshotVersion = 1

// Snapshot is a point-in-time copy of one room, sufficient to rebuild an
// equivalent session under fresh connection identities. Players are keyed by
// the connection identity they had when the game was saved; colors are the
// durable identity a loading client claims.
type Snapshot struct {
	Version                 int                       `json:"version"`
	SavedAt                 time.Time                 `json:"savedAt"`
	RoomID                  string                    `json:"roomId"`
	BoardID                 string                    `json:"boardId"`
	GamePhase               engine.Phase              `json:"gamePhase"`
	GameStarted             bool                      `json:"gameStarted"`
	LockedForEntry          bool                      `json:"lockedForEntry"`
	Board                   *engine.Board             `json:"boardState"`
	Players                 map[string]*engine.Player `json:"players"`
	TurnOrder               []string                  `json:"turnOrder"`
	PlayerOnTurnColor       engine.Color              `json:"playerOnTurnColor"`
	Placement               *engine.DraftState        `json:"initialPlacementState,omitempty"`
	GameEnding              bool                      `json:"gameEnding"`
	DukePlayerID            string                    `json:"dukePlayerId,omitempty"`
	FinalRoundStartPlayerID string                    `json:"finalRoundStartPlayerId,omitempty"`
}

var ErrNotFound = errors.New("save not found")

// Validate rejects snapshots the loader cannot rebuild a room from.
func (s *Snapshot) Validate() error {
	if s.Version != SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	if s.Board == nil {
		return errors.New("snapshot has no board state")
	}
	if len(s.Players) == 0 || len(s.Players) > len(engine.AllColors) {
		return fmt.Errorf("snapshot has %d players", len(s.Players))
	}
	seen := map[engine.Color]bool{}
	for id, p := range s.Players {
		if p == nil {
			return fmt.Errorf("player %q is empty", id)
		}
		if seen[p.Color] {
			return fmt.Errorf("duplicate color %s", p.Color)
		}
		seen[p.Color] = true
	}
	if len(s.TurnOrder) != len(s.Players) {
		return errors.New("turn order does not match the player set")
	}
	for _, id := range s.TurnOrder {
		if _, ok := s.Players[id]; !ok {
			return fmt.Errorf("turn order references unknown player %q", id)
		}
	}
	return nil
}

// Colors lists the snapshot's player colors in turn order; these are the
// identities a loaded room offers for claiming.
func (s *Snapshot) Colors() []engine.Color {
	out := make([]engine.Color, 0, len(s.TurnOrder))
	for _, id := range s.TurnOrder {
		out = append(out, s.Players[id].Color)
	}
	return out
}

// Info is a save-list row.
type Info struct {
	Name    string    `json:"name"`
	RoomID  string    `json:"roomId"`
	SavedAt time.Time `json:"savedAt"`
}

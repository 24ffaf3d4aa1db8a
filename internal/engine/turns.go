package engine

import "sort"

type Phase string

const (
	PhaseWaiting          Phase = "WAITING"
	PhasePlacement        Phase = "PLACEMENT"
	PhaseInitialPlacement Phase = "INITIAL_PLACEMENT"
	PhaseBattle           Phase = "BATTLE"
	PhaseEnded            Phase = "ENDED"
	// PhaseLoaded is the sub-state of a restored game: every original color
	// must be re-claimed by a connection before play resumes.
	PhaseLoaded Phase = "LOADED"
)

// TurnState holds the round-robin rotation and the one-way victory latch.
// Order is the players' join order by connection identity; a round is one
// full pass over it.
type TurnState struct {
	Order             []string `json:"order"`
	Index             int      `json:"index"`
	GameEnding        bool     `json:"gameEnding"`
	DukePlayerID      string   `json:"dukePlayerId,omitempty"`
	FinalRoundStartID string   `json:"finalRoundStartPlayerId,omitempty"`
}

// Current returns the connection identity of the player on turn.
func (t *TurnState) Current() string {
	if len(t.Order) == 0 {
		return ""
	}
	return t.Order[t.Index]
}

// Advance moves the pointer to the next registered player and reports
// whether the rotation wrapped back to the first seat, completing a round.
func (t *TurnState) Advance() (playerID string, wrapped bool) {
	if len(t.Order) == 0 {
		return "", false
	}
	t.Index = (t.Index + 1) % len(t.Order)
	return t.Order[t.Index], t.Index == 0
}

// SetCurrent points the rotation at the given player, if registered.
func (t *TurnState) SetCurrent(playerID string) {
	for i, id := range t.Order {
		if id == playerID {
			t.Index = i
			return
		}
	}
}

// Add registers a player at the end of the rotation.
func (t *TurnState) Add(playerID string) { t.Order = append(t.Order, playerID) }

// Remove drops a player from the rotation, keeping the pointer on the same
// seat where possible. Removing the player on turn hands the turn to the
// next seat.
func (t *TurnState) Remove(playerID string) {
	for i, id := range t.Order {
		if id != playerID {
			continue
		}
		t.Order = append(t.Order[:i], t.Order[i+1:]...)
		if i < t.Index {
			t.Index--
		}
		if len(t.Order) > 0 {
			t.Index %= len(t.Order)
		} else {
			t.Index = 0
		}
		return
	}
}

// Remap rewrites a connection identity in place after a reconnect.
func (t *TurnState) Remap(oldID, newID string) {
	for i, id := range t.Order {
		if id == oldID {
			t.Order[i] = newID
		}
	}
	if t.DukePlayerID == oldID {
		t.DukePlayerID = newID
	}
	if t.FinalRoundStartID == oldID {
		t.FinalRoundStartID = newID
	}
}

// LatchVictory records the presumptive duke the first time any player
// reaches the top title. The latch is one-way; later calls return false.
// Play continues until the round completes so every player gets the same
// number of turns.
func (t *TurnState) LatchVictory(playerID string) bool {
	if t.GameEnding {
		return false
	}
	t.GameEnding = true
	t.DukePlayerID = playerID
	if len(t.Order) > 0 {
		t.FinalRoundStartID = t.Order[0]
	}
	return true
}

// ShouldEnd reports whether a completed round under a set latch ends the game.
func (t *TurnState) ShouldEnd(wrapped bool) bool { return wrapped && t.GameEnding }

// ScoreEntry is one row of the end-of-game ranking.
type ScoreEntry struct {
	PlayerID    string `json:"playerId"`
	Name        string `json:"name"`
	Color       Color  `json:"color"`
	Title       Title  `json:"title"`
	Score       int    `json:"score"`
	CitiesBuilt int    `json:"citiesBuilt"`
	BattlesWon  int    `json:"battlesWon"`
}

// FinalScores ranks the players: highest title first, ties broken by cities
// built, then by battles won. The displayed score is victory points plus
// resource points; the title itself adds nothing to it.
func FinalScores(players []*Player) []ScoreEntry {
	entries := make([]ScoreEntry, 0, len(players))
	for _, p := range players {
		entries = append(entries, ScoreEntry{
			PlayerID:    p.ID,
			Name:        p.Name,
			Color:       p.Color,
			Title:       p.Title,
			Score:       p.VictoryPoints + p.TotalResources(),
			CitiesBuilt: p.CitiesBuilt(),
			BattlesWon:  p.BattlesWon,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if a, b := TitleRank(entries[i].Title), TitleRank(entries[j].Title); a != b {
			return a > b
		}
		if entries[i].CitiesBuilt != entries[j].CitiesBuilt {
			return entries[i].CitiesBuilt > entries[j].CitiesBuilt
		}
		return entries[i].BattlesWon > entries[j].BattlesWon
	})
	return entries
}

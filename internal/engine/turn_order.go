package engine

import "fmt"

// DraftTurn is one entry of the initial-placement draft: a player and how
// many cities they place before the cursor moves on.
type DraftTurn struct {
	PlayerID string `json:"playerId"`
	Cities   int    `json:"citiesToPlace"`
}

// draftSeats are the fixed, player-count-specific draft orders, as seat
// indexes into the join order. Every player places exactly 3 cities; the
// asymmetry compensates turn-order advantage (the last seat of round one
// places the most consecutively).
var draftSeats = map[int][]struct{ Seat, Cities int }{
	1: {{0, 3}},
	2: {{0, 1}, {1, 2}, {0, 2}, {1, 1}},
	3: {{0, 1}, {1, 1}, {2, 2}, {0, 2}, {1, 2}, {2, 1}},
	4: {{0, 1}, {1, 1}, {2, 1}, {3, 3}, {2, 2}, {1, 2}, {0, 2}},
}

// DraftState is the placement draft: an ordered turn sequence plus a cursor.
type DraftState struct {
	Sequence []DraftTurn `json:"sequence"`
	Index    int         `json:"index"`
	Placed   int         `json:"placed"`
}

// NewDraft builds the draft sequence for the given players in join order.
// Player counts outside 1–4 are rejected.
func NewDraft(playerIDs []string) (*DraftState, error) {
	seats, ok := draftSeats[len(playerIDs)]
	if !ok {
		return nil, fmt.Errorf("placement draft supports 1-4 players, got %d", len(playerIDs))
	}
	seq := make([]DraftTurn, len(seats))
	for i, s := range seats {
		seq[i] = DraftTurn{PlayerID: playerIDs[s.Seat], Cities: s.Cities}
	}
	return &DraftState{Sequence: seq}, nil
}

// Current returns the draft turn under the cursor.
func (d *DraftState) Current() DraftTurn { return d.Sequence[d.Index] }

// Done reports whether the whole sequence has been consumed.
func (d *DraftState) Done() bool { return d.Index >= len(d.Sequence) }

// AdvanceResult describes what happened to the cursor after a placement.
type AdvanceResult struct {
	Completed   bool
	TurnChanged bool
	PlayerID    string
	Remaining   int
}

// Advance records one placed city. When the current turn's quota is met the
// cursor moves to the next entry (or completes the draft); otherwise the
// same player continues with the remaining count.
func (d *DraftState) Advance() AdvanceResult {
	d.Placed++
	cur := d.Current()
	if d.Placed < cur.Cities {
		return AdvanceResult{PlayerID: cur.PlayerID, Remaining: cur.Cities - d.Placed}
	}
	d.Index++
	d.Placed = 0
	if d.Done() {
		return AdvanceResult{Completed: true}
	}
	next := d.Current()
	return AdvanceResult{TurnChanged: true, PlayerID: next.PlayerID, Remaining: next.Cities}
}

// RemapPlayer rewrites draft entries from an old connection identity to a
// new one after a reconnect.
func (d *DraftState) RemapPlayer(oldID, newID string) {
	for i := range d.Sequence {
		if d.Sequence[i].PlayerID == oldID {
			d.Sequence[i].PlayerID = newID
		}
	}
}

// ValidateCityPlacement checks a draft placement without mutating anything.
func ValidateCityPlacement(b *Board, p *Player, row, col int) *RuleError {
	if p.Reserve[PieceCity] == 0 || p.Reserve[PieceKnight] == 0 {
		return ruleErr(CodeNoPieces, "no city or knight left in reserve")
	}
	h := b.At(row, col)
	if h == nil || !h.Textured() {
		return ruleErr(CodeInvalidHex, "hex is outside the board or has no terrain")
	}
	if len(h.Pieces) > 0 {
		return ruleErr(CodeHexOccupied, "hex already holds pieces")
	}
	if h.Terrain != TerrainPlain && h.Terrain != TerrainFarm {
		return ruleErr(CodeInvalidTerrain, "cities can only be founded on plains or farmland")
	}
	if b.AdjacentToCity(row, col) {
		return ruleErr(CodeAdjacentToCity, "too close to an existing city")
	}
	return nil
}

// PlaceCity places a city and a garrison knight on the hex and pays both out
// of the reserve. Validation failures leave board and player untouched.
func PlaceCity(b *Board, p *Player, row, col int) *RuleError {
	if err := ValidateCityPlacement(b, p, row, col); err != nil {
		return err
	}
	h := b.At(row, col)
	h.Pieces = append(h.Pieces,
		Piece{Type: PieceCity, Color: p.Color, Owner: p.ID},
		Piece{Type: PieceKnight, Color: p.Color, Owner: p.ID},
	)
	p.Reserve[PieceCity]--
	p.Reserve[PieceKnight]--
	return nil
}

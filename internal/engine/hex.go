package engine

// Terrain of a board cell. The zero value means the cell never received a
// texture tile during distribution and is not part of the playable region.
type Terrain string

const (
	TerrainNone     Terrain = ""
	TerrainWater    Terrain = "water"
	TerrainFarm     Terrain = "farm"
	TerrainMountain Terrain = "mountain"
	TerrainPlain    Terrain = "plain"
	TerrainForest   Terrain = "forest"
)

type PieceType string

const (
	PieceCity       PieceType = "city"
	PieceStronghold PieceType = "stronghold"
	PieceKnight     PieceType = "knight"
	PieceVillage    PieceType = "village"
)

// IsStructure reports whether the type occupies the hex's single structure slot.
func (t PieceType) IsStructure() bool {
	return t == PieceCity || t == PieceStronghold || t == PieceVillage
}

type Color string

const (
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
)

// AllColors is the fixed palette; a room never holds more players than colors.
var AllColors = []Color{ColorRed, ColorBlue, ColorGreen, ColorYellow}

// Piece on the board. Owner is the connection identity of the owning player
// and is remapped on reconnect; Color is the durable identity.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
	Owner string    `json:"owner"`
}

// Hex is one cell: a terrain plus at most two pieces, of which at most one
// is a structure. Knights recruited at a city garrison beyond the cap, see
// Recruit.
type Hex struct {
	Terrain Terrain `json:"terrain,omitempty"`
	Pieces  []Piece `json:"pieces,omitempty"`
}

// Textured reports whether the cell is part of the playable region.
func (h *Hex) Textured() bool { return h.Terrain != TerrainNone }

// Structure returns the structure on the hex, if any.
func (h *Hex) Structure() *Piece {
	for i := range h.Pieces {
		if h.Pieces[i].Type.IsStructure() {
			return &h.Pieces[i]
		}
	}
	return nil
}

// KnightCount counts knights on the hex owned by the given player.
func (h *Hex) KnightCount(owner string) int {
	n := 0
	for _, p := range h.Pieces {
		if p.Type == PieceKnight && p.Owner == owner {
			n++
		}
	}
	return n
}

// EnemyPieces returns the pieces on the hex not belonging to the given color.
func (h *Hex) EnemyPieces(c Color) []Piece {
	var out []Piece
	for _, p := range h.Pieces {
		if p.Color != c {
			out = append(out, p)
		}
	}
	return out
}

func (h *Hex) hasEnemy(c Color, t PieceType) bool {
	for _, p := range h.Pieces {
		if p.Color != c && p.Type == t {
			return true
		}
	}
	return false
}

func (h *Hex) enemyKnights(c Color) int {
	n := 0
	for _, p := range h.Pieces {
		if p.Color != c && p.Type == PieceKnight {
			n++
		}
	}
	return n
}

// removeFirst removes the first piece matching the predicate and reports
// whether one was removed.
func (h *Hex) removeFirst(match func(Piece) bool) (Piece, bool) {
	for i, p := range h.Pieces {
		if match(p) {
			h.Pieces = append(h.Pieces[:i], h.Pieces[i+1:]...)
			return p, true
		}
	}
	return Piece{}, false
}

// Coord addresses a cell as row/col with row-parity hex adjacency.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

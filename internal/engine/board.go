package engine

// Board is the fixed 15×15 grid. It is created empty and textured once by
// DistributeTiles; pieces are written by the placement draft and the battle
// actions.
type Board struct {
	Cells [BoardSize][BoardSize]Hex `json:"cells"`
}

func NewBoard() *Board { return &Board{} }

// At returns the hex at row/col, or nil when out of bounds.
func (b *Board) At(row, col int) *Hex {
	if !InBounds(row, col) {
		return nil
	}
	return &b.Cells[row][col]
}

// Textured reports whether the cell exists and carries a terrain tile.
func (b *Board) Textured(row, col int) bool {
	h := b.At(row, col)
	return h != nil && h.Textured()
}

// IsBorder reports whether the cell sits on the edge of the placed region:
// at least one of its six directions leaves the board or hits an untextured
// cell.
func (b *Board) IsBorder(row, col int) bool {
	if !b.Textured(row, col) {
		return false
	}
	for _, d := range NeighborOffsets(row) {
		r, c := row+d.Row, col+d.Col
		if !InBounds(r, c) || !b.Cells[r][c].Textured() {
			return true
		}
	}
	return false
}

// AdjacentToWater reports whether any neighbor is a water cell.
func (b *Board) AdjacentToWater(row, col int) bool {
	for _, n := range Neighbors(row, col) {
		if b.Cells[n.Row][n.Col].Terrain == TerrainWater {
			return true
		}
	}
	return false
}

// AdjacentToCity reports whether any neighbor holds a city of any color.
func (b *Board) AdjacentToCity(row, col int) bool {
	for _, n := range Neighbors(row, col) {
		for _, p := range b.Cells[n.Row][n.Col].Pieces {
			if p.Type == PieceCity {
				return true
			}
		}
	}
	return false
}

// AdjacentToTexture reports whether any neighbor carries a terrain tile.
func (b *Board) AdjacentToTexture(row, col int) bool {
	for _, n := range Neighbors(row, col) {
		if b.Cells[n.Row][n.Col].Textured() {
			return true
		}
	}
	return false
}

// RemapOwner rewrites every piece owned by oldID to newID. Used when a
// reconnecting player claims their color under a new connection identity.
func (b *Board) RemapOwner(oldID, newID string) {
	for r := range b.Cells {
		for c := range b.Cells[r] {
			for i := range b.Cells[r][c].Pieces {
				if b.Cells[r][c].Pieces[i].Owner == oldID {
					b.Cells[r][c].Pieces[i].Owner = newID
				}
			}
		}
	}
}

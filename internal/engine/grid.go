package engine

// BoardSize is the fixed edge length of the square hex grid.
const BoardSize = 15

// Neighbor offsets depend on row parity (odd-r offset layout).
var (
	evenRowOffsets = [6]Coord{{-1, -1}, {-1, 0}, {0, -1}, {0, 1}, {1, -1}, {1, 0}}
	oddRowOffsets  = [6]Coord{{-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, 0}, {1, 1}}
)

func InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// NeighborOffsets returns the six direction offsets for the given row's parity.
func NeighborOffsets(row int) [6]Coord {
	if row%2 == 0 {
		return evenRowOffsets
	}
	return oddRowOffsets
}

// Neighbors returns the in-bounds neighbors of a cell. Out-of-bounds input
// yields an empty slice rather than an error.
func Neighbors(row, col int) []Coord {
	if !InBounds(row, col) {
		return nil
	}
	out := make([]Coord, 0, 6)
	for _, d := range NeighborOffsets(row) {
		r, c := row+d.Row, col+d.Col
		if InBounds(r, c) {
			out = append(out, Coord{r, c})
		}
	}
	return out
}

// Adjacent reports whether b is one of a's six neighbors.
func Adjacent(a, b Coord) bool {
	for _, d := range NeighborOffsets(a.Row) {
		if a.Row+d.Row == b.Row && a.Col+d.Col == b.Col {
			return true
		}
	}
	return false
}

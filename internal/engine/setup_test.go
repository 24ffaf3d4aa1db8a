package engine

import (
	"math/rand"
	"testing"
)

func TestDistributeTilesPlacesEveryTile(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4} {
		players := make([]*Player, n)
		for i := range players {
			players[i] = NewPlayer(string(rune('a'+i)), "p", AllColors[i])
		}
		want := 27 * n

		b := NewBoard()
		placed := DistributeTiles(b, players, rand.New(rand.NewSource(42)))
		if placed != want {
			t.Fatalf("%d players: want %d tiles placed, got %d", n, want, placed)
		}

		count := 0
		for r := 0; r < BoardSize; r++ {
			for c := 0; c < BoardSize; c++ {
				if b.Cells[r][c].Textured() {
					count++
				}
			}
		}
		if count != want {
			t.Fatalf("%d players: want %d textured cells, got %d", n, want, count)
		}

		for _, p := range players {
			if p.TileCount() != 0 {
				t.Fatalf("tile reserve not zeroed after distribution")
			}
		}
	}
}

func TestDistributeTilesRegionIsConnected(t *testing.T) {
	players := []*Player{
		NewPlayer("a", "a", ColorRed),
		NewPlayer("b", "b", ColorBlue),
		NewPlayer("c", "c", ColorGreen),
		NewPlayer("d", "d", ColorYellow),
	}
	b := NewBoard()
	placed := DistributeTiles(b, players, rand.New(rand.NewSource(7)))

	center := Coord{BoardSize / 2, BoardSize / 2}
	if !b.Textured(center.Row, center.Col) {
		t.Fatalf("the center cell must carry the first tile")
	}

	// Flood fill from the center through textured cells.
	seen := map[Coord]bool{center: true}
	queue := []Coord{center}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range Neighbors(cur.Row, cur.Col) {
			if seen[n] || !b.Cells[n.Row][n.Col].Textured() {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	if len(seen) != placed {
		t.Fatalf("placed region not connected: reached %d of %d cells", len(seen), placed)
	}
}

func TestDistributeTilesPreservesTerrainTotals(t *testing.T) {
	players := []*Player{
		NewPlayer("a", "a", ColorRed),
		NewPlayer("b", "b", ColorBlue),
	}
	b := NewBoard()
	DistributeTiles(b, players, rand.New(rand.NewSource(13)))

	got := map[Terrain]int{}
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if tr := b.Cells[r][c].Terrain; tr != TerrainNone {
				got[tr]++
			}
		}
	}
	for terrain, perPlayer := range InitialTiles {
		if got[terrain] != perPlayer*2 {
			t.Fatalf("terrain %s: want %d tiles, got %d", terrain, perPlayer*2, got[terrain])
		}
	}
}

func TestDistributeTilesEmptyPool(t *testing.T) {
	b := NewBoard()
	if placed := DistributeTiles(b, nil, rand.New(rand.NewSource(1))); placed != 0 {
		t.Fatalf("no players means no tiles, got %d", placed)
	}
}

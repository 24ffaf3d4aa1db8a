package engine

import "math/rand"

// DistributeTiles pools every player's texture tiles, shuffles them and grows
// the board organically from the geometric center: breadth-first expansion,
// shuffling the direction order at every dequeued cell so the region stays
// connected but irregular. All tile reserves are zeroed afterwards; texture
// ownership stops meaning anything once the tiles are on the board.
// Returns the number of tiles placed.
func DistributeTiles(b *Board, players []*Player, rng *rand.Rand) int {
	var tiles []Terrain
	for _, p := range players {
		for t, n := range p.Tiles {
			for i := 0; i < n; i++ {
				tiles = append(tiles, t)
			}
		}
	}
	rng.Shuffle(len(tiles), func(i, j int) { tiles[i], tiles[j] = tiles[j], tiles[i] })

	placed := 0
	if len(tiles) == 0 {
		return 0
	}

	center := Coord{BoardSize / 2, BoardSize / 2}
	b.Cells[center.Row][center.Col].Terrain = tiles[placed]
	placed++

	queue := []Coord{center}
	for len(queue) > 0 && placed < len(tiles) {
		cur := queue[0]
		queue = queue[1:]

		dirs := NeighborOffsets(cur.Row)
		order := rng.Perm(len(dirs))
		for _, i := range order {
			r, c := cur.Row+dirs[i].Row, cur.Col+dirs[i].Col
			if !InBounds(r, c) || b.Cells[r][c].Textured() {
				continue
			}
			b.Cells[r][c].Terrain = tiles[placed]
			placed++
			queue = append(queue, Coord{r, c})
			if placed == len(tiles) {
				break
			}
		}
	}

	for _, p := range players {
		for t := range p.Tiles {
			p.Tiles[t] = 0
		}
	}
	return placed
}

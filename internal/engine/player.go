package engine

// Resource token types. Farms yield field tokens; water yields nothing.
type Resource string

const (
	ResourceNone     Resource = ""
	ResourceField    Resource = "field"
	ResourceForest   Resource = "forest"
	ResourceMountain Resource = "mountain"
	ResourcePlain    Resource = "plain"
)

// ResourceValues is the fixed point value of one token of each type.
var ResourceValues = map[Resource]int{
	ResourceField:    5,
	ResourcePlain:    4,
	ResourceForest:   3,
	ResourceMountain: 2,
}

// resourcesByValue lists token types from most to least valuable.
var resourcesByValue = []Resource{ResourceField, ResourcePlain, ResourceForest, ResourceMountain}

type Title string

const (
	TitleBaron    Title = "baron"
	TitleViscount Title = "viscount"
	TitleCount    Title = "count"
	TitleMarquis  Title = "marquis"
	TitleDuke     Title = "duke"
)

// TitleOrder is the promotion ladder; TitleDuke ends the game.
var TitleOrder = []Title{TitleBaron, TitleViscount, TitleCount, TitleMarquis, TitleDuke}

// TitleRank returns the 0-based rank of a title, -1 for an unknown one.
func TitleRank(t Title) int {
	for i, v := range TitleOrder {
		if v == t {
			return i
		}
	}
	return -1
}

// NobleTitleCost is the resource-point price of one promotion.
const NobleTitleCost = 15

// Initial reserve pools per player.
var InitialReserve = map[PieceType]int{
	PieceCity:       5,
	PieceStronghold: 2,
	PieceKnight:     7,
	PieceVillage:    14,
}

// Initial texture tiles per player, pooled during board distribution.
var InitialTiles = map[Terrain]int{
	TerrainWater:    4,
	TerrainFarm:     6,
	TerrainMountain: 5,
	TerrainPlain:    6,
	TerrainForest:   6,
}

// Player is the per-player mutable record. ID is the transient connection
// identity (remapped on reconnect); Color is durable within the room.
type Player struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Color         Color             `json:"color"`
	Reserve       map[PieceType]int `json:"reserve"`
	Tiles         map[Terrain]int   `json:"tiles"`
	Resources     map[Resource]int  `json:"resources"`
	Title         Title             `json:"title"`
	VictoryPoints int               `json:"victoryPoints"`
	BattlesWon    int               `json:"battlesWon"`
}

func NewPlayer(id, name string, color Color) *Player {
	p := &Player{
		ID:        id,
		Name:      name,
		Color:     color,
		Reserve:   make(map[PieceType]int, len(InitialReserve)),
		Tiles:     make(map[Terrain]int, len(InitialTiles)),
		Resources: make(map[Resource]int, len(ResourceValues)),
		Title:     TitleBaron,
	}
	for t, n := range InitialReserve {
		p.Reserve[t] = n
	}
	for t, n := range InitialTiles {
		p.Tiles[t] = n
	}
	return p
}

// ResourceForTerrain maps a terrain to the token it yields. Water and
// untextured cells yield none.
func ResourceForTerrain(t Terrain) Resource {
	switch t {
	case TerrainFarm:
		return ResourceField
	case TerrainForest:
		return ResourceForest
	case TerrainMountain:
		return ResourceMountain
	case TerrainPlain:
		return ResourcePlain
	default:
		return ResourceNone
	}
}

// AddResource grants one token for the given terrain and returns the token
// type, or ResourceNone when the terrain yields nothing.
func (p *Player) AddResource(t Terrain) Resource {
	r := ResourceForTerrain(t)
	if r != ResourceNone {
		p.Resources[r]++
	}
	return r
}

// TotalResources is the point value of all held tokens.
func (p *Player) TotalResources() int {
	total := 0
	for r, n := range p.Resources {
		total += ResourceValues[r] * n
	}
	return total
}

// SpendResources removes tokens totaling at least cost, preferring an exact
// hit: greedy by descending value, then trying to swap the trailing token
// for a single cheaper token, or a pair of them, that lands on cost exactly.
// Returns false without mutating when the player cannot cover the cost.
func (p *Player) SpendResources(cost int) bool {
	if cost <= 0 {
		return true
	}
	if p.TotalResources() < cost {
		return false
	}

	avail := make(map[Resource]int, len(p.Resources))
	for r, n := range p.Resources {
		avail[r] = n
	}
	spend := make(map[Resource]int)
	sum := 0
	var last Resource
	for sum < cost {
		for _, r := range resourcesByValue {
			if avail[r] > 0 {
				avail[r]--
				spend[r]++
				sum += ResourceValues[r]
				last = r
				break
			}
		}
	}

	if over := sum - cost; over > 0 {
		need := ResourceValues[last] - over
		// Put the trailing token back and look for an exact replacement.
		avail[last]++
		spend[last]--
		if r, ok := singleWorth(avail, need); ok {
			spend[r]++
		} else if r1, r2, ok := pairWorth(avail, need); ok {
			spend[r1]++
			spend[r2]++
		} else {
			// No exact hit; keep the overspend.
			avail[last]--
			spend[last]++
		}
	}

	for r, n := range spend {
		p.Resources[r] -= n
	}
	return true
}

// singleWorth finds an available token of exactly the given value.
func singleWorth(avail map[Resource]int, value int) (Resource, bool) {
	for _, r := range resourcesByValue {
		if avail[r] > 0 && ResourceValues[r] == value {
			return r, true
		}
	}
	return ResourceNone, false
}

// pairWorth finds two available tokens whose values sum to exactly value.
func pairWorth(avail map[Resource]int, value int) (Resource, Resource, bool) {
	for i, r1 := range resourcesByValue {
		if avail[r1] == 0 {
			continue
		}
		for _, r2 := range resourcesByValue[i:] {
			if r1 == r2 && avail[r2] < 2 {
				continue
			}
			if avail[r2] == 0 {
				continue
			}
			if ResourceValues[r1]+ResourceValues[r2] == value {
				return r1, r2, true
			}
		}
	}
	return ResourceNone, ResourceNone, false
}

// PromoteTitle advances exactly one rank; no-op at the top of the ladder.
func (p *Player) PromoteTitle() bool {
	rank := TitleRank(p.Title)
	if rank < 0 || rank >= len(TitleOrder)-1 {
		return false
	}
	p.Title = TitleOrder[rank+1]
	return true
}

// CitiesBuilt derives how many cities the player has placed from the reserve.
func (p *Player) CitiesBuilt() int {
	return InitialReserve[PieceCity] - p.Reserve[PieceCity]
}

// TileCount is the number of texture tiles still pooled for distribution.
func (p *Player) TileCount() int {
	n := 0
	for _, c := range p.Tiles {
		n += c
	}
	return n
}

package engine

import "fmt"

// The six battle-phase actions. Each validates fully before touching the
// board or any player; a failed action returns Success=false and leaves no
// partial state behind.
type ActionResult struct {
	Success        bool          `json:"success"`
	Code           string        `json:"code,omitempty"`
	Message        string        `json:"message"`
	ResourceGained Resource      `json:"resourceGained,omitempty"`
	KnightsPlaced  int           `json:"knightsPlaced,omitempty"`
	Combat         *CombatReport `json:"combat,omitempty"`
	CheckVictory   bool          `json:"-"`
}

type CombatReport struct {
	DestroyedType  PieceType `json:"destroyedType"`
	DefenderColor  Color     `json:"defenderColor"`
	ResourceStolen Resource  `json:"resourceStolen,omitempty"`
}

func failure(code, msg string) ActionResult {
	return ActionResult{Code: code, Message: msg}
}

// MoveTracker counts, per hex, the player's knights that already moved this
// turn and now stand there. A move out of a hex is only legal while the hex
// holds more of the player's knights than moved ones, which gives every
// knight exactly one move per turn without tracking knight identity.
// Cleared on every turn change.
type MoveTracker map[Coord]int

const (
	recruitCap     = 2
	recruitCapLake = 3
	maxHexPieces   = 2
)

// Recruit places new knights from the reserve onto one of the player's
// cities. The cap is 2 knights, or 3 when the city touches water; a larger
// request clamps to the cap.
func Recruit(b *Board, p *Player, row, col, count int) ActionResult {
	h := b.At(row, col)
	if h == nil || !h.Textured() {
		return failure(CodeInvalidHex, "hex is outside the board or has no terrain")
	}
	city := h.Structure()
	if city == nil || city.Type != PieceCity || city.Owner != p.ID {
		return failure(CodeInvalidHex, "you can only recruit at your own city")
	}
	if count < 1 {
		return failure(CodeInvalidArgument, "recruit at least one knight")
	}
	limit, lake := recruitCap, b.AdjacentToWater(row, col)
	if lake {
		limit = recruitCapLake
	}
	if count > limit {
		count = limit
	}
	if p.Reserve[PieceKnight] < count {
		return failure(CodeNoPieces, "not enough knights in reserve")
	}
	for i := 0; i < count; i++ {
		h.Pieces = append(h.Pieces, Piece{Type: PieceKnight, Color: p.Color, Owner: p.ID})
	}
	p.Reserve[PieceKnight] -= count
	msg := fmt.Sprintf("recruited %d knights", count)
	if lake {
		msg += " (lake bonus)"
	}
	return ActionResult{Success: true, Message: msg, KnightsPlaced: count}
}

// Move relocates exactly one of the player's knights to an adjacent hex,
// resolving combat when the move brings a second friendly knight onto enemy
// pieces. players must be keyed by connection identity so combat can return
// destroyed pieces to their owner's reserve.
func Move(b *Board, players map[string]*Player, p *Player, from, to Coord, moved MoveTracker) ActionResult {
	src := b.At(from.Row, from.Col)
	dst := b.At(to.Row, to.Col)
	if src == nil || dst == nil {
		return failure(CodeInvalidHex, "hex is outside the board")
	}
	if !Adjacent(from, to) {
		return failure(CodeInvalidMove, "knights move one hex at a time")
	}
	if src.KnightCount(p.ID) == 0 {
		return failure(CodeNoPieces, "no knight of yours on the source hex")
	}
	if src.KnightCount(p.ID) <= moved[from] {
		return failure(CodeInvalidMove, "every knight on that hex has already moved this turn")
	}
	if !dst.Textured() || dst.Terrain == TerrainWater {
		return failure(CodeInvalidTerrain, "knights cannot enter water or empty hexes")
	}
	if dst.hasEnemy(p.Color, PieceCity) || dst.hasEnemy(p.Color, PieceStronghold) {
		return failure(CodeInvalidMove, "an enemy city or stronghold guards that hex")
	}
	if dst.enemyKnights(p.Color) >= 2 {
		return failure(CodeInvalidMove, "blocked by 2+ enemy knights")
	}
	if dst.Terrain == TerrainMountain && len(dst.EnemyPieces(p.Color)) > 0 {
		return failure(CodeInvalidMove, "mountains cannot be attacked while occupied")
	}

	attackers := dst.KnightCount(p.ID) + 1
	enemies := len(dst.EnemyPieces(p.Color))
	projected := len(dst.Pieces) + 1
	if attackers >= 2 && enemies > 0 {
		projected-- // combat destroys exactly one enemy piece
	}
	if projected > maxHexPieces {
		return failure(CodeHexOccupied, "the hex cannot hold more than 2 pieces")
	}

	knight, _ := src.removeFirst(func(pc Piece) bool {
		return pc.Type == PieceKnight && pc.Owner == p.ID
	})
	dst.Pieces = append(dst.Pieces, knight)
	moved[to]++

	res := ActionResult{Success: true, Message: "knight moved"}
	if attackers >= 2 && enemies > 0 {
		res.Combat = resolveCombat(players, p, dst)
		res.Message = "knight moved, battle won"
	}
	return res
}

// resolveCombat destroys exactly one enemy piece on the hex. A defending
// knight shields any village: it dies instead. A destroyed village returns
// to its owner's reserve and the attacker steals the defender's single most
// valuable resource token, when one exists.
func resolveCombat(players map[string]*Player, attacker *Player, h *Hex) *CombatReport {
	if pc, ok := h.removeFirst(func(pc Piece) bool {
		return pc.Color != attacker.Color && pc.Type == PieceKnight
	}); ok {
		if owner := players[pc.Owner]; owner != nil {
			owner.Reserve[PieceKnight]++
		}
		attacker.BattlesWon++
		return &CombatReport{DestroyedType: PieceKnight, DefenderColor: pc.Color}
	}

	pc, ok := h.removeFirst(func(pc Piece) bool {
		return pc.Color != attacker.Color && pc.Type == PieceVillage
	})
	if !ok {
		return nil
	}
	report := &CombatReport{DestroyedType: PieceVillage, DefenderColor: pc.Color}
	if owner := players[pc.Owner]; owner != nil {
		owner.Reserve[PieceVillage]++
		if stolen := stealBestResource(owner, attacker); stolen != ResourceNone {
			report.ResourceStolen = stolen
		}
	}
	attacker.BattlesWon++
	return report
}

func stealBestResource(from, to *Player) Resource {
	for _, r := range resourcesByValue {
		if from.Resources[r] > 0 {
			from.Resources[r]--
			to.Resources[r]++
			return r
		}
	}
	return ResourceNone
}

// Build swaps one of the player's knights for a village or stronghold from
// the reserve and grants one resource token matching the terrain.
func Build(b *Board, p *Player, row, col int, structure PieceType) ActionResult {
	if structure != PieceVillage && structure != PieceStronghold {
		return failure(CodeInvalidArgument, "you can only build villages and strongholds")
	}
	h := b.At(row, col)
	if h == nil || !h.Textured() {
		return failure(CodeInvalidHex, "hex is outside the board or has no terrain")
	}
	if h.KnightCount(p.ID) == 0 {
		return failure(CodeNoPieces, "a knight of yours must stand on the hex")
	}
	if h.Structure() != nil {
		return failure(CodeHexOccupied, "the hex already holds a structure")
	}
	if h.enemyKnights(p.Color) > 0 {
		return failure(CodeInvalidMove, "enemy knights contest the hex")
	}
	if p.Reserve[structure] == 0 {
		return failure(CodeNoPieces, fmt.Sprintf("no %s left in reserve", structure))
	}
	if structure == PieceStronghold && h.Terrain == TerrainWater {
		return failure(CodeInvalidTerrain, "strongholds cannot be built on water")
	}

	h.removeFirst(func(pc Piece) bool {
		return pc.Type == PieceKnight && pc.Owner == p.ID
	})
	p.Reserve[PieceKnight]++
	h.Pieces = append(h.Pieces, Piece{Type: structure, Color: p.Color, Owner: p.ID})
	p.Reserve[structure]--
	gained := p.AddResource(h.Terrain)
	return ActionResult{
		Success:        true,
		Message:        fmt.Sprintf("%s built", structure),
		ResourceGained: gained,
	}
}

// FoundCity upgrades one of the player's villages into a city for 10
// victory points.
func FoundCity(b *Board, p *Player, row, col int) ActionResult {
	h := b.At(row, col)
	if h == nil || !h.Textured() {
		return failure(CodeInvalidHex, "hex is outside the board or has no terrain")
	}
	s := h.Structure()
	if s == nil || s.Type != PieceVillage || s.Owner != p.ID {
		return failure(CodeNoPieces, "one of your villages must stand on the hex")
	}
	if h.Terrain == TerrainForest {
		return failure(CodeInvalidTerrain, "cities cannot be founded in forests")
	}
	if b.AdjacentToCity(row, col) {
		return failure(CodeAdjacentToCity, "too close to an existing city")
	}
	if p.Reserve[PieceCity] == 0 {
		return failure(CodeNoPieces, "no city left in reserve")
	}

	h.removeFirst(func(pc Piece) bool {
		return pc.Type == PieceVillage && pc.Owner == p.ID
	})
	p.Reserve[PieceVillage]++
	h.Pieces = append(h.Pieces, Piece{Type: PieceCity, Color: p.Color, Owner: p.ID})
	p.Reserve[PieceCity]--
	p.VictoryPoints += 10
	return ActionResult{Success: true, Message: "city founded", CheckVictory: true}
}

// Expedition spends two reserve knights to land a single knight on an empty
// border hex. The second knight is the cost of the journey and leaves play.
func Expedition(b *Board, p *Player, row, col int) ActionResult {
	if p.Reserve[PieceKnight] < 2 {
		return failure(CodeNoPieces, "an expedition needs 2 knights in reserve")
	}
	h := b.At(row, col)
	if h == nil || !h.Textured() || h.Terrain == TerrainWater {
		return failure(CodeInvalidHex, "expeditions land on dry textured hexes")
	}
	if len(h.Pieces) > 0 {
		return failure(CodeHexOccupied, "the hex is already occupied")
	}
	if !b.IsBorder(row, col) {
		return failure(CodeNotBorder, "expeditions can only reach border hexes")
	}

	p.Reserve[PieceKnight] -= 2
	h.Pieces = append(h.Pieces, Piece{Type: PieceKnight, Color: p.Color, Owner: p.ID})
	return ActionResult{Success: true, Message: "expedition landed", KnightsPlaced: 1}
}

// NobleTitle spends 15 resource points to climb one rank of the ladder.
func NobleTitle(p *Player) ActionResult {
	if p.Title == TitleDuke {
		return failure(CodeMaxTitle, "already at the highest title")
	}
	if !p.SpendResources(NobleTitleCost) {
		return failure(CodeNoResources, "Insufficient resources for a new title")
	}
	p.PromoteTitle()
	return ActionResult{
		Success:      true,
		Message:      fmt.Sprintf("promoted to %s", p.Title),
		CheckVictory: p.Title == TitleDuke,
	}
}

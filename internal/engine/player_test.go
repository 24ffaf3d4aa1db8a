package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayerSeedsPools(t *testing.T) {
	p := NewPlayer("p1", "Anna", ColorRed)
	assert.Equal(t, 5, p.Reserve[PieceCity])
	assert.Equal(t, 2, p.Reserve[PieceStronghold])
	assert.Equal(t, 7, p.Reserve[PieceKnight])
	assert.Equal(t, 14, p.Reserve[PieceVillage])
	assert.Equal(t, 27, p.TileCount())
	assert.Equal(t, TitleBaron, p.Title)
	assert.Zero(t, p.TotalResources())
}

func TestAddResourceMapsTerrain(t *testing.T) {
	cases := []struct {
		terrain Terrain
		want    Resource
	}{
		{TerrainFarm, ResourceField},
		{TerrainForest, ResourceForest},
		{TerrainMountain, ResourceMountain},
		{TerrainPlain, ResourcePlain},
		{TerrainWater, ResourceNone},
		{TerrainNone, ResourceNone},
	}
	for _, tc := range cases {
		p := NewPlayer("p1", "Anna", ColorRed)
		got := p.AddResource(tc.terrain)
		assert.Equal(t, tc.want, got, "terrain %q", tc.terrain)
		if tc.want == ResourceNone {
			assert.Zero(t, p.TotalResources())
		} else {
			assert.Equal(t, ResourceValues[tc.want], p.TotalResources())
		}
	}
}

func TestTotalResources(t *testing.T) {
	p := NewPlayer("p1", "Anna", ColorRed)
	p.Resources[ResourceField] = 2   // 10
	p.Resources[ResourcePlain] = 1   // 4
	p.Resources[ResourceForest] = 3  // 9
	p.Resources[ResourceMountain] = 1 // 2
	assert.Equal(t, 25, p.TotalResources())
}

func TestSpendResources(t *testing.T) {
	cases := []struct {
		name      string
		resources map[Resource]int
		cost      int
		ok        bool
		wantLeft  int
	}{
		{
			name:      "exact greedy hit",
			resources: map[Resource]int{ResourceField: 3},
			cost:      15,
			ok:        true,
			wantLeft:  0,
		},
		{
			name:      "trailing token substituted for an exact hit",
			resources: map[Resource]int{ResourceField: 2, ResourcePlain: 1, ResourceForest: 1},
			cost:      13,
			ok:        true,
			wantLeft:  4, // 5+5+3 instead of 5+5+4
		},
		{
			name:      "pair of small tokens replaces the trailing one",
			resources: map[Resource]int{ResourceField: 3, ResourceMountain: 2},
			cost:      14,
			ok:        true,
			wantLeft:  5, // 5+5+2+2 instead of 5+5+5
		},
		{
			name:      "minimal overspend when no exact hit exists",
			resources: map[Resource]int{ResourceField: 2, ResourcePlain: 1, ResourceMountain: 1},
			cost:      15,
			ok:        true,
			wantLeft:  0, // 16 points held, all spent
		},
		{
			name:      "insufficient total",
			resources: map[Resource]int{ResourceField: 2, ResourcePlain: 1},
			cost:      15,
			ok:        false,
			wantLeft:  14,
		},
		{
			name:      "zero cost is free",
			resources: map[Resource]int{ResourceForest: 1},
			cost:      0,
			ok:        true,
			wantLeft:  3,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPlayer("p1", "Anna", ColorRed)
			for r, n := range tc.resources {
				p.Resources[r] = n
			}
			ok := p.SpendResources(tc.cost)
			require.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.wantLeft, p.TotalResources())
			assert.GreaterOrEqual(t, p.TotalResources(), 0)
		})
	}
}

func TestPromoteTitleLadder(t *testing.T) {
	p := NewPlayer("p1", "Anna", ColorRed)
	want := []Title{TitleViscount, TitleCount, TitleMarquis, TitleDuke}
	for _, w := range want {
		require.True(t, p.PromoteTitle())
		assert.Equal(t, w, p.Title)
	}
	assert.False(t, p.PromoteTitle(), "a duke has nowhere left to climb")
	assert.Equal(t, TitleDuke, p.Title)
}

func TestCitiesBuilt(t *testing.T) {
	p := NewPlayer("p1", "Anna", ColorRed)
	assert.Zero(t, p.CitiesBuilt())
	p.Reserve[PieceCity] = 2
	assert.Equal(t, 3, p.CitiesBuilt())
}

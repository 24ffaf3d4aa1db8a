package save

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hexfief/internal/engine"
)

func testSnapshot(roomID string) *Snapshot {
	b := engine.NewBoard()
	b.Cells[7][7].Terrain = engine.TerrainPlain
	p1 := engine.NewPlayer("c1", "Anna", engine.ColorRed)
	p2 := engine.NewPlayer("c2", "Bela", engine.ColorBlue)
	return &Snapshot{
		Version:           SnapshotVersion,
		SavedAt:           time.Now().UTC().Truncate(time.Second),
		RoomID:            roomID,
		BoardID:           "board-1",
		GamePhase:         engine.PhaseBattle,
		GameStarted:       true,
		LockedForEntry:    true,
		Board:             b,
		Players:           map[string]*engine.Player{"c1": p1, "c2": p2},
		TurnOrder:         []string{"c1", "c2"},
		PlayerOnTurnColor: engine.ColorRed,
	}
}

func testStores(t *testing.T) map[string]Store {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return map[string]Store{
		"file":  NewFileStore(t.TempDir()),
		"redis": NewRedisStore(rdb),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			snap := testSnapshot("R1")
			require.NoError(t, store.Save(ctx, "evening-game", snap))

			loaded, err := store.Load(ctx, "evening-game")
			require.NoError(t, err)
			assert.Equal(t, snap.RoomID, loaded.RoomID)
			assert.Equal(t, snap.GamePhase, loaded.GamePhase)
			assert.Equal(t, snap.TurnOrder, loaded.TurnOrder)
			require.NotNil(t, loaded.Board)
			assert.Equal(t, engine.TerrainPlain, loaded.Board.Cells[7][7].Terrain)
			require.Contains(t, loaded.Players, "c1")
			assert.Equal(t, engine.ColorRed, loaded.Players["c1"].Color)
		})
	}
}

func TestStoreList(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			list, err := store.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, list)

			require.NoError(t, store.Save(ctx, "first", testSnapshot("R1")))
			require.NoError(t, store.Save(ctx, "second", testSnapshot("R2")))

			list, err = store.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			names := []string{list[0].Name, list[1].Name}
			assert.ElementsMatch(t, []string{"first", "second"}, names)
		})
	}
}

func TestStoreLoadMissing(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Load(context.Background(), "nope")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestLoadRejectsInvalidSnapshots(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(t.TempDir())

	snap := testSnapshot("R1")
	snap.Version = 99
	require.NoError(t, store.Save(ctx, "bad-version", snap))
	_, err := store.Load(ctx, "bad-version")
	assert.Error(t, err)

	snap = testSnapshot("R2")
	snap.TurnOrder = []string{"c1"}
	require.NoError(t, store.Save(ctx, "bad-order", snap))
	_, err = store.Load(ctx, "bad-order")
	assert.Error(t, err)
}

func TestDecodeLocalSaveBlob(t *testing.T) {
	snap := testSnapshot("R9")
	store := NewFileStore(t.TempDir())
	require.NoError(t, store.Save(context.Background(), "blob", snap))

	loaded, err := store.Load(context.Background(), "blob")
	require.NoError(t, err)
	assert.Equal(t, "R9", loaded.RoomID)

	_, err = Decode([]byte(`{"version":1}`))
	assert.Error(t, err, "a bare version field is not a loadable snapshot")

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "mysave", sanitizeName("../../mysave"))
	assert.Equal(t, "mysave", sanitizeName("mysave.json"))
	assert.Equal(t, "save", sanitizeName("!!!"))
}

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurnRotationVisitsEveryPlayerOncePerRound(t *testing.T) {
	ts := &TurnState{Order: []string{"a", "b", "c"}}
	assert.Equal(t, "a", ts.Current())

	var visited []string
	visited = append(visited, ts.Current())
	for i := 0; i < 2; i++ {
		id, wrapped := ts.Advance()
		assert.False(t, wrapped)
		visited = append(visited, id)
	}
	assert.Equal(t, []string{"a", "b", "c"}, visited)

	id, wrapped := ts.Advance()
	assert.True(t, wrapped, "returning to the first seat completes the round")
	assert.Equal(t, "a", id)
}

func TestVictoryLatchIsOneWay(t *testing.T) {
	ts := &TurnState{Order: []string{"a", "b"}}
	require.True(t, ts.LatchVictory("b"))
	assert.Equal(t, "b", ts.DukePlayerID)
	assert.Equal(t, "a", ts.FinalRoundStartID)

	assert.False(t, ts.LatchVictory("a"), "the latch never re-arms")
	assert.Equal(t, "b", ts.DukePlayerID)
}

func TestGameEndsOnlyOnWrapWithLatchSet(t *testing.T) {
	ts := &TurnState{Order: []string{"a", "b", "c"}}
	_, wrapped := ts.Advance()
	assert.False(t, ts.ShouldEnd(wrapped))

	ts.LatchVictory("b")
	_, wrapped = ts.Advance() // to c
	assert.False(t, ts.ShouldEnd(wrapped), "the round must finish first")

	_, wrapped = ts.Advance() // wrap to a
	assert.True(t, ts.ShouldEnd(wrapped))
}

func TestTurnStateRemove(t *testing.T) {
	ts := &TurnState{Order: []string{"a", "b", "c"}, Index: 1}

	// Removing an earlier seat keeps the pointer on the same player.
	ts.Remove("a")
	assert.Equal(t, "b", ts.Current())

	// Removing the player on turn hands the turn to the next seat.
	ts.Remove("b")
	assert.Equal(t, "c", ts.Current())

	ts.Remove("c")
	assert.Equal(t, "", ts.Current())
}

func TestTurnStateRemoveLastSeatWraps(t *testing.T) {
	ts := &TurnState{Order: []string{"a", "b"}, Index: 1}
	ts.Remove("b")
	assert.Equal(t, "a", ts.Current())
}

func TestTurnStateRemap(t *testing.T) {
	ts := &TurnState{Order: []string{"a", "b"}, DukePlayerID: "b", FinalRoundStartID: "a"}
	ts.Remap("b", "conn-2")
	assert.Equal(t, []string{"a", "conn-2"}, ts.Order)
	assert.Equal(t, "conn-2", ts.DukePlayerID)
	ts.Remap("a", "conn-1")
	assert.Equal(t, "conn-1", ts.FinalRoundStartID)
}

func TestFinalScoresRanking(t *testing.T) {
	duke := NewPlayer("p1", "Duke", ColorRed)
	duke.Title = TitleDuke
	duke.VictoryPoints = 10

	builder := NewPlayer("p2", "Builder", ColorBlue)
	builder.Title = TitleCount
	builder.Reserve[PieceCity] = 1 // 4 cities built
	builder.VictoryPoints = 40
	builder.Resources[ResourceField] = 4 // score 60, highest of all

	fighter := NewPlayer("p3", "Fighter", ColorGreen)
	fighter.Title = TitleCount
	fighter.Reserve[PieceCity] = 1
	fighter.BattlesWon = 2
	builder.BattlesWon = 5

	scores := FinalScores([]*Player{fighter, builder, duke})
	require.Len(t, scores, 3)

	// Title outranks score: the duke wins despite 10 points.
	assert.Equal(t, "p1", scores[0].PlayerID)
	assert.Equal(t, 10, scores[0].Score)

	// Equal title and cities: battles won breaks the tie.
	assert.Equal(t, "p2", scores[1].PlayerID)
	assert.Equal(t, "p3", scores[2].PlayerID)

	// Score is victory points plus resource points.
	assert.Equal(t, 60, scores[1].Score)
}

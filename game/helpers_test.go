package game

import (
	"testing"

	"pandemic/meta"

	"github.com/stretchr/testify/require"
)

// newTestState returns a bare game on the standard board: one station in Atlanta, every pawn in Atlanta,
// empty hands, decks and discards, no cubes.
func newTestState(roles ...Role) *GameState {
	gs := NewGameState(StandardBoard(), Config{NumPlayers: len(roles), Difficulty: 4, Roles: roles})
	gs.setStation(meta.START_CITY, true)
	gs.Players = make([]Player, len(roles))
	for i, r := range roles {
		gs.Players[i] = Player{Role: r, Location: meta.START_CITY, Hand: []PlayerCard{}}
	}
	gs.PlayerDeck = []PlayerCard{}
	gs.PlayerDiscard = []PlayerCard{}
	gs.InfectionDeck = []InfectionCard{}
	gs.InfectionDiscard = []InfectionCard{}
	return gs
}

func cityCard(name string) PlayerCard {
	c, ok := StandardBoard().City(name)
	if !ok {
		panic("unknown city " + name)
	}
	return NewCityCard(name, c.Color)
}

func cityCards(names ...string) []PlayerCard {
	cards := make([]PlayerCard, 0, len(names))
	for _, n := range names {
		cards = append(cards, cityCard(n))
	}
	return cards
}

func infectionCard(name string) InfectionCard {
	c, ok := StandardBoard().City(name)
	if !ok {
		panic("unknown city " + name)
	}
	return InfectionCard{City: name, Color: c.Color}
}

func infectionCards(names ...string) []InfectionCard {
	cards := make([]InfectionCard, 0, len(names))
	for _, n := range names {
		cards = append(cards, infectionCard(n))
	}
	return cards
}

// placeCubes puts cubes from the supply so conservation still holds.
func placeCubes(gs *GameState, city string, color Color, n int) {
	for i := 0; i < n; i++ {
		gs.addCube(city, color)
	}
}

func requireInvariants(t *testing.T, gs *GameState) {
	t.Helper()
	for _, color := range Colors() {
		require.Equal(t, meta.CUBES_PER_COLOR, gs.CubesOnBoard(color)+gs.CubeSupply[color], "%s cubes should be conserved", color)
		require.GreaterOrEqual(t, gs.CubeSupply[color], 0, "%s supply should never be negative", color)
	}
	for name, cs := range gs.Cities {
		for color, n := range cs.Cubes {
			require.LessOrEqual(t, n, meta.MAX_CUBES_PER_CITY, "%s should hold at most 3 %s cubes", name, Color(color))
			require.GreaterOrEqual(t, n, 0, "%s should never hold negative cubes", name)
		}
	}
	require.LessOrEqual(t, gs.InfectionRatePosition, meta.MAX_INFECTION_RATE_POSITION, "Infection rate should be clamped")
	require.LessOrEqual(t, gs.OutbreakCount, meta.MAX_OUTBREAKS, "Outbreaks should stop at the limit")
	require.LessOrEqual(t, len(gs.Stations()), meta.MAX_RESEARCH_STATIONS, "Stations should respect the limit")
}

// requireRejected checks that a failed call returned no state, the expected kind, and left the input untouched.
func requireRejected(t *testing.T, before *GameState, after *GameState, got *GameState, err error, target error) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, target)
	require.Nil(t, got, "Failed calls should not return a state")
	require.Equal(t, before, after, "Input state should not change")
}

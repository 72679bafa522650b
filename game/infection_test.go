package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExecuteInfectionPhase(t *testing.T) {
	t.Run("infecting a clean board", func(t *testing.T) {
		gs := newTestState(Medic, Scientist)
		gs.InfectionDeck = infectionCards("Atlanta", "Paris")

		next, res, err := ExecuteInfectionPhase(gs)

		require.NoError(t, err)
		require.Equal(t, 1, next.cubes("Atlanta", Blue), "Atlanta should hold one blue cube")
		require.Equal(t, 1, next.cubes("Paris", Blue), "Paris should hold one blue cube")
		require.Equal(t, 22, next.CubeSupply[Blue], "Two blue cubes should leave the supply")
		require.Len(t, next.InfectionDiscard, 2, "Both cards should be discarded")
		require.Empty(t, next.InfectionDeck, "Deck should be empty")
		require.Equal(t, infectionCards("Atlanta", "Paris"), res.Cards, "Drawn cards should be reported in order")
		require.Empty(t, res.Outbreaks)
		require.Equal(t, 0, gs.cubes("Atlanta", Blue), "Input state should not change")
		requireInvariants(t, next)
	})

	t.Run("outbreak on a full city", func(t *testing.T) {
		gs := newTestState(Medic, Scientist)
		placeCubes(gs, "Atlanta", Blue, 3)
		gs.InfectionDeck = infectionCards("Atlanta", "Paris")

		next, res, err := ExecuteInfectionPhase(gs)

		require.NoError(t, err)
		require.Equal(t, 3, next.cubes("Atlanta", Blue), "Atlanta should not take a fourth cube")
		require.Equal(t, 1, next.OutbreakCount)
		for _, city := range []string{"Chicago", "Miami", "Washington"} {
			require.Equal(t, 1, next.cubes(city, Blue), "%s should receive one cube from the outbreak", city)
		}
		require.Equal(t, 1, next.cubes("Paris", Blue))
		require.Equal(t, 17, next.CubeSupply[Blue])
		require.Equal(t, []string{"Atlanta"}, res.Outbreaks)
		requireInvariants(t, next)
	})

	t.Run("eradicated disease places nothing", func(t *testing.T) {
		gs := newTestState(Medic, Scientist)
		gs.Cures[Blue] = Eradicated
		gs.InfectionDeck = infectionCards("Paris", "Madrid")

		next, res, err := ExecuteInfectionPhase(gs)

		require.NoError(t, err)
		require.Equal(t, 0, next.CubesOnBoard(Blue))
		require.Equal(t, 24, next.CubeSupply[Blue], "Supply should not change")
		require.Len(t, next.InfectionDiscard, 2, "Cards should still be discarded")
		require.Len(t, res.Cards, 2)
	})

	t.Run("quarantine blocks the specialist's city and its neighbors", func(t *testing.T) {
		gs := newTestState(QuarantineSpecialist, Scientist)
		gs.InfectionDeck = infectionCards("Chicago", "Atlanta")

		next, _, err := ExecuteInfectionPhase(gs)

		require.NoError(t, err)
		require.Equal(t, 0, next.cubes("Chicago", Blue), "Chicago is adjacent to the specialist")
		require.Equal(t, 0, next.cubes("Atlanta", Blue), "Atlanta holds the specialist")
		require.Equal(t, 24, next.CubeSupply[Blue])
	})

	t.Run("quarantine stops outbreak spread", func(t *testing.T) {
		gs := newTestState(QuarantineSpecialist, Scientist)
		gs.Players[0].Location = "Miami"
		placeCubes(gs, "Chicago", Blue, 3)
		gs.InfectionDeck = infectionCards("Chicago", "Paris")

		next, _, err := ExecuteInfectionPhase(gs)

		require.NoError(t, err)
		require.Equal(t, 1, next.OutbreakCount)
		require.Equal(t, 0, next.cubes("Atlanta", Blue), "Atlanta is next to the specialist in Miami")
		require.Equal(t, 1, next.cubes("Montreal", Blue))
		require.Equal(t, 1, next.cubes("San Francisco", Blue))
		requireInvariants(t, next)
	})

	t.Run("eighth outbreak loses immediately", func(t *testing.T) {
		gs := newTestState(Medic, Scientist)
		gs.OutbreakCount = 7
		placeCubes(gs, "Atlanta", Blue, 3)
		gs.InfectionDeck = infectionCards("Atlanta", "Paris")

		next, res, err := ExecuteInfectionPhase(gs)

		require.NoError(t, err)
		require.Equal(t, 8, next.OutbreakCount)
		require.Equal(t, Lost, next.Status)
		for _, city := range []string{"Chicago", "Miami", "Washington", "Paris"} {
			require.Equal(t, 0, next.cubes(city, Blue), "Nothing should spread past the losing outbreak")
		}
		require.Equal(t, infectionCards("Atlanta"), res.Cards, "No card should be drawn after the loss")
		require.Equal(t, infectionCards("Paris"), next.InfectionDeck)
	})

	t.Run("chain reaction visits each city once", func(t *testing.T) {
		gs := newTestState(Medic, Scientist)
		placeCubes(gs, "Atlanta", Blue, 3)
		placeCubes(gs, "Washington", Blue, 3)
		placeCubes(gs, "Chicago", Blue, 3)
		gs.InfectionDeck = infectionCards("Atlanta", "Essen")

		next, res, err := ExecuteInfectionPhase(gs)

		require.NoError(t, err)
		require.Equal(t, []string{"Atlanta", "Chicago", "Washington"}, res.Outbreaks, "Cascade should follow declared adjacency order")
		require.Equal(t, 3, next.OutbreakCount, "Each city should break out once")
		require.Equal(t, 3, next.cubes("Atlanta", Blue))
		require.Equal(t, 2, next.cubes("Montreal", Blue), "Montreal borders both Chicago and Washington")
		require.Equal(t, 2, next.cubes("Miami", Blue), "Miami borders both Atlanta and Washington")
		require.Equal(t, 1, next.cubes("New York", Blue))
		requireInvariants(t, next)
	})

	t.Run("empty supply loses the game", func(t *testing.T) {
		gs := newTestState(Medic, Scientist)
		gs.CubeSupply[Red] = 0
		gs.InfectionDeck = infectionCards("Tokyo", "Paris")

		next, _, err := ExecuteInfectionPhase(gs)

		require.NoError(t, err)
		require.Equal(t, Lost, next.Status)
		require.Equal(t, 0, next.cubes("Tokyo", Red))
	})

	t.Run("one quiet night skips the step once", func(t *testing.T) {
		gs := newTestState(Medic, Scientist)
		gs.SkipNextInfection = true
		gs.InfectionDeck = infectionCards("Atlanta", "Paris")

		next, res, err := ExecuteInfectionPhase(gs)

		require.NoError(t, err)
		require.True(t, res.Skipped)
		require.False(t, next.SkipNextInfection, "Flag should be consumed")
		require.Len(t, next.InfectionDeck, 2, "No card should be drawn")

		next, res, err = ExecuteInfectionPhase(next)
		require.NoError(t, err)
		require.False(t, res.Skipped)
		require.Empty(t, next.InfectionDeck)
	})

	t.Run("deck underflow is an error", func(t *testing.T) {
		gs := newTestState(Medic, Scientist)
		gs.InfectionRatePosition = 4
		gs.InfectionDeck = infectionCards("Atlanta", "Paris")
		before := gs.Copy()

		next, _, err := ExecuteInfectionPhase(gs)

		requireRejected(t, before, gs, next, err, ErrResourceExhausted)
	})

	t.Run("terminal state is locked", func(t *testing.T) {
		gs := newTestState(Medic, Scientist)
		gs.Status = Won
		gs.InfectionDeck = infectionCards("Atlanta", "Paris")
		before := gs.Copy()

		next, _, err := ExecuteInfectionPhase(gs)

		requireRejected(t, before, gs, next, err, ErrGameOver)
	})
}

func TestIsQuarantined(t *testing.T) {
	gs := newTestState(QuarantineSpecialist, Medic)
	gs.Players[0].Location = "Paris"

	require.True(t, gs.IsQuarantined("Paris"))
	require.True(t, gs.IsQuarantined("Essen"))
	require.True(t, gs.IsQuarantined("Algiers"))
	require.False(t, gs.IsQuarantined("Atlanta"), "The Medic does not quarantine")
	require.False(t, gs.IsQuarantined("St. Petersburg"))
}

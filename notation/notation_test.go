package notation

import (
	"testing"

	"pandemic/game"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected game.Action
	}{
		{"drive-ferry:Chicago", game.Action{Type: game.DriveFerryAction, Destination: "Chicago"}},
		{"direct-flight:New York", game.Action{Type: game.DirectFlightAction, Destination: "New York"}},
		{" Charter-Flight : Ho Chi Minh City ", game.Action{Type: game.CharterFlightAction, Destination: "Ho Chi Minh City"}},
		{"shuttle-flight:Paris", game.Action{Type: game.ShuttleFlightAction, Destination: "Paris"}},
		{"build-station", game.Action{Type: game.BuildStationAction}},
		{"build-station:Lima", game.Action{Type: game.BuildStationAction, RemoveFrom: "Lima"}},
		{"treat:blue", game.Action{Type: game.TreatDiseaseAction, Color: game.Blue}},
		{"share-give:1:Atlanta", game.Action{Type: game.ShareKnowledgeAction, Player: 1, Card: "Atlanta"}},
		{"share-take:2:Paris", game.Action{Type: game.ShareKnowledgeAction, Player: 2, Card: "Paris", Take: true}},
		{"discover-cure:red", game.Action{Type: game.DiscoverCureAction, Color: game.Red}},
		{"discover-cure:black:Cairo:Delhi:Riyadh:Moscow", game.Action{Type: game.DiscoverCureAction, Color: game.Black, Cards: []string{"Cairo", "Delhi", "Riyadh", "Moscow"}}},
		{"dispatch-pawn:0:Tokyo", game.Action{Type: game.DispatchPawnAction, Player: 0, Destination: "Tokyo"}},
		{"dispatch-move:1:direct-flight:Lima", game.Action{Type: game.DispatchMoveAction, Player: 1, Mode: game.DirectFlightAction, Destination: "Lima"}},
		{"operations-flight:Paris:Sydney", game.Action{Type: game.OperationsFlightAction, Card: "Paris", Destination: "Sydney"}},
		{"retrieve-event:airlift", game.Action{Type: game.RetrieveEventAction, Event: game.Airlift}},
		{"pass", game.Action{Type: game.PassAction}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"fly:Chicago",
		"share:1:Atlanta",
		"drive-ferry",
		"drive-ferry:Chicago:Miami",
		"drive-ferry:",
		"treat:green",
		"share-give:one:Atlanta",
		"share-give:-1:Atlanta",
		"dispatch-move:1:treat:Lima",
		"retrieve-event:vaccine",
		"pass:now",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			require.Error(t, err)
			require.ErrorIs(t, err, game.ErrInvalidAction)
		})
	}
}

func TestFormat(t *testing.T) {
	for _, input := range []string{
		"drive-ferry:Chicago",
		"build-station",
		"build-station:Lima",
		"treat:yellow",
		"share-give:1:Atlanta",
		"share-take:2:Paris",
		"discover-cure:black:Cairo:Delhi:Riyadh:Moscow",
		"dispatch-move:1:charter-flight:Lima",
		"operations-flight:Paris:Sydney",
		"retrieve-event:forecast",
		"pass",
	} {
		t.Run(input, func(t *testing.T) {
			a, err := Parse(input)
			require.NoError(t, err)
			require.Equal(t, input, Format(a), "Format should be the inverse of Parse")
		})
	}
}

func TestFormatAvailableActions(t *testing.T) {
	gs, err := game.CreateGame(game.StandardBoard(), game.Config{NumPlayers: 3, Difficulty: 4, Roles: []game.Role{game.Dispatcher, game.OperationsExpert, game.Researcher}}, game.NewRand(9))
	require.NoError(t, err)

	for _, a := range game.GetAvailableActions(gs) {
		parsed, err := Parse(Format(a))
		require.NoError(t, err, Format(a))
		require.Equal(t, a, parsed)
	}
}

func TestParseEvent(t *testing.T) {
	tests := []struct {
		input    string
		expected game.EventParams
	}{
		{"airlift:1:Tokyo", game.EventParams{Event: game.Airlift, Player: 1, Destination: "Tokyo"}},
		{"forecast:Paris:Lima:Tokyo", game.EventParams{Event: game.Forecast, Order: []string{"Paris", "Lima", "Tokyo"}}},
		{"government-grant:Cairo", game.EventParams{Event: game.GovernmentGrant, Destination: "Cairo"}},
		{"government-grant:Cairo:Atlanta", game.EventParams{Event: game.GovernmentGrant, Destination: "Cairo", RemoveFrom: "Atlanta"}},
		{"one-quiet-night", game.EventParams{Event: game.OneQuietNight}},
		{"resilient-population:Sao Paulo", game.EventParams{Event: game.ResilientPopulation, Destination: "Sao Paulo"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseEvent(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
			require.Equal(t, tt.input, FormatEvent(got))
		})
	}

	for _, input := range []string{"airlift:Tokyo", "quarantine", "one-quiet-night:now", "forecast:a:b:c:d:e:f:g"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseEvent(input)
			require.ErrorIs(t, err, game.ErrInvalidAction)
		})
	}
}

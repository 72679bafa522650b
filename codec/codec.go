// Package codec is the persisted form of a game state: a versioned JSON envelope.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"pandemic/game"
	"pandemic/meta"
)

// Version is the current schema version. Decode rejects anything else.
const Version = 1

type envelope struct {
	Version int             `json:"version"`
	State   json.RawMessage `json:"state"`
}

// Encode serialises a state. The board is not part of the output.
func Encode(gs *game.GameState) ([]byte, error) {
	if gs == nil {
		return nil, fmt.Errorf("cannot encode a nil state")
	}
	state, err := json.Marshal(gs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return json.Marshal(envelope{Version: Version, State: state})
}

func decodeError(format string, args ...any) error {
	return game.NewError(game.KindDeserialization, format, args...)
}

// Decode restores a state encoded with the same schema version and attaches it to board.
func Decode(data []byte, board *game.Board) (*game.GameState, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, game.WrapError(game.KindDeserialization, "malformed save", err)
	}
	switch {
	case env.Version == 0:
		return nil, decodeError("save has no schema version")
	case env.Version > Version:
		return nil, decodeError("save uses schema version %d, newer than %d", env.Version, Version)
	case env.Version != Version:
		return nil, decodeError("unsupported schema version %d", env.Version)
	}
	if len(env.State) == 0 {
		return nil, decodeError("save has no state")
	}

	dec := json.NewDecoder(bytes.NewReader(env.State))
	dec.DisallowUnknownFields()
	var gs game.GameState
	if err := dec.Decode(&gs); err != nil {
		return nil, game.WrapError(game.KindDeserialization, "malformed state", err)
	}
	gs.Board = board
	if err := validate(&gs); err != nil {
		return nil, err
	}
	return &gs, nil
}

// validate rejects states that could not have been produced by the engine on this board.
func validate(gs *game.GameState) error {
	if err := gs.Config.Validate(); err != nil {
		return game.WrapError(game.KindDeserialization, "invalid config", err)
	}
	if len(gs.Players) != gs.Config.NumPlayers {
		return decodeError("%d players saved for a %d player game", len(gs.Players), gs.Config.NumPlayers)
	}
	if gs.CurrentPlayer < 0 || gs.CurrentPlayer >= len(gs.Players) {
		return decodeError("current player %d out of range", gs.CurrentPlayer)
	}
	if gs.Phase < game.ActionsPhase || gs.Phase > game.InfectPhase {
		return decodeError("unknown phase %d", int(gs.Phase))
	}
	if gs.Status < game.Ongoing || gs.Status > game.Lost {
		return decodeError("unknown status %d", int(gs.Status))
	}

	cities := gs.Board.Cities()
	if len(gs.Cities) != len(cities) {
		return decodeError("state has %d cities, board has %d", len(gs.Cities), len(cities))
	}
	for _, name := range cities {
		if _, ok := gs.Cities[name]; !ok {
			return decodeError("state is missing city %q", name)
		}
	}
	for i, p := range gs.Players {
		if !gs.Board.Has(p.Location) {
			return decodeError("player %d stands in unknown city %q", i, p.Location)
		}
	}
	if gs.InfectionRatePosition < 1 || gs.InfectionRatePosition > meta.MAX_INFECTION_RATE_POSITION {
		return decodeError("infection rate position %d out of range", gs.InfectionRatePosition)
	}
	if gs.OutbreakCount < 0 || gs.OutbreakCount > meta.MAX_OUTBREAKS {
		return decodeError("outbreak count %d out of range", gs.OutbreakCount)
	}
	if gs.ActionsRemaining < 0 || gs.ActionsRemaining > meta.ACTIONS_PER_TURN {
		return decodeError("%d actions remaining out of range", gs.ActionsRemaining)
	}
	for _, name := range cities {
		for _, color := range game.Colors() {
			if n := gs.Cities[name].Cubes[color]; n < 0 || n > meta.MAX_CUBES_PER_CITY {
				return decodeError("%s holds %d %s cubes", name, n, color)
			}
		}
	}
	for _, color := range game.Colors() {
		if gs.CubesOnBoard(color)+gs.CubeSupply[color] != meta.CUBES_PER_COLOR {
			return decodeError("%s cubes do not add up", color)
		}
	}
	return nil
}

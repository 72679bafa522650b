// Package notation is the textual form of actions and events, e.g. "drive-ferry:Chicago" or "treat:blue".
//
// Players are referred to by their 0-based turn order index.
package notation

import (
	"fmt"
	"strconv"
	"strings"

	"pandemic/game"
)

// Verbs that have no one-to-one game.ActionType name.
const (
	ShareGive = "share-give"
	ShareTake = "share-take"
)

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func trim(s string) string {
	return strings.TrimSpace(s)
}

func syntaxError(input string, format string, args ...any) error {
	return game.NewError(game.KindInvalidAction, "%q: %s", input, fmt.Sprintf(format, args...))
}

func parse(input string) (*Command, error) {
	cmd, err := ParseCommand(input)
	if err != nil {
		return nil, game.WrapError(game.KindInvalidAction, fmt.Sprintf("%q is not of the form verb:arg:arg", input), err)
	}
	return cmd, nil
}

// arity checks the argument count. A negative most means unbounded.
func arity(input string, cmd *Command, least, most int) error {
	n := len(cmd.Args)
	switch {
	case least == most && n != least:
		return syntaxError(input, "%s takes %d argument(s), got %d", cmd.Verb, least, n)
	case n < least:
		return syntaxError(input, "%s takes at least %d argument(s), got %d", cmd.Verb, least, n)
	case most >= 0 && n > most:
		return syntaxError(input, "%s takes at most %d argument(s), got %d", cmd.Verb, most, n)
	}
	return nil
}

func player(input, arg string) (int, error) {
	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 0 {
		return 0, syntaxError(input, "player must be a turn order index, got %q", arg)
	}
	return idx, nil
}

func actionType(verb string) (game.ActionType, bool) {
	for t := game.DriveFerryAction; t <= game.PassAction; t++ {
		if t.String() == verb {
			return t, true
		}
	}
	return 0, false
}

// Parse turns an action string into a game.Action.
func Parse(input string) (game.Action, error) {
	cmd, err := parse(input)
	if err != nil {
		return game.Action{}, err
	}

	switch cmd.Verb {
	case ShareGive, ShareTake:
		if err := arity(input, cmd, 2, 2); err != nil {
			return game.Action{}, err
		}
		p, err := player(input, cmd.Args[0])
		if err != nil {
			return game.Action{}, err
		}
		return game.Action{Type: game.ShareKnowledgeAction, Player: p, Card: cmd.Args[1], Take: cmd.Verb == ShareTake}, nil
	}

	t, ok := actionType(cmd.Verb)
	if !ok || t == game.ShareKnowledgeAction {
		return game.Action{}, syntaxError(input, "unknown action %q", cmd.Verb)
	}
	a := game.Action{Type: t}

	switch t {
	case game.DriveFerryAction, game.DirectFlightAction, game.CharterFlightAction, game.ShuttleFlightAction:
		if err := arity(input, cmd, 1, 1); err != nil {
			return a, err
		}
		a.Destination = cmd.Args[0]

	case game.BuildStationAction:
		if err := arity(input, cmd, 0, 1); err != nil {
			return a, err
		}
		if len(cmd.Args) == 1 {
			a.RemoveFrom = cmd.Args[0]
		}

	case game.TreatDiseaseAction, game.DiscoverCureAction:
		most := 1
		if t == game.DiscoverCureAction {
			most = -1
		}
		if err := arity(input, cmd, 1, most); err != nil {
			return a, err
		}
		color, err := game.ParseColor(cmd.Args[0])
		if err != nil {
			return a, syntaxError(input, "%v", err)
		}
		a.Color = color
		if len(cmd.Args) > 1 {
			a.Cards = append([]string(nil), cmd.Args[1:]...)
		}

	case game.DispatchPawnAction:
		if err := arity(input, cmd, 2, 2); err != nil {
			return a, err
		}
		if a.Player, err = player(input, cmd.Args[0]); err != nil {
			return a, err
		}
		a.Destination = cmd.Args[1]

	case game.DispatchMoveAction:
		if err := arity(input, cmd, 3, 3); err != nil {
			return a, err
		}
		if a.Player, err = player(input, cmd.Args[0]); err != nil {
			return a, err
		}
		mode, ok := actionType(normalize(cmd.Args[1]))
		if !ok || !mode.IsMovement() {
			return a, syntaxError(input, "%q is not a movement", cmd.Args[1])
		}
		a.Mode = mode
		a.Destination = cmd.Args[2]

	case game.OperationsFlightAction:
		if err := arity(input, cmd, 2, 2); err != nil {
			return a, err
		}
		a.Card = cmd.Args[0]
		a.Destination = cmd.Args[1]

	case game.RetrieveEventAction:
		if err := arity(input, cmd, 1, 1); err != nil {
			return a, err
		}
		event, err := game.ParseEvent(cmd.Args[0])
		if err != nil {
			return a, syntaxError(input, "%v", err)
		}
		a.Event = event

	case game.PassAction:
		if err := arity(input, cmd, 0, 0); err != nil {
			return a, err
		}
	}
	return a, nil
}

// Format is the inverse of Parse.
func Format(a game.Action) string {
	parts := []string{a.Type.String()}
	switch a.Type {
	case game.DriveFerryAction, game.DirectFlightAction, game.CharterFlightAction, game.ShuttleFlightAction:
		parts = append(parts, a.Destination)
	case game.BuildStationAction:
		if a.RemoveFrom != "" {
			parts = append(parts, a.RemoveFrom)
		}
	case game.TreatDiseaseAction:
		parts = append(parts, a.Color.String())
	case game.DiscoverCureAction:
		parts = append(parts, a.Color.String())
		parts = append(parts, a.Cards...)
	case game.ShareKnowledgeAction:
		parts[0] = ShareGive
		if a.Take {
			parts[0] = ShareTake
		}
		parts = append(parts, strconv.Itoa(a.Player), a.Card)
	case game.DispatchPawnAction:
		parts = append(parts, strconv.Itoa(a.Player), a.Destination)
	case game.DispatchMoveAction:
		parts = append(parts, strconv.Itoa(a.Player), a.Mode.String(), a.Destination)
	case game.OperationsFlightAction:
		parts = append(parts, a.Card, a.Destination)
	case game.RetrieveEventAction:
		parts = append(parts, a.Event.String())
	}
	return strings.Join(parts, ":")
}

// ParseEvent turns an event string into game.EventParams.
func ParseEvent(input string) (game.EventParams, error) {
	cmd, err := parse(input)
	if err != nil {
		return game.EventParams{}, err
	}
	kind, err := game.ParseEvent(cmd.Verb)
	if err != nil {
		return game.EventParams{}, syntaxError(input, "unknown event %q", cmd.Verb)
	}
	params := game.EventParams{Event: kind}

	switch kind {
	case game.Airlift:
		if err := arity(input, cmd, 2, 2); err != nil {
			return params, err
		}
		if params.Player, err = player(input, cmd.Args[0]); err != nil {
			return params, err
		}
		params.Destination = cmd.Args[1]
	case game.Forecast:
		if err := arity(input, cmd, 0, 6); err != nil {
			return params, err
		}
		params.Order = append([]string(nil), cmd.Args...)
	case game.GovernmentGrant:
		if err := arity(input, cmd, 1, 2); err != nil {
			return params, err
		}
		params.Destination = cmd.Args[0]
		if len(cmd.Args) == 2 {
			params.RemoveFrom = cmd.Args[1]
		}
	case game.OneQuietNight:
		if err := arity(input, cmd, 0, 0); err != nil {
			return params, err
		}
	case game.ResilientPopulation:
		if err := arity(input, cmd, 1, 1); err != nil {
			return params, err
		}
		params.Destination = cmd.Args[0]
	}
	return params, nil
}

// FormatEvent is the inverse of ParseEvent.
func FormatEvent(p game.EventParams) string {
	parts := []string{p.Event.String()}
	switch p.Event {
	case game.Airlift:
		parts = append(parts, strconv.Itoa(p.Player), p.Destination)
	case game.Forecast:
		parts = append(parts, p.Order...)
	case game.GovernmentGrant:
		parts = append(parts, p.Destination)
		if p.RemoveFrom != "" {
			parts = append(parts, p.RemoveFrom)
		}
	case game.ResilientPopulation:
		parts = append(parts, p.Destination)
	}
	return strings.Join(parts, ":")
}

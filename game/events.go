package game

import (
	"pandemic/meta"
	"pandemic/utils"
)

// eventSource finds an event card held by a player: hand first, then the stored slot.
func (gs *GameState) eventSource(playerIdx int, kind EventKind) (handIdx int, stored bool) {
	p := gs.Players[playerIdx]
	if i := findEventCard(p.Hand, kind); i >= 0 {
		return i, false
	}
	if p.StoredEvent != nil && p.StoredEvent.IsEvent(kind) {
		return -1, true
	}
	return -1, false
}

// applyEvent mutates the state with the event's effect. The card itself is not touched.
func (gs *GameState) applyEvent(params EventParams) error {
	switch params.Event {
	case Airlift:
		if err := gs.checkPlayer(params.Player); err != nil {
			return err
		}
		if err := gs.checkCity(params.Destination); err != nil {
			return err
		}
		if gs.Players[params.Player].Location == params.Destination {
			return invalidAction("%s is already in %s", gs.Players[params.Player].Role, params.Destination)
		}
		gs.movePlayer(params.Player, params.Destination)

	case Forecast:
		return gs.forecast(params.Order)

	case GovernmentGrant:
		return gs.placeStation(params.Destination, params.RemoveFrom)

	case OneQuietNight:
		gs.SkipNextInfection = true

	case ResilientPopulation:
		i := -1
		for j, c := range gs.InfectionDiscard {
			if c.City == params.Destination {
				i = j
				break
			}
		}
		if i < 0 {
			return invalidAction("%q is not in the infection discard pile", params.Destination)
		}
		gs.InfectionDiscard = utils.RemoveAt(gs.InfectionDiscard, i)

	default:
		return invalidAction("unknown event %d", int(params.Event))
	}
	return nil
}

// forecast rearranges the top of the infection deck. order names every city of the top cards, top first.
func (gs *GameState) forecast(order []string) error {
	n := min(meta.FORECAST_DEPTH, len(gs.InfectionDeck))
	if len(order) != n {
		return invalidAction("forecast needs the order of %d cards, got %d", n, len(order))
	}
	top := cloneSlice(gs.InfectionDeck[:n])
	used := make([]bool, n)
	arranged := make([]InfectionCard, 0, len(gs.InfectionDeck))
	for _, city := range order {
		found := false
		for i, c := range top {
			if !used[i] && c.City == city {
				used[i] = true
				arranged = append(arranged, c)
				found = true
				break
			}
		}
		if !found {
			return invalidAction("%q is not among the top %d infection cards", city, n)
		}
	}
	gs.InfectionDeck = append(arranged, gs.InfectionDeck[n:]...)
	return nil
}

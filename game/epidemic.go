package game

import "pandemic/meta"

// EpidemicResult names the city hit by an epidemic.
type EpidemicResult struct {
	City      string
	Color     Color
	Skipped   bool // Eradicated disease or quarantined city
	Outbreaks []string
}

// ResolveEpidemic runs Increase, Infect and Intensify as one transition.
func ResolveEpidemic(gs *GameState, rng Shuffler) (*GameState, EpidemicResult, error) {
	if err := gs.checkOngoing(); err != nil {
		return nil, EpidemicResult{}, err
	}
	next := gs.Copy()
	res, err := next.resolveEpidemic(rng)
	if err != nil {
		return nil, EpidemicResult{}, err
	}
	return next, res, nil
}

func (gs *GameState) resolveEpidemic(rng Shuffler) (EpidemicResult, error) {
	var res EpidemicResult

	// Increase
	if gs.InfectionRatePosition < meta.MAX_INFECTION_RATE_POSITION {
		gs.InfectionRatePosition++
	}

	// Infect
	if len(gs.InfectionDeck) == 0 {
		return res, exhausted("infection deck is empty: no epidemic city to draw")
	}
	last := len(gs.InfectionDeck) - 1
	card := gs.InfectionDeck[last]
	gs.InfectionDeck = cloneSlice(gs.InfectionDeck[:last])
	res.City, res.Color = card.City, card.Color

	if gs.blocked(card.City, card.Color) {
		res.Skipped = true
	} else {
		have := gs.cubes(card.City, card.Color)
		short := meta.MAX_CUBES_PER_CITY - have
		if gs.CubeSupply[card.Color] < short {
			gs.lose()
		} else {
			for i := 0; i < short; i++ {
				gs.addCube(card.City, card.Color)
			}
			if have > 0 {
				res.Outbreaks = gs.outbreak(card.City, card.Color)
			}
		}
	}
	gs.InfectionDiscard = append(gs.InfectionDiscard, card)

	// Intensify
	if gs.Status == Ongoing {
		shuffle(rng, gs.InfectionDiscard)
		deck := make([]InfectionCard, 0, len(gs.InfectionDiscard)+len(gs.InfectionDeck))
		deck = append(deck, gs.InfectionDiscard...)
		gs.InfectionDeck = append(deck, gs.InfectionDeck...)
		gs.InfectionDiscard = []InfectionCard{}
	}
	return res, nil
}

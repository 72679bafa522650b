package game

import "pandemic/meta"

// InfectionResult reports what an infection step drew and which cities broke out.
type InfectionResult struct {
	Cards     []InfectionCard
	Outbreaks []string // In the order they happened
	Skipped   bool     // One Quiet Night consumed the step
}

// ExecuteInfectionPhase draws infection cards at the current rate and infects their cities.
// It does not check or change the phase: InfectCities wraps it for the turn cycle.
func ExecuteInfectionPhase(gs *GameState) (*GameState, InfectionResult, error) {
	var res InfectionResult
	if err := gs.checkOngoing(); err != nil {
		return nil, res, err
	}
	next := gs.Copy()
	if next.SkipNextInfection {
		next.SkipNextInfection = false
		res.Skipped = true
		return next, res, nil
	}

	n := next.InfectionRate()
	if len(next.InfectionDeck) < n {
		return nil, res, exhausted("infection deck holds %d cards, %d needed", len(next.InfectionDeck), n)
	}
	for i := 0; i < n && next.Status == Ongoing; i++ {
		card := next.InfectionDeck[0]
		next.InfectionDeck = next.InfectionDeck[1:]
		next.InfectionDiscard = append(next.InfectionDiscard, card)
		res.Cards = append(res.Cards, card)
		res.Outbreaks = append(res.Outbreaks, next.infect(card.City, card.Color)...)
	}
	next.InfectionDeck = cloneSlice(next.InfectionDeck)
	return next, res, nil
}

// blocked reports whether a cube of the color can never land in the city right now.
func (gs *GameState) blocked(city string, color Color) bool {
	return gs.Cures[color] == Eradicated || gs.IsQuarantined(city)
}

// infect places one cube, diverting to an outbreak when the city is full.
func (gs *GameState) infect(city string, color Color) []string {
	if gs.blocked(city, color) {
		return nil
	}
	if gs.cubes(city, color) >= meta.MAX_CUBES_PER_CITY {
		return gs.outbreak(city, color)
	}
	if gs.CubeSupply[color] == 0 {
		gs.lose()
		return nil
	}
	gs.addCube(city, color)
	return nil
}

type outbreakFrame struct {
	city string
	next int // Index of the next connection to spread to
}

// outbreak runs a cascade starting at city with an explicit stack, spreading to connections in declared order.
// Every city breaks out at most once per cascade. Returns the cities that broke out.
func (gs *GameState) outbreak(city string, color Color) []string {
	visited := make(map[string]bool)
	var order []string
	var stack []outbreakFrame

	burst := func(name string) bool {
		visited[name] = true
		order = append(order, name)
		gs.OutbreakCount++
		if gs.OutbreakCount >= meta.MAX_OUTBREAKS {
			gs.lose()
			return false
		}
		stack = append(stack, outbreakFrame{city: name})
		return true
	}

	if !burst(city) {
		return order
	}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		conns := gs.Board.Connections(top.city)
		if top.next >= len(conns) {
			stack = stack[:len(stack)-1]
			continue
		}
		neighbor := conns[top.next]
		top.next++

		if visited[neighbor] || gs.blocked(neighbor, color) {
			continue
		}
		if gs.CubeSupply[color] == 0 {
			gs.lose()
			return order
		}
		if gs.cubes(neighbor, color) >= meta.MAX_CUBES_PER_CITY {
			if !burst(neighbor) {
				return order
			}
			continue
		}
		gs.addCube(neighbor, color)
	}
	return order
}

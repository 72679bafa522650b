package game

import "pandemic/utils"

// discardAt moves a card from a hand to the player discard pile.
func (gs *GameState) discardAt(playerIdx, cardIdx int) PlayerCard {
	p := &gs.Players[playerIdx]
	card := p.Hand[cardIdx]
	p.Hand = utils.RemoveAt(p.Hand, cardIdx)
	gs.PlayerDiscard = append(gs.PlayerDiscard, card)
	return card
}

// discardCity discards the city card of the given city from a hand.
func (gs *GameState) discardCity(playerIdx int, city string) bool {
	i := findCityCard(gs.Players[playerIdx].Hand, city)
	if i < 0 {
		return false
	}
	gs.discardAt(playerIdx, i)
	return true
}

// move applies one of the four basic movements to a pawn, paying with that pawn's own cards.
func (gs *GameState) move(mode ActionType, mover int, dest string) error {
	if err := gs.checkCity(dest); err != nil {
		return err
	}
	from := gs.Players[mover].Location
	if dest == from {
		return invalidAction("%s is already in %s", gs.Players[mover].Role, dest)
	}

	switch mode {
	case DriveFerryAction:
		if !gs.Board.AreAdjacent(from, dest) {
			return invalidAction("cannot drive: %s is not connected to %s", dest, from)
		}
	case DirectFlightAction:
		if !gs.discardCity(mover, dest) {
			return invalidAction("direct flight requires the %s city card", dest)
		}
	case CharterFlightAction:
		if !gs.discardCity(mover, from) {
			return invalidAction("charter flight requires the %s city card", from)
		}
	case ShuttleFlightAction:
		if !gs.hasStation(from) {
			return invalidAction("shuttle flight requires a research station in %s", from)
		}
		if !gs.hasStation(dest) {
			return invalidAction("shuttle flight requires a research station in %s", dest)
		}
	default:
		return invalidAction("%s is not a movement", mode)
	}

	gs.movePlayer(mover, dest)
	return nil
}

// moveTargets lists every city a pawn can reach with one basic movement of the given mode.
func (gs *GameState) moveTargets(mode ActionType, mover int) []string {
	p := gs.Players[mover]
	var targets []string
	switch mode {
	case DriveFerryAction:
		targets = append(targets, gs.Board.Connections(p.Location)...)
	case DirectFlightAction:
		for _, c := range p.Hand {
			if c.Type == CityCard && c.City != p.Location && !utils.Contains(targets, c.City) {
				targets = append(targets, c.City)
			}
		}
	case CharterFlightAction:
		if findCityCard(p.Hand, p.Location) >= 0 {
			for _, name := range gs.Board.names {
				if name != p.Location {
					targets = append(targets, name)
				}
			}
		}
	case ShuttleFlightAction:
		if gs.hasStation(p.Location) {
			for _, name := range gs.Stations() {
				if name != p.Location {
					targets = append(targets, name)
				}
			}
		}
	}
	return targets
}

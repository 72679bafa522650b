package game

import (
	"pandemic/meta"
	"pandemic/utils"
)

// treat removes one cube, or every cube of the color when the actor is a Medic or the disease is cured.
func (gs *GameState) treat(color Color) error {
	if !color.Valid() {
		return invalidAction("invalid color %d", int(color))
	}
	p := gs.Current()
	if gs.cubes(p.Location, color) == 0 {
		return invalidAction("no %s cubes in %s", color, p.Location)
	}
	if p.Role == Medic || gs.Cures[color] != Uncured {
		gs.clearCubes(p.Location, color)
	} else {
		gs.removeCube(p.Location, color)
	}
	gs.checkEradication(color)
	return nil
}

// placeStation puts a research station in city, relocating the one in removeFrom when all are in play.
func (gs *GameState) placeStation(city, removeFrom string) error {
	if err := gs.checkCity(city); err != nil {
		return err
	}
	if gs.hasStation(city) {
		return invalidAction("%s already has a research station", city)
	}
	if len(gs.Stations()) >= meta.MAX_RESEARCH_STATIONS {
		if removeFrom == "" {
			return invalidAction("all %d research stations are built: name a station to move", meta.MAX_RESEARCH_STATIONS)
		}
		if !gs.Board.Has(removeFrom) || !gs.hasStation(removeFrom) {
			return invalidAction("no research station in %s to move", removeFrom)
		}
		gs.setStation(removeFrom, false)
	} else if removeFrom != "" {
		return invalidAction("research stations can only be moved once all %d are built", meta.MAX_RESEARCH_STATIONS)
	}
	gs.setStation(city, true)
	return nil
}

// build places a station in the current city. The Operations Expert needs no card.
func (gs *GameState) build(removeFrom string) error {
	p := gs.Current()
	city := p.Location
	if gs.hasStation(city) {
		return invalidAction("%s already has a research station", city)
	}
	if p.Role != OperationsExpert && !gs.discardCity(gs.CurrentPlayer, city) {
		return invalidAction("building a research station requires the %s city card", city)
	}
	return gs.placeStation(city, removeFrom)
}

// canShare reports whether a city card may change hands between two players in city.
func canShare(giver, receiver Player, card string) bool {
	if giver.Role == Researcher || receiver.Role == Researcher {
		return true
	}
	return card == giver.Location
}

// share gives a city card to another player in the same city, or takes one from them.
func (gs *GameState) share(other int, card string, take bool) error {
	if err := gs.checkPlayer(other); err != nil {
		return err
	}
	if other == gs.CurrentPlayer {
		return invalidAction("cannot share knowledge with yourself")
	}
	me := gs.Players[gs.CurrentPlayer]
	them := gs.Players[other]
	if me.Location != them.Location {
		return invalidAction("%s is in %s, not in %s", them.Role, them.Location, me.Location)
	}

	giverIdx, receiverIdx := gs.CurrentPlayer, other
	if take {
		giverIdx, receiverIdx = other, gs.CurrentPlayer
	}
	giver, receiver := gs.Players[giverIdx], gs.Players[receiverIdx]

	i := findCityCard(giver.Hand, card)
	if i < 0 {
		return invalidAction("%s does not hold the %s city card", giver.Role, card)
	}
	if !canShare(giver, receiver, card) {
		return invalidAction("only the %s city card can be shared in %s", me.Location, me.Location)
	}

	c := giver.Hand[i]
	gs.Players[giverIdx].Hand = utils.RemoveAt(giver.Hand, i)
	gs.Players[receiverIdx].Hand = append(gs.Players[receiverIdx].Hand, c)
	return nil
}

// CureCards is the number of same-color city cards the role must discard to cure.
func CureCards(role Role) int {
	if role == Scientist {
		return meta.CURE_CARDS - 1
	}
	return meta.CURE_CARDS
}

// discoverCure discards the cure cards at a research station and cures the disease.
func (gs *GameState) discoverCure(color Color, cards []string) error {
	if !color.Valid() {
		return invalidAction("invalid color %d", int(color))
	}
	p := gs.Current()
	if !gs.hasStation(p.Location) {
		return invalidAction("discovering a cure requires a research station in %s", p.Location)
	}
	if gs.Cures[color] != Uncured {
		return invalidAction("the %s disease is already %s", color, gs.Cures[color])
	}

	need := CureCards(p.Role)
	var chosen []string
	if len(cards) > 0 {
		if len(cards) != need {
			return invalidAction("a %s cure needs exactly %d cards, got %d", color, need, len(cards))
		}
		for _, name := range cards {
			if utils.Contains(chosen, name) {
				return invalidAction("card %s listed twice", name)
			}
			i := findCityCard(p.Hand, name)
			if i < 0 {
				return invalidAction("%s does not hold the %s city card", p.Role, name)
			}
			if p.Hand[i].Color != color {
				return invalidAction("%s is not a %s card", name, color)
			}
			chosen = append(chosen, name)
		}
	} else {
		for _, c := range p.Hand {
			if c.Type == CityCard && c.Color == color && len(chosen) < need {
				chosen = append(chosen, c.City)
			}
		}
		if len(chosen) < need {
			return invalidAction("a %s cure needs %d %s cards, %s holds %d", color, need, color, p.Role, len(chosen))
		}
	}

	for _, name := range chosen {
		gs.discardCity(gs.CurrentPlayer, name)
	}
	gs.Cures[color] = Cured
	gs.checkEradication(color)
	gs.medicsClear()
	gs.checkWin()
	return nil
}

package game

import (
	"pandemic/meta"
	"pandemic/utils"
)

var movementModes = []ActionType{DriveFerryAction, DirectFlightAction, CharterFlightAction, ShuttleFlightAction}

// GetAvailableActions lists every action the current player can take. Empty outside the Actions phase.
func GetAvailableActions(gs *GameState) []Action {
	if gs.Status != Ongoing || gs.Phase != ActionsPhase || gs.ActionsRemaining <= 0 {
		return []Action{}
	}
	me := gs.CurrentPlayer
	p := gs.Players[me]
	actions := []Action{}

	// Movement
	for _, mode := range movementModes {
		for _, dest := range gs.moveTargets(mode, me) {
			actions = append(actions, Action{Type: mode, Destination: dest})
		}
	}

	// Treat
	for _, color := range Colors() {
		if gs.cubes(p.Location, color) > 0 {
			actions = append(actions, Action{Type: TreatDiseaseAction, Color: color})
		}
	}

	// Build
	if !gs.hasStation(p.Location) && (p.Role == OperationsExpert || findCityCard(p.Hand, p.Location) >= 0) {
		stations := gs.Stations()
		if len(stations) < meta.MAX_RESEARCH_STATIONS {
			actions = append(actions, Action{Type: BuildStationAction})
		} else {
			for _, s := range stations {
				actions = append(actions, Action{Type: BuildStationAction, RemoveFrom: s})
			}
		}
	}

	// Share
	for _, other := range gs.PlayersAt(p.Location) {
		if other == me {
			continue
		}
		them := gs.Players[other]
		for _, c := range p.Hand {
			if c.Type == CityCard && canShare(p, them, c.City) {
				actions = append(actions, Action{Type: ShareKnowledgeAction, Player: other, Card: c.City})
			}
		}
		for _, c := range them.Hand {
			if c.Type == CityCard && canShare(them, p, c.City) {
				actions = append(actions, Action{Type: ShareKnowledgeAction, Player: other, Card: c.City, Take: true})
			}
		}
	}

	// Cure
	if gs.hasStation(p.Location) {
		for _, color := range Colors() {
			if gs.Cures[color] == Uncured && cardsForColor(p.Hand, color) >= CureCards(p.Role) {
				actions = append(actions, Action{Type: DiscoverCureAction, Color: color})
			}
		}
	}

	// Roles
	switch p.Role {
	case Dispatcher:
		actions = append(actions, gs.dispatchActions()...)
	case OperationsExpert:
		if !gs.OperationsMoveUsed && gs.hasStation(p.Location) {
			var cards []string
			for _, c := range p.Hand {
				if c.Type == CityCard && !utils.Contains(cards, c.City) {
					cards = append(cards, c.City)
				}
			}
			for _, card := range cards {
				for _, dest := range gs.Board.names {
					if dest != p.Location {
						actions = append(actions, Action{Type: OperationsFlightAction, Card: card, Destination: dest})
					}
				}
			}
		}
	case ContingencyPlanner:
		if p.StoredEvent == nil {
			var seen []EventKind
			for _, c := range gs.PlayerDiscard {
				if c.Type == EventCard && !utils.Contains(seen, c.Event) {
					seen = append(seen, c.Event)
					actions = append(actions, Action{Type: RetrieveEventAction, Event: c.Event})
				}
			}
		}
	}

	return append(actions, Action{Type: PassAction})
}

func (gs *GameState) dispatchActions() []Action {
	var actions []Action
	for target, tp := range gs.Players {
		var dests []string
		for _, other := range gs.Players {
			if other.Location != tp.Location && !utils.Contains(dests, other.Location) {
				dests = append(dests, other.Location)
			}
		}
		for _, dest := range dests {
			actions = append(actions, Action{Type: DispatchPawnAction, Player: target, Destination: dest})
		}
	}
	for target := range gs.Players {
		if target == gs.CurrentPlayer {
			continue
		}
		for _, mode := range movementModes {
			for _, dest := range gs.moveTargets(mode, target) {
				actions = append(actions, Action{Type: DispatchMoveAction, Player: target, Mode: mode, Destination: dest})
			}
		}
	}
	return actions
}

// EventOption is an event card a player can play right now.
type EventOption struct {
	Player int
	Event  EventKind
	Stored bool // Played from the Contingency Planner's slot
}

// AvailableEvents lists the event cards every player holds. Events are playable in any phase.
func AvailableEvents(gs *GameState) []EventOption {
	if gs.Status != Ongoing {
		return []EventOption{}
	}
	options := []EventOption{}
	for i, p := range gs.Players {
		for _, c := range p.Hand {
			if c.Type == EventCard {
				options = append(options, EventOption{Player: i, Event: c.Event})
			}
		}
		if p.StoredEvent != nil {
			options = append(options, EventOption{Player: i, Event: p.StoredEvent.Event, Stored: true})
		}
	}
	return options
}

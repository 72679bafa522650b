package game

import (
	"strings"

	"pandemic/meta"
)

// PerformAction applies one action of the current player and returns the new state.
// The Actions phase ends by itself once the last action is spent.
func PerformAction(gs *GameState, a Action) (*GameState, error) {
	if err := gs.checkOngoing(); err != nil {
		return nil, err
	}
	if gs.Phase != ActionsPhase {
		return nil, invalidPhase("actions can only be performed in the %s phase, not in %s", ActionsPhase, gs.Phase)
	}
	if gs.ActionsRemaining <= 0 {
		return nil, invalidAction("no actions remaining")
	}

	next := gs.Copy()
	if err := next.apply(a); err != nil {
		return nil, err
	}
	if a.Type == PassAction {
		next.ActionsRemaining = 0
	} else {
		next.ActionsRemaining--
	}
	if next.Status == Ongoing && next.ActionsRemaining == 0 {
		next.Phase = DrawPhase
		next.CardsDrawn = false
	}
	return next, nil
}

func (gs *GameState) apply(a Action) error {
	switch a.Type {
	case DriveFerryAction, DirectFlightAction, CharterFlightAction, ShuttleFlightAction:
		return gs.move(a.Type, gs.CurrentPlayer, a.Destination)
	case BuildStationAction:
		return gs.build(a.RemoveFrom)
	case TreatDiseaseAction:
		return gs.treat(a.Color)
	case ShareKnowledgeAction:
		return gs.share(a.Player, a.Card, a.Take)
	case DiscoverCureAction:
		return gs.discoverCure(a.Color, a.Cards)
	case DispatchPawnAction:
		return gs.dispatchPawn(a.Player, a.Destination)
	case DispatchMoveAction:
		return gs.dispatchMove(a.Player, a.Mode, a.Destination)
	case OperationsFlightAction:
		return gs.operationsFlight(a.Card, a.Destination)
	case RetrieveEventAction:
		return gs.retrieveEvent(a.Event)
	case PassAction:
		return nil
	}
	return invalidAction("unknown action type %d", int(a.Type))
}

// DrawOutcome lists the cards taken in a Draw phase and the epidemics they set off.
type DrawOutcome struct {
	Cards     []PlayerCard
	Epidemics []EpidemicResult
	Discard   []int // Players that must discard down to the hand limit
}

// DrawCards takes two player cards for the current player, resolving epidemics as they come up.
// A player deck with fewer than two cards loses the game instead of failing.
func DrawCards(gs *GameState, rng Shuffler) (*GameState, DrawOutcome, error) {
	var out DrawOutcome
	if err := gs.checkOngoing(); err != nil {
		return nil, out, err
	}
	if gs.Phase != DrawPhase {
		return nil, out, invalidPhase("cards can only be drawn in the %s phase, not in %s", DrawPhase, gs.Phase)
	}
	if gs.CardsDrawn {
		if i, over := gs.HandOverLimit(); over {
			return nil, out, invalidPhase("cards already drawn: %s must discard down to %d cards", gs.Players[i].Role, meta.HAND_LIMIT)
		}
		return nil, out, invalidPhase("cards already drawn this turn")
	}

	next := gs.Copy()
	if len(next.PlayerDeck) < meta.CARDS_PER_DRAW {
		next.lose()
		return next, out, nil
	}
	p := next.Current()
	for i := 0; i < meta.CARDS_PER_DRAW && next.Status == Ongoing; i++ {
		card := next.PlayerDeck[0]
		next.PlayerDeck = next.PlayerDeck[1:]
		out.Cards = append(out.Cards, card)
		if card.Type != EpidemicCard {
			p.Hand = append(p.Hand, card)
			continue
		}
		next.PlayerDiscard = append(next.PlayerDiscard, card)
		res, err := next.resolveEpidemic(rng)
		if err != nil {
			return nil, DrawOutcome{}, err
		}
		out.Epidemics = append(out.Epidemics, res)
	}
	next.PlayerDeck = cloneSlice(next.PlayerDeck)
	next.CardsDrawn = true
	next.resolveHandLimit()
	out.Discard = next.overLimit()
	return next, out, nil
}

func (gs *GameState) overLimit() []int {
	var idx []int
	for i, p := range gs.Players {
		if len(p.Hand) > meta.HAND_LIMIT {
			idx = append(idx, i)
		}
	}
	return idx
}

// resolveHandLimit moves Draw to Infect once the cards are drawn and every hand is within the limit.
func (gs *GameState) resolveHandLimit() bool {
	if gs.Status != Ongoing || gs.Phase != DrawPhase || !gs.CardsDrawn {
		return false
	}
	if _, over := gs.HandOverLimit(); over {
		return false
	}
	gs.Phase = InfectPhase
	gs.CardsDrawn = false
	return true
}

// ResolveHandLimit returns a state advanced to the Infect phase when the Draw phase has nothing left to wait for.
// The boolean reports whether the phase changed.
func ResolveHandLimit(gs *GameState) (*GameState, bool) {
	next := gs.Copy()
	return next, next.resolveHandLimit()
}

// InfectCities runs the Infect phase and hands the turn to the next player, even when the infection lost the game.
func InfectCities(gs *GameState) (*GameState, InfectionResult, error) {
	if err := gs.checkOngoing(); err != nil {
		return nil, InfectionResult{}, err
	}
	if gs.Phase != InfectPhase {
		return nil, InfectionResult{}, invalidPhase("cities can only be infected in the %s phase, not in %s", InfectPhase, gs.Phase)
	}
	next, res, err := ExecuteInfectionPhase(gs)
	if err != nil {
		return nil, InfectionResult{}, err
	}
	next.endTurn()
	return next, res, nil
}

func (gs *GameState) endTurn() {
	gs.CurrentPlayer = (gs.CurrentPlayer + 1) % len(gs.Players)
	gs.Turn++
	gs.Phase = ActionsPhase
	gs.ActionsRemaining = meta.ACTIONS_PER_TURN
	gs.OperationsMoveUsed = false
	gs.CardsDrawn = false
}

// PlayEvent plays an event card held by a player, from their hand or their stored slot, in any phase.
// Events never cost an action and never advance the phase.
func PlayEvent(gs *GameState, playerIdx int, params EventParams) (*GameState, error) {
	if err := gs.checkOngoing(); err != nil {
		return nil, err
	}
	if err := gs.checkPlayer(playerIdx); err != nil {
		return nil, err
	}
	if !params.Event.Valid() {
		return nil, invalidAction("unknown event %d", int(params.Event))
	}
	handIdx, stored := gs.eventSource(playerIdx, params.Event)
	if handIdx < 0 && !stored {
		return nil, invalidAction("%s does not hold the %s event", gs.Players[playerIdx].Role, params.Event)
	}

	next := gs.Copy()
	if err := next.applyEvent(params); err != nil {
		return nil, err
	}
	if stored {
		// A stored event leaves the game once played.
		next.Players[playerIdx].StoredEvent = nil
	} else {
		next.discardAt(playerIdx, handIdx)
	}
	return next, nil
}

// Discard drops a city or event card from a hand, by city or event name. Legal in any phase.
// A Draw phase waiting on the hand limit advances once every hand fits.
func Discard(gs *GameState, playerIdx int, card string) (*GameState, error) {
	if err := gs.checkOngoing(); err != nil {
		return nil, err
	}
	if err := gs.checkPlayer(playerIdx); err != nil {
		return nil, err
	}
	hand := gs.Players[playerIdx].Hand
	i := findCityCard(hand, card)
	if i < 0 {
		if kind, err := ParseEvent(card); err == nil {
			i = findEventCard(hand, kind)
		}
	}
	if i < 0 {
		return nil, invalidAction("%s does not hold %q", gs.Players[playerIdx].Role, strings.TrimSpace(card))
	}

	next := gs.Copy()
	next.discardAt(playerIdx, i)
	next.resolveHandLimit()
	return next, nil
}

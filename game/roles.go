package game

import "pandemic/utils"

// dispatchPawn moves any pawn to a city that already holds another pawn.
func (gs *GameState) dispatchPawn(target int, dest string) error {
	if gs.Current().Role != Dispatcher {
		return invalidAction("only the %s can dispatch pawns", Dispatcher)
	}
	if err := gs.checkPlayer(target); err != nil {
		return err
	}
	if err := gs.checkCity(dest); err != nil {
		return err
	}
	if gs.Players[target].Location == dest {
		return invalidAction("%s is already in %s", gs.Players[target].Role, dest)
	}
	occupied := false
	for _, i := range gs.PlayersAt(dest) {
		if i != target {
			occupied = true
			break
		}
	}
	if !occupied {
		return invalidAction("no other pawn stands in %s", dest)
	}
	gs.movePlayer(target, dest)
	return nil
}

// dispatchMove moves another player's pawn with a basic movement paid from that player's hand.
func (gs *GameState) dispatchMove(target int, mode ActionType, dest string) error {
	if gs.Current().Role != Dispatcher {
		return invalidAction("only the %s can move other pawns", Dispatcher)
	}
	if err := gs.checkPlayer(target); err != nil {
		return err
	}
	if target == gs.CurrentPlayer {
		return invalidAction("use a movement action to move your own pawn")
	}
	if !mode.IsMovement() {
		return invalidAction("%s is not a movement", mode)
	}
	return gs.move(mode, target, dest)
}

// operationsFlight takes the Operations Expert from a research station to any city for any city card.
func (gs *GameState) operationsFlight(card, dest string) error {
	p := gs.Current()
	if p.Role != OperationsExpert {
		return invalidAction("only the %s can fly from a research station with any card", OperationsExpert)
	}
	if gs.OperationsMoveUsed {
		return invalidAction("the operations flight was already used this turn")
	}
	if !gs.hasStation(p.Location) {
		return invalidAction("operations flight requires a research station in %s", p.Location)
	}
	if err := gs.checkCity(dest); err != nil {
		return err
	}
	if dest == p.Location {
		return invalidAction("%s is already in %s", p.Role, dest)
	}
	if !gs.discardCity(gs.CurrentPlayer, card) {
		return invalidAction("%s does not hold the %s city card", p.Role, card)
	}
	gs.OperationsMoveUsed = true
	gs.movePlayer(gs.CurrentPlayer, dest)
	return nil
}

// retrieveEvent moves an event card from the player discard pile to the Contingency Planner's slot.
func (gs *GameState) retrieveEvent(kind EventKind) error {
	p := gs.Current()
	if p.Role != ContingencyPlanner {
		return invalidAction("only the %s can retrieve events", ContingencyPlanner)
	}
	if p.StoredEvent != nil {
		return invalidAction("%s already stores %s", p.Role, p.StoredEvent.Event)
	}
	i := findEventCard(gs.PlayerDiscard, kind)
	if i < 0 {
		return invalidAction("%s is not in the player discard pile", kind)
	}
	card := gs.PlayerDiscard[i]
	gs.PlayerDiscard = utils.RemoveAt(gs.PlayerDiscard, i)
	p.StoredEvent = &card
	return nil
}

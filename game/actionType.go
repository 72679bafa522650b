package game

import "fmt"

// ActionType represents the type of action a player can perform.
type ActionType int

const (
	DriveFerryAction ActionType = iota
	DirectFlightAction
	CharterFlightAction
	ShuttleFlightAction
	BuildStationAction
	TreatDiseaseAction
	ShareKnowledgeAction
	DiscoverCureAction
	DispatchPawnAction // Dispatcher: move a pawn to a city holding another pawn
	DispatchMoveAction // Dispatcher: move another pawn with a basic movement
	OperationsFlightAction
	RetrieveEventAction
	PassAction
)

var actionNames = []string{
	"drive-ferry",
	"direct-flight",
	"charter-flight",
	"shuttle-flight",
	"build-station",
	"treat",
	"share",
	"discover-cure",
	"dispatch-pawn",
	"dispatch-move",
	"operations-flight",
	"retrieve-event",
	"pass",
}

func (t ActionType) String() string {
	if t < 0 || int(t) >= len(actionNames) {
		return fmt.Sprintf("action(%d)", int(t))
	}
	return actionNames[t]
}

// IsMovement reports whether the type is one of the four basic movement actions.
func (t ActionType) IsMovement() bool {
	switch t {
	case DriveFerryAction, DirectFlightAction, CharterFlightAction, ShuttleFlightAction:
		return true
	}
	return false
}

// Action describes one action of the current player. Only the fields used by Type are read.
type Action struct {
	Type        ActionType
	Destination string     // movement, dispatch, operations flight
	Color       Color      // treat, discover cure
	Player      int        // share partner, dispatched pawn
	Card        string     // shared city card, operations flight discard
	Take        bool       // share: take the card from Player instead of giving it
	Cards       []string   // discover cure: explicit city cards, empty picks the first matches
	RemoveFrom  string     // build: station to relocate when all stations are on the board
	Mode        ActionType // dispatch move: movement type to apply
	Event       EventKind  // retrieve event
}

// EventParams carries the arguments of an event card.
type EventParams struct {
	Event       EventKind
	Player      int      // Airlift: pawn to move
	Destination string   // Airlift target, Government Grant city, Resilient Population card
	Order       []string // Forecast: new order of the top infection cards, top first
	RemoveFrom  string   // Government Grant: station to relocate when all stations are on the board
}

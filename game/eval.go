package game

import (
	"math"

	"pandemic/meta"
)

// Threat summarises how close a game is to being lost. Every pressure is between 0 (calm) and 1 (lost).
type Threat struct {
	Outbreaks float64            // Outbreak track against its limit
	Supply    [NumColors]float64 // Cubes on the board against the supply of each color
	HotSpots  []string           // Cities one cube away from an outbreak, in board order
	TurnsLeft int                // Draw phases the player deck can still pay for
	Score     float64
}

// Evaluate scores the state from the players' perspective. Terminal states score 0 (won) or 1 (lost).
func Evaluate(gs *GameState) Threat {
	t := Threat{
		Outbreaks: ratio(float64(gs.OutbreakCount), meta.MAX_OUTBREAKS),
		HotSpots:  gs.hotSpots(),
		TurnsLeft: len(gs.PlayerDeck) / meta.CARDS_PER_DRAW,
	}
	worstSupply := 0.0
	for _, color := range Colors() {
		if gs.Cures[color] == Eradicated {
			continue
		}
		t.Supply[color] = ratio(float64(gs.CubesOnBoard(color)), meta.CUBES_PER_COLOR)
		worstSupply = math.Max(worstSupply, t.Supply[color])
	}

	switch gs.Status {
	case Won:
		t.Score = 0
	case Lost:
		t.Score = 1
	default:
		deck := 1 / float64(1+t.TurnsLeft)
		spots := ratio(float64(len(t.HotSpots)), float64(len(gs.Board.names)))
		t.Score = (t.Outbreaks + worstSupply + deck + spots) / 4
	}
	return t
}

// hotSpots lists the cities holding the maximum number of cubes of a color that can still spread.
func (gs *GameState) hotSpots() []string {
	var spots []string
	for _, name := range gs.Board.names {
		for _, color := range Colors() {
			if gs.Cures[color] != Eradicated && gs.cubes(name, color) >= meta.MAX_CUBES_PER_CITY {
				spots = append(spots, name)
				break
			}
		}
	}
	return spots
}

// ratio clamps value/limit to [0, 1]
func ratio(value, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return math.Min(1, math.Max(0, value/limit))
}

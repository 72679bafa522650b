package engine

import "pandemic/game"

type Kind string

const (
	KindAction    Kind = "action"
	KindDraw      Kind = "draw"
	KindEpidemic  Kind = "epidemic"
	KindInfect    Kind = "infect"
	KindOutbreak  Kind = "outbreak"
	KindCure      Kind = "cure"
	KindEradicate Kind = "eradicate"
	KindEvent     Kind = "event"
	KindDiscard   Kind = "discard"
	KindTurn      Kind = "turn"
	KindUndo      Kind = "undo"
	KindWon       Kind = "won"
	KindLost      Kind = "lost"
)

// Entry is one line of the game log. Hash fingerprints the state right after the entry.
type Entry struct {
	Seq     int            `json:"seq"`
	Turn    int            `json:"turn"`
	Player  int            `json:"player"`
	Kind    Kind           `json:"kind"`
	Message string         `json:"message"`
	Hash    game.StateHash `json:"hash"`
}

package engine

import "pandemic/game"

// Engine owns the authoritative state of one game and records everything that happens to it.
// A failed call leaves the state untouched, except where noted on Local.
type Engine interface {
	State() *game.GameState
	Actions() []game.Action
	Events() []game.EventOption
	Do(a game.Action) error
	Draw() error
	Infect() error
	Play(player int, params game.EventParams) error
	Discard(player int, card string) error
	Undo() error
	Log() []Entry
}

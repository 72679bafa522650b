package engine

import (
	"fmt"

	"pandemic/game"
	"pandemic/meta"
	"pandemic/notation"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var _ Engine = (*Local)(nil)

// Local is the in-process Engine. It is not safe for concurrent use.
//
// With auto resolve on (the default) the Draw and Infect phases run by themselves as soon as
// nothing is left for the players to decide. An error during that resolution is returned, but the
// steps that completed before it are kept.
type Local struct {
	state   *game.GameState
	history []*game.GameState
	log     []Entry
	logger  zerolog.Logger
	auto    bool
}

type Option func(*Local)

// WithLogger sends log entries to l instead of the global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Local) {
		e.logger = l
	}
}

// WithAutoResolve turns automatic Draw and Infect resolution on or off.
func WithAutoResolve(on bool) Option {
	return func(e *Local) {
		e.auto = on
	}
}

func NewLocal(gs *game.GameState, opts ...Option) *Local {
	e := &Local{
		state:  gs,
		logger: log.Logger,
		auto:   true,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger.Info().Msgf("game started: %s, %s to play", gs.Config, gs.Current().Role)
	return e
}

// State returns a copy of the current state.
func (e *Local) State() *game.GameState {
	return e.state.Copy()
}

func (e *Local) Actions() []game.Action {
	return game.GetAvailableActions(e.state)
}

func (e *Local) Events() []game.EventOption {
	return game.AvailableEvents(e.state)
}

// Log returns a copy of every entry so far.
func (e *Local) Log() []Entry {
	return append([]Entry(nil), e.log...)
}

// rng derives the shuffle source from the game seed and the current state, so replaying a
// state always shuffles the same way.
func (e *Local) rng() game.Shuffler {
	return game.NewRand(e.state.Config.Seed ^ uint64(e.state.Hash()))
}

func (e *Local) commit(next *game.GameState) *game.GameState {
	prev := e.state
	e.history = append(e.history, prev)
	e.state = next
	return prev
}

func (e *Local) record(turn, player int, kind Kind, format string, args ...any) {
	entry := Entry{
		Seq:     len(e.log) + 1,
		Turn:    turn,
		Player:  player,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Hash:    e.state.Hash(),
	}
	e.log = append(e.log, entry)

	ev := e.logger.Info()
	if kind == KindLost || kind == KindOutbreak || kind == KindEpidemic {
		ev = e.logger.Warn()
	}
	ev.Int("seq", entry.Seq).
		Int("turn", entry.Turn).
		Int("player", entry.Player).
		Str("kind", string(entry.Kind)).
		Str("hash", fmt.Sprintf("%016x", uint64(entry.Hash))).
		Msg(entry.Message)
}

// sideEffects records cures, eradications and the end of the game between two states.
func (e *Local) sideEffects(prev, next *game.GameState, player int) {
	for _, color := range game.Colors() {
		if prev.Cures[color] == game.Uncured && next.Cures[color] != game.Uncured {
			e.record(prev.Turn, player, KindCure, "%s disease cured", color)
		}
		if prev.Cures[color] != game.Eradicated && next.Cures[color] == game.Eradicated {
			e.record(prev.Turn, player, KindEradicate, "%s disease eradicated", color)
		}
	}
	if prev.Status == game.Ongoing && next.Status == game.Won {
		e.record(prev.Turn, player, KindWon, "all four diseases cured")
	}
	if prev.Status == game.Ongoing && next.Status == game.Lost {
		e.record(prev.Turn, player, KindLost, "%s", lossReason(next))
	}
}

func lossReason(gs *game.GameState) string {
	if gs.OutbreakCount >= meta.MAX_OUTBREAKS {
		return fmt.Sprintf("%d outbreaks", gs.OutbreakCount)
	}
	for _, color := range game.Colors() {
		if gs.CubeSupply[color] == 0 {
			return fmt.Sprintf("out of %s cubes", color)
		}
	}
	if len(gs.PlayerDeck) < meta.CARDS_PER_DRAW {
		return "player deck exhausted"
	}
	return "not enough cubes left"
}

func (e *Local) Do(a game.Action) error {
	next, err := game.PerformAction(e.state, a)
	if err != nil {
		return err
	}
	prev := e.commit(next)
	e.record(prev.Turn, prev.CurrentPlayer, KindAction, "%s", notation.Format(a))
	e.sideEffects(prev, next, prev.CurrentPlayer)
	return e.advance()
}

func (e *Local) Draw() error {
	if err := e.draw(); err != nil {
		return err
	}
	return e.advance()
}

func (e *Local) draw() error {
	next, out, err := game.DrawCards(e.state, e.rng())
	if err != nil {
		return err
	}
	prev := e.commit(next)
	player := prev.CurrentPlayer

	epidemic := 0
	for _, card := range out.Cards {
		if card.Type != game.EpidemicCard {
			e.record(prev.Turn, player, KindDraw, "drew %s", card)
			continue
		}
		res := out.Epidemics[epidemic]
		epidemic++
		if res.Skipped {
			e.record(prev.Turn, player, KindEpidemic, "epidemic in %s, no %s cubes placed", res.City, res.Color)
		} else {
			e.record(prev.Turn, player, KindEpidemic, "epidemic in %s (%s)", res.City, res.Color)
		}
		for _, city := range res.Outbreaks {
			e.record(prev.Turn, player, KindOutbreak, "outbreak in %s", city)
		}
	}
	for _, i := range out.Discard {
		e.logger.Info().Msgf("%s holds %d cards and must discard down to %d", next.Players[i].Role, len(next.Players[i].Hand), meta.HAND_LIMIT)
	}
	e.sideEffects(prev, next, player)
	return nil
}

func (e *Local) Infect() error {
	if err := e.infect(); err != nil {
		return err
	}
	return e.advance()
}

func (e *Local) infect() error {
	next, res, err := game.InfectCities(e.state)
	if err != nil {
		return err
	}
	prev := e.commit(next)
	player := prev.CurrentPlayer

	if res.Skipped {
		e.record(prev.Turn, player, KindInfect, "one quiet night: no infection")
	}
	for _, card := range res.Cards {
		e.record(prev.Turn, player, KindInfect, "infected %s", card)
	}
	for _, city := range res.Outbreaks {
		e.record(prev.Turn, player, KindOutbreak, "outbreak in %s", city)
	}
	e.sideEffects(prev, next, player)
	if next.Status == game.Ongoing {
		e.record(next.Turn, next.CurrentPlayer, KindTurn, "turn %d: %s to play", next.Turn, next.Current().Role)
	}
	return nil
}

func (e *Local) Play(player int, params game.EventParams) error {
	next, err := game.PlayEvent(e.state, player, params)
	if err != nil {
		return err
	}
	prev := e.commit(next)
	e.record(prev.Turn, player, KindEvent, "%s", notation.FormatEvent(params))
	e.sideEffects(prev, next, player)
	return e.advance()
}

func (e *Local) Discard(player int, card string) error {
	next, err := game.Discard(e.state, player, card)
	if err != nil {
		return err
	}
	prev := e.commit(next)
	e.record(prev.Turn, player, KindDiscard, "%s discarded %s", prev.Players[player].Role, card)
	return e.advance()
}

// Undo restores the state before the last change. Automatic draws and infections are undone one step at a time.
// A finished game cannot be undone.
func (e *Local) Undo() error {
	if e.state.Status.Terminal() {
		return game.ErrGameOver
	}
	if len(e.history) == 0 {
		return game.NewError(game.KindInvalidAction, "nothing to undo")
	}
	last := len(e.history) - 1
	e.state = e.history[last]
	e.history = e.history[:last]
	e.record(e.state.Turn, e.state.CurrentPlayer, KindUndo, "state restored")
	return nil
}

// advance resolves the phases that need no decision while auto resolve is on.
func (e *Local) advance() error {
	if !e.auto {
		return nil
	}
	if next, ok := game.ResolveHandLimit(e.state); ok {
		e.commit(next)
		e.record(next.Turn, next.CurrentPlayer, KindTurn, "every hand within %d cards, %s phase", meta.HAND_LIMIT, next.Phase)
	}
	for e.state.Status == game.Ongoing {
		switch {
		case e.state.Phase == game.DrawPhase && !e.state.CardsDrawn:
			if err := e.draw(); err != nil {
				return err
			}
		case e.state.Phase == game.InfectPhase:
			if err := e.infect(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

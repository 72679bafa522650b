package engine

import (
	"bytes"
	"testing"

	"pandemic/game"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newGame(t *testing.T, seed uint64) *game.GameState {
	t.Helper()
	cfg := game.Config{
		NumPlayers: 2,
		Difficulty: 4,
		Roles:      []game.Role{game.Scientist, game.Medic},
		Seed:       seed,
	}
	gs, err := game.CreateGame(game.StandardBoard(), cfg, game.NewRand(seed))
	require.NoError(t, err)
	return gs
}

func newEngine(t *testing.T, opts ...Option) *Local {
	t.Helper()
	opts = append([]Option{WithLogger(zerolog.Nop())}, opts...)
	return NewLocal(newGame(t, 42), opts...)
}

func kinds(entries []Entry) []Kind {
	out := make([]Kind, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Kind)
	}
	return out
}

func TestLocalAutoResolve(t *testing.T) {
	e := newEngine(t)

	require.NoError(t, e.Do(game.Action{Type: game.PassAction}))

	gs := e.State()
	require.Equal(t, game.Ongoing, gs.Status)
	require.Equal(t, 2, gs.Turn)
	require.Equal(t, 1, gs.CurrentPlayer)
	require.Equal(t, game.ActionsPhase, gs.Phase)

	entries := e.Log()
	require.NotEmpty(t, entries)
	require.Equal(t, KindAction, entries[0].Kind)
	require.Equal(t, "pass", entries[0].Message)
	require.Equal(t, KindTurn, entries[len(entries)-1].Kind)
	require.Contains(t, kinds(entries), KindInfect)
	for i, entry := range entries {
		require.Equal(t, i+1, entry.Seq)
	}
	require.Equal(t, gs.Hash(), entries[len(entries)-1].Hash)
}

func TestLocalManualPhases(t *testing.T) {
	e := newEngine(t, WithAutoResolve(false))

	require.NoError(t, e.Do(game.Action{Type: game.PassAction}))
	require.Equal(t, game.DrawPhase, e.State().Phase)

	err := e.Infect()
	require.ErrorIs(t, err, game.ErrInvalidPhase)

	require.NoError(t, e.Draw())
	require.Equal(t, game.InfectPhase, e.State().Phase)
	require.Equal(t, 1, e.State().Turn)

	require.NoError(t, e.Infect())
	gs := e.State()
	require.Equal(t, game.ActionsPhase, gs.Phase)
	require.Equal(t, 2, gs.Turn)
	require.Equal(t, 1, gs.CurrentPlayer)
}

func TestLocalRejectsIllegalAction(t *testing.T) {
	e := newEngine(t)
	before := e.State().Hash()
	logged := len(e.Log())

	err := e.Do(game.Action{Type: game.DriveFerryAction, Destination: "Tokyo"})

	require.ErrorIs(t, err, game.ErrInvalidAction)
	require.Equal(t, before, e.State().Hash())
	require.Len(t, e.Log(), logged)
}

func TestLocalGameOver(t *testing.T) {
	gs := newGame(t, 42)
	gs.Status = game.Lost
	e := NewLocal(gs, WithLogger(zerolog.Nop()))

	require.ErrorIs(t, e.Do(game.Action{Type: game.PassAction}), game.ErrGameOver)
	require.ErrorIs(t, e.Draw(), game.ErrGameOver)
	require.ErrorIs(t, e.Infect(), game.ErrGameOver)
	require.Empty(t, e.Actions())
}

func TestLocalUndo(t *testing.T) {
	t.Run("nothing to undo", func(t *testing.T) {
		e := newEngine(t)
		require.ErrorIs(t, e.Undo(), game.ErrInvalidAction)
	})

	t.Run("restores the previous state", func(t *testing.T) {
		e := newEngine(t)
		start := e.State().Hash()

		require.NoError(t, e.Do(game.Action{Type: game.DriveFerryAction, Destination: "Chicago"}))
		require.Equal(t, "Chicago", e.State().Players[0].Location)

		require.NoError(t, e.Undo())
		require.Equal(t, start, e.State().Hash())
		require.Equal(t, "Atlanta", e.State().Players[0].Location)

		entries := e.Log()
		require.Equal(t, KindUndo, entries[len(entries)-1].Kind)
	})

	t.Run("finished game", func(t *testing.T) {
		e := newEngine(t)
		require.NoError(t, e.Do(game.Action{Type: game.DriveFerryAction, Destination: "Chicago"}))
		e.state.Status = game.Lost
		logged := len(e.Log())

		require.ErrorIs(t, e.Undo(), game.ErrGameOver)
		require.Equal(t, game.Lost, e.State().Status)
		require.Len(t, e.Log(), logged)
	})

	t.Run("steps back through automatic phases", func(t *testing.T) {
		e := newEngine(t)
		require.NoError(t, e.Do(game.Action{Type: game.PassAction}))

		require.NoError(t, e.Undo())
		require.Equal(t, game.InfectPhase, e.State().Phase)
		require.NoError(t, e.Undo())
		require.Equal(t, game.DrawPhase, e.State().Phase)
		require.NoError(t, e.Undo())
		require.Equal(t, game.ActionsPhase, e.State().Phase)
		require.Equal(t, 1, e.State().Turn)
	})
}

func TestLocalStateIsACopy(t *testing.T) {
	e := newEngine(t)

	gs := e.State()
	gs.Players[0].Location = "Tokyo"
	gs.OutbreakCount = 5

	require.Equal(t, "Atlanta", e.State().Players[0].Location)
	require.Equal(t, 0, e.State().OutbreakCount)
}

func TestLocalDeterministic(t *testing.T) {
	play := func() []Entry {
		e := newEngine(t)
		for i := 0; i < 3; i++ {
			if e.State().Status != game.Ongoing {
				break
			}
			require.NoError(t, e.Do(game.Action{Type: game.PassAction}))
		}
		return e.Log()
	}

	require.Equal(t, play(), play())
}

func TestLocalLogger(t *testing.T) {
	var buf bytes.Buffer
	e := NewLocal(newGame(t, 42), WithLogger(zerolog.New(&buf)), WithAutoResolve(false))

	require.NoError(t, e.Do(game.Action{Type: game.DriveFerryAction, Destination: "Chicago"}))

	out := buf.String()
	require.Contains(t, out, `"kind":"action"`)
	require.Contains(t, out, `"message":"drive-ferry:Chicago"`)
	require.Contains(t, out, `"turn":1`)
}

// overLimit returns a game waiting in the Draw phase because the first player holds seven city cards
// and One Quiet Night.
func overLimit(t *testing.T) *game.GameState {
	t.Helper()
	gs := newGame(t, 42)
	gs.Phase = game.DrawPhase
	gs.ActionsRemaining = 0
	gs.CardsDrawn = true

	hand := []game.PlayerCard{game.NewEventCard(game.OneQuietNight)}
	deck := []game.PlayerCard{}
	for _, card := range append(gs.Players[0].Hand, gs.PlayerDeck...) {
		switch {
		case card.IsEvent(game.OneQuietNight):
		case card.Type == game.CityCard && len(hand) < 8:
			hand = append(hand, card)
		default:
			deck = append(deck, card)
		}
	}
	gs.Players[0].Hand = hand
	gs.PlayerDeck = deck
	require.Len(t, gs.Players[0].Hand, 8)
	return gs
}

func TestLocalHandLimit(t *testing.T) {
	t.Run("discard", func(t *testing.T) {
		e := NewLocal(overLimit(t), WithLogger(zerolog.Nop()))

		require.NoError(t, e.Discard(0, e.State().Players[0].Hand[1].String()))

		require.Equal(t, KindDiscard, e.Log()[0].Kind)
		require.Equal(t, 2, e.State().Turn)
	})

	t.Run("event played from the hand", func(t *testing.T) {
		gs := overLimit(t)
		e := NewLocal(gs, WithLogger(zerolog.Nop()))

		require.NoError(t, e.Play(0, game.EventParams{Event: game.OneQuietNight}))

		entries := e.Log()
		require.Equal(t, KindEvent, entries[0].Kind)
		require.Equal(t, KindTurn, entries[1].Kind)
		require.Equal(t, "every hand within 7 cards, Infect phase", entries[1].Message)
		require.Equal(t, KindInfect, entries[2].Kind)
		require.Equal(t, 2, e.State().Turn)

		require.NoError(t, e.Undo())
		require.Equal(t, game.InfectPhase, e.State().Phase)

		require.NoError(t, e.Undo())
		undone := e.State()
		require.Equal(t, game.DrawPhase, undone.Phase)
		require.True(t, undone.CardsDrawn)
		require.Len(t, undone.Players[0].Hand, 7)
		require.True(t, undone.SkipNextInfection)

		require.NoError(t, e.Undo())
		require.Equal(t, gs.Hash(), e.State().Hash())
	})
}

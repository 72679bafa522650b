package gamemaster

import (
	"context"
	"errors"
	"sync"
	"testing"

	"pandemic/engine"
	"pandemic/game"
	"pandemic/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(storage.NewMemoryStore(), WithLogger(zerolog.Nop()))
}

var testConfig = game.Config{
	NumPlayers: 2,
	Difficulty: 4,
	Roles:      []game.Role{game.Researcher, game.Medic},
	Seed:       7,
}

func pass(e engine.Engine) error {
	return e.Do(game.Action{Type: game.PassAction})
}

// step discards the first card of a hand over the limit, otherwise passes.
func step(e engine.Engine) error {
	gs := e.State()
	if gs.Status != game.Ongoing {
		return nil
	}
	if i, over := gs.HandOverLimit(); over {
		return e.Discard(i, gs.Players[i].Hand[0].String())
	}
	return pass(e)
}

func TestNewSeed(t *testing.T) {
	a, err := NewSeed()
	require.NoError(t, err)
	b, err := NewSeed()
	require.NoError(t, err)
	require.NotZero(t, a)
	require.NotEqual(t, a, b)
}

func TestCreate(t *testing.T) {
	t.Run("fixed seed deals the same game", func(t *testing.T) {
		m := newManager(t)
		id1, err := m.Create(testConfig)
		require.NoError(t, err)
		id2, err := m.Create(testConfig)
		require.NoError(t, err)
		require.NotEqual(t, id1, id2)

		gs1, err := m.Get(id1)
		require.NoError(t, err)
		gs2, err := m.Get(id2)
		require.NoError(t, err)
		require.Equal(t, gs1.Hash(), gs2.Hash())
		require.Equal(t, uint64(7), gs1.Config.Seed)
	})

	t.Run("zero seed is replaced", func(t *testing.T) {
		m := newManager(t)
		cfg := testConfig
		cfg.Seed = 0

		id, err := m.Create(cfg)
		require.NoError(t, err)
		gs, err := m.Get(id)
		require.NoError(t, err)
		require.NotZero(t, gs.Config.Seed)
	})

	t.Run("invalid config", func(t *testing.T) {
		m := newManager(t)
		cfg := testConfig
		cfg.NumPlayers = 5

		_, err := m.Create(cfg)
		require.ErrorIs(t, err, game.ErrInvalidAction)
		require.Empty(t, m.Sessions())
	})
}

func TestUnknownSession(t *testing.T) {
	m := newManager(t)

	_, err := m.Get("missing")
	require.ErrorIs(t, err, ErrNoSession)
	require.ErrorIs(t, m.Do("missing", pass), ErrNoSession)
	_, err = m.Log("missing")
	require.ErrorIs(t, err, ErrNoSession)
	require.ErrorIs(t, m.Save(context.Background(), "missing", "slot"), ErrNoSession)
	require.ErrorIs(t, m.Close("missing"), ErrNoSession)
}

func TestDo(t *testing.T) {
	m := newManager(t)
	id, err := m.Create(testConfig)
	require.NoError(t, err)

	require.NoError(t, m.Do(id, pass))

	gs, err := m.Get(id)
	require.NoError(t, err)
	require.Equal(t, 2, gs.Turn)

	entries, err := m.Log(id)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	require.Equal(t, engine.KindAction, entries[0].Kind)

	err = m.Do(id, func(e engine.Engine) error {
		return e.Do(game.Action{Type: game.DriveFerryAction, Destination: "Tokyo"})
	})
	require.ErrorIs(t, err, game.ErrInvalidAction)
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	id, err := m.Create(testConfig)
	require.NoError(t, err)
	require.NoError(t, m.Do(id, pass))

	require.NoError(t, m.Save(ctx, id, "first"))
	slots, err := m.Slots(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"first"}, slots)

	loaded, err := m.Load(ctx, "first")
	require.NoError(t, err)
	require.NotEqual(t, id, loaded)

	want, err := m.Get(id)
	require.NoError(t, err)
	got, err := m.Get(loaded)
	require.NoError(t, err)
	require.Equal(t, want.Hash(), got.Hash())

	// Both sessions keep playing the same way from the saved state.
	require.NoError(t, m.Do(id, pass))
	require.NoError(t, m.Do(loaded, pass))
	want, err = m.Get(id)
	require.NoError(t, err)
	got, err = m.Get(loaded)
	require.NoError(t, err)
	require.Equal(t, want.Hash(), got.Hash())

	log, err := m.Log(loaded)
	require.NoError(t, err)
	require.Equal(t, engine.KindAction, log[0].Kind, "A loaded session starts a fresh log")

	t.Run("missing slot", func(t *testing.T) {
		_, err := m.Load(ctx, "nope")
		require.ErrorIs(t, err, ErrNoSlot)
		require.ErrorIs(t, m.Delete(ctx, "nope"), ErrNoSlot)
	})

	t.Run("invalid slot name", func(t *testing.T) {
		require.ErrorIs(t, m.Save(ctx, id, "../etc"), storage.ErrInvalidKey)
		_, err := m.Load(ctx, "a b")
		require.ErrorIs(t, err, storage.ErrInvalidKey)
	})

	t.Run("corrupt slot", func(t *testing.T) {
		require.NoError(t, m.store.Save(ctx, "broken", []byte(`{"version":1,"state":{}}`)))
		_, err := m.Load(ctx, "broken")
		require.ErrorIs(t, err, game.ErrDeserialization)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, m.Delete(ctx, "first"))
		_, err := m.Load(ctx, "first")
		require.ErrorIs(t, err, ErrNoSlot)
	})
}

func TestClose(t *testing.T) {
	m := newManager(t)
	id, err := m.Create(testConfig)
	require.NoError(t, err)
	require.Equal(t, []string{id}, m.Sessions())

	require.NoError(t, m.Close(id))
	require.Empty(t, m.Sessions())
	_, err = m.Get(id)
	require.ErrorIs(t, err, ErrNoSession)
}

func TestConcurrentSessions(t *testing.T) {
	m := newManager(t)
	ids := make([]string, 4)
	for i := range ids {
		id, err := m.Create(testConfig)
		require.NoError(t, err)
		ids[i] = id
	}

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for _, id := range ids {
		// Two writers and a reader per session.
		for w := 0; w < 2; w++ {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				for i := 0; i < 3; i++ {
					err := m.Do(id, step)
					if err != nil && !errors.Is(err, game.ErrResourceExhausted) {
						errs <- err
						return
					}
				}
			}(id)
		}
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				if _, err := m.Get(id); err != nil {
					errs <- err
					return
				}
			}
		}(id)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	// Every session started from the same deal and took the same six steps.
	first, err := m.Get(ids[0])
	require.NoError(t, err)
	for _, id := range ids[1:] {
		gs, err := m.Get(id)
		require.NoError(t, err)
		require.Equal(t, first.Hash(), gs.Hash())
	}
}

func TestHandLimitPausesSession(t *testing.T) {
	m := newManager(t)
	id, err := m.Create(testConfig)
	require.NoError(t, err)

	var waiting *game.GameState
	for i := 0; i < 10 && waiting == nil; i++ {
		require.NoError(t, m.Do(id, pass))
		gs, err := m.Get(id)
		require.NoError(t, err)
		if gs.Phase == game.DrawPhase {
			waiting = gs
		}
	}
	require.NotNil(t, waiting, "A hand should go over the limit within ten passes")
	over, ok := waiting.HandOverLimit()
	require.True(t, ok)

	require.ErrorIs(t, m.Do(id, pass), game.ErrInvalidPhase)

	require.NoError(t, m.Do(id, step))
	gs, err := m.Get(id)
	require.NoError(t, err)
	require.Equal(t, game.ActionsPhase, gs.Phase)
	require.Equal(t, waiting.Turn+1, gs.Turn)
	require.Len(t, gs.Players[over].Hand, 7)
}

// Package gamemaster runs many games side by side and moves them in and out of save slots.
package gamemaster

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"pandemic/codec"
	"pandemic/engine"
	"pandemic/game"
	"pandemic/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrNoSession = errors.New("no such session")
	ErrNoSlot    = errors.New("no such save slot")
)

type session struct {
	mu     sync.Mutex
	engine *engine.Local
}

// Manager owns live sessions. Calls on different sessions run in parallel, calls on the same session are serialized.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*session
	store    storage.Store
	board    *game.Board
	logger   zerolog.Logger
	opts     []engine.Option
}

type Option func(*Manager)

// WithBoard plays every new or loaded game on b instead of the standard board.
func WithBoard(b *game.Board) Option {
	return func(m *Manager) {
		m.board = b
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithEngineOptions is applied to the engine of every session.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(m *Manager) {
		m.opts = append(m.opts, opts...)
	}
}

func NewManager(store storage.Store, opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[string]*session),
		store:    store,
		board:    game.StandardBoard(),
		logger:   log.Logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) start(gs *game.GameState) string {
	id := uuid.NewString()
	opts := append([]engine.Option{engine.WithLogger(m.logger.With().Str("session", id).Logger())}, m.opts...)
	s := &session{engine: engine.NewLocal(gs, opts...)}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	return id
}

func (m *Manager) get(id string) (*session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSession, id)
	}
	return s, nil
}

// Create deals a new game and returns its session id. A zero seed is replaced by a random one.
func (m *Manager) Create(cfg game.Config) (string, error) {
	if cfg.Seed == 0 {
		seed, err := NewSeed()
		if err != nil {
			return "", err
		}
		cfg.Seed = seed
	}
	gs, err := game.CreateGame(m.board, cfg, game.NewRand(cfg.Seed))
	if err != nil {
		return "", err
	}
	return m.start(gs), nil
}

// Get returns a copy of the session state.
func (m *Manager) Get(id string) (*game.GameState, error) {
	var gs *game.GameState
	err := m.Do(id, func(e engine.Engine) error {
		gs = e.State()
		return nil
	})
	return gs, err
}

// Do runs fn with exclusive access to the session engine.
func (m *Manager) Do(id string, fn func(engine.Engine) error) error {
	s, err := m.get(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.engine)
}

func (m *Manager) Log(id string) ([]engine.Entry, error) {
	var entries []engine.Entry
	err := m.Do(id, func(e engine.Engine) error {
		entries = e.Log()
		return nil
	})
	return entries, err
}

// Sessions lists live session ids in lexical order.
func (m *Manager) Sessions() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Close forgets a session. Saved slots are kept.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNoSession, id)
	}
	delete(m.sessions, id)
	return nil
}

// Save encodes the session state into slot, replacing what was there.
func (m *Manager) Save(ctx context.Context, id, slot string) error {
	key, err := storage.ValidateKey(slot)
	if err != nil {
		return err
	}
	gs, err := m.Get(id)
	if err != nil {
		return err
	}
	data, err := codec.Encode(gs)
	if err != nil {
		return err
	}
	if err := m.store.Save(ctx, key, data); err != nil {
		return fmt.Errorf("save slot %s: %w", key, err)
	}
	m.logger.Debug().Str("session", id).Str("slot", key).Msg("game saved")
	return nil
}

// Load starts a new session from a saved slot. The log of the new session starts empty.
func (m *Manager) Load(ctx context.Context, slot string) (string, error) {
	key, err := storage.ValidateKey(slot)
	if err != nil {
		return "", err
	}
	data, found, err := m.store.Load(ctx, key)
	if err != nil {
		return "", fmt.Errorf("load slot %s: %w", key, err)
	}
	if !found {
		return "", fmt.Errorf("%w: %s", ErrNoSlot, key)
	}
	gs, err := codec.Decode(data, m.board)
	if err != nil {
		return "", fmt.Errorf("load slot %s: %w", key, err)
	}
	return m.start(gs), nil
}

func (m *Manager) Slots(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Delete removes a save slot. Deleting a missing slot reports ErrNoSlot.
func (m *Manager) Delete(ctx context.Context, slot string) error {
	key, err := storage.ValidateKey(slot)
	if err != nil {
		return err
	}
	_, found, err := m.store.Load(ctx, key)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrNoSlot, key)
	}
	return m.store.Delete(ctx, key)
}

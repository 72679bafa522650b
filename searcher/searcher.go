// Package searcher suggests actions for the current player with Monte Carlo tree search.
//
// The tree covers the actions left in the current turn. Each leaf is scored by random playouts that
// keep drawing and infecting for a few more turns, then by game.Evaluate when the playout is cut off.
package searcher

import (
	"context"
	"sort"
	"sync"
	"time"

	"pandemic/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const MaxCutoff = 3 // Turns played out after the searched one

type Option func(s *Searcher)

type Searcher struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	seed       uint64
}

func WithGoroutines(goroutines int) Option {
	return func(s *Searcher) {
		if goroutines > 0 {
			s.goroutines = goroutines
		}
	}
}

func WithDuration(duration time.Duration) Option {
	return func(s *Searcher) {
		if duration > 0 {
			s.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(s *Searcher) {
		if episodes > 0 {
			s.episodes = episodes
		}
	}
}

// WithCutoff sets how many turns a playout runs past the searched turn.
func WithCutoff(turns int) Option {
	return func(s *Searcher) {
		if turns >= 0 {
			s.cutoff = turns
		}
	}
}

// WithSeed fixes the playout randomness. Worker i uses seed+i.
func WithSeed(seed uint64) Option {
	return func(s *Searcher) {
		s.seed = seed
	}
}

func New(options ...Option) *Searcher {
	s := &Searcher{ // Default values
		goroutines: 1,
		episodes:   500,
		cutoff:     MaxCutoff,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Search returns the current player's candidate actions, most visited first.
// A duration, when set, takes precedence over the episode count. Cancelling ctx stops the search early.
func (s *Searcher) Search(ctx context.Context, gs *game.GameState) ([]Advice, SearchMetrics, error) {
	if gs.Status != game.Ongoing {
		return nil, SearchMetrics{}, game.ErrGameOver
	}
	if gs.Phase != game.ActionsPhase || gs.ActionsRemaining == 0 {
		return nil, SearchMetrics{}, game.NewError(game.KindInvalidPhase, "actions can only be searched in the %s phase", game.ActionsPhase)
	}

	root := newDecision(nil, game.Action{}, gs)
	var metrics metricsCollector
	metrics.start()

	if s.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.duration)
		defer cancel()
	}

	tasks := make(chan struct{})
	go func() {
		defer close(tasks)
		for i := 0; s.duration > 0 || i < s.episodes; i++ {
			select {
			case tasks <- struct{}{}:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < s.goroutines; i++ {
		wg.Add(1)
		go func(rng *rand.Rand) {
			defer wg.Done()
			for range tasks {
				s.simulate(root, gs, rng, &metrics)
				metrics.addEpisode()
			}
		}(game.NewRand(s.seed + uint64(i)))
	}
	wg.Wait()

	m := metrics.complete()
	log.Debug().
		Int64("episodes", m.Episodes).
		Int64("fullPlayouts", m.FullPlayouts).
		Dur("duration", m.Duration).
		Msg("search complete")
	return root.advice(), m, nil
}

// Best returns the most visited action.
func (s *Searcher) Best(ctx context.Context, gs *game.GameState) (game.Action, error) {
	advice, _, err := s.Search(ctx, gs)
	if err != nil {
		return game.Action{}, err
	}
	if len(advice) == 0 {
		return game.Action{}, game.NewError(game.KindInvalidAction, "no action could be searched")
	}
	return advice[0].Action, nil
}

func (s *Searcher) simulate(root *decision, gs *game.GameState, rng *rand.Rand, metrics *metricsCollector) {
	node, state := selectThenExpand(root, gs)
	reward, full := playout(state, s.cutoff, rng)
	if full {
		metrics.addFullPlayout()
	}
	backup(node, reward)
}

func selectThenExpand(root *decision, gs *game.GameState) (*decision, *game.GameState) {
	parent := root
	child, state, added := parent.selectOrExpand(gs)
	for child != parent && !added {
		parent = child
		child, state, added = parent.selectOrExpand(state)
	}
	return child, state
}

func backup(node *decision, reward float64) {
	for node != nil {
		node = node.backup(reward)
	}
}

// reward scores a state for the players.
func reward(gs *game.GameState) float64 {
	switch gs.Status {
	case game.Won:
		return Win
	case game.Lost:
		return Loss
	}
	return Win - game.Evaluate(gs).Score
}

// playout plays random actions, draws and infections until cutoff turns have ended or the game is over.
// full reports a game decided before the cutoff.
func playout(gs *game.GameState, cutoff int, rng *rand.Rand) (score float64, full bool) {
	for turns := 0; gs.Status == game.Ongoing && turns <= cutoff; {
		var next *game.GameState
		var err error
		switch gs.Phase {
		case game.ActionsPhase:
			actions := game.GetAvailableActions(gs)
			next, err = game.PerformAction(gs, actions[rng.Intn(len(actions))])
		case game.DrawPhase:
			next, _, err = game.DrawCards(gs, rng)
			for err == nil && next.Status == game.Ongoing {
				i, over := next.HandOverLimit()
				if !over {
					break
				}
				card := next.Players[i].Hand[rng.Intn(len(next.Players[i].Hand))]
				next, err = game.Discard(next, i, card.String())
			}
		case game.InfectPhase:
			next, _, err = game.InfectCities(gs)
			turns++
		}
		if err != nil {
			// Running out of infection cards ends the playout where it stands.
			return reward(gs), false
		}
		gs = next
	}
	return reward(gs), gs.Status != game.Ongoing
}

func sortAdvice(advice []Advice) {
	sort.SliceStable(advice, func(i, j int) bool {
		if advice[i].Visits != advice[j].Visits {
			return advice[i].Visits > advice[j].Visits
		}
		return advice[i].Value > advice[j].Value
	})
}

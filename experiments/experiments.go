// Package experiments plays whole games with the searcher choosing every action and records how they end.
package experiments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pandemic/engine"
	"pandemic/game"
	"pandemic/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Games      int
	NumPlayers int
	Difficulty int
	Roles      []game.Role // Optional, see game.Config
	Seed       uint64      // Game i is dealt with Seed+i
	Search     []searcher.Option
}

type GameRecord struct {
	ID        int
	Seed      uint64
	Roles     []game.Role
	Status    game.Status // Ongoing when the infection deck ran out
	Turns     int
	Actions   int // Searched actions and discards
	Outbreaks int
	Cured     int
	Duration  time.Duration
}

// Run plays cfg.Games games one after the other on the standard board.
func Run(ctx context.Context, cfg Config) ([]GameRecord, error) {
	records := make([]GameRecord, 0, cfg.Games)
	log.Info().Msgf("starting %d self-play games...", cfg.Games)
	for i := 0; i < cfg.Games; i++ {
		record, err := runGame(ctx, cfg, i+1, cfg.Seed+uint64(i))
		if err != nil {
			return records, fmt.Errorf("game %d: %w", i+1, err)
		}
		records = append(records, record)
		log.Info().Msgf("completed game %d of %d: %s after %d turns", i+1, cfg.Games, record.Status, record.Turns)
	}
	return records, nil
}

func runGame(ctx context.Context, cfg Config, id int, seed uint64) (GameRecord, error) {
	start := time.Now()
	gc := game.Config{NumPlayers: cfg.NumPlayers, Difficulty: cfg.Difficulty, Roles: cfg.Roles, Seed: seed}
	gs, err := game.CreateGame(game.StandardBoard(), gc, game.NewRand(seed))
	if err != nil {
		return GameRecord{}, err
	}
	e := engine.NewLocal(gs, engine.WithLogger(zerolog.Nop()))
	opts := append([]searcher.Option{searcher.WithSeed(seed)}, cfg.Search...)
	s := searcher.New(opts...)

	actions := 0
	for {
		if err := ctx.Err(); err != nil {
			return GameRecord{}, err
		}
		state := e.State()
		if state.Status != game.Ongoing {
			break
		}
		if err = step(ctx, e, s, state); errors.Is(err, game.ErrResourceExhausted) {
			break
		}
		if err != nil {
			return GameRecord{}, err
		}
		actions++
	}

	final := e.State()
	record := GameRecord{
		ID:        id,
		Seed:      seed,
		Status:    final.Status,
		Turns:     final.Turn,
		Actions:   actions,
		Outbreaks: final.OutbreakCount,
		Duration:  time.Since(start),
	}
	for _, p := range final.Players {
		record.Roles = append(record.Roles, p.Role)
	}
	for _, c := range final.Cures {
		if c != game.Uncured {
			record.Cured++
		}
	}
	return record, nil
}

// step settles a pending hand limit or plays the searcher's best action.
func step(ctx context.Context, e engine.Engine, s *searcher.Searcher, gs *game.GameState) error {
	if i, over := gs.HandOverLimit(); over {
		return e.Discard(i, discardChoice(gs.Players[i].Hand).String())
	}
	switch gs.Phase {
	case game.DrawPhase:
		return e.Draw()
	case game.InfectPhase:
		return e.Infect()
	}
	action, err := s.Best(ctx, gs)
	if err != nil {
		return err
	}
	return e.Do(action)
}

// discardChoice keeps the cards of the colors the hand is closest to curing. Events are discarded last.
func discardChoice(hand []game.PlayerCard) game.PlayerCard {
	var count [game.NumColors]int
	for _, c := range hand {
		if c.Type == game.CityCard {
			count[c.Color]++
		}
	}
	best := -1
	for i, c := range hand {
		if c.Type != game.CityCard {
			continue
		}
		if best < 0 || count[c.Color] < count[hand[best].Color] {
			best = i
		}
	}
	if best < 0 {
		return hand[0]
	}
	return hand[best]
}

package game

import (
	"fmt"

	"pandemic/meta"

	"golang.org/x/exp/rand"
)

// Config is fixed once the game starts.
type Config struct {
	NumPlayers int    `json:"numPlayers"` // 2-4
	Difficulty int    `json:"difficulty"` // 4-6 epidemic cards
	Roles      []Role `json:"roles"`      // Optional, one per player; nil deals roles at random
	Seed       uint64 `json:"seed"`       // Randomness the game was dealt with, reused for later shuffles
}

// Validate checks player count, difficulty and the optional role list.
func (c Config) Validate() error {
	if c.NumPlayers < 2 || c.NumPlayers > 4 {
		return invalidAction("player count must be between 2 and 4, got %d", c.NumPlayers)
	}
	if c.Difficulty < 4 || c.Difficulty > 6 {
		return invalidAction("difficulty must be between 4 and 6, got %d", c.Difficulty)
	}
	if c.Roles == nil {
		return nil
	}
	if len(c.Roles) != c.NumPlayers {
		return invalidAction("expected %d roles, got %d", c.NumPlayers, len(c.Roles))
	}
	seen := make(map[Role]bool)
	for _, r := range c.Roles {
		if !r.Valid() {
			return invalidAction("invalid role %d", int(r))
		}
		if seen[r] {
			return invalidAction("role %s assigned twice", r)
		}
		seen[r] = true
	}
	return nil
}

// Shuffler is the randomness source of the engine. *rand.Rand from golang.org/x/exp/rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a seeded source so games and tests can be replayed exactly.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func shuffle[T any](rng Shuffler, cards []T) {
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

var infectionRates = [meta.MAX_INFECTION_RATE_POSITION]int{2, 2, 2, 3, 3, 4, 4}

// InfectionRateAt maps a rate track position (1-7) to the number of cards drawn. Out of range positions clamp.
func InfectionRateAt(position int) int {
	if position < 1 {
		position = 1
	}
	if position > meta.MAX_INFECTION_RATE_POSITION {
		position = meta.MAX_INFECTION_RATE_POSITION
	}
	return infectionRates[position-1]
}

// InitialHandSize is the number of cards dealt to each player at setup.
//   - 2 players: 4 cards
//   - 3 players: 3 cards
//   - 4 players: 2 cards
func InitialHandSize(numPlayers int) int {
	switch numPlayers {
	case 2:
		return 4
	case 3:
		return 3
	default:
		return 2
	}
}

// initialInfections is the number of cubes placed on each of the three groups of three cities at setup.
var initialInfections = []int{3, 2, 1}

// CreateGame deals a new game on the board. The only randomness comes from rng.
func CreateGame(b *Board, cfg Config, rng Shuffler) (*GameState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !b.Has(meta.START_CITY) {
		return nil, invalidAction("board has no %s", meta.START_CITY)
	}

	gs := NewGameState(b, cfg)
	gs.Config.Roles = cloneSlice(cfg.Roles)
	gs.setStation(meta.START_CITY, true)

	// Roles
	roles := cloneSlice(cfg.Roles)
	if roles == nil {
		roles = Roles()
		shuffle(rng, roles)
		roles = roles[:cfg.NumPlayers]
	}
	gs.Players = make([]Player, cfg.NumPlayers)
	for i := range gs.Players {
		gs.Players[i] = Player{
			Role:     roles[i],
			Location: meta.START_CITY,
			Hand:     []PlayerCard{},
		}
	}

	// Infection deck and initial infection
	gs.InfectionDeck = make([]InfectionCard, 0, len(b.names))
	for _, name := range b.names {
		gs.InfectionDeck = append(gs.InfectionDeck, InfectionCard{City: name, Color: b.cities[name].Color})
	}
	shuffle(rng, gs.InfectionDeck)
	gs.InfectionDiscard = []InfectionCard{}
	for _, cubes := range initialInfections {
		for i := 0; i < 3; i++ {
			if len(gs.InfectionDeck) == 0 {
				return nil, exhausted("board is too small for the initial infection")
			}
			card := gs.InfectionDeck[0]
			gs.InfectionDeck = gs.InfectionDeck[1:]
			gs.InfectionDiscard = append(gs.InfectionDiscard, card)
			for n := 0; n < cubes; n++ {
				gs.addCube(card.City, card.Color)
			}
		}
	}
	gs.InfectionDeck = cloneSlice(gs.InfectionDeck)

	// Player deck
	deck := make([]PlayerCard, 0, len(b.names)+NumEvents)
	for _, name := range b.names {
		deck = append(deck, NewCityCard(name, b.cities[name].Color))
	}
	for _, e := range Events() {
		deck = append(deck, NewEventCard(e))
	}
	shuffle(rng, deck)

	handSize := InitialHandSize(cfg.NumPlayers)
	if len(deck) < handSize*cfg.NumPlayers+cfg.Difficulty {
		return nil, exhausted("player deck is too small to deal %d hands", cfg.NumPlayers)
	}
	for i := range gs.Players {
		gs.Players[i].Hand = append(gs.Players[i].Hand, deck[:handSize]...)
		deck = deck[handSize:]
	}

	gs.PlayerDeck = insertEpidemics(deck, cfg.Difficulty, rng)
	gs.PlayerDiscard = []PlayerCard{}
	return gs, nil
}

// insertEpidemics splits the deck into n piles, larger piles first, shuffles one epidemic into each
// and stacks them back in order.
func insertEpidemics(deck []PlayerCard, n int, rng Shuffler) []PlayerCard {
	out := make([]PlayerCard, 0, len(deck)+n)
	base, extra := len(deck)/n, len(deck)%n
	start := 0
	for i := 0; i < n; i++ {
		size := base
		if i < extra {
			size++
		}
		pile := make([]PlayerCard, 0, size+1)
		pile = append(pile, deck[start:start+size]...)
		pile = append(pile, NewEpidemicCard())
		shuffle(rng, pile)
		out = append(out, pile...)
		start += size
	}
	return out
}

func (c Config) String() string {
	return fmt.Sprintf("%d players, difficulty %d", c.NumPlayers, c.Difficulty)
}

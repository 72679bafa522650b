package game

import (
	"encoding/binary"
	"hash/fnv"

	"pandemic/meta"
)

// CityState is the dynamic part of a board location.
type CityState struct {
	Cubes           [NumColors]int `json:"cubes"`
	ResearchStation bool           `json:"researchStation"`
}

// Player is a pawn with its role and cards. Hand is unbounded while a draw is being resolved.
type Player struct {
	Role        Role         `json:"role"`
	Location    string       `json:"location"`
	Hand        []PlayerCard `json:"hand"`
	StoredEvent *PlayerCard  `json:"storedEvent,omitempty"` // Contingency Planner only, not part of the hand
}

// GameState represents the dynamic state of the game at any point. Everything except the board, which is static.
// Operations never modify a state they are given: they work on a Copy and return it.
type GameState struct {
	Board                 *Board                `json:"-"` // Reference to the static board
	Config                Config                `json:"config"`
	Players               []Player              `json:"players"` // Index is turn order
	CurrentPlayer         int                   `json:"currentPlayer"`
	Turn                  int                   `json:"turn"` // 1-based turn counter
	Phase                 Phase                 `json:"phase"`
	ActionsRemaining      int                   `json:"actionsRemaining"`
	Cities                map[string]CityState  `json:"cities"`
	Cures                 [NumColors]CureStatus `json:"cures"`
	CubeSupply            [NumColors]int        `json:"cubeSupply"`
	InfectionRatePosition int                   `json:"infectionRatePosition"`
	OutbreakCount         int                   `json:"outbreakCount"`
	PlayerDeck            []PlayerCard          `json:"playerDeck"` // Index 0 is the top
	PlayerDiscard         []PlayerCard          `json:"playerDiscard"`
	InfectionDeck         []InfectionCard       `json:"infectionDeck"` // Index 0 is the top, last is the bottom
	InfectionDiscard      []InfectionCard       `json:"infectionDiscard"`
	Status                Status                `json:"status"`
	SkipNextInfection     bool                  `json:"skipNextInfection"`
	OperationsMoveUsed    bool                  `json:"operationsMoveUsed"`
	CardsDrawn            bool                  `json:"cardsDrawn"` // Draw phase: cards taken, waiting on the hand limit
}

// NewGameState returns an empty board state: no cubes, no stations, full supply, no players.
func NewGameState(b *Board, cfg Config) *GameState {
	gs := &GameState{
		Board:                 b,
		Config:                cfg,
		Turn:                  1,
		Phase:                 ActionsPhase,
		ActionsRemaining:      meta.ACTIONS_PER_TURN,
		Cities:                make(map[string]CityState, len(b.names)),
		InfectionRatePosition: 1,
		Status:                Ongoing,
	}
	for _, name := range b.names {
		gs.Cities[name] = CityState{}
	}
	for i := range gs.CubeSupply {
		gs.CubeSupply[i] = meta.CUBES_PER_COLOR
	}
	return gs
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// Copy returns a deep copy sharing only the board.
func (gs *GameState) Copy() *GameState {
	playersCopy := cloneSlice(gs.Players)
	for i, p := range gs.Players {
		playersCopy[i].Hand = cloneSlice(p.Hand)
		if p.StoredEvent != nil {
			stored := *p.StoredEvent
			playersCopy[i].StoredEvent = &stored
		}
	}

	var citiesCopy map[string]CityState
	if gs.Cities != nil {
		citiesCopy = make(map[string]CityState, len(gs.Cities))
		for name, cs := range gs.Cities {
			citiesCopy[name] = cs
		}
	}

	cfg := gs.Config
	cfg.Roles = cloneSlice(gs.Config.Roles)

	return &GameState{
		Board:                 gs.Board, // Board is immutable
		Config:                cfg,
		Players:               playersCopy,
		CurrentPlayer:         gs.CurrentPlayer,
		Turn:                  gs.Turn,
		Phase:                 gs.Phase,
		ActionsRemaining:      gs.ActionsRemaining,
		Cities:                citiesCopy,
		Cures:                 gs.Cures,
		CubeSupply:            gs.CubeSupply,
		InfectionRatePosition: gs.InfectionRatePosition,
		OutbreakCount:         gs.OutbreakCount,
		PlayerDeck:            cloneSlice(gs.PlayerDeck),
		PlayerDiscard:         cloneSlice(gs.PlayerDiscard),
		InfectionDeck:         cloneSlice(gs.InfectionDeck),
		InfectionDiscard:      cloneSlice(gs.InfectionDiscard),
		Status:                gs.Status,
		SkipNextInfection:     gs.SkipNextInfection,
		OperationsMoveUsed:    gs.OperationsMoveUsed,
		CardsDrawn:            gs.CardsDrawn,
	}
}

type StateHash uint64

// Hash fingerprints the state for log entries and save-slot integrity checks.
func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()
	writeInt := func(v int) {
		binary.Write(hasher, binary.LittleEndian, int64(v))
	}
	writeString := func(s string) {
		hasher.Write([]byte(s))
		hasher.Write([]byte{0})
	}
	writeCard := func(c PlayerCard) {
		writeInt(int(c.Type))
		writeString(c.City)
		writeInt(int(c.Color))
		writeInt(int(c.Event))
	}

	writeInt(gs.CurrentPlayer)
	writeInt(gs.Turn)
	writeInt(int(gs.Phase))
	writeInt(gs.ActionsRemaining)
	writeInt(int(gs.Status))
	writeInt(gs.InfectionRatePosition)
	writeInt(gs.OutbreakCount)
	for c := 0; c < NumColors; c++ {
		writeInt(int(gs.Cures[c]))
		writeInt(gs.CubeSupply[c])
	}

	// Board order keeps the hash independent of map iteration.
	if gs.Board != nil {
		for _, name := range gs.Board.names {
			cs := gs.Cities[name]
			writeString(name)
			for _, n := range cs.Cubes {
				writeInt(n)
			}
			if cs.ResearchStation {
				writeInt(1)
			} else {
				writeInt(0)
			}
		}
	}

	for _, p := range gs.Players {
		writeInt(int(p.Role))
		writeString(p.Location)
		for _, c := range p.Hand {
			writeCard(c)
		}
		if p.StoredEvent != nil {
			writeCard(*p.StoredEvent)
		}
		writeInt(-1)
	}
	for _, c := range gs.PlayerDeck {
		writeCard(c)
	}
	writeInt(-1)
	for _, c := range gs.PlayerDiscard {
		writeCard(c)
	}
	writeInt(-1)
	for _, c := range gs.InfectionDeck {
		writeString(c.City)
	}
	writeInt(-1)
	for _, c := range gs.InfectionDiscard {
		writeString(c.City)
	}

	flags := 0
	if gs.SkipNextInfection {
		flags |= 1
	}
	if gs.OperationsMoveUsed {
		flags |= 2
	}
	if gs.CardsDrawn {
		flags |= 4
	}
	writeInt(flags)

	return StateHash(hasher.Sum64())
}

// Current returns the player whose turn it is.
func (gs *GameState) Current() *Player {
	return &gs.Players[gs.CurrentPlayer]
}

// GameStatus reports whether the game is ongoing, won or lost.
func (gs *GameState) GameStatus() Status {
	return gs.Status
}

func (gs *GameState) checkOngoing() error {
	if gs.Status.Terminal() {
		return NewError(KindGameOver, "game is over (%s) - no moves allowed", gs.Status)
	}
	return nil
}

func (gs *GameState) checkPlayer(idx int) error {
	if idx < 0 || idx >= len(gs.Players) {
		return invalidAction("no player with index %d", idx)
	}
	return nil
}

func (gs *GameState) checkCity(name string) error {
	if !gs.Board.Has(name) {
		return invalidAction("unknown city %q", name)
	}
	return nil
}

// InfectionRate is the number of infection cards drawn at the current rate position.
func (gs *GameState) InfectionRate() int {
	return InfectionRateAt(gs.InfectionRatePosition)
}

// Stations lists the cities with a research station in board order.
func (gs *GameState) Stations() []string {
	var stations []string
	for _, name := range gs.Board.names {
		if gs.Cities[name].ResearchStation {
			stations = append(stations, name)
		}
	}
	return stations
}

func (gs *GameState) hasStation(city string) bool {
	return gs.Cities[city].ResearchStation
}

func (gs *GameState) setStation(city string, present bool) {
	cs := gs.Cities[city]
	cs.ResearchStation = present
	gs.Cities[city] = cs
}

// CubesOnBoard counts every cube of a color currently placed.
func (gs *GameState) CubesOnBoard(color Color) int {
	total := 0
	for _, cs := range gs.Cities {
		total += cs.Cubes[color]
	}
	return total
}

func (gs *GameState) cubes(city string, color Color) int {
	return gs.Cities[city].Cubes[color]
}

// addCube places one cube from the supply. The caller checks supply and the city cap.
func (gs *GameState) addCube(city string, color Color) {
	cs := gs.Cities[city]
	cs.Cubes[color]++
	gs.Cities[city] = cs
	gs.CubeSupply[color]--
}

// clearCubes returns every cube of a color in a city to the supply and reports how many were removed.
func (gs *GameState) clearCubes(city string, color Color) int {
	cs := gs.Cities[city]
	n := cs.Cubes[color]
	cs.Cubes[color] = 0
	gs.Cities[city] = cs
	gs.CubeSupply[color] += n
	return n
}

func (gs *GameState) removeCube(city string, color Color) {
	cs := gs.Cities[city]
	cs.Cubes[color]--
	gs.Cities[city] = cs
	gs.CubeSupply[color]++
}

// IsQuarantined reports whether a Quarantine Specialist stands in the city or next to it.
func (gs *GameState) IsQuarantined(city string) bool {
	for _, p := range gs.Players {
		if p.Role != QuarantineSpecialist {
			continue
		}
		if p.Location == city || gs.Board.AreAdjacent(city, p.Location) || gs.Board.AreAdjacent(p.Location, city) {
			return true
		}
	}
	return false
}

// checkEradication upgrades a cured disease with no cubes left on the board.
func (gs *GameState) checkEradication(color Color) {
	if gs.Cures[color] == Cured && gs.CubesOnBoard(color) == 0 {
		gs.Cures[color] = Eradicated
	}
}

func (gs *GameState) checkWin() {
	if gs.Status != Ongoing {
		return
	}
	for _, cure := range gs.Cures {
		if cure == Uncured {
			return
		}
	}
	gs.Status = Won
}

func (gs *GameState) lose() {
	if gs.Status == Ongoing {
		gs.Status = Lost
	}
}

// medicClear removes cured disease cubes where a Medic stands.
func (gs *GameState) medicClear(playerIdx int) {
	p := gs.Players[playerIdx]
	if p.Role != Medic {
		return
	}
	for _, color := range Colors() {
		if gs.Cures[color] == Uncured {
			continue
		}
		if gs.clearCubes(p.Location, color) > 0 {
			gs.checkEradication(color)
		}
	}
}

// medicsClear applies the Medic passive for every Medic on the board.
func (gs *GameState) medicsClear() {
	for i := range gs.Players {
		gs.medicClear(i)
	}
}

// movePlayer relocates a pawn and fires the arrival triggers.
func (gs *GameState) movePlayer(idx int, dest string) {
	gs.Players[idx].Location = dest
	gs.medicClear(idx)
}

// HandOverLimit returns the first player holding more than the hand limit.
func (gs *GameState) HandOverLimit() (int, bool) {
	for i, p := range gs.Players {
		if len(p.Hand) > meta.HAND_LIMIT {
			return i, true
		}
	}
	return -1, false
}

// PlayersAt lists the players standing in a city.
func (gs *GameState) PlayersAt(city string) []int {
	var idx []int
	for i, p := range gs.Players {
		if p.Location == city {
			idx = append(idx, i)
		}
	}
	return idx
}

package game

import (
	_ "embed"
	"fmt"
	"sync"

	"pandemic/utils"

	"gopkg.in/yaml.v3"
)

// City is the static part of a board location.
type City struct {
	Name        string   // Unique key
	Color       Color    // Region color, also the color of its infection card
	Connections []string // Adjacent cities in declared order
}

// Board is the read-only city topology. It is shared by every state built on it.
type Board struct {
	cities map[string]*City
	names  []string // declaration order
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{
		cities: make(map[string]*City),
	}
}

// AddCity adds a city to the board, keeping declaration order.
func (b *Board) AddCity(city *City) {
	if _, ok := b.cities[city.Name]; !ok {
		b.names = append(b.names, city.Name)
	}
	b.cities[city.Name] = city
}

// AddConnection adds a bidirectional connection between two cities.
func (b *Board) AddConnection(name1, name2 string) {
	c1, c2 := b.cities[name1], b.cities[name2]
	if !utils.Contains(c1.Connections, name2) {
		c1.Connections = append(c1.Connections, name2)
	}
	if !utils.Contains(c2.Connections, name1) {
		c2.Connections = append(c2.Connections, name1)
	}
}

// City looks up a city by name.
func (b *Board) City(name string) (*City, bool) {
	c, ok := b.cities[name]
	return c, ok
}

// Has reports whether the board knows the city.
func (b *Board) Has(name string) bool {
	_, ok := b.cities[name]
	return ok
}

// Cities returns the city names in declaration order.
func (b *Board) Cities() []string {
	names := make([]string, len(b.names))
	copy(names, b.names)
	return names
}

// Connections returns the neighbors of a city, nil for unknown cities.
func (b *Board) Connections(name string) []string {
	if c, ok := b.cities[name]; ok {
		return c.Connections
	}
	return nil
}

// AreAdjacent checks if to appears in the connection list of from.
func (b *Board) AreAdjacent(from, to string) bool {
	return utils.Contains(b.Connections(from), to)
}

type boardFile struct {
	Cities []struct {
		Name        string   `yaml:"name"`
		Color       string   `yaml:"color"`
		Connections []string `yaml:"connections"`
	} `yaml:"cities"`
}

// LoadBoard decodes a YAML board description. Connections are kept exactly as declared.
func LoadBoard(data []byte) (*Board, error) {
	var file boardFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode board: %w", err)
	}
	if len(file.Cities) == 0 {
		return nil, fmt.Errorf("board has no cities")
	}

	b := NewBoard()
	for _, raw := range file.Cities {
		if raw.Name == "" {
			return nil, fmt.Errorf("board city without a name")
		}
		if b.Has(raw.Name) {
			return nil, fmt.Errorf("duplicate city %q", raw.Name)
		}
		color, err := ParseColor(raw.Color)
		if err != nil {
			return nil, fmt.Errorf("city %q: %w", raw.Name, err)
		}
		b.AddCity(&City{
			Name:        raw.Name,
			Color:       color,
			Connections: append([]string(nil), raw.Connections...),
		})
	}

	for _, name := range b.names {
		for _, adj := range b.cities[name].Connections {
			if !b.Has(adj) {
				return nil, fmt.Errorf("city %q connects to unknown city %q", name, adj)
			}
			if adj == name {
				return nil, fmt.Errorf("city %q connects to itself", name)
			}
		}
	}
	return b, nil
}

//go:embed board.yaml
var standardBoardData []byte

var (
	standardBoard     *Board
	standardBoardOnce sync.Once
)

// StandardBoard returns the 48 city world map. The same pointer is returned on every call.
func StandardBoard() *Board {
	standardBoardOnce.Do(func() {
		b, err := LoadBoard(standardBoardData)
		if err != nil {
			panic(fmt.Sprintf("embedded board is invalid: %v", err))
		}
		standardBoard = b
	})
	return standardBoard
}

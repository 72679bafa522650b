package game

import (
	"fmt"
	"strings"
)

type CardType int

const (
	CityCard     CardType = iota // 0
	EventCard                    // 1
	EpidemicCard                 // 2
)

func (t CardType) String() string {
	switch t {
	case CityCard:
		return "city"
	case EventCard:
		return "event"
	case EpidemicCard:
		return "epidemic"
	}
	return fmt.Sprintf("card(%d)", int(t))
}

type EventKind int

const (
	Airlift EventKind = iota
	Forecast
	GovernmentGrant
	OneQuietNight
	ResilientPopulation
)

// NumEvents is the number of event cards in the player deck.
const NumEvents = 5

var eventNames = [NumEvents]string{
	"airlift",
	"forecast",
	"government-grant",
	"one-quiet-night",
	"resilient-population",
}

func Events() []EventKind {
	return []EventKind{Airlift, Forecast, GovernmentGrant, OneQuietNight, ResilientPopulation}
}

func (e EventKind) String() string {
	if e < 0 || int(e) >= NumEvents {
		return fmt.Sprintf("event(%d)", int(e))
	}
	return eventNames[e]
}

func (e EventKind) Valid() bool {
	return e >= 0 && int(e) < NumEvents
}

func ParseEvent(s string) (EventKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range eventNames {
		if n == name {
			return EventKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown event %q", s)
}

func (e EventKind) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("invalid event %d", int(e))
	}
	return []byte(e.String()), nil
}

func (e *EventKind) UnmarshalText(text []byte) error {
	parsed, err := ParseEvent(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// PlayerCard is a city, event or epidemic card. Only the fields of its Type are meaningful.
type PlayerCard struct {
	Type  CardType  `json:"type"`
	City  string    `json:"city,omitempty"`
	Color Color     `json:"color"`
	Event EventKind `json:"event"`
}

func NewCityCard(city string, color Color) PlayerCard {
	return PlayerCard{Type: CityCard, City: city, Color: color}
}

func NewEventCard(event EventKind) PlayerCard {
	return PlayerCard{Type: EventCard, Event: event}
}

func NewEpidemicCard() PlayerCard {
	return PlayerCard{Type: EpidemicCard}
}

func (c PlayerCard) IsCity(name string) bool {
	return c.Type == CityCard && c.City == name
}

func (c PlayerCard) IsEvent(kind EventKind) bool {
	return c.Type == EventCard && c.Event == kind
}

func (c PlayerCard) String() string {
	switch c.Type {
	case CityCard:
		return c.City
	case EventCard:
		return c.Event.String()
	case EpidemicCard:
		return "epidemic"
	}
	return "?"
}

// InfectionCard names the city to infect and the disease to place there.
type InfectionCard struct {
	City  string `json:"city"`
	Color Color  `json:"color"`
}

func (c InfectionCard) String() string {
	return fmt.Sprintf("%s/%s", c.City, c.Color)
}

// cardsForColor counts the city cards of one color in a hand.
func cardsForColor(hand []PlayerCard, color Color) int {
	n := 0
	for _, c := range hand {
		if c.Type == CityCard && c.Color == color {
			n++
		}
	}
	return n
}

func findCityCard(hand []PlayerCard, city string) int {
	for i, c := range hand {
		if c.IsCity(city) {
			return i
		}
	}
	return -1
}

func findEventCard(hand []PlayerCard, kind EventKind) int {
	for i, c := range hand {
		if c.IsEvent(kind) {
			return i
		}
	}
	return -1
}

package game

import (
	"fmt"
	"strings"
)

// Color identifies one of the four diseases and the region of a city.
type Color int

const (
	Blue Color = iota
	Yellow
	Black
	Red
)

// NumColors is the number of diseases in play.
const NumColors = 4

var colorNames = [NumColors]string{"blue", "yellow", "black", "red"}

// Colors lists the diseases in declaration order.
func Colors() []Color {
	return []Color{Blue, Yellow, Black, Red}
}

func (c Color) String() string {
	if c < 0 || int(c) >= NumColors {
		return fmt.Sprintf("color(%d)", int(c))
	}
	return colorNames[c]
}

func (c Color) Valid() bool {
	return c >= 0 && int(c) < NumColors
}

// ParseColor accepts a color name in any case.
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range colorNames {
		if n == name {
			return Color(i), nil
		}
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

func (c Color) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid color %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// CureStatus only ever moves forward: Uncured -> Cured -> Eradicated.
type CureStatus int

const (
	Uncured CureStatus = iota
	Cured
	Eradicated
)

func (s CureStatus) String() string {
	switch s {
	case Uncured:
		return "uncured"
	case Cured:
		return "cured"
	case Eradicated:
		return "eradicated"
	}
	return fmt.Sprintf("cure(%d)", int(s))
}

// Status of the whole game. Won and Lost are terminal.
type Status int

const (
	Ongoing Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

func (s Status) Terminal() bool {
	return s == Won || s == Lost
}

type Phase int

const (
	ActionsPhase Phase = iota
	DrawPhase
	InfectPhase
)

func (p Phase) String() string {
	switch p {
	case ActionsPhase:
		return "Actions"
	case DrawPhase:
		return "Draw"
	case InfectPhase:
		return "Infect"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Role unlocks the special abilities of a player.
type Role int

const (
	ContingencyPlanner Role = iota
	Dispatcher
	Medic
	OperationsExpert
	QuarantineSpecialist
	Researcher
	Scientist
)

// NumRoles is the number of distinct roles.
const NumRoles = 7

var roleNames = [NumRoles]string{
	"contingency-planner",
	"dispatcher",
	"medic",
	"operations-expert",
	"quarantine-specialist",
	"researcher",
	"scientist",
}

// Roles lists every role in declaration order.
func Roles() []Role {
	roles := make([]Role, NumRoles)
	for i := range roles {
		roles[i] = Role(i)
	}
	return roles
}

func (r Role) String() string {
	if r < 0 || int(r) >= NumRoles {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roleNames[r]
}

func (r Role) Valid() bool {
	return r >= 0 && int(r) < NumRoles
}

func ParseRole(s string) (Role, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range roleNames {
		if n == name {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

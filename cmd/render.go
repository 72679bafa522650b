package cmd

import (
	"fmt"
	"sort"
	"strings"

	"pandemic/engine"
	"pandemic/game"
	"pandemic/meta"
	"pandemic/notation"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
	warnStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F25D94"))
	goodStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))

	colorStyles = [game.NumColors]lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#EAB308")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#A3A3A3")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")),
	}
)

func renderSummary(gs *game.GameState) string {
	switch gs.Status {
	case game.Won:
		return goodStyle.Render("The players won: every disease is cured.")
	case game.Lost:
		return warnStyle.Render("The players lost.")
	}
	return fmt.Sprintf("Turn %d, %s (player %d), %s phase, %d actions left",
		gs.Turn, gs.Current().Role, gs.CurrentPlayer, gs.Phase, gs.ActionsRemaining)
}

func renderEntry(gs *game.GameState, e engine.Entry) string {
	line := fmt.Sprintf("[turn %d] %s: %s", e.Turn, gs.Players[e.Player].Role, e.Message)
	switch e.Kind {
	case engine.KindEpidemic, engine.KindOutbreak, engine.KindLost:
		return warnStyle.Render(line)
	case engine.KindCure, engine.KindEradicate, engine.KindWon:
		return goodStyle.Render(line)
	case engine.KindTurn:
		return infoStyle.Render(line)
	}
	return line
}

func renderTrack(gs *game.GameState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Outbreaks       %d/%d\n", gs.OutbreakCount, meta.MAX_OUTBREAKS)
	fmt.Fprintf(&b, "Infection rate  %d\n", gs.InfectionRate())
	fmt.Fprintf(&b, "Player deck     %d cards\n", len(gs.PlayerDeck))
	fmt.Fprintf(&b, "Stations        %s\n", strings.Join(gs.Stations(), ", "))
	for _, c := range game.Colors() {
		fmt.Fprintf(&b, "%-15s %-10s %2d cubes left\n", colorStyles[c].Render(c.String()), gs.Cures[c], gs.CubeSupply[c])
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderPlayers(gs *game.GameState) string {
	var b strings.Builder
	for i, p := range gs.Players {
		marker := " "
		if i == gs.CurrentPlayer {
			marker = ">"
		}
		cards := make([]string, 0, len(p.Hand))
		for _, c := range p.Hand {
			if c.Type == game.CityCard {
				cards = append(cards, colorStyles[c.Color].Render(c.String()))
			} else {
				cards = append(cards, c.String())
			}
		}
		fmt.Fprintf(&b, "%s %d %s in %s\n", marker, i, p.Role, p.Location)
		fmt.Fprintf(&b, "    %s\n", strings.Join(cards, ", "))
		if p.StoredEvent != nil {
			fmt.Fprintf(&b, "    stored: %s\n", p.StoredEvent)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderCities lists infected cities, the most infected first.
func renderCities(gs *game.GameState) string {
	type infected struct {
		name  string
		total int
	}
	var cities []infected
	for _, name := range gs.Board.Cities() {
		total := 0
		for _, n := range gs.Cities[name].Cubes {
			total += n
		}
		if total > 0 {
			cities = append(cities, infected{name, total})
		}
	}
	sort.SliceStable(cities, func(i, j int) bool {
		return cities[i].total > cities[j].total
	})

	var b strings.Builder
	for _, c := range cities {
		cubes := make([]string, 0, game.NumColors)
		for _, color := range game.Colors() {
			if n := gs.Cities[c.name].Cubes[color]; n > 0 {
				cubes = append(cubes, colorStyles[color].Render(fmt.Sprintf("%d %s", n, color)))
			}
		}
		fmt.Fprintf(&b, "%-16s %s\n", c.name, strings.Join(cubes, ", "))
	}
	if len(cities) == 0 {
		return "no infected cities"
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderThreat(gs *game.GameState) string {
	t := game.Evaluate(gs)
	line := fmt.Sprintf("Threat %.0f%%, %d draws left", t.Score*100, t.TurnsLeft)
	if len(t.HotSpots) > 0 {
		line += ", about to break out: " + strings.Join(t.HotSpots, ", ")
	}
	if t.Score >= 0.5 {
		return warnStyle.Render(line)
	}
	return line
}

func renderStatus(gs *game.GameState) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("Pandemic, %s", gs.Config)),
		lipgloss.JoinHorizontal(lipgloss.Top,
			boxStyle.Render(renderTrack(gs)),
			boxStyle.Render(renderPlayers(gs)),
		),
		boxStyle.Render(renderCities(gs)),
		renderThreat(gs),
		renderSummary(gs),
	)
}

func renderActions(gs *game.GameState, actions []game.Action, events []game.EventOption) string {
	var b strings.Builder
	if len(actions) == 0 {
		fmt.Fprintf(&b, "No actions in the %s phase.\n", gs.Phase)
	}
	for _, a := range actions {
		fmt.Fprintln(&b, notation.Format(a))
	}
	for _, e := range events {
		from := "hand"
		if e.Stored {
			from = "stored"
		}
		fmt.Fprintln(&b, infoStyle.Render(fmt.Sprintf("event %d %s (%s)", e.Player, e.Event, from)))
	}
	return b.String()
}

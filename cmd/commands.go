package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"pandemic/engine"
	"pandemic/game"
	"pandemic/gamemaster"
	"pandemic/notation"

	"github.com/spf13/cobra"
)

func (a *app) newCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Deal a new game into the save slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			players, _ := cmd.Flags().GetInt("players")
			difficulty, _ := cmd.Flags().GetInt("difficulty")
			names, _ := cmd.Flags().GetStringSlice("roles")

			cfg := game.Config{
				NumPlayers: players,
				Difficulty: difficulty,
				Seed:       a.v.GetUint64("seed"),
			}
			for _, name := range names {
				r, err := game.ParseRole(name)
				if err != nil {
					return err
				}
				cfg.Roles = append(cfg.Roles, r)
			}

			return a.withManager(func(m *gamemaster.Manager) error {
				id, err := m.Create(cfg)
				if err != nil {
					return err
				}
				if err := m.Save(cmd.Context(), id, a.v.GetString("slot")); err != nil {
					return err
				}
				gs, err := m.Get(id)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderStatus(gs))
				return nil
			})
		},
	}
	cmd.Flags().Int("players", 2, "number of players, 2 to 4")
	cmd.Flags().Int("difficulty", 4, "number of epidemic cards, 4 to 6")
	cmd.Flags().StringSlice("roles", nil, "roles in turn order, dealt at random when empty")
	cmd.Flags().Uint64("seed", 0, "seed of the deal, random when 0")
	_ = a.v.BindPFlag("seed", cmd.Flags().Lookup("seed"))
	return cmd
}

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the board, the players and the threat level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withManager(func(m *gamemaster.Manager) error {
				id, err := m.Load(cmd.Context(), a.v.GetString("slot"))
				if err != nil {
					return err
				}
				gs, err := m.Get(id)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderStatus(gs))
				return nil
			})
		},
	}
}

func (a *app) actionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "actions",
		Short: "List the actions and events that can be played now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withManager(func(m *gamemaster.Manager) error {
				id, err := m.Load(cmd.Context(), a.v.GetString("slot"))
				if err != nil {
					return err
				}
				return m.Do(id, func(e engine.Engine) error {
					fmt.Fprint(cmd.OutOrStdout(), renderActions(e.State(), e.Actions(), e.Events()))
					return nil
				})
			})
		},
	}
}

func (a *app) doCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "do <action>",
		Short:   "Perform an action for the current player, e.g. drive-ferry:Chicago",
		Args:    cobra.MinimumNArgs(1),
		Example: "  pandemic do drive-ferry:San Francisco\n  pandemic do discover-cure:blue",
		RunE: func(cmd *cobra.Command, args []string) error {
			action, err := notation.Parse(strings.Join(args, " "))
			if err != nil {
				return err
			}
			return a.play(cmd, func(e engine.Engine) error {
				return e.Do(action)
			})
		},
	}
}

func (a *app) drawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "draw",
		Short: "Draw the two player cards of the turn",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.play(cmd, func(e engine.Engine) error {
				return e.Draw()
			})
		},
	}
}

func (a *app) infectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "infect",
		Short: "Infect cities and end the turn",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.play(cmd, func(e engine.Engine) error {
				return e.Infect()
			})
		},
	}
}

func playerArg(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("player must be a number, got %q", s)
	}
	return i, nil
}

func (a *app) eventCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "event <player> <event>",
		Short:   "Play an event card held by a player",
		Args:    cobra.MinimumNArgs(2),
		Example: "  pandemic event 1 airlift:0:Paris\n  pandemic event 0 one-quiet-night",
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := playerArg(args[0])
			if err != nil {
				return err
			}
			params, err := notation.ParseEvent(strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			return a.play(cmd, func(e engine.Engine) error {
				return e.Play(player, params)
			})
		},
	}
}

func (a *app) discardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "discard <player> <card>",
		Short: "Discard a city or event card from a hand",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := playerArg(args[0])
			if err != nil {
				return err
			}
			card := strings.Join(args[1:], " ")
			return a.play(cmd, func(e engine.Engine) error {
				return e.Discard(player, card)
			})
		},
	}
}

func (a *app) savesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "saves",
		Short: "List the save slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withManager(func(m *gamemaster.Manager) error {
				slots, err := m.Slots(cmd.Context())
				if err != nil {
					return err
				}
				for _, slot := range slots {
					fmt.Fprintln(cmd.OutOrStdout(), slot)
				}
				return nil
			})
		},
	}
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <slot>",
		Short: "Delete a save slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withManager(func(m *gamemaster.Manager) error {
				return m.Delete(cmd.Context(), args[0])
			})
		},
	}
}

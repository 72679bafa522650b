package cmd

import (
	"fmt"
	"io"
	"os"

	"pandemic/experiments"
	"pandemic/game"
	"pandemic/searcher"

	"github.com/spf13/cobra"
)

func (a *app) selfplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selfplay",
		Short: "Let the searcher play whole games and write the results as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			flags := cmd.Flags()
			games, _ := flags.GetInt("games")
			players, _ := flags.GetInt("players")
			difficulty, _ := flags.GetInt("difficulty")
			names, _ := flags.GetStringSlice("roles")
			episodes, _ := flags.GetInt("episodes")
			cutoff, _ := flags.GetInt("cutoff")
			path, _ := flags.GetString("out")
			seed, _ := flags.GetUint64("seed")

			cfg := experiments.Config{
				Games:      games,
				NumPlayers: players,
				Difficulty: difficulty,
				Seed:       seed,
				Search:     []searcher.Option{searcher.WithEpisodes(episodes), searcher.WithCutoff(cutoff)},
			}
			for _, name := range names {
				r, err := game.ParseRole(name)
				if err != nil {
					return err
				}
				cfg.Roles = append(cfg.Roles, r)
			}

			var out io.Writer = cmd.OutOrStdout()
			if path != "-" {
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("failed to create results file: %w", err)
				}
				defer func() {
					if cerr := f.Close(); cerr != nil && err == nil {
						err = cerr
					}
				}()
				out = f
			}

			records, err := experiments.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return experiments.WriteGameRecords(out, records)
		},
	}
	cmd.Flags().Int("games", 10, "games to play")
	cmd.Flags().Int("players", 2, "number of players, 2 to 4")
	cmd.Flags().Int("difficulty", 4, "number of epidemic cards, 4 to 6")
	cmd.Flags().StringSlice("roles", nil, "roles in turn order, dealt at random when empty")
	cmd.Flags().Int("episodes", 200, "playouts per action")
	cmd.Flags().Int("cutoff", 1, "turns each playout runs past the current one")
	cmd.Flags().Uint64("seed", 1, "seed of the first game, the next games count up from it")
	cmd.Flags().String("out", "-", "CSV file for the results, - for stdout")
	return cmd
}

package cmd

import (
	"fmt"
	"runtime"
	"time"

	"pandemic/gamemaster"
	"pandemic/notation"
	"pandemic/searcher"

	"github.com/spf13/cobra"
)

func (a *app) hintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hint",
		Short: "Suggest actions for the current player",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			episodes, _ := flags.GetInt("episodes")
			duration, _ := flags.GetDuration("duration")
			goroutines, _ := flags.GetInt("goroutines")
			cutoff, _ := flags.GetInt("cutoff")
			top, _ := flags.GetInt("top")

			return a.withManager(func(m *gamemaster.Manager) error {
				id, err := m.Load(cmd.Context(), a.v.GetString("slot"))
				if err != nil {
					return err
				}
				gs, err := m.Get(id)
				if err != nil {
					return err
				}

				s := searcher.New(
					searcher.WithEpisodes(episodes),
					searcher.WithDuration(duration),
					searcher.WithGoroutines(goroutines),
					searcher.WithCutoff(cutoff),
					searcher.WithSeed(gs.Config.Seed^uint64(gs.Hash())),
				)
				advice, metrics, err := s.Search(cmd.Context(), gs)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				for i, adv := range advice {
					if i == top {
						break
					}
					fmt.Fprintf(out, "%-40s %5d visits  %3.0f%%\n", notation.Format(adv.Action), adv.Visits, adv.Value*100)
				}
				fmt.Fprintln(out, infoStyle.Render(fmt.Sprintf("%d episodes in %s", metrics.Episodes, metrics.Duration.Round(time.Millisecond))))
				return nil
			})
		},
	}
	cmd.Flags().Int("episodes", 1000, "playouts to run")
	cmd.Flags().Duration("duration", 0, "search for this long instead of a fixed number of playouts")
	cmd.Flags().Int("goroutines", runtime.NumCPU(), "parallel workers")
	cmd.Flags().Int("cutoff", searcher.MaxCutoff, "turns each playout runs past the current one")
	cmd.Flags().Int("top", 5, "number of suggestions to print")
	return cmd
}

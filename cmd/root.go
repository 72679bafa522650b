// Package cmd is the pandemic command line. Every command loads the game from a save slot, applies one
// step and writes it back.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type app struct {
	v *viper.Viper
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree with its own configuration, so tests can run several side by side.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "pandemic",
		Short:         "Play a cooperative epidemic containment game from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initConfig(); err != nil {
				return err
			}
			return a.initLogger()
		},
	}
	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default pandemic.yaml in . or $HOME)")
	flags.String("store", "file", "save slot backend: memory, file or sqlite")
	flags.String("dir", ".pandemic", "directory holding the save slots")
	flags.String("slot", "current", "save slot of the game to play")
	flags.String("log-level", "warn", "log level: debug, info, warn, error")
	flags.Bool("auto", true, "resolve the draw and infect phases automatically")
	for _, name := range []string{"config", "store", "dir", "slot", "log-level", "auto"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		a.newCmd(),
		a.statusCmd(),
		a.actionsCmd(),
		a.doCmd(),
		a.drawCmd(),
		a.infectCmd(),
		a.eventCmd(),
		a.discardCmd(),
		a.hintCmd(),
		a.selfplayCmd(),
		a.savesCmd(),
		a.deleteCmd(),
		versionCmd(),
	)
	return root
}

func (a *app) initConfig() error {
	if file := a.v.GetString("config"); file != "" {
		a.v.SetConfigFile(file)
	} else {
		a.v.SetConfigName("pandemic")
		a.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(home)
		}
	}
	a.v.SetEnvPrefix("PANDEMIC")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func (a *app) initLogger() error {
	level, err := zerolog.ParseLevel(a.v.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
	return nil
}

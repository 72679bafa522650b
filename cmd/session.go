package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"pandemic/engine"
	"pandemic/gamemaster"
	"pandemic/storage"

	"github.com/spf13/cobra"
)

func (a *app) openStore() (storage.Store, error) {
	dir := a.v.GetString("dir")
	switch kind := a.v.GetString("store"); kind {
	case "memory":
		return storage.NewMemoryStore(), nil
	case "file":
		s, err := storage.NewFileStore(dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "sqlite":
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
		s, err := storage.OpenSQLite(filepath.Join(dir, "pandemic.db"))
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store %q, expected memory, file or sqlite", kind)
	}
}

// withManager opens the configured store for the duration of fn.
func (a *app) withManager(fn func(m *gamemaster.Manager) error) (err error) {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	m := gamemaster.NewManager(store, gamemaster.WithEngineOptions(engine.WithAutoResolve(a.v.GetBool("auto"))))
	return fn(m)
}

// play loads the current slot, runs fn on its engine, then saves and prints what happened.
// Nothing is saved when fn fails.
func (a *app) play(cmd *cobra.Command, fn func(e engine.Engine) error) error {
	slot := a.v.GetString("slot")
	return a.withManager(func(m *gamemaster.Manager) error {
		ctx := cmd.Context()
		id, err := m.Load(ctx, slot)
		if err != nil {
			return err
		}
		if err := m.Do(id, fn); err != nil {
			return err
		}
		return a.report(ctx, cmd, m, id, slot)
	})
}

func (a *app) report(ctx context.Context, cmd *cobra.Command, m *gamemaster.Manager, id, slot string) error {
	if err := m.Save(ctx, id, slot); err != nil {
		return err
	}
	entries, err := m.Log(id)
	if err != nil {
		return err
	}
	gs, err := m.Get(id)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, e := range entries {
		fmt.Fprintln(out, renderEntry(gs, e))
	}
	fmt.Fprintln(out, renderSummary(gs))
	return nil
}

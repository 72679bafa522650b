package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	files, err := NewFileStore(filepath.Join(dir, "slots"))
	require.NoError(t, err)
	db, err := OpenSQLite(filepath.Join(dir, "slots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   files,
		"sqlite": db,
	}
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			keys, err := store.List(ctx)
			require.NoError(t, err)
			require.Empty(t, keys, "New store should be empty")

			data, found, err := store.Load(ctx, "missing")
			require.NoError(t, err)
			require.False(t, found)
			require.Nil(t, data)

			require.NoError(t, store.Save(ctx, "b-slot", []byte(`{"version":1}`)))
			require.NoError(t, store.Save(ctx, "a_slot", []byte("first")))
			require.NoError(t, store.Save(ctx, "a_slot", []byte("second")), "Save should overwrite")

			data, found, err = store.Load(ctx, "a_slot")
			require.NoError(t, err)
			require.True(t, found)
			require.Equal(t, []byte("second"), data)

			keys, err = store.List(ctx)
			require.NoError(t, err)
			require.Equal(t, []string{"a_slot", "b-slot"}, keys)

			require.NoError(t, store.Delete(ctx, "a_slot"))
			require.NoError(t, store.Delete(ctx, "a_slot"), "Deleting a missing slot is a no-op")
			_, found, err = store.Load(ctx, "a_slot")
			require.NoError(t, err)
			require.False(t, found)

			keys, err = store.List(ctx)
			require.NoError(t, err)
			require.Equal(t, []string{"b-slot"}, keys)
		})
	}
}

func TestStoreRejectsInvalidKeys(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"", "  ", "../escape", "a/b", "slot.json", "with space"} {
				require.ErrorIs(t, store.Save(ctx, key, []byte("x")), ErrInvalidKey, "key %q", key)
				_, _, err := store.Load(ctx, key)
				require.ErrorIs(t, err, ErrInvalidKey, "key %q", key)
				require.ErrorIs(t, store.Delete(ctx, key), ErrInvalidKey, "key %q", key)
			}
		})
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	data := []byte("abc")
	require.NoError(t, store.Save(ctx, "slot", data))
	data[0] = 'x'

	loaded, _, err := store.Load(ctx, "slot")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), loaded, "Stored bytes should not alias the caller's")
}

func TestFileStoreLayout(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "game1", []byte("data")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	content, err := os.ReadFile(filepath.Join(dir, "game1.json"))
	require.NoError(t, err)
	require.Equal(t, []byte("data"), content)

	keys, err := store.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"game1"}, keys, "Only slot files are listed")

	_, err = NewFileStore("")
	require.Error(t, err)
}

func TestSQLiteStorePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "saves.db")

	store, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "slot", []byte("kept")))
	require.NoError(t, store.Close())

	store, err = OpenSQLite(path)
	require.NoError(t, err)
	defer store.Close()
	data, found, err := store.Load(ctx, "slot")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte("kept"), data)

	_, err = OpenSQLite(" ")
	require.Error(t, err)
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	t.Run("finds first match", func(t *testing.T) {
		require.Equal(t, 1, FindIndex([]string{"Paris", "Milan", "Milan"}, "Milan"))
	})

	t.Run("missing item", func(t *testing.T) {
		require.Equal(t, -1, FindIndex([]string{"Paris"}, "Essen"))
		require.False(t, Contains([]string{}, "Essen"))
	})
}

func TestRemoveAt(t *testing.T) {
	in := []int{1, 2, 3}
	out := RemoveAt(in, 1)

	require.Equal(t, []int{1, 3}, out)
	require.Equal(t, []int{1, 2, 3}, in, "Input slice should not be modified")
}

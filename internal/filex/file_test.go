package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureUserDir(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	dir, err := EnsureUserDir("estatekeeper-test")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, "estatekeeper-test"), dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())

	// idempotent
	again, err := EnsureUserDir("estatekeeper-test")
	require.NoError(t, err)
	require.Equal(t, dir, again)
}

func TestExists(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "x")
	require.False(t, Exists(file))

	require.NoError(t, os.WriteFile(file, []byte("1"), 0o600))
	require.True(t, Exists(file))
}

package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDir_CreatesNestedDirectory(t *testing.T) {
	want := filepath.Join(t.TempDir(), "data", "nested")

	got, err := EnsureDir(want)
	require.NoError(t, err)
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm())
	}
}

func TestEnsureDir_Idempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	first, err := EnsureDir(dir)
	require.NoError(t, err)
	second, err := EnsureDir(dir)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureDir_FailsIfFileWithSameNameExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	_, err := EnsureDir(path)
	require.Error(t, err)
}

func TestReadOrCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.key")
	calls := 0
	gen := func() []byte {
		calls++
		return []byte("secret")
	}

	first, err := ReadOrCreate(path, gen)
	require.NoError(t, err)
	require.Equal(t, []byte("secret"), first)

	second, err := ReadOrCreate(path, gen)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, calls, "generator must run only when the file is missing")
}

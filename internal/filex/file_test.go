package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDir_CreatesNestedDirectory(t *testing.T) {
	tmp := t.TempDir()
	want := filepath.Join(tmp, "a", "contractlens")

	got, err := EnsureDir(want)
	require.NoError(t, err)
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureDir_ExistingIsOK(t *testing.T) {
	tmp := t.TempDir()

	_, err := EnsureDir(tmp)
	require.NoError(t, err)
	_, err = EnsureDir(tmp)
	require.NoError(t, err)
}

func TestEnsureDir_FailsWhenPathIsFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(f, []byte("x"), 0o600))

	_, err := EnsureDir(filepath.Join(f, "sub"))
	require.Error(t, err)
}

func TestRegularFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "contract.pdf")
	require.NoError(t, os.WriteFile(f, []byte("%PDF-1.4"), 0o600))

	fi, err := RegularFile(f)
	require.NoError(t, err)
	require.EqualValues(t, 8, fi.Size())

	_, err = RegularFile(dir)
	require.Error(t, err)

	_, err = RegularFile(filepath.Join(dir, "missing.pdf"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

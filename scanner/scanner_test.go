package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestScanCountsEveryFileAndDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"))
	writeFile(t, filepath.Join(root, "b", "c.txt"))
	writeFile(t, filepath.Join(root, "b", "d", "e.txt"))

	res, err := Scan(root, Options{})
	require.NoError(t, err)

	// 3 files + 2 directories, root excluded
	require.Len(t, res.Entries, 5)
	require.Empty(t, res.Skipped)

	seen := make(map[string]bool)
	var files, dirs int
	for _, e := range res.Entries {
		require.False(t, seen[e.RelPath], "duplicate entry %q", e.RelPath)
		seen[e.RelPath] = true
		if e.IsDir {
			dirs++
		} else {
			files++
		}
	}
	require.Equal(t, 3, files)
	require.Equal(t, 2, dirs)

	require.True(t, seen["a.txt"])
	require.True(t, seen["b"])
	require.True(t, seen["b/c.txt"])
	require.True(t, seen["b/d"])
	require.True(t, seen["b/d/e.txt"])
}

func TestScanEmptyDirectory(t *testing.T) {
	res, err := Scan(t.TempDir(), Options{})
	require.NoError(t, err)
	require.Empty(t, res.Entries)
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"), Options{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestScanRootIsFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "plain.txt")
	writeFile(t, file)

	_, err := Scan(file, Options{})
	require.ErrorIs(t, err, ErrNotDir)
}

func TestScanSkipUnreadable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ok.txt"))
	locked := filepath.Join(root, "locked")
	writeFile(t, filepath.Join(locked, "hidden.txt"))
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	// default policy aborts the whole scan
	_, err := Scan(root, Options{})
	require.Error(t, err)

	res, err := Scan(root, Options{SkipUnreadable: true})
	require.NoError(t, err)
	require.Contains(t, res.Skipped, "locked")

	for _, e := range res.Entries {
		require.NotEqual(t, "locked/hidden.txt", e.RelPath)
	}
}

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oakmund/dirtrail/config"
)

func setDataDir(t *testing.T, dir string) {
	t.Helper()
	cfg := config.GetConfig()
	old := cfg.DataDir
	cfg.DataDir = dir
	t.Cleanup(func() { cfg.DataDir = old })
}

func TestShowHistoryEmptyStore(t *testing.T) {
	setDataDir(t, t.TempDir())

	require.NoError(t, showHistory(historyCmd, nil))
}

func TestShowHistoryReturnsErrorWhenStoreUnavailable(t *testing.T) {
	// a regular file where the data directory should be makes MkdirAll fail
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	setDataDir(t, filepath.Join(blocker, "nested"))

	err := showHistory(historyCmd, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "run history")
}

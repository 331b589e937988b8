package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oakmund/dirtrail/models"
)

func testHeader() models.Header {
	return models.Header{
		Hostname:    "workstation-7",
		Username:    "aisling",
		GeneratedAt: time.Date(2025, 4, 21, 9, 30, 0, 0, time.UTC),
		Root:        "/home/aisling/docs",
	}
}

func testEntries() []models.Entry {
	return []models.Entry{
		{RelPath: "a.txt"},
		{RelPath: "b", IsDir: true},
		{RelPath: "b/c.txt"},
	}
}

func TestWriteLineCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	entries := testEntries()
	require.NoError(t, Write(path, testHeader(), entries))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, BannerLines+len(entries))
	require.Equal(t, "DIRECTORY TRAVERSAL LOG", lines[0])
	require.Equal(t, "file a.txt", lines[BannerLines])
	require.Equal(t, "dir b", lines[BannerLines+1])
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	header := testHeader()
	header.Skipped = []string{"locked"}
	entries := testEntries()

	require.NoError(t, Write(path, header, entries))

	gotHeader, gotEntries, err := Parse(path)
	require.NoError(t, err)
	require.Equal(t, header.Hostname, gotHeader.Hostname)
	require.Equal(t, header.Username, gotHeader.Username)
	require.Equal(t, header.Root, gotHeader.Root)
	require.True(t, header.GeneratedAt.Equal(gotHeader.GeneratedAt))
	require.Equal(t, header.Skipped, gotHeader.Skipped)
	require.Equal(t, entries, gotEntries)
}

func TestRoundTripSkippedPathsWithSpaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	header := testHeader()
	header.Skipped = []string{"locked dir", "other/locked dir/deep"}

	require.NoError(t, Write(path, header, nil))

	gotHeader, _, err := Parse(path)
	require.NoError(t, err)
	require.Equal(t, header.Skipped, gotHeader.Skipped)
}

func TestWriteOverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale contents\n"), 0o644))

	require.NoError(t, Write(path, testHeader(), nil))

	_, entries, err := Parse(path)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestParseRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("not a report\n"), 0o644))

	_, _, err := Parse(path)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestNewHeader(t *testing.T) {
	now := time.Now()
	h, err := NewHeader("/tmp/somewhere", now)
	require.NoError(t, err)
	require.NotEmpty(t, h.Hostname)
	require.NotEmpty(t, h.Username)
	require.Equal(t, "/tmp/somewhere", h.Root)
	require.True(t, now.Equal(h.GeneratedAt))
}

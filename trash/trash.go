package trash

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

var ErrUnsupported = errors.New("no recoverable-deletion store on this platform")

// Store is a handle on the user's trash directory. Files moved into it stay
// recoverable until the user empties the trash.
type Store struct {
	dir string
	// xdg selects the freedesktop layout (files/ plus info/ sidecars);
	// false means a flat directory, as macOS uses.
	xdg bool
}

// NewStore points at an explicit trash directory using the freedesktop
// layout. Used by tests and by deployments with a custom trash location.
func NewStore(dir string) *Store {
	return &Store{dir: dir, xdg: true}
}

// Default resolves the platform trash location. The returned store may be
// unusable; Move reports ErrUnsupported in that case, which callers treat
// as a non-fatal cleanup failure.
func Default() *Store {
	switch runtime.GOOS {
	case "linux":
		base := os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return &Store{}
			}
			base = filepath.Join(home, ".local", "share")
		}
		return &Store{dir: filepath.Join(base, "Trash"), xdg: true}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return &Store{}
		}
		return &Store{dir: filepath.Join(home, ".Trash")}
	default:
		return &Store{}
	}
}

// Move relocates path into the store and returns the file's new location.
func (s *Store) Move(path string) (string, error) {
	if s.dir == "" {
		return "", ErrUnsupported
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("trashing %s: %w", path, err)
	}

	filesDir := s.dir
	if s.xdg {
		filesDir = filepath.Join(s.dir, "files")
		if err := os.MkdirAll(filepath.Join(s.dir, "info"), 0o700); err != nil {
			return "", fmt.Errorf("preparing trash: %w", err)
		}
	}
	if err := os.MkdirAll(filesDir, 0o700); err != nil {
		return "", fmt.Errorf("preparing trash: %w", err)
	}

	name := uniqueName(filesDir, filepath.Base(abs))
	dest := filepath.Join(filesDir, name)

	if s.xdg {
		if err := s.writeInfo(name, abs); err != nil {
			return "", err
		}
	}

	if err := rename(abs, dest); err != nil {
		if s.xdg {
			os.Remove(filepath.Join(s.dir, "info", name+".trashinfo"))
		}
		return "", fmt.Errorf("trashing %s: %w", path, err)
	}
	return dest, nil
}

// uniqueName appends a numeric suffix until the name is free in dir, the
// same scheme freedesktop trash implementations use.
func uniqueName(dir, base string) string {
	name := base
	for i := 2; ; i++ {
		if _, err := os.Stat(filepath.Join(dir, name)); os.IsNotExist(err) {
			return name
		}
		ext := filepath.Ext(base)
		name = fmt.Sprintf("%s.%d%s", strings.TrimSuffix(base, ext), i, ext)
	}
}

func (s *Store) writeInfo(name, originalPath string) error {
	info := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		originalPath, time.Now().Format("2006-01-02T15:04:05"))
	infoPath := filepath.Join(s.dir, "info", name+".trashinfo")
	if err := os.WriteFile(infoPath, []byte(info), 0o600); err != nil {
		return fmt.Errorf("writing trash info: %w", err)
	}
	return nil
}

// rename falls back to copy-and-remove when the trash lives on a different
// filesystem than the source.
func rename(src, dest string) error {
	err := os.Rename(src, dest)
	if err == nil {
		return nil
	}
	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}

package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/oakmund/dirtrail/models"
)

var (
	ErrNotFound = errors.New("scan root does not exist")
	ErrNotDir   = errors.New("scan root is not a directory")
)

type Options struct {
	// SkipUnreadable switches the scanner from aborting on the first
	// unreadable subtree to recording it and continuing.
	SkipUnreadable bool
}

type Result struct {
	Entries []models.Entry
	Skipped []string
}

// Scan walks the tree rooted at root depth-first in the filesystem's native
// enumeration order and returns one entry per file and directory found. The
// root itself is not included.
func Scan(root string, opts Options) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, root)
		}
		return nil, fmt.Errorf("stat scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDir, root)
	}

	res := &Result{}
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if opts.SkipUnreadable && errors.Is(err, fs.ErrPermission) {
				rel, relErr := filepath.Rel(root, p)
				if relErr != nil {
					rel = p
				}
				res.Skipped = append(res.Skipped, filepath.ToSlash(rel))
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		res.Entries = append(res.Entries, models.Entry{
			RelPath: filepath.ToSlash(rel),
			IsDir:   d.IsDir(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return res, nil
}

package models

import "time"

// Entry is a single item discovered during a traversal. Paths are relative
// to the scan root and use forward slashes on every platform.
type Entry struct {
	RelPath string `json:"path"`
	IsDir   bool   `json:"is_dir"`
}

// Header carries the metadata banner written at the top of every report.
type Header struct {
	Hostname    string
	Username    string
	GeneratedAt time.Time
	Root        string

	// Skipped lists unreadable subtrees that were passed over when the
	// scanner runs in skip-unreadable mode. Empty under the default policy.
	Skipped []string
}

// Run records one pipeline invocation in the run-history store.
type Run struct {
	ID         string
	Root       string
	Recipient  string
	ReportPath string
	Entries    int
	Files      int
	Dirs       int
	Status     string // "ok" or "failed"
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/oakmund/dirtrail/models"
)

type Client struct {
	db *sql.DB
}

// NewClient opens (creating if needed) the run-history database under dataDir.
func NewClient(dataDir string) (*Client, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating data directory: %w", err)
	}

	database, err := sql.Open("sqlite3", filepath.Join(dataDir, "dirtrail.db"))
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := database.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	return &Client{db: database}, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) CreateRunsTable() error {
	query := `CREATE TABLE IF NOT EXISTS runs (
        id TEXT PRIMARY KEY,
        root TEXT,
        recipient TEXT,
        report_path TEXT,
        entries INTEGER,
        files INTEGER,
        dirs INTEGER,
        status TEXT,
        error TEXT,
        started_at DATETIME,
        finished_at DATETIME
    )`
	_, err := c.db.Exec(query)
	return err
}

func (c *Client) InsertRun(run models.Run) error {
	query := `INSERT INTO runs (id, root, recipient, report_path, entries, files, dirs, status, error, started_at, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := c.db.Exec(query,
		run.ID, run.Root, run.Recipient, run.ReportPath,
		run.Entries, run.Files, run.Dirs, run.Status, run.Error,
		run.StartedAt.Format(time.RFC3339), run.FinishedAt.Format(time.RFC3339))
	return err
}

func (c *Client) GetRuns() ([]models.Run, error) {
	rows, err := c.db.Query(`SELECT id, root, recipient, report_path, entries, files, dirs, status, error, started_at, finished_at
        FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}(rows)

	runs := make([]models.Run, 0)

	for rows.Next() {
		var (
			run      models.Run
			started  string
			finished string
		)

		err := rows.Scan(&run.ID, &run.Root, &run.Recipient, &run.ReportPath,
			&run.Entries, &run.Files, &run.Dirs, &run.Status, &run.Error,
			&started, &finished)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		run.StartedAt, err = time.Parse(time.RFC3339, started)
		if err != nil {
			return nil, fmt.Errorf("error parsing started_at: %w", err)
		}
		run.FinishedAt, err = time.Parse(time.RFC3339, finished)
		if err != nil {
			return nil, fmt.Errorf("error parsing finished_at: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, nil
}

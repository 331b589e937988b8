package db

import "github.com/oakmund/dirtrail/models"

type Repository interface {
	Close() error
	CreateRunsTable() error
	InsertRun(run models.Run) error
	GetRuns() ([]models.Run, error)
}

package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/oakmund/dirtrail/config"
	"github.com/oakmund/dirtrail/db"
	"github.com/oakmund/dirtrail/logger"
	"github.com/oakmund/dirtrail/mailer"
	"github.com/oakmund/dirtrail/models"
	"github.com/oakmund/dirtrail/report"
	"github.com/oakmund/dirtrail/scanner"
)

// Trasher moves a file into the recoverable-deletion store.
type Trasher interface {
	Move(path string) (string, error)
}

// Pipeline executes one scan-report-send-trash run. Stages run strictly in
// order; the first failing stage aborts the run, except cleanup, which only
// warns because the mail is already out by then.
type Pipeline struct {
	cfg    *config.Config
	log    *logger.Logger
	sender mailer.Sender
	trash  Trasher
	repo   db.Repository
}

func New(cfg *config.Config, log *logger.Logger, sender mailer.Sender, trash Trasher, repo db.Repository) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		log:    log,
		sender: sender,
		trash:  trash,
		repo:   repo,
	}
}

func (p *Pipeline) Run(root, recipient string) (models.Run, error) {
	run := models.Run{
		ID:        uuid.NewString(),
		Root:      root,
		Recipient: recipient,
		StartedAt: time.Now(),
	}

	res, err := scanner.Scan(root, scanner.Options{SkipUnreadable: p.cfg.SkipUnreadable})
	if err != nil {
		return p.fail(run, err)
	}
	run.Entries = len(res.Entries)
	for _, e := range res.Entries {
		if e.IsDir {
			run.Dirs++
		} else {
			run.Files++
		}
	}
	p.log.Info("Scan finished", "root", root, "entries", run.Entries)

	header, err := report.NewHeader(root, time.Now())
	if err != nil {
		return p.fail(run, err)
	}
	header.Skipped = res.Skipped

	reportPath, err := p.cfg.ReportPath()
	if err != nil {
		return p.fail(run, err)
	}
	if err := report.Write(reportPath, header, res.Entries); err != nil {
		return p.fail(run, err)
	}
	run.ReportPath = reportPath
	p.log.Info("Report written", "path", reportPath)

	if err := p.sender.Send(recipient, reportPath); err != nil {
		return p.fail(run, err)
	}
	p.log.Info("Report emailed", "recipient", recipient)

	if dest, err := p.trash.Move(reportPath); err != nil {
		// The mail already went out; a stranded report file is not worth
		// failing the run over.
		p.log.Warn("Could not move report to trash", "path", reportPath, "error", err)
	} else {
		p.log.Info("Report moved to trash", "path", dest)
	}

	run.Status = "ok"
	run.FinishedAt = time.Now()
	p.record(run)
	return run, nil
}

func (p *Pipeline) fail(run models.Run, err error) (models.Run, error) {
	run.Status = "failed"
	run.Error = err.Error()
	run.FinishedAt = time.Now()
	p.record(run)
	return run, err
}

func (p *Pipeline) record(run models.Run) {
	if p.repo == nil {
		return
	}
	if err := p.repo.InsertRun(run); err != nil {
		p.log.Warn("Could not record run", "error", err)
	}
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"BookmarkDigest/internal/digest"
	"BookmarkDigest/internal/ports"
)

// PipelineDeps wires the driven adapters into the digest pipeline.
type PipelineDeps struct {
	Source     ports.BookmarkSource
	Mailer     ports.Mailer
	FromAddr   string
	ToAddr     string
	WindowDays int
	Logger     *slog.Logger
}

// Pipeline implements one fetch-format-send cycle. It holds no state across
// runs; every accumulator is local to a single call.
type Pipeline struct {
	source     ports.BookmarkSource
	mailer     ports.Mailer
	fromAddr   string
	toAddr     string
	windowDays int
	logger     *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	days := deps.WindowDays
	if days <= 0 {
		days = 7
	}
	return &Pipeline{
		source:     deps.Source,
		mailer:     deps.Mailer,
		fromAddr:   deps.FromAddr,
		toAddr:     deps.ToAddr,
		windowDays: days,
		logger:     deps.Logger,
	}
}

// Run executes one cycle for the window ending at now.
func (p *Pipeline) Run(ctx context.Context, now time.Time) error {
	to := now.UTC()
	from := to.AddDate(0, 0, -p.windowDays)
	return p.ProcessWindow(ctx, from, to)
}

// ProcessWindow fetches bookmarks created in [from, to] and mails the digest.
// An empty window still sends the empty-state digest; the weekly mail is
// expected even when nothing was saved.
func (p *Pipeline) ProcessWindow(ctx context.Context, from, to time.Time) error {
	if p.source == nil {
		return nil
	}

	records, err := p.source.FetchRecent(ctx, from, to)
	if err != nil {
		return fmt.Errorf("fetch recent: %w", err)
	}

	doc := digest.Build(records, digest.BuildOptions{
		Start: from,
		End:   to,
		From:  p.fromAddr,
		To:    p.toAddr,
	})
	p.debug("digest built", "records", doc.RecordCount, "subject", doc.Subject)

	if p.mailer == nil {
		return nil
	}

	messageID, err := p.mailer.Send(ctx, doc)
	if err != nil {
		return fmt.Errorf("send digest: %w", err)
	}

	p.info("digest sent", "message_id", messageID, "records", doc.RecordCount, "range", doc.DateRangeLabel)
	return nil
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

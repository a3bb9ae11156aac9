package app

import (
	"context"
	"log/slog"
	"time"

	"BookmarkDigest/internal/config"
	"BookmarkDigest/internal/infrastructure/mail"
	"BookmarkDigest/internal/infrastructure/raindrop"
	"BookmarkDigest/internal/infrastructure/scheduler"
	"BookmarkDigest/internal/logging"
	"BookmarkDigest/internal/usecase"
)

// Application wires configuration into the digest pipeline and drives its
// lifecycle.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	schedule *usecase.Scheduler
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	source := raindrop.NewClient(cfg.Raindrop.BaseURL, cfg.Raindrop.Token, baseLogger.With("component", "raindrop"))
	mailer := mail.NewSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password)

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:     source,
		Mailer:     mailer,
		FromAddr:   cfg.Mail.From,
		ToAddr:     cfg.Mail.To,
		WindowDays: cfg.Digest.Days,
		Logger:     baseLogger.With("component", "pipeline"),
	})

	application := &Application{cfg: cfg, pipeline: pipeline}

	if cfg.Scheduler.Enabled {
		driver := scheduler.NewIntervalScheduler(time.Duration(cfg.Scheduler.IntervalHours) * time.Hour)
		application.schedule = usecase.NewScheduler(driver, pipeline, baseLogger.With("component", "scheduler"))
	}

	return application
}

// Run performs one digest cycle and returns, or blocks on the recurring
// schedule when the scheduler is enabled.
func (a *Application) Run(ctx context.Context) error {
	if a.pipeline == nil {
		return nil
	}

	now := time.Now().In(a.cfg.Scheduler.Location())

	if a.schedule == nil {
		return a.pipeline.Run(ctx, now)
	}

	if err := a.schedule.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return a.schedule.Stop(context.Background())
}

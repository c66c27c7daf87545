// Package worker hosts the periodic session-cleanup delivery.
package worker

import (
	"context"
	"log/slog"
	"time"

	"corpgate/config"
	"corpgate/internal/delivery"
	"corpgate/internal/usecase"

	"go.uber.org/fx"
)

const defaultCleanupInterval = time.Hour

// cleanupWorker deletes expired sessions on a fixed interval.
type cleanupWorker struct {
	interval time.Duration
	auth     usecase.AuthUsecase
	logger   *slog.Logger

	stopCtx context.Context
	stop    context.CancelFunc
}

// ServerParams holds dependencies for the cleanup worker.
type ServerParams struct {
	fx.In

	Lc     fx.Lifecycle
	Cfg    *config.Config
	Auth   usecase.AuthUsecase
	Logger *slog.Logger
}

// NewServer creates the session-cleanup worker.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	interval := defaultCleanupInterval
	if params.Cfg.Auth != nil && params.Cfg.Auth.SessionCleanupInterval > 0 {
		interval = params.Cfg.Auth.SessionCleanupInterval
	}

	stopCtx, stop := context.WithCancel(context.Background())
	worker := &cleanupWorker{
		interval: interval,
		auth:     params.Auth,
		logger:   params.Logger,
		stopCtx:  stopCtx,
		stop:     stop,
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			stop()

			return nil
		},
	})

	return worker, nil
}

// Serve runs the cleanup loop until the lifecycle stops it.
func (w *cleanupWorker) Serve(ctx context.Context) error {
	w.logger.Info("Starting session cleanup worker", slog.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.stopCtx.Done():
			w.logger.Info("Session cleanup worker stopped")

			return nil
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *cleanupWorker) runOnce(ctx context.Context) {
	deleted, err := w.auth.CleanupExpiredSessions(ctx)
	if err != nil {
		w.logger.Error("Session cleanup run failed", slog.Any("error", err))

		return
	}
	w.logger.Debug("Session cleanup run finished", slog.Int64("deleted", deleted))
}

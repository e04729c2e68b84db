package app

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/live-match/internal/platform/logging"
	"github.com/riskibarqy/live-match/internal/usecase"
)

type overdueSweeper interface {
	SweepOverdue(ctx context.Context, input usecase.SweepInput) (usecase.SweepResult, error)
}

// RunOverdueSweeper sweeps running periods on every tick until ctx is done.
func RunOverdueSweeper(
	ctx context.Context,
	sweeper overdueSweeper,
	clock clockwork.Clock,
	interval time.Duration,
	workers int,
	logger *logging.Logger,
) {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	ticker := clock.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("overdue sweeper started", "interval", interval.String(), "workers", workers)
	for {
		select {
		case <-ctx.Done():
			logger.Info("overdue sweeper stopped")
			return
		case <-ticker.Chan():
			result, err := sweeper.SweepOverdue(ctx, usecase.SweepInput{MaxWorkers: workers})
			if err != nil {
				logger.WarnContext(ctx, "overdue sweep failed", "error", err)
				continue
			}
			if result.Marked > 0 || result.Failed > 0 {
				logger.InfoContext(ctx, "overdue sweep marked periods",
					"marked", result.Marked,
					"failed", result.Failed,
					"game_ids", result.GameIDs,
				)
			}
		}
	}
}

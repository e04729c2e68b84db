// Package guarded wraps repositories with a circuit breaker so a failing
// database is rejected fast instead of queueing writers on dead connections.
package guarded

import (
	"context"
	"errors"

	"github.com/riskibarqy/live-match/internal/domain/livegame"
	"github.com/riskibarqy/live-match/internal/platform/logging"
	"github.com/riskibarqy/live-match/internal/platform/resilience"
)

type LiveGameRepository struct {
	next    livegame.Repository
	breaker *resilience.Breaker
	logger  *logging.Logger
}

func NewLiveGameRepository(next livegame.Repository, breaker *resilience.Breaker, logger *logging.Logger) *LiveGameRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &LiveGameRepository{next: next, breaker: breaker, logger: logger}
}

func (r *LiveGameRepository) Get(ctx context.Context, gameID string) (livegame.Snapshot, bool, error) {
	var (
		snapshot livegame.Snapshot
		exists   bool
	)
	err := r.run(ctx, "get", func() error {
		var err error
		snapshot, exists, err = r.next.Get(ctx, gameID)
		return err
	})
	return snapshot, exists, err
}

func (r *LiveGameRepository) Create(ctx context.Context, snapshot livegame.Snapshot) error {
	return r.run(ctx, "create", func() error {
		return r.next.Create(ctx, snapshot)
	})
}

func (r *LiveGameRepository) Commit(ctx context.Context, snapshot livegame.Snapshot, record livegame.ActionRecord) error {
	return r.run(ctx, "commit", func() error {
		return r.next.Commit(ctx, snapshot, record)
	})
}

func (r *LiveGameRepository) ListOpen(ctx context.Context) ([]livegame.Snapshot, error) {
	var out []livegame.Snapshot
	err := r.run(ctx, "list_open", func() error {
		var err error
		out, err = r.next.ListOpen(ctx)
		return err
	})
	return out, err
}

func (r *LiveGameRepository) ListActions(ctx context.Context, gameID string) ([]livegame.ActionRecord, error) {
	var out []livegame.ActionRecord
	err := r.run(ctx, "list_actions", func() error {
		var err error
		out, err = r.next.ListActions(ctx, gameID)
		return err
	})
	return out, err
}

func (r *LiveGameRepository) run(ctx context.Context, op string, fn func() error) error {
	err := r.breaker.Execute(fn, isInfrastructureFailure)
	if errors.Is(err, resilience.ErrCircuitOpen) {
		r.logger.WarnContext(ctx, "live game store circuit breaker rejected request",
			"operation", op,
			"state", string(r.breaker.State()),
		)
	}
	return err
}

// Revision conflicts and cancelled callers say nothing about store health.
func isInfrastructureFailure(err error) bool {
	switch {
	case errors.Is(err, livegame.ErrRevisionConflict),
		errors.Is(err, context.Canceled):
		return false
	default:
		return true
	}
}

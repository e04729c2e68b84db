package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/live-match/internal/platform/logging"
	"github.com/riskibarqy/live-match/internal/usecase"
)

type countingSweeper struct {
	calls   atomic.Int32
	workers atomic.Int32
	err     error
}

func (s *countingSweeper) SweepOverdue(_ context.Context, input usecase.SweepInput) (usecase.SweepResult, error) {
	s.calls.Add(1)
	s.workers.Store(int32(input.MaxWorkers))
	return usecase.SweepResult{}, s.err
}

func TestRunOverdueSweeper_SweepsOnEveryTick(t *testing.T) {
	clock := clockwork.NewFakeClock()
	sweeper := &countingSweeper{err: errors.New("store unavailable")}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		RunOverdueSweeper(ctx, sweeper, clock, 15*time.Second, 3, logging.NewNop())
	}()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer waitCancel()
	if err := clock.BlockUntilContext(waitCtx, 1); err != nil {
		t.Fatalf("sweeper never registered its ticker: %v", err)
	}

	for i := 1; i <= 2; i++ {
		clock.Advance(15 * time.Second)
		deadline := time.Now().Add(2 * time.Second)
		for sweeper.calls.Load() < int32(i) {
			if time.Now().After(deadline) {
				t.Fatalf("expected %d sweeps, got %d", i, sweeper.calls.Load())
			}
			time.Sleep(5 * time.Millisecond)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("sweeper did not stop after cancel")
	}

	if got := sweeper.workers.Load(); got != 3 {
		t.Fatalf("expected 3 workers, got %d", got)
	}
}

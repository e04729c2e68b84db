package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/live-match/internal/domain/game"
	"github.com/riskibarqy/live-match/internal/domain/livegame"
	"github.com/sourcegraph/conc/pool"
)

const (
	defaultJobWorkers = 4
	maxJobWorkers     = 32
)

type SweepInput struct {
	MaxWorkers int
}

type SweepResult struct {
	Scanned     int      `json:"scanned"`
	Candidates  int      `json:"candidates"`
	Marked      int      `json:"marked"`
	Failed      int      `json:"failed"`
	WorkerCount int      `json:"worker_count"`
	GameIDs     []string `json:"game_ids"`
}

// SweepOverdue marks running periods that reached their configured length as
// overdue.
func (s *LiveGameService) SweepOverdue(ctx context.Context, input SweepInput) (SweepResult, error) {
	ctx, span := childSpan(ctx, "LiveGameService.SweepOverdue")
	defer span.End()

	snapshots, err := s.store.ListOpen(ctx)
	if err != nil {
		return SweepResult{}, fmt.Errorf("list open live games: %w", classifyStoreError(err))
	}

	now := s.machine.Now()
	candidates := make([]string, 0)
	for _, snapshot := range snapshots {
		clock := snapshot.Game.Clock
		if snapshot.Game.Status != game.StatusStart || clock == nil {
			continue
		}
		if clock.IsOverdue(now) {
			candidates = append(candidates, snapshot.Game.ID)
		}
	}

	workerCount := normalizeJobWorkerCount(input.MaxWorkers, len(candidates))
	result := SweepResult{
		Scanned:     len(snapshots),
		Candidates:  len(candidates),
		WorkerCount: workerCount,
		GameIDs:     make([]string, 0, len(candidates)),
	}
	if len(candidates) == 0 {
		return result, nil
	}

	workers, err := ants.NewPool(workerCount)
	if err != nil {
		return SweepResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	var (
		marked  atomic.Int32
		failed  atomic.Int32
		mu      sync.Mutex
		pending sync.WaitGroup
	)
	for _, gameID := range candidates {
		pending.Add(1)
		if err := workers.Submit(func() {
			defer pending.Done()

			updated, err := s.Dispatch(ctx, gameID, livegame.MarkPeriodOverdue{})
			if err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "mark period overdue failed", "game_id", gameID, "error", err)
				return
			}
			if updated.Game.Clock == nil || updated.Game.Clock.Status != livegame.PeriodOverdue {
				return
			}
			marked.Add(1)
			mu.Lock()
			result.GameIDs = append(result.GameIDs, gameID)
			mu.Unlock()
		}); err != nil {
			pending.Done()
			return SweepResult{}, fmt.Errorf("submit overdue sweep task: %w", err)
		}
	}
	pending.Wait()

	sort.Strings(result.GameIDs)
	result.Marked = int(marked.Load())
	result.Failed = int(failed.Load())
	s.logger.InfoContext(ctx, "overdue sweep finished",
		"scanned", result.Scanned,
		"marked", result.Marked,
		"failed", result.Failed,
	)
	return result, nil
}

type AuditInput struct {
	MaxWorkers int
}

const (
	auditStatusMatched  = "matched"
	auditStatusDiverged = "diverged"
	auditStatusFailed   = "failed"
)

type ReplayAuditEntry struct {
	GameID   string `json:"game_id"`
	Revision int64  `json:"revision"`
	Actions  int    `json:"actions"`
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
}

type AuditResult struct {
	Checked     int                `json:"checked"`
	Matched     int                `json:"matched"`
	Diverged    int                `json:"diverged"`
	Failed      int                `json:"failed"`
	WorkerCount int                `json:"worker_count"`
	Entries     []ReplayAuditEntry `json:"entries"`
}

// AuditReplays replays every open game from its action log and compares the
// outcome with the stored snapshot.
func (s *LiveGameService) AuditReplays(ctx context.Context, input AuditInput) (AuditResult, error) {
	ctx, span := childSpan(ctx, "LiveGameService.AuditReplays")
	defer span.End()

	snapshots, err := s.store.ListOpen(ctx)
	if err != nil {
		return AuditResult{}, fmt.Errorf("list open live games: %w", classifyStoreError(err))
	}

	workerCount := normalizeJobWorkerCount(input.MaxWorkers, len(snapshots))
	result := AuditResult{
		Checked:     len(snapshots),
		WorkerCount: workerCount,
		Entries:     make([]ReplayAuditEntry, 0, len(snapshots)),
	}
	if len(snapshots) == 0 {
		return result, nil
	}

	audits := pool.NewWithResults[ReplayAuditEntry]().WithMaxGoroutines(workerCount)
	for _, snapshot := range snapshots {
		audits.Go(func() ReplayAuditEntry {
			return s.auditSnapshot(ctx, snapshot)
		})
	}
	result.Entries = append(result.Entries, audits.Wait()...)

	sort.Slice(result.Entries, func(i, j int) bool {
		return result.Entries[i].GameID < result.Entries[j].GameID
	})
	for _, entry := range result.Entries {
		switch entry.Status {
		case auditStatusFailed:
			result.Failed++
		case auditStatusMatched:
			result.Matched++
		default:
			result.Diverged++
			s.logger.WarnContext(ctx, "live game replay diverged", "game_id", entry.GameID, "revision", entry.Revision)
		}
	}
	return result, nil
}

func (s *LiveGameService) auditSnapshot(ctx context.Context, snapshot livegame.Snapshot) ReplayAuditEntry {
	replayed, err := s.replaySnapshot(ctx, snapshot)
	if err != nil {
		return ReplayAuditEntry{
			GameID:   snapshot.Game.ID,
			Revision: snapshot.Revision,
			Status:   auditStatusFailed,
			Message:  err.Error(),
		}
	}

	entry := ReplayAuditEntry{
		GameID:   snapshot.Game.ID,
		Revision: replayed.Revision,
		Actions:  replayed.Actions,
		Status:   auditStatusMatched,
	}
	if !replayed.Matches {
		entry.Status = auditStatusDiverged
		entry.Message = fmt.Sprintf("replay of %d actions does not reproduce revision %d", replayed.Actions, replayed.Revision)
	}
	return entry
}

func normalizeJobWorkerCount(requested, tasks int) int {
	workers := requested
	if workers <= 0 {
		workers = defaultJobWorkers
	}
	if workers > maxJobWorkers {
		workers = maxJobWorkers
	}
	if tasks > 0 && workers > tasks {
		workers = tasks
	}
	return workers
}

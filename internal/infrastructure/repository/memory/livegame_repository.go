package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/live-match/internal/domain/game"
	"github.com/riskibarqy/live-match/internal/domain/livegame"
)

// LiveGameRepository keeps snapshots and action logs in process. Snapshots
// are immutable values, so storing them by value is enough to isolate callers.
type LiveGameRepository struct {
	mu        sync.RWMutex
	snapshots map[string]livegame.Snapshot
	actions   map[string][]livegame.ActionRecord
}

func NewLiveGameRepository() *LiveGameRepository {
	return &LiveGameRepository{
		snapshots: make(map[string]livegame.Snapshot),
		actions:   make(map[string][]livegame.ActionRecord),
	}
}

func (r *LiveGameRepository) Get(_ context.Context, gameID string) (livegame.Snapshot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot, ok := r.snapshots[gameID]
	return snapshot, ok, nil
}

func (r *LiveGameRepository) Create(_ context.Context, snapshot livegame.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.snapshots[snapshot.Game.ID]; exists {
		return fmt.Errorf("%w: game %s already open", livegame.ErrRevisionConflict, snapshot.Game.ID)
	}
	r.snapshots[snapshot.Game.ID] = snapshot
	return nil
}

func (r *LiveGameRepository) Commit(_ context.Context, snapshot livegame.Snapshot, record livegame.ActionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	gameID := snapshot.Game.ID
	current, exists := r.snapshots[gameID]
	if !exists || current.Revision != snapshot.Revision-1 {
		return fmt.Errorf("%w: game %s expected revision %d", livegame.ErrRevisionConflict, gameID, snapshot.Revision-1)
	}

	r.snapshots[gameID] = snapshot
	r.actions[gameID] = append(r.actions[gameID], record)
	return nil
}

func (r *LiveGameRepository) ListOpen(_ context.Context) ([]livegame.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]livegame.Snapshot, 0, len(r.snapshots))
	for _, snapshot := range r.snapshots {
		if snapshot.Game.Status == game.StatusDone {
			continue
		}
		out = append(out, snapshot)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Game.ID < out[j].Game.ID })

	return out, nil
}

func (r *LiveGameRepository) ListActions(_ context.Context, gameID string) ([]livegame.ActionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]livegame.ActionRecord(nil), r.actions[gameID]...), nil
}

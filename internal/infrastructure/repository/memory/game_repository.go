package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/live-match/internal/domain/game"
)

type GameRepository struct {
	mu    sync.RWMutex
	items map[string]game.Game
	now   func() time.Time
}

func NewGameRepository(games []game.Game) *GameRepository {
	items := make(map[string]game.Game, len(games))
	for _, g := range games {
		items[g.ID] = cloneGame(g)
	}

	return &GameRepository{items: items, now: time.Now}
}

func (r *GameRepository) GetByID(_ context.Context, gameID string) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.items[gameID]
	if !ok {
		return game.Game{}, false, nil
	}

	return cloneGame(g), true, nil
}

func (r *GameRepository) ListByTeam(_ context.Context, teamID string) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0)
	for _, g := range r.items {
		if g.TeamID == teamID {
			out = append(out, cloneGame(g))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ScheduledAt.Before(out[j].ScheduledAt)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *GameRepository) Upsert(_ context.Context, item game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.UpdatedAt = r.now()
	r.items[item.ID] = cloneGame(item)
	return nil
}

func (r *GameRepository) UpdateStatus(_ context.Context, gameID string, status game.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.items[gameID]
	if !ok {
		return fmt.Errorf("game not found: %s", gameID)
	}
	g.Status = status
	g.UpdatedAt = r.now()
	r.items[gameID] = g
	return nil
}

func cloneGame(g game.Game) game.Game {
	copied := g
	if g.Periods != nil {
		periods := *g.Periods
		copied.Periods = &periods
	}
	return copied
}

package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/live-match/internal/domain/roster"
)

type RosterRepository struct {
	mu    sync.RWMutex
	items map[string]roster.Roster
}

func NewRosterRepository(rosters []roster.Roster) *RosterRepository {
	items := make(map[string]roster.Roster, len(rosters))
	for _, r := range rosters {
		items[r.TeamID] = r.Clone()
	}

	return &RosterRepository{items: items}
}

func (r *RosterRepository) GetByTeam(_ context.Context, teamID string) (roster.Roster, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[teamID]
	if !ok {
		return roster.Roster{}, false, nil
	}

	return item.Clone(), true, nil
}

func (r *RosterRepository) Upsert(_ context.Context, item roster.Roster) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.TeamID] = item.Clone()
	return nil
}

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/live-match/internal/domain/game"
	"github.com/riskibarqy/live-match/internal/domain/player"
	"github.com/riskibarqy/live-match/internal/domain/roster"
	gamemock "github.com/riskibarqy/live-match/internal/mocks/domain/game"
	rostermock "github.com/riskibarqy/live-match/internal/mocks/domain/roster"
	basecache "github.com/riskibarqy/live-match/internal/platform/cache"
	"github.com/stretchr/testify/mock"
)

func TestGameRepository_CachesLookupsUntilStatusChanges(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := gamemock.NewRepository(t)
	repo := NewGameRepository(next, basecache.NewStore(time.Minute))

	item := game.Game{ID: "game-1", TeamID: "team-1", Status: game.StatusNew, Periods: &game.PeriodConfig{TotalPeriods: 2, PeriodLength: 25}}
	next.On("GetByID", mock.Anything, "game-1").Return(item, true, nil).Twice()
	next.On("UpdateStatus", mock.Anything, "game-1", game.StatusStart).Return(nil).Once()

	for i := 0; i < 3; i++ {
		got, exists, err := repo.GetByID(ctx, "game-1")
		if err != nil || !exists {
			t.Fatalf("get game: exists=%v err=%v", exists, err)
		}
		got.Periods.PeriodLength = 99
	}

	again, _, _ := repo.GetByID(ctx, "game-1")
	if again.Periods.PeriodLength != 25 {
		t.Fatalf("cached game must not be shared with callers")
	}

	if err := repo.UpdateStatus(ctx, "game-1", game.StatusStart); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if _, _, err := repo.GetByID(ctx, "game-1"); err != nil {
		t.Fatalf("get game after invalidation: %v", err)
	}
}

func TestGameRepository_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := gamemock.NewRepository(t)
	repo := NewGameRepository(next, basecache.NewStore(time.Minute))

	next.On("ListByTeam", mock.Anything, "team-1").Return(nil, errors.New("db down")).Once()
	next.On("ListByTeam", mock.Anything, "team-1").Return([]game.Game{{ID: "game-1", TeamID: "team-1"}}, nil).Once()

	if _, err := repo.ListByTeam(ctx, "team-1"); err == nil {
		t.Fatalf("expected load error")
	}
	items, err := repo.ListByTeam(ctx, "team-1")
	if err != nil || len(items) != 1 {
		t.Fatalf("unexpected list result: items=%v err=%v", items, err)
	}
	if _, err := repo.ListByTeam(ctx, "team-1"); err != nil {
		t.Fatalf("cached list: %v", err)
	}
}

func TestRosterRepository_UpsertInvalidates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := rostermock.NewRepository(t)
	repo := NewRosterRepository(next, basecache.NewStore(time.Minute))

	r, err := roster.New("team-1", []player.Player{{ID: "p-1", Name: "Ada", UniformNumber: 1}})
	if err != nil {
		t.Fatalf("build roster: %v", err)
	}
	next.On("GetByTeam", mock.Anything, "team-1").Return(r, true, nil).Twice()
	next.On("Upsert", mock.Anything, mock.MatchedBy(func(v roster.Roster) bool { return v.TeamID == "team-1" })).Return(nil).Once()

	got, exists, err := repo.GetByTeam(ctx, "team-1")
	if err != nil || !exists || len(got.Players) != 1 {
		t.Fatalf("unexpected roster: %+v exists=%v err=%v", got, exists, err)
	}
	delete(got.Players, "p-1")
	if cached, _, _ := repo.GetByTeam(ctx, "team-1"); len(cached.Players) != 1 {
		t.Fatalf("cached roster must not be shared with callers")
	}

	if err := repo.Upsert(ctx, r); err != nil {
		t.Fatalf("upsert roster: %v", err)
	}
	if _, _, err := repo.GetByTeam(ctx, "team-1"); err != nil {
		t.Fatalf("get roster after upsert: %v", err)
	}
}

package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/live-match/internal/domain/game"
	"github.com/riskibarqy/live-match/internal/domain/livegame"
)

func TestLiveGameRepository_CommitChecksRevision(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewLiveGameRepository()
	initial := livegame.LiveGame{ID: "g1", TeamID: "t1", Status: game.StatusNew}
	now := time.Date(2026, 9, 5, 9, 0, 0, 0, time.UTC)

	if err := repo.Create(ctx, livegame.Snapshot{Game: initial, Initial: initial, Revision: 1}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, livegame.Snapshot{Game: initial, Initial: initial, Revision: 1}); !errors.Is(err, livegame.ErrRevisionConflict) {
		t.Fatalf("expected conflict on second create, got %v", err)
	}

	next := initial
	next.Status = game.StatusStart
	record := livegame.ActionRecord{ID: "a1", GameID: "g1", Revision: 2, Kind: livegame.KindStartGame, Action: livegame.StartGame{}, AppliedAt: now}
	if err := repo.Commit(ctx, livegame.Snapshot{Game: next, Initial: initial, Revision: 2}, record); err != nil {
		t.Fatalf("commit: %v", err)
	}

	stale := livegame.Snapshot{Game: next, Initial: initial, Revision: 2}
	if err := repo.Commit(ctx, stale, record); !errors.Is(err, livegame.ErrRevisionConflict) {
		t.Fatalf("expected conflict on stale commit, got %v", err)
	}

	actions, err := repo.ListActions(ctx, "g1")
	if err != nil || len(actions) != 1 || actions[0].ID != "a1" {
		t.Fatalf("unexpected actions: %+v err=%v", actions, err)
	}
}

func TestLiveGameRepository_ListOpenSkipsFinished(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewLiveGameRepository()
	for _, g := range []livegame.LiveGame{
		{ID: "g2", Status: game.StatusStart},
		{ID: "g1", Status: game.StatusNew},
		{ID: "g3", Status: game.StatusDone},
	} {
		if err := repo.Create(ctx, livegame.Snapshot{Game: g, Initial: g, Revision: 1}); err != nil {
			t.Fatalf("create %s: %v", g.ID, err)
		}
	}

	open, err := repo.ListOpen(ctx)
	if err != nil {
		t.Fatalf("list open: %v", err)
	}
	if len(open) != 2 || open[0].Game.ID != "g1" || open[1].Game.ID != "g2" {
		t.Fatalf("unexpected open games: %+v", open)
	}
}

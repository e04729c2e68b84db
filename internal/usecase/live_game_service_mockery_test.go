package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/live-match/internal/domain/game"
	"github.com/riskibarqy/live-match/internal/domain/livegame"
	"github.com/riskibarqy/live-match/internal/domain/player"
	"github.com/riskibarqy/live-match/internal/domain/roster"
	gamemock "github.com/riskibarqy/live-match/internal/mocks/domain/game"
	livegamemock "github.com/riskibarqy/live-match/internal/mocks/domain/livegame"
	rostermock "github.com/riskibarqy/live-match/internal/mocks/domain/roster"
	idgen "github.com/riskibarqy/live-match/internal/platform/id"
	"github.com/riskibarqy/live-match/internal/platform/logging"
	"github.com/riskibarqy/live-match/internal/platform/resilience"
	"github.com/stretchr/testify/mock"
)

func newMockedLiveGameService(t *testing.T) (*LiveGameService, *gamemock.Repository, *rostermock.Repository, *livegamemock.Repository) {
	t.Helper()

	games := gamemock.NewRepository(t)
	rosters := rostermock.NewRepository(t)
	store := livegamemock.NewRepository(t)
	clock := clockwork.NewFakeClockAt(time.Date(2026, 9, 5, 9, 0, 0, 0, time.UTC))

	service := NewLiveGameService(games, rosters, store, clock, idgen.NewSequence("rec"), logging.NewNop())
	return service, games, rosters, store
}

func openedSnapshot(t *testing.T, status game.Status) livegame.Snapshot {
	t.Helper()

	r, err := roster.New("team-1", []player.Player{
		{ID: "p-1", Name: "Ada", UniformNumber: 4},
		{ID: "p-2", Name: "Bo", UniformNumber: 7},
	})
	if err != nil {
		t.Fatalf("build roster: %v", err)
	}
	g := game.Game{ID: "game-1", TeamID: "team-1", Status: status, Periods: &game.PeriodConfig{TotalPeriods: 2, PeriodLength: 20}}
	initial := livegame.NewLiveGame(&g, r)
	return livegame.Snapshot{Game: initial, Initial: initial, Revision: 3}
}

func TestLiveGameService_OpenMissingRosterWithMockery(t *testing.T) {
	t.Parallel()

	service, games, rosters, store := newMockedLiveGameService(t)
	store.
		On("Get", mock.Anything, "game-1").
		Return(livegame.Snapshot{}, false, nil).
		Once()
	games.
		On("GetByID", mock.Anything, "game-1").
		Return(game.Game{ID: "game-1", TeamID: "team-1", Status: game.StatusNew}, true, nil).
		Once()
	rosters.
		On("GetByTeam", mock.Anything, "team-1").
		Return(roster.Roster{}, false, nil).
		Once()

	_, _, err := service.Open(context.Background(), "game-1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLiveGameService_DispatchMapsRevisionConflictWithMockery(t *testing.T) {
	t.Parallel()

	service, _, _, store := newMockedLiveGameService(t)
	current := openedSnapshot(t, game.StatusNew)

	store.
		On("Get", mock.Anything, "game-1").
		Return(current, true, nil).
		Once()
	store.
		On("Commit", mock.Anything,
			mock.MatchedBy(func(s livegame.Snapshot) bool { return s.Revision == 4 }),
			mock.MatchedBy(func(r livegame.ActionRecord) bool {
				return r.ID == "rec-1" && r.Revision == 4 && r.Kind == livegame.KindSelectPlayer
			}),
		).
		Return(livegame.ErrRevisionConflict).
		Once()

	_, err := service.Dispatch(context.Background(), "game-1", livegame.SelectPlayer{PlayerID: "p-1", Selected: true})
	if !errors.Is(err, ErrConflict) || !errors.Is(err, livegame.ErrRevisionConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestLiveGameService_DispatchMapsOpenCircuitWithMockery(t *testing.T) {
	t.Parallel()

	service, _, _, store := newMockedLiveGameService(t)
	store.
		On("Get", mock.Anything, "game-1").
		Return(livegame.Snapshot{}, false, resilience.ErrCircuitOpen).
		Once()

	_, err := service.Dispatch(context.Background(), "game-1", livegame.StartGame{})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestLiveGameService_StatusMirrorFailureIsNotFatalWithMockery(t *testing.T) {
	t.Parallel()

	service, games, _, store := newMockedLiveGameService(t)
	current := openedSnapshot(t, game.StatusNew)
	current.Game.Formation = &livegame.Formation{ID: "3-2"}
	current.Game.SetupTasks = []livegame.SetupTask{
		{Step: livegame.StepFormation, Status: livegame.SetupComplete},
		{Step: livegame.StepRoster, Status: livegame.SetupComplete},
	}

	store.
		On("Get", mock.Anything, "game-1").
		Return(current, true, nil).
		Once()
	store.
		On("Commit", mock.Anything,
			mock.MatchedBy(func(s livegame.Snapshot) bool { return s.Game.Status == game.StatusStart }),
			mock.Anything,
		).
		Return(nil).
		Once()
	games.
		On("UpdateStatus", mock.Anything, "game-1", game.StatusStart).
		Return(errors.New("db down")).
		Once()

	updated, err := service.Dispatch(context.Background(), "game-1", livegame.StartGame{})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if updated.Game.Status != game.StatusStart || updated.Revision != 4 {
		t.Fatalf("unexpected snapshot: status=%s revision=%d", updated.Game.Status, updated.Revision)
	}
}

func TestLiveGameService_NoOpActionIsStillRecordedWithMockery(t *testing.T) {
	t.Parallel()

	service, games, _, store := newMockedLiveGameService(t)
	current := openedSnapshot(t, game.StatusNew)

	store.
		On("Get", mock.Anything, "game-1").
		Return(current, true, nil).
		Once()
	store.
		On("Commit", mock.Anything, mock.Anything, mock.MatchedBy(func(r livegame.ActionRecord) bool {
			return r.Kind == livegame.KindToggleClock
		})).
		Return(nil).
		Once()

	updated, err := service.Dispatch(context.Background(), "game-1", livegame.ToggleClock{})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if !livegame.SameState(updated.Game, current.Game) {
		t.Fatalf("toggle before start must not change the game")
	}
	games.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestLiveGameService_AuditReportsStoreFailureWithMockery(t *testing.T) {
	t.Parallel()

	service, _, _, store := newMockedLiveGameService(t)
	current := openedSnapshot(t, game.StatusStart)

	store.
		On("ListOpen", mock.Anything).
		Return([]livegame.Snapshot{current}, nil).
		Once()
	store.
		On("ListActions", mock.Anything, "game-1").
		Return(nil, errors.New("timeout")).
		Once()

	result, err := service.AuditReplays(context.Background(), AuditInput{})
	if err != nil {
		t.Fatalf("audit replays: %v", err)
	}
	if result.Failed != 1 || result.Entries[0].Status != auditStatusFailed {
		t.Fatalf("unexpected audit result: %+v", result)
	}
}

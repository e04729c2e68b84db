package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/live-match/internal/domain/game"
	"github.com/riskibarqy/live-match/internal/domain/livegame"
	"github.com/riskibarqy/live-match/internal/domain/roster"
	idgen "github.com/riskibarqy/live-match/internal/platform/id"
	"github.com/riskibarqy/live-match/internal/platform/logging"
)

// LiveGameService runs live games: it opens snapshots, applies actions and
// keeps the action log that replays them.
type LiveGameService struct {
	games   game.Repository
	rosters roster.Repository
	store   livegame.Repository
	machine *livegame.Machine
	ids     idgen.Generator
	logger  *logging.Logger
	locks   gameLocks
}

func NewLiveGameService(
	games game.Repository,
	rosters roster.Repository,
	store livegame.Repository,
	clock livegame.Clock,
	ids idgen.Generator,
	logger *logging.Logger,
) *LiveGameService {
	if ids == nil {
		ids = idgen.NewUUIDGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &LiveGameService{
		games:   games,
		rosters: rosters,
		store:   store,
		machine: livegame.NewMachine(clock),
		ids:     ids,
		logger:  logger,
	}
}

// Now is the service clock reading used for applied actions and clock views.
func (s *LiveGameService) Now() time.Time {
	return s.machine.Now()
}

// ReplayResult is a snapshot rebuilt from the action log.
type ReplayResult struct {
	Game     livegame.LiveGame
	Actions  int
	Revision int64
	Matches  bool
}

// Open returns the live game for gameID, creating it from the game and its
// team roster on first use. The bool reports whether it was created.
func (s *LiveGameService) Open(ctx context.Context, gameID string) (livegame.Snapshot, bool, error) {
	ctx, span := childSpan(ctx, "LiveGameService.Open")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return livegame.Snapshot{}, false, fmt.Errorf("%w: game_id is required", ErrInvalidInput)
	}

	unlock := s.locks.lock(gameID)
	defer unlock()

	existing, exists, err := s.store.Get(ctx, gameID)
	if err != nil {
		return livegame.Snapshot{}, false, fmt.Errorf("get live game: %w", classifyStoreError(err))
	}
	if exists {
		return existing, false, nil
	}

	g, exists, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		return livegame.Snapshot{}, false, fmt.Errorf("get game: %w", err)
	}
	if !exists {
		return livegame.Snapshot{}, false, fmt.Errorf("%w: game %s", ErrNotFound, gameID)
	}
	if g.Status != game.StatusNew {
		return livegame.Snapshot{}, false, fmt.Errorf("%w: game %s is %s, only NEW games can be opened", ErrInvalidInput, gameID, g.Status)
	}

	r, exists, err := s.rosters.GetByTeam(ctx, g.TeamID)
	if err != nil {
		return livegame.Snapshot{}, false, fmt.Errorf("get roster: %w", err)
	}
	if !exists {
		return livegame.Snapshot{}, false, fmt.Errorf("%w: roster for team %s", ErrNotFound, g.TeamID)
	}

	initial := livegame.NewLiveGame(&g, r)
	now := s.machine.Now()
	snapshot := livegame.Snapshot{
		Game:      initial,
		Initial:   initial,
		Revision:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, snapshot); err != nil {
		return livegame.Snapshot{}, false, fmt.Errorf("create live game: %w", classifyStoreError(err))
	}

	s.logger.InfoContext(ctx, "live game opened",
		"game_id", gameID,
		"team_id", g.TeamID,
		"players", len(initial.Players),
	)
	return snapshot, true, nil
}

func (s *LiveGameService) Get(ctx context.Context, gameID string) (livegame.Snapshot, error) {
	ctx, span := childSpan(ctx, "LiveGameService.Get")
	defer span.End()

	return s.getSnapshot(ctx, gameID)
}

// Dispatch applies action to the current snapshot and commits the result
// together with its action record.
func (s *LiveGameService) Dispatch(ctx context.Context, gameID string, action livegame.Action) (livegame.Snapshot, error) {
	ctx, span := childSpan(ctx, "LiveGameService.Dispatch")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return livegame.Snapshot{}, fmt.Errorf("%w: game_id is required", ErrInvalidInput)
	}
	if action == nil {
		return livegame.Snapshot{}, fmt.Errorf("%w: action is required", ErrInvalidInput)
	}

	unlock := s.locks.lock(gameID)
	defer unlock()

	current, err := s.getSnapshot(ctx, gameID)
	if err != nil {
		return livegame.Snapshot{}, err
	}

	next, appliedAt := s.machine.Dispatch(current.Game, action)

	recordID, err := s.ids.NewID()
	if err != nil {
		return livegame.Snapshot{}, fmt.Errorf("generate action id: %w", err)
	}

	updated := current
	updated.Game = next
	updated.Revision = current.Revision + 1
	updated.UpdatedAt = appliedAt
	record := livegame.ActionRecord{
		ID:        recordID,
		GameID:    gameID,
		Revision:  updated.Revision,
		Kind:      action.Kind(),
		Action:    action,
		AppliedAt: appliedAt,
	}
	if err := s.store.Commit(ctx, updated, record); err != nil {
		return livegame.Snapshot{}, fmt.Errorf("commit live game action: %w", classifyStoreError(err))
	}

	if next.Status != current.Game.Status {
		s.syncGameStatus(ctx, gameID, next.Status)
	}

	s.logger.InfoContext(ctx, "live game action applied",
		"game_id", gameID,
		"action", string(record.Kind),
		"revision", updated.Revision,
	)
	return updated, nil
}

// History returns the action log of a live game in application order.
func (s *LiveGameService) History(ctx context.Context, gameID string) ([]livegame.ActionRecord, error) {
	ctx, span := childSpan(ctx, "LiveGameService.History")
	defer span.End()

	snapshot, err := s.getSnapshot(ctx, gameID)
	if err != nil {
		return nil, err
	}

	records, err := s.store.ListActions(ctx, snapshot.Game.ID)
	if err != nil {
		return nil, fmt.Errorf("list live game actions: %w", classifyStoreError(err))
	}
	return records, nil
}

// Replay rebuilds a live game from its initial state and action log and
// reports whether the result matches the stored snapshot.
func (s *LiveGameService) Replay(ctx context.Context, gameID string) (ReplayResult, error) {
	ctx, span := childSpan(ctx, "LiveGameService.Replay")
	defer span.End()

	snapshot, err := s.getSnapshot(ctx, gameID)
	if err != nil {
		return ReplayResult{}, err
	}

	return s.replaySnapshot(ctx, snapshot)
}

func (s *LiveGameService) replaySnapshot(ctx context.Context, snapshot livegame.Snapshot) (ReplayResult, error) {
	records, err := s.store.ListActions(ctx, snapshot.Game.ID)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("list live game actions: %w", classifyStoreError(err))
	}

	rebuilt := livegame.Replay(snapshot.Initial, livegame.TimedActions(records))
	return ReplayResult{
		Game:     rebuilt,
		Actions:  len(records),
		Revision: snapshot.Revision,
		Matches:  int64(len(records)) == snapshot.Revision-1 && livegame.SameState(rebuilt, snapshot.Game),
	}, nil
}

func (s *LiveGameService) getSnapshot(ctx context.Context, gameID string) (livegame.Snapshot, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return livegame.Snapshot{}, fmt.Errorf("%w: game_id is required", ErrInvalidInput)
	}

	snapshot, exists, err := s.store.Get(ctx, gameID)
	if err != nil {
		return livegame.Snapshot{}, fmt.Errorf("get live game: %w", classifyStoreError(err))
	}
	if !exists {
		return livegame.Snapshot{}, fmt.Errorf("%w: live game %s", ErrNotFound, gameID)
	}
	return snapshot, nil
}

// syncGameStatus mirrors the live status onto the game record. The live
// snapshot is authoritative, so a failed mirror is logged and not returned.
func (s *LiveGameService) syncGameStatus(ctx context.Context, gameID string, status game.Status) {
	if err := s.games.UpdateStatus(ctx, gameID, status); err != nil {
		s.logger.WarnContext(ctx, "mirror game status failed",
			"game_id", gameID,
			"status", string(status),
			"error", err,
		)
	}
}

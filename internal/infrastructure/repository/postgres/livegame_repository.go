package postgres

import (
	"context"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/live-match/internal/domain/game"
	"github.com/riskibarqy/live-match/internal/domain/livegame"
	qb "github.com/riskibarqy/live-match/internal/platform/querybuilder"
)

// LiveGameRepository stores live game snapshots as JSONB documents next to an
// append-only action log. Commits are guarded by the snapshot revision.
type LiveGameRepository struct {
	db *sqlx.DB
}

func NewLiveGameRepository(db *sqlx.DB) *LiveGameRepository {
	return &LiveGameRepository{db: db}
}

func (r *LiveGameRepository) Get(ctx context.Context, gameID string) (livegame.Snapshot, bool, error) {
	query, args, err := qb.Select("*").From("live_games").
		Where(qb.Eq("game_public_id", gameID)).
		ToSQL()
	if err != nil {
		return livegame.Snapshot{}, false, fmt.Errorf("build get live game query: %w", err)
	}

	var row liveGameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return livegame.Snapshot{}, false, nil
		}
		return livegame.Snapshot{}, false, fmt.Errorf("get live game: %w", err)
	}

	snapshot, err := snapshotFromRow(row)
	if err != nil {
		return livegame.Snapshot{}, false, err
	}
	return snapshot, true, nil
}

func (r *LiveGameRepository) Create(ctx context.Context, snapshot livegame.Snapshot) error {
	state, err := encodeLiveGame(snapshot.Game)
	if err != nil {
		return crerr.Wrapf(err, "encode live game %s", snapshot.Game.ID)
	}
	initial, err := encodeLiveGame(snapshot.Initial)
	if err != nil {
		return crerr.Wrapf(err, "encode initial live game %s", snapshot.Game.ID)
	}

	insertModel := liveGameInsertModel{
		GameID:       snapshot.Game.ID,
		TeamID:       snapshot.Game.TeamID,
		Status:       string(snapshot.Game.Status),
		Revision:     snapshot.Revision,
		State:        state,
		InitialState: initial,
		CreatedAt:    snapshot.CreatedAt.UTC(),
		UpdatedAt:    snapshot.UpdatedAt.UTC(),
	}
	query, args, err := qb.InsertModel("live_games", insertModel, "ON CONFLICT (game_public_id) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build insert live game query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert live game: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read live game rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: game %s already open", livegame.ErrRevisionConflict, snapshot.Game.ID)
	}
	return nil
}

func (r *LiveGameRepository) Commit(ctx context.Context, snapshot livegame.Snapshot, record livegame.ActionRecord) error {
	gameID := snapshot.Game.ID
	state, err := encodeLiveGame(snapshot.Game)
	if err != nil {
		return crerr.Wrapf(err, "encode live game %s", gameID)
	}
	payload, err := livegame.MarshalAction(record.Action)
	if err != nil {
		return crerr.Wrapf(err, "encode action %s for game %s", record.ID, gameID)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx commit live game: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Update("live_games").
		Set("status", string(snapshot.Game.Status)).
		Set("revision", snapshot.Revision).
		Set("state", state).
		Set("updated_at", snapshot.UpdatedAt.UTC()).
		Where(
			qb.Eq("game_public_id", gameID),
			qb.Eq("revision", snapshot.Revision-1),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update live game query: %w", err)
	}
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update live game: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read live game rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: game %s expected revision %d", livegame.ErrRevisionConflict, gameID, snapshot.Revision-1)
	}

	actionModel := liveGameActionInsertModel{
		ActionID:  record.ID,
		GameID:    gameID,
		Revision:  record.Revision,
		Kind:      string(record.Kind),
		Payload:   string(payload),
		AppliedAt: record.AppliedAt.UTC(),
	}
	query, args, err = qb.InsertModel("live_game_actions", actionModel, "")
	if err != nil {
		return fmt.Errorf("build insert live game action query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: game %s revision %d already recorded", livegame.ErrRevisionConflict, gameID, record.Revision)
		}
		return fmt.Errorf("insert live game action: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit live game tx: %w", err)
	}
	return nil
}

func (r *LiveGameRepository) ListOpen(ctx context.Context) ([]livegame.Snapshot, error) {
	query, args, err := qb.Select("*").From("live_games").
		Where(qb.NotEq("status", string(game.StatusDone))).
		OrderBy("game_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list open live games query: %w", err)
	}

	var rows []liveGameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list open live games: %w", err)
	}

	out := make([]livegame.Snapshot, 0, len(rows))
	for _, row := range rows {
		snapshot, err := snapshotFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, snapshot)
	}
	return out, nil
}

func (r *LiveGameRepository) ListActions(ctx context.Context, gameID string) ([]livegame.ActionRecord, error) {
	query, args, err := qb.Select("*").From("live_game_actions").
		Where(qb.Eq("game_public_id", gameID)).
		OrderBy("revision").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list live game actions query: %w", err)
	}

	var rows []liveGameActionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list live game actions: %w", err)
	}

	out := make([]livegame.ActionRecord, 0, len(rows))
	for _, row := range rows {
		kind := livegame.ActionKind(row.Kind)
		action, err := livegame.UnmarshalAction(kind, []byte(row.Payload))
		if err != nil {
			return nil, crerr.Wrapf(err, "decode action %s of game %s", row.ActionID, gameID)
		}
		out = append(out, livegame.ActionRecord{
			ID:        row.ActionID,
			GameID:    row.GameID,
			Revision:  row.Revision,
			Kind:      kind,
			Action:    action,
			AppliedAt: row.AppliedAt.UTC(),
		})
	}
	return out, nil
}

func snapshotFromRow(row liveGameTableModel) (livegame.Snapshot, error) {
	current, err := decodeLiveGame(row.State)
	if err != nil {
		return livegame.Snapshot{}, crerr.Wrapf(err, "live game %s state", row.GameID)
	}
	initial, err := decodeLiveGame(row.InitialState)
	if err != nil {
		return livegame.Snapshot{}, crerr.Wrapf(err, "live game %s initial state", row.GameID)
	}
	return livegame.Snapshot{
		Game:      current,
		Initial:   initial,
		Revision:  row.Revision,
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}, nil
}

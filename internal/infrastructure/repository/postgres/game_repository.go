package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/live-match/internal/domain/game"
	qb "github.com/riskibarqy/live-match/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	query, args, err := qb.Select("*").From("games").
		Where(
			qb.Eq("public_id", gameID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build get game by id query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("get game by id: %w", err)
	}

	return gameFromRow(row), true, nil
}

func (r *GameRepository) ListByTeam(ctx context.Context, teamID string) ([]game.Game, error) {
	query, args, err := qb.Select("*").From("games").
		Where(
			qb.Eq("team_public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("scheduled_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list games by team query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list games by team: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameFromRow(row))
	}
	return out, nil
}

func (r *GameRepository) Upsert(ctx context.Context, item game.Game) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("validate game: %w", err)
	}

	insertModel := gameInsertModel{
		PublicID:    item.ID,
		TeamID:      item.TeamID,
		Name:        item.Name,
		Opponent:    optionalString(item.Opponent),
		ScheduledAt: item.ScheduledAt.UTC(),
		Status:      string(item.Status),
	}
	if item.Periods != nil {
		total, length := item.Periods.TotalPeriods, item.Periods.PeriodLength
		insertModel.TotalPeriods = &total
		insertModel.PeriodLength = &length
	}

	query, args, err := qb.InsertModel("games", insertModel, `ON CONFLICT (public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    team_public_id = EXCLUDED.team_public_id,
    name = EXCLUDED.name,
    opponent = EXCLUDED.opponent,
    scheduled_at = EXCLUDED.scheduled_at,
    status = EXCLUDED.status,
    total_periods = EXCLUDED.total_periods,
    period_length_minutes = EXCLUDED.period_length_minutes,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build game upsert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert game %s: %w", item.ID, err)
	}
	return nil
}

func (r *GameRepository) UpdateStatus(ctx context.Context, gameID string, status game.Status) error {
	query, args, err := qb.Update("games").
		Set("status", string(status)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", gameID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update game status query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update game status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read game status rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update game status: game %s not found", gameID)
	}
	return nil
}

func gameFromRow(row gameTableModel) game.Game {
	out := game.Game{
		ID:          row.PublicID,
		TeamID:      row.TeamID,
		Name:        row.Name,
		Opponent:    nullStringToString(row.Opponent),
		ScheduledAt: row.ScheduledAt.UTC(),
		Status:      game.Status(row.Status),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}
	if row.TotalPeriods.Valid && row.PeriodLength.Valid {
		out.Periods = &game.PeriodConfig{
			TotalPeriods: nullInt64ToInt(row.TotalPeriods),
			PeriodLength: nullInt64ToInt(row.PeriodLength),
		}
	}
	return out
}

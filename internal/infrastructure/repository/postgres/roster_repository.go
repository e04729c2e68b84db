package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/live-match/internal/domain/player"
	"github.com/riskibarqy/live-match/internal/domain/roster"
	qb "github.com/riskibarqy/live-match/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// GetByTeam reports a roster as missing when the team has no active players.
func (r *RosterRepository) GetByTeam(ctx context.Context, teamID string) (roster.Roster, bool, error) {
	query, args, err := qb.Select("*").From("roster_players").
		Where(
			qb.Eq("team_public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("uniform_number", "player_public_id").
		ToSQL()
	if err != nil {
		return roster.Roster{}, false, fmt.Errorf("build get roster query: %w", err)
	}

	var rows []rosterPlayerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return roster.Roster{}, false, fmt.Errorf("get roster: %w", err)
	}
	if len(rows) == 0 {
		return roster.Roster{}, false, nil
	}

	players := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		players = append(players, player.Player{
			ID:            row.PlayerID,
			Name:          row.Name,
			UniformNumber: row.UniformNumber,
			Positions:     append([]string(nil), row.Positions...),
		})
	}

	out, err := roster.New(teamID, players)
	if err != nil {
		return roster.Roster{}, false, fmt.Errorf("decode roster %s: %w", teamID, err)
	}
	return out, true, nil
}

// Upsert replaces the active roster of a team: players missing from item are
// soft deleted.
func (r *RosterRepository) Upsert(ctx context.Context, item roster.Roster) error {
	players := item.Sorted()
	if len(players) == 0 {
		return fmt.Errorf("roster %s has no players", item.TeamID)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert roster: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	keep := make([]string, 0, len(players))
	models := make([]rosterPlayerInsertModel, 0, len(players))
	for _, p := range players {
		keep = append(keep, p.ID)
		models = append(models, rosterPlayerInsertModel{
			TeamID:        item.TeamID,
			PlayerID:      p.ID,
			Name:          p.Name,
			UniformNumber: p.UniformNumber,
			Positions:     pq.StringArray(p.Positions),
		})
	}

	query, args, err := qb.Update("roster_players").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("team_public_id", item.TeamID),
			qb.IsNull("deleted_at"),
			qb.Expr("NOT (player_public_id = ANY(?))", pq.Array(keep)),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build retire roster players query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("retire roster players for team %s: %w", item.TeamID, err)
	}

	query, args, err = qb.InsertModels("roster_players", models, `ON CONFLICT (team_public_id, player_public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    name = EXCLUDED.name,
    uniform_number = EXCLUDED.uniform_number,
    positions = EXCLUDED.positions,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build roster upsert query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert roster players for team %s: %w", item.TeamID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert roster tx: %w", err)
	}
	return nil
}

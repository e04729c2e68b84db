package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/live-match/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads seed games and rosters into an empty database. A
// database that already holds games is left untouched.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, seed memory.Seed) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM games WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count games for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	games := NewGameRepository(db)
	for _, g := range seed.Games {
		if err := games.Upsert(ctx, g); err != nil {
			return fmt.Errorf("seed game %s: %w", g.ID, err)
		}
	}

	rosters := NewRosterRepository(db)
	for _, r := range seed.Rosters {
		if err := rosters.Upsert(ctx, r); err != nil {
			return fmt.Errorf("seed roster %s: %w", r.TeamID, err)
		}
	}
	return nil
}

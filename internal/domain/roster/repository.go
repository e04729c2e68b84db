package roster

import "context"

// Repository exposes roster persistence operations.
type Repository interface {
	GetByTeam(ctx context.Context, teamID string) (Roster, bool, error)
	Upsert(ctx context.Context, roster Roster) error
}

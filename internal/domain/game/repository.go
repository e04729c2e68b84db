package game

import "context"

// Repository describes game persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, gameID string) (Game, bool, error)
	ListByTeam(ctx context.Context, teamID string) ([]Game, error)
	Upsert(ctx context.Context, item Game) error
	UpdateStatus(ctx context.Context, gameID string, status Status) error
}

package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/live-match/internal/domain/game"
	"github.com/riskibarqy/live-match/internal/domain/roster"
)

type GameService struct {
	games   game.Repository
	rosters roster.Repository
}

func NewGameService(games game.Repository, rosters roster.Repository) *GameService {
	return &GameService{games: games, rosters: rosters}
}

func (s *GameService) ListByTeam(ctx context.Context, teamID string) ([]game.Game, error) {
	ctx, span := childSpan(ctx, "GameService.ListByTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}

	items, err := s.games.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list games by team: %w", err)
	}
	return items, nil
}

func (s *GameService) GetByID(ctx context.Context, gameID string) (game.Game, error) {
	ctx, span := childSpan(ctx, "GameService.GetByID")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return game.Game{}, fmt.Errorf("%w: game_id is required", ErrInvalidInput)
	}

	item, exists, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		return game.Game{}, fmt.Errorf("get game: %w", err)
	}
	if !exists {
		return game.Game{}, fmt.Errorf("%w: game %s", ErrNotFound, gameID)
	}
	return item, nil
}

func (s *GameService) GetRoster(ctx context.Context, teamID string) (roster.Roster, error) {
	ctx, span := childSpan(ctx, "GameService.GetRoster")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return roster.Roster{}, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}

	item, exists, err := s.rosters.GetByTeam(ctx, teamID)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("get roster: %w", err)
	}
	if !exists {
		return roster.Roster{}, fmt.Errorf("%w: roster for team %s", ErrNotFound, teamID)
	}
	return item, nil
}

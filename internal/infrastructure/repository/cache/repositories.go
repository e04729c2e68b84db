package cache

import (
	"context"

	"github.com/riskibarqy/live-match/internal/domain/game"
	"github.com/riskibarqy/live-match/internal/domain/roster"
	basecache "github.com/riskibarqy/live-match/internal/platform/cache"
)

type GameRepository struct {
	next  game.Repository
	cache *basecache.Store
}

func NewGameRepository(next game.Repository, cache *basecache.Store) *GameRepository {
	return &GameRepository{next: next, cache: cache}
}

func (r *GameRepository) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, gameByIDKey(gameID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, gameID)
		if err != nil {
			return nil, err
		}
		return cachedGameByID{value: cloneGame(item), exists: exists}, nil
	})
	if err != nil {
		return game.Game{}, false, err
	}

	cached, _ := v.(cachedGameByID)
	return cloneGame(cached.value), cached.exists, nil
}

func (r *GameRepository) ListByTeam(ctx context.Context, teamID string) ([]game.Game, error) {
	v, err := r.cache.GetOrLoad(ctx, gameListKey(teamID), func(ctx context.Context) (any, error) {
		items, err := r.next.ListByTeam(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cloneGames(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]game.Game)
	return cloneGames(items), nil
}

func (r *GameRepository) Upsert(ctx context.Context, item game.Game) error {
	if err := r.next.Upsert(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, gameByIDKey(item.ID))
	r.cache.DeletePrefix(ctx, "game:list:")
	return nil
}

func (r *GameRepository) UpdateStatus(ctx context.Context, gameID string, status game.Status) error {
	if err := r.next.UpdateStatus(ctx, gameID, status); err != nil {
		return err
	}
	r.cache.Delete(ctx, gameByIDKey(gameID))
	r.cache.DeletePrefix(ctx, "game:list:")
	return nil
}

type cachedGameByID struct {
	value  game.Game
	exists bool
}

func gameByIDKey(gameID string) string {
	return "game:id:" + gameID
}

func gameListKey(teamID string) string {
	return "game:list:" + teamID
}

func cloneGame(g game.Game) game.Game {
	if g.Periods != nil {
		periods := *g.Periods
		g.Periods = &periods
	}
	return g
}

func cloneGames(items []game.Game) []game.Game {
	out := make([]game.Game, 0, len(items))
	for _, item := range items {
		out = append(out, cloneGame(item))
	}
	return out
}

type RosterRepository struct {
	next  roster.Repository
	cache *basecache.Store
}

func NewRosterRepository(next roster.Repository, cache *basecache.Store) *RosterRepository {
	return &RosterRepository{next: next, cache: cache}
}

func (r *RosterRepository) GetByTeam(ctx context.Context, teamID string) (roster.Roster, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, rosterKey(teamID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByTeam(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedRoster{value: item.Clone(), exists: exists}, nil
	})
	if err != nil {
		return roster.Roster{}, false, err
	}

	cached, _ := v.(cachedRoster)
	return cached.value.Clone(), cached.exists, nil
}

func (r *RosterRepository) Upsert(ctx context.Context, item roster.Roster) error {
	if err := r.next.Upsert(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, rosterKey(item.TeamID))
	return nil
}

type cachedRoster struct {
	value  roster.Roster
	exists bool
}

func rosterKey(teamID string) string {
	return "roster:team:" + teamID
}

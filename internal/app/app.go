package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/live-match/internal/config"
	"github.com/riskibarqy/live-match/internal/domain/game"
	"github.com/riskibarqy/live-match/internal/domain/livegame"
	"github.com/riskibarqy/live-match/internal/domain/roster"
	cacherepo "github.com/riskibarqy/live-match/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/live-match/internal/infrastructure/repository/guarded"
	"github.com/riskibarqy/live-match/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/live-match/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/live-match/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/live-match/internal/platform/cache"
	idgen "github.com/riskibarqy/live-match/internal/platform/id"
	"github.com/riskibarqy/live-match/internal/platform/logging"
	"github.com/riskibarqy/live-match/internal/platform/resilience"
	"github.com/riskibarqy/live-match/internal/usecase"
)

// App holds the wired HTTP server and the services background jobs run on.
type App struct {
	Server    *http.Server
	LiveGames *usecase.LiveGameService

	db *sqlx.DB
}

type repositories struct {
	games     game.Repository
	rosters   roster.Repository
	liveGames livegame.Repository
	db        *sqlx.DB
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	clock := clockwork.NewRealClock()

	repos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	games := repos.games
	rosters := repos.rosters
	if cfg.CacheEnabled {
		store := basecache.NewStoreWithClock(cfg.CacheTTL, clock)
		games = cacherepo.NewGameRepository(games, store)
		rosters = cacherepo.NewRosterRepository(rosters, store)
	}

	liveGames := repos.liveGames
	if cfg.DBCircuitEnabled {
		storeLogger := logger.Named("livegame-store")
		breaker := resilience.NewBreaker(resilience.Settings{
			FailureThreshold: cfg.DBCircuitFailureCount,
			Cooldown:         cfg.DBCircuitOpenTimeout,
			ProbeLimit:       cfg.DBCircuitHalfOpenMaxReq,
			OnStateChange: func(from, to resilience.State) {
				storeLogger.Warn("live game store circuit changed state", "from", string(from), "to", string(to))
			},
		}, clock)
		liveGames = guarded.NewLiveGameRepository(liveGames, breaker, storeLogger)
	}

	gameSvc := usecase.NewGameService(games, rosters)
	liveGameSvc := usecase.NewLiveGameService(
		games,
		rosters,
		liveGames,
		clock,
		idgen.NewUUIDGenerator(),
		logger,
	)

	handler := httpapi.NewHandler(gameSvc, liveGameSvc, cfg.SweepWorkers, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	logger.Info("app wired",
		"storage", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
		"db_circuit_enabled", cfg.DBCircuitEnabled,
	)

	return &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		LiveGames: liveGameSvc,
		db:        repos.db,
	}, nil
}

func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	seed, err := memory.LoadSeedFile(cfg.SeedFile)
	if err != nil {
		return repositories{}, fmt.Errorf("load seed: %w", err)
	}

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		dsn := postgres.DSN(cfg.DBURL, cfg.DBDisablePreparedBinary)
		db, err := postgres.Open(ctx, dsn)
		if err != nil {
			return repositories{}, err
		}
		if err := postgres.BootstrapSeed(ctx, db, seed); err != nil {
			_ = db.Close()
			return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
		}
		logger.Info("postgres storage ready", "db_name", postgres.DatabaseName(dsn))
		return repositories{
			games:     postgres.NewGameRepository(db),
			rosters:   postgres.NewRosterRepository(db),
			liveGames: postgres.NewLiveGameRepository(db),
			db:        db,
		}, nil
	default:
		logger.Info("memory storage ready", "games", len(seed.Games), "rosters", len(seed.Rosters))
		return repositories{
			games:     memory.NewGameRepository(seed.Games),
			rosters:   memory.NewRosterRepository(seed.Rosters),
			liveGames: memory.NewLiveGameRepository(),
		}, nil
	}
}

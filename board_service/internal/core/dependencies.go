package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"jobboard/board_service/configs"
	"jobboard/board_service/internal/board_server/handlers"
	"jobboard/board_service/internal/board_server/repository"
	"jobboard/board_service/internal/board_server/service"
	"jobboard/board_service/internal/docstore"
	"jobboard/board_service/internal/docstore/memstore"
	"jobboard/board_service/internal/docstore/pgstore"
	"jobboard/board_service/internal/sampledata"
	"jobboard/board_service/internal/stats"
	"jobboard/board_service/internal/tagcache"
	"jobboard/global_models/global_cache"
	"jobboard/shared/circuitbreaker"
	"jobboard/shared/cookie"
	"jobboard/shared/inmemory_cache"
	"jobboard/shared/jwt_service"
	"jobboard/shared/logger"
	postgresdb "jobboard/shared/postgres_db"
	"jobboard/shared/redis"
)

// BoardServiceDependencies содержит все зависимости сервера доски вакансий
type BoardServiceDependencies struct {
	Config  *configs.BoardServiceConfig
	Logger  *slog.Logger
	Handler *handlers.BoardHandler
	Tokens  *jwt_service.JWTService
	Cookies *cookie.Manager
	Breaker *circuitbreaker.CircuitBreaker

	closers []func() error
}

// InitDependencies инициализирует зависимости board_service
func InitDependencies(ctx context.Context) (*BoardServiceDependencies, error) {
	log := logger.New(logger.ConfigFromEnv())
	log.Info("runtime", "gomaxprocs", runtime.GOMAXPROCS(-1))

	conf, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	deps := &BoardServiceDependencies{Config: conf, Logger: log}

	store, closeStore, err := OpenStore(ctx, conf.Storage, true)
	if err != nil {
		return nil, err
	}
	deps.closers = append(deps.closers, closeStore)

	repo, err := repository.NewBoardRepository(store)
	if err != nil {
		_ = deps.Close()
		return nil, err
	}

	cache, err := newTagCache(ctx, conf, log)
	if err != nil {
		_ = deps.Close()
		return nil, err
	}
	if cache != nil {
		deps.closers = append(deps.closers, cache.backend.Close)
	}

	// резервный набор для деградированных ответов
	sample, err := sampledata.NewStore(time.Now())
	if err != nil {
		_ = deps.Close()
		return nil, fmt.Errorf("failed to build sample dataset: %w", err)
	}
	fallback, err := repository.NewBoardRepository(sample)
	if err != nil {
		_ = deps.Close()
		return nil, err
	}

	loc, err := conf.StatsConf.Location()
	if err != nil {
		_ = deps.Close()
		return nil, err
	}

	deps.Breaker = circuitbreaker.NewCircuitBreaker("docstore", *conf.BreakerConf)
	deps.Tokens = jwt_service.NewJWTService(conf.JWTConf)
	deps.Cookies = cookie.NewManager(*conf.CookieConf)

	var tc *tagcache.Cache
	if cache != nil {
		tc = cache.tags
	}

	engine := stats.NewEngine(
		service.BreakerSource{Source: repo, Breaker: deps.Breaker},
		sampledata.StatsSource{},
		loc,
		log,
	)

	services := handlers.Services{
		Public:       service.NewPublicService(repo, fallback, deps.Breaker, tc, conf.ListingConf, log),
		Jobs:         service.NewJobService(repo, tc, log),
		Applications: service.NewApplicationService(repo, tc, log),
		Dashboard:    service.NewDashboardService(engine, conf.StatsConf, log),
		Auth:         service.NewAuthService(repo, tc, conf.OAuthConf, deps.Tokens, nil, log),
		Follows:      service.NewFollowService(repo, log),
	}
	deps.Handler = handlers.NewBoardHandler(services, deps.Cookies, conf.OAuthConf, conf.ListingConf, log)

	if !conf.OAuthConf.Enabled() {
		log.Warn("oauth client id is not set, sign-in is disabled")
	}
	return deps, nil
}

type tagCache struct {
	backend global_cache.Cache
	tags    *tagcache.Cache
}

// newTagCache - кэш чтения поверх памяти или redis
func newTagCache(ctx context.Context, conf *configs.BoardServiceConfig, log *slog.Logger) (*tagCache, error) {
	var (
		backend global_cache.Cache
		err     error
	)
	switch conf.CacheDriver {
	case configs.DriverMemory:
		backend, err = inmemory_cache.NewInmemoryShardedCache(16, time.Minute)
	case configs.DriverRedis:
		backend, err = redis.NewRedisCache(ctx, conf.RedisConf)
	default:
		return nil, fmt.Errorf("unknown CACHE_DRIVER %q", conf.CacheDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s cache: %w", conf.CacheDriver, err)
	}

	log.Info("read cache ready", "driver", conf.CacheDriver, "ttl", conf.ListingConf.CacheTTL)
	return &tagCache{backend: backend, tags: tagcache.New(backend, conf.ListingConf.CacheTTL, log)}, nil
}

// OpenStore открывает хранилище документов по драйверу; migrate создаёт схему postgres
func OpenStore(ctx context.Context, storage configs.StorageConfig, migrate bool) (docstore.Store, func() error, error) {
	switch storage.Driver {
	case configs.DriverMemory:
		slog.Warn("using in-memory document store, data is lost on restart")
		return memstore.New(), func() error { return nil }, nil

	case configs.DriverPostgres:
		pgRepo, err := postgresdb.NewPgRepo(ctx, storage.PostgresDBConf)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		store := pgstore.New(pgRepo.Pool())
		if migrate {
			if err := store.Migrate(ctx); err != nil {
				pgRepo.Close()
				return nil, nil, fmt.Errorf("failed to migrate document store: %w", err)
			}
		}
		return store, func() error { pgRepo.Close(); return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown DOCSTORE_DRIVER %q", storage.Driver)
	}
}

// Close освобождает ресурсы в обратном порядке
func (d *BoardServiceDependencies) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}

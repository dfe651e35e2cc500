package postgresdb

import (
	"context"
	"fmt"
	"jobboard/global_models/global_db"
	"jobboard/shared/config"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
)

// PgRepo owns the pgx connection pool of a service
type PgRepo struct {
	closeOnce sync.Once
	pool      *pgxpool.Pool
}

// NewPgRepo creates the connection pool from config and verifies it with a ping
func NewPgRepo(ctx context.Context, conf *config.PostgresDBConfig) (*PgRepo, error) {
	if conf == nil {
		return nil, fmt.Errorf("postgres config is nil")
	}

	poolConfig, err := pgxpool.ParseConfig(conf.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DB DSN: %w", err)
	}

	// pool size
	poolConfig.MaxConns = conf.MaxConns
	poolConfig.MinConns = conf.MinConns

	// health checks and lifetimes
	poolConfig.HealthCheckPeriod = conf.HealthCheckPeriod
	poolConfig.MaxConnLifetime = conf.MaxConnLifetime
	poolConfig.MaxConnIdleTime = conf.MaxConnIdleTime
	poolConfig.ConnConfig.ConnectTimeout = conf.ConnectTimeout

	pool, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("connected to postgres", "max_conns", conf.MaxConns, "min_conns", conf.MinConns)

	return &PgRepo{pool: pool}, nil
}

// Pool returns the pool behind the global_db abstraction
func (r *PgRepo) Pool() global_db.Pool {
	return NewPoolAdapter(r.pool)
}

// Close closes the pool once
func (r *PgRepo) Close() {
	r.closeOnce.Do(func() {
		if r.pool != nil {
			r.pool.Close()
		}
	})
}

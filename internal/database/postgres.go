package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stemsi/schoolcrm-backend/internal/config"
)

// ApplicationName tags the user and class store connections in pg_stat_activity.
const ApplicationName = "schoolcrm-api"

// NewPostgresPool creates and validates the connection pool backing the
// user and class repositories.
func NewPostgresPool(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := storePoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info().
		Int32("max_conns", poolCfg.MaxConns).
		Int32("min_conns", poolCfg.MinConns).
		Str("database", poolCfg.ConnConfig.Database).
		Msg("User and class store connected")

	return pool, nil
}

// storePoolConfig parses DATABASE_URL and applies the pool sizing for the
// user and class repositories.
func storePoolConfig(cfg *config.Config) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	if cfg.MaxDBConns > 0 {
		poolCfg.MaxConns = cfg.MaxDBConns
	}
	if cfg.MinDBConns > 0 && cfg.MinDBConns <= poolCfg.MaxConns {
		poolCfg.MinConns = cfg.MinDBConns
	}
	if cfg.DBConnMaxIdle > 0 {
		poolCfg.MaxConnIdleTime = cfg.DBConnMaxIdle
	}
	poolCfg.ConnConfig.RuntimeParams["application_name"] = ApplicationName

	return poolCfg, nil
}

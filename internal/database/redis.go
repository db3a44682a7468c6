package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/schoolcrm-backend/internal/config"
)

// SessionClientName identifies session store connections in CLIENT LIST.
const SessionClientName = "schoolcrm-sessions"

// NewRedisClient creates and validates the client backing the session store.
func NewRedisClient(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*redis.Client, error) {
	opt, err := sessionOptions(cfg)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.Info().
		Str("addr", opt.Addr).
		Int("db", opt.DB).
		Int("pool_size", opt.PoolSize).
		Msg("Session store connected")

	return rdb, nil
}

// sessionOptions parses REDIS_URL and applies the session store settings.
func sessionOptions(cfg *config.Config) (*redis.Options, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opt.ClientName = SessionClientName
	if cfg.RedisPoolSize > 0 {
		opt.PoolSize = cfg.RedisPoolSize
	}
	return opt, nil
}

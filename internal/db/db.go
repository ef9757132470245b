package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx connection pool against the store endpoint, authenticating
// with accessKey when it is set, and verifies connectivity with a ping.
func Connect(ctx context.Context, endpoint, accessKey string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if accessKey != "" {
		cfg.ConnConfig.Password = accessKey
	}

	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

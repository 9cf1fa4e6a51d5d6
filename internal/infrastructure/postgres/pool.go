package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolSettings are the connection knobs this service exposes through its
// DB_MAX_CONNS / DB_MIN_CONNS / DB_MAX_CONN_LIFETIME env vars.
type PoolSettings struct {
	MaxConns    int32
	MinConns    int32
	MaxConnLife time.Duration
}

const pingTimeout = 5 * time.Second

// NewPool opens a pgx pool and verifies the database answers before the
// server starts taking requests.
func NewPool(ctx context.Context, dsn string, s PoolSettings) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = s.MaxConns
	cfg.MinConns = s.MinConns
	cfg.MaxConnLifetime = s.MaxConnLife

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

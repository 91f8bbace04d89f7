package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type DB struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// New opens a pgx pool from a postgres:// URL and pings it.
//
// The URL form is what DATABASE_URL already holds, and pgxpool.ParseConfig
// understands it directly. Building a DSN by hand is where sslmode gets
// forgotten and passwords with special characters get mangled.
func New(ctx context.Context, databaseURL string, logger *zap.Logger) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	// Pool sizing for a chat backend:
	//
	// MaxConns (25): each request holds a connection only for its queries.
	//   Message creation also holds one for the length of its allocation
	//   transaction, and allocations on the same table queue on the
	//   advisory lock, so a burst of posts can pin several connections at
	//   once. 25 leaves headroom under a default max_connections of 100.
	//
	// MinConns (5): warm connections so the first requests after a quiet
	//   period skip the connect handshake.
	//
	// MaxConnLifetime (1h): recycle connections so DNS changes and
	//   failovers are picked up.
	//
	// MaxConnIdleTime (20m): give slots back to Postgres when traffic drops.
	//
	// HealthCheckPeriod (1m): find dead idle connections before a request
	//   does.
	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = 1 * time.Hour
	poolConfig.MaxConnIdleTime = 20 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Close immediately on a failed ping so no half-open pool leaks.
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}

	logger.Info("DB connection established",
		zap.String("host", poolConfig.ConnConfig.Host),
		zap.String("database", poolConfig.ConnConfig.Database),
		zap.Int32("max_conns", poolConfig.MaxConns),
	)
	return &DB{
		pool:   pool,
		logger: logger,
	}, nil
}

func (db *DB) Close() {
	db.logger.Info("closing database connection pool")
	db.pool.Close()
}

func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

func (db *DB) Health(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

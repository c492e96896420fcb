// Package store owns the process-wide Postgres connection pool.
//
// Lifecycle: main calls Open once at startup, optionally Migrate, hands
// Pool to the repo constructors, and calls Close during shutdown. Nothing in
// this package is global; tests build their own pools via testutil.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/pkordes/footprint/backend/migrations"
)

// Store wraps the connection pool shared by all repositories.
type Store struct {
	Pool *pgxpool.Pool
}

// Open creates the pool and verifies the database is reachable.
// The caller owns the returned Store and must Close it.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("store.Open: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store.Open: ping: %w", err)
	}
	return &Store{Pool: pool}, nil
}

// Migrate applies all pending migrations using a short-lived database/sql
// handle built from the pool's connection settings.
// It returns the number of migrations applied.
func (s *Store) Migrate(ctx context.Context) (int, error) {
	db := stdlib.OpenDB(*s.Pool.Config().ConnConfig.Copy())
	defer db.Close()
	return Migrate(ctx, db)
}

// Migrate applies all pending embedded migrations to db.
// goose needs database/sql; callers holding only a pool use Store.Migrate.
func Migrate(ctx context.Context, db *sql.DB) (int, error) {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return 0, fmt.Errorf("store.Migrate: create goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("store.Migrate: up: %w", err)
	}
	return len(results), nil
}

// Close releases every pooled connection. Safe to call once at shutdown.
func (s *Store) Close() {
	s.Pool.Close()
}

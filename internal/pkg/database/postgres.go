package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/Pesokrava/market_ledger/internal/config"
)

// NewPostgresDB opens and pings a pooled PostgreSQL connection
func NewPostgresDB(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

// WaitForDB retries NewPostgresDB until it succeeds, ctx is done or retries run out
func WaitForDB(ctx context.Context, cfg *config.Config, maxRetries int, retryDelay time.Duration) (*sqlx.DB, error) {
	var err error

	for i := 0; i < maxRetries; i++ {
		var db *sqlx.DB
		if db, err = NewPostgresDB(ctx, cfg); err == nil {
			return db, nil
		}

		if i == maxRetries-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d retries: %w", maxRetries, err)
}

// Package remote gives row-level CRUD over the auxiliary postgres tables
// that live outside the ledger core. The core treats these tables as opaque
// rows; a failed call surfaces the error and leaves prior state untouched.
package remote

import (
	"context"
	"fmt"
	"log"
	"time"

	"freight-backend/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens the postgres pool for the remote tables. Returns nil without
// error when the database is not configured; callers run degraded.
func Connect(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	if !cfg.Database.Enabled {
		log.Printf("[Remote] Database not configured, remote tables disabled")
		return nil, nil
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("invalid database config: %w", err)
	}
	poolCfg.MaxConns = 10
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	log.Printf("[Remote] Connected to %s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
	return pool, nil
}

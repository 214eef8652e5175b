package sequence

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCounterStore persists counters in PostgreSQL. The increment is a
// single upsert statement, so uniqueness and monotonicity hold under
// arbitrary concurrency without explicit locking.
type PostgresCounterStore struct {
	Pool *pgxpool.Pool
}

// NewPostgresCounterStore creates a PostgreSQL counter store.
func NewPostgresCounterStore(pool *pgxpool.Pool) *PostgresCounterStore {
	return &PostgresCounterStore{Pool: pool}
}

// Migrate creates the counters table if it does not exist.
func (p *PostgresCounterStore) Migrate(ctx context.Context) error {
	_, err := p.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS counters (
			tenant_id TEXT NOT NULL,
			key TEXT NOT NULL,
			seq BIGINT NOT NULL DEFAULT 0,
			PRIMARY KEY (tenant_id, key)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate counters table: %w", err)
	}
	return nil
}

func (p *PostgresCounterStore) Increment(ctx context.Context, tenantID, key string) (int64, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var seq int64
	err := p.Pool.QueryRow(queryCtx, `
		INSERT INTO counters (tenant_id, key, seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (tenant_id, key)
		DO UPDATE SET seq = counters.seq + 1
		RETURNING seq
	`, tenantID, key).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter: %w", err)
	}
	return seq, nil
}

package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists the chart of accounts in PostgreSQL.
type PostgresStore struct {
	Pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL chart store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{Pool: pool}
}

// Migrate creates the accounts table if it does not exist.
func (p *PostgresStore) Migrate(ctx context.Context) error {
	_, err := p.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS accounts (
			id UUID PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			code TEXT NOT NULL,
			name TEXT NOT NULL,
			account_type TEXT NOT NULL CHECK (account_type IN ('asset', 'liability', 'equity', 'income', 'expense', 'memo')),
			parent_code TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (tenant_id, code)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate accounts table: %w", err)
	}
	return nil
}

func (p *PostgresStore) Create(ctx context.Context, account *Account) error {
	queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := p.Pool.Exec(queryCtx, `
		INSERT INTO accounts (id, tenant_id, code, name, account_type, parent_code, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, account.ID, account.TenantID, account.Code, account.Name, string(account.Type),
		account.ParentCode, account.Active, account.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("account %s: %w", account.Code, ErrDuplicateCode)
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

func (p *PostgresStore) GetByCode(ctx context.Context, tenantID, code string) (*Account, error) {
	return p.get(ctx, `
		SELECT id, tenant_id, code, name, account_type, parent_code, is_active, created_at
		FROM accounts WHERE tenant_id = $1 AND code = $2
	`, tenantID, code)
}

func (p *PostgresStore) GetByID(ctx context.Context, tenantID, id string) (*Account, error) {
	return p.get(ctx, `
		SELECT id, tenant_id, code, name, account_type, parent_code, is_active, created_at
		FROM accounts WHERE tenant_id = $1 AND id = $2
	`, tenantID, id)
}

func (p *PostgresStore) get(ctx context.Context, query string, args ...interface{}) (*Account, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var a Account
	var accountType string
	err := p.Pool.QueryRow(queryCtx, query, args...).Scan(
		&a.ID, &a.TenantID, &a.Code, &a.Name, &accountType, &a.ParentCode, &a.Active, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	a.Type = Type(accountType)
	return &a, nil
}

func (p *PostgresStore) List(ctx context.Context, tenantID string) ([]*Account, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	rows, err := p.Pool.Query(queryCtx, `
		SELECT id, tenant_id, code, name, account_type, parent_code, is_active, created_at
		FROM accounts WHERE tenant_id = $1
		ORDER BY code
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var out []*Account
	for rows.Next() {
		var a Account
		var accountType string
		if err := rows.Scan(&a.ID, &a.TenantID, &a.Code, &a.Name, &accountType, &a.ParentCode, &a.Active, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		a.Type = Type(accountType)
		out = append(out, &a)
	}
	return out, rows.Err()
}

package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PostgresEntryStore persists journal entries in PostgreSQL. The schema
// exposes no UPDATE or DELETE path for entries or lines.
type PostgresEntryStore struct {
	Pool *pgxpool.Pool
}

// NewPostgresEntryStore creates a PostgreSQL entry store.
func NewPostgresEntryStore(pool *pgxpool.Pool) *PostgresEntryStore {
	return &PostgresEntryStore{Pool: pool}
}

// Migrate creates the journal tables if they do not exist.
func (p *PostgresEntryStore) Migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS journal_entries (
			id UUID PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			entry_date TIMESTAMPTZ NOT NULL,
			concept TEXT NOT NULL,
			source_tag TEXT NOT NULL,
			source_id TEXT NOT NULL,
			sequence_no BIGINT NOT NULL,
			entry_number TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (tenant_id, entry_number)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_journal_entries_source
			ON journal_entries (tenant_id, source_tag, source_id)`,
		`CREATE TABLE IF NOT EXISTS journal_lines (
			id BIGSERIAL PRIMARY KEY,
			entry_id UUID NOT NULL REFERENCES journal_entries(id) ON DELETE RESTRICT,
			line_no INT NOT NULL,
			account_code TEXT NOT NULL,
			account_id TEXT NOT NULL,
			debit NUMERIC(20, 2) NOT NULL CHECK (debit >= 0),
			credit NUMERIC(20, 2) NOT NULL CHECK (credit >= 0),
			memo TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_journal_lines_entry ON journal_lines (entry_id)`,
	}
	for _, stmt := range migrations {
		if _, err := p.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate journal tables: %w", err)
		}
	}
	return nil
}

// Create persists the entry header and its lines in one transaction. There
// is no retry here: a failed create surfaces to the caller so a posting is
// never duplicated.
func (p *PostgresEntryStore) Create(ctx context.Context, entry *Entry) error {
	queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := p.Pool.Begin(queryCtx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(queryCtx)

	_, err = tx.Exec(queryCtx, `
		INSERT INTO journal_entries (id, tenant_id, entry_date, concept, source_tag, source_id, sequence_no, entry_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, entry.ID, entry.TenantID, entry.Date, entry.Concept, entry.SourceTag, entry.SourceID,
		entry.SequenceNo, entry.Number, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}

	for i, l := range entry.Lines {
		_, err = tx.Exec(queryCtx, `
			INSERT INTO journal_lines (entry_id, line_no, account_code, account_id, debit, credit, memo)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, entry.ID, i, l.AccountCode, l.AccountID, l.Debit.StringFixed(2), l.Credit.StringFixed(2), l.Memo)
		if err != nil {
			return fmt.Errorf("failed to insert line %d: %w", i, err)
		}
	}

	if err := tx.Commit(queryCtx); err != nil {
		return fmt.Errorf("failed to commit entry: %w", err)
	}
	return nil
}

func (p *PostgresEntryStore) GetByID(ctx context.Context, tenantID, entryID string) (*Entry, error) {
	return p.get(ctx, `
		SELECT id, tenant_id, entry_date, concept, source_tag, source_id, sequence_no, entry_number, created_at
		FROM journal_entries WHERE tenant_id = $1 AND id = $2
	`, tenantID, entryID)
}

func (p *PostgresEntryStore) GetBySource(ctx context.Context, tenantID, sourceTag, sourceID string) (*Entry, error) {
	return p.get(ctx, `
		SELECT id, tenant_id, entry_date, concept, source_tag, source_id, sequence_no, entry_number, created_at
		FROM journal_entries WHERE tenant_id = $1 AND source_tag = $2 AND source_id = $3
		ORDER BY created_at LIMIT 1
	`, tenantID, sourceTag, sourceID)
}

func (p *PostgresEntryStore) get(ctx context.Context, query string, args ...interface{}) (*Entry, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var e Entry
	err := p.Pool.QueryRow(queryCtx, query, args...).Scan(
		&e.ID, &e.TenantID, &e.Date, &e.Concept, &e.SourceTag, &e.SourceID,
		&e.SequenceNo, &e.Number, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoJournalEntry
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	rows, err := p.Pool.Query(queryCtx, `
		SELECT account_code, account_id, debit::text, credit::text, memo
		FROM journal_lines WHERE entry_id = $1
		ORDER BY line_no
	`, e.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l Line
		var debit, credit string
		if err := rows.Scan(&l.AccountCode, &l.AccountID, &debit, &credit, &l.Memo); err != nil {
			return nil, fmt.Errorf("failed to scan line: %w", err)
		}
		if l.Debit, err = decimal.NewFromString(debit); err != nil {
			return nil, fmt.Errorf("failed to parse debit %q: %w", debit, err)
		}
		if l.Credit, err = decimal.NewFromString(credit); err != nil {
			return nil, fmt.Errorf("failed to parse credit %q: %w", credit, err)
		}
		e.Lines = append(e.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lines: %w", err)
	}
	return &e, nil
}

func (p *PostgresEntryStore) SumBefore(ctx context.Context, tenantID string, codes []string, before time.Time) (map[string]Totals, error) {
	return p.sum(ctx, codes, `je.entry_date < $2`, tenantID, before)
}

func (p *PostgresEntryStore) SumRange(ctx context.Context, tenantID string, codes []string, start, end time.Time) (map[string]Totals, error) {
	return p.sum(ctx, codes, `je.entry_date >= $2 AND je.entry_date <= $3`, tenantID, start, end)
}

func (p *PostgresEntryStore) sum(ctx context.Context, codes []string, dateCond string, args ...interface{}) (map[string]Totals, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	query := `
		SELECT jl.account_code, COALESCE(SUM(jl.debit), 0)::text, COALESCE(SUM(jl.credit), 0)::text
		FROM journal_lines jl
		JOIN journal_entries je ON je.id = jl.entry_id
		WHERE je.tenant_id = $1 AND ` + dateCond
	if len(codes) > 0 {
		query += fmt.Sprintf(" AND jl.account_code = ANY($%d)", len(args)+1)
		args = append(args, codes)
	}
	query += " GROUP BY jl.account_code"

	rows, err := p.Pool.Query(queryCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate lines: %w", err)
	}
	defer rows.Close()

	out := make(map[string]Totals)
	for rows.Next() {
		var code, debit, credit string
		if err := rows.Scan(&code, &debit, &credit); err != nil {
			return nil, fmt.Errorf("failed to scan totals: %w", err)
		}
		var t Totals
		if t.Debit, err = decimal.NewFromString(debit); err != nil {
			return nil, fmt.Errorf("failed to parse debit total %q: %w", debit, err)
		}
		if t.Credit, err = decimal.NewFromString(credit); err != nil {
			return nil, fmt.Errorf("failed to parse credit total %q: %w", credit, err)
		}
		out[code] = t
	}
	return out, rows.Err()
}

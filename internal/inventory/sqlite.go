package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	// SQLite driver registered for database/sql.
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteMovementStore persists movements in SQLite via database/sql.
type SQLiteMovementStore struct {
	db *sql.DB
}

// NewSQLiteMovementStore opens (or creates) the movement database at path.
// Use ":memory:" for an ephemeral store.
func NewSQLiteMovementStore(path string) (*SQLiteMovementStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open movement database: %w", err)
	}
	store := &SQLiteMovementStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *SQLiteMovementStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteMovementStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS movements (
			id TEXT NOT NULL,
			tenant_id TEXT NOT NULL,
			movement_date TIMESTAMP NOT NULL,
			movement_type TEXT NOT NULL CHECK (movement_type IN ('inbound', 'outbound', 'adjustment')),
			product_id TEXT NOT NULL,
			quantity TEXT NOT NULL,
			unit_cost TEXT NOT NULL,
			total_cost TEXT NOT NULL,
			status TEXT NOT NULL CHECK (status IN ('active', 'canceled')),
			entry_id TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL,
			PRIMARY KEY (tenant_id, id)
		);
		CREATE INDEX IF NOT EXISTS idx_movements_product ON movements (tenant_id, product_id);
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate movements table: %w", err)
	}
	return nil
}

func (s *SQLiteMovementStore) Create(ctx context.Context, m *Movement) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO movements (id, tenant_id, movement_date, movement_type, product_id, quantity, unit_cost, total_cost, status, entry_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.TenantID, m.Date, string(m.Type), m.ProductID,
		m.Quantity.String(), m.UnitCost.String(), m.TotalCost.String(),
		string(m.Status), m.EntryID, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert movement: %w", err)
	}
	return nil
}

func (s *SQLiteMovementStore) Get(ctx context.Context, tenantID, id string) (*Movement, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, tenant_id, movement_date, movement_type, product_id, quantity, unit_cost, total_cost, status, entry_id, created_at
		FROM movements WHERE tenant_id = ? AND id = ?
	`, tenantID, id)

	m, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("movement %s: %w", id, ErrMovementNotFound)
		}
		return nil, err
	}
	return m, nil
}

func (s *SQLiteMovementStore) LinkEntry(ctx context.Context, tenantID, id, entryID string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE movements SET entry_id = ? WHERE tenant_id = ? AND id = ?
	`, entryID, tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to link entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("movement %s: %w", id, ErrMovementNotFound)
	}
	return nil
}

// MarkCanceled is a conditional update on status, so only one of several
// concurrent cancellations can succeed.
func (s *SQLiteMovementStore) MarkCanceled(ctx context.Context, tenantID, id string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE movements SET status = ? WHERE tenant_id = ? AND id = ? AND status = ?
	`, string(StatusCanceled), tenantID, id, string(StatusActive))
	if err != nil {
		return fmt.Errorf("failed to cancel movement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to cancel movement: %w", err)
	}
	if n == 0 {
		if _, getErr := s.Get(ctx, tenantID, id); getErr != nil {
			return getErr
		}
		return fmt.Errorf("movement %s: %w", id, ErrMovementCanceled)
	}
	return nil
}

func (s *SQLiteMovementStore) ListByProduct(ctx context.Context, tenantID, productID string) ([]*Movement, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, tenant_id, movement_date, movement_type, product_id, quantity, unit_cost, total_cost, status, entry_id, created_at
		FROM movements WHERE tenant_id = ? AND product_id = ?
		ORDER BY movement_date, created_at
	`, tenantID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query movements: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

func (s *SQLiteMovementStore) ListUnlinked(ctx context.Context, tenantID string, before time.Time) ([]*Movement, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, tenant_id, movement_date, movement_type, product_id, quantity, unit_cost, total_cost, status, entry_id, created_at
		FROM movements
		WHERE tenant_id = ? AND status = ? AND entry_id = '' AND movement_type != ? AND created_at < ?
		ORDER BY created_at
	`, tenantID, string(StatusActive), string(TypeAdjustment), before)
	if err != nil {
		return nil, fmt.Errorf("failed to query unlinked movements: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMovement(row rowScanner) (*Movement, error) {
	var m Movement
	var movementType, status, quantity, unitCost, totalCost string
	err := row.Scan(&m.ID, &m.TenantID, &m.Date, &movementType, &m.ProductID,
		&quantity, &unitCost, &totalCost, &status, &m.EntryID, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.Type = MovementType(movementType)
	m.Status = Status(status)
	if m.Quantity, err = decimal.NewFromString(quantity); err != nil {
		return nil, fmt.Errorf("failed to parse quantity %q: %w", quantity, err)
	}
	if m.UnitCost, err = decimal.NewFromString(unitCost); err != nil {
		return nil, fmt.Errorf("failed to parse unit cost %q: %w", unitCost, err)
	}
	if m.TotalCost, err = decimal.NewFromString(totalCost); err != nil {
		return nil, fmt.Errorf("failed to parse total cost %q: %w", totalCost, err)
	}
	return &m, nil
}

func collectMovements(rows *sql.Rows) ([]*Movement, error) {
	var out []*Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

package accounts

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no account matches a lookup.
	ErrNotFound = errors.New("account not found")
	// ErrDuplicateCode is returned when (tenant, code) already exists.
	ErrDuplicateCode = errors.New("account code already exists")
)

// Store persists the chart of accounts. Implementations must enforce
// (tenant, code) uniqueness on Create.
type Store interface {
	Create(ctx context.Context, account *Account) error
	GetByCode(ctx context.Context, tenantID, code string) (*Account, error)
	GetByID(ctx context.Context, tenantID, id string) (*Account, error)
	List(ctx context.Context, tenantID string) ([]*Account, error)
}

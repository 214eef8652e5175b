package accounts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service provides chart-of-accounts registration and lookup. Account CRUD
// surfaces are owned externally; the core consumes the service for account
// resolution during posting and reporting.
type Service struct {
	store Store
}

// NewService creates an accounts service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreateAccountRequest holds parameters for registering an account.
type CreateAccountRequest struct {
	TenantID   string
	Code       string
	Name       string
	Type       Type
	ParentCode string
}

// Create registers a new account for a tenant.
func (s *Service) Create(ctx context.Context, req CreateAccountRequest) (*Account, error) {
	if req.TenantID == "" {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if req.Code == "" {
		return nil, fmt.Errorf("account code is required")
	}
	if req.Name == "" {
		return nil, fmt.Errorf("account name is required")
	}
	if !IsValidType(req.Type) {
		return nil, fmt.Errorf("invalid account type: %s", req.Type)
	}
	if req.ParentCode != "" {
		if _, err := s.store.GetByCode(ctx, req.TenantID, req.ParentCode); err != nil {
			return nil, fmt.Errorf("parent account %s: %w", req.ParentCode, err)
		}
	}

	account := &Account{
		ID:         uuid.New().String(),
		TenantID:   req.TenantID,
		Code:       req.Code,
		Name:       req.Name,
		Type:       req.Type,
		ParentCode: req.ParentCode,
		Active:     true,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account %s: %w", req.Code, err)
	}
	return account, nil
}

// Seed provisions a tenant with the default chart. Codes that already exist
// are left untouched.
func (s *Service) Seed(ctx context.Context, tenantID string) error {
	for _, a := range DefaultChart() {
		if _, err := s.store.GetByCode(ctx, tenantID, a.Code); err == nil {
			continue
		}
		account := a
		account.ID = uuid.New().String()
		account.TenantID = tenantID
		account.Active = true
		account.CreatedAt = time.Now().UTC()
		if err := s.store.Create(ctx, &account); err != nil {
			return fmt.Errorf("failed to seed account %s: %w", a.Code, err)
		}
	}
	return nil
}

// Resolve returns the account a tagged reference points at.
func (s *Service) Resolve(ctx context.Context, tenantID string, ref Ref) (*Account, error) {
	switch {
	case ref.Code() != "":
		return s.store.GetByCode(ctx, tenantID, ref.Code())
	case ref.ID() != "":
		return s.store.GetByID(ctx, tenantID, ref.ID())
	default:
		return nil, fmt.Errorf("empty account reference: %w", ErrNotFound)
	}
}

// GetByCode looks up one account by chart code.
func (s *Service) GetByCode(ctx context.Context, tenantID, code string) (*Account, error) {
	return s.store.GetByCode(ctx, tenantID, code)
}

// List returns a tenant's chart ordered by code.
func (s *Service) List(ctx context.Context, tenantID string) ([]*Account, error) {
	return s.store.List(ctx, tenantID)
}

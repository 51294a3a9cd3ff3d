package banktxmock

import (
	"context"
	"time"

	domain "creditline-backend/internal/domain/banktx"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies banktx.Repository.
type Repo struct {
	CreateFn  func(ctx context.Context, t *domain.BankTransaction) error
	GetByIDFn func(ctx context.Context, transactionID string) (*domain.BankTransaction, error)
	MatchFn   func(ctx context.Context, transactionID, noteID, matchedBy string, at time.Time) error
	UnmatchFn func(ctx context.Context, transactionID string) error
}

func (m *Repo) Create(ctx context.Context, t *domain.BankTransaction) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, transactionID string) (*domain.BankTransaction, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, transactionID)
	}
	return nil, context.Canceled
}

func (m *Repo) Match(ctx context.Context, transactionID, noteID, matchedBy string, at time.Time) error {
	if m.MatchFn != nil {
		return m.MatchFn(ctx, transactionID, noteID, matchedBy, at)
	}
	return nil
}

func (m *Repo) Unmatch(ctx context.Context, transactionID string) error {
	if m.UnmatchFn != nil {
		return m.UnmatchFn(ctx, transactionID)
	}
	return nil
}

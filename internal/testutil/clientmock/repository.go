package clientmock

import (
	"context"

	"github.com/shopspring/decimal"

	domain "creditline-backend/internal/domain/client"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies client.Repository.
type Repo struct {
	GetByIDFn              func(ctx context.Context, clientID string) (*domain.Client, error)
	SumActiveCreditLimitFn func(ctx context.Context) (decimal.Decimal, error)
	UpsertFn               func(ctx context.Context, c *domain.Client) error
}

func (m *Repo) GetByID(ctx context.Context, clientID string) (*domain.Client, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, clientID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) SumActiveCreditLimit(ctx context.Context) (decimal.Decimal, error) {
	if m.SumActiveCreditLimitFn != nil {
		return m.SumActiveCreditLimitFn(ctx)
	}
	return decimal.Zero, nil
}

func (m *Repo) Upsert(ctx context.Context, c *domain.Client) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, c)
	}
	return nil
}

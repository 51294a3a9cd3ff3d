package settingsmock

import (
	"context"

	"github.com/shopspring/decimal"

	domain "creditline-backend/internal/domain/settings"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies settings.Repository.
type Repo struct {
	GetFn    func(ctx context.Context) (*domain.Settings, error)
	UpsertFn func(ctx context.Context, s *domain.Settings) error
}

func (m *Repo) Get(ctx context.Context) (*domain.Settings, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx)
	}
	return nil, domain.ErrMissingConfig
}

func (m *Repo) Upsert(ctx context.Context, s *domain.Settings) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, s)
	}
	return nil
}

// Fixed returns a repo that always serves the given configuration;
// the common case in usecase tests.
func Fixed(dayBasis int, annualRate string, dueDays int, creditLimit string) *Repo {
	cfg := &domain.Settings{
		DayBasis:           dayBasis,
		InterestRateAnnual: decimal.RequireFromString(annualRate),
		DefaultDueDays:     dueDays,
		CreditLimitTotal:   decimal.RequireFromString(creditLimit),
	}
	return &Repo{GetFn: func(context.Context) (*domain.Settings, error) { return cfg, nil }}
}

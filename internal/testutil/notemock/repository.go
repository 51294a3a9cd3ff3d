package notemock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domain "creditline-backend/internal/domain/note"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies note.Repository.
// Fill in the function fields a test needs; unfilled methods return
// zero values (or context.Canceled for lookups) so misses are loud.
type Repo struct {
	CreateFn                    func(ctx context.Context, n *domain.PromissoryNote) error
	GetByIDFn                   func(ctx context.Context, noteID string) (*domain.PromissoryNote, error)
	GetActiveByDisbursementIDFn func(ctx context.Context, disbursementID string) (*domain.PromissoryNote, error)
	ListByStatusFn              func(ctx context.Context, statuses ...domain.Status) ([]*domain.PromissoryNote, error)
	ListBillableFn              func(ctx context.Context, issuedOnOrBefore time.Time) ([]*domain.PromissoryNote, error)
	SettleFn                    func(ctx context.Context, noteID string, amount decimal.Decimal, date time.Time) error
	MarkOverdueFn               func(ctx context.Context, asOf time.Time) (int64, error)
	CancelByDisbursementIDFn    func(ctx context.Context, disbursementID string) error
	ListMatchCandidatesFn       func(ctx context.Context, amount decimal.Decimal) ([]domain.Candidate, error)
	SumPrincipalByStatusFn      func(ctx context.Context, statuses ...domain.Status) (decimal.Decimal, error)
	CountByStatusFn             func(ctx context.Context, status domain.Status) (int64, error)
	ListIssuedBetweenFn         func(ctx context.Context, start, end time.Time) ([]*domain.PromissoryNote, error)
	ListSettledBetweenFn        func(ctx context.Context, start, end time.Time) ([]*domain.PromissoryNote, error)
	ListOpenDuringFn            func(ctx context.Context, start, end time.Time) ([]*domain.PromissoryNote, error)
}

func (m *Repo) Create(ctx context.Context, n *domain.PromissoryNote) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, n)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, noteID string) (*domain.PromissoryNote, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, noteID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetActiveByDisbursementID(ctx context.Context, disbursementID string) (*domain.PromissoryNote, error) {
	if m.GetActiveByDisbursementIDFn != nil {
		return m.GetActiveByDisbursementIDFn(ctx, disbursementID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) ListByStatus(ctx context.Context, statuses ...domain.Status) ([]*domain.PromissoryNote, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, statuses...)
	}
	return nil, nil
}

func (m *Repo) ListBillable(ctx context.Context, issuedOnOrBefore time.Time) ([]*domain.PromissoryNote, error) {
	if m.ListBillableFn != nil {
		return m.ListBillableFn(ctx, issuedOnOrBefore)
	}
	return nil, nil
}

func (m *Repo) Settle(ctx context.Context, noteID string, amount decimal.Decimal, date time.Time) error {
	if m.SettleFn != nil {
		return m.SettleFn(ctx, noteID, amount, date)
	}
	return nil
}

func (m *Repo) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	if m.MarkOverdueFn != nil {
		return m.MarkOverdueFn(ctx, asOf)
	}
	return 0, nil
}

func (m *Repo) CancelByDisbursementID(ctx context.Context, disbursementID string) error {
	if m.CancelByDisbursementIDFn != nil {
		return m.CancelByDisbursementIDFn(ctx, disbursementID)
	}
	return nil
}

func (m *Repo) ListMatchCandidates(ctx context.Context, amount decimal.Decimal) ([]domain.Candidate, error) {
	if m.ListMatchCandidatesFn != nil {
		return m.ListMatchCandidatesFn(ctx, amount)
	}
	return nil, nil
}

func (m *Repo) SumPrincipalByStatus(ctx context.Context, statuses ...domain.Status) (decimal.Decimal, error) {
	if m.SumPrincipalByStatusFn != nil {
		return m.SumPrincipalByStatusFn(ctx, statuses...)
	}
	return decimal.Zero, nil
}

func (m *Repo) CountByStatus(ctx context.Context, status domain.Status) (int64, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, status)
	}
	return 0, nil
}

func (m *Repo) ListIssuedBetween(ctx context.Context, start, end time.Time) ([]*domain.PromissoryNote, error) {
	if m.ListIssuedBetweenFn != nil {
		return m.ListIssuedBetweenFn(ctx, start, end)
	}
	return nil, nil
}

func (m *Repo) ListSettledBetween(ctx context.Context, start, end time.Time) ([]*domain.PromissoryNote, error) {
	if m.ListSettledBetweenFn != nil {
		return m.ListSettledBetweenFn(ctx, start, end)
	}
	return nil, nil
}

func (m *Repo) ListOpenDuring(ctx context.Context, start, end time.Time) ([]*domain.PromissoryNote, error) {
	if m.ListOpenDuringFn != nil {
		return m.ListOpenDuringFn(ctx, start, end)
	}
	return nil, nil
}

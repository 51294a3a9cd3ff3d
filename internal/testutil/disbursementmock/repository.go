package disbursementmock

import (
	"context"
	"time"

	domain "creditline-backend/internal/domain/disbursement"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies disbursement.Repository.
type Repo struct {
	CreateFn        func(ctx context.Context, d *domain.Disbursement) error
	GetByIDFn       func(ctx context.Context, disbursementID string) (*domain.Disbursement, error)
	MarkApprovedFn  func(ctx context.Context, disbursementID, approvedBy string, at time.Time) error
	MarkDisbursedFn func(ctx context.Context, disbursementID string) error
	MarkSettledFn   func(ctx context.Context, disbursementID string) error
	MarkCancelledFn func(ctx context.Context, disbursementID string) error
}

func (m *Repo) Create(ctx context.Context, d *domain.Disbursement) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, disbursementID string) (*domain.Disbursement, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, disbursementID)
	}
	return nil, context.Canceled
}

func (m *Repo) MarkApproved(ctx context.Context, disbursementID, approvedBy string, at time.Time) error {
	if m.MarkApprovedFn != nil {
		return m.MarkApprovedFn(ctx, disbursementID, approvedBy, at)
	}
	return nil
}

func (m *Repo) MarkDisbursed(ctx context.Context, disbursementID string) error {
	if m.MarkDisbursedFn != nil {
		return m.MarkDisbursedFn(ctx, disbursementID)
	}
	return nil
}

func (m *Repo) MarkSettled(ctx context.Context, disbursementID string) error {
	if m.MarkSettledFn != nil {
		return m.MarkSettledFn(ctx, disbursementID)
	}
	return nil
}

func (m *Repo) MarkCancelled(ctx context.Context, disbursementID string) error {
	if m.MarkCancelledFn != nil {
		return m.MarkCancelledFn(ctx, disbursementID)
	}
	return nil
}

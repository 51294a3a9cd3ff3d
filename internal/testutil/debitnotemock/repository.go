package debitnotemock

import (
	"context"
	"time"

	domain "creditline-backend/internal/domain/debitnote"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies debitnote.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, dn *domain.DebitNote) error
	GetByIDFn        func(ctx context.Context, debitNoteID string) (*domain.DebitNote, error)
	MarkPaidFn       func(ctx context.Context, debitNoteID string) error
	MarkOverdueFn    func(ctx context.Context, asOf time.Time) (int64, error)
	AttachDocumentFn func(ctx context.Context, debitNoteID, path string) error
}

func (m *Repo) Create(ctx context.Context, dn *domain.DebitNote) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, dn)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, debitNoteID string) (*domain.DebitNote, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, debitNoteID)
	}
	return nil, context.Canceled
}

func (m *Repo) MarkPaid(ctx context.Context, debitNoteID string) error {
	if m.MarkPaidFn != nil {
		return m.MarkPaidFn(ctx, debitNoteID)
	}
	return nil
}

func (m *Repo) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	if m.MarkOverdueFn != nil {
		return m.MarkOverdueFn(ctx, asOf)
	}
	return 0, nil
}

func (m *Repo) AttachDocument(ctx context.Context, debitNoteID, path string) error {
	if m.AttachDocumentFn != nil {
		return m.AttachDocumentFn(ctx, debitNoteID, path)
	}
	return nil
}

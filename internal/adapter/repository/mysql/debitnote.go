package mysql

import (
	"context"
	"errors"
	"time"

	domain "creditline-backend/internal/domain/debitnote"
	"creditline-backend/pkg/dates"

	"gorm.io/gorm"
)

type DebitNoteRepository struct{ db *gorm.DB }

func NewDebitNoteRepository(db *gorm.DB) *DebitNoteRepository { return &DebitNoteRepository{db: db} }

// Create inserts the debit note and its line items through the gorm
// association in one statement batch; run inside a unit of work so a
// failed item insert rolls back the document.
func (r *DebitNoteRepository) Create(ctx context.Context, dn *domain.DebitNote) error {
	return r.db.WithContext(ctx).Create(dn).Error
}

func (r *DebitNoteRepository) GetByID(ctx context.Context, debitNoteID string) (*domain.DebitNote, error) {
	var out domain.DebitNote
	res := r.db.WithContext(ctx).
		Preload("LineItems").
		Where("debit_note_id = ?", debitNoteID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	return &out, res.Error
}

func (r *DebitNoteRepository) MarkPaid(ctx context.Context, debitNoteID string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.DebitNote{}).
		Where("debit_note_id = ? AND status IN ?", debitNoteID,
			[]domain.Status{domain.StatusIssued, domain.StatusOverdue}).
		Update("status", domain.StatusPaid)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *DebitNoteRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.DebitNote{}).
		Where("status = ? AND due_date < ?", domain.StatusIssued, dates.Midnight(asOf)).
		Update("status", domain.StatusOverdue)
	return res.RowsAffected, res.Error
}

func (r *DebitNoteRepository) AttachDocument(ctx context.Context, debitNoteID, path string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.DebitNote{}).
		Where("debit_note_id = ?", debitNoteID).
		Update("document_path", path)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

package mysql

import (
	"context"
	"errors"
	"time"

	domain "creditline-backend/internal/domain/disbursement"

	"gorm.io/gorm"
)

type DisbursementRepository struct{ db *gorm.DB }

func NewDisbursementRepository(db *gorm.DB) *DisbursementRepository {
	return &DisbursementRepository{db: db}
}

func (r *DisbursementRepository) Create(ctx context.Context, d *domain.Disbursement) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DisbursementRepository) GetByID(ctx context.Context, disbursementID string) (*domain.Disbursement, error) {
	var out domain.Disbursement
	res := r.db.WithContext(ctx).Where("disbursement_id = ?", disbursementID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	return &out, res.Error
}

// transition performs a conditional single-row status update. Zero rows
// affected means the row was missing or not in a legal source state.
func (r *DisbursementRepository) transition(ctx context.Context, disbursementID string, from []domain.Status, updates map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Disbursement{}).
		Where("disbursement_id = ? AND status IN ?", disbursementID, from).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *DisbursementRepository) MarkApproved(ctx context.Context, disbursementID, approvedBy string, at time.Time) error {
	return r.transition(ctx, disbursementID,
		[]domain.Status{domain.StatusPending},
		map[string]any{"status": domain.StatusApproved, "approved_by": approvedBy, "approved_at": at})
}

func (r *DisbursementRepository) MarkDisbursed(ctx context.Context, disbursementID string) error {
	return r.transition(ctx, disbursementID,
		[]domain.Status{domain.StatusApproved},
		map[string]any{"status": domain.StatusDisbursed})
}

func (r *DisbursementRepository) MarkSettled(ctx context.Context, disbursementID string) error {
	return r.transition(ctx, disbursementID,
		[]domain.Status{domain.StatusApproved, domain.StatusDisbursed},
		map[string]any{"status": domain.StatusSettled})
}

func (r *DisbursementRepository) MarkCancelled(ctx context.Context, disbursementID string) error {
	return r.transition(ctx, disbursementID,
		[]domain.Status{domain.StatusPending, domain.StatusApproved},
		map[string]any{"status": domain.StatusCancelled})
}

package mysql

import (
	"context"
	"errors"
	"time"

	disbursementDomain "creditline-backend/internal/domain/disbursement"
	domain "creditline-backend/internal/domain/note"
	"creditline-backend/pkg/dates"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type NoteRepository struct{ db *gorm.DB }

func NewNoteRepository(db *gorm.DB) *NoteRepository { return &NoteRepository{db: db} }

func (r *NoteRepository) Create(ctx context.Context, n *domain.PromissoryNote) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NoteRepository) GetByID(ctx context.Context, noteID string) (*domain.PromissoryNote, error) {
	var out domain.PromissoryNote
	res := r.db.WithContext(ctx).Where("note_id = ?", noteID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	return &out, res.Error
}

func (r *NoteRepository) GetActiveByDisbursementID(ctx context.Context, disbursementID string) (*domain.PromissoryNote, error) {
	var out domain.PromissoryNote
	res := r.db.WithContext(ctx).
		Where("disbursement_id = ? AND status IN ?", disbursementID,
			[]domain.Status{domain.StatusActive, domain.StatusOverdue}).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	return &out, res.Error
}

func (r *NoteRepository) ListByStatus(ctx context.Context, statuses ...domain.Status) ([]*domain.PromissoryNote, error) {
	var out []*domain.PromissoryNote
	err := r.db.WithContext(ctx).Where("status IN ?", statuses).Order("id").Find(&out).Error
	return out, err
}

func (r *NoteRepository) ListBillable(ctx context.Context, issuedOnOrBefore time.Time) ([]*domain.PromissoryNote, error) {
	var out []*domain.PromissoryNote
	err := r.db.WithContext(ctx).
		Where("status = ? AND issue_date <= ?", domain.StatusActive, dates.Midnight(issuedOnOrBefore)).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *NoteRepository) Settle(ctx context.Context, noteID string, amount decimal.Decimal, date time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&domain.PromissoryNote{}).
		Where("note_id = ? AND status = ?", noteID, domain.StatusActive).
		Updates(map[string]any{
			"status":            domain.StatusSettled,
			"settlement_amount": amount,
			"settlement_date":   dates.Midnight(date),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotActive
	}
	return nil
}

func (r *NoteRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.PromissoryNote{}).
		Where("status = ? AND due_date < ?", domain.StatusActive, dates.Midnight(asOf)).
		Update("status", domain.StatusOverdue)
	return res.RowsAffected, res.Error
}

func (r *NoteRepository) CancelByDisbursementID(ctx context.Context, disbursementID string) error {
	return r.db.WithContext(ctx).
		Model(&domain.PromissoryNote{}).
		Where("disbursement_id = ? AND status IN ?", disbursementID,
			[]domain.Status{domain.StatusActive, domain.StatusOverdue}).
		Update("status", domain.StatusCancelled).Error
}

func (r *NoteRepository) ListMatchCandidates(ctx context.Context, amount decimal.Decimal) ([]domain.Candidate, error) {
	var notes []*domain.PromissoryNote
	err := r.db.WithContext(ctx).
		Where("principal_amount = ? AND status IN ?", amount,
			[]domain.Status{domain.StatusActive, domain.StatusOverdue}).
		Where("note_id NOT IN (?)", r.db.
			Table("bank_transactions").
			Select("promissory_note_id").
			Where("matched = ? AND promissory_note_id IS NOT NULL", true)).
		Order("id").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(notes))
	for _, n := range notes {
		ids = append(ids, n.DisbursementID)
	}
	var disbs []*disbursementDomain.Disbursement
	err = r.db.WithContext(ctx).
		Where("disbursement_id IN ? AND status IN ?", ids,
			[]disbursementDomain.Status{disbursementDomain.StatusApproved, disbursementDomain.StatusDisbursed}).
		Find(&disbs).Error
	if err != nil {
		return nil, err
	}
	requestDates := make(map[string]time.Time, len(disbs))
	for _, d := range disbs {
		requestDates[d.DisbursementID] = d.RequestDate
	}

	out := make([]domain.Candidate, 0, len(notes))
	for _, n := range notes {
		rd, ok := requestDates[n.DisbursementID]
		if !ok {
			continue // disbursement not in a matchable state
		}
		out = append(out, domain.Candidate{Note: n, RequestDate: rd})
	}
	return out, nil
}

func (r *NoteRepository) SumPrincipalByStatus(ctx context.Context, statuses ...domain.Status) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&domain.PromissoryNote{}).
		Select("SUM(principal_amount)").
		Where("status IN ?", statuses).
		Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}

func (r *NoteRepository) CountByStatus(ctx context.Context, status domain.Status) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.PromissoryNote{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}

func (r *NoteRepository) ListIssuedBetween(ctx context.Context, start, end time.Time) ([]*domain.PromissoryNote, error) {
	var out []*domain.PromissoryNote
	err := r.db.WithContext(ctx).
		Where("issue_date BETWEEN ? AND ?", dates.Midnight(start), dates.Midnight(end)).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *NoteRepository) ListSettledBetween(ctx context.Context, start, end time.Time) ([]*domain.PromissoryNote, error) {
	var out []*domain.PromissoryNote
	err := r.db.WithContext(ctx).
		Where("settlement_date IS NOT NULL AND settlement_date BETWEEN ? AND ?",
			dates.Midnight(start), dates.Midnight(end)).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *NoteRepository) ListOpenDuring(ctx context.Context, start, end time.Time) ([]*domain.PromissoryNote, error) {
	var out []*domain.PromissoryNote
	err := r.db.WithContext(ctx).
		Where("status <> ?", domain.StatusCancelled).
		Where("issue_date <= ?", dates.Midnight(end)).
		Where("settlement_date IS NULL OR settlement_date >= ?", dates.Midnight(start)).
		Order("id").
		Find(&out).Error
	return out, err
}

package mysql

import (
	"context"
	"errors"
	"time"

	domain "creditline-backend/internal/domain/banktx"

	"gorm.io/gorm"
)

type BankTxnRepository struct{ db *gorm.DB }

func NewBankTxnRepository(db *gorm.DB) *BankTxnRepository { return &BankTxnRepository{db: db} }

func (r *BankTxnRepository) Create(ctx context.Context, t *domain.BankTransaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *BankTxnRepository) GetByID(ctx context.Context, transactionID string) (*domain.BankTransaction, error) {
	var out domain.BankTransaction
	res := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	return &out, res.Error
}

func (r *BankTxnRepository) Match(ctx context.Context, transactionID, noteID, matchedBy string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&domain.BankTransaction{}).
		Where("transaction_id = ? AND matched = ?", transactionID, false).
		Updates(map[string]any{
			"matched":            true,
			"promissory_note_id": noteID,
			"matched_at":         at,
			"matched_by":         matchedBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Either the row is missing or another operator matched it first.
		if _, err := r.GetByID(ctx, transactionID); err != nil {
			return err
		}
		return domain.ErrAlreadyMatched
	}
	return nil
}

func (r *BankTxnRepository) Unmatch(ctx context.Context, transactionID string) error {
	// Existence check first: unmatching an already-unmatched row is a
	// no-op, and MySQL reports zero affected rows for same-value updates.
	if _, err := r.GetByID(ctx, transactionID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&domain.BankTransaction{}).
		Where("transaction_id = ?", transactionID).
		Updates(map[string]any{
			"matched":            false,
			"promissory_note_id": nil,
			"matched_at":         nil,
			"matched_by":         nil,
		}).Error
}

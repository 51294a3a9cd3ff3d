package mysql

import (
	"context"
	"errors"
	"time"

	domain "creditline-backend/internal/domain/note"
	"creditline-backend/pkg/dates"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SnapshotRepository struct{ db *gorm.DB }

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository { return &SnapshotRepository{db: db} }

func (r *SnapshotRepository) Upsert(ctx context.Context, s *domain.InterestSnapshot) error {
	s.CalculationDate = dates.Midnight(s.CalculationDate)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "promissory_note_id"}, {Name: "calculation_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"days_outstanding", "accumulated_interest", "updated_at"}),
	}).Create(s).Error
}

func (r *SnapshotRepository) Get(ctx context.Context, noteID string, date time.Time) (*domain.InterestSnapshot, error) {
	var out domain.InterestSnapshot
	res := r.db.WithContext(ctx).
		Where("promissory_note_id = ? AND calculation_date = ?", noteID, dates.Midnight(date)).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSnapshotNotFound
	}
	return &out, res.Error
}

func (r *SnapshotRepository) SumForDate(ctx context.Context, date time.Time, statuses ...domain.Status) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Table("interest_snapshots").
		Select("SUM(interest_snapshots.accumulated_interest)").
		Joins("JOIN promissory_notes ON promissory_notes.note_id = interest_snapshots.promissory_note_id").
		Where("interest_snapshots.calculation_date = ?", dates.Midnight(date)).
		Where("promissory_notes.status IN ?", statuses).
		Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}

func (r *SnapshotRepository) SumBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&domain.InterestSnapshot{}).
		Select("SUM(accumulated_interest)").
		Where("calculation_date BETWEEN ? AND ?", dates.Midnight(start), dates.Midnight(end)).
		Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}

package mysql

import (
	"context"
	"errors"

	domain "creditline-backend/internal/domain/settings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository struct{ db *gorm.DB }

func NewSettingsRepository(db *gorm.DB) *SettingsRepository { return &SettingsRepository{db: db} }

func (r *SettingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	var out domain.Settings
	res := r.db.WithContext(ctx).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, domain.ErrMissingConfig
	}
	return &out, res.Error
}

func (r *SettingsRepository) Upsert(ctx context.Context, s *domain.Settings) error {
	s.ID = 1 // singleton row
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"day_basis", "interest_rate_annual", "default_due_days", "credit_limit_total", "updated_at",
		}),
	}).Create(s).Error
}

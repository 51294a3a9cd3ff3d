package mysql

import (
	"context"

	domain "creditline-backend/internal/domain/sequence"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SequenceRepository struct{ db *gorm.DB }

func NewSequenceRepository(db *gorm.DB) *SequenceRepository { return &SequenceRepository{db: db} }

// Next upsert-increments the counter row for scope and reads the value
// back. Run inside the same transaction that inserts the numbered
// document so a rollback returns the number too.
func (r *SequenceRepository) Next(ctx context.Context, scope string) (int, error) {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope"}},
		DoUpdates: clause.Assignments(map[string]any{"next_value": gorm.Expr("next_value + 1")}),
	}).Create(&domain.DocSequence{Scope: scope, NextValue: 1}).Error
	if err != nil {
		return 0, err
	}

	var row domain.DocSequence
	if err := r.db.WithContext(ctx).Where("scope = ?", scope).First(&row).Error; err != nil {
		return 0, err
	}
	return row.NextValue, nil
}

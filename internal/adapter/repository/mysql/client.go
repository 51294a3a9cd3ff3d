package mysql

import (
	"context"
	"errors"

	domain "creditline-backend/internal/domain/client"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClientRepository struct{ db *gorm.DB }

func NewClientRepository(db *gorm.DB) *ClientRepository { return &ClientRepository{db: db} }

func (r *ClientRepository) GetByID(ctx context.Context, clientID string) (*domain.Client, error) {
	var out domain.Client
	res := r.db.WithContext(ctx).Where("client_id = ?", clientID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	return &out, res.Error
}

func (r *ClientRepository) SumActiveCreditLimit(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&domain.Client{}).
		Select("SUM(credit_limit)").
		Where("active = ?", true).
		Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}

func (r *ClientRepository) Upsert(ctx context.Context, c *domain.Client) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "client_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "credit_limit", "active", "updated_at"}),
	}).Create(c).Error
}

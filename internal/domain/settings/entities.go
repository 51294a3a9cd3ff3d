package settings

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingConfig = errors.New("engine configuration missing")
	ErrBadDayBasis   = errors.New("day basis must be 360 or 365")
)

// Settings is the singleton configuration row feeding the calculators.
// The day basis is read once per operation and threaded into each
// calculation as an explicit parameter; it is never joined inside queries.
type Settings struct {
	ID                 uint64          `gorm:"primaryKey;column:id" json:"-"`
	DayBasis           int             `gorm:"column:day_basis;not null" json:"day_basis"`
	InterestRateAnnual decimal.Decimal `gorm:"column:interest_rate_annual;type:decimal(8,4);not null" json:"interest_rate_annual"`
	DefaultDueDays     int             `gorm:"column:default_due_days;not null" json:"default_due_days"`
	CreditLimitTotal   decimal.Decimal `gorm:"column:credit_limit_total;type:decimal(18,2);not null" json:"credit_limit_total"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Settings) TableName() string { return "engine_settings" }

// Validate rejects a configuration the calculators cannot use.
func (s *Settings) Validate() error {
	if s.DayBasis != 360 && s.DayBasis != 365 {
		return ErrBadDayBasis
	}
	return nil
}

type Repository interface {
	// Get returns the singleton row, ErrMissingConfig when absent.
	Get(ctx context.Context) (*Settings, error)
	Upsert(ctx context.Context, s *Settings) error
}

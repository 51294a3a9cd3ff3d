package notemock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domain "creditline-backend/internal/domain/note"
)

var _ domain.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo is a function-backed mock for note.SnapshotRepository.
type SnapshotRepo struct {
	UpsertFn     func(ctx context.Context, s *domain.InterestSnapshot) error
	GetFn        func(ctx context.Context, noteID string, date time.Time) (*domain.InterestSnapshot, error)
	SumForDateFn func(ctx context.Context, date time.Time, statuses ...domain.Status) (decimal.Decimal, error)
	SumBetweenFn func(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
}

func (m *SnapshotRepo) Upsert(ctx context.Context, s *domain.InterestSnapshot) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, s)
	}
	return nil
}

func (m *SnapshotRepo) Get(ctx context.Context, noteID string, date time.Time) (*domain.InterestSnapshot, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, noteID, date)
	}
	return nil, domain.ErrSnapshotNotFound
}

func (m *SnapshotRepo) SumForDate(ctx context.Context, date time.Time, statuses ...domain.Status) (decimal.Decimal, error) {
	if m.SumForDateFn != nil {
		return m.SumForDateFn(ctx, date, statuses...)
	}
	return decimal.Zero, nil
}

func (m *SnapshotRepo) SumBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	if m.SumBetweenFn != nil {
		return m.SumBetweenFn(ctx, start, end)
	}
	return decimal.Zero, nil
}

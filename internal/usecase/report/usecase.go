package report

import (
	"context"
	"time"

	"creditline-backend/internal/domain/client"
	"creditline-backend/internal/domain/note"
	"creditline-backend/pkg/dates"

	"github.com/shopspring/decimal"
)

// InterestReader is the slice of the accrual calculator the reports need.
type InterestReader interface {
	InterestAsOf(ctx context.Context, noteID string, date time.Time) (decimal.Decimal, error)
	TotalAccumulated(ctx context.Context, date time.Time) (decimal.Decimal, error)
}

type Usecase struct {
	notes     note.Repository
	snapshots note.SnapshotRepository
	clients   client.Repository
	interest  InterestReader
}

func NewUsecase(notes note.Repository, snapshots note.SnapshotRepository, clients client.Repository, interest InterestReader) *Usecase {
	return &Usecase{notes: notes, snapshots: snapshots, clients: clients, interest: interest}
}

type DashboardDTO struct {
	TotalCreditLimit    decimal.Decimal `json:"total_credit_limit"`
	OutstandingBalance  decimal.Decimal `json:"outstanding_balance"`
	AvailableLimit      decimal.Decimal `json:"available_limit"`
	AccumulatedInterest decimal.Decimal `json:"accumulated_interest"`
	ActiveNotes         int64           `json:"active_pns"`
	OverdueNotes        int64           `json:"overdue_pns"`
}

// Dashboard derives the headline KPIs. Available limit is clamped at
// zero even when the outstanding balance exceeds the pool.
func (u *Usecase) Dashboard(ctx context.Context, today time.Time) (*DashboardDTO, error) {
	totalLimit, err := u.clients.SumActiveCreditLimit(ctx)
	if err != nil {
		return nil, err
	}
	outstanding, err := u.notes.SumPrincipalByStatus(ctx, note.StatusActive, note.StatusOverdue)
	if err != nil {
		return nil, err
	}
	available := totalLimit.Sub(outstanding)
	if available.IsNegative() {
		available = decimal.Zero
	}
	accumulated, err := u.interest.TotalAccumulated(ctx, today)
	if err != nil {
		return nil, err
	}
	active, err := u.notes.CountByStatus(ctx, note.StatusActive)
	if err != nil {
		return nil, err
	}
	overdue, err := u.notes.CountByStatus(ctx, note.StatusOverdue)
	if err != nil {
		return nil, err
	}
	return &DashboardDTO{
		TotalCreditLimit:    totalLimit,
		OutstandingBalance:  outstanding,
		AvailableLimit:      available,
		AccumulatedInterest: accumulated,
		ActiveNotes:         active,
		OverdueNotes:        overdue,
	}, nil
}

// AgingBucketLabels are the fixed report categories, in display order.
// Boundaries are inclusive on the lower bucket: 30 days overdue still
// falls in "1-30 Days Overdue".
var AgingBucketLabels = [5]string{
	"Within Term",
	"1-30 Days Overdue",
	"31-60 Days Overdue",
	"61-90 Days Overdue",
	">90 Days Overdue",
}

type AgingBucketDTO struct {
	Label     string          `json:"label"`
	Count     int             `json:"count"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
}

func bucketIndex(daysOverdue int) int {
	switch {
	case daysOverdue <= 0:
		return 0
	case daysOverdue <= 30:
		return 1
	case daysOverdue <= 60:
		return 2
	case daysOverdue <= 90:
		return 3
	default:
		return 4
	}
}

// Aging buckets every active and overdue note by days past due as of
// today. Notes not yet due land in "Within Term" with a negative or zero
// day count.
func (u *Usecase) Aging(ctx context.Context, today time.Time) ([]AgingBucketDTO, error) {
	open, err := u.notes.ListByStatus(ctx, note.StatusActive, note.StatusOverdue)
	if err != nil {
		return nil, err
	}

	buckets := make([]AgingBucketDTO, len(AgingBucketLabels))
	for i, label := range AgingBucketLabels {
		buckets[i] = AgingBucketDTO{Label: label, Principal: decimal.Zero, Interest: decimal.Zero}
	}
	for _, n := range open {
		accrued, err := u.interest.InterestAsOf(ctx, n.NoteID, today)
		if err != nil {
			return nil, err
		}
		i := bucketIndex(dates.DaysBetween(n.DueDate, today))
		buckets[i].Count++
		buckets[i].Principal = buckets[i].Principal.Add(n.PrincipalAmount)
		buckets[i].Interest = buckets[i].Interest.Add(accrued)
	}
	return buckets, nil
}

type PeriodDTO struct {
	PeriodStart          time.Time       `json:"period_start"`
	PeriodEnd            time.Time       `json:"period_end"`
	DisbursedTotal       decimal.Decimal `json:"disbursed_total"`
	DisbursedCount       int             `json:"disbursed_count"`
	SettledTotal         decimal.Decimal `json:"settled_total"`
	SettledCount         int             `json:"settled_count"`
	InterestAccrued      decimal.Decimal `json:"interest_accrued"`
	AvgOutstandingAmount decimal.Decimal `json:"avg_outstanding_principal"`
}

// Period summarizes activity inside [start, end]. The average
// outstanding figure is a point-in-time sample over the notes open at
// any point in the window, not a time-weighted average; downstream
// reports depend on that simplified figure.
func (u *Usecase) Period(ctx context.Context, start, end time.Time) (*PeriodDTO, error) {
	start, end = dates.Midnight(start), dates.Midnight(end)

	issued, err := u.notes.ListIssuedBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	disbursedTotal := decimal.Zero
	for _, n := range issued {
		disbursedTotal = disbursedTotal.Add(n.PrincipalAmount)
	}

	settled, err := u.notes.ListSettledBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	settledTotal := decimal.Zero
	for _, n := range settled {
		if n.SettlementAmount.Valid {
			settledTotal = settledTotal.Add(n.SettlementAmount.Decimal)
		} else {
			settledTotal = settledTotal.Add(n.PrincipalAmount)
		}
	}

	accrued, err := u.snapshots.SumBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	open, err := u.notes.ListOpenDuring(ctx, start, end)
	if err != nil {
		return nil, err
	}
	avg := decimal.Zero
	if len(open) > 0 {
		sum := decimal.Zero
		for _, n := range open {
			sum = sum.Add(n.PrincipalAmount)
		}
		avg = sum.Div(decimal.NewFromInt(int64(len(open)))).Round(2)
	}

	return &PeriodDTO{
		PeriodStart:          start,
		PeriodEnd:            end,
		DisbursedTotal:       disbursedTotal,
		DisbursedCount:       len(issued),
		SettledTotal:         settledTotal,
		SettledCount:         len(settled),
		InterestAccrued:      accrued,
		AvgOutstandingAmount: avg,
	}, nil
}

package note

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Candidate is a note joined with the request date of its owning
// disbursement, used by the reconciliation suggestion heuristic.
type Candidate struct {
	Note        *PromissoryNote
	RequestDate time.Time
}

type Repository interface {
	Create(ctx context.Context, n *PromissoryNote) error
	GetByID(ctx context.Context, noteID string) (*PromissoryNote, error)
	GetActiveByDisbursementID(ctx context.Context, disbursementID string) (*PromissoryNote, error)

	ListByStatus(ctx context.Context, statuses ...Status) ([]*PromissoryNote, error)
	// ListBillable returns active notes issued on or before the given date,
	// the selection set of the billing generator.
	ListBillable(ctx context.Context, issuedOnOrBefore time.Time) ([]*PromissoryNote, error)

	// Settle flips an active note to settled in a single conditional
	// update; returns ErrNotActive when the note is missing or not active.
	Settle(ctx context.Context, noteID string, amount decimal.Decimal, date time.Time) error
	// MarkOverdue transitions every active note whose due date is strictly
	// before asOf. Idempotent; returns the number of rows transitioned.
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
	CancelByDisbursementID(ctx context.Context, disbursementID string) error

	// ListMatchCandidates returns active/overdue notes with the exact
	// principal amount whose disbursement is approved or disbursed and
	// which are not already linked to a matched bank transaction.
	ListMatchCandidates(ctx context.Context, amount decimal.Decimal) ([]Candidate, error)

	SumPrincipalByStatus(ctx context.Context, statuses ...Status) (decimal.Decimal, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
	ListIssuedBetween(ctx context.Context, start, end time.Time) ([]*PromissoryNote, error)
	ListSettledBetween(ctx context.Context, start, end time.Time) ([]*PromissoryNote, error)
	// ListOpenDuring returns notes issued on or before end and not settled
	// before start, i.e. open at some point inside the window.
	ListOpenDuring(ctx context.Context, start, end time.Time) ([]*PromissoryNote, error)
}

type SnapshotRepository interface {
	// Upsert writes the snapshot for (note, date), overwriting any
	// existing row for the same key. Safe to re-run.
	Upsert(ctx context.Context, s *InterestSnapshot) error
	Get(ctx context.Context, noteID string, date time.Time) (*InterestSnapshot, error)
	// SumForDate sums accumulated interest of snapshots on the given date,
	// restricted to notes currently in one of the given statuses.
	SumForDate(ctx context.Context, date time.Time, statuses ...Status) (decimal.Decimal, error)
	SumBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
}

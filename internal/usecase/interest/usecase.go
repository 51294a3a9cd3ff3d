package interest

import (
	"context"
	"errors"
	"time"

	"creditline-backend/internal/domain/note"
	"creditline-backend/internal/domain/settings"
	"creditline-backend/pkg/dates"
	"creditline-backend/pkg/money"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ErrBadNoteRate marks a note whose stored rate cannot be accrued; the
// sweep records it as a per-note failure and moves on.
var ErrBadNoteRate = errors.New("note has a negative interest rate")

type Usecase struct {
	notes     note.Repository
	snapshots note.SnapshotRepository
	settings  settings.Repository
	log       *logrus.Logger
}

func NewUsecase(notes note.Repository, snapshots note.SnapshotRepository, cfg settings.Repository, log *logrus.Logger) *Usecase {
	return &Usecase{notes: notes, snapshots: snapshots, settings: cfg, log: log}
}

type SweepFailure struct {
	NoteID string `json:"note_id"`
	Reason string `json:"reason"`
}

type SweepResult struct {
	Calculated int            `json:"calculated"`
	Failures   []SweepFailure `json:"failures,omitempty"`
}

// Accrue computes and persists one interest snapshot per active note for
// the given date. Safe to re-run: a second sweep on the same date
// overwrites each snapshot with the same value. One note's failure never
// aborts the sweep for the others.
func (u *Usecase) Accrue(ctx context.Context, date time.Time) (*SweepResult, error) {
	cfg, err := u.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	active, err := u.notes.ListByStatus(ctx, note.StatusActive)
	if err != nil {
		return nil, err
	}

	date = dates.Midnight(date)
	res := &SweepResult{}
	for _, n := range active {
		if n.InterestRate.IsNegative() {
			res.Failures = append(res.Failures, SweepFailure{NoteID: n.NoteID, Reason: ErrBadNoteRate.Error()})
			continue
		}
		days := dates.DaysBetween(n.IssueDate, date)
		if days < 0 {
			days = 0
		}
		snap := &note.InterestSnapshot{
			NoteID:              n.NoteID,
			CalculationDate:     date,
			DaysOutstanding:     days,
			AccumulatedInterest: money.SimpleInterest(n.PrincipalAmount, n.InterestRate, days, cfg.DayBasis),
		}
		if err := u.snapshots.Upsert(ctx, snap); err != nil {
			u.log.WithFields(logrus.Fields{"note_id": n.NoteID, "date": date.Format(dates.DateOnly)}).
				WithError(err).Warn("interest snapshot upsert failed")
			res.Failures = append(res.Failures, SweepFailure{NoteID: n.NoteID, Reason: err.Error()})
			continue
		}
		res.Calculated++
	}
	return res, nil
}

// InterestAsOf returns the note's accrued interest as of date: the cached
// snapshot when one exists, otherwise computed on the fly without
// persisting (historical/ad hoc queries).
func (u *Usecase) InterestAsOf(ctx context.Context, noteID string, date time.Time) (decimal.Decimal, error) {
	snap, err := u.snapshots.Get(ctx, noteID, date)
	if err == nil {
		return snap.AccumulatedInterest, nil
	}
	if !errors.Is(err, note.ErrSnapshotNotFound) {
		return decimal.Zero, err
	}

	n, err := u.notes.GetByID(ctx, noteID)
	if err != nil {
		return decimal.Zero, err
	}
	cfg, err := u.settings.Get(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if err := cfg.Validate(); err != nil {
		return decimal.Zero, err
	}
	days := dates.DaysBetween(n.IssueDate, date)
	if days < 0 {
		days = 0
	}
	return money.SimpleInterest(n.PrincipalAmount, n.InterestRate, days, cfg.DayBasis), nil
}

// TotalAccumulated sums the snapshots of the given date across notes that
// are currently active.
func (u *Usecase) TotalAccumulated(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	return u.snapshots.SumForDate(ctx, date, note.StatusActive)
}

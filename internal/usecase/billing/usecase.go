package billing

import (
	"context"
	"errors"
	"time"

	"creditline-backend/internal/audit"
	"creditline-backend/internal/domain/debitnote"
	"creditline-backend/internal/domain/sequence"
	"creditline-backend/internal/domain/uow"
	"creditline-backend/pkg/dates"
	"creditline-backend/pkg/id"
	"creditline-backend/pkg/money"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyPeriod: no active note was issued on or before the period
	// end, so there is nothing to select at all.
	ErrEmptyPeriod = errors.New("no active notes in billing period")
	// ErrNoInterestDue: notes were selected but every one prorated to
	// zero days. Distinct from ErrEmptyPeriod so callers can report it.
	ErrNoInterestDue = errors.New("no interest due in billing period")
	ErrInvalidPeriod = errors.New("period end must be after period start")
)

type Usecase struct {
	uow        uow.UnitOfWork
	debitNotes debitnote.Repository
	audit      audit.Sink
}

func NewUsecase(tx uow.UnitOfWork, debitNotes debitnote.Repository, sink audit.Sink) *Usecase {
	return &Usecase{uow: tx, debitNotes: debitNotes, audit: sink}
}

type GenerateInput struct {
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	DueDate     time.Time `json:"due_date"`
	ActorID     string    `json:"-"`
}

type LineItemDTO struct {
	NoteID         string          `json:"promissory_note_id"`
	Principal      decimal.Decimal `json:"principal_amount"`
	Days           int             `json:"days"`
	Rate           decimal.Decimal `json:"rate"`
	InterestAmount decimal.Decimal `json:"interest_amount"`
}

type DebitNoteDTO struct {
	DebitNoteID   string          `json:"debit_note_id"`
	DnNumber      string          `json:"dn_number"`
	PeriodStart   time.Time       `json:"period_start"`
	PeriodEnd     time.Time       `json:"period_end"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	DueDate       time.Time       `json:"due_date"`
	Status        string          `json:"status"`
	LineItems     []LineItemDTO   `json:"line_items"`
}

// Generate bills the interest accrued by every active note over the
// period. Per note: actualStart = max(issueDate, periodStart), days =
// periodEnd - actualStart; notes prorating to zero or fewer days are
// skipped. The debit note, its line items and the DN counter all commit
// in one transaction or not at all.
func (u *Usecase) Generate(ctx context.Context, in GenerateInput) (*DebitNoteDTO, error) {
	start := dates.Midnight(in.PeriodStart)
	end := dates.Midnight(in.PeriodEnd)
	if !end.After(start) {
		return nil, ErrInvalidPeriod
	}

	var dto *DebitNoteDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		cfg, err := r.Settings.Get(ctx)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		selected, err := r.Notes.ListBillable(ctx, end)
		if err != nil {
			return err
		}
		if len(selected) == 0 {
			return ErrEmptyPeriod
		}

		total := decimal.Zero
		items := make([]debitnote.DebitNoteLineItem, 0, len(selected))
		for _, n := range selected {
			actualStart := n.IssueDate
			if start.After(actualStart) {
				actualStart = start
			}
			days := dates.DaysBetween(actualStart, end)
			if days <= 0 {
				continue // issued after the period closed
			}
			amount := money.SimpleInterest(n.PrincipalAmount, n.InterestRate, days, cfg.DayBasis)
			items = append(items, debitnote.DebitNoteLineItem{
				NoteID:          n.NoteID,
				PrincipalAmount: n.PrincipalAmount,
				Days:            days,
				Rate:            n.InterestRate,
				InterestAmount:  amount,
			})
			total = total.Add(amount)
		}
		if len(items) == 0 {
			return ErrNoInterestDue
		}

		issueDate := dates.Midnight(time.Now().UTC())
		seq, err := r.Sequences.Next(ctx, sequence.DebitNoteScope(issueDate))
		if err != nil {
			return err
		}
		dn := &debitnote.DebitNote{
			DebitNoteID:   id.NewID32(),
			DnNumber:      sequence.FormatDebitNoteNumber(issueDate, seq),
			PeriodStart:   start,
			PeriodEnd:     end,
			TotalInterest: total,
			IssueDate:     issueDate,
			DueDate:       dates.Midnight(in.DueDate),
			Status:        debitnote.StatusIssued,
			LineItems:     items,
		}
		if err := r.DebitNotes.Create(ctx, dn); err != nil {
			return err
		}

		dtoItems := make([]LineItemDTO, 0, len(dn.LineItems))
		for _, it := range dn.LineItems {
			dtoItems = append(dtoItems, LineItemDTO{
				NoteID:         it.NoteID,
				Principal:      it.PrincipalAmount,
				Days:           it.Days,
				Rate:           it.Rate,
				InterestAmount: it.InterestAmount,
			})
		}
		dto = &DebitNoteDTO{
			DebitNoteID:   dn.DebitNoteID,
			DnNumber:      dn.DnNumber,
			PeriodStart:   dn.PeriodStart,
			PeriodEnd:     dn.PeriodEnd,
			TotalInterest: dn.TotalInterest,
			DueDate:       dn.DueDate,
			Status:        string(dn.Status),
			LineItems:     dtoItems,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.audit.Log(ctx, in.ActorID, "debitnote.generated", map[string]any{
		"dn_number":      dto.DnNumber,
		"debit_note_id":  dto.DebitNoteID,
		"total_interest": dto.TotalInterest.StringFixed(2),
		"line_items":     len(dto.LineItems),
	})
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, debitNoteID string) (*debitnote.DebitNote, error) {
	return u.debitNotes.GetByID(ctx, debitNoteID)
}

// MarkPaid is legal from issued or overdue.
func (u *Usecase) MarkPaid(ctx context.Context, debitNoteID, actorID string) error {
	if err := u.debitNotes.MarkPaid(ctx, debitNoteID); err != nil {
		return err
	}
	u.audit.Log(ctx, actorID, "debitnote.paid", map[string]any{"debit_note_id": debitNoteID})
	return nil
}

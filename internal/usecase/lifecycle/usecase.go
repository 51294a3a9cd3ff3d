package lifecycle

import (
	"context"
	"errors"
	"time"

	"creditline-backend/internal/audit"
	"creditline-backend/internal/domain/debitnote"
	"creditline-backend/internal/domain/disbursement"
	"creditline-backend/internal/domain/note"
	"creditline-backend/internal/domain/sequence"
	"creditline-backend/internal/domain/uow"
	"creditline-backend/pkg/dates"
	"creditline-backend/pkg/id"

	"github.com/shopspring/decimal"
)

var ErrInvalidInput = errors.New("invalid input")

type Usecase struct {
	uow        uow.UnitOfWork
	disbs      disbursement.Repository
	notes      note.Repository
	debitNotes debitnote.Repository
	audit      audit.Sink
}

func NewUsecase(tx uow.UnitOfWork, disbs disbursement.Repository, notes note.Repository, debitNotes debitnote.Repository, sink audit.Sink) *Usecase {
	return &Usecase{uow: tx, disbs: disbs, notes: notes, debitNotes: debitNotes, audit: sink}
}

type CreateDisbursementInput struct {
	ClientID    string          `json:"client_id"`
	Amount      decimal.Decimal `json:"amount"`
	RequestDate time.Time       `json:"request_date"`
	Assets      []string        `json:"assets,omitempty"`
}

type DisbursementDTO struct {
	DisbursementID string          `json:"disbursement_id"`
	RequestNumber  string          `json:"request_number"`
	ClientID       string          `json:"client_id"`
	Amount         decimal.Decimal `json:"amount"`
	RequestDate    time.Time       `json:"request_date"`
	Status         string          `json:"status"`
}

// CreateDisbursement records a funding request in pending state. The
// request number comes from the per-year counter inside the same
// transaction as the insert.
func (u *Usecase) CreateDisbursement(ctx context.Context, in CreateDisbursementInput) (*DisbursementDTO, error) {
	if in.ClientID == "" || !in.Amount.IsPositive() || in.RequestDate.IsZero() {
		return nil, ErrInvalidInput
	}

	var dto *DisbursementDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Clients.GetByID(ctx, in.ClientID); err != nil {
			return err
		}
		seq, err := r.Sequences.Next(ctx, sequence.RequestScope(in.RequestDate))
		if err != nil {
			return err
		}
		d := &disbursement.Disbursement{
			DisbursementID:  id.NewID32(),
			RequestNumber:   sequence.FormatRequestNumber(in.RequestDate, seq),
			ClientID:        in.ClientID,
			RequestedAmount: in.Amount,
			RequestDate:     dates.Midnight(in.RequestDate),
			Status:          disbursement.StatusPending,
			AssetsList:      in.Assets,
		}
		if err := r.Disbursements.Create(ctx, d); err != nil {
			return err
		}
		dto = &DisbursementDTO{
			DisbursementID: d.DisbursementID,
			RequestNumber:  d.RequestNumber,
			ClientID:       d.ClientID,
			Amount:         d.RequestedAmount,
			RequestDate:    d.RequestDate,
			Status:         string(d.Status),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.audit.Log(ctx, in.ClientID, "disbursement.requested", map[string]any{
		"disbursement_id": dto.DisbursementID,
		"request_number":  dto.RequestNumber,
	})
	return dto, nil
}

type ApproveInput struct {
	DisbursementID string    `json:"-"`
	ApprovedBy     string    `json:"approved_by"`
	IssueDate      time.Time `json:"issue_date"`
}

type NoteDTO struct {
	NoteID          string          `json:"note_id"`
	DisbursementID  string          `json:"disbursement_id"`
	PnNumber        string          `json:"pn_number"`
	PrincipalAmount decimal.Decimal `json:"principal_amount"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	IssueDate       time.Time       `json:"issue_date"`
	DueDate         time.Time       `json:"due_date"`
	Status          string          `json:"status"`
}

// ApproveDisbursement moves a pending request to approved and issues its
// promissory note in the same transaction: principal from the request,
// rate and due days from the engine settings, PN number from the per-year
// counter. A disbursement with a live note cannot be approved again.
func (u *Usecase) ApproveDisbursement(ctx context.Context, in ApproveInput) (*NoteDTO, error) {
	if in.ApprovedBy == "" || in.IssueDate.IsZero() {
		return nil, ErrInvalidInput
	}

	var dto *NoteDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		d, err := r.Disbursements.GetByID(ctx, in.DisbursementID)
		if err != nil {
			return err
		}
		if !d.Status.CanTransitionTo(disbursement.StatusApproved) {
			return disbursement.ErrInvalidTransition
		}
		if _, err := r.Notes.GetActiveByDisbursementID(ctx, d.DisbursementID); err == nil {
			return disbursement.ErrHasActiveNote
		} else if !errors.Is(err, note.ErrNotFound) {
			return err
		}

		cfg, err := r.Settings.Get(ctx)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := r.Disbursements.MarkApproved(ctx, d.DisbursementID, in.ApprovedBy, now); err != nil {
			return err
		}

		seq, err := r.Sequences.Next(ctx, sequence.NoteScope(in.IssueDate))
		if err != nil {
			return err
		}
		issue := dates.Midnight(in.IssueDate)
		n := &note.PromissoryNote{
			NoteID:          id.NewID32(),
			DisbursementID:  d.DisbursementID,
			PnNumber:        sequence.FormatNoteNumber(in.IssueDate, seq),
			PrincipalAmount: d.RequestedAmount,
			InterestRate:    cfg.InterestRateAnnual,
			IssueDate:       issue,
			DueDate:         issue.AddDate(0, 0, cfg.DefaultDueDays),
			Status:          note.StatusActive,
		}
		if err := r.Notes.Create(ctx, n); err != nil {
			return err
		}
		dto = &NoteDTO{
			NoteID:          n.NoteID,
			DisbursementID:  n.DisbursementID,
			PnNumber:        n.PnNumber,
			PrincipalAmount: n.PrincipalAmount,
			InterestRate:    n.InterestRate,
			IssueDate:       n.IssueDate,
			DueDate:         n.DueDate,
			Status:          string(n.Status),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.audit.Log(ctx, in.ApprovedBy, "disbursement.approved", map[string]any{
		"disbursement_id": in.DisbursementID,
		"pn_number":       dto.PnNumber,
	})
	return dto, nil
}

// CancelDisbursement cancels a pending or approved request and any live
// note it issued.
func (u *Usecase) CancelDisbursement(ctx context.Context, disbursementID, actorID string) error {
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Disbursements.MarkCancelled(ctx, disbursementID); err != nil {
			return err
		}
		return r.Notes.CancelByDisbursementID(ctx, disbursementID)
	})
	if err != nil {
		return err
	}
	u.audit.Log(ctx, actorID, "disbursement.cancelled", map[string]any{
		"disbursement_id": disbursementID,
	})
	return nil
}

type SettleInput struct {
	NoteID  string          `json:"-"`
	Amount  decimal.Decimal `json:"amount"`
	Date    time.Time       `json:"date"`
	ActorID string          `json:"-"`
}

// SettleNote settles an active note and cascades the owning disbursement
// to settled. The precondition lives inside the conditional update, so
// two operators settling the same note cannot both succeed.
func (u *Usecase) SettleNote(ctx context.Context, in SettleInput) error {
	if !in.Amount.IsPositive() || in.Date.IsZero() {
		return ErrInvalidInput
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		n, err := r.Notes.GetByID(ctx, in.NoteID)
		if err != nil {
			return err
		}
		if err := r.Notes.Settle(ctx, in.NoteID, in.Amount, in.Date); err != nil {
			return err
		}
		return r.Disbursements.MarkSettled(ctx, n.DisbursementID)
	})
	if err != nil {
		return err
	}
	u.audit.Log(ctx, in.ActorID, "note.settled", map[string]any{
		"note_id": in.NoteID,
		"amount":  in.Amount.StringFixed(2),
		"date":    dates.Midnight(in.Date).Format(dates.DateOnly),
	})
	return nil
}

type OverdueSweepResult struct {
	NotesMarked      int64 `json:"notes_marked"`
	DebitNotesMarked int64 `json:"debit_notes_marked"`
}

// SweepOverdue flags every active note and issued debit note whose due
// date is strictly before today. Each statement is a conditional bulk
// update; re-running the sweep is a no-op.
func (u *Usecase) SweepOverdue(ctx context.Context, today time.Time) (*OverdueSweepResult, error) {
	notes, err := u.notes.MarkOverdue(ctx, today)
	if err != nil {
		return nil, err
	}
	dns, err := u.debitNotes.MarkOverdue(ctx, today)
	if err != nil {
		return nil, err
	}
	res := &OverdueSweepResult{NotesMarked: notes, DebitNotesMarked: dns}
	if notes > 0 || dns > 0 {
		u.audit.Log(ctx, "system", "sweep.overdue", map[string]any{
			"notes_marked":       notes,
			"debit_notes_marked": dns,
			"as_of":              dates.Midnight(today).Format(dates.DateOnly),
		})
	}
	return res, nil
}

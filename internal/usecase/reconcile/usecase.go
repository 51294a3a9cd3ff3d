package reconcile

import (
	"context"
	"errors"
	"sort"
	"time"

	"creditline-backend/internal/audit"
	"creditline-backend/internal/domain/banktx"
	"creditline-backend/internal/domain/disbursement"
	"creditline-backend/internal/domain/note"
	"creditline-backend/internal/domain/uow"
	"creditline-backend/pkg/dates"
	"creditline-backend/pkg/id"

	"github.com/shopspring/decimal"
)

const (
	// maxSuggestions caps how many candidates the heuristic returns;
	// ties are left for a human to disambiguate, never auto-matched.
	maxSuggestions = 5
	// maxDayDistance is the widest gap allowed between the transaction
	// date and the disbursement request date.
	maxDayDistance = 2
)

var ErrInvalidInput = errors.New("invalid transaction record")

type Usecase struct {
	uow   uow.UnitOfWork
	txns  banktx.Repository
	notes note.Repository
	audit audit.Sink
}

func NewUsecase(tx uow.UnitOfWork, txns banktx.Repository, notes note.Repository, sink audit.Sink) *Usecase {
	return &Usecase{uow: tx, txns: txns, notes: notes, audit: sink}
}

type ImportInput struct {
	TransactionDate time.Time       `json:"transaction_date"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description,omitempty"`
	Reference       string          `json:"reference,omitempty"`
}

type TransactionDTO struct {
	TransactionID   string          `json:"transaction_id"`
	TransactionDate time.Time       `json:"transaction_date"`
	Amount          decimal.Decimal `json:"amount"`
	Matched         bool            `json:"matched"`
}

// Import persists one normalized record from the statement-import
// adapter. The amount is stored positive regardless of the credit/debit
// sign in the source file.
func (u *Usecase) Import(ctx context.Context, in ImportInput) (*TransactionDTO, error) {
	if in.TransactionDate.IsZero() || in.Amount.IsZero() {
		return nil, ErrInvalidInput
	}
	t := &banktx.BankTransaction{
		TransactionID:   id.NewID32(),
		TransactionDate: dates.Midnight(in.TransactionDate),
		Amount:          in.Amount.Abs(),
		Description:     in.Description,
		Reference:       in.Reference,
	}
	if err := u.txns.Create(ctx, t); err != nil {
		return nil, err
	}
	return &TransactionDTO{
		TransactionID:   t.TransactionID,
		TransactionDate: t.TransactionDate,
		Amount:          t.Amount,
	}, nil
}

// Match links an unmatched transaction to a note. Side effect: an
// approved owning disbursement becomes disbursed — the only coupling
// point between reconciliation and the disbursement lifecycle.
func (u *Usecase) Match(ctx context.Context, transactionID, noteID, userID string) error {
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		n, err := r.Notes.GetByID(ctx, noteID)
		if err != nil {
			return err
		}
		if err := r.BankTxns.Match(ctx, transactionID, noteID, userID, time.Now().UTC()); err != nil {
			return err
		}
		if err := r.Disbursements.MarkDisbursed(ctx, n.DisbursementID); err != nil {
			// Only an approved disbursement transitions; any other state
			// leaves the lifecycle untouched.
			if !errors.Is(err, disbursement.ErrInvalidTransition) {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	u.audit.Log(ctx, userID, "transaction.matched", map[string]any{
		"transaction_id":     transactionID,
		"promissory_note_id": noteID,
	})
	return nil
}

// Unmatch clears the link unconditionally; the transaction only has to
// exist.
func (u *Usecase) Unmatch(ctx context.Context, transactionID, userID string) error {
	if err := u.txns.Unmatch(ctx, transactionID); err != nil {
		return err
	}
	u.audit.Log(ctx, userID, "transaction.unmatched", map[string]any{
		"transaction_id": transactionID,
	})
	return nil
}

type CandidateDTO struct {
	NoteID      string          `json:"note_id"`
	PnNumber    string          `json:"pn_number"`
	Principal   decimal.Decimal `json:"principal_amount"`
	IssueDate   time.Time       `json:"issue_date"`
	DayDistance int             `json:"day_distance"`
}

// Suggest ranks notes whose principal equals the transaction amount
// exactly and whose disbursement was requested within maxDayDistance
// days of the transaction, closest first. Never more than
// maxSuggestions results.
func (u *Usecase) Suggest(ctx context.Context, transactionID string) ([]CandidateDTO, error) {
	txn, err := u.txns.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	candidates, err := u.notes.ListMatchCandidates(ctx, txn.Amount)
	if err != nil {
		return nil, err
	}

	out := make([]CandidateDTO, 0, len(candidates))
	for _, c := range candidates {
		dist := dates.Abs(dates.DaysBetween(c.RequestDate, txn.TransactionDate))
		if dist > maxDayDistance {
			continue
		}
		out = append(out, CandidateDTO{
			NoteID:      c.Note.NoteID,
			PnNumber:    c.Note.PnNumber,
			Principal:   c.Note.PrincipalAmount,
			IssueDate:   c.Note.IssueDate,
			DayDistance: dist,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DayDistance < out[j].DayDistance })
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out, nil
}

package debitnote

import (
	"context"
	"time"
)

type Repository interface {
	// Create inserts the debit note together with its line items. Callers
	// run it inside a unit of work so a failed item insert rolls back the
	// whole document.
	Create(ctx context.Context, dn *DebitNote) error
	GetByID(ctx context.Context, debitNoteID string) (*DebitNote, error)

	// MarkPaid is legal from issued or overdue; conditional single-row
	// update, ErrInvalidTransition when the precondition fails.
	MarkPaid(ctx context.Context, debitNoteID string) error
	// MarkOverdue transitions issued notes due strictly before asOf.
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
	AttachDocument(ctx context.Context, debitNoteID, path string) error
}

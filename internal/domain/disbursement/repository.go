package disbursement

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, d *Disbursement) error
	GetByID(ctx context.Context, disbursementID string) (*Disbursement, error)

	// Conditional single-row transitions. Each returns ErrInvalidTransition
	// when the row is not in a legal source state (or does not exist), so
	// two operators racing on the same request cannot both win.
	MarkApproved(ctx context.Context, disbursementID, approvedBy string, at time.Time) error
	MarkDisbursed(ctx context.Context, disbursementID string) error
	MarkSettled(ctx context.Context, disbursementID string) error
	MarkCancelled(ctx context.Context, disbursementID string) error
}

package banktx

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, t *BankTransaction) error
	GetByID(ctx context.Context, transactionID string) (*BankTransaction, error)

	// Match links the transaction to a note in one conditional update
	// guarded on matched = false; ErrAlreadyMatched when another operator
	// got there first.
	Match(ctx context.Context, transactionID, noteID, matchedBy string, at time.Time) error
	// Unmatch clears the link unconditionally (the row must exist).
	Unmatch(ctx context.Context, transactionID string) error
}

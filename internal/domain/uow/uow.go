package uow

import (
	"context"

	"creditline-backend/internal/domain/banktx"
	"creditline-backend/internal/domain/client"
	"creditline-backend/internal/domain/debitnote"
	"creditline-backend/internal/domain/disbursement"
	"creditline-backend/internal/domain/note"
	"creditline-backend/internal/domain/sequence"
	"creditline-backend/internal/domain/settings"
)

// Repos bundles every repository bound to one transaction.
type Repos struct {
	Disbursements disbursement.Repository
	Notes         note.Repository
	Snapshots     note.SnapshotRepository
	DebitNotes    debitnote.Repository
	BankTxns      banktx.Repository
	Clients       client.Repository
	Settings      settings.Repository
	Sequences     sequence.Repository
}

// UnitOfWork runs fn atomically: every write issued through the passed
// Repos commits together or rolls back together.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}

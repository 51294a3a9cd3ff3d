package mysql

import (
	"context"

	"creditline-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepos(tx))
	})
}

// NewRepos binds every repository to the given handle (a transaction or
// the root connection).
func NewRepos(db *gorm.DB) uow.Repos {
	return uow.Repos{
		Disbursements: &DisbursementRepository{db: db},
		Notes:         &NoteRepository{db: db},
		Snapshots:     &SnapshotRepository{db: db},
		DebitNotes:    &DebitNoteRepository{db: db},
		BankTxns:      &BankTxnRepository{db: db},
		Clients:       &ClientRepository{db: db},
		Settings:      &SettingsRepository{db: db},
		Sequences:     &SequenceRepository{db: db},
	}
}

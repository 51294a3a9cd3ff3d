package mysql

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"creditline-backend/internal/domain/banktx"
	"creditline-backend/internal/domain/client"
	"creditline-backend/internal/domain/debitnote"
	"creditline-backend/internal/domain/disbursement"
	"creditline-backend/internal/domain/note"
	"creditline-backend/internal/domain/sequence"
	"creditline-backend/internal/domain/settings"
)

// openTestDB creates an in-memory sqlite DB with the full schema. The
// domain models carry no MySQL-only column types, so they migrate as-is.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&disbursement.Disbursement{},
		&note.PromissoryNote{},
		&note.InterestSnapshot{},
		&debitnote.DebitNote{},
		&debitnote.DebitNoteLineItem{},
		&banktx.BankTransaction{},
		&client.Client{},
		&settings.Settings{},
		&sequence.DocSequence{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

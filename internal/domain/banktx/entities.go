package banktx

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound       = errors.New("bank transaction not found")
	ErrAlreadyMatched = errors.New("bank transaction already matched")
)

// BankTransaction is an externally observed cash movement imported from a
// bank statement. Amount is always stored positive regardless of the
// credit/debit sign in the source file. Rows are never auto-deleted.
type BankTransaction struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	TransactionID   string          `gorm:"column:transaction_id;type:char(32);not null;uniqueIndex:ux_bank_txns_public_id" json:"transaction_id"`
	TransactionDate time.Time       `gorm:"column:transaction_date;type:date;not null;index:idx_bank_txns_date" json:"transaction_date"`
	Amount          decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Description     string          `gorm:"column:description;type:text" json:"description,omitempty"`
	Reference       string          `gorm:"column:reference;size:64" json:"reference,omitempty"`
	Matched         bool            `gorm:"column:matched;not null;default:false;index:idx_bank_txns_matched" json:"matched"`
	NoteID          *string         `gorm:"column:promissory_note_id;type:char(32);index:idx_bank_txns_note" json:"promissory_note_id,omitempty"`
	MatchedAt       *time.Time      `gorm:"column:matched_at" json:"matched_at,omitempty"`
	MatchedBy       *string         `gorm:"column:matched_by;type:char(32)" json:"matched_by,omitempty"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (BankTransaction) TableName() string { return "bank_transactions" }

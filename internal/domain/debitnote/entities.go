package debitnote

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("debit note not found")
	ErrInvalidTransition = errors.New("illegal debit note status transition")
)

type Status string

const (
	StatusIssued  Status = "issued"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

var successors = map[Status][]Status{
	StatusIssued:  {StatusPaid, StatusOverdue},
	StatusOverdue: {StatusPaid},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, n := range successors[s] {
		if n == next {
			return true
		}
	}
	return false
}

// DebitNote bills the interest accrued across notes over a closed period.
// Immutable after creation except for status and the attached document path.
type DebitNote struct {
	ID            uint64              `gorm:"primaryKey;column:id" json:"-"`
	DebitNoteID   string              `gorm:"column:debit_note_id;type:char(32);not null;uniqueIndex:ux_debit_notes_public_id" json:"debit_note_id"`
	DnNumber      string              `gorm:"column:dn_number;size:16;not null;uniqueIndex:ux_debit_notes_dn_number" json:"dn_number"`
	PeriodStart   time.Time           `gorm:"column:period_start;type:date;not null" json:"period_start"`
	PeriodEnd     time.Time           `gorm:"column:period_end;type:date;not null" json:"period_end"`
	TotalInterest decimal.Decimal     `gorm:"column:total_interest;type:decimal(18,2);not null" json:"total_interest"`
	IssueDate     time.Time           `gorm:"column:issue_date;type:date;not null" json:"issue_date"`
	DueDate       time.Time           `gorm:"column:due_date;type:date;not null;index:idx_debit_notes_due_date" json:"due_date"`
	Status        Status              `gorm:"column:status;type:varchar(16);default:'issued';index:idx_debit_notes_status" json:"status"`
	DocumentPath  string              `gorm:"column:document_path;type:text" json:"document_path,omitempty"`
	LineItems     []DebitNoteLineItem `gorm:"foreignKey:DebitNoteRef;references:ID" json:"line_items"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (DebitNote) TableName() string { return "debit_notes" }

// DebitNoteLineItem freezes one note's share of the billed period:
// principal at generation time, prorated days, rate, rounded interest.
type DebitNoteLineItem struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	DebitNoteRef    uint64          `gorm:"column:debit_note_ref;not null;index:idx_dn_items_debit_note" json:"-"`
	NoteID          string          `gorm:"column:promissory_note_id;type:char(32);not null" json:"promissory_note_id"`
	PrincipalAmount decimal.Decimal `gorm:"column:principal_amount;type:decimal(18,2);not null" json:"principal_amount"`
	Days            int             `gorm:"column:days;not null" json:"days"`
	Rate            decimal.Decimal `gorm:"column:rate;type:decimal(8,4);not null" json:"rate"`
	InterestAmount  decimal.Decimal `gorm:"column:interest_amount;type:decimal(18,2);not null" json:"interest_amount"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (DebitNoteLineItem) TableName() string { return "debit_note_line_items" }

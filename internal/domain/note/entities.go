package note

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("promissory note not found")
	ErrSnapshotNotFound  = errors.New("interest snapshot not found")
	ErrNotActive         = errors.New("promissory note already settled or not active")
	ErrInvalidTransition = errors.New("illegal promissory note status transition")
)

type Status string

const (
	StatusActive    Status = "active"
	StatusSettled   Status = "settled"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

var successors = map[Status][]Status{
	StatusActive:  {StatusSettled, StatusOverdue, StatusCancelled},
	StatusOverdue: {StatusSettled, StatusCancelled},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, n := range successors[s] {
		if n == next {
			return true
		}
	}
	return false
}

// PromissoryNote is the interest-bearing instrument created when a
// disbursement is approved. At most one non-cancelled note exists per
// disbursement.
type PromissoryNote struct {
	ID               uint64              `gorm:"primaryKey;column:id" json:"-"`
	NoteID           string              `gorm:"column:note_id;type:char(32);not null;uniqueIndex:ux_notes_public_id" json:"note_id"`
	DisbursementID   string              `gorm:"column:disbursement_id;type:char(32);not null;index:idx_notes_disbursement" json:"disbursement_id"`
	PnNumber         string              `gorm:"column:pn_number;size:16;not null;uniqueIndex:ux_notes_pn_number" json:"pn_number"`
	PrincipalAmount  decimal.Decimal     `gorm:"column:principal_amount;type:decimal(18,2);not null" json:"principal_amount"`
	InterestRate     decimal.Decimal     `gorm:"column:interest_rate;type:decimal(8,4);not null" json:"interest_rate"`
	IssueDate        time.Time           `gorm:"column:issue_date;type:date;not null" json:"issue_date"`
	DueDate          time.Time           `gorm:"column:due_date;type:date;not null;index:idx_notes_due_date" json:"due_date"`
	Status           Status              `gorm:"column:status;type:varchar(16);default:'active';index:idx_notes_status" json:"status"`
	SettlementDate   *time.Time          `gorm:"column:settlement_date;type:date" json:"settlement_date,omitempty"`
	SettlementAmount decimal.NullDecimal `gorm:"column:settlement_amount;type:decimal(18,2)" json:"settlement_amount,omitempty"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PromissoryNote) TableName() string { return "promissory_notes" }

// InterestSnapshot memoizes the accrued interest of one note as of one
// calculation date. Write-once per (note, date), idempotently upsertable,
// never deleted.
type InterestSnapshot struct {
	ID                  uint64          `gorm:"primaryKey;column:id" json:"-"`
	NoteID              string          `gorm:"column:promissory_note_id;type:char(32);not null;uniqueIndex:ux_snapshots_note_date,priority:1" json:"promissory_note_id"`
	CalculationDate     time.Time       `gorm:"column:calculation_date;type:date;not null;uniqueIndex:ux_snapshots_note_date,priority:2" json:"calculation_date"`
	DaysOutstanding     int             `gorm:"column:days_outstanding;not null" json:"days_outstanding"`
	AccumulatedInterest decimal.Decimal `gorm:"column:accumulated_interest;type:decimal(18,2);not null" json:"accumulated_interest"`
	CreatedAt           time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (InterestSnapshot) TableName() string { return "interest_snapshots" }

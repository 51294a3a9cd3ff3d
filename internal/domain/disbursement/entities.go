package disbursement

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("disbursement not found")
	ErrInvalidTransition = errors.New("illegal disbursement status transition")
	ErrHasActiveNote     = errors.New("disbursement already has an active promissory note")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusDisbursed Status = "disbursed"
	StatusSettled   Status = "settled"
	StatusCancelled Status = "cancelled"
)

// successors is the closed transition table. Settled and cancelled are
// terminal.
var successors = map[Status][]Status{
	StatusPending:   {StatusApproved, StatusCancelled},
	StatusApproved:  {StatusDisbursed, StatusCancelled, StatusSettled},
	StatusDisbursed: {StatusSettled},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, n := range successors[s] {
		if n == next {
			return true
		}
	}
	return false
}

// Disbursement is a funding request against the credit line. Rows are
// soft-deleted only; a request is never physically removed.
type Disbursement struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	DisbursementID  string          `gorm:"column:disbursement_id;type:char(32);not null;uniqueIndex:ux_disbursements_public_id" json:"disbursement_id"`
	RequestNumber   string          `gorm:"column:request_number;size:16;not null;uniqueIndex:ux_disbursements_request_number" json:"request_number"`
	ClientID        string          `gorm:"column:client_id;type:char(32);not null;index:idx_disbursements_client" json:"client_id"`
	RequestedAmount decimal.Decimal `gorm:"column:requested_amount;type:decimal(18,2);not null" json:"requested_amount"`
	RequestDate     time.Time       `gorm:"column:request_date;type:date;not null" json:"request_date"`
	Status          Status          `gorm:"column:status;type:varchar(16);default:'pending';index:idx_disbursements_status" json:"status"`
	ApprovedBy      *string         `gorm:"column:approved_by;type:char(32)" json:"approved_by,omitempty"`
	ApprovedAt      *time.Time      `gorm:"column:approved_at" json:"approved_at,omitempty"`
	AssetsList      []string        `gorm:"column:assets_list;serializer:json;type:text" json:"assets_list,omitempty"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"column:deleted_at;index" json:"-"`
}

func (Disbursement) TableName() string { return "disbursements" }

package client

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("client not found")

// Client owns disbursement requests and contributes its credit limit to
// the pool. Managed by configuration/administration flows; the engine only
// reads it.
type Client struct {
	ID          uint64          `gorm:"primaryKey;column:id" json:"-"`
	ClientID    string          `gorm:"column:client_id;type:char(32);not null;uniqueIndex:ux_clients_public_id" json:"client_id"`
	Name        string          `gorm:"column:name;size:128;not null" json:"name"`
	CreditLimit decimal.Decimal `gorm:"column:credit_limit;type:decimal(18,2);not null" json:"credit_limit"`
	Active      bool            `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Client) TableName() string { return "clients" }

type Repository interface {
	GetByID(ctx context.Context, clientID string) (*Client, error)
	SumActiveCreditLimit(ctx context.Context) (decimal.Decimal, error)
	Upsert(ctx context.Context, c *Client) error
}

// file: models/payment.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Payment links a team to its verified gateway order. The unique index on
// OrderID is what makes persistence idempotent at the business layer: a
// verified order can only ever be attached to one team. The signature is
// write-once and never serialized back out.
type Payment struct {
	ID            string        `gorm:"type:char(36);primarykey" json:"id"`
	TeamID        string        `gorm:"type:char(36);index;not null" json:"team_id"`
	OrderID       string        `gorm:"size:100;uniqueIndex;not null" json:"order_id"`
	PaymentID     string        `gorm:"size:100" json:"payment_id"`
	Signature     string        `gorm:"size:255" json:"-"`
	Amount        int64         `gorm:"not null" json:"amount"`
	Currency      string        `gorm:"size:10;not null;default:'INR'" json:"currency"`
	Status        PaymentStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	FailureReason string        `gorm:"size:255" json:"failure_reason,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

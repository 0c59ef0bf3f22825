// models/payment.go
package models

import "time"

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentSuccess PaymentStatus = "Success"
	PaymentFailed  PaymentStatus = "Failed"
)

// Payment is the single payment attempt owned by a team. One row per team,
// enforced by the unique index on TeamID.
type Payment struct {
	ID             uint          `json:"_id" gorm:"primaryKey"`
	TeamID         uint          `json:"teamId" gorm:"uniqueIndex;not null"`
	Amount         int           `json:"amount" gorm:"not null"`
	Currency       string        `json:"currency" gorm:"size:8;not null"`
	Status         PaymentStatus `json:"status" gorm:"size:10;not null;index"`
	TransactionRef string        `json:"transactionRef" gorm:"uniqueIndex;size:40;not null"`
	Provider       string        `json:"provider" gorm:"size:20;not null"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

func (Payment) TableName() string {
	return "payments"
}

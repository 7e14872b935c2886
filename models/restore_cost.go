// File: /models/restore_cost.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type RestoreCost struct {
	ID           string          `json:"id" gorm:"primaryKey;size:191"`
	MotorID      string          `json:"motor_id" gorm:"not null;index;size:191"`
	Description  string          `json:"description" gorm:"not null;size:500"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	PaidBy       string          `json:"paid_by" gorm:"not null;size:10"`
	Date         time.Time       `json:"date" gorm:"not null"`
	PaymentClear bool            `json:"payment_clear" gorm:"default:false"`
	Receipt      *string         `json:"receipt" gorm:"size:500"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

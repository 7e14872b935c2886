// File: /models/inventory_item.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is a shared part/supply line, independent of any motor
type InventoryItem struct {
	ID           string          `json:"id" gorm:"primaryKey;size:191"`
	Name         string          `json:"name" gorm:"not null;size:255"`
	Quantity     int             `json:"quantity" gorm:"not null;default:0"`
	Cost         decimal.Decimal `json:"cost" gorm:"type:decimal(12,2);default:0"`
	PaidBy       string          `json:"paid_by" gorm:"size:10"`
	PaymentClear bool            `json:"payment_clear" gorm:"default:false"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

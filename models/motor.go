// File: /models/motor.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MotorStatus is derived from the lifecycle dates, never stored
type MotorStatus string

const (
	StatusInProgress MotorStatus = "in_progress"
	StatusListed     MotorStatus = "listed"
	StatusSold       MotorStatus = "sold"
)

// Payer tags: the fixed set of parties that can fund a purchase or cost
const (
	PaidByDH = "dh"
	PaidByKS = "ks"
	PaidByZC = "zc"
)

type Motor struct {
	ID            string `json:"id" gorm:"primaryKey;size:191"`
	CarPlate      string `json:"car_plate" gorm:"not null;size:20"`
	Name          string `json:"name" gorm:"not null;size:255"`
	Year          *int   `json:"year"`
	PreviousOwner string `json:"previous_owner" gorm:"size:255"`
	ChangedName   bool   `json:"changed_name" gorm:"default:false"`
	PaidBy        string `json:"paid_by" gorm:"size:10"`

	BoughtInDate *time.Time `json:"bought_in_date"`
	ListingDate  *time.Time `json:"listing_date"`
	SoldDate     *time.Time `json:"sold_date"`

	BoughtInCost *decimal.Decimal `json:"bought_in_cost" gorm:"type:decimal(12,2)"`
	SoldPrice    *decimal.Decimal `json:"sold_price" gorm:"type:decimal(12,2)"`

	// RestoreCost is the cached sum of all cost entry amounts for this
	// motor, maintained by the ledger service on every entry mutation.
	RestoreCost decimal.Decimal `json:"restore_cost" gorm:"type:decimal(12,2);default:0"`

	// Clear is the motor-level payment flag shown on the detail page.
	// It is independent of the per-entry PaymentClear flags.
	Clear bool `json:"clear" gorm:"default:false"`

	Images            StringSliceType `json:"images" gorm:"type:json"`
	Videos            StringSliceType `json:"videos" gorm:"type:json"`
	PrimaryImageIndex *int            `json:"primary_image_index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Status classifies the motor from its lifecycle dates. A set SoldDate
// wins regardless of ListingDate; selling without listing is valid.
func (m *Motor) Status() MotorStatus {
	if m.SoldDate != nil {
		return StatusSold
	}
	if m.ListingDate != nil {
		return StatusListed
	}
	return StatusInProgress
}

// TotalInvestment is the acquisition cost plus the cached restoration total
func (m *Motor) TotalInvestment() decimal.Decimal {
	total := m.RestoreCost
	if m.BoughtInCost != nil {
		total = total.Add(*m.BoughtInCost)
	}
	return total
}

// Profit returns zero while the sale price is unset ("not yet priced").
// A negative result is a loss, not an error.
func (m *Motor) Profit() decimal.Decimal {
	if m.SoldPrice == nil {
		return decimal.Zero
	}
	return m.SoldPrice.Sub(m.TotalInvestment())
}

// IsValidPaidBy reports whether tag belongs to the fixed payer set
func IsValidPaidBy(tag string) bool {
	switch tag {
	case PaidByDH, PaidByKS, PaidByZC:
		return true
	}
	return false
}

// File: /services/ledger_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"motorestore-api/models"
)

// LedgerService owns the financial view of a motor: the cached restoration
// aggregate, the cost entry lifecycle and the media list bookkeeping.
// Every mutation that touches both a cost entry and its motor runs inside
// one transaction, and the aggregate is always recomputed as a full sum
// over the motor's current entries rather than adjusted by a delta.
type LedgerService struct {
	db *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db}
}

// CostEntryInput carries the caller-supplied fields for a new cost entry
type CostEntryInput struct {
	Description  string
	Amount       decimal.Decimal
	PaidBy       string
	Date         time.Time
	PaymentClear bool
	Receipt      *string
}

// CostEntryUpdate is a partial update; nil fields are left untouched
type CostEntryUpdate struct {
	Description  *string
	Amount       *decimal.Decimal
	PaidBy       *string
	Date         *time.Time
	PaymentClear *bool
	Receipt      *string
}

// AddCostEntry validates the input, persists the entry and brings the
// owning motor's cached aggregate up to date, all in one transaction.
func (ls *LedgerService) AddCostEntry(motorID string, input CostEntryInput) (*models.RestoreCost, error) {
	if !input.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !models.IsValidPaidBy(input.PaidBy) {
		return nil, ErrInvalidPaidBy
	}

	entry := models.RestoreCost{
		ID:           uuid.New().String(),
		MotorID:      motorID,
		Description:  input.Description,
		Amount:       input.Amount,
		PaidBy:       input.PaidBy,
		Date:         input.Date,
		PaymentClear: input.PaymentClear,
		Receipt:      input.Receipt,
	}

	err := ls.db.Transaction(func(tx *gorm.DB) error {
		var motor models.Motor
		if err := tx.First(&motor, "id = ?", motorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMotorNotFound
			}
			return err
		}

		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		return ls.refreshAggregate(tx, motorID)
	})
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// UpdateCostEntry applies the non-nil fields and refreshes UpdatedAt.
// When the amount changes the owning motor's aggregate is recomputed in
// the same transaction, so an amount edit can never leave the cached
// total stale.
func (ls *LedgerService) UpdateCostEntry(costID string, update CostEntryUpdate) error {
	if update.Amount != nil && !update.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if update.PaidBy != nil && !models.IsValidPaidBy(*update.PaidBy) {
		return ErrInvalidPaidBy
	}

	return ls.db.Transaction(func(tx *gorm.DB) error {
		var entry models.RestoreCost
		if err := tx.First(&entry, "id = ?", costID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCostNotFound
			}
			return err
		}

		changes := map[string]interface{}{
			"updated_at": time.Now(),
		}
		if update.Description != nil {
			changes["description"] = *update.Description
		}
		if update.Amount != nil {
			changes["amount"] = *update.Amount
		}
		if update.PaidBy != nil {
			changes["paid_by"] = *update.PaidBy
		}
		if update.Date != nil {
			changes["date"] = *update.Date
		}
		if update.PaymentClear != nil {
			changes["payment_clear"] = *update.PaymentClear
		}
		if update.Receipt != nil {
			changes["receipt"] = *update.Receipt
		}

		if err := tx.Model(&entry).Updates(changes).Error; err != nil {
			return err
		}

		if update.Amount != nil {
			return ls.refreshAggregate(tx, entry.MotorID)
		}
		return nil
	})
}

// DeleteCostEntry removes the entry and recomputes the owning motor's
// aggregate from the remaining entries. The full recompute is the ledger's
// self-correcting path: any previously accumulated drift is repaired here.
func (ls *LedgerService) DeleteCostEntry(costID string) error {
	return ls.db.Transaction(func(tx *gorm.DB) error {
		var entry models.RestoreCost
		if err := tx.First(&entry, "id = ?", costID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCostNotFound
			}
			return err
		}

		if err := tx.Delete(&entry).Error; err != nil {
			return err
		}

		return ls.refreshAggregate(tx, entry.MotorID)
	})
}

// CostsByMotor lists a motor's entries, most recently incurred first
func (ls *LedgerService) CostsByMotor(motorID string) ([]models.RestoreCost, error) {
	var entries []models.RestoreCost
	err := ls.db.Where("motor_id = ?", motorID).
		Order("date DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ClearAllPayments marks every entry of the motor as payment cleared in
// one batch. Zero entries is a vacuous success. The aggregate is untouched.
func (ls *LedgerService) ClearAllPayments(motorID string) error {
	return ls.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.RestoreCost{}).
			Where("motor_id = ?", motorID).
			Updates(map[string]interface{}{
				"payment_clear": true,
				"updated_at":    time.Now(),
			}).Error
	})
}

// DeleteMotor removes the motor and all of its cost entries all-or-nothing,
// so neither orphaned entries nor a half-deleted motor can be observed.
func (ls *LedgerService) DeleteMotor(motorID string) error {
	return ls.db.Transaction(func(tx *gorm.DB) error {
		var motor models.Motor
		if err := tx.First(&motor, "id = ?", motorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMotorNotFound
			}
			return err
		}

		if err := tx.Where("motor_id = ?", motorID).Delete(&models.RestoreCost{}).Error; err != nil {
			return err
		}

		return tx.Delete(&motor).Error
	})
}

// RemoveImage drops the first matching URL from the motor's image list and
// keeps the primary image pointer valid: reset to the first image when the
// primary itself was removed, cleared when no images remain, shifted down
// when an earlier image was removed. Removing an absent URL is a no-op.
func (ls *LedgerService) RemoveImage(motorID, imageURL string) error {
	return ls.db.Transaction(func(tx *gorm.DB) error {
		var motor models.Motor
		if err := tx.First(&motor, "id = ?", motorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMotorNotFound
			}
			return err
		}

		removed := motor.Images.IndexOf(imageURL)
		if removed == -1 {
			return nil
		}

		images := make(models.StringSliceType, 0, len(motor.Images)-1)
		images = append(images, motor.Images[:removed]...)
		images = append(images, motor.Images[removed+1:]...)

		primary := motor.PrimaryImageIndex
		if primary != nil {
			switch {
			case len(images) == 0:
				primary = nil
			case removed == *primary:
				zero := 0
				primary = &zero
			case removed < *primary:
				shifted := *primary - 1
				primary = &shifted
			}
		}

		return tx.Model(&motor).Updates(map[string]interface{}{
			"images":              images,
			"primary_image_index": primary,
			"updated_at":          time.Now(),
		}).Error
	})
}

// RemoveVideo drops the first matching URL from the motor's video list.
// There is no primary video, so no index bookkeeping is needed.
func (ls *LedgerService) RemoveVideo(motorID, videoURL string) error {
	return ls.db.Transaction(func(tx *gorm.DB) error {
		var motor models.Motor
		if err := tx.First(&motor, "id = ?", motorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMotorNotFound
			}
			return err
		}

		removed := motor.Videos.IndexOf(videoURL)
		if removed == -1 {
			return nil
		}

		videos := make(models.StringSliceType, 0, len(motor.Videos)-1)
		videos = append(videos, motor.Videos[:removed]...)
		videos = append(videos, motor.Videos[removed+1:]...)

		return tx.Model(&motor).Updates(map[string]interface{}{
			"videos":     videos,
			"updated_at": time.Now(),
		}).Error
	})
}

// SetPrimaryImage points the card display at the given image. The index is
// checked against the current list length instead of trusting the caller.
func (ls *LedgerService) SetPrimaryImage(motorID string, index int) error {
	var motor models.Motor
	if err := ls.db.First(&motor, "id = ?", motorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMotorNotFound
		}
		return err
	}

	if index < 0 || index >= len(motor.Images) {
		return fmt.Errorf("%w: %d of %d images", ErrInvalidImageIndex, index, len(motor.Images))
	}

	return ls.db.Model(&motor).Updates(map[string]interface{}{
		"primary_image_index": index,
		"updated_at":          time.Now(),
	}).Error
}

// AttachMedia appends an uploaded URL to the motor's image or video list.
// Callers must only pass URLs the media host has confirmed.
func (ls *LedgerService) AttachMedia(motorID, url, kind string) error {
	if kind != MediaKindImage && kind != MediaKindVideo {
		return ErrInvalidMediaKind
	}

	return ls.db.Transaction(func(tx *gorm.DB) error {
		var motor models.Motor
		if err := tx.First(&motor, "id = ?", motorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMotorNotFound
			}
			return err
		}

		changes := map[string]interface{}{
			"updated_at": time.Now(),
		}
		if kind == MediaKindVideo {
			changes["videos"] = append(motor.Videos, url)
		} else {
			changes["images"] = append(motor.Images, url)
		}

		return tx.Model(&motor).Updates(changes).Error
	})
}

// ReconcileAggregates recomputes the cached restore cost of every motor and
// persists any that drifted. It returns the number of corrected motors.
func (ls *LedgerService) ReconcileAggregates() (int, error) {
	var motors []models.Motor
	if err := ls.db.Find(&motors).Error; err != nil {
		return 0, err
	}

	corrected := 0
	for _, motor := range motors {
		err := ls.db.Transaction(func(tx *gorm.DB) error {
			total, err := ls.sumEntries(tx, motor.ID)
			if err != nil {
				return err
			}
			if total.Equal(motor.RestoreCost) {
				return nil
			}

			fmt.Printf("Reconciling motor %s: cached %s, actual %s\n",
				motor.ID, motor.RestoreCost.String(), total.String())
			corrected++

			return tx.Model(&models.Motor{}).
				Where("id = ?", motor.ID).
				Updates(map[string]interface{}{
					"restore_cost": total,
					"updated_at":   time.Now(),
				}).Error
		})
		if err != nil {
			return corrected, err
		}
	}

	return corrected, nil
}

// refreshAggregate overwrites the motor's cached total with the exact sum
// of its current entries
func (ls *LedgerService) refreshAggregate(tx *gorm.DB, motorID string) error {
	total, err := ls.sumEntries(tx, motorID)
	if err != nil {
		return err
	}

	return tx.Model(&models.Motor{}).
		Where("id = ?", motorID).
		Updates(map[string]interface{}{
			"restore_cost": total,
			"updated_at":   time.Now(),
		}).Error
}

// sumEntries adds up the entry amounts in Go so the result stays exact
// regardless of how the database column sums decimals
func (ls *LedgerService) sumEntries(tx *gorm.DB, motorID string) (decimal.Decimal, error) {
	var entries []models.RestoreCost
	if err := tx.Where("motor_id = ?", motorID).Find(&entries).Error; err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, entry := range entries {
		total = total.Add(entry.Amount)
	}
	return total, nil
}

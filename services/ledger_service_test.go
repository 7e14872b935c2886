// File: /services/ledger_service_test.go
package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"motorestore-api/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache DSN keeps pooled connections on the same
	// in-memory database while isolating tests from each other
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Motor{},
		&models.RestoreCost{},
		&models.InventoryItem{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestMotor(t *testing.T, db *gorm.DB) *models.Motor {
	t.Helper()

	motor := models.Motor{
		ID:          uuid.New().String(),
		CarPlate:    "WXY1234",
		Name:        "Yamaha RXZ 135",
		RestoreCost: decimal.Zero,
		Images:      models.StringSliceType{},
		Videos:      models.StringSliceType{},
	}
	if err := db.Create(&motor).Error; err != nil {
		t.Fatalf("failed to create test motor: %v", err)
	}
	return &motor
}

func reloadMotor(t *testing.T, db *gorm.DB, id string) *models.Motor {
	t.Helper()

	var motor models.Motor
	if err := db.First(&motor, "id = ?", id).Error; err != nil {
		t.Fatalf("failed to reload motor: %v", err)
	}
	return &motor
}

func addEntry(t *testing.T, ls *LedgerService, motorID, amount string) *models.RestoreCost {
	t.Helper()

	entry, err := ls.AddCostEntry(motorID, CostEntryInput{
		Description: "test entry",
		Amount:      decimal.RequireFromString(amount),
		PaidBy:      models.PaidByDH,
		Date:        time.Now(),
	})
	if err != nil {
		t.Fatalf("AddCostEntry(%s) failed: %v", amount, err)
	}
	return entry
}

func TestAddCostEntryUpdatesAggregate(t *testing.T) {
	db := newTestDB(t)
	ls := NewLedgerService(db)
	motor := createTestMotor(t, db)

	addEntry(t, ls, motor.ID, "150.00")
	if got := reloadMotor(t, db, motor.ID).RestoreCost; !got.Equal(decimal.RequireFromString("150.00")) {
		t.Fatalf("restore cost after first entry = %s, want 150.00", got)
	}

	addEntry(t, ls, motor.ID, "75.50")
	if got := reloadMotor(t, db, motor.ID).RestoreCost; !got.Equal(decimal.RequireFromString("225.50")) {
		t.Fatalf("restore cost after second entry = %s, want 225.50", got)
	}
}

func TestAddCostEntryValidation(t *testing.T) {
	db := newTestDB(t)
	ls := NewLedgerService(db)
	motor := createTestMotor(t, db)

	tests := []struct {
		name    string
		amount  string
		paidBy  string
		wantErr error
	}{
		{"zero amount", "0", models.PaidByDH, ErrInvalidAmount},
		{"negative amount", "-10", models.PaidByDH, ErrInvalidAmount},
		{"unknown payer tag", "10", "xx", ErrInvalidPaidBy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ls.AddCostEntry(motor.ID, CostEntryInput{
				Description: "bad entry",
				Amount:      decimal.RequireFromString(tt.amount),
				PaidBy:      tt.paidBy,
				Date:        time.Now(),
			})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddCostEntry error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// Nothing may have been persisted
	var count int64
	db.Model(&models.RestoreCost{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected entries were persisted: count = %d", count)
	}
	if got := reloadMotor(t, db, motor.ID).RestoreCost; !got.IsZero() {
		t.Fatalf("restore cost changed by rejected entries: %s", got)
	}
}

func TestAddCostEntryUnknownMotor(t *testing.T) {
	db := newTestDB(t)
	ls := NewLedgerService(db)

	_, err := ls.AddCostEntry("no-such-motor", CostEntryInput{
		Description: "orphan",
		Amount:      decimal.NewFromInt(10),
		PaidBy:      models.PaidByKS,
		Date:        time.Now(),
	})
	if !errors.Is(err, ErrMotorNotFound) {
		t.Fatalf("AddCostEntry error = %v, want ErrMotorNotFound", err)
	}

	var count int64
	db.Model(&models.RestoreCost{}).Count(&count)
	if count != 0 {
		t.Fatalf("entry persisted for unknown motor: count = %d", count)
	}
}

func TestDeleteCostEntryRecomputesFromRemaining(t *testing.T) {
	db := newTestDB(t)
	ls := NewLedgerService(db)
	motor := createTestMotor(t, db)

	first := addEntry(t, ls, motor.ID, "150.00")
	addEntry(t, ls, motor.ID, "75.50")

	if err := ls.DeleteCostEntry(first.ID); err != nil {
		t.Fatalf("DeleteCostEntry failed: %v", err)
	}

	if got := reloadMotor(t, db, motor.ID).RestoreCost; !got.Equal(decimal.RequireFromString("75.50")) {
		t.Fatalf("restore cost after delete = %s, want 75.50", got)
	}
}

func TestAddThenDeleteRestoresAggregate(t *testing.T) {
	db := newTestDB(t)
	ls := NewLedgerService(db)
	motor := createTestMotor(t, db)

	addEntry(t, ls, motor.ID, "99.90")
	before := reloadMotor(t, db, motor.ID).RestoreCost

	entry := addEntry(t, ls, motor.ID, "42.42")
	if err := ls.DeleteCostEntry(entry.ID); err != nil {
		t.Fatalf("DeleteCostEntry failed: %v", err)
	}

	after := reloadMotor(t, db, motor.ID).RestoreCost
	if !after.Equal(before) {
		t.Fatalf("restore cost after add+delete = %s, want %s", after, before)
	}
}

func TestDeleteCostEntryUnknown(t *testing.T) {
	db := newTestDB(t)
	ls := NewLedgerService(db)

	if err := ls.DeleteCostEntry("no-such-entry"); !errors.Is(err, ErrCostNotFound) {
		t.Fatalf("DeleteCostEntry error = %v, want ErrCostNotFound", err)
	}
}

func TestUpdateCostEntryAmountRecomputesAggregate(t *testing.T) {
	db := newTestDB(t)
	ls := NewLedgerService(db)
	motor := createTestMotor(t, db)

	entry := addEntry(t, ls, motor.ID, "150.00")
	addEntry(t, ls, motor.ID, "75.50")

	newAmount := decimal.RequireFromString("200.00")
	if err := ls.UpdateCostEntry(entry.ID, CostEntryUpdate{Amount: &newAmount}); err != nil {
		t.Fatalf("UpdateCostEntry failed: %v", err)
	}

	if got := reloadMotor(t, db, motor.ID).RestoreCost; !got.Equal(decimal.RequireFromString("275.50")) {
		t.Fatalf("restore cost after amount edit = %s, want 275.50", got)
	}
}

func TestUpdateCostEntryNonAmountFieldsLeaveAggregate(t *testing.T) {
	db := newTestDB(t)
	ls := NewLedgerService(db)
	motor := createTestMotor(t, db)

	entry := addEntry(t, ls, motor.ID, "150.00")

	desc := "swapped exhaust"
	cleared := true
	if err := ls.UpdateCostEntry(entry.ID, CostEntryUpdate{Description: &desc, PaymentClear: &cleared}); err != nil {
		t.Fatalf("UpdateCostEntry failed: %v", err)
	}

	var reloaded models.RestoreCost
	if err := db.First(&reloaded, "id = ?", entry.ID).Error; err != nil {
		t.Fatalf("failed to reload entry: %v", err)
	}
	if reloaded.Description != desc {
		t.Fatalf("description = %q, want %q", reloaded.Description, desc)
	}
	if !reloaded.PaymentClear {
		t.Fatal("payment_clear not set")
	}

	if got := reloadMotor(t, db, motor.ID).RestoreCost; !got.Equal(decimal.RequireFromString("150.00")) {
		t.Fatalf("restore cost changed by non-amount edit: %s", got)
	}
}

func TestUpdateCostEntryValidation(t *testing.T) {
	db := newTestDB(t)
	ls := NewLedgerService(db)
	motor := createTestMotor(t, db)
	entry := addEntry(t, ls, motor.ID, "150.00")

	bad := decimal.Zero
	if err := ls.UpdateCostEntry(entry.ID, CostEntryUpdate{Amount: &bad}); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("UpdateCostEntry error = %v, want ErrInvalidAmount", err)
	}

	tag := "nope"
	if err := ls.UpdateCostEntry(entry.ID, CostEntryUpdate{PaidBy: &tag}); !errors.Is(err, ErrInvalidPaidBy) {
		t.Fatalf("UpdateCostEntry error = %v, want ErrInvalidPaidBy", err)
	}

	amount := decimal.NewFromInt(10)
	if err := ls.UpdateCostEntry("no-such-entry", CostEntryUpdate{Amount: &amount}); !errors.Is(err, ErrCostNotFound) {
		t.Fatalf("UpdateCostEntry error = %v, want ErrCostNotFound", err)
	}
}

func TestCostsByMotorOrderedByDateDesc(t *testing.T) {
	db := newTestDB(t)
	ls := NewLedgerService(db)
	motor := createTestMotor(t, db)

	older := time.Now().AddDate(0, -1, 0)
	newer := time.Now()

	for _, in := range []CostEntryInput{
		{Description: "older", Amount: decimal.NewFromInt(10), PaidBy: models.PaidByDH, Date: older},
		{Description: "newer", Amount: decimal.NewFromInt(20), PaidBy: models.PaidByKS, Date: newer},
	} {
		if _, err := ls.AddCostEntry(motor.ID, in); err != nil {
			t.Fatalf("AddCostEntry failed: %v", err)
		}
	}

	costs, err := ls.CostsByMotor(motor.ID)
	if err != nil {
		t.Fatalf("CostsByMotor failed: %v", err)
	}
	if len(costs) != 2 {
		t.Fatalf("len(costs) = %d, want 2", len(costs))
	}
	if costs[0].Description != "newer" || costs[1].Description != "older" {
		t.Fatalf("costs not ordered by date desc: %q, %q", costs[0].Description, costs[1].Description)
	}
}

func TestClearAllPayments(t *testing.T) {
	db := newTestDB(t)
	ls := NewLedgerService(db)
	motor := createTestMotor(t, db)
	other := createTestMotor(t, db)

	addEntry(t, ls, motor.ID, "150.00")
	addEntry(t, ls, motor.ID, "75.50")
	addEntry(t, ls, other.ID, "10.00")

	if err := ls.ClearAllPayments(motor.ID); err != nil {
		t.Fatalf("ClearAllPayments failed: %v", err)
	}

	var cleared int64
	db.Model(&models.RestoreCost{}).Where("motor_id = ? AND payment_clear = ?", motor.ID, true).Count(&cleared)
	if cleared != 2 {
		t.Fatalf("cleared entries = %d, want 2", cleared)
	}

	// The other motor's entry stays untouched
	var otherCleared int64
	db.Model(&models.RestoreCost{}).Where("motor_id = ? AND payment_clear = ?", other.ID, true).Count(&otherCleared)
	if otherCleared != 0 {
		t.Fatalf("other motor's entries were cleared: %d", otherCleared)
	}

	// The aggregate is untouched
	if got := reloadMotor(t, db, motor.ID).RestoreCost; !got.Equal(decimal.RequireFromString("225.50")) {
		t.Fatalf("restore cost changed by clearing payments: %s", got)
	}
}

func TestClearAllPaymentsVacuous(t *testing.T) {
	db := newTestDB(t)
	ls := NewLedgerService(db)
	motor := createTestMotor(t, db)

	if err := ls.ClearAllPayments(motor.ID); err != nil {
		t.Fatalf("ClearAllPayments with zero entries failed: %v", err)
	}
}

func TestDeleteMotorRemovesMotorAndCosts(t *testing.T) {
	db := newTestDB(t)
	ls := NewLedgerService(db)
	motor := createTestMotor(t, db)
	survivor := createTestMotor(t, db)

	addEntry(t, ls, motor.ID, "150.00")
	addEntry(t, ls, motor.ID, "75.50")
	kept := addEntry(t, ls, survivor.ID, "33.00")

	if err := ls.DeleteMotor(motor.ID); err != nil {
		t.Fatalf("DeleteMotor failed: %v", err)
	}

	var motorCount int64
	db.Model(&models.Motor{}).Where("id = ?", motor.ID).Count(&motorCount)
	if motorCount != 0 {
		t.Fatal("motor still present after DeleteMotor")
	}

	var costCount int64
	db.Model(&models.RestoreCost{}).Where("motor_id = ?", motor.ID).Count(&costCount)
	if costCount != 0 {
		t.Fatalf("orphaned cost entries after DeleteMotor: %d", costCount)
	}

	// Another motor's entry survives
	var keptEntry models.RestoreCost
	if err := db.First(&keptEntry, "id = ?", kept.ID).Error; err != nil {
		t.Fatalf("survivor's entry was deleted: %v", err)
	}
}

func TestDeleteMotorUnknown(t *testing.T) {
	db := newTestDB(t)
	ls := NewLedgerService(db)

	if err := ls.DeleteMotor("no-such-motor"); !errors.Is(err, ErrMotorNotFound) {
		t.Fatalf("DeleteMotor error = %v, want ErrMotorNotFound", err)
	}
}

func TestReconcileAggregatesRepairsDrift(t *testing.T) {
	db := newTestDB(t)
	ls := NewLedgerService(db)
	motor := createTestMotor(t, db)

	addEntry(t, ls, motor.ID, "150.00")

	// Simulate drift from a crash between the entry and aggregate writes
	if err := db.Model(&models.Motor{}).Where("id = ?", motor.ID).
		Update("restore_cost", decimal.NewFromInt(999)).Error; err != nil {
		t.Fatalf("failed to inject drift: %v", err)
	}

	corrected, err := ls.ReconcileAggregates()
	if err != nil {
		t.Fatalf("ReconcileAggregates failed: %v", err)
	}
	if corrected != 1 {
		t.Fatalf("corrected = %d, want 1", corrected)
	}

	if got := reloadMotor(t, db, motor.ID).RestoreCost; !got.Equal(decimal.RequireFromString("150.00")) {
		t.Fatalf("restore cost after reconcile = %s, want 150.00", got)
	}

	// A second pass finds nothing to repair
	corrected, err = ls.ReconcileAggregates()
	if err != nil {
		t.Fatalf("ReconcileAggregates failed: %v", err)
	}
	if corrected != 0 {
		t.Fatalf("corrected on clean pass = %d, want 0", corrected)
	}
}

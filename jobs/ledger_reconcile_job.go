// File: /jobs/ledger_reconcile_job.go
package jobs

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"motorestore-api/services"
)

// LedgerReconcileJob periodically recomputes every motor's cached restore
// cost from its entries. A crash between an entry write and the aggregate
// write can leave the cache stale; this sweep repairs it.
type LedgerReconcileJob struct {
	ledgerService *services.LedgerService
	ticker        *time.Ticker
	done          chan bool
}

// NewLedgerReconcileJob creates a new reconciliation job
func NewLedgerReconcileJob(db *gorm.DB, interval time.Duration) *LedgerReconcileJob {
	return &LedgerReconcileJob{
		ledgerService: services.NewLedgerService(db),
		ticker:        time.NewTicker(interval),
		done:          make(chan bool),
	}
}

// Start begins the reconciliation job
func (j *LedgerReconcileJob) Start() {
	fmt.Println("Ledger reconcile job started")

	go func() {
		// Run immediately on start
		j.reconcile()

		for {
			select {
			case <-j.ticker.C:
				j.reconcile()
			case <-j.done:
				fmt.Println("Ledger reconcile job stopped")
				return
			}
		}
	}()
}

// Stop stops the reconciliation job
func (j *LedgerReconcileJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

func (j *LedgerReconcileJob) reconcile() {
	corrected, err := j.ledgerService.ReconcileAggregates()
	if err != nil {
		fmt.Printf("Error during ledger reconcile: %v\n", err)
		return
	}

	if corrected > 0 {
		fmt.Printf("Ledger reconcile corrected %d motor(s)\n", corrected)
	}
}

package jobs

import (
	"context"

	"autorental-backend/internal/logger"
)

// ReconcilePaymentLedger compares each rental's amount_paid_cents against the
// sum of its COMPLETED payments and logs every mismatch. The job never mutates
// data; a mismatch means a code path bypassed the transactional payment flow
// and needs investigation.
func (jr *JobRunner) ReconcilePaymentLedger() {
	jr.runWithRecovery("ReconcilePaymentLedger", func() {
		ctx := context.Background()

		query := `
			SELECT r.id, r.contract_number, r.amount_paid_cents,
			       COALESCE(SUM(p.amount_cents), 0) AS ledger_cents
			FROM rentals r
			LEFT JOIN payments p
			  ON p.rental_id = r.id
			 AND p.status = 'COMPLETED'
			 AND p.deleted_on IS NULL
			WHERE r.deleted_on IS NULL
			GROUP BY r.id, r.contract_number, r.amount_paid_cents
			HAVING r.amount_paid_cents <> COALESCE(SUM(p.amount_cents), 0)
			ORDER BY r.id
		`

		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("Failed to reconcile payment ledger", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				rentalID       int64
				contractNumber string
				amountPaid     int64
				ledger         int64
			)
			if err := rows.Scan(&rentalID, &contractNumber, &amountPaid, &ledger); err != nil {
				logger.Error("Failed to scan ledger mismatch", "error", err)
				continue
			}
			count++
			logger.Warn("Payment ledger mismatch",
				"rental_id", rentalID,
				"contract_number", contractNumber,
				"amount_paid_cents", amountPaid,
				"ledger_cents", ledger,
				"drift_cents", amountPaid-ledger)
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating ledger mismatches", "error", err)
			return
		}

		if count == 0 {
			logger.Info("Payment ledger reconciled, no drift found")
		} else {
			logger.Warn("Payment ledger reconciliation found drift", "mismatches", count)
		}
	})
}

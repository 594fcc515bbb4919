package jobs

import (
	"context"
	"time"

	"fleetyard-backend/internal/logger"
)

// SweepOverdueRentals logs active rentals past their planned end date.
// Overdue is a derived view, not a status: the rental stays active until a
// staff member returns or cancels it, so the sweep reads and reports only.
func (jr *JobRunner) SweepOverdueRentals() {
	jr.runWithRecovery("SweepOverdueRentals", func() {
		ctx := context.Background()

		query := `
			SELECT r.id, r.vehicle_id, r.customer_name, r.planned_end_date, v.rego
			FROM rentals r
			JOIN vehicles v ON v.id = r.vehicle_id
			WHERE r.status = 'active'
			  AND r.planned_end_date < $1
			ORDER BY r.planned_end_date
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now())
		if err != nil {
			logger.Error("Failed to query overdue rentals", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				id, vehicleID, customerName, rego string
				plannedEnd                        time.Time
			)
			if err := rows.Scan(&id, &vehicleID, &customerName, &plannedEnd, &rego); err != nil {
				logger.Error("Failed to scan overdue rental", "error", err)
				continue
			}
			count++
			logger.Warn("Rental overdue",
				"rental_id", id,
				"vehicle_id", vehicleID,
				"rego", rego,
				"customer", customerName,
				"planned_end_date", plannedEnd.Format("2006-01-02"),
				"days_overdue", int(time.Since(plannedEnd).Hours()/24))
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue rentals", "error", err)
			return
		}

		logger.Info("Overdue rental sweep finished", "overdue_count", count)
	})
}

package jobs

import (
	"context"
	"time"

	"fleetyard-backend/internal/logger"
)

// ReportFlaggedVehicles logs vehicles sitting in service with an unresolved
// issue, so long-running repairs show up in the nightly run.
func (jr *JobRunner) ReportFlaggedVehicles() {
	jr.runWithRecovery("ReportFlaggedVehicles", func() {
		ctx := context.Background()

		query := `
			SELECT id, rego, make, model, maintenance_notes, updated_on
			FROM vehicles
			WHERE status = 'service'
			  AND maintenance_notes <> ''
			ORDER BY updated_on
		`

		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("Failed to query flagged vehicles", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				id, rego, vmake, model, notes string
				updatedOn                     time.Time
			)
			if err := rows.Scan(&id, &rego, &vmake, &model, &notes, &updatedOn); err != nil {
				logger.Error("Failed to scan flagged vehicle", "error", err)
				continue
			}
			count++
			logger.Warn("Vehicle flagged with unresolved issue",
				"vehicle_id", id,
				"rego", rego,
				"make", vmake,
				"model", model,
				"notes", notes,
				"since", updatedOn.Format("2006-01-02"))
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating flagged vehicles", "error", err)
			return
		}

		logger.Info("Flagged vehicle report finished", "flagged_count", count)
	})
}

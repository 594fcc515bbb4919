package postgres

import (
	"context"
	"database/sql"
	"time"

	"fleetyard-backend/internal/domain"
	"fleetyard-backend/internal/repository"

	"github.com/google/uuid"
)

type fuelLogRepository struct {
	db *sql.DB
}

func NewFuelLogRepository(db *sql.DB) repository.FuelLogRepository {
	return &fuelLogRepository{db: db}
}

func (r *fuelLogRepository) Create(ctx context.Context, f *domain.FuelLog) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	query := `INSERT INTO fuel_logs (id, vehicle_id, mva_number, rego, kms, litres, cost, date, created_by, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	now := time.Now()
	_, err := querier(ctx, r.db).ExecContext(ctx, query,
		f.ID, f.VehicleID, f.MvaNumber, f.Rego, f.Kms, f.Litres, f.Cost, f.Date, f.CreatedBy, now)
	if err != nil {
		return err
	}
	f.CreatedOn = now
	return nil
}

func (r *fuelLogRepository) List(ctx context.Context, month, year int) ([]domain.FuelLog, error) {
	query := `SELECT id, vehicle_id, mva_number, rego, kms, litres, cost, date, created_by, created_on
	          FROM fuel_logs`
	var args []interface{}
	if month != 0 && year != 0 {
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		query += ` WHERE date >= $1 AND date < $2`
		args = append(args, start, start.AddDate(0, 1, 0))
	}
	query += ` ORDER BY date DESC`

	rows, err := querier(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []domain.FuelLog
	for rows.Next() {
		var f domain.FuelLog
		var vehicleID sql.NullString
		if err := rows.Scan(&f.ID, &vehicleID, &f.MvaNumber, &f.Rego, &f.Kms, &f.Litres, &f.Cost, &f.Date, &f.CreatedBy, &f.CreatedOn); err != nil {
			return nil, err
		}
		if vehicleID.Valid {
			f.VehicleID = &vehicleID.String
		}
		logs = append(logs, f)
	}
	return logs, rows.Err()
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fleetyard-backend/internal/domain"
	"fleetyard-backend/internal/repository"

	"github.com/google/uuid"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, vehicle_id, customer_name, customer_phone, destination, start_date,
	planned_end_date, actual_return_date, status, notes, created_by, created_on, updated_on`

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	if rt.ID == "" {
		rt.ID = uuid.NewString()
	}
	// The partial unique index on (vehicle_id) WHERE status='active' is the
	// schema backstop for the one-active-rental invariant.
	query := `INSERT INTO rentals (id, vehicle_id, customer_name, customer_phone, destination, start_date,
	            planned_end_date, status, notes, created_by, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	now := time.Now()
	_, err := querier(ctx, r.db).ExecContext(ctx, query,
		rt.ID, rt.VehicleID, rt.CustomerName, rt.CustomerPhone, rt.Destination, rt.StartDate,
		rt.PlannedEndDate, rt.Status, rt.Notes, rt.CreatedBy, now, now)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: vehicle %s already has an active rental", domain.ErrConflict, rt.VehicleID)
	}
	if err != nil {
		return err
	}
	rt.CreatedOn = now
	rt.UpdatedOn = now
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	row := querier(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+rentalColumns+` FROM rentals WHERE id = $1`, id)
	rt, err := scanRental(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: rental %s", domain.ErrNotFound, id)
	}
	return rt, err
}

func (r *rentalRepository) GetActiveByVehicle(ctx context.Context, vehicleID string) (*domain.Rental, error) {
	row := querier(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+rentalColumns+` FROM rentals WHERE vehicle_id = $1 AND status = $2`,
		vehicleID, domain.RentalStatusActive)
	rt, err := scanRental(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no active rental for vehicle %s", domain.ErrNotFound, vehicleID)
	}
	return rt, err
}

func (r *rentalRepository) List(ctx context.Context) ([]domain.Rental, error) {
	rows, err := querier(ctx, r.db).QueryContext(ctx,
		`SELECT `+rentalColumns+` FROM rentals ORDER BY created_on DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}

func (r *rentalRepository) Finish(ctx context.Context, id string, status domain.RentalStatus, actualReturn time.Time) error {
	query := `UPDATE rentals SET status = $1, actual_return_date = $2, updated_on = $3
	          WHERE id = $4 AND status = $5`
	res, err := querier(ctx, r.db).ExecContext(ctx, query,
		status, actualReturn, time.Now(), id, domain.RentalStatusActive)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: rental %s is not active", domain.ErrConflict, id)
	}
	return nil
}

func scanRental(row rowScanner) (*domain.Rental, error) {
	rt := &domain.Rental{}
	var actualReturn sql.NullTime
	err := row.Scan(&rt.ID, &rt.VehicleID, &rt.CustomerName, &rt.CustomerPhone, &rt.Destination,
		&rt.StartDate, &rt.PlannedEndDate, &actualReturn, &rt.Status, &rt.Notes, &rt.CreatedBy,
		&rt.CreatedOn, &rt.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if actualReturn.Valid {
		rt.ActualReturnDate = &actualReturn.Time
	}
	return rt, nil
}

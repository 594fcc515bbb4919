package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"fleetyard-backend/internal/domain"
	"fleetyard-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `id, make, model, year, price, cost_price, sold_price, sold_date, rego, mva_number,
	kms_driven, color, fuel_type, transmission, description, location, category, status,
	service_history, maintenance_notes, created_by, created_on, updated_on`

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	history, err := json.Marshal(v.ServiceHistory)
	if err != nil {
		return err
	}
	if v.ServiceHistory == nil {
		history = []byte("[]")
	}
	query := `INSERT INTO vehicles (id, make, model, year, price, cost_price, rego, mva_number, kms_driven,
	            color, fuel_type, transmission, description, location, category, status, service_history,
	            maintenance_notes, created_by, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	now := time.Now()
	_, err = querier(ctx, r.db).ExecContext(ctx, query,
		v.ID, v.Make, v.Model, v.Year, v.Price, nullDecimal(v.CostPrice), v.Rego, v.MvaNumber, v.KmsDriven,
		v.Color, v.FuelType, v.Transmission, v.Description, v.Location, v.Category, v.Status, history,
		v.MaintenanceNotes, v.CreatedBy, now, now)
	if err != nil {
		return err
	}
	v.CreatedOn = now
	v.UpdatedOn = now
	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	row := querier(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id)
	v, err := scanVehicle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: vehicle %s", domain.ErrNotFound, id)
	}
	return v, err
}

func (r *vehicleRepository) GetByRego(ctx context.Context, rego string) (*domain.Vehicle, error) {
	row := querier(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE lower(rego) = lower($1)`, rego)
	v, err := scanVehicle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: vehicle with rego %s", domain.ErrNotFound, rego)
	}
	return v, err
}

func (r *vehicleRepository) List(ctx context.Context, filter repository.VehicleFilter) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles`
	var conds []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != "" {
		conds = append(conds, "status = "+arg(filter.Status))
	}
	if filter.Make != "" {
		conds = append(conds, "make = "+arg(filter.Make))
	}
	if filter.Year != 0 {
		conds = append(conds, "year = "+arg(filter.Year))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conds = append(conds, fmt.Sprintf("(make ILIKE %s OR model ILIKE %s OR description ILIKE %s)", p, p, p))
	}
	if filter.MinPrice != nil {
		conds = append(conds, "price >= "+arg(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		conds = append(conds, "price <= "+arg(*filter.MaxPrice))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_on DESC"

	rows, err := querier(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}

// UpdateAttrs rewrites the descriptive attributes only. Lifecycle columns
// (status, sold fields, service history, maintenance notes) are reachable
// solely through ChangeStatus.
func (r *vehicleRepository) UpdateAttrs(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET make=$1, model=$2, year=$3, price=$4, cost_price=$5, rego=$6,
	            mva_number=$7, kms_driven=$8, color=$9, fuel_type=$10, transmission=$11,
	            description=$12, location=$13, category=$14, updated_on=$15
	          WHERE id=$16`
	res, err := querier(ctx, r.db).ExecContext(ctx, query,
		v.Make, v.Model, v.Year, v.Price, nullDecimal(v.CostPrice), v.Rego,
		v.MvaNumber, v.KmsDriven, v.Color, v.FuelType, v.Transmission,
		v.Description, v.Location, v.Category, time.Now(), v.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: vehicle %s", domain.ErrNotFound, v.ID)
	}
	return nil
}

func (r *vehicleRepository) ChangeStatus(ctx context.Context, id string, change repository.StatusChange) error {
	set := []string{"status = $1", "updated_on = $2"}
	args := []interface{}{change.To, time.Now()}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if change.SetNotes != nil {
		set = append(set, "maintenance_notes = "+arg(*change.SetNotes))
	}
	if change.AppendService != nil {
		entry, err := json.Marshal([]domain.ServiceEntry{*change.AppendService})
		if err != nil {
			return err
		}
		set = append(set, "service_history = service_history || "+arg(string(entry))+"::jsonb")
	}
	if change.SetSoldPrice != nil {
		set = append(set, "sold_price = "+arg(*change.SetSoldPrice))
	}
	if change.SetSoldDate != nil {
		set = append(set, "sold_date = "+arg(*change.SetSoldDate))
	}
	if change.ClearSold {
		set = append(set, "sold_price = NULL", "sold_date = NULL")
	}

	from := make([]string, len(change.From))
	for i, s := range change.From {
		from[i] = string(s)
	}
	query := fmt.Sprintf("UPDATE vehicles SET %s WHERE id = %s AND status = ANY(%s)",
		strings.Join(set, ", "), arg(id), arg(pq.Array(from)))
	if change.RequireNotes {
		query += " AND maintenance_notes <> ''"
	}

	res, err := querier(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: vehicle %s is not in an expected state for this transition", domain.ErrConflict, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVehicle(row rowScanner) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	var costPrice, soldPrice decimal.NullDecimal
	var soldDate sql.NullTime
	var history []byte
	err := row.Scan(&v.ID, &v.Make, &v.Model, &v.Year, &v.Price, &costPrice, &soldPrice, &soldDate,
		&v.Rego, &v.MvaNumber, &v.KmsDriven, &v.Color, &v.FuelType, &v.Transmission, &v.Description,
		&v.Location, &v.Category, &v.Status, &history, &v.MaintenanceNotes, &v.CreatedBy,
		&v.CreatedOn, &v.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if costPrice.Valid {
		v.CostPrice = &costPrice.Decimal
	}
	if soldPrice.Valid {
		v.SoldPrice = &soldPrice.Decimal
	}
	if soldDate.Valid {
		v.SoldDate = &soldDate.Time
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &v.ServiceHistory); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

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
	"github.com/shopspring/decimal"
)

type chemicalRepository struct {
	db *sql.DB
}

func NewChemicalRepository(db *sql.DB) repository.ChemicalRepository {
	return &chemicalRepository{db: db}
}

func (r *chemicalRepository) Create(ctx context.Context, c *domain.Chemical) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	query := `INSERT INTO chemicals (id, name, description, unit, current_stock, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	now := time.Now()
	_, err := querier(ctx, r.db).ExecContext(ctx, query,
		c.ID, c.Name, c.Description, c.Unit, c.CurrentStock, now, now)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: chemical %q already exists", domain.ErrConflict, c.Name)
	}
	if err != nil {
		return err
	}
	c.CreatedOn = now
	c.UpdatedOn = now
	return nil
}

func (r *chemicalRepository) GetByID(ctx context.Context, id string) (*domain.Chemical, error) {
	c := &domain.Chemical{}
	query := `SELECT id, name, description, unit, current_stock, created_on, updated_on
	          FROM chemicals WHERE id = $1`
	err := querier(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.Unit, &c.CurrentStock, &c.CreatedOn, &c.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: chemical %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *chemicalRepository) List(ctx context.Context) ([]domain.Chemical, error) {
	rows, err := querier(ctx, r.db).QueryContext(ctx,
		`SELECT id, name, description, unit, current_stock, created_on, updated_on
		 FROM chemicals ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chemicals []domain.Chemical
	for rows.Next() {
		var c domain.Chemical
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Unit, &c.CurrentStock, &c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, err
		}
		chemicals = append(chemicals, c)
	}
	return chemicals, rows.Err()
}

// IncrementStock is a single-statement increment so concurrent deliveries
// for the same chemical cannot lose updates.
func (r *chemicalRepository) IncrementStock(ctx context.Context, id string, qty decimal.Decimal) error {
	res, err := querier(ctx, r.db).ExecContext(ctx,
		`UPDATE chemicals SET current_stock = current_stock + $1, updated_on = $2 WHERE id = $3`,
		qty, time.Now(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: chemical %s", domain.ErrNotFound, id)
	}
	return nil
}

type chemicalOrderRepository struct {
	db *sql.DB
}

func NewChemicalOrderRepository(db *sql.DB) repository.ChemicalOrderRepository {
	return &chemicalOrderRepository{db: db}
}

const chemicalOrderColumns = `id, chemical_id, dealer_id, quantity, cost, date, receipt_image,
	payment_status, location, created_on`

func (r *chemicalOrderRepository) Create(ctx context.Context, o *domain.ChemicalOrder) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	query := `INSERT INTO chemical_orders (id, chemical_id, dealer_id, quantity, cost, date,
	            receipt_image, payment_status, location, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	now := time.Now()
	_, err := querier(ctx, r.db).ExecContext(ctx, query,
		o.ID, o.ChemicalID, o.DealerID, o.Quantity, o.Cost, o.Date,
		o.ReceiptImage, o.PaymentStatus, o.Location, now)
	if err != nil {
		return err
	}
	o.CreatedOn = now
	return nil
}

func (r *chemicalOrderRepository) GetByID(ctx context.Context, id string) (*domain.ChemicalOrder, error) {
	row := querier(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+chemicalOrderColumns+` FROM chemical_orders WHERE id = $1`, id)
	o, err := scanChemicalOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: chemical order %s", domain.ErrNotFound, id)
	}
	return o, err
}

func (r *chemicalOrderRepository) List(ctx context.Context, dealerID string) ([]domain.ChemicalOrder, error) {
	query := `SELECT ` + chemicalOrderColumns + ` FROM chemical_orders`
	var args []interface{}
	if dealerID != "" {
		query += ` WHERE dealer_id = $1`
		args = append(args, dealerID)
	}
	query += ` ORDER BY date DESC`

	rows, err := querier(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.ChemicalOrder
	for rows.Next() {
		o, err := scanChemicalOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

// MarkPaid is idempotent: flipping an already-paid order is a no-op.
func (r *chemicalOrderRepository) MarkPaid(ctx context.Context, id string) error {
	_, err := querier(ctx, r.db).ExecContext(ctx,
		`UPDATE chemical_orders SET payment_status = $1 WHERE id = $2`,
		domain.PaymentStatusPaid, id)
	return err
}

func scanChemicalOrder(row rowScanner) (*domain.ChemicalOrder, error) {
	o := &domain.ChemicalOrder{}
	err := row.Scan(&o.ID, &o.ChemicalID, &o.DealerID, &o.Quantity, &o.Cost, &o.Date,
		&o.ReceiptImage, &o.PaymentStatus, &o.Location, &o.CreatedOn)
	if err != nil {
		return nil, err
	}
	return o, nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fleetyard-backend/internal/repository"

	"github.com/lib/pq"
)

// Store bundles all repository implementations over one database handle.
type Store struct {
	db *sql.DB
	repository.TxManager
	repository.VehicleRepository
	repository.RentalRepository
	repository.ChemicalRepository
	repository.ChemicalOrderRepository
	repository.FuelLogRepository
	repository.UserRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                      db,
		TxManager:               NewTxManager(db),
		VehicleRepository:       NewVehicleRepository(db),
		RentalRepository:        NewRentalRepository(db),
		ChemicalRepository:      NewChemicalRepository(db),
		ChemicalOrderRepository: NewChemicalOrderRepository(db),
		FuelLogRepository:       NewFuelLogRepository(db),
		UserRepository:          NewUserRepository(db),
	}
}

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type contextKey string

const txKey contextKey = "sql_tx"

type txManager struct {
	db *sql.DB
}

func NewTxManager(db *sql.DB) repository.TxManager {
	return &txManager{db: db}
}

func (t *txManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(context.WithValue(ctx, txKey, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// querier returns the in-flight transaction from the context if present,
// otherwise the root database handle.
func querier(ctx context.Context, db *sql.DB) DBTX {
	if tx, ok := ctx.Value(txKey).(*sql.Tx); ok {
		return tx
	}
	return db
}

// isUniqueViolation reports whether err is a unique-constraint failure.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

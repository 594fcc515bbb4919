package postgres_test

import (
	"context"
	"errors"
	"testing"

	"fleetyard-backend/internal/domain"
	"fleetyard-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestChemicalRepository_IncrementStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewChemicalRepository(db)
	ctx := context.Background()

	t.Run("Increments in place", func(t *testing.T) {
		mock.ExpectExec("UPDATE chemicals SET current_stock = current_stock \\+ \\$1").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "chem-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.IncrementStock(ctx, "chem-1", decimal.NewFromInt(10))
		assert.NoError(t, err)
	})

	t.Run("Unknown chemical", func(t *testing.T) {
		mock.ExpectExec("UPDATE chemicals SET current_stock").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.IncrementStock(ctx, "missing", decimal.NewFromInt(10))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChemicalRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewChemicalRepository(db)
	ctx := context.Background()

	t.Run("Duplicate name", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO chemicals").
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(ctx, &domain.Chemical{Name: "Truck Wash"})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestTxManager_RunInTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	tm := postgres.NewTxManager(db)
	orderRepo := postgres.NewChemicalOrderRepository(db)
	chemRepo := postgres.NewChemicalRepository(db)
	ctx := context.Background()

	t.Run("Writes share one transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO chemical_orders").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE chemicals SET current_stock").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := tm.RunInTx(ctx, func(txCtx context.Context) error {
			order := &domain.ChemicalOrder{
				ChemicalID:    "chem-1",
				DealerID:      "dealer-1",
				Quantity:      decimal.NewFromInt(10),
				Cost:          decimal.NewFromInt(250),
				PaymentStatus: domain.PaymentStatusPending,
				Location:      "Wingfield",
			}
			if err := orderRepo.Create(txCtx, order); err != nil {
				return err
			}
			return chemRepo.IncrementStock(txCtx, "chem-1", decimal.NewFromInt(10))
		})
		assert.NoError(t, err)
	})

	t.Run("Error rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO chemical_orders").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectRollback()

		err := tm.RunInTx(ctx, func(txCtx context.Context) error {
			order := &domain.ChemicalOrder{ChemicalID: "chem-1", DealerID: "dealer-1"}
			if err := orderRepo.Create(txCtx, order); err != nil {
				return err
			}
			return errors.New("boom")
		})
		assert.EqualError(t, err, "boom")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

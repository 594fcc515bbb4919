package service_test

import (
	"context"
	"fmt"
	"testing"

	"fleetyard-backend/internal/domain"
	"fleetyard-backend/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newLedger() (service.StockLedger, *MockChemicalRepo, *MockChemicalOrderRepo) {
	chemRepo := new(MockChemicalRepo)
	orderRepo := new(MockChemicalOrderRepo)
	svc := service.NewStockLedger(service.NewAccessGate(), chemRepo, orderRepo, passthroughTx{})
	return svc, chemRepo, orderRepo
}

func deliveryInput() service.RecordDeliveryInput {
	return service.RecordDeliveryInput{
		ChemicalID: "chem-1",
		Quantity:   decimal.NewFromInt(10),
		Cost:       decimal.NewFromInt(250),
		Location:   "Wingfield",
	}
}

func TestStockLedger_CreateChemical(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults unit and zero stock", func(t *testing.T) {
		svc, chemRepo, _ := newLedger()
		chemRepo.On("Create", ctx, mock.AnythingOfType("*domain.Chemical")).Return(nil)

		c, err := svc.CreateChemical(ctx, adminUser, "Truck Wash", "", "")
		assert.NoError(t, err)
		assert.Equal(t, "Litres", c.Unit)
		assert.True(t, c.CurrentStock.IsZero())
	})

	t.Run("Name required", func(t *testing.T) {
		svc, _, _ := newLedger()
		_, err := svc.CreateChemical(ctx, adminUser, "  ", "", "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Dealer forbidden", func(t *testing.T) {
		svc, _, _ := newLedger()
		_, err := svc.CreateChemical(ctx, dealerUser, "Truck Wash", "", "")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestStockLedger_RecordDelivery(t *testing.T) {
	ctx := context.Background()
	chemical := &domain.Chemical{ID: "chem-1", Name: "Truck Wash", CurrentStock: decimal.NewFromInt(5)}

	t.Run("Dealer records for themselves", func(t *testing.T) {
		svc, chemRepo, orderRepo := newLedger()
		chemRepo.On("GetByID", ctx, "chem-1").Return(chemical, nil)
		orderRepo.On("Create", ctx, mock.MatchedBy(func(o *domain.ChemicalOrder) bool {
			return o.DealerID == dealerUser.ID && o.PaymentStatus == domain.PaymentStatusPending
		})).Return(nil)
		chemRepo.On("IncrementStock", ctx, "chem-1", decimal.NewFromInt(10)).Return(nil)

		in := deliveryInput()
		in.DealerID = "someone-else" // ignored for dealer principals
		order, err := svc.RecordDelivery(ctx, dealerUser, in)
		assert.NoError(t, err)
		assert.Equal(t, dealerUser.ID, order.DealerID)
		assert.False(t, order.Date.IsZero())
		chemRepo.AssertExpectations(t)
		orderRepo.AssertExpectations(t)
	})

	t.Run("Order and increment are one unit", func(t *testing.T) {
		svc, chemRepo, orderRepo := newLedger()
		chemRepo.On("GetByID", ctx, "chem-1").Return(chemical, nil)
		orderRepo.On("Create", ctx, mock.Anything).
			Return(fmt.Errorf("connection reset"))

		_, err := svc.RecordDelivery(ctx, dealerUser, deliveryInput())
		assert.Error(t, err)
		chemRepo.AssertNotCalled(t, "IncrementStock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Quantity must be positive", func(t *testing.T) {
		svc, _, _ := newLedger()
		in := deliveryInput()
		in.Quantity = decimal.Zero
		_, err := svc.RecordDelivery(ctx, dealerUser, in)
		assert.ErrorIs(t, err, domain.ErrValidation)

		in.Quantity = decimal.NewFromInt(-3)
		_, err = svc.RecordDelivery(ctx, dealerUser, in)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Unknown location rejected", func(t *testing.T) {
		svc, _, _ := newLedger()
		in := deliveryInput()
		in.Location = "Adelaide CBD"
		_, err := svc.RecordDelivery(ctx, dealerUser, in)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Unknown chemical rejected before any write", func(t *testing.T) {
		svc, chemRepo, orderRepo := newLedger()
		chemRepo.On("GetByID", ctx, "chem-1").
			Return(nil, fmt.Errorf("%w: chemical chem-1", domain.ErrNotFound))

		_, err := svc.RecordDelivery(ctx, dealerUser, deliveryInput())
		assert.ErrorIs(t, err, domain.ErrNotFound)
		orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Consecutive deliveries sum", func(t *testing.T) {
		svc, chemRepo, orderRepo := newLedger()
		stock := decimal.Zero
		chemRepo.On("GetByID", ctx, "chem-1").Return(chemical, nil)
		orderRepo.On("Create", ctx, mock.Anything).Return(nil)
		chemRepo.On("IncrementStock", ctx, "chem-1", mock.AnythingOfType("decimal.Decimal")).
			Run(func(args mock.Arguments) {
				stock = stock.Add(args.Get(2).(decimal.Decimal))
			}).Return(nil)

		first := deliveryInput()
		first.Quantity = decimal.NewFromInt(10)
		second := deliveryInput()
		second.Quantity = decimal.NewFromInt(5)

		_, err := svc.RecordDelivery(ctx, dealerUser, first)
		assert.NoError(t, err)
		_, err = svc.RecordDelivery(ctx, dealerUser, second)
		assert.NoError(t, err)
		assert.True(t, stock.Equal(decimal.NewFromInt(15)), "increments must accumulate, got %s", stock)
	})
}

func TestStockLedger_SetPaymentStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Pending to paid", func(t *testing.T) {
		svc, _, orderRepo := newLedger()
		orderRepo.On("GetByID", ctx, "ord-1").
			Return(&domain.ChemicalOrder{ID: "ord-1", PaymentStatus: domain.PaymentStatusPending}, nil)
		orderRepo.On("MarkPaid", ctx, "ord-1").Return(nil)

		order, err := svc.SetPaymentStatus(ctx, adminUser, "ord-1", domain.PaymentStatusPaid)
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPaid, order.PaymentStatus)
	})

	t.Run("Paying twice is a no-op", func(t *testing.T) {
		svc, _, orderRepo := newLedger()
		orderRepo.On("GetByID", ctx, "ord-1").
			Return(&domain.ChemicalOrder{ID: "ord-1", PaymentStatus: domain.PaymentStatusPaid}, nil)

		order, err := svc.SetPaymentStatus(ctx, adminUser, "ord-1", domain.PaymentStatusPaid)
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPaid, order.PaymentStatus)
		orderRepo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything)
	})

	t.Run("Reverting to pending rejected", func(t *testing.T) {
		svc, _, _ := newLedger()
		_, err := svc.SetPaymentStatus(ctx, adminUser, "ord-1", domain.PaymentStatusPending)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Dealer forbidden", func(t *testing.T) {
		svc, _, _ := newLedger()
		_, err := svc.SetPaymentStatus(ctx, dealerUser, "ord-1", domain.PaymentStatusPaid)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestStockLedger_ListOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("Dealer sees own orders only", func(t *testing.T) {
		svc, _, orderRepo := newLedger()
		orderRepo.On("List", ctx, dealerUser.ID).Return([]domain.ChemicalOrder{}, nil)

		_, err := svc.ListOrders(ctx, dealerUser)
		assert.NoError(t, err)
		orderRepo.AssertCalled(t, "List", ctx, dealerUser.ID)
	})

	t.Run("Admin sees everything", func(t *testing.T) {
		svc, _, orderRepo := newLedger()
		orderRepo.On("List", ctx, "").Return([]domain.ChemicalOrder{}, nil)

		_, err := svc.ListOrders(ctx, adminUser)
		assert.NoError(t, err)
		orderRepo.AssertCalled(t, "List", ctx, "")
	})
}

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

func newFuelService() (service.FuelService, *MockFuelLogRepo, *MockVehicleRepo) {
	fuelRepo := new(MockFuelLogRepo)
	vehicleRepo := new(MockVehicleRepo)
	svc := service.NewFuelService(service.NewAccessGate(), fuelRepo, vehicleRepo)
	return svc, fuelRepo, vehicleRepo
}

func fuelInput() service.RecordFuelInput {
	return service.RecordFuelInput{
		MvaNumber: "MVA-001",
		Rego:      "S123ABC",
		Kms:       42000,
		Litres:    decimal.NewFromInt(55),
		Cost:      decimal.NewFromFloat(98.50),
	}
}

func TestFuelService_RecordFuel(t *testing.T) {
	ctx := context.Background()

	t.Run("Links matching rego", func(t *testing.T) {
		svc, fuelRepo, vehicleRepo := newFuelService()
		vehicleRepo.On("GetByRego", ctx, "S123ABC").Return(&domain.Vehicle{ID: "veh-1"}, nil)
		fuelRepo.On("Create", ctx, mock.AnythingOfType("*domain.FuelLog")).Return(nil)

		log, err := svc.RecordFuel(ctx, adminUser, fuelInput())
		assert.NoError(t, err)
		assert.NotNil(t, log.VehicleID)
		assert.Equal(t, "veh-1", *log.VehicleID)
		assert.False(t, log.Date.IsZero())
	})

	t.Run("Unknown rego still recorded", func(t *testing.T) {
		svc, fuelRepo, vehicleRepo := newFuelService()
		vehicleRepo.On("GetByRego", ctx, "S123ABC").
			Return(nil, fmt.Errorf("%w: vehicle with rego S123ABC", domain.ErrNotFound))
		fuelRepo.On("Create", ctx, mock.AnythingOfType("*domain.FuelLog")).Return(nil)

		log, err := svc.RecordFuel(ctx, adminUser, fuelInput())
		assert.NoError(t, err)
		assert.Nil(t, log.VehicleID)
	})

	t.Run("Litres must be positive", func(t *testing.T) {
		svc, _, _ := newFuelService()
		in := fuelInput()
		in.Litres = decimal.Zero
		_, err := svc.RecordFuel(ctx, adminUser, in)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Rego and mva required", func(t *testing.T) {
		svc, _, _ := newFuelService()
		in := fuelInput()
		in.Rego = " "
		_, err := svc.RecordFuel(ctx, adminUser, in)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Needs manage_fuel", func(t *testing.T) {
		svc, _, _ := newFuelService()
		_, err := svc.RecordFuel(ctx, viewOnlyUser, fuelInput())
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestFuelService_ListFuelLogs(t *testing.T) {
	ctx := context.Background()

	t.Run("View reports suffices", func(t *testing.T) {
		svc, fuelRepo, _ := newFuelService()
		reporter := &domain.User{
			ID: "user-3", Role: domain.RoleUser,
			Permissions: []domain.Capability{domain.CapabilityViewReports},
		}
		fuelRepo.On("List", ctx, 6, 2026).Return([]domain.FuelLog{}, nil)

		_, err := svc.ListFuelLogs(ctx, reporter, 6, 2026)
		assert.NoError(t, err)
	})

	t.Run("Dealer forbidden", func(t *testing.T) {
		svc, _, _ := newFuelService()
		_, err := svc.ListFuelLogs(ctx, dealerUser, 0, 0)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

package service_test

import (
	"context"
	"time"

	"fleetyard-backend/internal/domain"
	"fleetyard-backend/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// passthroughTx runs the function directly without a database transaction.
type passthroughTx struct{}

func (passthroughTx) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVehicleRepo) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) GetByRego(ctx context.Context, rego string) (*domain.Vehicle, error) {
	args := m.Called(ctx, rego)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) List(ctx context.Context, filter repository.VehicleFilter) ([]domain.Vehicle, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) UpdateAttrs(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVehicleRepo) ChangeStatus(ctx context.Context, id string, change repository.StatusChange) error {
	args := m.Called(ctx, id, change)
	return args.Error(0)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, r *domain.Rental) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) GetActiveByVehicle(ctx context.Context, vehicleID string) (*domain.Rental, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) List(ctx context.Context) ([]domain.Rental, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Finish(ctx context.Context, id string, status domain.RentalStatus, actualReturn time.Time) error {
	args := m.Called(ctx, id, status, actualReturn)
	return args.Error(0)
}

// MockChemicalRepo
type MockChemicalRepo struct {
	mock.Mock
}

func (m *MockChemicalRepo) Create(ctx context.Context, c *domain.Chemical) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockChemicalRepo) GetByID(ctx context.Context, id string) (*domain.Chemical, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chemical), args.Error(1)
}
func (m *MockChemicalRepo) List(ctx context.Context) ([]domain.Chemical, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Chemical), args.Error(1)
}
func (m *MockChemicalRepo) IncrementStock(ctx context.Context, id string, qty decimal.Decimal) error {
	args := m.Called(ctx, id, qty)
	return args.Error(0)
}

// MockChemicalOrderRepo
type MockChemicalOrderRepo struct {
	mock.Mock
}

func (m *MockChemicalOrderRepo) Create(ctx context.Context, o *domain.ChemicalOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockChemicalOrderRepo) GetByID(ctx context.Context, id string) (*domain.ChemicalOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChemicalOrder), args.Error(1)
}
func (m *MockChemicalOrderRepo) List(ctx context.Context, dealerID string) ([]domain.ChemicalOrder, error) {
	args := m.Called(ctx, dealerID)
	return args.Get(0).([]domain.ChemicalOrder), args.Error(1)
}
func (m *MockChemicalOrderRepo) MarkPaid(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFuelLogRepo
type MockFuelLogRepo struct {
	mock.Mock
}

func (m *MockFuelLogRepo) Create(ctx context.Context, f *domain.FuelLog) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}
func (m *MockFuelLogRepo) List(ctx context.Context, month, year int) ([]domain.FuelLog, error) {
	args := m.Called(ctx, month, year)
	return args.Get(0).([]domain.FuelLog), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByLogin(ctx context.Context, usernameOrEmail string) (*domain.User, error) {
	args := m.Called(ctx, usernameOrEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context, createdBy string) ([]domain.User, error) {
	args := m.Called(ctx, createdBy)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

// Common principals used across tests.
var (
	adminUser  = &domain.User{ID: "admin-1", Username: "admin", Role: domain.RoleAdmin}
	clientUser = &domain.User{ID: "client-1", Username: "client", Role: domain.RoleClient}
	dealerUser = &domain.User{ID: "dealer-1", Username: "dealer", Role: domain.RoleDealer}

	garageUser = &domain.User{
		ID: "user-1", Username: "garage", Role: domain.RoleUser,
		Permissions: []domain.Capability{domain.CapabilityManageGarage},
	}
	viewOnlyUser = &domain.User{
		ID: "user-2", Username: "viewer", Role: domain.RoleUser,
		Permissions: []domain.Capability{domain.CapabilityViewFleet},
	}
)

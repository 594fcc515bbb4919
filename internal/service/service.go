package service

import (
	"context"
	"time"

	"fleetyard-backend/internal/domain"
	"fleetyard-backend/internal/repository"

	"github.com/shopspring/decimal"
)

// AccessGate answers "may this principal perform this operation". It is
// side-effect free and must be consulted before any state-mutating call.
type AccessGate interface {
	Authorize(principal *domain.User, capability domain.Capability) error
}

// VehicleAttrs are the descriptive fields of a vehicle, opaque to the
// lifecycle rules.
type VehicleAttrs struct {
	Make         string
	Model        string
	Year         int32
	Price        decimal.Decimal
	CostPrice    *decimal.Decimal
	Rego         string
	MvaNumber    string
	KmsDriven    int32
	Color        string
	FuelType     string
	Transmission string
	Description  string
	Location     string
	Category     string
	Status       domain.VehicleStatus // intake only: available or new
}

// TransitionPayload carries the operation-specific inputs of a transition.
type TransitionPayload struct {
	// ReportIssue
	Notes string
	// CompleteService
	Kms         int32
	Description string
	Cost        decimal.Decimal
	// MarkSold
	SoldPrice *decimal.Decimal
}

type VehicleLifecycle interface {
	Intake(ctx context.Context, principal *domain.User, attrs VehicleAttrs) (*domain.Vehicle, error)
	// Transition applies one non-rental lifecycle operation. Rental
	// operations go through the RentalCoordinator, which delegates the
	// vehicle-side write back here.
	Transition(ctx context.Context, principal *domain.User, vehicleID string, op domain.TransitionOp, payload TransitionPayload) (*domain.Vehicle, error)
	UpdateAttrs(ctx context.Context, principal *domain.User, vehicleID string, attrs VehicleAttrs) (*domain.Vehicle, error)
	GetVehicle(ctx context.Context, vehicleID string) (*domain.Vehicle, error)
	ListVehicles(ctx context.Context, filter repository.VehicleFilter) ([]domain.Vehicle, error)

	// BeginRental and CloseRental are the single writers of paired
	// vehicle-status + rental-row changes. Authorization is the caller's
	// responsibility (the coordinator gates them).
	BeginRental(ctx context.Context, rental *domain.Rental) (*domain.Rental, error)
	CloseRental(ctx context.Context, rental *domain.Rental, terminal domain.RentalStatus, actualReturn time.Time) error
}

type StartRentalInput struct {
	VehicleID      string
	CustomerName   string
	CustomerPhone  string
	Destination    string
	StartDate      time.Time
	PlannedEndDate time.Time
	Notes          string
}

type RentalCoordinator interface {
	StartRental(ctx context.Context, principal *domain.User, in StartRentalInput) (*domain.Rental, error)
	ReturnRental(ctx context.Context, principal *domain.User, rentalID string, actualReturn *time.Time) (*domain.Rental, error)
	CancelRental(ctx context.Context, principal *domain.User, rentalID string) (*domain.Rental, error)
	ListRentals(ctx context.Context, principal *domain.User) ([]domain.Rental, error)
}

type RecordDeliveryInput struct {
	ChemicalID    string
	DealerID      string // ignored for dealer principals, who always record for themselves
	Quantity      decimal.Decimal
	Cost          decimal.Decimal
	Date          time.Time
	ReceiptImage  string
	PaymentStatus domain.PaymentStatus
	Location      string
}

type StockLedger interface {
	CreateChemical(ctx context.Context, principal *domain.User, name, description, unit string) (*domain.Chemical, error)
	ListChemicals(ctx context.Context, principal *domain.User) ([]domain.Chemical, error)
	RecordDelivery(ctx context.Context, principal *domain.User, in RecordDeliveryInput) (*domain.ChemicalOrder, error)
	SetPaymentStatus(ctx context.Context, principal *domain.User, orderID string, status domain.PaymentStatus) (*domain.ChemicalOrder, error)
	ListOrders(ctx context.Context, principal *domain.User) ([]domain.ChemicalOrder, error)
}

type RecordFuelInput struct {
	MvaNumber string
	Rego      string
	Kms       int32
	Litres    decimal.Decimal
	Cost      decimal.Decimal
	Date      time.Time
}

type FuelService interface {
	RecordFuel(ctx context.Context, principal *domain.User, in RecordFuelInput) (*domain.FuelLog, error)
	ListFuelLogs(ctx context.Context, principal *domain.User, month, year int) ([]domain.FuelLog, error)
}

type AuthService interface {
	// Login verifies credentials and returns an access token plus the
	// resolved principal.
	Login(ctx context.Context, usernameOrEmail, password string) (string, *domain.User, error)
	// ResolvePrincipal loads the current user record for a token subject.
	ResolvePrincipal(ctx context.Context, userID string) (*domain.User, error)
}

type ProvisionUserInput struct {
	Username    string
	Email       string
	Password    string
	Role        domain.Role
	Permissions []domain.Capability
}

type UserService interface {
	ProvisionUser(ctx context.Context, principal *domain.User, in ProvisionUserInput) (*domain.User, error)
	ListUsers(ctx context.Context, principal *domain.User) ([]domain.User, error)
	UpdateUserAccess(ctx context.Context, principal *domain.User, userID string, role domain.Role, permissions []domain.Capability) (*domain.User, error)
}

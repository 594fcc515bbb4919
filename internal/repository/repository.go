package repository

import (
	"context"
	"time"

	"fleetyard-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// VehicleFilter narrows vehicle listings. Zero values mean "no filter".
type VehicleFilter struct {
	Status   domain.VehicleStatus
	Make     string
	Year     int32
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// StatusChange describes one conditional vehicle transition. The update is
// applied in a single statement guarded by "status = ANY(From)", so two
// concurrent transitions on the same vehicle cannot both succeed.
type StatusChange struct {
	From []domain.VehicleStatus
	To   domain.VehicleStatus

	// SetNotes, when non-nil, overwrites maintenance_notes ("" clears the flag).
	SetNotes *string
	// AppendService appends one entry to the service_history array.
	AppendService *domain.ServiceEntry
	// SetSoldPrice/SetSoldDate record a sale; ClearSold wipes both on relist.
	SetSoldPrice *decimal.Decimal
	SetSoldDate  *time.Time
	ClearSold    bool

	// RequireNotes additionally guards the update on a non-empty
	// maintenance_notes, so resolving an issue that was never flagged fails
	// atomically rather than after a separate read.
	RequireNotes bool
}

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	GetByRego(ctx context.Context, rego string) (*domain.Vehicle, error)
	List(ctx context.Context, filter VehicleFilter) ([]domain.Vehicle, error)
	UpdateAttrs(ctx context.Context, v *domain.Vehicle) error

	// ChangeStatus applies one conditional transition. Returns
	// domain.ErrConflict when the vehicle exists but is not in any of the
	// expected source states.
	ChangeStatus(ctx context.Context, id string, change StatusChange) error
}

type RentalRepository interface {
	Create(ctx context.Context, r *domain.Rental) error
	GetByID(ctx context.Context, id string) (*domain.Rental, error)
	// GetActiveByVehicle returns the vehicle's single active rental, or
	// domain.ErrNotFound when none exists.
	GetActiveByVehicle(ctx context.Context, vehicleID string) (*domain.Rental, error)
	List(ctx context.Context) ([]domain.Rental, error)

	// Finish moves an active rental to a terminal status. Returns
	// domain.ErrConflict when the rental is already terminal.
	Finish(ctx context.Context, id string, status domain.RentalStatus, actualReturn time.Time) error
}

type ChemicalRepository interface {
	Create(ctx context.Context, c *domain.Chemical) error
	GetByID(ctx context.Context, id string) (*domain.Chemical, error)
	List(ctx context.Context) ([]domain.Chemical, error)

	// IncrementStock adds qty to current_stock in a single statement.
	IncrementStock(ctx context.Context, id string, qty decimal.Decimal) error
}

type ChemicalOrderRepository interface {
	Create(ctx context.Context, o *domain.ChemicalOrder) error
	GetByID(ctx context.Context, id string) (*domain.ChemicalOrder, error)
	// List returns all orders, or only a dealer's own when dealerID is set.
	List(ctx context.Context, dealerID string) ([]domain.ChemicalOrder, error)
	MarkPaid(ctx context.Context, id string) error
}

type FuelLogRepository interface {
	Create(ctx context.Context, f *domain.FuelLog) error
	// List filters by month (1-12) and year when both are non-zero.
	List(ctx context.Context, month, year int) ([]domain.FuelLog, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByLogin(ctx context.Context, usernameOrEmail string) (*domain.User, error)
	// List returns all users, or only those provisioned by createdBy when set.
	List(ctx context.Context, createdBy string) ([]domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

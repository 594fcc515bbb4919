package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fleetyard-backend/internal/domain"
	"fleetyard-backend/internal/logger"
	"fleetyard-backend/internal/repository"
)

// transitionCapabilities maps each lifecycle operation onto the capability
// the access gate checks before the transition runs.
var transitionCapabilities = map[domain.TransitionOp]domain.Capability{
	domain.OpStartService:    domain.CapabilityManageGarage,
	domain.OpCompleteService: domain.CapabilityManageGarage,
	domain.OpReportIssue:     domain.CapabilityManageGarage,
	domain.OpResolveIssue:    domain.CapabilityManageGarage,
	domain.OpStartRental:     domain.CapabilityManageGarage,
	domain.OpReturnRental:    domain.CapabilityManageGarage,
	domain.OpCancelRental:    domain.CapabilityManageGarage,
	domain.OpMarkSold:        domain.CapabilityManageInventory,
	domain.OpRelist:          domain.CapabilityManageInventory,
}

type vehicleLifecycle struct {
	gate        AccessGate
	vehicleRepo repository.VehicleRepository
	rentalRepo  repository.RentalRepository
	tx          repository.TxManager
}

func NewVehicleLifecycle(
	gate AccessGate,
	vehicleRepo repository.VehicleRepository,
	rentalRepo repository.RentalRepository,
	tx repository.TxManager,
) VehicleLifecycle {
	return &vehicleLifecycle{
		gate:        gate,
		vehicleRepo: vehicleRepo,
		rentalRepo:  rentalRepo,
		tx:          tx,
	}
}

func (s *vehicleLifecycle) Intake(ctx context.Context, principal *domain.User, attrs VehicleAttrs) (*domain.Vehicle, error) {
	if err := s.gate.Authorize(principal, domain.CapabilityManageInventory); err != nil {
		return nil, err
	}
	if err := validateAttrs(attrs); err != nil {
		return nil, err
	}

	status := attrs.Status
	switch status {
	case "":
		status = domain.VehicleStatusAvailable
	case domain.VehicleStatusAvailable, domain.VehicleStatusNew:
	default:
		return nil, fmt.Errorf("%w: intake status must be available or new, got %q", domain.ErrValidation, status)
	}

	location := attrs.Location
	if location == "" {
		location = "Yard"
	}

	v := &domain.Vehicle{
		Make:           attrs.Make,
		Model:          attrs.Model,
		Year:           attrs.Year,
		Price:          attrs.Price,
		CostPrice:      attrs.CostPrice,
		Rego:           attrs.Rego,
		MvaNumber:      attrs.MvaNumber,
		KmsDriven:      attrs.KmsDriven,
		Color:          attrs.Color,
		FuelType:       attrs.FuelType,
		Transmission:   attrs.Transmission,
		Description:    attrs.Description,
		Location:       location,
		Category:       attrs.Category,
		Status:         status,
		ServiceHistory: []domain.ServiceEntry{},
		CreatedBy:      principal.ID,
	}
	if err := s.vehicleRepo.Create(ctx, v); err != nil {
		return nil, err
	}
	logger.Info("Vehicle intake", "vehicle_id", v.ID, "rego", v.Rego, "status", v.Status)
	return v, nil
}

func (s *vehicleLifecycle) Transition(ctx context.Context, principal *domain.User, vehicleID string, op domain.TransitionOp, payload TransitionPayload) (*domain.Vehicle, error) {
	capability, ok := transitionCapabilities[op]
	if !ok {
		return nil, fmt.Errorf("%w: unknown operation %q", domain.ErrValidation, op)
	}
	if err := s.gate.Authorize(principal, capability); err != nil {
		return nil, err
	}
	switch op {
	case domain.OpStartRental, domain.OpReturnRental, domain.OpCancelRental:
		return nil, fmt.Errorf("%w: rental operations go through the rental endpoints", domain.ErrValidation)
	}

	v, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	t := domain.Transitions[op]
	change := repository.StatusChange{From: t.From, To: t.To}
	now := time.Now()

	switch op {
	case domain.OpStartService:
		// Moving a flagged vehicle into active service clears the flag.
		change.SetNotes = strPtr("")
	case domain.OpCompleteService:
		if strings.TrimSpace(payload.Description) == "" {
			return nil, fmt.Errorf("%w: service description is required", domain.ErrValidation)
		}
		if payload.Kms < 0 || payload.Cost.IsNegative() {
			return nil, fmt.Errorf("%w: kms and cost must not be negative", domain.ErrValidation)
		}
		change.AppendService = &domain.ServiceEntry{
			Date:        now,
			Kms:         payload.Kms,
			Description: payload.Description,
			Cost:        payload.Cost,
		}
	case domain.OpReportIssue:
		if strings.TrimSpace(payload.Notes) == "" {
			return nil, fmt.Errorf("%w: maintenance notes are required to report an issue", domain.ErrValidation)
		}
		change.SetNotes = strPtr(payload.Notes)
	case domain.OpResolveIssue:
		change.SetNotes = strPtr("")
		change.RequireNotes = true
	case domain.OpMarkSold:
		if payload.SoldPrice == nil {
			return nil, fmt.Errorf("%w: sold price is required", domain.ErrValidation)
		}
		if payload.SoldPrice.IsNegative() {
			return nil, fmt.Errorf("%w: sold price must not be negative", domain.ErrValidation)
		}
		change.SetSoldPrice = payload.SoldPrice
		change.SetSoldDate = &now
	case domain.OpRelist:
		change.ClearSold = true
	}

	if op == domain.OpMarkSold {
		// A vehicle with an active rental cannot be sold, and the check must
		// hold against a concurrent StartRental, so both run in one
		// transaction.
		err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			if _, err := s.rentalRepo.GetActiveByVehicle(txCtx, vehicleID); err == nil {
				return fmt.Errorf("%w: vehicle %s has an active rental", domain.ErrConflict, vehicleID)
			} else if !isNotFound(err) {
				return err
			}
			return s.vehicleRepo.ChangeStatus(txCtx, vehicleID, change)
		})
	} else {
		err = s.vehicleRepo.ChangeStatus(ctx, vehicleID, change)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Vehicle transition", "vehicle_id", vehicleID, "op", op, "from", v.Status, "to", t.To)
	return s.vehicleRepo.GetByID(ctx, vehicleID)
}

func (s *vehicleLifecycle) UpdateAttrs(ctx context.Context, principal *domain.User, vehicleID string, attrs VehicleAttrs) (*domain.Vehicle, error) {
	if err := s.gate.Authorize(principal, domain.CapabilityManageInventory); err != nil {
		return nil, err
	}
	if err := validateAttrs(attrs); err != nil {
		return nil, err
	}
	v, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	v.Make = attrs.Make
	v.Model = attrs.Model
	v.Year = attrs.Year
	v.Price = attrs.Price
	v.CostPrice = attrs.CostPrice
	v.Rego = attrs.Rego
	v.MvaNumber = attrs.MvaNumber
	v.KmsDriven = attrs.KmsDriven
	v.Color = attrs.Color
	v.FuelType = attrs.FuelType
	v.Transmission = attrs.Transmission
	v.Description = attrs.Description
	if attrs.Location != "" {
		v.Location = attrs.Location
	}
	v.Category = attrs.Category

	if err := s.vehicleRepo.UpdateAttrs(ctx, v); err != nil {
		return nil, err
	}
	return s.vehicleRepo.GetByID(ctx, vehicleID)
}

func (s *vehicleLifecycle) GetVehicle(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, vehicleID)
}

func (s *vehicleLifecycle) ListVehicles(ctx context.Context, filter repository.VehicleFilter) ([]domain.Vehicle, error) {
	return s.vehicleRepo.List(ctx, filter)
}

// BeginRental flips the vehicle into rental and creates the active rental
// row as one transaction. The status guard plus the active-rental check make
// concurrent starts on the same vehicle mutually exclusive: at most one
// caller observes the vehicle in a startable state.
func (s *vehicleLifecycle) BeginRental(ctx context.Context, rental *domain.Rental) (*domain.Rental, error) {
	if _, err := s.vehicleRepo.GetByID(ctx, rental.VehicleID); err != nil {
		return nil, err
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.rentalRepo.GetActiveByVehicle(txCtx, rental.VehicleID); err == nil {
			return fmt.Errorf("%w: vehicle %s already has an active rental", domain.ErrConflict, rental.VehicleID)
		} else if !isNotFound(err) {
			return err
		}

		t := domain.Transitions[domain.OpStartRental]
		if err := s.vehicleRepo.ChangeStatus(txCtx, rental.VehicleID, repository.StatusChange{From: t.From, To: t.To}); err != nil {
			return err
		}

		rental.Status = domain.RentalStatusActive
		return s.rentalRepo.Create(txCtx, rental)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Rental started", "rental_id", rental.ID, "vehicle_id", rental.VehicleID)
	return rental, nil
}

// CloseRental finalizes an active rental and returns the vehicle to the
// garage in one transaction. The rental-side conditional update is the race
// guard: a rental can only be finished once.
func (s *vehicleLifecycle) CloseRental(ctx context.Context, rental *domain.Rental, terminal domain.RentalStatus, actualReturn time.Time) error {
	if !terminal.Terminal() {
		return fmt.Errorf("%w: %s is not a terminal rental status", domain.ErrValidation, terminal)
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.rentalRepo.Finish(txCtx, rental.ID, terminal, actualReturn); err != nil {
			return err
		}
		t := domain.Transitions[domain.OpReturnRental]
		return s.vehicleRepo.ChangeStatus(txCtx, rental.VehicleID, repository.StatusChange{From: t.From, To: t.To})
	})
	if err != nil {
		return err
	}

	logger.Info("Rental closed", "rental_id", rental.ID, "vehicle_id", rental.VehicleID, "status", terminal)
	return nil
}

func validateAttrs(attrs VehicleAttrs) error {
	var missing []string
	if strings.TrimSpace(attrs.Make) == "" {
		missing = append(missing, "make")
	}
	if strings.TrimSpace(attrs.Model) == "" {
		missing = append(missing, "model")
	}
	if strings.TrimSpace(attrs.Rego) == "" {
		missing = append(missing, "rego")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", domain.ErrValidation, strings.Join(missing, ", "))
	}
	if attrs.Year < 1900 {
		return fmt.Errorf("%w: year must be 1900 or later", domain.ErrValidation)
	}
	if attrs.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	return nil
}

func strPtr(s string) *string { return &s }

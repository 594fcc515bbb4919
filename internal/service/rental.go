package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fleetyard-backend/internal/domain"
	"fleetyard-backend/internal/repository"
)

type rentalCoordinator struct {
	gate       AccessGate
	lifecycle  VehicleLifecycle
	rentalRepo repository.RentalRepository
}

func NewRentalCoordinator(gate AccessGate, lifecycle VehicleLifecycle, rentalRepo repository.RentalRepository) RentalCoordinator {
	return &rentalCoordinator{
		gate:       gate,
		lifecycle:  lifecycle,
		rentalRepo: rentalRepo,
	}
}

func (s *rentalCoordinator) StartRental(ctx context.Context, principal *domain.User, in StartRentalInput) (*domain.Rental, error) {
	if err := s.gate.Authorize(principal, domain.CapabilityManageGarage); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.CustomerName) == "" {
		return nil, fmt.Errorf("%w: customer name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Destination) == "" {
		return nil, fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if in.PlannedEndDate.IsZero() {
		return nil, fmt.Errorf("%w: planned end date is required", domain.ErrValidation)
	}

	start := in.StartDate
	if start.IsZero() {
		start = time.Now()
	}
	if in.PlannedEndDate.Before(start) {
		return nil, fmt.Errorf("%w: planned end date is before the start date", domain.ErrValidation)
	}

	rental := &domain.Rental{
		VehicleID:      in.VehicleID,
		CustomerName:   in.CustomerName,
		CustomerPhone:  in.CustomerPhone,
		Destination:    in.Destination,
		StartDate:      start,
		PlannedEndDate: in.PlannedEndDate,
		Notes:          in.Notes,
		CreatedBy:      principal.ID,
	}
	return s.lifecycle.BeginRental(ctx, rental)
}

func (s *rentalCoordinator) ReturnRental(ctx context.Context, principal *domain.User, rentalID string, actualReturn *time.Time) (*domain.Rental, error) {
	return s.finish(ctx, principal, rentalID, domain.RentalStatusCompleted, actualReturn)
}

func (s *rentalCoordinator) CancelRental(ctx context.Context, principal *domain.User, rentalID string) (*domain.Rental, error) {
	return s.finish(ctx, principal, rentalID, domain.RentalStatusCancelled, nil)
}

func (s *rentalCoordinator) finish(ctx context.Context, principal *domain.User, rentalID string, terminal domain.RentalStatus, actualReturn *time.Time) (*domain.Rental, error) {
	if err := s.gate.Authorize(principal, domain.CapabilityManageGarage); err != nil {
		return nil, err
	}

	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.Status.Terminal() {
		return nil, fmt.Errorf("%w: rental %s is already %s", domain.ErrConflict, rentalID, rental.Status)
	}

	returnedAt := time.Now()
	if actualReturn != nil {
		returnedAt = *actualReturn
	}
	if err := s.lifecycle.CloseRental(ctx, rental, terminal, returnedAt); err != nil {
		return nil, err
	}
	return s.rentalRepo.GetByID(ctx, rentalID)
}

func (s *rentalCoordinator) ListRentals(ctx context.Context, principal *domain.User) ([]domain.Rental, error) {
	if err := authorizeAny(s.gate, principal, domain.CapabilityManageGarage, domain.CapabilityViewFleet); err != nil {
		return nil, err
	}
	return s.rentalRepo.List(ctx)
}

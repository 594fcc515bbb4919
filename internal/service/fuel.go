package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fleetyard-backend/internal/domain"
	"fleetyard-backend/internal/repository"
)

type fuelService struct {
	gate        AccessGate
	fuelRepo    repository.FuelLogRepository
	vehicleRepo repository.VehicleRepository
}

func NewFuelService(gate AccessGate, fuelRepo repository.FuelLogRepository, vehicleRepo repository.VehicleRepository) FuelService {
	return &fuelService{
		gate:        gate,
		fuelRepo:    fuelRepo,
		vehicleRepo: vehicleRepo,
	}
}

func (s *fuelService) RecordFuel(ctx context.Context, principal *domain.User, in RecordFuelInput) (*domain.FuelLog, error) {
	if err := s.gate.Authorize(principal, domain.CapabilityManageFuel); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Rego) == "" || strings.TrimSpace(in.MvaNumber) == "" {
		return nil, fmt.Errorf("%w: rego and mva number are required", domain.ErrValidation)
	}
	if in.Kms < 0 || !in.Litres.IsPositive() || in.Cost.IsNegative() {
		return nil, fmt.Errorf("%w: litres must be positive and kms/cost must not be negative", domain.ErrValidation)
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	log := &domain.FuelLog{
		MvaNumber: in.MvaNumber,
		Rego:      in.Rego,
		Kms:       in.Kms,
		Litres:    in.Litres,
		Cost:      in.Cost,
		Date:      date,
		CreatedBy: principal.ID,
	}

	// Best effort: link the entry to a vehicle when the rego matches.
	if v, err := s.vehicleRepo.GetByRego(ctx, in.Rego); err == nil {
		log.VehicleID = &v.ID
	} else if !isNotFound(err) {
		return nil, err
	}

	if err := s.fuelRepo.Create(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *fuelService) ListFuelLogs(ctx context.Context, principal *domain.User, month, year int) ([]domain.FuelLog, error) {
	if err := authorizeAny(s.gate, principal, domain.CapabilityManageFuel, domain.CapabilityViewReports); err != nil {
		return nil, err
	}
	return s.fuelRepo.List(ctx, month, year)
}

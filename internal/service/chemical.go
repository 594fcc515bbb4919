package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fleetyard-backend/internal/domain"
	"fleetyard-backend/internal/logger"
	"fleetyard-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type stockLedger struct {
	gate      AccessGate
	chemRepo  repository.ChemicalRepository
	orderRepo repository.ChemicalOrderRepository
	tx        repository.TxManager
}

func NewStockLedger(
	gate AccessGate,
	chemRepo repository.ChemicalRepository,
	orderRepo repository.ChemicalOrderRepository,
	tx repository.TxManager,
) StockLedger {
	return &stockLedger{
		gate:      gate,
		chemRepo:  chemRepo,
		orderRepo: orderRepo,
		tx:        tx,
	}
}

func (s *stockLedger) CreateChemical(ctx context.Context, principal *domain.User, name, description, unit string) (*domain.Chemical, error) {
	if err := s.gate.Authorize(principal, domain.CapabilityManageChemicals); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: chemical name is required", domain.ErrValidation)
	}
	if unit == "" {
		unit = "Litres"
	}
	c := &domain.Chemical{
		Name:         strings.TrimSpace(name),
		Description:  description,
		Unit:         unit,
		CurrentStock: decimal.Zero,
	}
	if err := s.chemRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *stockLedger) ListChemicals(ctx context.Context, principal *domain.User) ([]domain.Chemical, error) {
	if err := authorizeAny(s.gate, principal, domain.CapabilityManageChemicals, domain.CapabilityCreateChemicalOrder); err != nil {
		return nil, err
	}
	return s.chemRepo.List(ctx)
}

// RecordDelivery creates the immutable order and bumps the chemical's stock
// counter as one atomic unit: a reader never sees an order without its
// increment or an increment without its order.
func (s *stockLedger) RecordDelivery(ctx context.Context, principal *domain.User, in RecordDeliveryInput) (*domain.ChemicalOrder, error) {
	if err := s.gate.Authorize(principal, domain.CapabilityCreateChemicalOrder); err != nil {
		return nil, err
	}
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: quantity must be greater than zero", domain.ErrValidation)
	}
	if in.Cost.IsNegative() {
		return nil, fmt.Errorf("%w: cost must not be negative", domain.ErrValidation)
	}
	if !domain.DeliveryLocations[in.Location] {
		return nil, fmt.Errorf("%w: unknown delivery location %q", domain.ErrValidation, in.Location)
	}

	// Unknown chemical fails before any write.
	if _, err := s.chemRepo.GetByID(ctx, in.ChemicalID); err != nil {
		return nil, err
	}

	dealerID := in.DealerID
	if principal.Role == domain.RoleDealer || dealerID == "" {
		dealerID = principal.ID
	}

	paymentStatus := in.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = domain.PaymentStatusPending
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	order := &domain.ChemicalOrder{
		ChemicalID:    in.ChemicalID,
		DealerID:      dealerID,
		Quantity:      in.Quantity,
		Cost:          in.Cost,
		Date:          date,
		ReceiptImage:  in.ReceiptImage,
		PaymentStatus: paymentStatus,
		Location:      in.Location,
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.orderRepo.Create(txCtx, order); err != nil {
			return err
		}
		return s.chemRepo.IncrementStock(txCtx, in.ChemicalID, in.Quantity)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Chemical delivery recorded",
		"order_id", order.ID, "chemical_id", in.ChemicalID, "quantity", in.Quantity.String())
	return order, nil
}

// SetPaymentStatus flips an order pending -> paid. The reverse direction is
// rejected, and paying an already-paid order is a no-op.
func (s *stockLedger) SetPaymentStatus(ctx context.Context, principal *domain.User, orderID string, status domain.PaymentStatus) (*domain.ChemicalOrder, error) {
	if err := s.gate.Authorize(principal, domain.CapabilityApproveChemicalPayments); err != nil {
		return nil, err
	}
	if status != domain.PaymentStatusPaid {
		return nil, fmt.Errorf("%w: payment status can only be set to %s", domain.ErrValidation, domain.PaymentStatusPaid)
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus == domain.PaymentStatusPaid {
		return order, nil
	}

	if err := s.orderRepo.MarkPaid(ctx, orderID); err != nil {
		return nil, err
	}
	order.PaymentStatus = domain.PaymentStatusPaid
	return order, nil
}

func (s *stockLedger) ListOrders(ctx context.Context, principal *domain.User) ([]domain.ChemicalOrder, error) {
	if err := authorizeAny(s.gate, principal, domain.CapabilityManageChemicals, domain.CapabilityViewOwnChemicalOrders); err != nil {
		return nil, err
	}
	// Dealers only ever see their own orders.
	if principal.Role == domain.RoleDealer {
		return s.orderRepo.List(ctx, principal.ID)
	}
	return s.orderRepo.List(ctx, "")
}

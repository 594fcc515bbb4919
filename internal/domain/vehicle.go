package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type VehicleStatus string

const (
	VehicleStatusAvailable VehicleStatus = "available"
	VehicleStatusNew       VehicleStatus = "new"
	VehicleStatusYard      VehicleStatus = "yard"
	VehicleStatusService   VehicleStatus = "service"
	VehicleStatusSold      VehicleStatus = "sold"
	VehicleStatusReserved  VehicleStatus = "reserved"
	VehicleStatusRental    VehicleStatus = "rental"
)

// IdleStatuses is the "in garage" super-state: not in service, not rented,
// not sold. The three members differ only in display semantics.
var IdleStatuses = []VehicleStatus{VehicleStatusAvailable, VehicleStatusNew, VehicleStatusYard}

func (s VehicleStatus) Idle() bool {
	for _, v := range IdleStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// TransitionOp identifies one vehicle lifecycle operation.
type TransitionOp string

const (
	OpStartService    TransitionOp = "start_service"
	OpCompleteService TransitionOp = "complete_service"
	OpReportIssue     TransitionOp = "report_issue"
	OpResolveIssue    TransitionOp = "resolve_issue"
	OpStartRental     TransitionOp = "start_rental"
	OpReturnRental    TransitionOp = "return_rental"
	OpCancelRental    TransitionOp = "cancel_rental"
	OpMarkSold        TransitionOp = "mark_sold"
	OpRelist          TransitionOp = "relist"
)

// Transition declares the precondition states and the result state of one
// operation. Side effects (history append, notes, rental rows) are applied by
// the lifecycle service in the same conditional update.
type Transition struct {
	From []VehicleStatus
	To   VehicleStatus
}

// Transitions is the closed transition table of the vehicle state machine.
var Transitions = map[TransitionOp]Transition{
	OpStartService:    {From: withService(IdleStatuses), To: VehicleStatusService},
	OpCompleteService: {From: []VehicleStatus{VehicleStatusService}, To: VehicleStatusAvailable},
	OpReportIssue:     {From: withService(IdleStatuses), To: VehicleStatusService},
	OpResolveIssue:    {From: []VehicleStatus{VehicleStatusService}, To: VehicleStatusAvailable},
	OpStartRental:     {From: withService(IdleStatuses), To: VehicleStatusRental},
	OpReturnRental:    {From: []VehicleStatus{VehicleStatusRental}, To: VehicleStatusAvailable},
	OpCancelRental:    {From: []VehicleStatus{VehicleStatusRental}, To: VehicleStatusAvailable},
	OpMarkSold:        {From: append(withService(IdleStatuses), VehicleStatusReserved), To: VehicleStatusSold},
	OpRelist:          {From: []VehicleStatus{VehicleStatusSold}, To: VehicleStatusAvailable},
}

func withService(idle []VehicleStatus) []VehicleStatus {
	out := make([]VehicleStatus, 0, len(idle)+1)
	out = append(out, idle...)
	return append(out, VehicleStatusService)
}

// CanTransition reports whether op is valid from the given status.
func CanTransition(op TransitionOp, from VehicleStatus) bool {
	t, ok := Transitions[op]
	if !ok {
		return false
	}
	for _, s := range t.From {
		if s == from {
			return true
		}
	}
	return false
}

// ServiceEntry is one append-only record of mechanical work on a vehicle.
type ServiceEntry struct {
	Date        time.Time       `json:"date"`
	Kms         int32           `json:"kms"`
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
}

type Vehicle struct {
	ID               string           `json:"id"`
	Make             string           `json:"make"`
	Model            string           `json:"model"`
	Year             int32            `json:"year"`
	Price            decimal.Decimal  `json:"price"`
	CostPrice        *decimal.Decimal `json:"cost_price,omitempty"`
	SoldPrice        *decimal.Decimal `json:"sold_price,omitempty"`
	SoldDate         *time.Time       `json:"sold_date,omitempty"`
	Rego             string           `json:"rego"`
	MvaNumber        string           `json:"mva_number,omitempty"`
	KmsDriven        int32            `json:"kms_driven"`
	Color            string           `json:"color,omitempty"`
	FuelType         string           `json:"fuel_type"`
	Transmission     string           `json:"transmission"`
	Description      string           `json:"description,omitempty"`
	Location         string           `json:"location"`
	Category         string           `json:"category,omitempty"`
	Status           VehicleStatus    `json:"status"`
	ServiceHistory   []ServiceEntry   `json:"service_history"`
	MaintenanceNotes string           `json:"maintenance_notes,omitempty"`
	CreatedBy        string           `json:"created_by"`
	CreatedOn        time.Time        `json:"created_on"`
	UpdatedOn        time.Time        `json:"updated_on"`
}

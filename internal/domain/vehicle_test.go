package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		op   TransitionOp
		from VehicleStatus
		want bool
	}{
		{"start service from available", OpStartService, VehicleStatusAvailable, true},
		{"start service from new", OpStartService, VehicleStatusNew, true},
		{"start service from yard", OpStartService, VehicleStatusYard, true},
		{"start service while already in service", OpStartService, VehicleStatusService, true},
		{"start service from rental", OpStartService, VehicleStatusRental, false},
		{"start service from sold", OpStartService, VehicleStatusSold, false},

		{"complete service from service", OpCompleteService, VehicleStatusService, true},
		{"complete service from available", OpCompleteService, VehicleStatusAvailable, false},

		{"report issue from yard", OpReportIssue, VehicleStatusYard, true},
		{"report issue from rental", OpReportIssue, VehicleStatusRental, false},

		{"resolve issue from service", OpResolveIssue, VehicleStatusService, true},
		{"resolve issue from available", OpResolveIssue, VehicleStatusAvailable, false},

		{"start rental from available", OpStartRental, VehicleStatusAvailable, true},
		{"start rental from service", OpStartRental, VehicleStatusService, true},
		{"start rental while rented", OpStartRental, VehicleStatusRental, false},
		{"start rental from sold", OpStartRental, VehicleStatusSold, false},

		{"return rental from rental", OpReturnRental, VehicleStatusRental, true},
		{"return rental from available", OpReturnRental, VehicleStatusAvailable, false},
		{"cancel rental from rental", OpCancelRental, VehicleStatusRental, true},

		{"mark sold from available", OpMarkSold, VehicleStatusAvailable, true},
		{"mark sold from service", OpMarkSold, VehicleStatusService, true},
		{"mark sold from reserved", OpMarkSold, VehicleStatusReserved, true},
		{"mark sold from rental", OpMarkSold, VehicleStatusRental, false},
		{"mark sold twice", OpMarkSold, VehicleStatusSold, false},

		{"relist from sold", OpRelist, VehicleStatusSold, true},
		{"relist from available", OpRelist, VehicleStatusAvailable, false},

		{"unknown operation", TransitionOp("repaint"), VehicleStatusAvailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.op, tt.from))
		})
	}
}

func TestVehicleStatusIdle(t *testing.T) {
	assert.True(t, VehicleStatusAvailable.Idle())
	assert.True(t, VehicleStatusNew.Idle())
	assert.True(t, VehicleStatusYard.Idle())
	assert.False(t, VehicleStatusService.Idle())
	assert.False(t, VehicleStatusRental.Idle())
	assert.False(t, VehicleStatusSold.Idle())
	assert.False(t, VehicleStatusReserved.Idle())
}

func TestRentalStatusTerminal(t *testing.T) {
	assert.False(t, RentalStatusActive.Terminal())
	assert.True(t, RentalStatusCompleted.Terminal())
	assert.True(t, RentalStatusCancelled.Terminal())
}

func TestUserHasPermission(t *testing.T) {
	u := &User{Permissions: []Capability{CapabilityManageGarage}}
	assert.True(t, u.HasPermission(CapabilityManageGarage))
	assert.False(t, u.HasPermission(CapabilityManageInventory))

	wildcard := &User{Permissions: []Capability{CapabilityAll}}
	assert.True(t, wildcard.HasPermission(CapabilityManageInventory))
	assert.True(t, wildcard.HasPermission(CapabilityApproveChemicalPayments))
}

func TestCapabilityValid(t *testing.T) {
	assert.True(t, CapabilityManageFuel.Valid())
	assert.True(t, CapabilityAll.Valid())
	assert.False(t, Capability("manage_everything").Valid())
}

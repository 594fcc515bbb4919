package service_test

import (
	"testing"

	"fleetyard-backend/internal/domain"
	"fleetyard-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestAccessGate_Authorize(t *testing.T) {
	gate := service.NewAccessGate()

	tests := []struct {
		name       string
		principal  *domain.User
		capability domain.Capability
		allowed    bool
	}{
		{"nil principal denied", nil, domain.CapabilityViewFleet, false},
		{"admin may do anything", adminUser, domain.CapabilityManageInventory, true},
		{"client may do anything", clientUser, domain.CapabilityApproveChemicalPayments, true},

		{"user with grant allowed", garageUser, domain.CapabilityManageGarage, true},
		{"user without grant denied", garageUser, domain.CapabilityManageInventory, false},
		{"user with wildcard allowed", &domain.User{
			Role:        domain.RoleUser,
			Permissions: []domain.Capability{domain.CapabilityAll},
		}, domain.CapabilityManageChemicals, true},

		{"dealer may create orders", dealerUser, domain.CapabilityCreateChemicalOrder, true},
		{"dealer may view own orders", dealerUser, domain.CapabilityViewOwnChemicalOrders, true},
		{"dealer denied garage ops", dealerUser, domain.CapabilityManageGarage, false},
		{"dealer denied even with stored grant", &domain.User{
			Role:        domain.RoleDealer,
			Permissions: []domain.Capability{domain.CapabilityManageInventory},
		}, domain.CapabilityManageInventory, false},

		{"unknown role denied", &domain.User{Role: "superuser"}, domain.CapabilityViewFleet, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gate.Authorize(tt.principal, tt.capability)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrForbidden)
			}
		})
	}
}

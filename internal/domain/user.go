package domain

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
	RoleUser   Role = "user"
	RoleDealer Role = "dealer"
)

// Capability is a grantable action token. Kept as a closed enum so a typo in
// a permission grant is caught at validation time instead of silently never
// matching.
type Capability string

const (
	CapabilityManageInventory         Capability = "manage_inventory"
	CapabilityManageGarage            Capability = "manage_garage"
	CapabilityManageFuel              Capability = "manage_fuel"
	CapabilityManageChemicals         Capability = "manage_chemicals"
	CapabilityViewFleet               Capability = "view_fleet"
	CapabilityViewReports             Capability = "view_reports"
	CapabilityCreateChemicalOrder     Capability = "create_chemical_order"
	CapabilityViewOwnChemicalOrders   Capability = "view_own_chemical_orders"
	CapabilityApproveChemicalPayments Capability = "approve_chemical_payments"

	// CapabilityAll is the wildcard grant for user-role principals.
	CapabilityAll Capability = "all"
)

var knownCapabilities = map[Capability]bool{
	CapabilityManageInventory:         true,
	CapabilityManageGarage:            true,
	CapabilityManageFuel:              true,
	CapabilityManageChemicals:         true,
	CapabilityViewFleet:               true,
	CapabilityViewReports:             true,
	CapabilityCreateChemicalOrder:     true,
	CapabilityViewOwnChemicalOrders:   true,
	CapabilityApproveChemicalPayments: true,
	CapabilityAll:                     true,
}

func (c Capability) Valid() bool {
	return knownCapabilities[c]
}

// DealerCapabilities is the fixed set a dealer-role principal may exercise,
// regardless of any permissions stored on the account.
var DealerCapabilities = map[Capability]bool{
	CapabilityCreateChemicalOrder:   true,
	CapabilityViewOwnChemicalOrders: true,
}

type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         Role         `json:"role"`
	Permissions  []Capability `json:"permissions"`
	CreatedBy    *string      `json:"created_by,omitempty"`
	CreatedOn    string       `json:"created_on"`
}

// HasPermission reports whether a user-role principal holds the capability
// (directly or via the wildcard). Role tiers are resolved by the access gate,
// not here.
func (u *User) HasPermission(c Capability) bool {
	for _, p := range u.Permissions {
		if p == c || p == CapabilityAll {
			return true
		}
	}
	return false
}

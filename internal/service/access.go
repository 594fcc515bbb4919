package service

import (
	"errors"
	"fmt"

	"fleetyard-backend/internal/domain"
)

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

type accessGate struct{}

func NewAccessGate() AccessGate {
	return &accessGate{}
}

// Authorize resolves the principal's tier and permission set. Admin and
// client are the superuser tier; user-role principals need the capability
// granted (or the "all" wildcard); dealers are limited to their fixed set.
func (g *accessGate) Authorize(principal *domain.User, capability domain.Capability) error {
	if principal == nil {
		return fmt.Errorf("%w: no principal", domain.ErrForbidden)
	}
	switch principal.Role {
	case domain.RoleAdmin, domain.RoleClient:
		return nil
	case domain.RoleUser:
		if principal.HasPermission(capability) {
			return nil
		}
		return fmt.Errorf("%w: missing permission %s", domain.ErrForbidden, capability)
	case domain.RoleDealer:
		if domain.DealerCapabilities[capability] {
			return nil
		}
		return fmt.Errorf("%w: dealers may not %s", domain.ErrForbidden, capability)
	default:
		return fmt.Errorf("%w: unknown role %q", domain.ErrForbidden, principal.Role)
	}
}

// authorizeAny allows the operation when the principal holds any one of the
// listed capabilities.
func authorizeAny(gate AccessGate, principal *domain.User, capabilities ...domain.Capability) error {
	var err error
	for _, c := range capabilities {
		if err = gate.Authorize(principal, c); err == nil {
			return nil
		}
	}
	return err
}

// requireAdminTier restricts an operation to admin and client roles outright,
// with no capability escape hatch. Used for account management.
func requireAdminTier(principal *domain.User) error {
	if principal == nil {
		return fmt.Errorf("%w: no principal", domain.ErrForbidden)
	}
	if principal.Role != domain.RoleAdmin && principal.Role != domain.RoleClient {
		return fmt.Errorf("%w: requires an admin or client account", domain.ErrForbidden)
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"strings"

	"fleetyard-backend/internal/domain"
	"fleetyard-backend/internal/repository"
	"fleetyard-backend/internal/security"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) ProvisionUser(ctx context.Context, principal *domain.User, in ProvisionUserInput) (*domain.User, error) {
	if err := requireAdminTier(principal); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Username) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", domain.ErrValidation)
	}
	if err := validateAccess(in.Role, in.Permissions); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		Permissions:  in.Permissions,
		CreatedBy:    &principal.ID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, principal *domain.User) ([]domain.User, error) {
	if err := requireAdminTier(principal); err != nil {
		return nil, err
	}
	// Clients only see accounts they provisioned; admins see everything.
	if principal.Role == domain.RoleClient {
		return s.userRepo.List(ctx, principal.ID)
	}
	return s.userRepo.List(ctx, "")
}

func (s *userService) UpdateUserAccess(ctx context.Context, principal *domain.User, userID string, role domain.Role, permissions []domain.Capability) (*domain.User, error) {
	if err := requireAdminTier(principal); err != nil {
		return nil, err
	}
	if err := validateAccess(role, permissions); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if principal.Role == domain.RoleClient {
		if user.CreatedBy == nil || *user.CreatedBy != principal.ID {
			return nil, fmt.Errorf("%w: clients may only update accounts they provisioned", domain.ErrForbidden)
		}
	}

	if role != "" {
		user.Role = role
	}
	if permissions != nil {
		user.Permissions = permissions
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func validateAccess(role domain.Role, permissions []domain.Capability) error {
	switch role {
	case "", domain.RoleAdmin, domain.RoleClient, domain.RoleUser, domain.RoleDealer:
	default:
		return fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}
	for _, p := range permissions {
		if !p.Valid() {
			return fmt.Errorf("%w: unknown permission %q", domain.ErrValidation, p)
		}
	}
	return nil
}

package service

import (
	"context"
	"errors"

	"fleetyard-backend/internal/domain"
	"fleetyard-backend/internal/logger"
	"fleetyard-backend/internal/repository"
	"fleetyard-backend/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *authService) Login(ctx context.Context, usernameOrEmail, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByLogin(ctx, usernameOrEmail)
	if err != nil {
		if isNotFound(err) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !security.CheckPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return "", nil, err
	}
	logger.Info("User logged in", "user_id", user.ID, "role", user.Role)
	return token, user, nil
}

func (s *authService) ResolvePrincipal(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

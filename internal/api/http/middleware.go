package http

import (
	"context"
	"net/http"
	"strings"

	"fleetyard-backend/internal/domain"
	"fleetyard-backend/internal/security"
	"fleetyard-backend/internal/service"
)

type principalKeyType struct{}

var principalKey principalKeyType

// AuthMiddleware authenticates bearer tokens and attaches the resolved
// principal to the request context. Role and permissions are loaded fresh
// from the database on every request, so revoking access takes effect
// immediately rather than at token expiry.
type AuthMiddleware struct {
	tokens security.TokenManager
	auth   service.AuthService
}

func NewAuthMiddleware(tokens security.TokenManager, auth service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, auth: auth}
}

func (m *AuthMiddleware) RequirePrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respondError(w, security.ErrInvalidToken)
			return
		}

		claims, err := m.tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			respondError(w, err)
			return
		}

		principal, err := m.auth.ResolvePrincipal(r.Context(), claims.UserID)
		if err != nil {
			respondError(w, security.ErrInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// principalFrom returns the authenticated principal, or nil when the request
// did not pass the auth middleware.
func principalFrom(r *http.Request) *domain.User {
	principal, _ := r.Context().Value(principalKey).(*domain.User)
	return principal
}

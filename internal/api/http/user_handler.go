package http

import (
	"net/http"

	"fleetyard-backend/internal/domain"
	"fleetyard-backend/internal/service"

	"github.com/gorilla/mux"
)

type UserHandler struct {
	users service.UserService
}

func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type provisionUserRequest struct {
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

func capabilities(values []string) []domain.Capability {
	caps := make([]domain.Capability, 0, len(values))
	for _, v := range values {
		caps = append(caps, domain.Capability(v))
	}
	return caps
}

func (h *UserHandler) Provision(w http.ResponseWriter, r *http.Request) {
	var req provisionUserRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	user, err := h.users.ProvisionUser(r.Context(), principalFrom(r), service.ProvisionUserInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		Role:        domain.Role(req.Role),
		Permissions: capabilities(req.Permissions),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context(), principalFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

type updateAccessRequest struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

func (h *UserHandler) UpdateAccess(w http.ResponseWriter, r *http.Request) {
	var req updateAccessRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	user, err := h.users.UpdateUserAccess(r.Context(), principalFrom(r), mux.Vars(r)["id"], domain.Role(req.Role), capabilities(req.Permissions))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

package http

import (
	"net/http"
	"time"

	"fleetyard-backend/internal/service"

	"github.com/gorilla/mux"
)

type RentalHandler struct {
	coordinator service.RentalCoordinator
}

func NewRentalHandler(coordinator service.RentalCoordinator) *RentalHandler {
	return &RentalHandler{coordinator: coordinator}
}

type startRentalRequest struct {
	VehicleID      string `json:"vehicle_id"`
	CustomerName   string `json:"customer_name"`
	CustomerPhone  string `json:"customer_phone"`
	Destination    string `json:"destination"`
	StartDate      string `json:"start_date"`
	PlannedEndDate string `json:"planned_end_date"`
	Notes          string `json:"notes"`
}

func (h *RentalHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startRentalRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		respondError(w, err)
		return
	}
	plannedEnd, err := parseDate(req.PlannedEndDate)
	if err != nil {
		respondError(w, err)
		return
	}

	rental, err := h.coordinator.StartRental(r.Context(), principalFrom(r), service.StartRentalInput{
		VehicleID:      req.VehicleID,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		Destination:    req.Destination,
		StartDate:      start,
		PlannedEndDate: plannedEnd,
		Notes:          req.Notes,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rental)
}

type returnRentalRequest struct {
	ActualReturnDate string `json:"actual_return_date"`
}

func (h *RentalHandler) Return(w http.ResponseWriter, r *http.Request) {
	var req returnRentalRequest
	// An empty body is fine: the return date defaults to now.
	_ = decodeBody(r, &req)

	returnedAt, err := parseDate(req.ActualReturnDate)
	if err != nil {
		respondError(w, err)
		return
	}
	var actual *time.Time
	if !returnedAt.IsZero() {
		actual = &returnedAt
	}
	rental, err := h.coordinator.ReturnRental(r.Context(), principalFrom(r), mux.Vars(r)["id"], actual)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	rental, err := h.coordinator.CancelRental(r.Context(), principalFrom(r), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.coordinator.ListRentals(r.Context(), principalFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rentals)
}

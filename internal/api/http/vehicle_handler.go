package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fleetyard-backend/internal/domain"
	"fleetyard-backend/internal/repository"
	"fleetyard-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type VehicleHandler struct {
	lifecycle service.VehicleLifecycle
}

func NewVehicleHandler(lifecycle service.VehicleLifecycle) *VehicleHandler {
	return &VehicleHandler{lifecycle: lifecycle}
}

type vehicleRequest struct {
	Make         string           `json:"make"`
	Model        string           `json:"model"`
	Year         int32            `json:"year"`
	Price        decimal.Decimal  `json:"price"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	Rego         string           `json:"rego"`
	MvaNumber    string           `json:"mva_number"`
	KmsDriven    int32            `json:"kms_driven"`
	Color        string           `json:"color"`
	FuelType     string           `json:"fuel_type"`
	Transmission string           `json:"transmission"`
	Description  string           `json:"description"`
	Location     string           `json:"location"`
	Category     string           `json:"category"`
	Status       string           `json:"status"`
}

func (req *vehicleRequest) attrs() service.VehicleAttrs {
	return service.VehicleAttrs{
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		Price:        req.Price,
		CostPrice:    req.CostPrice,
		Rego:         req.Rego,
		MvaNumber:    req.MvaNumber,
		KmsDriven:    req.KmsDriven,
		Color:        req.Color,
		FuelType:     req.FuelType,
		Transmission: req.Transmission,
		Description:  req.Description,
		Location:     req.Location,
		Category:     req.Category,
		Status:       domain.VehicleStatus(req.Status),
	}
}

func (h *VehicleHandler) Intake(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	vehicle, err := h.lifecycle.Intake(r.Context(), principalFrom(r), req.attrs())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, vehicle)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	vehicle, err := h.lifecycle.GetVehicle(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.VehicleFilter{
		Status: domain.VehicleStatus(q.Get("status")),
		Make:   q.Get("make"),
		Search: q.Get("search"),
	}
	if year := q.Get("year"); year != "" {
		if y, err := strconv.Atoi(year); err == nil {
			filter.Year = int32(y)
		}
	}
	if min := q.Get("min_price"); min != "" {
		if d, err := decimal.NewFromString(min); err == nil {
			filter.MinPrice = &d
		}
	}
	if max := q.Get("max_price"); max != "" {
		if d, err := decimal.NewFromString(max); err == nil {
			filter.MaxPrice = &d
		}
	}

	vehicles, err := h.lifecycle.ListVehicles(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	vehicle, err := h.lifecycle.UpdateAttrs(r.Context(), principalFrom(r), mux.Vars(r)["id"], req.attrs())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicle)
}

type transitionRequest struct {
	Operation   string           `json:"operation"`
	Notes       string           `json:"notes"`
	Kms         int32            `json:"kms"`
	Description string           `json:"description"`
	Cost        decimal.Decimal  `json:"cost"`
	SoldPrice   *decimal.Decimal `json:"sold_price"`
}

func (h *VehicleHandler) Transition(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	payload := service.TransitionPayload{
		Notes:       req.Notes,
		Kms:         req.Kms,
		Description: req.Description,
		Cost:        req.Cost,
		SoldPrice:   req.SoldPrice,
	}
	vehicle, err := h.lifecycle.Transition(r.Context(), principalFrom(r), mux.Vars(r)["id"], domain.TransitionOp(req.Operation), payload)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicle)
}

// parseDate accepts both RFC3339 timestamps and plain dates.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q", domain.ErrValidation, value)
}

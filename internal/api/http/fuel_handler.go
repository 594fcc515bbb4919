package http

import (
	"net/http"
	"strconv"

	"fleetyard-backend/internal/service"

	"github.com/shopspring/decimal"
)

type FuelHandler struct {
	fuel service.FuelService
}

func NewFuelHandler(fuel service.FuelService) *FuelHandler {
	return &FuelHandler{fuel: fuel}
}

type recordFuelRequest struct {
	MvaNumber string          `json:"mva_number"`
	Rego      string          `json:"rego"`
	Kms       int32           `json:"kms"`
	Litres    decimal.Decimal `json:"litres"`
	Cost      decimal.Decimal `json:"cost"`
	Date      string          `json:"date"`
}

func (h *FuelHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req recordFuelRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		respondError(w, err)
		return
	}

	log, err := h.fuel.RecordFuel(r.Context(), principalFrom(r), service.RecordFuelInput{
		MvaNumber: req.MvaNumber,
		Rego:      req.Rego,
		Kms:       req.Kms,
		Litres:    req.Litres,
		Cost:      req.Cost,
		Date:      date,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, log)
}

func (h *FuelHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	month, _ := strconv.Atoi(q.Get("month"))
	year, _ := strconv.Atoi(q.Get("year"))

	logs, err := h.fuel.ListFuelLogs(r.Context(), principalFrom(r), month, year)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, logs)
}

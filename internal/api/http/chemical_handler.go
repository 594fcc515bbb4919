package http

import (
	"net/http"

	"fleetyard-backend/internal/domain"
	"fleetyard-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type ChemicalHandler struct {
	ledger service.StockLedger
}

func NewChemicalHandler(ledger service.StockLedger) *ChemicalHandler {
	return &ChemicalHandler{ledger: ledger}
}

type createChemicalRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Unit        string `json:"unit"`
}

func (h *ChemicalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createChemicalRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	chemical, err := h.ledger.CreateChemical(r.Context(), principalFrom(r), req.Name, req.Description, req.Unit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, chemical)
}

func (h *ChemicalHandler) List(w http.ResponseWriter, r *http.Request) {
	chemicals, err := h.ledger.ListChemicals(r.Context(), principalFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chemicals)
}

type recordDeliveryRequest struct {
	ChemicalID    string          `json:"chemical_id"`
	DealerID      string          `json:"dealer_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Cost          decimal.Decimal `json:"cost"`
	Date          string          `json:"date"`
	ReceiptImage  string          `json:"receipt_image"`
	PaymentStatus string          `json:"payment_status"`
	Location      string          `json:"location"`
}

func (h *ChemicalHandler) RecordDelivery(w http.ResponseWriter, r *http.Request) {
	var req recordDeliveryRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		respondError(w, err)
		return
	}

	order, err := h.ledger.RecordDelivery(r.Context(), principalFrom(r), service.RecordDeliveryInput{
		ChemicalID:    req.ChemicalID,
		DealerID:      req.DealerID,
		Quantity:      req.Quantity,
		Cost:          req.Cost,
		Date:          date,
		ReceiptImage:  req.ReceiptImage,
		PaymentStatus: domain.PaymentStatus(req.PaymentStatus),
		Location:      req.Location,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

func (h *ChemicalHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.ledger.ListOrders(r.Context(), principalFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

type paymentStatusRequest struct {
	PaymentStatus string `json:"payment_status"`
}

func (h *ChemicalHandler) SetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req paymentStatusRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	order, err := h.ledger.SetPaymentStatus(r.Context(), principalFrom(r), mux.Vars(r)["id"], domain.PaymentStatus(req.PaymentStatus))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers groups everything the router needs.
type Handlers struct {
	Auth     *AuthHandler
	Vehicle  *VehicleHandler
	Rental   *RentalHandler
	Chemical *ChemicalHandler
	Fuel     *FuelHandler
	User     *UserHandler
}

// NewRouter wires all routes. Vehicle reads are public so the storefront can
// browse inventory without a session; everything else requires a principal.
func NewRouter(h Handlers, auth *AuthMiddleware) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/cars", h.Vehicle.List).Methods(http.MethodGet)
	api.HandleFunc("/cars/{id}", h.Vehicle.Get).Methods(http.MethodGet)

	// Protected routes
	protected := api.NewRoute().Subrouter()
	protected.Use(auth.RequirePrincipal)

	protected.HandleFunc("/auth/me", h.Auth.Me).Methods(http.MethodGet)

	protected.HandleFunc("/cars", h.Vehicle.Intake).Methods(http.MethodPost)
	protected.HandleFunc("/cars/{id}", h.Vehicle.Update).Methods(http.MethodPut)
	protected.HandleFunc("/cars/{id}/transition", h.Vehicle.Transition).Methods(http.MethodPost)

	protected.HandleFunc("/rentals", h.Rental.Start).Methods(http.MethodPost)
	protected.HandleFunc("/rentals", h.Rental.List).Methods(http.MethodGet)
	protected.HandleFunc("/rentals/{id}/return", h.Rental.Return).Methods(http.MethodPost)
	protected.HandleFunc("/rentals/{id}/cancel", h.Rental.Cancel).Methods(http.MethodPost)

	protected.HandleFunc("/chemicals", h.Chemical.Create).Methods(http.MethodPost)
	protected.HandleFunc("/chemicals", h.Chemical.List).Methods(http.MethodGet)
	protected.HandleFunc("/chemical-orders", h.Chemical.RecordDelivery).Methods(http.MethodPost)
	protected.HandleFunc("/chemical-orders", h.Chemical.ListOrders).Methods(http.MethodGet)
	protected.HandleFunc("/chemical-orders/{id}/payment", h.Chemical.SetPaymentStatus).Methods(http.MethodPut)

	protected.HandleFunc("/fuel-logs", h.Fuel.Record).Methods(http.MethodPost)
	protected.HandleFunc("/fuel-logs", h.Fuel.List).Methods(http.MethodGet)

	protected.HandleFunc("/users", h.User.Provision).Methods(http.MethodPost)
	protected.HandleFunc("/users", h.User.List).Methods(http.MethodGet)
	protected.HandleFunc("/users/{id}/access", h.User.UpdateAccess).Methods(http.MethodPut)

	return r
}

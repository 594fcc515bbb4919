package domain

import "time"

type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "active"
	RentalStatusCompleted RentalStatus = "completed"
	RentalStatusCancelled RentalStatus = "cancelled"
)

// Terminal reports whether the rental can no longer change state.
func (s RentalStatus) Terminal() bool {
	return s == RentalStatusCompleted || s == RentalStatusCancelled
}

// Rental is one hire of a vehicle. At most one rental with status "active"
// may exist per vehicle at any instant.
type Rental struct {
	ID               string       `json:"id"`
	VehicleID        string       `json:"vehicle_id"`
	CustomerName     string       `json:"customer_name"`
	CustomerPhone    string       `json:"customer_phone,omitempty"`
	Destination      string       `json:"destination"`
	StartDate        time.Time    `json:"start_date"`
	PlannedEndDate   time.Time    `json:"planned_end_date"`
	ActualReturnDate *time.Time   `json:"actual_return_date,omitempty"`
	Status           RentalStatus `json:"status"`
	Notes            string       `json:"notes,omitempty"`
	CreatedBy        string       `json:"created_by"`
	CreatedOn        time.Time    `json:"created_on"`
	UpdatedOn        time.Time    `json:"updated_on"`
}

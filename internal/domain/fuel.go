package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FuelLog is one refuelling entry. VehicleID is set when the rego matched a
// known vehicle at creation time; the log is kept either way.
type FuelLog struct {
	ID        string          `json:"id"`
	VehicleID *string         `json:"vehicle_id,omitempty"`
	MvaNumber string          `json:"mva_number"`
	Rego      string          `json:"rego"`
	Kms       int32           `json:"kms"`
	Litres    decimal.Decimal `json:"litres"`
	Cost      decimal.Decimal `json:"cost"`
	Date      time.Time       `json:"date"`
	CreatedBy string          `json:"created_by"`
	CreatedOn time.Time       `json:"created_on"`
}

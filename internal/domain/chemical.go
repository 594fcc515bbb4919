package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Chemical is a consumable stock item. CurrentStock is a running counter
// mutated only by delivery-order increments; it never goes negative because
// the only mutation path is an increment by a validated positive quantity.
type Chemical struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	CreatedOn    time.Time       `json:"created_on"`
	UpdatedOn    time.Time       `json:"updated_on"`
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// DeliveryLocations are the depots a chemical order can be delivered to.
var DeliveryLocations = map[string]bool{
	"Airport":   true,
	"City":      true,
	"Klemzig":   true,
	"Salisbury": true,
	"Wingfield": true,
	"Marleston": true,
}

// ChemicalOrder records one delivery against a chemical. Immutable once
// created except for PaymentStatus, which moves pending -> paid one way.
type ChemicalOrder struct {
	ID            string          `json:"id"`
	ChemicalID    string          `json:"chemical_id"`
	DealerID      string          `json:"dealer_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Cost          decimal.Decimal `json:"cost"`
	Date          time.Time       `json:"date"`
	ReceiptImage  string          `json:"receipt_image,omitempty"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	Location      string          `json:"location"`
	CreatedOn     time.Time       `json:"created_on"`
}

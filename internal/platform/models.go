package platform

import (
	"encoding/json"

	"savora-storefront/internal/auth"
)

// Credentials is what a successful login or registration yields: the bearer
// token plus the canonical identity projection. The raw platform user record
// never leaves this package.
type Credentials struct {
	Token string
	User  auth.Identity
}

// Branch is a physical outlet. A closed branch is still listed, flagged by
// Status, never hidden.
type Branch struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Status  string `json:"status"`
}

const BranchStatusClosed = "closed"

// TaxRates are percentages per payment method. A field the platform omits
// stays at its zero value.
type TaxRates struct {
	Cash float64 `json:"cash_tax"`
	Card float64 `json:"card_tax"`
}

// OrderItem is one cart line in the submission payload.
type OrderItem struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Price              float64           `json:"price"`
	Quantity           int               `json:"quantity"`
	SelectedVariations map[string]string `json:"selectedVariations,omitempty"`
}

// Order is the submission payload. Field names follow the platform contract.
type Order struct {
	Items           []OrderItem     `json:"items"`
	CustomerName    string          `json:"customerName"`
	Email           string          `json:"email,omitempty"`
	Phone           string          `json:"phone"`
	Address         string          `json:"address"`
	Lat             float64         `json:"lat"`
	Lng             float64         `json:"lng"`
	Notes           string          `json:"notes,omitempty"`
	PaymentMethod   string          `json:"paymentMethod"`
	OrderType       string          `json:"orderType"`
	BranchID        string          `json:"branchId"`
	Total           float64         `json:"total"`
	DeliveryCharges float64         `json:"deliveryCharges"`
	Tax             float64         `json:"tax"`
	GrandTotal      float64         `json:"grandTotal"`
	PaymentDetails  *PaymentDetails `json:"paymentDetails,omitempty"`
}

// PaymentDetails carries the confirmed card-payment identifiers.
type PaymentDetails struct {
	IntentID        string `json:"intentId"`
	PaymentMethodID string `json:"paymentMethodId"`
	Status          string `json:"status"`
}

// OrderResult is the platform's answer to a submission. Message is surfaced
// verbatim to the customer when Success is false.
type OrderResult struct {
	Success bool            `json:"success"`
	OrderID string          `json:"orderId"`
	Details json.RawMessage `json:"orderDetails,omitempty"`
	Message string          `json:"message,omitempty"`
}

// MenuItem is a browsable product with its variation axes.
type MenuItem struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Price      float64     `json:"price"`
	Image      string      `json:"image,omitempty"`
	Category   string      `json:"category,omitempty"`
	Variations []Variation `json:"variations,omitempty"`
}

// Variation is one customization axis, e.g. "Spice Level".
type Variation struct {
	Name    string            `json:"name"`
	Options []VariationOption `json:"options"`
}

type VariationOption struct {
	Name  string  `json:"name"`
	Price float64 `json:"price,omitempty"`
}

// RegisterInput is the registration form forwarded to the platform.
type RegisterInput struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

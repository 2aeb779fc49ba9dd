package checkout

import (
	"math"
	"strings"

	"savora-storefront/internal/address"
	"savora-storefront/internal/utils"
)

type OrderType string

const (
	OrderTypeDelivery OrderType = "delivery"
	OrderTypeTakeaway OrderType = "takeaway"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// Draft is the transient checkout form. It is rebuilt on every visit to the
// checkout view and never persisted.
type Draft struct {
	BranchID      string        `json:"branch_id"`
	CustomerName  string        `json:"customer_name"`
	Email         string        `json:"email,omitempty"`
	Phone         string        `json:"phone"`
	Notes         string        `json:"notes,omitempty"`
	OrderType     OrderType     `json:"order_type"`
	PaymentMethod PaymentMethod `json:"payment_method"`

	// PaymentMethodID is the provider token collected by the card sub-flow.
	// Required only when PaymentMethod is card.
	PaymentMethodID string `json:"payment_method_id,omitempty"`

	Address *address.Address `json:"address,omitempty"`
}

// FieldError flags one invalid form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate checks fields in display order and reports every failure at once,
// so the customer can fix them together. The first entry is the scroll target.
func (d Draft) Validate() []FieldError {
	var errs []FieldError

	if strings.TrimSpace(d.CustomerName) == "" {
		errs = append(errs, FieldError{"customer_name", "full name is required"})
	}
	if strings.TrimSpace(d.Email) != "" && !utils.ValidEmail(d.Email) {
		errs = append(errs, FieldError{"email", "email address is not valid"})
	}
	if strings.TrimSpace(d.Phone) == "" {
		errs = append(errs, FieldError{"phone", "phone number is required"})
	} else if !utils.ValidPhone(d.Phone) {
		errs = append(errs, FieldError{"phone", "phone number must have 10 to 11 digits"})
	}
	if d.Address == nil || strings.TrimSpace(d.Address.Address) == "" || !d.Address.Valid() {
		errs = append(errs, FieldError{"address", "delivery address is required"})
	}
	if strings.TrimSpace(d.BranchID) == "" {
		errs = append(errs, FieldError{"branch_id", "please select a branch"})
	}
	if d.PaymentMethod == PaymentCard && strings.TrimSpace(d.PaymentMethodID) == "" {
		errs = append(errs, FieldError{"payment_method_id", "card details are required"})
	}

	return errs
}

// Quote is the shared total computation. Every surface that shows money reads
// the same Quote value, from the summary panel to the confirmation.
type Quote struct {
	Subtotal    float64 `json:"subtotal"`
	TaxRate     float64 `json:"tax_rate"`
	TaxAmount   float64 `json:"tax_amount"`
	DeliveryFee float64 `json:"delivery_fee"`
	GrandTotal  float64 `json:"grand_total"`
}

// ComputeQuote derives tax, delivery fee and grand total. taxRate is a
// percentage; deliveryFee applies only to delivery orders.
func ComputeQuote(subtotal, taxRate float64, orderType OrderType, deliveryFee float64) Quote {
	q := Quote{
		Subtotal:  subtotal,
		TaxRate:   taxRate,
		TaxAmount: subtotal * (taxRate / 100),
	}
	if orderType == OrderTypeDelivery {
		q.DeliveryFee = deliveryFee
	}
	q.GrandTotal = q.Subtotal + q.TaxAmount + q.DeliveryFee
	return q
}

// MinorUnits converts the grand total to the payment provider's minor
// currency units.
func (q Quote) MinorUnits() int64 {
	return int64(math.Round(q.GrandTotal * 100))
}

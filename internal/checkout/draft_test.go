package checkout

import (
	"testing"

	"savora-storefront/internal/address"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() Draft {
	return Draft{
		BranchID:      "b1",
		CustomerName:  "Sana Khan",
		Email:         "sana@example.com",
		Phone:         "0300-1234567",
		OrderType:     OrderTypeDelivery,
		PaymentMethod: PaymentCash,
		Address:       &address.Address{Address: "12 Hill Road", Lat: 24.8607, Lng: 67.0011},
	}
}

func TestComputeQuote(t *testing.T) {
	t.Run("Delivery order", func(t *testing.T) {
		q := ComputeQuote(1000, 5, OrderTypeDelivery, 100)

		assert.Equal(t, float64(1000), q.Subtotal)
		assert.Equal(t, float64(5), q.TaxRate)
		assert.InDelta(t, 50, q.TaxAmount, 1e-9)
		assert.Equal(t, float64(100), q.DeliveryFee)
		assert.InDelta(t, 1150, q.GrandTotal, 1e-9)
	})

	t.Run("Takeaway skips the delivery fee", func(t *testing.T) {
		q := ComputeQuote(1000, 5, OrderTypeTakeaway, 100)

		assert.Equal(t, float64(0), q.DeliveryFee)
		assert.InDelta(t, 1050, q.GrandTotal, 1e-9)
	})

	t.Run("Zero tax rate", func(t *testing.T) {
		q := ComputeQuote(1000, 0, OrderTypeTakeaway, 100)
		assert.InDelta(t, 1000, q.GrandTotal, 1e-9)
	})

	t.Run("Deterministic", func(t *testing.T) {
		assert.Equal(t,
			ComputeQuote(750.5, 16, OrderTypeDelivery, 100),
			ComputeQuote(750.5, 16, OrderTypeDelivery, 100),
		)
	})
}

func TestQuote_MinorUnits(t *testing.T) {
	q := ComputeQuote(1000, 5, OrderTypeDelivery, 100)
	assert.Equal(t, int64(115000), q.MinorUnits())

	// Rounding, not truncation.
	assert.Equal(t, int64(1005), Quote{GrandTotal: 10.045}.MinorUnits())
}

func TestDraft_Validate(t *testing.T) {
	t.Run("Valid draft has no errors", func(t *testing.T) {
		assert.Empty(t, validDraft().Validate())
	})

	t.Run("All failures reported together", func(t *testing.T) {
		d := validDraft()
		d.CustomerName = "  "
		d.Phone = "123"

		errs := d.Validate()
		require.Len(t, errs, 2)
		// First failing field is the scroll target.
		assert.Equal(t, "customer_name", errs[0].Field)
		assert.Equal(t, "phone", errs[1].Field)
	})

	t.Run("Email optional but checked when present", func(t *testing.T) {
		d := validDraft()
		d.Email = ""
		assert.Empty(t, d.Validate())

		d.Email = "not-an-email"
		errs := d.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "email", errs[0].Field)
	})

	t.Run("Phone digit range after stripping formatting", func(t *testing.T) {
		d := validDraft()

		d.Phone = "0300 123 4567" // 11 digits
		assert.Empty(t, d.Validate())

		d.Phone = "+92-300-1234567" // 12 digits
		errs := d.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "phone", errs[0].Field)
	})

	t.Run("Address must be geocoded", func(t *testing.T) {
		d := validDraft()
		d.Address = &address.Address{Address: "typed by hand, no coordinates"}

		errs := d.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "address", errs[0].Field)
	})

	t.Run("Missing branch", func(t *testing.T) {
		d := validDraft()
		d.BranchID = ""

		errs := d.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "branch_id", errs[0].Field)
	})

	t.Run("Card requires collected card details", func(t *testing.T) {
		d := validDraft()
		d.PaymentMethod = PaymentCard

		errs := d.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "payment_method_id", errs[0].Field)

		// The draft stays usable after switching back to cash.
		d.PaymentMethod = PaymentCash
		assert.Empty(t, d.Validate())
	})
}

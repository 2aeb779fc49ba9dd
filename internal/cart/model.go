package cart

import "time"

// Line is one distinct product configuration in the cart. ID identifies the
// product together with its chosen variations, so the same product customized
// two ways is two lines.
type Line struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Price              float64           `json:"price"`
	Quantity           int               `json:"quantity"`
	Image              string            `json:"image,omitempty"`
	SelectedVariations map[string]string `json:"selected_variations,omitempty"`
}

// Totals are always derived from the line collection, never patched in place.
type Totals struct {
	Quantity int     `json:"total_quantity"`
	Amount   float64 `json:"total_amount"`
}

// Cart is the view handed to callers after every operation.
type Cart struct {
	Lines  []Line `json:"lines"`
	Totals Totals `json:"totals"`
}

// snapshot is the persisted form.
type snapshot struct {
	Lines      []Line    `json:"lines"`
	CapturedAt time.Time `json:"captured_at"`
}

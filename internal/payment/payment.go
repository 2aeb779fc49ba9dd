package payment

import "context"

// StatusSucceeded is the provider's success sentinel. Anything else on a
// confirmation is treated as failure and blocks order submission.
const StatusSucceeded = "succeeded"

// Intent is a provider-side payment sized to the order's grand total.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// Confirmation is the outcome of charging a tokenized payment method.
type Confirmation struct {
	IntentID string `json:"intent_id"`
	Status   string `json:"status"`
}

func (c Confirmation) Succeeded() bool {
	return c.Status == StatusSucceeded
}

// Gateway wraps the external card-payment provider. Amounts are in minor
// currency units.
type Gateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency, description string) (*Intent, error)
	Confirm(ctx context.Context, clientSecret, paymentMethodID string) (*Confirmation, error)
}

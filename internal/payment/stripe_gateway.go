package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"savora-storefront/internal/logger"

	"go.uber.org/zap"
)

const stripeBaseURL = "https://api.stripe.com"

type stripeGateway struct {
	apiKey     string
	httpClient *http.Client
}

// NewStripeGateway wraps the Stripe payment-intents API.
func NewStripeGateway(apiKey string) Gateway {
	if apiKey == "" {
		logger.L().Warn("Stripe secret key is empty")
	}

	return &stripeGateway{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (g *stripeGateway) CreateIntent(
	ctx context.Context,
	amountMinor int64,
	currency string,
	description string,
) (*Intent, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("gateway", "Stripe"),
		zap.Int64("amount", amountMinor),
		zap.String("currency", currency),
	)

	if amountMinor <= 0 {
		return nil, errors.New("payment amount must be positive")
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountMinor, 10))
	form.Set("currency", strings.ToLower(currency))
	form.Set("description", description)

	log.Info("creating payment intent")

	body, err := g.post(ctx, "/v1/payment_intents", form)
	if err != nil {
		log.Error("intent creation failed", zap.Error(err))
		return nil, err
	}

	var intent Intent
	if err := json.Unmarshal(body, &intent); err != nil {
		log.Error("failed decoding intent response", zap.Error(err))
		return nil, err
	}

	log.Info("payment intent created",
		zap.String("intent_id", intent.ID),
		zap.String("status", intent.Status),
	)

	return &intent, nil
}

func (g *stripeGateway) Confirm(
	ctx context.Context,
	clientSecret string,
	paymentMethodID string,
) (*Confirmation, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("gateway", "Stripe"),
		zap.String("method", "Confirm"),
	)

	intentID := intentIDFromSecret(clientSecret)
	if intentID == "" {
		return nil, errors.New("malformed client secret")
	}

	form := url.Values{}
	form.Set("payment_method", paymentMethodID)
	form.Set("client_secret", clientSecret)

	body, err := g.post(ctx, "/v1/payment_intents/"+intentID+"/confirm", form)
	if err != nil {
		log.Error("confirmation failed", zap.Error(err))
		return nil, err
	}

	var resp struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Error("failed decoding confirmation response", zap.Error(err))
		return nil, err
	}

	log.Info("payment confirmation returned",
		zap.String("intent_id", resp.ID),
		zap.String("status", resp.Status),
	)

	return &Confirmation{IntentID: resp.ID, Status: resp.Status}, nil
}

// intentIDFromSecret derives the intent id from a client secret of the form
// "pi_xxx_secret_yyy".
func intentIDFromSecret(secret string) string {
	idx := strings.Index(secret, "_secret_")
	if idx <= 0 {
		return ""
	}
	return secret[:idx]
}

func (g *stripeGateway) post(ctx context.Context, path string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		stripeBaseURL+path,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, err
	}

	req.SetBasicAuth(g.apiKey, "")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read stripe response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stripe error: %s", string(body))
	}

	return body, nil
}

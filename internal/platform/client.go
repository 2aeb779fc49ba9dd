package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"savora-storefront/internal/auth"
	"savora-storefront/internal/logger"

	"go.uber.org/zap"
)

// Client wraps the remote food-platform API. Every call converts transport
// and backend failures into errors or typed results; nothing here panics up
// to the handlers.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// userPayload tolerates the platform's historical casing drift (Name/name,
// Phone/phone): encoding/json matches field names case-insensitively, so both
// spellings land in one canonical projection here and nowhere else.
type userPayload struct {
	ID    json.Number `json:"id"`
	Name  string      `json:"name"`
	Phone string      `json:"phone"`
}

func (u userPayload) identity() auth.Identity {
	return auth.Identity{ID: u.ID.String(), Name: u.Name, Phone: u.Phone}
}

// Login exchanges phone+password for a bearer token and identity.
func (c *Client) Login(ctx context.Context, phone, password string) (*Credentials, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("client", "Platform"),
		zap.String("method", "Login"),
	)

	var resp struct {
		Token string      `json:"token"`
		User  userPayload `json:"user"`
	}
	err := c.call(ctx, http.MethodPost, "/auth/login", "", map[string]string{
		"phone":    phone,
		"password": password,
	}, &resp)
	if err != nil {
		log.Warn("login failed", zap.Error(err))
		return nil, err
	}

	log.Info("login succeeded", zap.String("user_id", resp.User.ID.String()))
	return &Credentials{Token: resp.Token, User: resp.User.identity()}, nil
}

// Register creates an account and logs it in.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*Credentials, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("client", "Platform"),
		zap.String("method", "Register"),
	)

	var resp struct {
		Token string      `json:"token"`
		User  userPayload `json:"user"`
	}
	if err := c.call(ctx, http.MethodPost, "/auth/register", "", input, &resp); err != nil {
		log.Warn("registration failed", zap.Error(err))
		return nil, err
	}

	return &Credentials{Token: resp.Token, User: resp.User.identity()}, nil
}

// PhoneExists checks whether a phone number already has an account.
func (c *Client) PhoneExists(ctx context.Context, phone string) (bool, error) {
	var resp struct {
		Exists bool `json:"exists"`
	}
	path := "/auth/phone-exists?phone=" + url.QueryEscape(phone)
	if err := c.call(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		return false, err
	}
	return resp.Exists, nil
}

// ListBranches returns every outlet, closed ones included.
func (c *Client) ListBranches(ctx context.Context) ([]Branch, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("client", "Platform"),
		zap.String("method", "ListBranches"),
	)

	var branches []Branch
	if err := c.call(ctx, http.MethodGet, "/branches", "", nil, &branches); err != nil {
		log.Error("branch listing failed", zap.Error(err))
		return nil, err
	}
	return branches, nil
}

// TaxRates fetches per-payment-method tax percentages for a branch.
func (c *Client) TaxRates(ctx context.Context, branchID string) (TaxRates, error) {
	var rates TaxRates
	path := "/branches/" + url.PathEscape(branchID) + "/tax"
	if err := c.call(ctx, http.MethodGet, path, "", nil, &rates); err != nil {
		return TaxRates{}, err
	}
	return rates, nil
}

// Menu fetches the browsable menu.
func (c *Client) Menu(ctx context.Context) ([]MenuItem, error) {
	var items []MenuItem
	if err := c.call(ctx, http.MethodGet, "/menu", "", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SubmitOrder posts the assembled order. A reachable backend always yields an
// OrderResult, success or not; only transport-level failures return an error.
func (c *Client) SubmitOrder(ctx context.Context, token string, order Order) (*OrderResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("client", "Platform"),
		zap.String("method", "SubmitOrder"),
		zap.String("branch_id", order.BranchID),
		zap.Float64("grand_total", order.GrandTotal),
	)

	body, err := json.Marshal(order)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log.Info("submitting order")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("order submission failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read platform response: %w", err)
	}

	var result OrderResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		log.Error("failed decoding order result",
			zap.Int("status", resp.StatusCode), zap.Error(err))
		return nil, fmt.Errorf("platform error: %s", string(respBody))
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		result.Success = false
	}

	log.Info("order result",
		zap.Bool("success", result.Success),
		zap.String("order_id", result.OrderID),
	)

	return &result, nil
}

func (c *Client) call(
	ctx context.Context,
	method string,
	path string,
	token string,
	payload any,
	out any,
) error {

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read platform response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var apiErr struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("platform error: %s", apiErr.Message)
		}
		return fmt.Errorf("platform error: %s", string(respBody))
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(respBody, out)
}

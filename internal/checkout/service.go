package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"savora-storefront/internal/auth"
	"savora-storefront/internal/cart"
	"savora-storefront/internal/logger"
	"savora-storefront/internal/metrics"
	"savora-storefront/internal/payment"
	"savora-storefront/internal/platform"

	"go.uber.org/zap"
)

// State is the orchestrator's position in the linear submission flow.
type State string

const (
	StateDrafting          State = "DRAFTING"
	StateValidating        State = "VALIDATING"
	StateSubmittingPayment State = "SUBMITTING_PAYMENT"
	StateSubmittingOrder   State = "SUBMITTING_ORDER"
	StateSucceeded         State = "SUCCEEDED"
	StateFailed            State = "FAILED"
)

var (
	ErrSubmitInFlight = errors.New("an order submission is already in progress")
)

const defaultCurrency = "PKR"

// genericFailure is shown when something broke without a customer-readable
// backend message.
const genericFailure = "something went wrong, please try again"

// TaxSource provides branch tax percentages.
type TaxSource interface {
	TaxRates(ctx context.Context, branchID string) (platform.TaxRates, error)
}

// OrderSubmitter posts the assembled order to the platform.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, token string, order platform.Order) (*platform.OrderResult, error)
}

// Confirmation is the successful-submission handoff to the confirmation view.
type Confirmation struct {
	OrderID  string          `json:"order_id"`
	Details  json.RawMessage `json:"order_details,omitempty"`
	Quote    Quote           `json:"quote"`
	PlacedAt time.Time       `json:"placed_at"`
}

// Result reports where a submission ended up. Exactly one of FieldErrors,
// Message or Confirmation is meaningful depending on State.
type Result struct {
	State        State         `json:"state"`
	FieldErrors  []FieldError  `json:"field_errors,omitempty"`
	Message      string        `json:"message,omitempty"`
	Confirmation *Confirmation `json:"confirmation,omitempty"`
}

// Service orchestrates checkout: it reads the cart and session stores,
// computes the quote, validates the draft, collects card payment when asked
// for, submits the order, and clears the cart on success.
type Service struct {
	carts       *cart.Store
	sessions    *auth.Store
	taxes       TaxSource
	orders      OrderSubmitter
	gateway     payment.Gateway
	deliveryFee float64
	stats       *metrics.Checkout

	mu            sync.Mutex
	inflight      map[string]bool
	confirmations map[string]*Confirmation
}

func NewService(
	carts *cart.Store,
	sessions *auth.Store,
	taxes TaxSource,
	orders OrderSubmitter,
	gateway payment.Gateway,
	deliveryFee float64,
	stats *metrics.Checkout,
) *Service {
	return &Service{
		carts:         carts,
		sessions:      sessions,
		taxes:         taxes,
		orders:        orders,
		gateway:       gateway,
		deliveryFee:   deliveryFee,
		stats:         stats,
		inflight:      make(map[string]bool),
		confirmations: make(map[string]*Confirmation),
	}
}

// taxRate resolves the branch-and-method rate. A fetch failure degrades to 0%
// on purpose: tax display is non-critical and must not block checkout. The
// failure is logged, not surfaced.
func (s *Service) taxRate(ctx context.Context, branchID string, method PaymentMethod) float64 {
	if branchID == "" {
		return 0
	}

	rates, err := s.taxes.TaxRates(ctx, branchID)
	if err != nil {
		logger.FromCtx(ctx).Warn("tax lookup failed, defaulting to 0%",
			zap.String("branch_id", branchID), zap.Error(err))
		return 0
	}

	if method == PaymentCard {
		return rates.Card
	}
	return rates.Cash
}

// Quote computes the totals for the current cart and draft. The same value
// feeds the summary panel, the submission payload and the confirmation.
func (s *Service) Quote(ctx context.Context, shopper string, d Draft) (Quote, error) {
	c, err := s.carts.Get(ctx, shopper)
	if err != nil {
		return Quote{}, err
	}

	rate := s.taxRate(ctx, d.BranchID, d.PaymentMethod)
	return ComputeQuote(c.Totals.Amount, rate, d.OrderType, s.deliveryFee), nil
}

// Submit runs the full flow. It never returns an error for business-level
// failures; those land in the Result so the view can keep the draft and cart
// for a retry. Only infrastructure faults (store unreachable) are errors.
func (s *Service) Submit(ctx context.Context, shopper string, d Draft) (*Result, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Checkout"),
		zap.String("method", "Submit"),
	)

	if !s.acquire(shopper) {
		// Guard against double submission from a double click.
		return nil, ErrSubmitInFlight
	}
	defer s.release(shopper)

	c, err := s.carts.Get(ctx, shopper)
	if err != nil {
		return nil, err
	}
	if len(c.Lines) == 0 {
		return &Result{State: StateDrafting, Message: "your cart is empty"}, nil
	}

	// VALIDATING
	if errs := d.Validate(); len(errs) > 0 {
		s.stats.Rejected.Inc()
		log.Info("draft rejected", zap.Int("field_errors", len(errs)))
		return &Result{State: StateDrafting, FieldErrors: errs}, nil
	}

	s.stats.Submitted.Inc()

	quote := ComputeQuote(
		c.Totals.Amount,
		s.taxRate(ctx, d.BranchID, d.PaymentMethod),
		d.OrderType,
		s.deliveryFee,
	)

	order := buildOrder(c, d, quote)

	// SUBMITTING_PAYMENT (card only). No order is created without a
	// confirmed payment.
	if d.PaymentMethod == PaymentCard {
		details, failed := s.collectPayment(ctx, shopper, d, quote)
		if failed != nil {
			s.stats.Failed.Inc()
			return failed, nil
		}
		order.PaymentDetails = details
	}

	// SUBMITTING_ORDER
	var token string
	if sess, err := s.sessions.Session(ctx, shopper); err == nil && sess != nil {
		token = sess.Token
	}

	res, err := s.orders.SubmitOrder(ctx, token, order)
	if err != nil {
		s.stats.Failed.Inc()
		log.Error("order submission failed", zap.Error(err))
		return &Result{State: StateFailed, Message: genericFailure}, nil
	}
	if !res.Success {
		s.stats.Failed.Inc()
		msg := res.Message
		if msg == "" {
			msg = genericFailure
		}
		log.Warn("order rejected by platform", zap.String("message", res.Message))
		return &Result{State: StateFailed, Message: msg}, nil
	}

	// SUCCEEDED: clear the cart and hand off to the confirmation view.
	if err := s.carts.Clear(ctx, shopper); err != nil {
		log.Error("failed to clear cart after order", zap.Error(err))
	}

	conf := &Confirmation{
		OrderID:  res.OrderID,
		Details:  res.Details,
		Quote:    quote,
		PlacedAt: time.Now().UTC(),
	}
	s.storeConfirmation(shopper, conf)
	s.stats.Succeeded.Inc()

	log.Info("order placed",
		zap.String("order_id", res.OrderID),
		zap.Float64("grand_total", quote.GrandTotal),
	)

	return &Result{State: StateSucceeded, Confirmation: conf}, nil
}

// collectPayment runs the card sub-flow. A non-nil Result means the whole
// submission aborts and the view returns to drafting with the message shown.
func (s *Service) collectPayment(
	ctx context.Context,
	shopper string,
	d Draft,
	quote Quote,
) (*platform.PaymentDetails, *Result) {

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Checkout"),
		zap.String("state", string(StateSubmittingPayment)),
	)

	intent, err := s.gateway.CreateIntent(
		ctx,
		quote.MinorUnits(),
		defaultCurrency,
		fmt.Sprintf("storefront order for %s", shopper),
	)
	if err != nil {
		log.Error("payment intent creation failed", zap.Error(err))
		return nil, &Result{State: StateFailed, Message: "payment could not be started, please try again"}
	}

	conf, err := s.gateway.Confirm(ctx, intent.ClientSecret, d.PaymentMethodID)
	if err != nil {
		log.Error("payment confirmation failed", zap.Error(err))
		return nil, &Result{State: StateFailed, Message: "payment failed, please try again or pay with cash"}
	}
	if !conf.Succeeded() {
		log.Warn("payment not succeeded", zap.String("status", conf.Status))
		return nil, &Result{State: StateFailed, Message: "payment was declined, please try another card"}
	}

	return &platform.PaymentDetails{
		IntentID:        conf.IntentID,
		PaymentMethodID: d.PaymentMethodID,
		Status:          conf.Status,
	}, nil
}

// Confirmation takes the pending confirmation for a shopper, if any. It is
// consumed on read; a direct revisit of the confirmation view redirects home.
func (s *Service) Confirmation(shopper string) (*Confirmation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conf, ok := s.confirmations[shopper]
	if ok {
		delete(s.confirmations, shopper)
	}
	return conf, ok
}

func buildOrder(c cart.Cart, d Draft, quote Quote) platform.Order {
	items := make([]platform.OrderItem, 0, len(c.Lines))
	for _, l := range c.Lines {
		items = append(items, platform.OrderItem{
			ID:                 l.ID,
			Name:               l.Name,
			Price:              l.Price,
			Quantity:           l.Quantity,
			SelectedVariations: l.SelectedVariations,
		})
	}

	order := platform.Order{
		Items:           items,
		CustomerName:    d.CustomerName,
		Email:           d.Email,
		Phone:           d.Phone,
		Notes:           d.Notes,
		PaymentMethod:   string(d.PaymentMethod),
		OrderType:       string(d.OrderType),
		BranchID:        d.BranchID,
		Total:           quote.Subtotal,
		DeliveryCharges: quote.DeliveryFee,
		Tax:             quote.TaxAmount,
		GrandTotal:      quote.GrandTotal,
	}
	if d.Address != nil {
		order.Address = d.Address.Address
		order.Lat = d.Address.Lat
		order.Lng = d.Address.Lng
	}
	return order
}

func (s *Service) acquire(shopper string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inflight[shopper] {
		return false
	}
	s.inflight[shopper] = true
	return true
}

func (s *Service) release(shopper string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, shopper)
}

func (s *Service) storeConfirmation(shopper string, conf *Confirmation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmations[shopper] = conf
}

package checkout

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/r70610363/swiftcart-backend/internal/cart"
	"github.com/r70610363/swiftcart-backend/internal/notifications"
	"github.com/r70610363/swiftcart-backend/internal/orders"
	"github.com/r70610363/swiftcart-backend/internal/payments"
	"github.com/r70610363/swiftcart-backend/pkg/config"
	"github.com/r70610363/swiftcart-backend/pkg/errors"
	"github.com/r70610363/swiftcart-backend/pkg/kvstore"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
	"github.com/r70610363/swiftcart-backend/pkg/metrics"
	"github.com/r70610363/swiftcart-backend/pkg/models"
	"github.com/r70610363/swiftcart-backend/pkg/types"
)

// Totals is the priced breakdown of the staged items.
type Totals struct {
	Subtotal int `json:"subtotal"`
	Discount int `json:"discount"`
	Shipping int `json:"shipping"`
	Total    int `json:"total"`
}

// Result is a finished checkout: the persisted order plus the payment
// session that authorized it.
type Result struct {
	Order   models.Order     `json:"order"`
	Session payments.Session `json:"session"`
}

// Service stages cart lines for purchase and drives them through payment to
// a persisted order. The staged snapshot is independent of the live cart:
// edits after staging do not change what gets bought.
type Service interface {
	Prepare(ctx context.Context, items []models.CartItem) error
	Staged(ctx context.Context) []models.CartItem
	Totals(ctx context.Context) Totals
	Submit(ctx context.Context, user models.User, address types.Address, paymentMethod string) (Result, error)
	Abandon(ctx context.Context) error
}

type service struct {
	store   kvstore.Store
	cart    cart.Service
	orders  orders.Service
	gateway payments.Gateway
	feed    notifications.Service
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
	cfg     config.CheckoutConfig
	now     func() time.Time
	sleep   func(context.Context, time.Duration) error

	inFlight atomic.Bool

	mu     sync.RWMutex
	staged []models.CartItem
}

func NewService(ctx context.Context, store kvstore.Store, cartSvc cart.Service, orderSvc orders.Service, gateway payments.Gateway, feed notifications.Service, cfg config.CheckoutConfig, logg *logger.Logger, met *metrics.StorefrontMetrics) (Service, error) {
	if store == nil {
		return nil, errors.New(errors.CodeInternal, "checkout service requires a store")
	}
	if cartSvc == nil || orderSvc == nil || gateway == nil {
		return nil, errors.New(errors.CodeInternal, "checkout service requires cart, orders and gateway")
	}
	if logg == nil {
		return nil, errors.New(errors.CodeInternal, "checkout service requires a logger")
	}

	s := &service{
		store:   store,
		cart:    cartSvc,
		orders:  orderSvc,
		gateway: gateway,
		feed:    feed,
		logg:    logg,
		metrics: met,
		cfg:     cfg,
		now:     time.Now,
		sleep:   sleepCtx,
	}
	kvstore.GetJSON(ctx, store, logg, kvstore.KeyCheckout, &s.staged)
	return s, nil
}

// Prepare snapshots the lines to buy. The copy is deep enough that later
// cart mutations never leak into a staged purchase.
func (s *service) Prepare(ctx context.Context, items []models.CartItem) error {
	if len(items) == 0 {
		return errors.New(errors.CodeValidation, "nothing to check out")
	}

	snapshot := make([]models.CartItem, len(items))
	copy(snapshot, items)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := kvstore.SetJSON(ctx, s.store, kvstore.KeyCheckout, snapshot); err != nil {
		return err
	}
	s.staged = snapshot
	return nil
}

func (s *service) Staged(ctx context.Context) []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.CartItem, len(s.staged))
	copy(out, s.staged)
	return out
}

// Totals prices the staged snapshot. Shipping is waived strictly above the
// free-shipping threshold.
func (s *service) Totals(ctx context.Context) Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subtotal := decimal.Zero
	discount := decimal.Zero
	for _, item := range s.staged {
		qty := decimal.NewFromInt(int64(item.Quantity))
		price := decimal.NewFromInt(int64(item.Product.Price))
		subtotal = subtotal.Add(price.Mul(qty))
		if item.Product.OriginalPrice > item.Product.Price {
			saved := decimal.NewFromInt(int64(item.Product.OriginalPrice)).Sub(price)
			discount = discount.Add(saved.Mul(qty))
		}
	}

	sub := int(subtotal.IntPart())
	shipping := s.cfg.ShippingFee
	if sub > s.cfg.FreeShippingThreshold {
		shipping = 0
	}
	return Totals{
		Subtotal: sub,
		Discount: int(discount.IntPart()),
		Shipping: shipping,
		Total:    sub + shipping,
	}
}

// Submit pays for the staged snapshot and, on success, persists the order,
// removes exactly the bought (id, color) lines from the cart and clears the
// snapshot. Only one submit runs at a time; a failed one can be retried.
func (s *service) Submit(ctx context.Context, user models.User, address types.Address, paymentMethod string) (Result, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return Result{}, errors.New(errors.CodeStateConflict, "a checkout is already in progress")
	}
	defer s.inFlight.Store(false)

	staged := s.Staged(ctx)
	if len(staged) == 0 {
		return Result{}, errors.New(errors.CodeStateConflict, "no items staged for checkout")
	}
	if address.Empty() {
		return Result{}, errors.New(errors.CodeValidation, "shipping address is required")
	}
	if paymentMethod == "" {
		paymentMethod = "UPI"
	}

	totals := s.Totals(ctx)
	placedAt := s.now()
	userID := user.ID
	if userID == "" {
		userID = "guest"
	}
	draft := models.Order{
		ID:            fmt.Sprintf("ORD-%d", placedAt.UnixMilli()),
		UserID:        userID,
		Items:         staged,
		Total:         totals.Total,
		Date:          placedAt,
		Address:       address,
		PaymentMethod: paymentMethod,
	}

	ctx = s.logg.WithOrderID(ctx, draft.ID)
	session, err := s.gateway.Initiate(ctx, totals.Total, draft.ID, user.Email, user.Mobile)
	if err != nil {
		return Result{}, err
	}

	if session.Simulated {
		// The simulated gateway mimics real authorization latency.
		if err := s.sleep(ctx, s.cfg.SimulateDelay); err != nil {
			return Result{}, errors.Wrap(errors.CodeInternal, err, "checkout interrupted")
		}
		s.logg.Warn(ctx, "order completed against a simulated payment session")
	}

	created, err := s.orders.Create(ctx, draft)
	if err != nil {
		return Result{}, err
	}

	if err := s.cart.RemovePurchased(ctx, staged); err != nil {
		s.logg.Error(ctx, "purchased lines not removed from cart", err)
	}
	if err := s.clearStaged(ctx); err != nil {
		s.logg.Error(ctx, "checkout snapshot not cleared", err)
	}
	if s.feed != nil {
		s.feed.Add(ctx, "Order Placed Successfully", fmt.Sprintf("Your order %s has been confirmed.", created.ID), "/my-orders")
	}

	s.logg.Info(ctx, "checkout completed")
	return Result{Order: created, Session: session}, nil
}

// Abandon throws the staged snapshot away without buying anything.
func (s *service) Abandon(ctx context.Context) error {
	return s.clearStaged(ctx)
}

func (s *service) clearStaged(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Remove(ctx, kvstore.KeyCheckout); err != nil {
		return errors.Wrap(errors.CodeStorage, err, "clear checkout snapshot")
	}
	s.staged = nil
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

package checkout

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/r70610363/swiftcart-backend/internal/cart"
	"github.com/r70610363/swiftcart-backend/internal/notifications"
	"github.com/r70610363/swiftcart-backend/internal/orders"
	"github.com/r70610363/swiftcart-backend/internal/payments"
	"github.com/r70610363/swiftcart-backend/pkg/config"
	"github.com/r70610363/swiftcart-backend/pkg/enums"
	"github.com/r70610363/swiftcart-backend/pkg/errors"
	"github.com/r70610363/swiftcart-backend/pkg/kvstore"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
	"github.com/r70610363/swiftcart-backend/pkg/models"
	"github.com/r70610363/swiftcart-backend/pkg/types"
	"github.com/rs/zerolog"
)

var (
	phone = models.Product{ID: "p1", Title: "Phone", Price: 400, OriginalPrice: 500, Colors: []string{"Black", "Blue"}}
	cable = models.Product{ID: "p2", Title: "Cable", Price: 60}
)

func shipTo() types.Address {
	return types.Address{FullName: "Asha", Phone: "8880001111", Line1: "14 MG Road", City: "Jaipur", State: "RJ", PostalCode: "302001"}
}

// failingGateway rejects every initiation.
type failingGateway struct{}

func (failingGateway) Initiate(ctx context.Context, amount int, orderID, email, mobile string) (payments.Session, error) {
	return payments.Session{}, errors.New(errors.CodeDependency, "gateway down")
}

type fixture struct {
	svc   *service
	cart  cart.Service
	store *kvstore.Memory
	feed  notifications.Service
}

func newFixture(t *testing.T, gw payments.Gateway) *fixture {
	t.Helper()
	ctx := context.Background()
	store := kvstore.NewMemory()
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})

	cartSvc, err := cart.NewService(ctx, store, logg, nil)
	if err != nil {
		t.Fatalf("cart.NewService: %v", err)
	}
	orderSvc, err := orders.NewService(ctx, store, nil, logg, nil)
	if err != nil {
		t.Fatalf("orders.NewService: %v", err)
	}
	if gw == nil {
		gw, err = payments.NewGateway(nil, true, logg, nil)
		if err != nil {
			t.Fatalf("payments.NewGateway: %v", err)
		}
	}
	feed := notifications.NewService()

	cfg := config.CheckoutConfig{FreeShippingThreshold: 500, ShippingFee: 50, SimulateOnFailure: true, SimulateDelay: 2 * time.Second}
	svc, err := NewService(ctx, store, cartSvc, orderSvc, gw, feed, cfg, logg, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	impl := svc.(*service)
	impl.sleep = func(context.Context, time.Duration) error { return nil }
	return &fixture{svc: impl, cart: cartSvc, store: store, feed: feed}
}

func TestTotalsShippingBoundary(t *testing.T) {
	fx := newFixture(t, nil)
	ctx := context.Background()

	// Subtotal exactly at the threshold still pays shipping.
	fx.svc.Prepare(ctx, []models.CartItem{{Product: models.Product{ID: "a", Price: 500}, Quantity: 1}})
	got := fx.svc.Totals(ctx)
	if got.Shipping != 50 || got.Total != 550 {
		t.Fatalf("at threshold: %+v, want shipping 50", got)
	}

	// One rupee over rides free.
	fx.svc.Prepare(ctx, []models.CartItem{{Product: models.Product{ID: "a", Price: 501}, Quantity: 1}})
	got = fx.svc.Totals(ctx)
	if got.Shipping != 0 || got.Total != 501 {
		t.Fatalf("over threshold: %+v, want free shipping", got)
	}
}

func TestTotalsDiscountFromOriginalPrice(t *testing.T) {
	fx := newFixture(t, nil)
	ctx := context.Background()

	fx.svc.Prepare(ctx, []models.CartItem{{Product: phone, Quantity: 2, SelectedColor: "Black"}})
	got := fx.svc.Totals(ctx)
	if got.Subtotal != 800 {
		t.Fatalf("subtotal = %d, want 800", got.Subtotal)
	}
	if got.Discount != 200 {
		t.Fatalf("discount = %d, want 200", got.Discount)
	}
	if got.Total != 800 {
		t.Fatalf("total = %d, want 800 with free shipping", got.Total)
	}
}

func TestPrepareSnapshotIsIndependentOfCart(t *testing.T) {
	fx := newFixture(t, nil)
	ctx := context.Background()

	fx.cart.Add(ctx, phone, "Black")
	fx.svc.Prepare(ctx, fx.cart.Items(ctx))

	// Cart keeps moving after staging.
	fx.cart.UpdateQuantity(ctx, "p1", 5, "Black")
	fx.cart.Add(ctx, cable, "")

	staged := fx.svc.Staged(ctx)
	if len(staged) != 1 || staged[0].Quantity != 1 {
		t.Fatalf("staged snapshot drifted: %+v", staged)
	}
}

func TestSubmitCompletesOrder(t *testing.T) {
	fx := newFixture(t, nil)
	ctx := context.Background()

	fx.cart.Add(ctx, phone, "Black")
	fx.cart.Add(ctx, phone, "Blue")
	fx.cart.Add(ctx, cable, "")
	fx.svc.Prepare(ctx, []models.CartItem{{Product: phone, Quantity: 1, SelectedColor: "Black"}})

	got, err := fx.svc.Submit(ctx, models.User{ID: "u1", Email: "a@b.c"}, shipTo(), "UPI - phonepe")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if got.Order.Status != enums.OrderStatusOrdered {
		t.Fatalf("status = %s, want Ordered", got.Order.Status)
	}
	if got.Order.Total != 450 {
		t.Fatalf("total = %d, want 400+50 shipping", got.Order.Total)
	}
	if !got.Session.Simulated {
		t.Fatal("offline gateway should yield a simulated session")
	}

	// Only the bought (id, color) line left the cart.
	items := fx.cart.Items(ctx)
	if len(items) != 2 {
		t.Fatalf("cart has %d lines, want 2 survivors", len(items))
	}
	for _, item := range items {
		if item.Product.ID == "p1" && item.SelectedColor == "Black" {
			t.Fatal("bought line still in cart")
		}
	}

	if len(fx.svc.Staged(ctx)) != 0 {
		t.Fatal("snapshot survived completion")
	}
	if _, found, _ := fx.store.Get(ctx, kvstore.KeyCheckout); found {
		t.Fatal("persisted snapshot survived completion")
	}

	feed := fx.feed.List(ctx)
	if len(feed) != 1 || feed[0].Title != "Order Placed Successfully" {
		t.Fatalf("notification missing: %+v", feed)
	}
}

func TestSubmitWithoutStagedItems(t *testing.T) {
	fx := newFixture(t, nil)

	_, err := fx.svc.Submit(context.Background(), models.User{ID: "u1"}, shipTo(), "UPI")
	if domainErr := errors.As(err); domainErr == nil || domainErr.Code() != errors.CodeStateConflict {
		t.Fatalf("got %v, want state-conflict code", err)
	}
}

func TestSubmitRequiresAddress(t *testing.T) {
	fx := newFixture(t, nil)
	ctx := context.Background()
	fx.svc.Prepare(ctx, []models.CartItem{{Product: cable, Quantity: 1}})

	_, err := fx.svc.Submit(ctx, models.User{ID: "u1"}, types.Address{}, "UPI")
	if domainErr := errors.As(err); domainErr == nil || domainErr.Code() != errors.CodeValidation {
		t.Fatalf("got %v, want validation code", err)
	}
}

func TestSubmitFailureKeepsSnapshotForRetry(t *testing.T) {
	fx := newFixture(t, failingGateway{})
	ctx := context.Background()

	fx.cart.Add(ctx, cable, "")
	fx.svc.Prepare(ctx, fx.cart.Items(ctx))

	_, err := fx.svc.Submit(ctx, models.User{ID: "u1"}, shipTo(), "UPI")
	if domainErr := errors.As(err); domainErr == nil || domainErr.Code() != errors.CodeDependency {
		t.Fatalf("got %v, want dependency code", err)
	}

	if len(fx.svc.Staged(ctx)) != 1 {
		t.Fatal("snapshot lost on failed submit")
	}
	if len(fx.cart.Items(ctx)) != 1 {
		t.Fatal("cart drained on failed submit")
	}
	if fx.svc.inFlight.Load() {
		t.Fatal("in-flight latch stuck after failure")
	}
}

func TestAbandonClearsSnapshot(t *testing.T) {
	fx := newFixture(t, nil)
	ctx := context.Background()

	fx.svc.Prepare(ctx, []models.CartItem{{Product: cable, Quantity: 1}})
	if err := fx.svc.Abandon(ctx); err != nil {
		t.Fatalf("Abandon: %v", err)
	}
	if len(fx.svc.Staged(ctx)) != 0 {
		t.Fatal("snapshot survived Abandon")
	}
}

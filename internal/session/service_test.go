package session

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/r70610363/swiftcart-backend/internal/cart"
	"github.com/r70610363/swiftcart-backend/internal/checkout"
	"github.com/r70610363/swiftcart-backend/internal/notifications"
	"github.com/r70610363/swiftcart-backend/internal/orders"
	"github.com/r70610363/swiftcart-backend/internal/payments"
	"github.com/r70610363/swiftcart-backend/internal/users"
	"github.com/r70610363/swiftcart-backend/pkg/auth"
	"github.com/r70610363/swiftcart-backend/pkg/config"
	"github.com/r70610363/swiftcart-backend/pkg/enums"
	"github.com/r70610363/swiftcart-backend/pkg/errors"
	"github.com/r70610363/swiftcart-backend/pkg/kvstore"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
	"github.com/r70610363/swiftcart-backend/pkg/models"
	"github.com/r70610363/swiftcart-backend/pkg/types"
	"github.com/rs/zerolog"
)

func jwtConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "swiftcart", ExpirationMinutes: 60}
}

type fixture struct {
	session   Service
	directory users.Service
	cart      cart.Service
	checkout  checkout.Service
	feed      notifications.Service
	store     *kvstore.Memory
	logg      *logger.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := kvstore.NewMemory()
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})

	admin := config.AdminConfig{Emails: []string{"admin@flipkart.com"}, Mobiles: []string{"9999999999"}}
	directory, err := users.NewService(ctx, store, nil, admin, logg, nil)
	if err != nil {
		t.Fatalf("users.NewService: %v", err)
	}
	cartSvc, err := cart.NewService(ctx, store, logg, nil)
	if err != nil {
		t.Fatalf("cart.NewService: %v", err)
	}
	orderSvc, err := orders.NewService(ctx, store, nil, logg, nil)
	if err != nil {
		t.Fatalf("orders.NewService: %v", err)
	}
	gw, err := payments.NewGateway(nil, true, logg, nil)
	if err != nil {
		t.Fatalf("payments.NewGateway: %v", err)
	}
	feed := notifications.NewService()
	checkoutSvc, err := checkout.NewService(ctx, store, cartSvc, orderSvc, gw, feed,
		config.CheckoutConfig{FreeShippingThreshold: 500, ShippingFee: 50, SimulateDelay: time.Millisecond}, logg, nil)
	if err != nil {
		t.Fatalf("checkout.NewService: %v", err)
	}

	svc, err := NewService(ctx, store, directory, cartSvc, checkoutSvc, feed, jwtConfig(), logg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return &fixture{session: svc, directory: directory, cart: cartSvc, checkout: checkoutSvc, feed: feed, store: store, logg: logg}
}

func TestLoginMintsTokenWithResolvedRole(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	user, token, err := fx.session.Login(ctx, "admin@flipkart.com")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Role != enums.UserRoleAdmin {
		t.Fatalf("role = %s, want ADMIN", user.Role)
	}

	claims, err := auth.ParseAccessToken(jwtConfig(), token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.Role != "ADMIN" || claims.UserID != user.ID {
		t.Fatalf("claims = %+v", claims)
	}

	if got, ok := fx.session.CurrentUser(ctx); !ok || got.ID != user.ID {
		t.Fatal("session user not set")
	}
	if _, found, _ := fx.store.Get(ctx, kvstore.KeyUser); !found {
		t.Fatal("user not persisted")
	}
}

func TestLoginUnknownIdentifier(t *testing.T) {
	fx := newFixture(t)

	_, _, err := fx.session.Login(context.Background(), "nobody@example.com")
	if domainErr := errors.As(err); domainErr == nil || domainErr.Code() != errors.CodeNotFound {
		t.Fatalf("got %v, want not-found code", err)
	}
	if _, ok := fx.session.CurrentUser(context.Background()); ok {
		t.Fatal("failed login left a session user")
	}
}

func TestLoginClosesModal(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.session.OpenLoginModal(ctx)
	if !fx.session.LoginModalOpen(ctx) {
		t.Fatal("modal should be open")
	}
	fx.session.Login(ctx, "admin@flipkart.com")
	if fx.session.LoginModalOpen(ctx) {
		t.Fatal("modal should close on login")
	}
}

func TestLogoutTearsDownEverything(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	product := models.Product{ID: "p1", Price: 100, Colors: []string{"Black"}}

	fx.session.Login(ctx, "admin@flipkart.com")
	fx.cart.Add(ctx, product, "")
	fx.cart.ToggleWishlist(ctx, product)
	fx.checkout.Prepare(ctx, fx.cart.Items(ctx))
	fx.feed.Add(ctx, "hello", "", "")
	fx.session.SaveAddress(ctx, types.Address{FullName: "Asha", Line1: "14 MG Road", City: "Jaipur", PostalCode: "302001"})

	if err := fx.session.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if _, ok := fx.session.CurrentUser(ctx); ok {
		t.Fatal("user survived logout")
	}
	if _, ok := fx.session.Address(ctx); ok {
		t.Fatal("address survived logout")
	}
	if len(fx.cart.Items(ctx)) != 0 || len(fx.cart.Wishlist(ctx)) != 0 {
		t.Fatal("ledger survived logout")
	}
	if len(fx.checkout.Staged(ctx)) != 0 {
		t.Fatal("checkout snapshot survived logout")
	}
	if len(fx.feed.List(ctx)) != 0 {
		t.Fatal("notifications survived logout")
	}
	for _, key := range []string{kvstore.KeyUser, kvstore.KeyCart, kvstore.KeyWishlist, kvstore.KeyCheckout} {
		if _, found, _ := fx.store.Get(ctx, key); found {
			t.Fatalf("key %s survived logout", key)
		}
	}

	// A fresh login starts clean, nothing resurrects.
	fx.session.Login(ctx, "admin@flipkart.com")
	if len(fx.cart.Items(ctx)) != 0 {
		t.Fatal("cart resurrected on re-login")
	}
}

func TestSessionRehydratesPersistedUser(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	user, _, err := fx.session.Login(ctx, "admin@flipkart.com")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	reloaded, err := NewService(ctx, fx.store, fx.directory, fx.cart, fx.checkout, fx.feed, jwtConfig(), fx.logg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	got, ok := reloaded.CurrentUser(ctx)
	if !ok || got.ID != user.ID {
		t.Fatalf("persisted session not rehydrated: %+v ok=%v", got, ok)
	}
}

func TestSaveAddressValidation(t *testing.T) {
	fx := newFixture(t)

	err := fx.session.SaveAddress(context.Background(), types.Address{})
	if domainErr := errors.As(err); domainErr == nil || domainErr.Code() != errors.CodeValidation {
		t.Fatalf("got %v, want validation code", err)
	}
}

func TestUpdateProfileRefreshesSessionUser(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	if _, err := fx.directory.Register(ctx, "Asha", "asha@example.com", "8880001111"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	user, _, err := fx.session.Login(ctx, "asha@example.com")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	user.Name = "Asha K"
	updated, err := fx.session.UpdateProfile(ctx, user)
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Name != "Asha K" {
		t.Fatalf("name = %q, want updated", updated.Name)
	}
	if got, _ := fx.session.CurrentUser(ctx); got.Name != "Asha K" {
		t.Fatal("session user not refreshed")
	}

	reloaded, err := NewService(ctx, fx.store, fx.directory, fx.cart, fx.checkout, fx.feed, jwtConfig(), fx.logg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	if got, _ := reloaded.CurrentUser(ctx); got.Name != "Asha K" {
		t.Fatal("persisted session user not refreshed")
	}
}

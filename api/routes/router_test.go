package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/r70610363/swiftcart-backend/internal/banners"
	"github.com/r70610363/swiftcart-backend/internal/cart"
	"github.com/r70610363/swiftcart-backend/internal/catalog"
	checkoutsvc "github.com/r70610363/swiftcart-backend/internal/checkout"
	"github.com/r70610363/swiftcart-backend/internal/notifications"
	"github.com/r70610363/swiftcart-backend/internal/orders"
	"github.com/r70610363/swiftcart-backend/internal/otp"
	"github.com/r70610363/swiftcart-backend/internal/payments"
	sessionsvc "github.com/r70610363/swiftcart-backend/internal/session"
	"github.com/r70610363/swiftcart-backend/internal/users"
	"github.com/r70610363/swiftcart-backend/pkg/auth"
	"github.com/r70610363/swiftcart-backend/pkg/config"
	"github.com/r70610363/swiftcart-backend/pkg/enums"
	"github.com/r70610363/swiftcart-backend/pkg/kvstore"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{Secret: "router-test-secret", Issuer: "swiftcart", ExpirationMinutes: 60},
		Checkout: config.CheckoutConfig{
			FreeShippingThreshold: 500,
			ShippingFee:           50,
			SimulateOnFailure:     true,
			SimulateDelay:         time.Millisecond,
		},
		Admin: config.AdminConfig{Emails: []string{"admin@flipkart.com"}, Mobiles: []string{"9999999999"}},
		OTP:   config.OTPConfig{TTL: 5 * time.Minute, Digits: 4},
	}
}

func newTestRouter(t *testing.T) (http.Handler, *config.Config) {
	t.Helper()
	ctx := context.Background()
	cfg := testConfig()
	store := kvstore.NewMemory()
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})

	catalogSvc, err := catalog.NewService(ctx, store, nil, logg, nil)
	if err != nil {
		t.Fatalf("catalog.NewService: %v", err)
	}
	cartSvc, err := cart.NewService(ctx, store, logg, nil)
	if err != nil {
		t.Fatalf("cart.NewService: %v", err)
	}
	ordersSvc, err := orders.NewService(ctx, store, nil, logg, nil)
	if err != nil {
		t.Fatalf("orders.NewService: %v", err)
	}
	usersSvc, err := users.NewService(ctx, store, nil, cfg.Admin, logg, nil)
	if err != nil {
		t.Fatalf("users.NewService: %v", err)
	}
	otpSvc, err := otp.NewService(otp.NewMemoryChallengeStore(), nil, cfg.OTP, config.SecurityConfig{
		ArgonMemoryKB: 8, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 8, ArgonKeyLen: 16,
	}, logg, nil)
	if err != nil {
		t.Fatalf("otp.NewService: %v", err)
	}
	bannersSvc, err := banners.NewService(ctx, store, logg)
	if err != nil {
		t.Fatalf("banners.NewService: %v", err)
	}
	feed := notifications.NewService()
	gw, err := payments.NewGateway(nil, cfg.Checkout.SimulateOnFailure, logg, nil)
	if err != nil {
		t.Fatalf("payments.NewGateway: %v", err)
	}
	checkoutSvc, err := checkoutsvc.NewService(ctx, store, cartSvc, ordersSvc, gw, feed, cfg.Checkout, logg, nil)
	if err != nil {
		t.Fatalf("checkout.NewService: %v", err)
	}
	sessionSvc, err := sessionsvc.NewService(ctx, store, usersSvc, cartSvc, checkoutSvc, feed, cfg.JWT, logg)
	if err != nil {
		t.Fatalf("session.NewService: %v", err)
	}

	handler := NewRouter(cfg, logg, store, nil,
		catalogSvc, cartSvc, ordersSvc, usersSvc, otpSvc, bannersSvc, gw, feed, checkoutSvc, sessionSvc)
	return handler, cfg
}

func mintToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := auth.MintAccessToken(cfg.JWT, time.Now(), auth.AccessTokenPayload{
		UserID: "u-router-test",
		Name:   "Router Test",
		Role:   role,
		JTI:    uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestListProductsServesSeedCatalog(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var body struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Data) == 0 {
		t.Fatal("expected a non-empty seeded catalog")
	}
}

func TestCartRoundTripThroughRouter(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/cart/items",
		strings.NewReader(`{"productId":"p-1001"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("add status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var body struct {
		Data struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Data.Count != 1 {
		t.Fatalf("count = %d, want 1", body.Data.Count)
	}
}

func TestAdminGroupRejectsMissingJWT(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/admin/v1/banners",
		strings.NewReader(`{"banners":[]}`)))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	handler, cfg := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/v1/banners", strings.NewReader(`{"banners":[]}`))
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, enums.UserRoleUser))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestAdminGroupSucceedsWithAdminJWT(t *testing.T) {
	handler, cfg := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/v1/banners",
		strings.NewReader(`{"banners":["https://cdn.example.com/sale.png"]}`))
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, enums.UserRoleAdmin))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestOrderStatusRouteIsAdminOnly(t *testing.T) {
	handler, cfg := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/v1/orders/ORD-1/status",
		strings.NewReader(`{"status":"Shipped"}`))
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, enums.UserRoleUser))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestAuthLoginUnknownIdentifier(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"identifier":"nobody@example.com"}`)))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

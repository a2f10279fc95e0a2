package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/r70610363/swiftcart-backend/api/controllers"
	"github.com/r70610363/swiftcart-backend/api/middleware"
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
	"github.com/r70610363/swiftcart-backend/pkg/config"
	"github.com/r70610363/swiftcart-backend/pkg/kvstore"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	store kvstore.Store,
	registry *prometheus.Registry,
	catalogService catalog.Service,
	cartService cart.Service,
	ordersService orders.Service,
	usersService users.Service,
	otpService otp.Service,
	bannersService banners.Service,
	gateway payments.Gateway,
	notificationsService notifications.Service,
	checkoutService checkoutsvc.Service,
	sessionService sessionsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, store))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(catalogService, logg))
			r.Get("/{productId}", controllers.GetProduct(catalogService, logg))
			r.Post("/{productId}/reviews", controllers.AddReview(catalogService, logg))
		})

		r.Route("/banners", func(r chi.Router) {
			r.Get("/", controllers.ListBanners(bannersService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(cartService, logg))
			r.Post("/items", controllers.AddToCart(cartService, catalogService, logg))
			r.Delete("/items", controllers.RemoveFromCart(cartService, logg))
			r.Patch("/items", controllers.UpdateCartQuantity(cartService, logg))
			r.Delete("/", controllers.ClearCart(cartService, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.GetWishlist(cartService, logg))
			r.Post("/toggle", controllers.ToggleWishlist(cartService, catalogService, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", controllers.GetCheckout(checkoutService, logg))
			r.Post("/", controllers.PrepareCheckout(checkoutService, cartService, logg))
			r.Post("/submit", controllers.SubmitCheckout(checkoutService, sessionService, logg))
			r.Delete("/", controllers.AbandonCheckout(checkoutService, logg))
		})

		r.Post("/payments/initiate", controllers.InitiatePayment(gateway, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(ordersService, logg))
			r.Get("/{orderId}", controllers.GetOrder(ordersService, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(notificationsService, logg))
			r.Post("/read-all", controllers.MarkNotificationsRead(notificationsService, logg))
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/check-user", controllers.CheckUser(usersService, logg))
			r.Post("/register", controllers.Register(usersService, logg))
			r.Post("/login", controllers.Login(sessionService, logg))
			r.Post("/logout", controllers.Logout(sessionService, logg))
			r.Post("/otp/send", controllers.SendOTP(otpService, logg))
			r.Post("/otp/verify", controllers.VerifyOTP(otpService, sessionService, logg))
		})

		r.Route("/session", func(r chi.Router) {
			r.Get("/", controllers.GetSession(sessionService, logg))
			r.Put("/profile", controllers.UpdateProfile(sessionService, logg))
			r.Get("/address", controllers.GetAddress(sessionService, logg))
			r.Put("/address", controllers.SaveAddress(sessionService, logg))
			r.Post("/login-modal", controllers.SetLoginModal(sessionService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireAdmin(logg))

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.SaveProduct(catalogService, logg))
			r.Post("/refresh", controllers.RefreshProducts(catalogService, logg))
			r.Delete("/{productId}", controllers.DeleteProduct(catalogService, logg))
		})
		r.Patch("/orders/{orderId}/status", controllers.UpdateOrderStatus(ordersService, logg))
		r.Put("/banners", controllers.ReplaceBanners(bannersService, logg))
	})

	return r
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records counters for the storefront state engine. Every
// method is nil-safe so tests can pass a zero value.
type StorefrontMetrics struct {
	fallbacks         *prometheus.CounterVec
	cartMutations     *prometheus.CounterVec
	ordersPlaced      prometheus.Counter
	simulatedPayments prometheus.Counter
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	fallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_fallback_total",
		Help: "Operations served from the local store after an upstream failure.",
	}, []string{"operation"})
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart and wishlist mutations applied.",
	}, []string{"operation"})
	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders persisted at checkout completion.",
	})
	simulatedPayments := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "payments_simulated_total",
		Help: "Checkouts completed via the simulated-success fallback.",
	})
	reg.MustRegister(fallbacks, cartMutations, ordersPlaced, simulatedPayments)
	return &StorefrontMetrics{
		fallbacks:         fallbacks,
		cartMutations:     cartMutations,
		ordersPlaced:      ordersPlaced,
		simulatedPayments: simulatedPayments,
	}
}

// IncFallback counts a store-backed fallback for the named operation.
func (m *StorefrontMetrics) IncFallback(operation string) {
	if m == nil || m.fallbacks == nil {
		return
	}
	m.fallbacks.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncCartMutation counts a cart or wishlist mutation.
func (m *StorefrontMetrics) IncCartMutation(operation string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncOrderPlaced counts one persisted order.
func (m *StorefrontMetrics) IncOrderPlaced() {
	if m == nil || m.ordersPlaced == nil {
		return
	}
	m.ordersPlaced.Inc()
}

// IncSimulatedPayment counts one simulated-success completion.
func (m *StorefrontMetrics) IncSimulatedPayment() {
	if m == nil || m.simulatedPayments == nil {
		return
	}
	m.simulatedPayments.Inc()
}

func normalizeLabel(operation string) string {
	if operation == "" {
		return "unknown"
	}
	return operation
}

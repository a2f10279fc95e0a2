package orders

import (
	"time"

	"github.com/r70610363/swiftcart-backend/pkg/enums"
	"github.com/r70610363/swiftcart-backend/pkg/models"
)

// Milestone offsets from the order date. An order progresses through the
// whole chain over sixteen hours.
const (
	packedAfter          = 4 * time.Hour
	shippedAfter         = 8 * time.Hour
	outForDeliveryAfter  = 12 * time.Hour
	deliveredAfter       = 16 * time.Hour
	estimatedDeliveryDue = 72 * time.Hour
)

// SimulateTracking derives the tracking history an order has earned by now.
// It is a pure projection of (order date, now): calling it again with the
// same inputs yields the same history, and the stored order is never
// modified. Cancelled orders and orders without a date pass through
// untouched.
func SimulateTracking(order models.Order, now time.Time) models.Order {
	if order.Date.IsZero() || order.Status == enums.OrderStatusCancelled {
		return order
	}

	start := order.Date
	elapsed := now.Sub(start)

	history := []models.TrackingEvent{{
		Status:      enums.OrderStatusOrdered,
		Date:        start,
		Location:    "Online",
		Description: "Your order has been placed successfully.",
	}}

	if elapsed >= packedAfter {
		history = append(history, models.TrackingEvent{
			Status:      enums.OrderStatusPacked,
			Date:        start.Add(packedAfter),
			Location:    "Seller Warehouse",
			Description: "Order has been packed and is ready for pickup.",
		})
	}
	if elapsed >= shippedAfter {
		history = append(history, models.TrackingEvent{
			Status:      enums.OrderStatusShipped,
			Date:        start.Add(shippedAfter),
			Location:    "Warehouse Dispatch Center",
			Description: "Dispatched from warehouse.",
		})
	}
	if elapsed >= outForDeliveryAfter {
		history = append(history, models.TrackingEvent{
			Status:      enums.OrderStatusOutForDelivery,
			Date:        start.Add(outForDeliveryAfter),
			Location:    orFallback(order.Address.City, "City Hub"),
			Description: "Your order is out for delivery.",
		})
	}
	if elapsed >= deliveredAfter {
		history = append(history, models.TrackingEvent{
			Status:      enums.OrderStatusDelivered,
			Date:        start.Add(deliveredAfter),
			Location:    orFallback(order.Address.Line1, "Delivery Location"),
			Description: "Order has been delivered.",
		})
	}

	// Newest first; the derived status is the latest milestone reached.
	order.Status = history[len(history)-1].Status
	reverse(history)
	order.TrackingHistory = history
	return order
}

func orFallback(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func reverse(events []models.TrackingEvent) {
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
}

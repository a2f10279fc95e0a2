package models

import (
	"time"

	"github.com/r70610363/swiftcart-backend/pkg/enums"
	"github.com/r70610363/swiftcart-backend/pkg/types"
)

// TrackingEvent is one step of an order's delivery history. Events are built
// oldest first and reversed for display.
type TrackingEvent struct {
	Status      enums.OrderStatus `json:"status"`
	Date        time.Time         `json:"date"`
	Location    string            `json:"location"`
	Description string            `json:"description"`
}

// Order is created once at checkout completion and never deleted. Items is a
// snapshot of the staged cart lines, not a live reference. Status transitions
// are the only mutation after creation.
type Order struct {
	ID                string            `json:"id"`
	UserID            string            `json:"userId"`
	Items             []CartItem        `json:"items"`
	Total             int               `json:"total"`
	Status            enums.OrderStatus `json:"status"`
	Date              time.Time         `json:"date"`
	Address           types.Address     `json:"address"`
	PaymentMethod     string            `json:"paymentMethod"`
	EstimatedDelivery time.Time         `json:"estimatedDelivery,omitempty"`
	TrackingHistory   []TrackingEvent   `json:"trackingHistory,omitempty"`
}

package orders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/r70610363/swiftcart-backend/pkg/enums"
	"github.com/r70610363/swiftcart-backend/pkg/errors"
	"github.com/r70610363/swiftcart-backend/pkg/kvstore"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
	"github.com/r70610363/swiftcart-backend/pkg/metrics"
	"github.com/r70610363/swiftcart-backend/pkg/models"
	"github.com/r70610363/swiftcart-backend/pkg/upstream"
)

// Service is the append-only order book. Orders are stored newest first and
// never deleted; a status change is the only mutation after creation. Reads
// return a tracking projection derived from the order date, the stored
// record itself keeps whatever status was last written.
type Service interface {
	List(ctx context.Context) ([]models.Order, bool, error)
	Get(ctx context.Context, id string) (models.Order, error)
	Create(ctx context.Context, order models.Order) (models.Order, error)
	UpdateStatus(ctx context.Context, id string, status enums.OrderStatus) error
}

type service struct {
	store    kvstore.Store
	upstream *upstream.Client
	logg     *logger.Logger
	metrics  *metrics.StorefrontMetrics
	now      func() time.Time

	mu     sync.RWMutex
	orders []models.Order
}

func NewService(ctx context.Context, store kvstore.Store, up *upstream.Client, logg *logger.Logger, met *metrics.StorefrontMetrics) (Service, error) {
	if store == nil {
		return nil, errors.New(errors.CodeInternal, "orders service requires a store")
	}
	if logg == nil {
		return nil, errors.New(errors.CodeInternal, "orders service requires a logger")
	}

	s := &service{
		store:    store,
		upstream: up,
		logg:     logg,
		metrics:  met,
		now:      time.Now,
	}
	kvstore.GetJSON(ctx, store, logg, kvstore.KeyOrders, &s.orders)
	return s, nil
}

// List returns every order with its tracking projection applied. With an
// upstream configured the backend's order book wins; on failure the
// persisted copy serves and the second return reports the fallback.
func (s *service) List(ctx context.Context) ([]models.Order, bool, error) {
	if s.upstream != nil && s.upstream.Enabled() {
		fetched, err := s.upstream.FetchOrders(ctx)
		if err == nil {
			return fetched, false, nil
		}
		s.metrics.IncFallback("orders.list")
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "upstream order fetch failed, serving persisted orders")
		return s.localProjection(), true, nil
	}
	return s.localProjection(), false, nil
}

func (s *service) Get(ctx context.Context, id string) (models.Order, error) {
	all, _, err := s.List(ctx)
	if err != nil {
		return models.Order{}, err
	}
	for _, o := range all {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Order{}, errors.New(errors.CodeNotFound, "order "+id+" not found")
}

// Create stamps the order and prepends it to the book. The caller supplies
// items, totals and address; status, estimated delivery and the opening
// tracking event are set here.
func (s *service) Create(ctx context.Context, order models.Order) (models.Order, error) {
	if len(order.Items) == 0 {
		return models.Order{}, errors.New(errors.CodeValidation, "order has no items")
	}
	if order.Date.IsZero() {
		order.Date = s.now()
	}
	if order.ID == "" {
		order.ID = fmt.Sprintf("ORD-%d", order.Date.UnixMilli())
	}
	order.Status = enums.OrderStatusOrdered
	order.EstimatedDelivery = order.Date.Add(estimatedDeliveryDue)
	order.TrackingHistory = []models.TrackingEvent{{
		Status:      enums.OrderStatusOrdered,
		Date:        order.Date,
		Location:    "Online",
		Description: "Your order has been placed successfully.",
	}}

	if s.upstream != nil && s.upstream.Enabled() {
		if created, err := s.upstream.CreateOrder(ctx, order); err == nil {
			order = created
		} else {
			s.metrics.IncFallback("orders.create")
			s.logg.Warn(s.logg.WithOrderID(ctx, order.ID), "upstream order create failed, persisting locally only")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append([]models.Order{order}, s.orders...)
	if err := kvstore.SetJSON(ctx, s.store, kvstore.KeyOrders, next); err != nil {
		return models.Order{}, err
	}
	s.orders = next
	s.metrics.IncOrderPlaced()
	return order, nil
}

// UpdateStatus rewrites the stored status. Cancelled is terminal: once an
// order is cancelled no further transition is accepted.
func (s *service) UpdateStatus(ctx context.Context, id string, status enums.OrderStatus) error {
	if !status.IsValid() {
		return errors.New(errors.CodeValidation, "unknown order status "+status.String())
	}

	if s.upstream != nil && s.upstream.Enabled() {
		if err := s.upstream.UpdateOrderStatus(ctx, id, status.String()); err != nil {
			s.metrics.IncFallback("orders.update_status")
			s.logg.Warn(s.logg.WithOrderID(ctx, id), "upstream status update failed, updating locally only")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.orders {
		if s.orders[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errors.New(errors.CodeNotFound, "order "+id+" not found")
	}
	if s.orders[idx].Status.IsTerminal() {
		return errors.New(errors.CodeStateConflict, "order "+id+" is cancelled and cannot change status")
	}

	next := make([]models.Order, len(s.orders))
	copy(next, s.orders)
	next[idx].Status = status

	if err := kvstore.SetJSON(ctx, s.store, kvstore.KeyOrders, next); err != nil {
		return err
	}
	s.orders = next
	return nil
}

func (s *service) localProjection() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := s.now()
	out := make([]models.Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = SimulateTracking(o, now)
	}
	return out
}

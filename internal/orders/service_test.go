package orders

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/r70610363/swiftcart-backend/pkg/enums"
	"github.com/r70610363/swiftcart-backend/pkg/errors"
	"github.com/r70610363/swiftcart-backend/pkg/kvstore"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
	"github.com/r70610363/swiftcart-backend/pkg/models"
	"github.com/rs/zerolog"
)

func newTestService(t *testing.T) (*service, *kvstore.Memory) {
	t.Helper()
	store := kvstore.NewMemory()
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
	svc, err := NewService(context.Background(), store, nil, logg, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc.(*service), store
}

func draftOrder() models.Order {
	return models.Order{
		UserID:        "u1",
		Items:         []models.CartItem{{Product: models.Product{ID: "p1", Price: 100}, Quantity: 1}},
		Total:         150,
		PaymentMethod: "upi",
	}
}

func TestCreateStampsOrder(t *testing.T) {
	svc, _ := newTestService(t)
	now := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	got, err := svc.Create(context.Background(), draftOrder())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if !strings.HasPrefix(got.ID, "ORD-") {
		t.Fatalf("order id = %q, want ORD- prefix", got.ID)
	}
	if got.Status != enums.OrderStatusOrdered {
		t.Fatalf("status = %s, want Ordered", got.Status)
	}
	if !got.EstimatedDelivery.Equal(now.Add(72 * time.Hour)) {
		t.Fatalf("estimated delivery = %v, want date+3d", got.EstimatedDelivery)
	}
	if len(got.TrackingHistory) != 1 || got.TrackingHistory[0].Status != enums.OrderStatusOrdered {
		t.Fatalf("opening tracking event wrong: %+v", got.TrackingHistory)
	}
}

func TestCreatePrependsNewestFirst(t *testing.T) {
	svc, _ := newTestService(t)
	base := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	ctx := context.Background()

	svc.now = func() time.Time { return base }
	first, _ := svc.Create(ctx, draftOrder())
	svc.now = func() time.Time { return base.Add(time.Minute) }
	second, _ := svc.Create(ctx, draftOrder())

	got, fallback, err := svc.List(ctx)
	if err != nil || fallback {
		t.Fatalf("List: fallback=%v err=%v", fallback, err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d orders, want 2", len(got))
	}
	if got[0].ID != second.ID || got[1].ID != first.ID {
		t.Fatalf("order book not newest first: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestCreateRejectsEmptyOrder(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), models.Order{})
	if domainErr := errors.As(err); domainErr == nil || domainErr.Code() != errors.CodeValidation {
		t.Fatalf("got %v, want validation code", err)
	}
}

func TestListAppliesTrackingProjection(t *testing.T) {
	svc, _ := newTestService(t)
	placedAt := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	ctx := context.Background()

	svc.now = func() time.Time { return placedAt }
	created, _ := svc.Create(ctx, draftOrder())

	// Nine hours later the projection says Shipped, the record stays Ordered.
	svc.now = func() time.Time { return placedAt.Add(9 * time.Hour) }
	got, _, _ := svc.List(ctx)
	if got[0].Status != enums.OrderStatusShipped {
		t.Fatalf("projected status = %s, want Shipped", got[0].Status)
	}
	if len(got[0].TrackingHistory) != 3 {
		t.Fatalf("got %d events, want 3", len(got[0].TrackingHistory))
	}
	if svc.orders[0].Status != enums.OrderStatusOrdered {
		t.Fatalf("stored status mutated to %s", svc.orders[0].Status)
	}

	fetched, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if fetched.Status != enums.OrderStatusShipped {
		t.Fatalf("Get status = %s, want projection", fetched.Status)
	}
}

func TestUpdateStatusGuardsCancelledOrders(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, _ := svc.Create(ctx, draftOrder())

	if err := svc.UpdateStatus(ctx, created.ID, enums.OrderStatusCancelled); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	err := svc.UpdateStatus(ctx, created.ID, enums.OrderStatusShipped)
	if domainErr := errors.As(err); domainErr == nil || domainErr.Code() != errors.CodeStateConflict {
		t.Fatalf("got %v, want state-conflict code", err)
	}

	// Cancelled stays terminal through the projection too.
	got, _, _ := svc.List(ctx)
	if got[0].Status != enums.OrderStatusCancelled {
		t.Fatalf("status = %s, want Cancelled", got[0].Status)
	}
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.UpdateStatus(context.Background(), "ORD-missing", enums.OrderStatusPacked)
	if domainErr := errors.As(err); domainErr == nil || domainErr.Code() != errors.CodeNotFound {
		t.Fatalf("got %v, want not-found code", err)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.UpdateStatus(context.Background(), "ORD-1", enums.OrderStatus("Lost"))
	if domainErr := errors.As(err); domainErr == nil || domainErr.Code() != errors.CodeValidation {
		t.Fatalf("got %v, want validation code", err)
	}
}

func TestCreateWriteFailureKeepsBookUntouched(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	store.FailWrites = true
	_, err := svc.Create(ctx, draftOrder())
	if domainErr := errors.As(err); domainErr == nil || domainErr.Code() != errors.CodeStorage {
		t.Fatalf("got %v, want storage code", err)
	}

	got, _, _ := svc.List(ctx)
	if len(got) != 0 {
		t.Fatal("order book mutated despite rejected write")
	}
}

func TestOrdersRehydrateFromStore(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	created, _ := svc.Create(ctx, draftOrder())

	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
	reloaded, err := NewService(ctx, store, nil, logg, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	if _, err := reloaded.Get(ctx, created.ID); err != nil {
		t.Fatalf("order lost across restart: %v", err)
	}
}

package cart

import (
	"context"
	"io"
	"testing"

	"github.com/r70610363/swiftcart-backend/pkg/errors"
	"github.com/r70610363/swiftcart-backend/pkg/kvstore"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
	"github.com/r70610363/swiftcart-backend/pkg/models"
	"github.com/rs/zerolog"
)

var (
	phone = models.Product{ID: "p1", Title: "Phone", Price: 100, Colors: []string{"Black", "Blue"}}
	plain = models.Product{ID: "p2", Title: "Cable", Price: 40}
)

func newTestService(t *testing.T) (Service, *kvstore.Memory) {
	t.Helper()
	store := kvstore.NewMemory()
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
	svc, err := NewService(context.Background(), store, logg, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, store
}

func line(t *testing.T, svc Service, idx int) models.CartItem {
	t.Helper()
	items := svc.Items(context.Background())
	if idx >= len(items) {
		t.Fatalf("want at least %d lines, got %d", idx+1, len(items))
	}
	return items[idx]
}

func TestAddMergesSameColorLine(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Add(ctx, phone, "Black"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.Add(ctx, phone, "Black"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	items := svc.Items(ctx)
	if len(items) != 1 {
		t.Fatalf("got %d lines, want 1", len(items))
	}
	if items[0].Quantity != 2 {
		t.Fatalf("quantity = %d, want 2", items[0].Quantity)
	}
	if svc.Count(ctx) != 2 {
		t.Fatalf("count = %d, want 2", svc.Count(ctx))
	}
}

func TestAddDifferentColorsKeepSeparateLines(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.Add(ctx, phone, "Black")
	svc.Add(ctx, phone, "Blue")

	items := svc.Items(ctx)
	if len(items) != 2 {
		t.Fatalf("got %d lines, want 2", len(items))
	}
	if items[0].SelectedColor != "Black" || items[1].SelectedColor != "Blue" {
		t.Fatalf("unexpected colors: %+v", items)
	}
}

func TestAddDefaultsToFirstListedColor(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.Add(ctx, phone, "")
	if got := line(t, svc, 0).SelectedColor; got != "Black" {
		t.Fatalf("color = %q, want first listed color", got)
	}

	svc.Add(ctx, plain, "")
	if got := line(t, svc, 1).SelectedColor; got != "" {
		t.Fatalf("color = %q, want empty for colorless product", got)
	}
}

func TestRemoveWithColorDropsOnlyThatLine(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.Add(ctx, phone, "Black")
	svc.Add(ctx, phone, "Blue")

	if err := svc.Remove(ctx, "p1", "Black"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	items := svc.Items(ctx)
	if len(items) != 1 || items[0].SelectedColor != "Blue" {
		t.Fatalf("got %+v, want only the blue line", items)
	}
}

func TestRemoveWithoutColorDropsAllProductLines(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.Add(ctx, phone, "Black")
	svc.Add(ctx, phone, "Blue")
	svc.Add(ctx, plain, "")

	if err := svc.Remove(ctx, "p1", ""); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	items := svc.Items(ctx)
	if len(items) != 1 || items[0].Product.ID != "p2" {
		t.Fatalf("got %+v, want only p2", items)
	}
}

func TestUpdateQuantityBelowOneIsIgnored(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.Add(ctx, phone, "Black")
	if err := svc.UpdateQuantity(ctx, "p1", 0, "Black"); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if got := line(t, svc, 0).Quantity; got != 1 {
		t.Fatalf("quantity = %d, want unchanged 1", got)
	}
}

func TestUpdateQuantityTargetsColorWhenGiven(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.Add(ctx, phone, "Black")
	svc.Add(ctx, phone, "Blue")

	if err := svc.UpdateQuantity(ctx, "p1", 5, "Blue"); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if got := line(t, svc, 0).Quantity; got != 1 {
		t.Fatalf("black quantity = %d, want untouched 1", got)
	}
	if got := line(t, svc, 1).Quantity; got != 5 {
		t.Fatalf("blue quantity = %d, want 5", got)
	}

	if err := svc.UpdateQuantity(ctx, "p1", 3, ""); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if line(t, svc, 0).Quantity != 3 || line(t, svc, 1).Quantity != 3 {
		t.Fatal("colorless update should hit every line of the product")
	}
}

func TestSubtotalSumsLines(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.Add(ctx, phone, "Black")
	svc.UpdateQuantity(ctx, "p1", 3, "Black")
	svc.Add(ctx, plain, "")

	if got := svc.Subtotal(ctx); got != 340 {
		t.Fatalf("subtotal = %d, want 340", got)
	}
}

func TestRemovePurchasedDropsExactPairs(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.Add(ctx, phone, "Black")
	svc.Add(ctx, phone, "Blue")
	svc.Add(ctx, plain, "")

	purchased := []models.CartItem{{Product: phone, Quantity: 1, SelectedColor: "Black"}}
	if err := svc.RemovePurchased(ctx, purchased); err != nil {
		t.Fatalf("RemovePurchased: %v", err)
	}

	items := svc.Items(ctx)
	if len(items) != 2 {
		t.Fatalf("got %d lines, want 2", len(items))
	}
	if items[0].SelectedColor != "Blue" || items[1].Product.ID != "p2" {
		t.Fatalf("wrong survivors: %+v", items)
	}
}

func TestWriteFailureLeavesLedgerUntouched(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	svc.Add(ctx, phone, "Black")
	store.FailWrites = true

	err := svc.Add(ctx, phone, "Blue")
	if domainErr := errors.As(err); domainErr == nil || domainErr.Code() != errors.CodeStorage {
		t.Fatalf("got %v, want storage code", err)
	}
	if len(svc.Items(ctx)) != 1 {
		t.Fatal("memory mutated despite rejected write")
	}
}

func TestToggleWishlistIgnoresColor(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	added, err := svc.ToggleWishlist(ctx, phone)
	if err != nil || !added {
		t.Fatalf("first toggle: added=%v err=%v", added, err)
	}
	if !svc.InWishlist(ctx, "p1") {
		t.Fatal("product missing from wishlist")
	}

	added, err = svc.ToggleWishlist(ctx, phone)
	if err != nil || added {
		t.Fatalf("second toggle: added=%v err=%v", added, err)
	}
	if svc.InWishlist(ctx, "p1") {
		t.Fatal("product still on wishlist after second toggle")
	}
}

func TestLedgerHydratesFromStore(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	svc.Add(ctx, phone, "Black")
	svc.ToggleWishlist(ctx, plain)

	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
	reloaded, err := NewService(ctx, store, logg, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	if len(reloaded.Items(ctx)) != 1 {
		t.Fatal("cart not rehydrated")
	}
	if !reloaded.InWishlist(ctx, "p2") {
		t.Fatal("wishlist not rehydrated")
	}
}

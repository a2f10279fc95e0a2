package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/r70610363/swiftcart-backend/pkg/errors"
	"github.com/r70610363/swiftcart-backend/pkg/kvstore"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
	"github.com/r70610363/swiftcart-backend/pkg/metrics"
	"github.com/r70610363/swiftcart-backend/pkg/models"
)

// Service is the cart and wishlist ledger. A cart line is identified by the
// (product id, selected color) pair; the wishlist tracks product ids only.
// Every mutation persists before it commits to memory, so a rejected write
// leaves the ledger exactly as it was.
type Service interface {
	Items(ctx context.Context) []models.CartItem
	Count(ctx context.Context) int
	Subtotal(ctx context.Context) int
	Add(ctx context.Context, product models.Product, color string) error
	Remove(ctx context.Context, productID, color string) error
	UpdateQuantity(ctx context.Context, productID string, quantity int, color string) error
	Clear(ctx context.Context) error
	RemovePurchased(ctx context.Context, purchased []models.CartItem) error

	Reset(ctx context.Context) error

	Wishlist(ctx context.Context) []models.Product
	ToggleWishlist(ctx context.Context, product models.Product) (bool, error)
	InWishlist(ctx context.Context, productID string) bool
}

type service struct {
	store   kvstore.Store
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics

	mu       sync.RWMutex
	items    []models.CartItem
	wishlist []models.Product
}

// NewService hydrates the ledger from the store. Malformed persisted state
// falls back to an empty ledger.
func NewService(ctx context.Context, store kvstore.Store, logg *logger.Logger, met *metrics.StorefrontMetrics) (Service, error) {
	if store == nil {
		return nil, errors.New(errors.CodeInternal, "cart service requires a store")
	}
	if logg == nil {
		return nil, errors.New(errors.CodeInternal, "cart service requires a logger")
	}

	s := &service{store: store, logg: logg, metrics: met}
	kvstore.GetJSON(ctx, store, logg, kvstore.KeyCart, &s.items)
	kvstore.GetJSON(ctx, store, logg, kvstore.KeyWishlist, &s.wishlist)
	return s, nil
}

func (s *service) Items(ctx context.Context) []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.items)
}

// Count is the total quantity across all lines.
func (s *service) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

func (s *service) Subtotal(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return subtotal(s.items)
}

// Add merges into the matching (id, color) line or appends a new one with
// quantity 1. An empty color falls back to the product's first listed color.
func (s *service) Add(ctx context.Context, product models.Product, color string) error {
	if product.ID == "" {
		return errors.New(errors.CodeValidation, "product id is required")
	}
	if color == "" {
		color = product.DefaultColor()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneItems(s.items)
	merged := false
	for i := range next {
		if next[i].SameLine(product.ID, color) {
			next[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		next = append(next, models.CartItem{Product: product, Quantity: 1, SelectedColor: color})
	}

	if err := s.commitCart(ctx, next); err != nil {
		return err
	}
	s.metrics.IncCartMutation("add")
	return nil
}

// Remove drops the exact (id, color) line when a color is given. Without a
// color it drops every line for the product regardless of color.
func (s *service) Remove(ctx context.Context, productID, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.CartItem, 0, len(s.items))
	for _, item := range s.items {
		if color != "" {
			if item.SameLine(productID, color) {
				continue
			}
		} else if item.Product.ID == productID {
			continue
		}
		next = append(next, item)
	}

	if err := s.commitCart(ctx, next); err != nil {
		return err
	}
	s.metrics.IncCartMutation("remove")
	return nil
}

// UpdateQuantity sets the quantity on matching lines. Quantities below one
// are ignored; removal is always an explicit Remove. Without a color every
// line for the product is updated.
func (s *service) UpdateQuantity(ctx context.Context, productID string, quantity int, color string) error {
	if quantity < 1 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneItems(s.items)
	for i := range next {
		if next[i].Product.ID != productID {
			continue
		}
		if color != "" && next[i].SelectedColor != color {
			continue
		}
		next[i].Quantity = quantity
	}

	if err := s.commitCart(ctx, next); err != nil {
		return err
	}
	s.metrics.IncCartMutation("update_quantity")
	return nil
}

func (s *service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commitCart(ctx, []models.CartItem{}); err != nil {
		return err
	}
	s.metrics.IncCartMutation("clear")
	return nil
}

// RemovePurchased drops exactly the (id, color) pairs that were bought,
// leaving same-product lines in other colors untouched.
func (s *service) RemovePurchased(ctx context.Context, purchased []models.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.CartItem, 0, len(s.items))
	for _, item := range s.items {
		bought := false
		for _, p := range purchased {
			if item.SameLine(p.Product.ID, p.SelectedColor) {
				bought = true
				break
			}
		}
		if !bought {
			next = append(next, item)
		}
	}

	if err := s.commitCart(ctx, next); err != nil {
		return err
	}
	s.metrics.IncCartMutation("remove_purchased")
	return nil
}

// Reset wipes the cart and the wishlist together, the logout teardown path.
func (s *service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Remove(ctx, kvstore.KeyCart); err != nil {
		return errors.Wrap(errors.CodeStorage, err, "clear persisted cart")
	}
	if err := s.store.Remove(ctx, kvstore.KeyWishlist); err != nil {
		return errors.Wrap(errors.CodeStorage, err, "clear persisted wishlist")
	}
	s.items = nil
	s.wishlist = nil
	s.metrics.IncCartMutation("reset")
	return nil
}

func (s *service) Wishlist(ctx context.Context) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.wishlist))
	copy(out, s.wishlist)
	return out
}

// ToggleWishlist adds or removes by product id alone; color never matters
// here. The return reports whether the product ended up on the list.
func (s *service) ToggleWishlist(ctx context.Context, product models.Product) (bool, error) {
	if product.ID == "" {
		return false, errors.New(errors.CodeValidation, "product id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists := false
	next := make([]models.Product, 0, len(s.wishlist)+1)
	for _, p := range s.wishlist {
		if p.ID == product.ID {
			exists = true
			continue
		}
		next = append(next, p)
	}
	if !exists {
		next = append(next, product)
	}

	if err := kvstore.SetJSON(ctx, s.store, kvstore.KeyWishlist, next); err != nil {
		return false, err
	}
	s.wishlist = next
	s.metrics.IncCartMutation("toggle_wishlist")
	return !exists, nil
}

func (s *service) InWishlist(ctx context.Context, productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.wishlist {
		if p.ID == productID {
			return true
		}
	}
	return false
}

// commitCart persists first and only then swaps the in-memory slice.
// Callers hold the write lock.
func (s *service) commitCart(ctx context.Context, next []models.CartItem) error {
	if err := kvstore.SetJSON(ctx, s.store, kvstore.KeyCart, next); err != nil {
		return err
	}
	s.items = next
	return nil
}

func subtotal(items []models.CartItem) int {
	sum := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromInt(int64(item.Product.Price)).Mul(decimal.NewFromInt(int64(item.Quantity)))
		sum = sum.Add(line)
	}
	return int(sum.IntPart())
}

func cloneItems(in []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, len(in))
	copy(out, in)
	return out
}

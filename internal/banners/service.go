package banners

import (
	"context"
	"sync"

	"github.com/r70610363/swiftcart-backend/pkg/errors"
	"github.com/r70610363/swiftcart-backend/pkg/kvstore"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
)

// defaultBanners seed the homepage carousel until an operator replaces them.
var defaultBanners = []string{
	"https://images.swiftcart.dev/banners/festive-sale.jpg",
	"https://images.swiftcart.dev/banners/mobiles-days.jpg",
	"https://images.swiftcart.dev/banners/fashion-fest.jpg",
	"https://images.swiftcart.dev/banners/appliance-carnival.jpg",
}

// Service manages the homepage banner list. Replace swaps the whole list;
// there is no per-banner edit.
type Service interface {
	List(ctx context.Context) []string
	Replace(ctx context.Context, banners []string) error
}

type service struct {
	store kvstore.Store
	logg  *logger.Logger

	mu      sync.RWMutex
	banners []string
}

func NewService(ctx context.Context, store kvstore.Store, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, errors.New(errors.CodeInternal, "banners service requires a store")
	}
	if logg == nil {
		return nil, errors.New(errors.CodeInternal, "banners service requires a logger")
	}

	s := &service{store: store, logg: logg}
	if !kvstore.GetJSON(ctx, store, logg, kvstore.KeyBanners, &s.banners) {
		s.banners = append([]string(nil), defaultBanners...)
		if err := kvstore.SetJSON(ctx, store, kvstore.KeyBanners, s.banners); err != nil {
			logg.Warn(logg.WithStoreKey(ctx, kvstore.KeyBanners), "seed banners not persisted, serving from memory")
		}
	}
	return s, nil
}

func (s *service) List(ctx context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.banners))
	copy(out, s.banners)
	return out
}

func (s *service) Replace(ctx context.Context, banners []string) error {
	if banners == nil {
		banners = []string{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := kvstore.SetJSON(ctx, s.store, kvstore.KeyBanners, banners); err != nil {
		return err
	}
	s.banners = banners
	return nil
}

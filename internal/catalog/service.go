package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/r70610363/swiftcart-backend/pkg/errors"
	"github.com/r70610363/swiftcart-backend/pkg/kvstore"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
	"github.com/r70610363/swiftcart-backend/pkg/metrics"
	"github.com/r70610363/swiftcart-backend/pkg/models"
	"github.com/r70610363/swiftcart-backend/pkg/upstream"
)

// Service owns the product catalog: the persisted product list, the visible
// (filtered) view over it, and review aggregation.
type Service interface {
	List(ctx context.Context) []models.Product
	Filtered(ctx context.Context, state FilterState) []models.Product
	Get(ctx context.Context, id string) (models.Product, error)
	Refresh(ctx context.Context) ([]models.Product, bool, error)
	Save(ctx context.Context, product models.Product) (models.Product, error)
	Delete(ctx context.Context, id string) error
	AddReview(ctx context.Context, productID string, review models.Review) (models.Product, error)
}

type service struct {
	store    kvstore.Store
	upstream *upstream.Client
	logg     *logger.Logger
	metrics  *metrics.StorefrontMetrics
	now      func() time.Time

	mu       sync.RWMutex
	products []models.Product
}

// NewService hydrates the catalog from the store, seeding the built-in
// product list when nothing is persisted yet.
func NewService(ctx context.Context, store kvstore.Store, up *upstream.Client, logg *logger.Logger, met *metrics.StorefrontMetrics) (Service, error) {
	if store == nil {
		return nil, errors.New(errors.CodeInternal, "catalog service requires a store")
	}
	if logg == nil {
		return nil, errors.New(errors.CodeInternal, "catalog service requires a logger")
	}

	s := &service{
		store:    store,
		upstream: up,
		logg:     logg,
		metrics:  met,
		now:      time.Now,
	}

	var persisted []models.Product
	if kvstore.GetJSON(ctx, store, logg, kvstore.KeyProducts, &persisted) {
		s.products = persisted
		return s, nil
	}

	s.products = SeedProducts()
	if err := kvstore.SetJSON(ctx, store, kvstore.KeyProducts, s.products); err != nil {
		logg.Warn(logg.WithStoreKey(ctx, kvstore.KeyProducts), "seed catalog not persisted, serving from memory")
	}
	return s, nil
}

func (s *service) List(ctx context.Context) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProducts(s.products)
}

func (s *service) Filtered(ctx context.Context, state FilterState) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Filter(s.products, state)
}

func (s *service) Get(ctx context.Context, id string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, errors.New(errors.CodeNotFound, "product "+id+" not found")
}

// Refresh pulls the catalog from the upstream backend when one is configured.
// On upstream failure the persisted copy keeps serving and the second return
// reports that the caller got fallback data.
func (s *service) Refresh(ctx context.Context) ([]models.Product, bool, error) {
	if s.upstream == nil || !s.upstream.Enabled() {
		return s.List(ctx), false, nil
	}

	fetched, err := s.upstream.FetchProducts(ctx)
	if err != nil {
		s.metrics.IncFallback("catalog.refresh")
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "upstream catalog fetch failed, serving persisted products")
		return s.List(ctx), true, nil
	}

	if err := s.commit(ctx, fetched); err != nil {
		return nil, false, err
	}
	return cloneProducts(fetched), false, nil
}

// Save creates or replaces a product. Saved products are marked custom so
// later catalog refreshes can tell operator edits from seeded rows. New
// products are prepended, edits keep their position.
func (s *service) Save(ctx context.Context, product models.Product) (models.Product, error) {
	if product.ID == "" {
		return models.Product{}, errors.New(errors.CodeValidation, "product id is required")
	}
	product.IsCustom = true

	if s.upstream != nil && s.upstream.Enabled() {
		if err := s.upstream.SaveProduct(ctx, product); err != nil {
			s.metrics.IncFallback("catalog.save")
			s.logg.Warn(s.logg.WithField(ctx, "product_id", product.ID), "upstream product save failed, persisting locally only")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneProducts(s.products)
	replaced := false
	for i := range next {
		if next[i].ID == product.ID {
			next[i] = product
			replaced = true
			break
		}
	}
	if !replaced {
		next = append([]models.Product{product}, next...)
	}

	if err := kvstore.SetJSON(ctx, s.store, kvstore.KeyProducts, next); err != nil {
		return models.Product{}, err
	}
	s.products = next
	return product, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if s.upstream != nil && s.upstream.Enabled() {
		if err := s.upstream.DeleteProduct(ctx, id); err != nil {
			s.metrics.IncFallback("catalog.delete")
			s.logg.Warn(s.logg.WithField(ctx, "product_id", id), "upstream product delete failed, removing locally only")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Product, 0, len(s.products))
	found := false
	for _, p := range s.products {
		if p.ID == id {
			found = true
			continue
		}
		next = append(next, p)
	}
	if !found {
		return errors.New(errors.CodeNotFound, "product "+id+" not found")
	}

	if err := kvstore.SetJSON(ctx, s.store, kvstore.KeyProducts, next); err != nil {
		return err
	}
	s.products = next
	return nil
}

// AddReview prepends the review and recomputes the product's aggregates from
// the full review list. The stored rating is the mean rounded to one decimal.
func (s *service) AddReview(ctx context.Context, productID string, review models.Review) (models.Product, error) {
	if review.Rating < 1 || review.Rating > 5 {
		return models.Product{}, errors.New(errors.CodeValidation, "rating must be between 1 and 5")
	}
	if review.ID == "" {
		review.ID = fmt.Sprintf("r-%d", s.now().UnixMilli())
	}
	if review.Date.IsZero() {
		review.Date = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.products {
		if s.products[i].ID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Product{}, errors.New(errors.CodeNotFound, "product "+productID+" not found")
	}

	next := cloneProducts(s.products)
	p := next[idx]
	p.Reviews = append([]models.Review{review}, p.Reviews...)
	p.ReviewsCount = len(p.Reviews)
	p.Rating = meanRating(p.Reviews)
	next[idx] = p

	if err := kvstore.SetJSON(ctx, s.store, kvstore.KeyProducts, next); err != nil {
		return models.Product{}, err
	}
	s.products = next
	return p, nil
}

func (s *service) commit(ctx context.Context, products []models.Product) error {
	if err := kvstore.SetJSON(ctx, s.store, kvstore.KeyProducts, products); err != nil {
		return err
	}
	s.mu.Lock()
	s.products = cloneProducts(products)
	s.mu.Unlock()
	return nil
}

func meanRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, r := range reviews {
		sum = sum.Add(decimal.NewFromInt(int64(r.Rating)))
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(reviews)))).Round(1)
	return mean.InexactFloat64()
}

func cloneProducts(in []models.Product) []models.Product {
	out := make([]models.Product, len(in))
	copy(out, in)
	return out
}

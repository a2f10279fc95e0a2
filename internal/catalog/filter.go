package catalog

import (
	"sort"
	"strings"

	"github.com/r70610363/swiftcart-backend/pkg/enums"
	"github.com/r70610363/swiftcart-backend/pkg/models"
)

// FilterState captures the visible-catalog criteria. An empty Category means
// "all categories"; the price range is inclusive on both ends.
type FilterState struct {
	Category    string           `json:"category,omitempty"`
	MinPrice    int              `json:"minPrice"`
	MaxPrice    int              `json:"maxPrice"`
	SortBy      enums.SortOption `json:"sortBy"`
	SearchQuery string           `json:"searchQuery"`
}

// DefaultFilter matches the whole catalog in engine order.
func DefaultFilter() FilterState {
	return FilterState{
		MinPrice: 0,
		MaxPrice: 200000,
		SortBy:   enums.SortRelevance,
	}
}

// Filter computes the visible product list without mutating the input. The
// sort is stable; relevance keeps the engine-supplied order untouched.
func Filter(products []models.Product, state FilterState) []models.Product {
	query := strings.ToLower(strings.TrimSpace(state.SearchQuery))

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if state.Category != "" && p.Category != state.Category {
			continue
		}
		if p.Price < state.MinPrice || p.Price > state.MaxPrice {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		out = append(out, p)
	}

	switch state.SortBy {
	case enums.SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case enums.SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	}
	return out
}

func matchesQuery(p models.Product, query string) bool {
	if strings.Contains(strings.ToLower(p.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Category), query) {
		return true
	}
	if p.Brand != "" && strings.Contains(strings.ToLower(p.Brand), query) {
		return true
	}
	return strings.Contains(strings.ToLower(p.Description), query)
}

package enums

import "fmt"

// SortOption orders a filtered catalog view.
type SortOption string

const (
	SortRelevance SortOption = "relevance"
	SortPriceLow  SortOption = "price-low"
	SortPriceHigh SortOption = "price-high"
)

var validSortOptions = []SortOption{
	SortRelevance,
	SortPriceLow,
	SortPriceHigh,
}

// String implements fmt.Stringer.
func (s SortOption) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SortOption.
func (s SortOption) IsValid() bool {
	for _, candidate := range validSortOptions {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSortOption converts raw input into a SortOption.
func ParseSortOption(value string) (SortOption, error) {
	for _, candidate := range validSortOptions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort option %q", value)
}

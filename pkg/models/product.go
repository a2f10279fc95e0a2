package models

import "time"

// Review is a single customer review. Reviews are kept newest first.
type Review struct {
	ID       string    `json:"id"`
	UserName string    `json:"userName"`
	Rating   int       `json:"rating"`
	Comment  string    `json:"comment"`
	Date     time.Time `json:"date"`
}

// Product is a catalog entry as persisted under the products store key.
// Rating and ReviewsCount are derived from Reviews and recomputed on every
// review write, never edited directly.
type Product struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Price         int      `json:"price"`
	OriginalPrice int      `json:"originalPrice"`
	Category      string   `json:"category"`
	Brand         string   `json:"brand,omitempty"`
	Image         string   `json:"image"`
	Images        []string `json:"images,omitempty"`
	Colors        []string `json:"colors,omitempty"`
	Rating        float64  `json:"rating"`
	ReviewsCount  int      `json:"reviewsCount"`
	Reviews       []Review `json:"reviews"`
	Trending      bool     `json:"trending"`
	IsCustom      bool     `json:"isCustom"`
}

// DefaultColor returns the first listed color, or empty when none exist.
func (p Product) DefaultColor() string {
	if len(p.Colors) == 0 {
		return ""
	}
	return p.Colors[0]
}

package models

// CartItem is a cart line. Identity is the (ProductID, SelectedColor) pair:
// the same product in two colors occupies two lines. An empty SelectedColor
// means the product has no color variants.
type CartItem struct {
	Product
	Quantity      int    `json:"quantity"`
	SelectedColor string `json:"selectedColor,omitempty"`
}

// SameLine reports whether the item occupies the line keyed by (id, color).
func (c CartItem) SameLine(productID, color string) bool {
	return c.ID == productID && c.SelectedColor == color
}

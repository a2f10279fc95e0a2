package controllers

import (
	"net/http"

	"github.com/r70610363/swiftcart-backend/api/responses"
	"github.com/r70610363/swiftcart-backend/api/validators"
	"github.com/r70610363/swiftcart-backend/internal/cart"
	"github.com/r70610363/swiftcart-backend/internal/catalog"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
	"github.com/r70610363/swiftcart-backend/pkg/models"
)

type cartView struct {
	Items    []models.CartItem `json:"items"`
	Count    int               `json:"count"`
	Subtotal int               `json:"subtotal"`
}

func viewCart(r *http.Request, svc cart.Service) cartView {
	ctx := r.Context()
	return cartView{
		Items:    svc.Items(ctx),
		Count:    svc.Count(ctx),
		Subtotal: svc.Subtotal(ctx),
	}
}

func GetCart(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, viewCart(r, svc))
	}
}

type addToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Color     string `json:"color"`
}

// AddToCart resolves the product through the catalog so cart lines always
// snapshot a real product.
func AddToCart(svc cart.Service, products catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addToCartRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := products.Get(r.Context(), req.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Add(r.Context(), product, req.Color); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewCart(r, svc))
	}
}

type removeFromCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Color     string `json:"color"`
}

// RemoveFromCart drops one line when a color is given, every line of the
// product otherwise.
func RemoveFromCart(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req removeFromCartRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Remove(r.Context(), req.ProductID, req.Color); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewCart(r, svc))
	}
}

type updateQuantityRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required"`
	Color     string `json:"color"`
}

func UpdateCartQuantity(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.UpdateQuantity(r.Context(), req.ProductID, req.Quantity, req.Color); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewCart(r, svc))
	}
}

func ClearCart(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Clear(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewCart(r, svc))
	}
}

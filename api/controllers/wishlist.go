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

func GetWishlist(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.Wishlist(r.Context()))
	}
}

type toggleWishlistRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

type toggleWishlistResponse struct {
	Added    bool             `json:"added"`
	Wishlist []models.Product `json:"wishlist"`
}

func ToggleWishlist(svc cart.Service, products catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req toggleWishlistRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := products.Get(r.Context(), req.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		added, err := svc.ToggleWishlist(r.Context(), product)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toggleWishlistResponse{Added: added, Wishlist: svc.Wishlist(r.Context())})
	}
}

package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/r70610363/swiftcart-backend/api/responses"
	"github.com/r70610363/swiftcart-backend/api/validators"
	"github.com/r70610363/swiftcart-backend/internal/catalog"
	"github.com/r70610363/swiftcart-backend/pkg/enums"
	pkgerrors "github.com/r70610363/swiftcart-backend/pkg/errors"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
	"github.com/r70610363/swiftcart-backend/pkg/models"
)

// ListProducts returns the catalog view selected by the query parameters.
// Without parameters it is the whole catalog in engine order.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := catalog.DefaultFilter()
		query := r.URL.Query()

		if category := strings.TrimSpace(query.Get("category")); category != "" {
			state.Category = category
		}
		if raw := strings.TrimSpace(query.Get("minPrice")); raw != "" {
			value, err := strconv.Atoi(raw)
			if err != nil || value < 0 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "minPrice must be a non-negative integer"))
				return
			}
			state.MinPrice = value
		}
		if raw := strings.TrimSpace(query.Get("maxPrice")); raw != "" {
			value, err := strconv.Atoi(raw)
			if err != nil || value < 0 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "maxPrice must be a non-negative integer"))
				return
			}
			state.MaxPrice = value
		}
		if raw := strings.TrimSpace(query.Get("sortBy")); raw != "" {
			sortBy, err := enums.ParseSortOption(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sortBy"))
				return
			}
			state.SortBy = sortBy
		}
		state.SearchQuery = query.Get("search")

		responses.WriteSuccess(w, svc.Filtered(r.Context(), state))
	}
}

func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := svc.Get(r.Context(), chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

type refreshResponse struct {
	Products []models.Product `json:"products"`
	Fallback bool             `json:"fallback"`
}

// RefreshProducts re-pulls the catalog from the upstream backend. The
// response flags when the persisted copy served instead.
func RefreshProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, fallback, err := svc.Refresh(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, refreshResponse{Products: products, Fallback: fallback})
	}
}

// SaveProduct creates or edits a catalog entry.
func SaveProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.Product
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		saved, err := svc.Save(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, saved)
	}
}

func DeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "productId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type addReviewRequest struct {
	UserName string `json:"userName" validate:"required"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comment  string `json:"comment"`
}

func AddReview(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addReviewRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.AddReview(r.Context(), chi.URLParam(r, "productId"), models.Review{
			UserName: req.UserName,
			Rating:   req.Rating,
			Comment:  req.Comment,
			Date:     time.Now(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/r70610363/swiftcart-backend/api/responses"
	"github.com/r70610363/swiftcart-backend/api/validators"
	"github.com/r70610363/swiftcart-backend/internal/orders"
	"github.com/r70610363/swiftcart-backend/pkg/enums"
	pkgerrors "github.com/r70610363/swiftcart-backend/pkg/errors"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
	"github.com/r70610363/swiftcart-backend/pkg/models"
)

type ordersResponse struct {
	Orders   []models.Order `json:"orders"`
	Fallback bool           `json:"fallback"`
}

func ListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, fallback, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ordersResponse{Orders: list, Fallback: fallback})
	}
}

func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := svc.Get(r.Context(), chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func UpdateOrderStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status := enums.OrderStatus(req.Status)
		if !status.IsValid() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status"))
			return
		}
		if err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "orderId"), status); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": req.Status})
	}
}

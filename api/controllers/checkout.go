package controllers

import (
	"net/http"

	"github.com/r70610363/swiftcart-backend/api/responses"
	"github.com/r70610363/swiftcart-backend/api/validators"
	"github.com/r70610363/swiftcart-backend/internal/cart"
	"github.com/r70610363/swiftcart-backend/internal/checkout"
	"github.com/r70610363/swiftcart-backend/internal/session"
	pkgerrors "github.com/r70610363/swiftcart-backend/pkg/errors"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
	"github.com/r70610363/swiftcart-backend/pkg/models"
)

type checkoutView struct {
	Items  []models.CartItem `json:"items"`
	Totals checkout.Totals   `json:"totals"`
}

func GetCheckout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, checkoutView{
			Items:  svc.Staged(r.Context()),
			Totals: svc.Totals(r.Context()),
		})
	}
}

type prepareCheckoutRequest struct {
	// Explicit line selection; omit to stage the whole cart.
	Items []models.CartItem `json:"items"`
}

func PrepareCheckout(svc checkout.Service, cartSvc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req prepareCheckoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items := req.Items
		if len(items) == 0 {
			items = cartSvc.Items(r.Context())
		}
		if err := svc.Prepare(r.Context(), items); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, checkoutView{
			Items:  svc.Staged(r.Context()),
			Totals: svc.Totals(r.Context()),
		})
	}
}

type submitCheckoutRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

// SubmitCheckout pays for the staged snapshot using the session's user and
// shipping address.
func SubmitCheckout(svc checkout.Service, sessions session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitCheckoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		address, ok := sessions.Address(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "shipping address is required"))
			return
		}
		user, _ := sessions.CurrentUser(r.Context())

		result, err := svc.Submit(r.Context(), user, address, req.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func AbandonCheckout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Abandon(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "abandoned"})
	}
}

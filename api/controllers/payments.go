package controllers

import (
	"net/http"

	"github.com/r70610363/swiftcart-backend/api/responses"
	"github.com/r70610363/swiftcart-backend/api/validators"
	"github.com/r70610363/swiftcart-backend/internal/payments"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
)

type initiatePaymentRequest struct {
	Amount  int    `json:"amount" validate:"required,gt=0"`
	OrderID string `json:"orderId" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Mobile  string `json:"mobile"`
}

func InitiatePayment(gw payments.Gateway, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req initiatePaymentRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		session, err := gw.Initiate(r.Context(), req.Amount, req.OrderID, req.Email, req.Mobile)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session)
	}
}

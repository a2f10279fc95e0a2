package controllers

import (
	"net/http"

	"github.com/r70610363/swiftcart-backend/api/responses"
	"github.com/r70610363/swiftcart-backend/api/validators"
	"github.com/r70610363/swiftcart-backend/internal/otp"
	"github.com/r70610363/swiftcart-backend/internal/session"
	"github.com/r70610363/swiftcart-backend/internal/users"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
	"github.com/r70610363/swiftcart-backend/pkg/models"
)

type checkUserRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

type checkUserResponse struct {
	Exists bool `json:"exists"`
}

// CheckUser reports whether an account already exists for an email or mobile
// number, so the client can branch between login and registration.
func CheckUser(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkUserRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		exists, err := svc.Exists(r.Context(), req.Identifier)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, checkUserResponse{Exists: exists})
	}
}

type registerRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email" validate:"omitempty,email"`
	Mobile string `json:"mobile"`
}

func Register(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		user, err := svc.Register(r.Context(), req.Name, req.Email, req.Mobile)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

type sendOTPRequest struct {
	Mobile string `json:"mobile" validate:"required"`
}

type sendOTPResponse struct {
	Message string `json:"message"`
}

func SendOTP(svc otp.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sendOTPRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		message, err := svc.Send(r.Context(), req.Mobile)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sendOTPResponse{Message: message})
	}
}

type verifyOTPRequest struct {
	Mobile string `json:"mobile" validate:"required"`
	Code   string `json:"code" validate:"required"`
}

type loginResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// VerifyOTP checks the one-time code and, on success, logs the mobile number
// into the session.
func VerifyOTP(otpSvc otp.Service, sessions session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyOTPRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := otpSvc.Verify(r.Context(), req.Mobile, req.Code); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		user, token, err := sessions.Login(r.Context(), req.Mobile)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, loginResponse{User: user, Token: token})
	}
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

func Login(sessions session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		user, token, err := sessions.Login(r.Context(), req.Identifier)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, loginResponse{User: user, Token: token})
	}
}

func Logout(sessions session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := sessions.Logout(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

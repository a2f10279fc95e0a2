package controllers

import (
	"net/http"

	"github.com/r70610363/swiftcart-backend/api/responses"
	"github.com/r70610363/swiftcart-backend/api/validators"
	"github.com/r70610363/swiftcart-backend/internal/session"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
	"github.com/r70610363/swiftcart-backend/pkg/models"
	"github.com/r70610363/swiftcart-backend/pkg/types"
)

type sessionView struct {
	User           *models.User `json:"user"`
	LoginModalOpen bool         `json:"loginModalOpen"`
}

func GetSession(svc session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := sessionView{LoginModalOpen: svc.LoginModalOpen(r.Context())}
		if user, ok := svc.CurrentUser(r.Context()); ok {
			view.User = &user
		}
		responses.WriteSuccess(w, view)
	}
}

type updateProfileRequest struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name"`
	Email  string `json:"email" validate:"omitempty,email"`
	Mobile string `json:"mobile"`
}

func UpdateProfile(svc session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateProfileRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		user, err := svc.UpdateProfile(r.Context(), models.User{
			ID:     req.ID,
			Name:   req.Name,
			Email:  req.Email,
			Mobile: req.Mobile,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

type saveAddressRequest struct {
	FullName   string `json:"fullName" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state"`
	PostalCode string `json:"pincode" validate:"required"`
}

func SaveAddress(svc session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saveAddressRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		address := types.Address{
			FullName:   req.FullName,
			Phone:      req.Phone,
			Line1:      req.Address,
			City:       req.City,
			State:      req.State,
			PostalCode: req.PostalCode,
		}
		if err := svc.SaveAddress(r.Context(), address); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, address)
	}
}

type addressView struct {
	Address *types.Address `json:"address"`
}

func GetAddress(svc session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := addressView{}
		if address, ok := svc.Address(r.Context()); ok {
			view.Address = &address
		}
		responses.WriteSuccess(w, view)
	}
}

type loginModalRequest struct {
	Open bool `json:"open"`
}

func SetLoginModal(svc session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginModalRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if req.Open {
			svc.OpenLoginModal(r.Context())
		} else {
			svc.CloseLoginModal(r.Context())
		}
		responses.WriteSuccess(w, map[string]bool{"open": svc.LoginModalOpen(r.Context())})
	}
}

package controllers

import (
	"net/http"

	"github.com/r70610363/swiftcart-backend/api/responses"
	"github.com/r70610363/swiftcart-backend/api/validators"
	"github.com/r70610363/swiftcart-backend/internal/banners"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
)

type bannersResponse struct {
	Banners []string `json:"banners"`
}

func ListBanners(svc banners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, bannersResponse{Banners: svc.List(r.Context())})
	}
}

type replaceBannersRequest struct {
	Banners []string `json:"banners" validate:"dive,url"`
}

func ReplaceBanners(svc banners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req replaceBannersRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Replace(r.Context(), req.Banners); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, bannersResponse{Banners: svc.List(r.Context())})
	}
}

package controllers

import (
	"net/http"

	"github.com/r70610363/swiftcart-backend/api/responses"
	"github.com/r70610363/swiftcart-backend/internal/notifications"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
	"github.com/r70610363/swiftcart-backend/pkg/models"
)

type notificationsResponse struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unreadCount"`
}

func ListNotifications(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, notificationsResponse{
			Notifications: svc.List(r.Context()),
			UnreadCount:   svc.UnreadCount(r.Context()),
		})
	}
}

func MarkNotificationsRead(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.MarkAllRead(r.Context())
		responses.WriteSuccess(w, notificationsResponse{
			Notifications: svc.List(r.Context()),
			UnreadCount:   0,
		})
	}
}

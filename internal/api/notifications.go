package api

import (
	"net/http"

	"github.com/OpsDesk-io/opsdesk/internal/auth"
)

func (api *Api) ListNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	notifications, err := api.Store.ListNotifications(r.Context(), identity.UserID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, notifications)
}

func (api *Api) UnreadCountHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	count, err := api.Store.CountUnreadNotifications(r.Context(), identity.UserID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"unread": count})
}

func (api *Api) MarkNotificationReadHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	id, err := urlID(r, "notificationID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := api.Store.MarkNotificationRead(r.Context(), id, identity.UserID); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (api *Api) MarkAllNotificationsReadHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	if err := api.Store.MarkAllNotificationsRead(r.Context(), identity.UserID); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (api *Api) DeleteNotificationHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	id, err := urlID(r, "notificationID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := api.Store.DeleteNotification(r.Context(), id, identity.UserID); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

type broadcastRequest struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body"`
}

// BroadcastNotificationHandler sends a notification to every account. Admin
// only.
func (api *Api) BroadcastNotificationHandler(w http.ResponseWriter, r *http.Request) {
	var req broadcastRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	count, err := api.Store.BroadcastNotification(r.Context(), req.Title, req.Body)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]int64{"created": count})
}

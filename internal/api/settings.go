package api

import (
	"errors"
	"net/http"

	"github.com/OpsDesk-io/opsdesk/internal/auth"
	"github.com/OpsDesk-io/opsdesk/internal/models"
	"github.com/OpsDesk-io/opsdesk/internal/store"
)

// GetSettingsHandler returns the caller's settings, falling back to defaults
// when none have been saved yet.
func (api *Api) GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	settings, err := api.Store.GetSettings(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondJSON(w, http.StatusOK, models.DefaultSettings(identity.UserID))
			return
		}
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

type updateSettingsRequest struct {
	Theme              string `json:"theme" validate:"required,oneof=light dark"`
	Locale             string `json:"locale" validate:"required"`
	EmailNotifications bool   `json:"email_notifications"`
	ReminderLeadMins   int    `json:"reminder_lead_minutes" validate:"gte=0,lte=1440"`
}

// UpdateSettingsHandler upserts the caller's settings. The user id comes
// from the verified identity, never the body.
func (api *Api) UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	var req updateSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid settings")
		return
	}

	settings := &models.UserSettings{
		UserID:             identity.UserID,
		Theme:              req.Theme,
		Locale:             req.Locale,
		EmailNotifications: req.EmailNotifications,
		ReminderLeadMins:   req.ReminderLeadMins,
	}
	if err := api.Store.UpsertSettings(r.Context(), settings); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

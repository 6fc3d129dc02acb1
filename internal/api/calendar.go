package api

import (
	"net/http"
	"time"

	"github.com/OpsDesk-io/opsdesk/internal/auth"
	"github.com/OpsDesk-io/opsdesk/internal/models"
)

type eventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	EndsAt      time.Time `json:"ends_at" validate:"required"`
	AllDay      bool      `json:"all_day"`
}

func parseTimeParam(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// ListEventsHandler returns the caller's events, optionally windowed with
// ?from= and ?to= (RFC 3339).
func (api *Api) ListEventsHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	from, err := parseTimeParam(r, "from")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid from parameter, expected RFC 3339")
		return
	}
	to, err := parseTimeParam(r, "to")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid to parameter, expected RFC 3339")
		return
	}

	events, err := api.Store.ListEvents(r.Context(), identity.UserID, from, to)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, events)
}

func (api *Api) CreateEventHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "title, starts_at and ends_at are required")
		return
	}
	if req.EndsAt.Before(req.StartsAt) {
		respondError(w, http.StatusBadRequest, "ends_at must not be before starts_at")
		return
	}

	event := &models.CalendarEvent{
		UserID:      identity.UserID,
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		AllDay:      req.AllDay,
	}
	if err := api.Store.CreateEvent(r.Context(), event); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, event)
}

func (api *Api) GetEventHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	id, err := urlID(r, "eventID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	event, err := api.Store.GetEvent(r.Context(), id, identity.UserID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, event)
}

func (api *Api) UpdateEventHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	id, err := urlID(r, "eventID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "title, starts_at and ends_at are required")
		return
	}
	if req.EndsAt.Before(req.StartsAt) {
		respondError(w, http.StatusBadRequest, "ends_at must not be before starts_at")
		return
	}

	event, err := api.Store.GetEvent(r.Context(), id, identity.UserID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	event.Title = req.Title
	event.Description = req.Description
	event.StartsAt = req.StartsAt
	event.EndsAt = req.EndsAt
	event.AllDay = req.AllDay

	if err := api.Store.UpdateEvent(r.Context(), event); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, event)
}

func (api *Api) DeleteEventHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	id, err := urlID(r, "eventID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	if err := api.Store.DeleteEvent(r.Context(), id, identity.UserID); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

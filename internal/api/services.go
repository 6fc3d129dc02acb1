package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/OpsDesk-io/opsdesk/internal/models"
	"github.com/OpsDesk-io/opsdesk/internal/store"
)

type serviceRequest struct {
	ClientID     int64               `json:"client_id" validate:"required,gt=0"`
	Name         string              `json:"name" validate:"required"`
	Rate         float64             `json:"rate" validate:"gte=0"`
	BillingCycle models.BillingCycle `json:"billing_cycle" validate:"omitempty,oneof=monthly quarterly yearly"`
	Active       bool                `json:"active"`
}

func (api *Api) ListServicesHandler(w http.ResponseWriter, r *http.Request) {
	var clientID int64
	if raw := r.URL.Query().Get("client_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			respondError(w, http.StatusBadRequest, "invalid client_id filter")
			return
		}
		clientID = id
	}

	services, err := api.Store.ListServices(r.Context(), clientID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, services)
}

func (api *Api) CreateServiceHandler(w http.ResponseWriter, r *http.Request) {
	var req serviceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "client_id and name are required")
		return
	}

	if _, err := api.Store.GetClient(r.Context(), req.ClientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "client not found")
			return
		}
		respondStoreError(w, err)
		return
	}

	service := &models.ServiceItem{
		ClientID:     req.ClientID,
		Name:         req.Name,
		Rate:         req.Rate,
		BillingCycle: req.BillingCycle,
		Active:       req.Active,
	}
	if err := api.Store.CreateService(r.Context(), service); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, service)
}

func (api *Api) GetServiceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "serviceID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid service id")
		return
	}

	service, err := api.Store.GetService(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, service)
}

func (api *Api) UpdateServiceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "serviceID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid service id")
		return
	}

	var req serviceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "client_id and name are required")
		return
	}

	service, err := api.Store.GetService(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	service.Name = req.Name
	service.Rate = req.Rate
	service.Active = req.Active
	if req.BillingCycle != "" {
		service.BillingCycle = req.BillingCycle
	}

	if err := api.Store.UpdateService(r.Context(), service); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, service)
}

func (api *Api) DeleteServiceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "serviceID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid service id")
		return
	}

	if err := api.Store.DeleteService(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

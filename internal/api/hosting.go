package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/OpsDesk-io/opsdesk/internal/models"
	"github.com/OpsDesk-io/opsdesk/internal/store"
)

type hostingRequest struct {
	ClientID    int64                `json:"client_id" validate:"required,gt=0"`
	Domain      string               `json:"domain" validate:"required"`
	Provider    string               `json:"provider"`
	Plan        string               `json:"plan"`
	RenewalDate *time.Time           `json:"renewal_date"`
	Status      models.HostingStatus `json:"status" validate:"omitempty,oneof=active suspended cancelled"`
}

func (api *Api) ListHostingHandler(w http.ResponseWriter, r *http.Request) {
	var clientID int64
	if raw := r.URL.Query().Get("client_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			respondError(w, http.StatusBadRequest, "invalid client_id filter")
			return
		}
		clientID = id
	}

	accounts, err := api.Store.ListHostingAccounts(r.Context(), clientID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, accounts)
}

func (api *Api) CreateHostingHandler(w http.ResponseWriter, r *http.Request) {
	var req hostingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "client_id and domain are required")
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

	account := &models.HostingAccount{
		ClientID:    req.ClientID,
		Domain:      req.Domain,
		Provider:    req.Provider,
		Plan:        req.Plan,
		RenewalDate: req.RenewalDate,
		Status:      req.Status,
	}
	if err := api.Store.CreateHostingAccount(r.Context(), account); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, account)
}

func (api *Api) GetHostingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "hostingID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid hosting id")
		return
	}

	account, err := api.Store.GetHostingAccount(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

func (api *Api) UpdateHostingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "hostingID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid hosting id")
		return
	}

	var req hostingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "client_id and domain are required")
		return
	}

	account, err := api.Store.GetHostingAccount(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	account.Domain = req.Domain
	account.Provider = req.Provider
	account.Plan = req.Plan
	account.RenewalDate = req.RenewalDate
	if req.Status != "" {
		account.Status = req.Status
	}

	if err := api.Store.UpdateHostingAccount(r.Context(), account); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

func (api *Api) DeleteHostingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "hostingID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid hosting id")
		return
	}

	if err := api.Store.DeleteHostingAccount(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

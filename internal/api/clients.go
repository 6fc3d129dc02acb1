package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/OpsDesk-io/opsdesk/internal/models"
	"github.com/OpsDesk-io/opsdesk/internal/storage"
	"github.com/OpsDesk-io/opsdesk/internal/store"
)

type clientRequest struct {
	Name         string              `json:"name" validate:"required"`
	Company      string              `json:"company"`
	ContactName  string              `json:"contact_name"`
	ContactEmail string              `json:"contact_email" validate:"omitempty,email"`
	ContactPhone string              `json:"contact_phone"`
	Notes        string              `json:"notes"`
	Status       models.ClientStatus `json:"status" validate:"omitempty,oneof=active archived"`
}

func (api *Api) ListClientsHandler(w http.ResponseWriter, r *http.Request) {
	clients, err := api.Store.ListClients(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, clients)
}

func (api *Api) CreateClientHandler(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "client name is required")
		return
	}

	client := &models.Client{
		Name:         req.Name,
		Company:      req.Company,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Notes:        req.Notes,
		Status:       req.Status,
	}
	if err := api.Store.CreateClient(r.Context(), client); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, client)
}

func (api *Api) GetClientHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "clientID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid client id")
		return
	}

	client, err := api.Store.GetClient(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}

func (api *Api) UpdateClientHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "clientID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid client id")
		return
	}

	var req clientRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "client name is required")
		return
	}

	client, err := api.Store.GetClient(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	client.Name = req.Name
	client.Company = req.Company
	client.ContactName = req.ContactName
	client.ContactEmail = req.ContactEmail
	client.ContactPhone = req.ContactPhone
	client.Notes = req.Notes
	if req.Status != "" {
		client.Status = req.Status
	}

	if err := api.Store.UpdateClient(r.Context(), client); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}

// DeleteClientHandler removes a client together with its document folder.
// Stored files go first; the document rows then cascade with the client row.
func (api *Api) DeleteClientHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "clientID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid client id")
		return
	}

	if _, err := api.Store.GetClient(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}

	if err := api.Storage.DeletePrefix(r.Context(), storage.ClientPrefix(id)); err != nil {
		log.Printf("failed to delete documents for client %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := api.Store.DeleteClient(r.Context(), id); err != nil {
		// The client may have been deleted concurrently after the file
		// cleanup; that still leaves the system in the desired state.
		if !errors.Is(err, store.ErrNotFound) {
			respondStoreError(w, err)
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

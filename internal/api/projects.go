package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/OpsDesk-io/opsdesk/internal/models"
	"github.com/OpsDesk-io/opsdesk/internal/store"
)

type projectRequest struct {
	ClientID    int64                `json:"client_id" validate:"required,gt=0"`
	Name        string               `json:"name" validate:"required"`
	Description string               `json:"description"`
	Status      models.ProjectStatus `json:"status" validate:"omitempty,oneof=planned active on_hold done"`
	DueDate     *time.Time           `json:"due_date"`
	Budget      *float64             `json:"budget" validate:"omitempty,gte=0"`
}

func (api *Api) ListProjectsHandler(w http.ResponseWriter, r *http.Request) {
	var clientID int64
	if raw := r.URL.Query().Get("client_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			respondError(w, http.StatusBadRequest, "invalid client_id filter")
			return
		}
		clientID = id
	}

	projects, err := api.Store.ListProjects(r.Context(), clientID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, projects)
}

func (api *Api) CreateProjectHandler(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
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

	project := &models.Project{
		ClientID:    req.ClientID,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
		Budget:      req.Budget,
	}
	if err := api.Store.CreateProject(r.Context(), project); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, project)
}

func (api *Api) GetProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "projectID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	project, err := api.Store.GetProject(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

func (api *Api) UpdateProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "projectID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	var req projectRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "client_id and name are required")
		return
	}

	project, err := api.Store.GetProject(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	project.Name = req.Name
	project.Description = req.Description
	project.DueDate = req.DueDate
	project.Budget = req.Budget
	if req.Status != "" {
		project.Status = req.Status
	}

	if err := api.Store.UpdateProject(r.Context(), project); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

func (api *Api) DeleteProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "projectID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	if err := api.Store.DeleteProject(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

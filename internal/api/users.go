package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/OpsDesk-io/opsdesk/internal/auth"
	"github.com/OpsDesk-io/opsdesk/internal/models"
	"github.com/OpsDesk-io/opsdesk/internal/store"
)

// ListUsersHandler returns all accounts. Admin only.
func (api *Api) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := api.Store.ListUsers(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

type createUserRequest struct {
	Email    string      `json:"email" validate:"required"`
	Password string      `json:"password" validate:"required"`
	Role     models.Role `json:"role"`
}

// CreateUserHandler creates an account with an explicit role. Admin only.
func (api *Api) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	if req.Role == "" {
		req.Role = models.RoleUser
	}
	if !req.Role.Valid() {
		respondError(w, http.StatusBadRequest, "invalid role")
		return
	}
	if !auth.ValidateEmail(req.Email) {
		respondError(w, http.StatusBadRequest, "invalid email format")
		return
	}
	if !auth.ValidatePassword(req.Password) {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":        "password does not meet requirements",
			"requirements": auth.PasswordRequirements(),
		})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("password hash failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	user, err := api.Store.CreateUser(r.Context(), req.Email, hash, req.Role)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			respondError(w, http.StatusConflict, "email already registered")
			return
		}
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

// DeleteUserHandler removes an account. Admin only; admins cannot delete
// themselves.
func (api *Api) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	id, err := urlID(r, "userID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if id == identity.UserID {
		respondError(w, http.StatusBadRequest, "cannot delete your own account")
		return
	}

	if err := api.Store.DeleteUser(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

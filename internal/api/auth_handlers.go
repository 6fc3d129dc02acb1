package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/OpsDesk-io/opsdesk/internal/auth"
	"github.com/OpsDesk-io/opsdesk/internal/models"
	"github.com/OpsDesk-io/opsdesk/internal/store"
)

type credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterHandler creates a new account. The first account on a fresh
// install becomes the admin.
func (api *Api) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := decodeJSON(r, &creds); err != nil {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	if !auth.ValidateEmail(creds.Email) {
		respondError(w, http.StatusBadRequest, "invalid email format")
		return
	}
	if !auth.ValidatePassword(creds.Password) {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":        "password does not meet requirements",
			"requirements": auth.PasswordRequirements(),
		})
		return
	}

	hash, err := auth.HashPassword(creds.Password)
	if err != nil {
		log.Printf("password hash failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	role := models.RoleUser
	count, err := api.Store.CountUsers(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if count == 0 {
		role = models.RoleAdmin
	}

	user, err := api.Store.CreateUser(r.Context(), creds.Email, hash, role)
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

// LoginHandler validates credentials and issues an identity token. Unknown
// email and wrong password produce the same response so accounts cannot be
// enumerated.
func (api *Api) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := decodeJSON(r, &creds); err != nil {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := api.Store.GetUserByEmail(r.Context(), creds.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		respondStoreError(w, err)
		return
	}

	if !user.CheckPassword(creds.Password) {
		respondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := api.Tokens.GenerateToken(user)
	if err != nil {
		log.Printf("token generation failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// MeHandler returns the authenticated user's account.
func (api *Api) MeHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	user, err := api.Store.GetUserByID(r.Context(), identity.UserID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// ChangePasswordHandler verifies the current password and stores a new hash.
func (api *Api) ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "current_password and new_password are required")
		return
	}

	user, err := api.Store.GetUserByID(r.Context(), identity.UserID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	if !user.CheckPassword(req.CurrentPassword) {
		respondError(w, http.StatusBadRequest, "current password is incorrect")
		return
	}
	if !auth.ValidatePassword(req.NewPassword) {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":        "password does not meet requirements",
			"requirements": auth.PasswordRequirements(),
		})
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		log.Printf("password hash failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := api.Store.UpdateUserPassword(r.Context(), user.ID, hash); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

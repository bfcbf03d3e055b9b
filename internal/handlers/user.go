package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/daybook-app/apiserver/internal/logger"
	"github.com/daybook-app/apiserver/internal/services"
	"github.com/daybook-app/apiserver/internal/store"
	"github.com/go-chi/chi/v5"
)

// UserHandler provides profile endpoints.
type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UserRouter registers user routes on the given router. POST is an
// unauthenticated alias of /auth/register; GET and PUT operate on the
// caller's own record.
func UserRouter(r chi.Router, handler *UserHandler, authHandler *AuthHandler, authMiddleware func(http.Handler) http.Handler) {
	r.Post("/", authHandler.Register)
	r.With(authMiddleware).Get("/", handler.GetProfile)
	r.With(authMiddleware).Put("/", handler.UpdateProfile)
}

// UpdateProfileRequest carries optional profile fields. Absent fields are
// left unchanged; present-but-invalid fields are skipped.
type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// GetProfile returns the authenticated user's record.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		logger.FromRequest(r).Err(err).Msg("profile fetch failed")
		writeError(w, http.StatusInternalServerError, "Failed to load user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UpdateProfile applies a partial update to the authenticated user.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, services.ProfileUpdate{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, services.ErrUserExists):
			writeError(w, http.StatusBadRequest, "User already exists")
		default:
			logger.FromRequest(r).Err(err).Msg("profile update failed")
			writeError(w, http.StatusInternalServerError, "Failed to update user")
		}
		return
	}

	writeJSON(w, http.StatusOK, user)
}

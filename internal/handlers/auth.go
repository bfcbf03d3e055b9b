package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/daybook-app/apiserver/internal/auth"
	"github.com/daybook-app/apiserver/internal/logger"
	"github.com/daybook-app/apiserver/internal/services"
	"github.com/go-chi/chi/v5"
)

// AuthHandler provides registration, login, and logout endpoints.
type AuthHandler struct {
	userService *services.UserService
	tokens      *auth.TokenService
	revocations auth.RevocationStore
}

func NewAuthHandler(userService *services.UserService, tokens *auth.TokenService, revocations auth.RevocationStore) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		tokens:      tokens,
		revocations: revocations,
	}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, handler *AuthHandler, authMiddleware func(http.Handler) http.Handler) {
	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.With(authMiddleware).Post("/logout", handler.Logout)
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// Register creates a new user account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeRegisterError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login verifies credentials and returns a signed token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			writeError(w, http.StatusBadRequest, "Please provide all the required details")
		case errors.Is(err, services.ErrInvalidEmail):
			writeError(w, http.StatusBadRequest, "Invalid email format")
		case errors.Is(err, services.ErrInvalidCredentials):
			writeError(w, http.StatusBadRequest, "Invalid email or password")
		default:
			logger.FromRequest(r).Err(err).Msg("login failed")
			writeError(w, http.StatusInternalServerError, "Failed to authenticate")
		}
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token})
}

// Logout revokes the caller's token. With the default no-op revocation
// store this only tells the client to discard the token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tokenString := tokenFromContext(r.Context())
	if tokenString != "" {
		claims, err := h.tokens.Verify(tokenString)
		if err == nil {
			if err := h.revocations.Revoke(r.Context(), tokenString, claims.ExpiresAt); err != nil {
				logger.FromRequest(r).Err(err).Msg("token revocation failed")
				writeError(w, http.StatusInternalServerError, "Failed to log out")
				return
			}
		}
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Logged out"})
}

func writeRegisterError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "Please provide all the required details")
	case errors.Is(err, services.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, "Invalid email format")
	case errors.Is(err, services.ErrUsernameTooShort):
		writeError(w, http.StatusBadRequest, "Username is too short")
	case errors.Is(err, services.ErrUserExists):
		writeError(w, http.StatusBadRequest, "User already exists")
	default:
		writeError(w, http.StatusInternalServerError, "Failed to create user")
	}
}

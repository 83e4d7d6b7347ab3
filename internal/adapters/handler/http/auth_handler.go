package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/healcome/fitness/internal/core/domain"
	"github.com/healcome/fitness/internal/core/ports"
)

type AuthHandler struct {
	service ports.AuthService
	cookies *CookieManager
}

func NewAuthHandler(service ports.AuthService, cookies *CookieManager) *AuthHandler {
	return &AuthHandler{service: service, cookies: cookies}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Register(r.Context(), req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			writeError(w, http.StatusBadRequest, "user already exists")
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "user registered successfully"})
}

// Login verifies the password and delivers both credentials as cookies. The
// response body never carries a token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	creds, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "email not registered")
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "wrong password")
		default:
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.cookies.setAccess(w, creds.AccessToken)
	h.cookies.setRefresh(w, creds.RefreshToken)
	writeJSON(w, http.StatusOK, map[string]string{"message": "login successful"})
}

// Logout revokes the presented session and clears both cookies. Calling it
// without a valid session still succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(refreshCookieName); err == nil && cookie.Value != "" {
		if err := h.service.Logout(r.Context(), cookie.Value); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to logout")
			return
		}
	}

	h.cookies.clear(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "logout successful"})
}

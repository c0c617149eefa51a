package handler

import (
	"encoding/json"
	"net/http"

	"fresh-kart/internal/auth"

	"github.com/rs/zerolog"
)

// AdminHandler handles administrator session endpoints.
type AdminHandler struct {
	auth   *auth.Manager
	logger zerolog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(auth *auth.Manager, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		auth:   auth,
		logger: logger.With().Str("handler", "admin").Logger(),
	}
}

// loginRequest is the POST /api/admin/login payload.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/admin/login requests.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required", h.logger)
		return
	}

	if !h.auth.VerifyCredentials(req.Username, req.Password) {
		h.logger.Warn().Str("username", req.Username).Msg("failed admin login attempt")
		writeError(w, http.StatusUnauthorized, "invalid credentials", h.logger)
		return
	}

	token, err := h.auth.IssueToken(req.Username)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to issue admin token")
		writeError(w, http.StatusInternalServerError, "authentication failed", h.logger)
		return
	}

	http.SetCookie(w, h.auth.SessionCookie(token))
	h.logger.Info().Str("username", req.Username).Msg("admin logged in")
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// CheckAuth handles GET /api/admin/check-auth requests.
func (h *AdminHandler) CheckAuth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	cookie, err := r.Cookie(auth.CookieName)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]bool{"authenticated": false})
		return
	}

	if _, err := h.auth.VerifyToken(cookie.Value); err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]bool{"authenticated": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"authenticated": true})
}

// Logout handles POST /api/admin/logout requests.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	http.SetCookie(w, h.auth.ExpiredCookie())
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	pkgauth "github.com/matiasleandrokruk/unitai/pkg/auth"
)

// adminSubject is the only identity a token can carry.
const adminSubject = "admin"

// AuthHandler exchanges the admin password for a bearer token.
type AuthHandler struct {
	secret       string
	passwordHash string
	ttl          time.Duration
}

// NewAuthHandler creates an AuthHandler. Token issuing is disabled unless
// both secret and passwordHash are set.
func NewAuthHandler(secret, passwordHash string, ttl time.Duration) *AuthHandler {
	return &AuthHandler{secret: secret, passwordHash: passwordHash, ttl: ttl}
}

// TokenRequest is the body for POST /auth/token.
type TokenRequest struct {
	Password string `json:"password"`
}

// TokenResponse carries the signed token.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

// Token handles POST /auth/token.
//
// Response codes:
//   - 200 OK: token issued
//   - 400 Bad Request: invalid JSON or empty password
//   - 401 Unauthorized: password does not match
//   - 404 Not Found: admin auth not configured
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if h.secret == "" || h.passwordHash == "" {
		writeError(w, http.StatusNotFound, "admin auth is not configured")
		return
	}

	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "password is required")
		return
	}
	if !pkgauth.VerifyPassword(h.passwordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := pkgauth.IssueToken(h.secret, adminSubject, h.ttl)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	ttl := h.ttl
	if ttl <= 0 {
		ttl = pkgauth.DefaultExpiry
	}
	writeJSON(w, http.StatusOK, TokenResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(ttl).UTC().Format(time.RFC3339),
	})
}

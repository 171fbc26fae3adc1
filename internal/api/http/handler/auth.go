package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/avasquez/furniture-store-api/internal/logger"
)

// AuthService defines user registration, login and confirmation operations.
type AuthService interface {
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (accessToken string, refreshToken string, err error)
	ConfirmEmail(ctx context.Context, userID uuid.UUID, urlSafeCode string) (string, error)
}

// TokenService defines token refresh and revoke operations.
type TokenService interface {
	Refresh(ctx context.Context, accessToken string, refreshValue string) (newAccess string, newRefresh string, err error)
	RevokeByValue(ctx context.Context, refreshValue string) error
}

// AuthResult is the response envelope of every authentication endpoint.
// Either Result is true and the tokens are set, or Errors is non-empty.
type AuthResult struct {
	Result       bool     `json:"result"`
	Token        string   `json:"token,omitempty"`
	RefreshToken string   `json:"refreshToken,omitempty"`
	Errors       []string `json:"errors,omitempty"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type revokeRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService  AuthService
	tokenService TokenService
	logger       *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, tokenService TokenService, logger *logger.Logger) *Auth {
	return &Auth{
		authService:  authService,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Register creates an unconfirmed account and dispatches the confirmation
// email. No tokens are returned.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, AuthResult{Errors: []string{"Invalid payload"}})
		return
	}

	h.logger.Debug("Auth handler: processing registration request",
		"email", req.Email)

	if err := h.authService.Register(r.Context(), req.Email, req.Password); err != nil {
		h.logger.Error("Auth handler: registration failed",
			"email", req.Email,
			"error", err.Error())
		writeAuthError(w, err)
		return
	}

	h.logger.Info("Auth handler: registration completed",
		"email", req.Email)

	writeJSON(w, http.StatusOK, AuthResult{Result: true})
}

// Login verifies credentials and returns a fresh token pair.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, AuthResult{Errors: []string{"Invalid payload"}})
		return
	}

	h.logger.Debug("Auth handler: processing login request",
		"email", req.Email)

	access, refresh, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: login failed",
			"email", req.Email,
			"error", err.Error())
		writeAuthError(w, err)
		return
	}

	h.logger.Info("Auth handler: login completed",
		"email", req.Email)

	writeJSON(w, http.StatusOK, AuthResult{Result: true, Token: access, RefreshToken: refresh})
}

// ConfirmEmail consumes a confirmation link and reports a status string.
func (h *Auth) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	userIDParam := r.URL.Query().Get("userId")
	code := r.URL.Query().Get("code")
	if userIDParam == "" || code == "" {
		http.Error(w, "Invalid email confirmation url", http.StatusBadRequest)
		return
	}

	userID, err := uuid.Parse(userIDParam)
	if err != nil {
		http.Error(w, "Invalid email confirmation url", http.StatusBadRequest)
		return
	}

	status, err := h.authService.ConfirmEmail(r.Context(), userID, code)
	if err != nil {
		h.logger.Error("Auth handler: email confirmation failed",
			"user_id", userID,
			"error", err.Error())
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(status))
}

// Refresh rotates an access+refresh pair to a new one.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" || req.RefreshToken == "" {
		writeJSON(w, http.StatusBadRequest, AuthResult{Errors: []string{"Invalid payload"}})
		return
	}

	h.logger.Debug("Auth handler: processing token refresh request")

	access, refresh, err := h.tokenService.Refresh(r.Context(), req.Token, req.RefreshToken)
	if err != nil {
		h.logger.Error("Auth handler: token refresh failed",
			"error", err.Error())
		writeAuthError(w, err)
		return
	}

	h.logger.Info("Auth handler: token refresh successful")

	writeJSON(w, http.StatusOK, AuthResult{Result: true, Token: access, RefreshToken: refresh})
}

// Revoke invalidates a refresh token.
func (h *Auth) Revoke(w http.ResponseWriter, r *http.Request) {
	var req revokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		writeJSON(w, http.StatusBadRequest, AuthResult{Errors: []string{"Invalid payload"}})
		return
	}

	if err := h.tokenService.RevokeByValue(r.Context(), req.RefreshToken); err != nil {
		h.logger.Error("Auth handler: token revoke failed",
			"error", err.Error())
		writeAuthError(w, err)
		return
	}

	h.logger.Info("Auth handler: token revoke successful")

	writeJSON(w, http.StatusOK, AuthResult{Result: true})
}

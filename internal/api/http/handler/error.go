package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avasquez/furniture-store-api/internal/apierrors"
	"github.com/avasquez/furniture-store-api/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeAuthError maps a service error onto an AuthResult failure envelope.
// Anything outside the known vocabulary is downgraded to the generic
// internal error so internal state never leaks.
func writeAuthError(w http.ResponseWriter, err error) {
	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		apiErr = apierrors.NewErrInternal()
	}
	writeJSON(w, apiErr.HTTPStatus, AuthResult{Result: false, Errors: apiErr.Messages()})
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleError maps CRUD errors onto plain error payloads.
func handleError(w http.ResponseWriter, err error) {
	if errors.Is(err, model.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

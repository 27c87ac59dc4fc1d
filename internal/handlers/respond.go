package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"auction-api/internal/apperrors"
)

type errorBody struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, code int, message string, details ...string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(errorBody{Error: message, Details: details})
}

// respondWithServiceError maps a service error to its status code. Anything
// outside the known kinds is a 500.
func respondWithServiceError(w http.ResponseWriter, err error) {
	if ve, ok := apperrors.IsValidation(err); ok {
		respondWithError(w, http.StatusBadRequest, "Invalid or missing fields", ve.Fields...)
		return
	}
	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		respondWithError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		respondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, err.Error())
	}
}

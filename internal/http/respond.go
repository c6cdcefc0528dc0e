package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/JainishBorsaniya/transaction-wallet-app/internal/service/auth"
)

// writeJSON writes JSON response with status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError sends an error message.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps service-layer errors onto HTTP responses. Internal
// failures are reported opaquely; details stay in the logs.
func writeServiceError(w http.ResponseWriter, err error) {
	var validation *auth.ValidationError
	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": validation.Fields,
		})
	case errors.Is(err, auth.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "user already exists")
	case errors.Is(err, auth.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "incorrect password")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

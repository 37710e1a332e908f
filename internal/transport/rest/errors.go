package rest

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/logging"
)

// Error kinds returned in response bodies.
const (
	kindValidation   = "validation_error"
	kindNotFound     = "not_found"
	kindUpload       = "upload_error"
	kindStorage      = "storage_error"
	kindUnauthorized = "unauthorized"
)

type errorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error().Err(err).Msg("failed to encode response body")
	}
}

func writeError(w http.ResponseWriter, status int, kind, message, field string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Kind: kind, Message: message, Field: field}})
}

// writeDomainError maps domain errors onto the HTTP error taxonomy. Unknown
// errors are reported as storage failures without leaking their text.
func writeDomainError(w http.ResponseWriter, err error) {
	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		writeError(w, http.StatusBadRequest, kindValidation, valErr.Error(), valErr.Field)
		return
	}
	if errors.Is(err, domain.ErrEntryNotFound) {
		writeError(w, http.StatusNotFound, kindNotFound, "catalog entry not found", "")
		return
	}
	var upErr *domain.UploadError
	if errors.As(err, &upErr) {
		logging.Error().Err(err).Msg("image upload failed")
		writeError(w, http.StatusInternalServerError, kindUpload, "image upload failed", "")
		return
	}

	logging.Error().Err(err).Msg("request failed")
	writeError(w, http.StatusInternalServerError, kindStorage, "internal error", "")
}

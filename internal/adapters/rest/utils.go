package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"search-service/internal/core/domain"
	"search-service/internal/core/port"
)

// RespondWithJSON writes any payload with the given status.
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// WriteSuccess wraps data in the success envelope.
func WriteSuccess(w http.ResponseWriter, code int, data interface{}, pagination *PaginationMeta) {
	RespondWithJSON(w, code, Envelope{
		Success:    true,
		Data:       data,
		Pagination: pagination,
	})
}

// WriteJSONError sends a failure envelope with a single message.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, Envelope{
		Success: false,
		Error:   message,
	})
}

// WriteValidationError sends the field-keyed validation map.
func WriteValidationError(w http.ResponseWriter, fields map[string]string) {
	RespondWithJSON(w, http.StatusUnprocessableEntity, Envelope{
		Success: false,
		Error:   "validation failed",
		Errors:  fields,
	})
}

// WriteDomainError maps a core error onto the envelope: validation failures
// and missing references are client errors, anything else is a generic server
// error that leaks no query internals.
func WriteDomainError(w http.ResponseWriter, logger port.LoggerPort, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		WriteValidationError(w, verr.Fields)
		return
	}

	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		WriteJSONError(w, http.StatusNotFound, notFound.Error())
		return
	}

	logger.Error("Request failed with server error", err, nil)
	WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
}

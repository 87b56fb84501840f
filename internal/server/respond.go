package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/splittab/splittab/internal/models"
)

// envelope is the uniform response shape for every endpoint.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{
		Success: status < http.StatusBadRequest,
		Data:    data,
		Message: message,
	})
}

// respondError translates the domain error taxonomy to status codes:
// validation problems are the client's fault, missing records are not
// found, and anything else (store failures included) is a server error.
func respondError(w http.ResponseWriter, err error) {
	var validationErr *models.ValidationError
	var notFoundErr *models.NotFoundError
	var fieldErrs validator.ValidationErrors

	switch {
	case errors.As(err, &validationErr):
		respondJSON(w, http.StatusBadRequest, nil, validationErr.Error())
	case errors.As(err, &fieldErrs):
		respondJSON(w, http.StatusBadRequest, nil, fieldErrs.Error())
	case errors.As(err, &notFoundErr):
		respondJSON(w, http.StatusNotFound, nil, notFoundErr.Error())
	default:
		slog.Error("request failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, nil, "internal server error")
	}
}

// decodeJSON parses the request body into dst and runs struct validation.
func (s *Server) decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return models.NewValidationError("invalid JSON body")
	}
	if err := s.validate.Struct(dst); err != nil {
		return err
	}
	return nil
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/rpupo63/project-catalog-backend/errs"
	"github.com/rs/zerolog"
)

type Responder struct {
	logger      zerolog.Logger
	development bool
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger: logger}
}

// WithDevelopment makes 500 responses carry a stack trace and the error cause in the body
func (r Responder) WithDevelopment(development bool) Responder {
	r.development = development
	return r
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteJSONStatus(w, http.StatusOK, data)
}

func (r Responder) WriteJSONStatus(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return generic internal error
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		response := map[string]interface{}{
			"error":   "Internal Server Error",
			"message": err.Error(),
			"status":  "error",
		}
		if r.development {
			response["stack"] = string(debug.Stack())
		}
		r.WriteJSONStatus(w, http.StatusInternalServerError, response)
		return
	}

	response := map[string]interface{}{
		"error":  apiErr.Message(),
		"status": "error",
	}

	// Add field information if present (for validation errors)
	if apiErr.Field != "" {
		response["field"] = apiErr.Field
	}
	if apiErr.Details != "" {
		response["details"] = apiErr.Details
	}
	if apiErr.Cause != nil {
		if apiErr.StatusCode >= http.StatusInternalServerError {
			r.logger.Error().Err(apiErr.Cause).Int("status", apiErr.StatusCode).Msg(apiErr.Error())
		}
		if r.development {
			response["cause"] = apiErr.GetFullError()
		}
	}
	if r.development && apiErr.StatusCode >= http.StatusInternalServerError {
		response["stack"] = string(debug.Stack())
	}

	r.WriteJSONStatus(w, apiErr.StatusCode, response)
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}

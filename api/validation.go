package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/project-catalog-backend/errs"
	"github.com/rs/zerolog"
)

const maxJSONBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json field names so errors match the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeAndValidate reads a JSON body into dst and runs struct validation on it.
// Every failure comes back as a 400 *errs.ApiErr.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, logger zerolog.Logger, payloadType string, dst any) error {
	bodyBytes, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to read request body")
		return errs.NewBadRequestError("failed to read request body")
	}

	if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(dst); err != nil {
		logger.Error().Err(err).Str("body", string(bodyBytes)).Msgf("Failed to decode %s request body", payloadType)
		return errs.NewMalformedPayloadError(payloadType, err)
	}

	return validationError(validate.Struct(dst))
}

// validationError turns the first validator failure into a field-level bad request
func validationError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errs.NewBadRequestError(err.Error())
	}

	fe := fieldErrs[0]
	field := strings.TrimPrefix(fe.Namespace(), typeNamespace(fe))
	switch fe.Tag() {
	case "required":
		return errs.NewMissingRequiredFieldError(field)
	case "max":
		return errs.NewInvalidFieldError(field, fmt.Sprintf("must be at most %s characters", fe.Param()))
	case "gte":
		return errs.NewInvalidFieldError(field, fmt.Sprintf("must be at least %s", fe.Param()))
	case "url":
		return errs.NewInvalidFieldError(field, "must be a valid URL")
	default:
		return errs.NewInvalidFieldError(field, fmt.Sprintf("failed %q validation", fe.Tag()))
	}
}

// typeNamespace is the "Struct." prefix validator puts in front of field paths
func typeNamespace(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[:i+1]
	}
	return ""
}

package http

import (
	"errors"
	"fmt"
	"net/http"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/logger"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/labstack/echo/v4"
)

type Code string

const (
	CodeValidation    Code = "VALIDATION_ERROR"
	CodeUnauthorized  Code = "UNAUTHORIZED"
	CodeForbidden     Code = "FORBIDDEN"
	CodeNotFound      Code = "NOT_FOUND"
	CodeConflict      Code = "CONFLICT"
	CodeStateConflict Code = "STATE_CONFLICT"
	CodeInternal      Code = "INTERNAL_ERROR"
)

type metadata struct {
	status        int
	retryable     bool
	publicMessage string
	exposeCause   bool
}

var metadataByCode = map[Code]metadata{
	CodeValidation:    {status: http.StatusBadRequest, publicMessage: "validation failed", exposeCause: true},
	CodeUnauthorized:  {status: http.StatusUnauthorized, publicMessage: "authentication required"},
	CodeForbidden:     {status: http.StatusForbidden, publicMessage: "access denied", exposeCause: true},
	CodeNotFound:      {status: http.StatusNotFound, publicMessage: "resource not found", exposeCause: true},
	CodeConflict:      {status: http.StatusConflict, publicMessage: "conflict detected", exposeCause: true},
	CodeStateConflict: {status: http.StatusUnprocessableEntity, publicMessage: "state transition disallowed", exposeCause: true},
	CodeInternal:      {status: http.StatusInternalServerError, retryable: true, publicMessage: "internal server error"},
}

// Error is an error already classified for the wire.
type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func newError(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func wrapError(code Code, cause error, message string) *Error {
	return &Error{code: code, message: message, cause: cause}
}

func (e *Error) withDetails(details any) *Error {
	e.details = details
	return e
}

func (e *Error) Code() Code { return e.code }

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error { return e.cause }

type errorBody struct {
	Error errorPayload `json:"error"`
}

type errorPayload struct {
	Code      Code   `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
	Details   any    `json:"details,omitempty"`
}

// conflictKinds lists the domain conflicts in match order; the kind doubles as the
// metrics outcome label.
var conflictKinds = []struct {
	sentinel error
	kind     string
}{
	{errs.ErrCapacityExceeded, "capacity_exceeded"},
	{errs.ErrOverAllocation, "over_allocation"},
	{errs.ErrAlreadyAssigned, "already_assigned"},
	{errs.ErrNotEligible, "not_eligible"},
	{errs.ErrRouteCapacityWindowExceeded, "route_capacity_window_exceeded"},
	{errs.ErrVersionIsInvalid, "version_conflict"},
}

// classify maps any handler error onto a wire error.
func classify(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		return wrapError(CodeValidation, err, "request does not match the contract").
			withDetails(map[string]string{"error": reqErr.Error()})
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return fromHTTPError(httpErr)
	}

	for _, c := range conflictKinds {
		if errors.Is(err, c.sentinel) {
			return wrapError(CodeConflict, err, err.Error()).withDetails(map[string]string{"kind": c.kind})
		}
	}

	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return wrapError(CodeValidation, err, "validation failed").
			withDetails(map[string]string{"error": err.Error()})
	case errors.Is(err, errs.ErrObjectNotFound):
		return wrapError(CodeNotFound, err, err.Error())
	case errors.Is(err, errs.ErrAccessDenied):
		return wrapError(CodeForbidden, err, err.Error())
	case errors.Is(err, errs.ErrInvalidStateTransition):
		return wrapError(CodeStateConflict, err, err.Error())
	}

	return wrapError(CodeInternal, err, "internal server error")
}

func fromHTTPError(httpErr *echo.HTTPError) *Error {
	message := fmt.Sprintf("%v", httpErr.Message)
	switch httpErr.Code {
	case http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusRequestEntityTooLarge:
		return wrapError(CodeValidation, httpErr, message)
	case http.StatusUnauthorized:
		return wrapError(CodeUnauthorized, httpErr, message)
	case http.StatusForbidden:
		return wrapError(CodeForbidden, httpErr, message)
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return wrapError(CodeNotFound, httpErr, message)
	}
	return wrapError(CodeInternal, httpErr, message)
}

// outcome is the label recorded in the operation metrics.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	for _, c := range conflictKinds {
		if errors.Is(err, c.sentinel) {
			return c.kind
		}
	}
	switch classify(err).code {
	case CodeValidation:
		return "invalid"
	case CodeUnauthorized:
		return "unauthorized"
	case CodeForbidden:
		return "forbidden"
	case CodeNotFound:
		return "not_found"
	case CodeStateConflict:
		return "invalid_state"
	case CodeConflict:
		return "conflict"
	}
	return "error"
}

// ErrorHandler writes every error in the JSON envelope and logs server faults.
func ErrorHandler(logg *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		apiErr := classify(err)
		meta, ok := metadataByCode[apiErr.code]
		if !ok {
			meta = metadataByCode[CodeInternal]
		}

		message := meta.publicMessage
		details := apiErr.details
		if meta.exposeCause && apiErr.message != "" {
			message = apiErr.message
		}
		if !meta.exposeCause {
			details = nil
		}

		if meta.status >= http.StatusInternalServerError && logg != nil {
			logg.Error(c.Request().Context(), "request failed", err)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(meta.status)
		} else {
			writeErr = c.JSON(meta.status, errorBody{Error: errorPayload{
				Code:      apiErr.code,
				Message:   message,
				Retryable: meta.retryable,
				Details:   details,
			}})
		}
		if writeErr != nil && logg != nil {
			logg.Error(c.Request().Context(), "write error response", writeErr)
		}
	}
}

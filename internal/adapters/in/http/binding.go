package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	return v
}

// bindBody decodes a strict JSON body and runs the struct validation tags.
func bindBody(c echo.Context, dest any) error {
	body := c.Request().Body
	defer func() {
		_, _ = io.Copy(io.Discard, body)
	}()

	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return wrapError(CodeValidation, err, "invalid request body").
			withDetails(map[string]string{"error": err.Error()})
	}
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *Error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := map[string]string{}
		for _, fieldErr := range fieldErrs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return newError(CodeValidation, "validation failed").withDetails(details)
	}
	return wrapError(CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "uuid":
		return "must be a UUID"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	}
	return "is invalid"
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, wrapError(CodeValidation, err, fmt.Sprintf("invalid path parameter %s", name))
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, wrapError(CodeValidation, err, fmt.Sprintf("invalid path parameter %s", name))
	}
	return id, nil
}

// queryString returns nil when the parameter is absent.
func queryString(c echo.Context, name string) (*string, error) {
	var value *string
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &value); err != nil {
		return nil, wrapError(CodeValidation, err, fmt.Sprintf("invalid query parameter %s", name))
	}
	if value != nil && strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	return value, nil
}

func queryUUID(c echo.Context, name string) (*kernel.UUID, error) {
	raw, err := queryString(c, name)
	if err != nil || raw == nil {
		return nil, err
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, wrapError(CodeValidation, err, fmt.Sprintf("invalid query parameter %s", name))
	}
	return &id, nil
}

// queryTime parses an RFC 3339 timestamp, falling back when absent.
func queryTime(c echo.Context, name string, fallback time.Time) (time.Time, error) {
	var value *time.Time
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &value); err != nil {
		return time.Time{}, wrapError(CodeValidation, err, fmt.Sprintf("invalid query parameter %s", name))
	}
	if value == nil {
		return fallback, nil
	}
	return value.UTC(), nil
}

func parseUUIDField(name, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, newError(CodeValidation, "validation failed").
			withDetails(map[string]string{name: "must be a UUID"})
	}
	return id, nil
}

package http

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openapiYAML []byte

// Contract is the loaded OpenAPI document and its router.
type Contract struct {
	doc    *openapi3.T
	router routers.Router
	json   []byte
}

// LoadContract parses and validates the embedded document.
func LoadContract(ctx context.Context) (*Contract, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiYAML)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode openapi document: %w", err)
	}
	return &Contract{doc: doc, router: router, json: raw}, nil
}

func (c *Contract) Version() string {
	return c.doc.Info.Version
}

// ReadDoc serves the document to the swagger UI.
func (c *Contract) ReadDoc() string {
	return string(c.json)
}

var registerDocOnce sync.Once

// registerSwagger publishes the contract under the default swag instance read by
// echo-swagger. swag panics on a second registration, so only the first contract
// loaded in the process is served.
func registerSwagger(c *Contract) {
	registerDocOnce.Do(func() {
		swag.Register(swag.Name, c)
	})
}

// ValidateRequests rejects requests that do not match the contract. Authentication
// is enforced by its own middleware, so security requirements are not re-checked here.
func (c *Contract) ValidateRequests() echo.MiddlewareFunc {
	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ec echo.Context) error {
			req := ec.Request()
			route, pathParams, err := c.router.FindRoute(req)
			if err != nil {
				switch {
				case errors.Is(err, routers.ErrPathNotFound):
					return newError(CodeNotFound, "route not found")
				case errors.Is(err, routers.ErrMethodNotAllowed):
					return newError(CodeNotFound, "method not allowed")
				}
				return wrapError(CodeInternal, err, "resolve route")
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return wrapError(CodeValidation, err, "request does not match the contract").
					withDetails(map[string]string{"error": err.Error()})
			}
			return next(ec)
		}
	}
}

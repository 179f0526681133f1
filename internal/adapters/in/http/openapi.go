package http

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPISpec []byte

// GetSwagger parses and validates the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPISpec)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

// swaggerDoc serves the OpenAPI document to swag, and through it to the
// swagger UI handler.
type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

var registerDocOnce sync.Once

// RegisterSwaggerDoc publishes doc under swag.Name. Registration happens
// once per process; swag panics on duplicates.
func RegisterSwaggerDoc(doc *openapi3.T) error {
	payload, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode openapi document: %w", err)
	}

	registerDocOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{json: string(payload)})
	})
	return nil
}

// RequestValidator rejects requests that do not match the operation declared
// in doc. It must run after routing: the echo route path selects the
// operation. Routes missing from doc pass through.
func RequestValidator(doc *openapi3.T, baseURL string) echo.MiddlewareFunc {
	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := toOpenAPIPath(strings.TrimPrefix(c.Path(), baseURL))
			pathItem := doc.Paths.Value(path)
			if pathItem == nil {
				return next(c)
			}
			req := c.Request()
			operation := pathItem.GetOperation(req.Method)
			if operation == nil {
				return next(c)
			}

			pathParams := make(map[string]string, len(c.ParamNames()))
			values := c.ParamValues()
			for i, name := range c.ParamNames() {
				if i < len(values) {
					pathParams[name] = values[i]
				}
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route: &routers.Route{
					Spec:      doc,
					Path:      path,
					PathItem:  pathItem,
					Method:    req.Method,
					Operation: operation,
				},
				Options: options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return c.JSON(http.StatusBadRequest, Error{
					Code:    http.StatusBadRequest,
					Message: validationMessage(err),
				})
			}

			return next(c)
		}
	}
}

// toOpenAPIPath turns an echo route ("/packages/:id") into its OpenAPI form ("/packages/{id}").
func toOpenAPIPath(route string) string {
	segments := strings.Split(route, "/")
	for i, segment := range segments {
		if strings.HasPrefix(segment, ":") {
			segments[i] = "{" + segment[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if !errors.As(err, &reqErr) {
		return "Invalid request"
	}

	reason := reqErr.Reason
	var schemaErr *openapi3.SchemaError
	if errors.As(reqErr.Err, &schemaErr) {
		reason = schemaErr.Reason
		if pointer := schemaErr.JSONPointer(); len(pointer) > 0 {
			reason = fmt.Sprintf("%s: %s", strings.Join(pointer, "."), reason)
		}
	} else if reason == "" && reqErr.Err != nil {
		reason = reqErr.Err.Error()
	}

	switch {
	case reqErr.Parameter != nil:
		return fmt.Sprintf("Invalid parameter %s: %s", reqErr.Parameter.Name, reason)
	case reqErr.RequestBody != nil:
		return fmt.Sprintf("Invalid request body: %s", reason)
	default:
		return fmt.Sprintf("Invalid request: %s", reason)
	}
}

package http

import (
	"context"
	"embed"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

//go:embed openapi/*.yaml
var openapiFiles embed.FS

var swagMu sync.Mutex

// apiDoc serves a rendered OpenAPI document to the swag registry.
type apiDoc string

func (d apiDoc) ReadDoc() string { return string(d) }

// LoadOpenAPI parses and validates the API document of service.
func LoadOpenAPI(ctx context.Context, service string) (*openapi3.T, error) {
	data, err := openapiFiles.ReadFile("openapi/" + service + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("no api document for %s: %w", service, err)
	}

	doc, err := openapi3.NewLoader().LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("parse api document of %s: %w", service, err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid api document of %s: %w", service, err)
	}
	return doc, nil
}

// registerDocs serves the document at /openapi.json and the swagger UI at /swagger/.
func registerDocs(e *echo.Echo, service string, doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return err
	}

	swagMu.Lock()
	if swag.GetSwagger(service) == nil {
		swag.Register(service, apiDoc(raw))
	}
	swagMu.Unlock()

	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, raw)
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(service)))
	return nil
}

package http

import (
	"log/slog"
	"net/http"
	"sync"

	"ordering/internal/generated/servers"
	"ordering/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

const serviceName = "ordering"

var registerDocOnce sync.Once

type openAPIDoc struct {
	json string
}

func (d openAPIDoc) ReadDoc() string {
	return d.json
}

// NewRouter builds the echo instance serving the order API, the OpenAPI
// document under /swagger, /health and, when m is set, /metrics.
func NewRouter(server servers.ServerInterface, m *metrics.Metrics, logger *slog.Logger) (*echo.Echo, error) {
	swagger, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}

	docJSON, err := swagger.MarshalJSON()
	if err != nil {
		return nil, err
	}
	registerDocOnce.Do(func() {
		swag.Register(swag.Name, openAPIDoc{json: string(docJSON)})
	})

	validator, err := RequestValidator(swagger)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(Tracing(serviceName))
	if m != nil {
		e.Use(Metrics(m))
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}
	e.Use(RequestLogger(logger))
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, server)

	return e, nil
}

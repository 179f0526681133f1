package http

import (
	"log/slog"
	"net/http"

	"tracker/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig carries the collaborators of NewRouter besides the server.
type RouterConfig struct {
	Identity ports.IdentityProvider
	Observer RequestObserver
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// NewRouter builds the echo instance:
//
//	/api/v1/...  API routes, authenticated and validated against the OpenAPI document
//	/health      liveness probe
//	/metrics     Prometheus exposition
//	/swagger/*   swagger UI over the same OpenAPI document
func NewRouter(server ServerInterface, cfg RouterConfig) (*echo.Echo, error) {
	doc, err := GetSwagger()
	if err != nil {
		return nil, err
	}
	if err = RegisterSwaggerDoc(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(cfg.Logger)

	e.Use(middleware.Recover())
	if cfg.Observer != nil {
		e.Use(ObserveRequests(cfg.Observer))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group(BaseURL,
		Authenticate(cfg.Identity, cfg.Logger),
		RequestValidator(doc, BaseURL),
	)
	RegisterHandlers(api, server)

	return e, nil
}

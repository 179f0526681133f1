package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"tracker/internal/core/domain/model/actor"
	"tracker/internal/core/ports"

	"github.com/labstack/echo/v4"
)

const actorKey = "actor"

// Authenticate resolves the Authorization header into an actor for the
// handlers. A missing header yields the anonymous actor; a header the
// identity provider rejects ends the request with 401.
func Authenticate(identity ports.IdentityProvider, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)

			caller, err := identity.Authenticate(c.Request().Context(), header)
			if err != nil {
				logger.Debug("Rejected credentials", "path", c.Path(), "error", err)
				return c.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "Invalid credentials",
				})
			}

			c.Set(actorKey, caller)
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) actor.Actor {
	if caller, ok := c.Get(actorKey).(actor.Actor); ok {
		return caller
	}
	return actor.Anonymous()
}

// RequestObserver receives the latency of every request.
type RequestObserver interface {
	ObserveRequest(method, route string, code int, d time.Duration)
}

func ObserveRequests(observer RequestObserver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			code := c.Response().Status
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				code = httpErr.Code
			} else if err != nil {
				code = http.StatusInternalServerError
			}

			observer.ObserveRequest(c.Request().Method, c.Path(), code, time.Since(start))
			return err
		}
	}
}

// ErrorHandler renders errors escaping the handlers, mostly from parameter
// binding and routing, with the Error body.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(code)

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			} else {
				message = http.StatusText(code)
			}
		} else {
			logger.Error("Unhandled request error", "path", c.Path(), "error", err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, Error{Code: code, Message: message})
		}
		if err != nil {
			logger.Error("Failed to write error response", "error", err)
		}
	}
}

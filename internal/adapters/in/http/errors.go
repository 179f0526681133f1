package http

import (
	"errors"
	"net/http"

	"tracker/internal/core/domain/model/actor"
	"tracker/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// fail writes the response for an error returned by a command or query handler.
//
//   - validation errors: 400
//   - not found: 404
//   - permission denied: 401 for anonymous callers, 403 otherwise
//   - persistence failures and anything else: 500, without details
func (s *Server) fail(ctx echo.Context, caller actor.Actor, err error) error {
	code := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errs.IsValidation(err):
		code, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, errs.ErrObjectNotFound):
		code, message = http.StatusNotFound, "Package not found"
	case errors.Is(err, errs.ErrPermissionDenied) && !caller.IsAuthenticated():
		code, message = http.StatusUnauthorized, "Authentication required"
	case errors.Is(err, errs.ErrPermissionDenied):
		code, message = http.StatusForbidden, "You do not have permission to perform this action"
	default:
		s.logger.Error("Request failed", "path", ctx.Path(), "actor", caller.String(), "error", err)
	}

	return ctx.JSON(code, Error{Code: code, Message: message})
}

package http

import (
	"log/slog"
	"net/http"

	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/application/usecases/queries"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/services"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Handlers groups the use cases the HTTP server dispatches to.
type Handlers struct {
	// Command handlers
	CreatePackage commands.CreatePackageCommandHandler
	UpdateStatus  commands.UpdateStatusCommandHandler
	AssignCourier commands.AssignCourierCommandHandler
	SoftDelete    commands.SoftDeletePackageCommandHandler
	Restore       commands.RestorePackageCommandHandler

	// Query handlers
	GetPackage    queries.GetPackageQueryHandler
	ListPackages  queries.ListPackagesQueryHandler
	ListDeleted   queries.ListDeletedPackagesQueryHandler
	TrackPackage  queries.TrackPackageQueryHandler
	StatusRecords queries.GetStatusRecordsQueryHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "HTTPServer"),
	}
}

// ListPackages handles GET /api/v1/packages - packages visible to the caller.
func (s *Server) ListPackages(ctx echo.Context, params ListPackagesParams) error {
	caller := actorFrom(ctx)

	query, err := queries.NewListPackagesQuery(caller, deref(params.Search), deref(params.Ordering))
	if err != nil {
		return s.fail(ctx, caller, err)
	}

	packages, err := s.handlers.ListPackages.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, caller, err)
	}

	return ctx.JSON(http.StatusOK, toPackages(packages))
}

// CreatePackage handles POST /api/v1/packages - registers a package for the calling customer.
func (s *Server) CreatePackage(ctx echo.Context) error {
	caller := actorFrom(ctx)

	var body NewPackage
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewCreatePackageCommand(
		caller,
		body.Description,
		body.Weight,
		body.Dimensions,
		body.PickupAddress,
		body.DeliveryAddress,
	)
	if err != nil {
		return s.fail(ctx, caller, err)
	}

	pkg, err := s.handlers.CreatePackage.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, caller, err)
	}

	return ctx.JSON(http.StatusCreated, toPackage(pkg, nil))
}

// ListDeletedPackages handles GET /api/v1/packages/deleted - admin only.
func (s *Server) ListDeletedPackages(ctx echo.Context, params ListPackagesParams) error {
	caller := actorFrom(ctx)

	query, err := queries.NewListDeletedPackagesQuery(caller, deref(params.Search), deref(params.Ordering))
	if err != nil {
		return s.fail(ctx, caller, err)
	}

	packages, err := s.handlers.ListDeleted.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, caller, err)
	}

	return ctx.JSON(http.StatusOK, toPackages(packages))
}

// TrackPackage handles GET /api/v1/packages/track. The response is the full
// package for its owner, its courier and admins, the reduced snapshot otherwise.
func (s *Server) TrackPackage(ctx echo.Context, params TrackPackageParams) error {
	caller := actorFrom(ctx)

	query, err := queries.NewTrackPackageQuery(caller, params.TrackingNumber)
	if err != nil {
		return s.fail(ctx, caller, err)
	}

	result, err := s.handlers.TrackPackage.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, caller, err)
	}

	if result.View == services.ViewFull {
		return ctx.JSON(http.StatusOK, toPackage(result.Package, result.History))
	}
	return ctx.JSON(http.StatusOK, result.Snapshot)
}

// GetPackage handles GET /api/v1/packages/{id}.
func (s *Server) GetPackage(ctx echo.Context, id openapi_types.UUID) error {
	caller := actorFrom(ctx)

	packageID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.fail(ctx, caller, err)
	}

	query, err := queries.NewGetPackageQuery(caller, packageID)
	if err != nil {
		return s.fail(ctx, caller, err)
	}

	result, err := s.handlers.GetPackage.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, caller, err)
	}

	return ctx.JSON(http.StatusOK, toPackage(result.Package, result.History))
}

// GetStatusUpdates handles GET /api/v1/packages/{id}/status. Packages the
// caller cannot see yield an empty list.
func (s *Server) GetStatusUpdates(ctx echo.Context, id openapi_types.UUID) error {
	caller := actorFrom(ctx)

	packageID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.fail(ctx, caller, err)
	}

	query, err := queries.NewGetStatusRecordsQuery(caller, packageID)
	if err != nil {
		return s.fail(ctx, caller, err)
	}

	records, err := s.handlers.StatusRecords.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, caller, err)
	}

	return ctx.JSON(http.StatusOK, toStatusUpdates(records))
}

// UpdateStatus handles POST /api/v1/packages/{id}/status.
func (s *Server) UpdateStatus(ctx echo.Context, id openapi_types.UUID) error {
	caller := actorFrom(ctx)

	var body NewStatusUpdate
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	packageID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.fail(ctx, caller, err)
	}

	cmd, err := commands.NewUpdateStatusCommand(caller, packageID, body.Status, deref(body.Notes))
	if err != nil {
		return s.fail(ctx, caller, err)
	}

	record, err := s.handlers.UpdateStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, caller, err)
	}

	return ctx.JSON(http.StatusCreated, toStatusUpdate(record))
}

// AssignCourier handles PATCH /api/v1/packages/{id}/assign.
func (s *Server) AssignCourier(ctx echo.Context, id openapi_types.UUID) error {
	caller := actorFrom(ctx)

	var body CourierAssignment
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	packageID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.fail(ctx, caller, err)
	}
	courierID, err := kernel.UUIDFromBytes(body.Courier[:])
	if err != nil {
		return s.fail(ctx, caller, err)
	}

	cmd, err := commands.NewAssignCourierCommand(caller, packageID, courierID)
	if err != nil {
		return s.fail(ctx, caller, err)
	}

	pkg, err := s.handlers.AssignCourier.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, caller, err)
	}

	return ctx.JSON(http.StatusOK, toPackage(pkg, nil))
}

// SoftDeletePackage handles PATCH /api/v1/packages/{id}/soft-delete.
func (s *Server) SoftDeletePackage(ctx echo.Context, id openapi_types.UUID) error {
	caller := actorFrom(ctx)

	packageID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.fail(ctx, caller, err)
	}

	cmd, err := commands.NewSoftDeletePackageCommand(caller, packageID)
	if err != nil {
		return s.fail(ctx, caller, err)
	}

	if _, err = s.handlers.SoftDelete.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, caller, err)
	}

	return ctx.JSON(http.StatusOK, Detail{Detail: "Package successfully marked as deleted"})
}

// RestorePackage handles PATCH /api/v1/packages/{id}/restore.
func (s *Server) RestorePackage(ctx echo.Context, id openapi_types.UUID) error {
	caller := actorFrom(ctx)

	packageID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.fail(ctx, caller, err)
	}

	cmd, err := commands.NewRestorePackageCommand(caller, packageID)
	if err != nil {
		return s.fail(ctx, caller, err)
	}

	if _, err = s.handlers.Restore.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, caller, err)
	}

	return ctx.JSON(http.StatusOK, Detail{Detail: "Package successfully restored"})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

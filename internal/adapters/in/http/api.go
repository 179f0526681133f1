package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// BaseURL is the prefix of every API route.
const BaseURL = "/api/v1"

// Error is the body of every error response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Detail is the body of soft delete and restore responses.
type Detail struct {
	Detail string `json:"detail"`
}

type NewPackage struct {
	Description     string  `json:"description"`
	Weight          float64 `json:"weight"`
	Dimensions      string  `json:"dimensions"`
	PickupAddress   string  `json:"pickup_address"`
	DeliveryAddress string  `json:"delivery_address"`
}

type NewStatusUpdate struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

type CourierAssignment struct {
	Courier openapi_types.UUID `json:"courier"`
}

type StatusUpdate struct {
	Id        openapi_types.UUID  `json:"id"`
	Status    string              `json:"status"`
	Notes     string              `json:"notes"`
	UpdatedBy *openapi_types.UUID `json:"updated_by"`
	CreatedAt time.Time           `json:"created_at"`
}

type Package struct {
	Id              openapi_types.UUID  `json:"id"`
	TrackingNumber  string              `json:"tracking_number"`
	Customer        openapi_types.UUID  `json:"customer"`
	Courier         *openapi_types.UUID `json:"courier"`
	Description     string              `json:"description"`
	Weight          float64             `json:"weight"`
	Dimensions      string              `json:"dimensions"`
	PickupAddress   string              `json:"pickup_address"`
	DeliveryAddress string              `json:"delivery_address"`
	Status          string              `json:"status"`
	IsDeleted       bool                `json:"is_deleted"`
	DeletedAt       *time.Time          `json:"deleted_at"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	StatusUpdates   []StatusUpdate      `json:"status_updates,omitempty"`
}

// ListPackagesParams are the query parameters of both package listings.
type ListPackagesParams struct {
	Search   *string `form:"search,omitempty" json:"search,omitempty"`
	Ordering *string `form:"ordering,omitempty" json:"ordering,omitempty"`
}

type TrackPackageParams struct {
	TrackingNumber string `form:"tracking_number" json:"tracking_number"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Packages visible to the caller
	// (GET /packages)
	ListPackages(ctx echo.Context, params ListPackagesParams) error
	// Register a package (customers)
	// (POST /packages)
	CreatePackage(ctx echo.Context) error
	// Soft-deleted packages (admins)
	// (GET /packages/deleted)
	ListDeletedPackages(ctx echo.Context, params ListPackagesParams) error
	// Track a package by tracking number
	// (GET /packages/track)
	TrackPackage(ctx echo.Context, params TrackPackageParams) error
	// Package with its status history
	// (GET /packages/{id})
	GetPackage(ctx echo.Context, id openapi_types.UUID) error
	// Status history, newest first
	// (GET /packages/{id}/status)
	GetStatusUpdates(ctx echo.Context, id openapi_types.UUID) error
	// Set the package status (assigned courier or admin)
	// (POST /packages/{id}/status)
	UpdateStatus(ctx echo.Context, id openapi_types.UUID) error
	// Assign a courier (admins)
	// (PATCH /packages/{id}/assign)
	AssignCourier(ctx echo.Context, id openapi_types.UUID) error
	// Hide a package from default views (admins)
	// (PATCH /packages/{id}/soft-delete)
	SoftDeletePackage(ctx echo.Context, id openapi_types.UUID) error
	// Restore a soft-deleted package (admins)
	// (PATCH /packages/{id}/restore)
	RestorePackage(ctx echo.Context, id openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ListPackages(ctx echo.Context) error {
	params, err := bindListParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ListPackages(ctx, params)
}

func (w *ServerInterfaceWrapper) CreatePackage(ctx echo.Context) error {
	return w.Handler.CreatePackage(ctx)
}

func (w *ServerInterfaceWrapper) ListDeletedPackages(ctx echo.Context) error {
	params, err := bindListParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ListDeletedPackages(ctx, params)
}

func (w *ServerInterfaceWrapper) TrackPackage(ctx echo.Context) error {
	var params TrackPackageParams

	err := runtime.BindQueryParameter("form", true, true, "tracking_number", ctx.QueryParams(), &params.TrackingNumber)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter tracking_number: %s", err))
	}

	return w.Handler.TrackPackage(ctx, params)
}

func (w *ServerInterfaceWrapper) GetPackage(ctx echo.Context) error {
	id, err := bindPackageID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetPackage(ctx, id)
}

func (w *ServerInterfaceWrapper) GetStatusUpdates(ctx echo.Context) error {
	id, err := bindPackageID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetStatusUpdates(ctx, id)
}

func (w *ServerInterfaceWrapper) UpdateStatus(ctx echo.Context) error {
	id, err := bindPackageID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateStatus(ctx, id)
}

func (w *ServerInterfaceWrapper) AssignCourier(ctx echo.Context) error {
	id, err := bindPackageID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.AssignCourier(ctx, id)
}

func (w *ServerInterfaceWrapper) SoftDeletePackage(ctx echo.Context) error {
	id, err := bindPackageID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.SoftDeletePackage(ctx, id)
}

func (w *ServerInterfaceWrapper) RestorePackage(ctx echo.Context) error {
	id, err := bindPackageID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.RestorePackage(ctx, id)
}

func bindPackageID(ctx echo.Context) (openapi_types.UUID, error) {
	var id openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

func bindListParams(ctx echo.Context) (ListPackagesParams, error) {
	var params ListPackagesParams

	if err := runtime.BindQueryParameter("form", true, false, "search", ctx.QueryParams(), &params.Search); err != nil {
		return params, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter search: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "ordering", ctx.QueryParams(), &params.Ordering); err != nil {
		return params, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter ordering: %s", err))
	}
	return params, nil
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the handlers, prefixing every route with baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/packages", wrapper.ListPackages)
	router.POST(baseURL+"/packages", wrapper.CreatePackage)
	router.GET(baseURL+"/packages/deleted", wrapper.ListDeletedPackages)
	router.GET(baseURL+"/packages/track", wrapper.TrackPackage)
	router.GET(baseURL+"/packages/:id", wrapper.GetPackage)
	router.GET(baseURL+"/packages/:id/status", wrapper.GetStatusUpdates)
	router.POST(baseURL+"/packages/:id/status", wrapper.UpdateStatus)
	router.PATCH(baseURL+"/packages/:id/assign", wrapper.AssignCourier)
	router.PATCH(baseURL+"/packages/:id/soft-delete", wrapper.SoftDeletePackage)
	router.PATCH(baseURL+"/packages/:id/restore", wrapper.RestorePackage)
}

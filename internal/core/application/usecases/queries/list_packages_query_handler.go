package queries

import (
	"context"

	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"
)

type ListPackagesQueryHandler struct {
	packages ports.PackageRepository
	policy   services.AuthorizationPolicy
}

func NewListPackagesQueryHandler(
	packages ports.PackageRepository,
	policy services.AuthorizationPolicy,
) ListPackagesQueryHandler {
	return ListPackagesQueryHandler{
		packages: packages,
		policy:   policy,
	}
}

// Handle requires an authenticated caller and returns the caller's scope:
// every live package for admins, assigned ones for couriers, owned ones for
// customers.
func (h ListPackagesQueryHandler) Handle(ctx context.Context, query ListPackagesQuery) ([]*parcel.Package, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := h.policy.CanPerform(query.Actor(), services.OpList, nil); err != nil {
		return nil, err
	}

	return filter(ctx, h.packages, services.ScopeFor(query.Actor(), false), query.Options())
}

func filter(
	ctx context.Context,
	packages ports.PackageRepository,
	scope services.Scope,
	options ports.ListOptions,
) ([]*parcel.Package, error) {
	if scope.IsEmpty() {
		return []*parcel.Package{}, nil
	}

	result, err := packages.Filter(ctx, scope, options)
	if err != nil {
		return nil, storeError("list packages", err)
	}
	return result, nil
}

package queries

import (
	"context"

	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"
)

type ListDeletedPackagesQueryHandler struct {
	packages ports.PackageRepository
	policy   services.AuthorizationPolicy
}

func NewListDeletedPackagesQueryHandler(
	packages ports.PackageRepository,
	policy services.AuthorizationPolicy,
) ListDeletedPackagesQueryHandler {
	return ListDeletedPackagesQueryHandler{
		packages: packages,
		policy:   policy,
	}
}

func (h ListDeletedPackagesQueryHandler) Handle(
	ctx context.Context,
	query ListDeletedPackagesQuery,
) ([]*parcel.Package, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := h.policy.CanPerform(query.Actor(), services.OpListDeleted, nil); err != nil {
		return nil, err
	}

	return filter(ctx, h.packages, services.ScopeFor(query.Actor(), true), query.Options())
}

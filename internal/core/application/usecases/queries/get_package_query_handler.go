package queries

import (
	"context"

	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"
)

type GetPackageQueryHandler struct {
	packages ports.PackageRepository
	records  ports.StatusRecordRepository
	policy   services.AuthorizationPolicy
}

func NewGetPackageQueryHandler(
	packages ports.PackageRepository,
	records ports.StatusRecordRepository,
	policy services.AuthorizationPolicy,
) GetPackageQueryHandler {
	return GetPackageQueryHandler{
		packages: packages,
		records:  records,
		policy:   policy,
	}
}

// Handle resolves the package first and authorizes second: an unknown or
// deleted package is NotFound for everyone, an existing one the caller may
// not see is PermissionDenied.
func (h GetPackageQueryHandler) Handle(ctx context.Context, query GetPackageQuery) (GetPackageQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPackageQueryResponse{}, err
	}

	pkg, err := h.packages.Get(ctx, query.PackageID())
	if err != nil {
		return GetPackageQueryResponse{}, storeError("get package", err)
	}

	if err = h.policy.CanPerform(query.Actor(), services.OpRetrieve, pkg); err != nil {
		return GetPackageQueryResponse{}, err
	}

	history, err := h.records.ListByPackage(ctx, pkg.ID())
	if err != nil {
		return GetPackageQueryResponse{}, storeError("get package", err)
	}

	return GetPackageQueryResponse{Package: pkg, History: history}, nil
}

package commands

import (
	"context"

	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"
)

// SoftDeletePackageCommandHandler marks a package as deleted. Deleting an
// already deleted package refreshes the deletion timestamp and appends
// another record, so the lookup goes through GetIncludingDeleted.
type SoftDeletePackageCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AuthorizationPolicy
	cache      ports.TrackingCache
	metrics    ports.LifecycleMetrics
}

func NewSoftDeletePackageCommandHandler(
	uowFactory UoWFactory,
	policy services.AuthorizationPolicy,
	cache ports.TrackingCache,
	metrics ports.LifecycleMetrics,
) SoftDeletePackageCommandHandler {
	return SoftDeletePackageCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		cache:      cache,
		metrics:    metrics,
	}
}

// Handle returns the deleted package. Admin only.
func (h SoftDeletePackageCommandHandler) Handle(
	ctx context.Context,
	cmd SoftDeletePackageCommand,
) (*parcel.Package, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, persistenceFailure(OperationSoftDelete, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	packageRepo := uow.PackageRepository()
	recordRepo := uow.StatusRecordRepository()

	pkg, err := packageRepo.GetIncludingDeleted(ctx, cmd.PackageID())
	if err != nil {
		return nil, persistenceFailure(OperationSoftDelete, err)
	}

	if err = h.policy.CanPerform(cmd.Actor(), services.OpSoftDelete, pkg); err != nil {
		return nil, err
	}

	record, err := pkg.SoftDelete(cmd.Actor().ID(), now())
	if err != nil {
		return nil, err
	}

	if err = packageRepo.Update(ctx, pkg); err != nil {
		return nil, persistenceFailure(OperationSoftDelete, err)
	}

	if err = recordRepo.Add(ctx, record); err != nil {
		return nil, persistenceFailure(OperationSoftDelete, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, persistenceFailure(OperationSoftDelete, err)
	}

	h.cache.Invalidate(ctx, pkg.TrackingCode())
	h.metrics.PackageMutated(OperationSoftDelete)
	h.metrics.StatusRecorded(record.Status())
	return pkg, nil
}

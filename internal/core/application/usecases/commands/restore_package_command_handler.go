package commands

import (
	"context"

	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"
)

// RestorePackageCommandHandler clears the deletion flag of a package.
type RestorePackageCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AuthorizationPolicy
	cache      ports.TrackingCache
	metrics    ports.LifecycleMetrics
}

func NewRestorePackageCommandHandler(
	uowFactory UoWFactory,
	policy services.AuthorizationPolicy,
	cache ports.TrackingCache,
	metrics ports.LifecycleMetrics,
) RestorePackageCommandHandler {
	return RestorePackageCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		cache:      cache,
		metrics:    metrics,
	}
}

// Handle returns the restored package. Admin only. The package is looked up
// with GetIncludingDeleted since the default lookups never see it.
func (h RestorePackageCommandHandler) Handle(ctx context.Context, cmd RestorePackageCommand) (*parcel.Package, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, persistenceFailure(OperationRestore, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	packageRepo := uow.PackageRepository()
	recordRepo := uow.StatusRecordRepository()

	pkg, err := packageRepo.GetIncludingDeleted(ctx, cmd.PackageID())
	if err != nil {
		return nil, persistenceFailure(OperationRestore, err)
	}

	if err = h.policy.CanPerform(cmd.Actor(), services.OpRestore, pkg); err != nil {
		return nil, err
	}

	record, err := pkg.Restore(cmd.Actor().ID(), now())
	if err != nil {
		return nil, err
	}

	if err = packageRepo.Update(ctx, pkg); err != nil {
		return nil, persistenceFailure(OperationRestore, err)
	}

	if err = recordRepo.Add(ctx, record); err != nil {
		return nil, persistenceFailure(OperationRestore, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, persistenceFailure(OperationRestore, err)
	}

	h.cache.Invalidate(ctx, pkg.TrackingCode())
	h.metrics.PackageMutated(OperationRestore)
	h.metrics.StatusRecorded(record.Status())
	return pkg, nil
}

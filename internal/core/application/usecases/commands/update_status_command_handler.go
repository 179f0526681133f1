package commands

import (
	"context"

	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"
)

// UpdateStatusCommandHandler changes the status of a live package and appends
// the matching status record in the same transaction.
type UpdateStatusCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AuthorizationPolicy
	cache      ports.TrackingCache
	metrics    ports.LifecycleMetrics
}

func NewUpdateStatusCommandHandler(
	uowFactory UoWFactory,
	policy services.AuthorizationPolicy,
	cache ports.TrackingCache,
	metrics ports.LifecycleMetrics,
) UpdateStatusCommandHandler {
	return UpdateStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		cache:      cache,
		metrics:    metrics,
	}
}

// Handle returns the appended status record.
//
// Errors, in the order they are checked:
//   - validation error for a command not built by its constructor
//   - not found when the package does not exist or is soft-deleted
//   - permission denied unless the caller is the admin or the assigned courier
//   - persistence failure for any store error
func (h UpdateStatusCommandHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) (*parcel.StatusRecord, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, persistenceFailure(OperationUpdateStatus, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	packageRepo := uow.PackageRepository()
	recordRepo := uow.StatusRecordRepository()

	pkg, err := packageRepo.Get(ctx, cmd.PackageID())
	if err != nil {
		return nil, persistenceFailure(OperationUpdateStatus, err)
	}

	if err = h.policy.CanPerform(cmd.Actor(), services.OpUpdateStatus, pkg); err != nil {
		return nil, err
	}

	record, err := pkg.UpdateStatus(cmd.Actor().ID(), cmd.Status(), cmd.Note(), now())
	if err != nil {
		return nil, err
	}

	if err = packageRepo.Update(ctx, pkg); err != nil {
		return nil, persistenceFailure(OperationUpdateStatus, err)
	}

	if err = recordRepo.Add(ctx, record); err != nil {
		return nil, persistenceFailure(OperationUpdateStatus, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, persistenceFailure(OperationUpdateStatus, err)
	}

	h.cache.Invalidate(ctx, pkg.TrackingCode())
	h.metrics.PackageMutated(OperationUpdateStatus)
	h.metrics.StatusRecorded(record.Status())
	return record, nil
}

package commands

import (
	"context"

	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"
)

// AssignCourierCommandHandler assigns a courier to a live package. The status
// is unchanged; the appended record repeats it with an assignment note.
//
// The courier identifier is taken as given: whether it names an existing
// courier account is the identity provider's concern.
type AssignCourierCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AuthorizationPolicy
	cache      ports.TrackingCache
	metrics    ports.LifecycleMetrics
}

func NewAssignCourierCommandHandler(
	uowFactory UoWFactory,
	policy services.AuthorizationPolicy,
	cache ports.TrackingCache,
	metrics ports.LifecycleMetrics,
) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		cache:      cache,
		metrics:    metrics,
	}
}

// Handle returns the updated package. Admin only.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) (*parcel.Package, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, persistenceFailure(OperationAssignCourier, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	packageRepo := uow.PackageRepository()
	recordRepo := uow.StatusRecordRepository()

	pkg, err := packageRepo.Get(ctx, cmd.PackageID())
	if err != nil {
		return nil, persistenceFailure(OperationAssignCourier, err)
	}

	if err = h.policy.CanPerform(cmd.Actor(), services.OpAssignCourier, pkg); err != nil {
		return nil, err
	}

	record, err := pkg.AssignCourier(cmd.Actor().ID(), cmd.CourierID(), now())
	if err != nil {
		return nil, err
	}

	if err = packageRepo.Update(ctx, pkg); err != nil {
		return nil, persistenceFailure(OperationAssignCourier, err)
	}

	if err = recordRepo.Add(ctx, record); err != nil {
		return nil, persistenceFailure(OperationAssignCourier, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, persistenceFailure(OperationAssignCourier, err)
	}

	h.cache.Invalidate(ctx, pkg.TrackingCode())
	h.metrics.PackageMutated(OperationAssignCourier)
	h.metrics.StatusRecorded(record.Status())
	return pkg, nil
}

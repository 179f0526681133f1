package commands

import (
	"context"

	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"
)

// CreatePackageCommandHandler stores a new pending package owned by the caller.
// No status record is written on creation.
type CreatePackageCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AuthorizationPolicy
	metrics    ports.LifecycleMetrics
}

func NewCreatePackageCommandHandler(
	uowFactory UoWFactory,
	policy services.AuthorizationPolicy,
	metrics ports.LifecycleMetrics,
) CreatePackageCommandHandler {
	return CreatePackageCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		metrics:    metrics,
	}
}

// Handle returns the created package. Only customers may create packages.
// A tracking code collision surfaces as a persistence failure; it is not retried.
func (h CreatePackageCommandHandler) Handle(ctx context.Context, cmd CreatePackageCommand) (*parcel.Package, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.policy.CanPerform(cmd.Actor(), services.OpCreate, nil); err != nil {
		return nil, err
	}

	pkg, err := parcel.NewPackage(cmd.Actor().ID(), cmd.Details(), now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, persistenceFailure(OperationCreate, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PackageRepository().Add(ctx, pkg); err != nil {
		return nil, persistenceFailure(OperationCreate, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, persistenceFailure(OperationCreate, err)
	}

	h.metrics.PackageMutated(OperationCreate)
	return pkg, nil
}

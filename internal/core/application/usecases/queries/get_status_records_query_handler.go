package queries

import (
	"context"
	"errors"

	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"
)

type GetStatusRecordsQueryHandler struct {
	packages ports.PackageRepository
	records  ports.StatusRecordRepository
	policy   services.AuthorizationPolicy
}

func NewGetStatusRecordsQueryHandler(
	packages ports.PackageRepository,
	records ports.StatusRecordRepository,
	policy services.AuthorizationPolicy,
) GetStatusRecordsQueryHandler {
	return GetStatusRecordsQueryHandler{
		packages: packages,
		records:  records,
		policy:   policy,
	}
}

// Handle returns the records newest first. A package that does not exist,
// is deleted, or is not visible to the caller yields an empty list rather
// than an error. Store failures are still reported.
func (h GetStatusRecordsQueryHandler) Handle(
	ctx context.Context,
	query GetStatusRecordsQuery,
) ([]*parcel.StatusRecord, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pkg, err := h.packages.Get(ctx, query.PackageID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return []*parcel.StatusRecord{}, nil
	}
	if err != nil {
		return nil, storeError("list status records", err)
	}

	if h.policy.CanPerform(query.Actor(), services.OpRetrieve, pkg) != nil {
		return []*parcel.StatusRecord{}, nil
	}

	records, err := h.records.ListByPackage(ctx, pkg.ID())
	if err != nil {
		return nil, storeError("list status records", err)
	}
	return records, nil
}

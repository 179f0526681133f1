package queries

import (
	"context"
	"errors"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"
)

// TrackPackageQueryHandler serves tracking lookups. Reduced snapshots for
// anonymous callers are read through the tracking cache; lifecycle commands
// invalidate the entry when they commit.
type TrackPackageQueryHandler struct {
	packages ports.PackageRepository
	records  ports.StatusRecordRepository
	policy   services.AuthorizationPolicy
	cache    ports.TrackingCache
}

func NewTrackPackageQueryHandler(
	packages ports.PackageRepository,
	records ports.StatusRecordRepository,
	policy services.AuthorizationPolicy,
	cache ports.TrackingCache,
) TrackPackageQueryHandler {
	return TrackPackageQueryHandler{
		packages: packages,
		records:  records,
		policy:   policy,
		cache:    cache,
	}
}

// Handle returns the full package to its owner, its assigned courier and
// admins, and a reduced snapshot to anyone else. Unknown, malformed and
// deleted tracking codes are all NotFound.
func (h TrackPackageQueryHandler) Handle(
	ctx context.Context,
	query TrackPackageQuery,
) (TrackPackageQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackPackageQueryResponse{}, err
	}

	code, err := kernel.ParseTrackingCode(query.TrackingCode())
	if err != nil {
		return TrackPackageQueryResponse{}, errs.NewObjectNotFoundErrorWithCause(
			"tracking_number", query.TrackingCode(), err,
		)
	}

	caller := query.Actor()
	if !caller.IsAuthenticated() {
		if snapshot, ok := h.cache.Get(ctx, code); ok {
			return TrackPackageQueryResponse{View: services.ViewReduced, Snapshot: snapshot}, nil
		}
	}

	pkg, err := h.packages.GetByTrackingCode(ctx, code)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return TrackPackageQueryResponse{}, err
		}
		return TrackPackageQueryResponse{}, storeError("track package", err)
	}

	if err = h.policy.CanPerform(caller, services.OpTrack, pkg); err != nil {
		return TrackPackageQueryResponse{}, err
	}

	history, err := h.records.ListByPackage(ctx, pkg.ID())
	if err != nil {
		return TrackPackageQueryResponse{}, storeError("track package", err)
	}

	if services.TrackView(caller, pkg) == services.ViewFull {
		return TrackPackageQueryResponse{View: services.ViewFull, Package: pkg, History: history}, nil
	}

	snapshot := NewTrackingSnapshot(pkg, history)
	h.cache.Set(ctx, snapshot)
	return TrackPackageQueryResponse{View: services.ViewReduced, Snapshot: snapshot}, nil
}

// NewTrackingSnapshot reduces a package and its history to the fields that
// may be shown to anyone holding the tracking code.
func NewTrackingSnapshot(pkg *parcel.Package, history []*parcel.StatusRecord) ports.TrackingSnapshot {
	events := make([]ports.TrackingEvent, 0, len(history))
	for _, record := range history {
		events = append(events, ports.TrackingEvent{
			Status:    record.Status().String(),
			CreatedAt: record.CreatedAt(),
		})
	}

	return ports.TrackingSnapshot{
		TrackingCode: pkg.TrackingCode().String(),
		Status:       pkg.Status().String(),
		UpdatedAt:    pkg.UpdatedAt(),
		History:      events,
	}
}

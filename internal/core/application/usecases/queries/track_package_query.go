package queries

import (
	"errors"
	"strings"

	"tracker/internal/core/domain/model/actor"
	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var ErrTrackPackageQueryIsNotConstructed = errors.New(
	"TrackPackageQuery must be created via NewTrackPackageQuery constructor",
)

// TrackPackageQuery looks a package up by its public tracking code. Anyone,
// including anonymous callers, may track a package.
type TrackPackageQuery struct {
	actor        actor.Actor
	trackingCode string

	guard guard.ConstructorGuard
}

// NewTrackPackageQuery rejects a missing or blank tracking code. A code that
// is present but malformed is accepted here and reported as not found by the
// handler, so lookups never tell a bad code from an unknown one.
func NewTrackPackageQuery(caller actor.Actor, trackingCode string) (TrackPackageQuery, error) {
	trackingCode = strings.TrimSpace(trackingCode)
	if trackingCode == "" {
		return TrackPackageQuery{}, errs.NewValueIsRequiredError("tracking_number")
	}

	return TrackPackageQuery{
		actor:        caller,
		trackingCode: trackingCode,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q TrackPackageQuery) Validate() error {
	return q.guard.Validate(ErrTrackPackageQueryIsNotConstructed)
}

func (q TrackPackageQuery) Actor() actor.Actor {
	return q.actor
}

func (q TrackPackageQuery) TrackingCode() string {
	return q.trackingCode
}

// TrackPackageQueryResponse carries exactly one projection: Package and
// History for ViewFull, Snapshot for ViewReduced.
type TrackPackageQueryResponse struct {
	View     services.View
	Package  *parcel.Package
	History  []*parcel.StatusRecord
	Snapshot ports.TrackingSnapshot
}

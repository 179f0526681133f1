package queries

import (
	"errors"

	"tracker/internal/core/domain/model/actor"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/pkg/guard"
)

var ErrGetPackageQueryIsNotConstructed = errors.New(
	"GetPackageQuery must be created via NewGetPackageQuery constructor",
)

// GetPackageQuery retrieves one live package with its status history.
type GetPackageQuery struct {
	actor     actor.Actor
	packageID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetPackageQuery(caller actor.Actor, packageID kernel.UUID) (GetPackageQuery, error) {
	if err := packageID.Validate(); err != nil {
		return GetPackageQuery{}, err
	}
	return GetPackageQuery{
		actor:     caller,
		packageID: packageID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetPackageQuery) Validate() error {
	return q.guard.Validate(ErrGetPackageQueryIsNotConstructed)
}

func (q GetPackageQuery) Actor() actor.Actor {
	return q.actor
}

func (q GetPackageQuery) PackageID() kernel.UUID {
	return q.packageID
}

// GetPackageQueryResponse is the package with its records, newest first.
type GetPackageQueryResponse struct {
	Package *parcel.Package
	History []*parcel.StatusRecord
}

package queries

import (
	"errors"

	"tracker/internal/core/domain/model/actor"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/guard"
)

var ErrGetStatusRecordsQueryIsNotConstructed = errors.New(
	"GetStatusRecordsQuery must be created via NewGetStatusRecordsQuery constructor",
)

// GetStatusRecordsQuery reads the status history of a package.
type GetStatusRecordsQuery struct {
	actor     actor.Actor
	packageID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetStatusRecordsQuery(caller actor.Actor, packageID kernel.UUID) (GetStatusRecordsQuery, error) {
	if err := packageID.Validate(); err != nil {
		return GetStatusRecordsQuery{}, err
	}
	return GetStatusRecordsQuery{
		actor:     caller,
		packageID: packageID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetStatusRecordsQuery) Validate() error {
	return q.guard.Validate(ErrGetStatusRecordsQueryIsNotConstructed)
}

func (q GetStatusRecordsQuery) Actor() actor.Actor {
	return q.actor
}

func (q GetStatusRecordsQuery) PackageID() kernel.UUID {
	return q.packageID
}

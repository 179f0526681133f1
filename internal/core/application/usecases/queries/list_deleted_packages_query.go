package queries

import (
	"errors"

	"tracker/internal/core/domain/model/actor"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/guard"
)

var ErrListDeletedPackagesQueryIsNotConstructed = errors.New(
	"ListDeletedPackagesQuery must be created via NewListDeletedPackagesQuery constructor",
)

// ListDeletedPackagesQuery lists soft-deleted packages. Admin only.
type ListDeletedPackagesQuery struct {
	actor   actor.Actor
	options ports.ListOptions

	guard guard.ConstructorGuard
}

func NewListDeletedPackagesQuery(caller actor.Actor, search, ordering string) (ListDeletedPackagesQuery, error) {
	options, err := ports.NewListOptions(search, ordering)
	if err != nil {
		return ListDeletedPackagesQuery{}, err
	}

	return ListDeletedPackagesQuery{
		actor:   caller,
		options: options,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ListDeletedPackagesQuery) Validate() error {
	return q.guard.Validate(ErrListDeletedPackagesQueryIsNotConstructed)
}

func (q ListDeletedPackagesQuery) Actor() actor.Actor {
	return q.actor
}

func (q ListDeletedPackagesQuery) Options() ports.ListOptions {
	return q.options
}

package queries

import (
	"errors"

	"tracker/internal/core/domain/model/actor"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/guard"
)

var ErrListPackagesQueryIsNotConstructed = errors.New(
	"ListPackagesQuery must be created via NewListPackagesQuery constructor",
)

// ListPackagesQuery lists the live packages visible to the caller.
//
// Example:
//
//	query, err := NewListPackagesQuery(caller, "books", "-updated_at")
//	if err != nil {
//	    return err // bad ordering or search term
//	}
//	packages, err := handler.Handle(ctx, query)
type ListPackagesQuery struct {
	actor   actor.Actor
	options ports.ListOptions

	guard guard.ConstructorGuard
}

// NewListPackagesQuery validates search and ordering. An empty ordering
// lists the newest packages first.
func NewListPackagesQuery(caller actor.Actor, search, ordering string) (ListPackagesQuery, error) {
	options, err := ports.NewListOptions(search, ordering)
	if err != nil {
		return ListPackagesQuery{}, err
	}

	return ListPackagesQuery{
		actor:   caller,
		options: options,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ListPackagesQuery) Validate() error {
	return q.guard.Validate(ErrListPackagesQueryIsNotConstructed)
}

func (q ListPackagesQuery) Actor() actor.Actor {
	return q.actor
}

func (q ListPackagesQuery) Options() ports.ListOptions {
	return q.options
}

package services

import (
	"tracker/internal/core/domain/model/actor"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"
)

// Visibility is the role-derived part of a Scope.
type Visibility int

const (
	// VisibilityNone matches nothing; listing yields an empty result, not an error.
	VisibilityNone Visibility = iota

	// VisibilityAll applies no ownership restriction.
	VisibilityAll

	// VisibilityOwner matches packages owned by ActorID.
	VisibilityOwner

	// VisibilityCourier matches packages assigned to ActorID.
	VisibilityCourier
)

// Scope is a predicate over packages. Deleted selects the soft-deleted
// packages instead of the live ones; the two views never mix.
//
// Repositories translate a Scope into their query language; Matches
// evaluates the same predicate in memory.
type Scope struct {
	Visibility Visibility
	ActorID    kernel.UUID
	Deleted    bool
}

// ScopeFor computes the packages visible to an actor.
//
// Live view (includeDeleted == false): admins see every live package,
// couriers the ones assigned to them, customers the ones they own, anyone
// else nothing.
//
// Deleted view (includeDeleted == true): admins see every deleted package;
// it is not available to other roles, who see nothing.
func ScopeFor(a actor.Actor, includeDeleted bool) Scope {
	if includeDeleted {
		if a.IsAdmin() {
			return Scope{Visibility: VisibilityAll, Deleted: true}
		}
		return Scope{Visibility: VisibilityNone, Deleted: true}
	}

	switch {
	case a.IsAdmin():
		return Scope{Visibility: VisibilityAll}
	case a.IsCourier():
		return Scope{Visibility: VisibilityCourier, ActorID: a.ID()}
	case a.IsCustomer():
		return Scope{Visibility: VisibilityOwner, ActorID: a.ID()}
	default:
		return Scope{Visibility: VisibilityNone}
	}
}

// IsEmpty reports whether the scope can match nothing, so callers may skip the store.
func (s Scope) IsEmpty() bool {
	return s.Visibility == VisibilityNone
}

// Matches evaluates the predicate against p.
func (s Scope) Matches(p *parcel.Package) bool {
	if p == nil || p.IsDeleted() != s.Deleted {
		return false
	}

	switch s.Visibility {
	case VisibilityAll:
		return true
	case VisibilityOwner:
		return p.Owner().IsEqual(s.ActorID)
	case VisibilityCourier:
		courier := p.Courier()
		return courier != nil && courier.IsEqual(s.ActorID)
	default:
		return false
	}
}

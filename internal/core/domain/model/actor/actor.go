package actor

import (
	"errors"

	"tracker/internal/core/domain/model/kernel"
)

// Actor is the caller of an operation. It is immutable: the role never changes
// while a request is being served.
//
// The zero value is the anonymous actor.
type Actor struct {
	id   kernel.UUID
	role Role
}

// New creates an authenticated actor. Both the id and the role must be valid.
func New(id kernel.UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// Anonymous returns the unauthenticated actor.
func Anonymous() Actor {
	return Actor{}
}

// ID returns the actor identifier; the zero UUID for the anonymous actor.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the actor role; Unknown for the anonymous actor.
func (a Actor) Role() Role {
	return a.role
}

// IsAuthenticated reports whether the actor carries a valid identity.
func (a Actor) IsAuthenticated() bool {
	return !a.id.IsZero() && a.role.Validate() == nil
}

func (a Actor) IsCustomer() bool {
	return a.IsAuthenticated() && a.role == Customer
}

func (a Actor) IsCourier() bool {
	return a.IsAuthenticated() && a.role == Courier
}

func (a Actor) IsAdmin() bool {
	return a.IsAuthenticated() && a.role == Admin
}

// Is reports whether the actor is the authenticated identity id.
// It never matches for the anonymous actor.
func (a Actor) Is(id *kernel.UUID) bool {
	return a.IsAuthenticated() && id != nil && a.id.IsEqual(*id)
}

// String identifies the actor in logs and error messages.
func (a Actor) String() string {
	if !a.IsAuthenticated() {
		return ""
	}
	return a.id.String()
}

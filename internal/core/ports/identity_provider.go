package ports

import (
	"context"

	"tracker/internal/core/domain/model/actor"
)

// IdentityProvider resolves request credentials into an Actor.
//
// Empty credentials resolve to actor.Anonymous() without error. Credentials
// that are present but unusable (malformed, expired, unknown role) return an
// error; transports answer those with 401.
type IdentityProvider interface {
	Authenticate(ctx context.Context, credentials string) (actor.Actor, error)
}

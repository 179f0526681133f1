package commands

import (
	"errors"

	"tracker/internal/core/domain/model/actor"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/guard"
)

var ErrSoftDeletePackageCommandIsNotConstructed = errors.New(
	"SoftDeletePackageCommand must be created via NewSoftDeletePackageCommand constructor",
)

// SoftDeletePackageCommand hides a package from every default view.
type SoftDeletePackageCommand struct {
	actor     actor.Actor
	packageID kernel.UUID

	guard guard.ConstructorGuard
}

func NewSoftDeletePackageCommand(caller actor.Actor, packageID kernel.UUID) (SoftDeletePackageCommand, error) {
	if err := packageID.Validate(); err != nil {
		return SoftDeletePackageCommand{}, err
	}

	return SoftDeletePackageCommand{
		actor:     caller,
		packageID: packageID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SoftDeletePackageCommand) Validate() error {
	return c.guard.Validate(ErrSoftDeletePackageCommandIsNotConstructed)
}

func (c SoftDeletePackageCommand) Actor() actor.Actor {
	return c.actor
}

func (c SoftDeletePackageCommand) PackageID() kernel.UUID {
	return c.packageID
}

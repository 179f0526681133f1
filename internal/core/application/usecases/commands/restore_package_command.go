package commands

import (
	"errors"

	"tracker/internal/core/domain/model/actor"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/guard"
)

var ErrRestorePackageCommandIsNotConstructed = errors.New(
	"RestorePackageCommand must be created via NewRestorePackageCommand constructor",
)

// RestorePackageCommand brings a soft-deleted package back.
type RestorePackageCommand struct {
	actor     actor.Actor
	packageID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRestorePackageCommand(caller actor.Actor, packageID kernel.UUID) (RestorePackageCommand, error) {
	if err := packageID.Validate(); err != nil {
		return RestorePackageCommand{}, err
	}

	return RestorePackageCommand{
		actor:     caller,
		packageID: packageID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RestorePackageCommand) Validate() error {
	return c.guard.Validate(ErrRestorePackageCommandIsNotConstructed)
}

func (c RestorePackageCommand) Actor() actor.Actor {
	return c.actor
}

func (c RestorePackageCommand) PackageID() kernel.UUID {
	return c.packageID
}

package commands

import (
	"errors"

	"tracker/internal/core/domain/model/actor"
	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/pkg/guard"
)

var ErrCreatePackageCommandIsNotConstructed = errors.New(
	"CreatePackageCommand must be created via NewCreatePackageCommand constructor",
)

// CreatePackageCommand registers a new package on behalf of a customer.
//
// Example:
//
//	cmd, err := NewCreatePackageCommand(caller, "Books", 2.5, "30x20x10", "1 Pickup St", "9 Delivery Ave")
//	if err != nil {
//	    return err // validation error
//	}
//	pkg, err := handler.Handle(ctx, cmd)
type CreatePackageCommand struct {
	actor   actor.Actor
	details parcel.Details

	guard guard.ConstructorGuard
}

// NewCreatePackageCommand validates the descriptive fields of the package.
// The caller's role is checked by the handler, not here.
func NewCreatePackageCommand(
	caller actor.Actor,
	description string,
	weight float64,
	dimensions string,
	pickupAddress string,
	deliveryAddress string,
) (CreatePackageCommand, error) {
	details, err := parcel.NewDetails(description, weight, dimensions, pickupAddress, deliveryAddress)
	if err != nil {
		return CreatePackageCommand{}, err
	}

	return CreatePackageCommand{
		actor:   caller,
		details: details,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CreatePackageCommand) Validate() error {
	return c.guard.Validate(ErrCreatePackageCommandIsNotConstructed)
}

func (c CreatePackageCommand) Actor() actor.Actor {
	return c.actor
}

func (c CreatePackageCommand) Details() parcel.Details {
	return c.details
}

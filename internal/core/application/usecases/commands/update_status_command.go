package commands

import (
	"errors"

	"tracker/internal/core/domain/model/actor"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var ErrUpdateStatusCommandIsNotConstructed = errors.New(
	"UpdateStatusCommand must be created via NewUpdateStatusCommand constructor",
)

// MaxNoteLength bounds the free-text note of a status update.
const MaxNoteLength = 1000

// UpdateStatusCommand sets the status of a package. Any status may follow any
// other; the actor must be the admin or the assigned courier.
type UpdateStatusCommand struct { //nolint:recvcheck //using for validation
	actor     actor.Actor
	packageID kernel.UUID
	status    parcel.Status
	note      string

	guard guard.ConstructorGuard
}

// NewUpdateStatusCommand parses the status ("pending", "in_transit",
// "delivered") and validates the package identifier.
func NewUpdateStatusCommand(
	caller actor.Actor,
	packageID kernel.UUID,
	status string,
	note string,
) (UpdateStatusCommand, error) {
	cmd := UpdateStatusCommand{
		actor: caller,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPackageID(packageID),
		cmd.setStatus(status),
		cmd.setNote(note),
	); err != nil {
		return UpdateStatusCommand{}, err
	}

	return cmd, nil
}

func (c UpdateStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStatusCommandIsNotConstructed)
}

func (c UpdateStatusCommand) Actor() actor.Actor {
	return c.actor
}

func (c UpdateStatusCommand) PackageID() kernel.UUID {
	return c.packageID
}

func (c UpdateStatusCommand) Status() parcel.Status {
	return c.status
}

func (c UpdateStatusCommand) Note() string {
	return c.note
}

func (c *UpdateStatusCommand) setPackageID(packageID kernel.UUID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}
	c.packageID = packageID
	return nil
}

func (c *UpdateStatusCommand) setStatus(status string) error {
	s, err := parcel.ParseStatus(status)
	if err != nil {
		return err
	}
	c.status = s
	return nil
}

func (c *UpdateStatusCommand) setNote(note string) error {
	if len(note) > MaxNoteLength {
		return errs.NewValueIsOutOfRangeError("note length", len(note), 0, MaxNoteLength)
	}
	c.note = note
	return nil
}

package parcel

import (
	"errors"
	"fmt"
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
)

var (
	// ErrPackageIsNotConstructed is returned when a Package instance was not created through
	// NewPackage or RestorePackage. This ensures all packages are properly validated.
	ErrPackageIsNotConstructed = errors.New("Package must be created via NewPackage constructor")
)

const (
	noteSoftDeleted = "package marked as deleted by admin"
	noteRestored    = "package restored by admin"
)

// Package is the aggregate root of the tracking service. It follows a parcel
// from the moment a customer registers it until it is delivered.
//
// Package follows these invariants:
//   - Must have a valid unique identifier and a tracking code generated exactly once
//   - The owner is set at creation and never reassigned
//   - The courier is optional and only changed by AssignCourier
//   - Status is always one of Pending, InTransit, Delivered
//   - A soft-deleted package accepts no mutation other than SoftDelete and Restore
//   - Can only be created through NewPackage (or RestorePackage for persisted state)
//
// Mutations return the StatusRecord they produced. The caller is responsible
// for persisting the package and the record in one unit of work.
type Package struct {
	// id is the internal, opaque identifier
	id kernel.UUID

	// trackingCode is the public identifier printed on the label
	trackingCode kernel.TrackingCode

	// ownerID is the customer who registered the package
	ownerID kernel.UUID

	// courierID is the assigned courier (nil if unassigned)
	courierID *kernel.UUID

	// details are the descriptive fields captured at creation
	details Details

	// status is the current lifecycle state
	status Status

	// isDeleted and deletedAt implement the soft delete
	isDeleted bool
	deletedAt *time.Time

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the package was created via a constructor
	isConstructed bool
}

// NewPackage registers a new package for ownerID.
//
// Parameters:
//   - ownerID: the customer creating the package
//   - details: validated descriptive fields
//   - now: creation timestamp, also used as the first update timestamp
//
// The package starts Pending, unassigned and not deleted, with a freshly
// generated tracking code.
//
// Example:
//
//	details, _ := parcel.NewDetails("Books", 2.5, "30x20x10", "1 Pickup St", "9 Delivery Ave")
//	pkg, err := parcel.NewPackage(customer.ID(), details, time.Now().UTC())
//	if err != nil {
//	    // Handle validation error
//	}
func NewPackage(ownerID kernel.UUID, details Details, now time.Time) (*Package, error) {
	pkg := &Package{
		id:            kernel.NewUUID(),
		trackingCode:  kernel.NewTrackingCode(),
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		pkg.setOwner(ownerID),
		pkg.setDetails(details),
	); err != nil {
		return nil, err
	}

	return pkg, nil
}

// RestorePackage rebuilds a package from persisted state. Every field is
// validated again; deletedAt must be set exactly when isDeleted is true.
func RestorePackage(
	id kernel.UUID,
	trackingCode kernel.TrackingCode,
	ownerID kernel.UUID,
	courierID *kernel.UUID,
	details Details,
	status Status,
	isDeleted bool,
	deletedAt *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) (*Package, error) {
	pkg := &Package{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	var courierErr error
	if courierID != nil {
		courierErr = courierID.Validate()
	}

	var deletedErr error
	if isDeleted != (deletedAt != nil) {
		deletedErr = errs.NewValueIsInvalidErrorWithCause(
			"deleted_at",
			fmt.Errorf("is_deleted=%t does not match deleted_at presence", isDeleted),
		)
	}

	if err := errors.Join(
		id.Validate(),
		trackingCode.Validate(),
		pkg.setOwner(ownerID),
		courierErr,
		pkg.setDetails(details),
		status.Validate(),
		deletedErr,
	); err != nil {
		return nil, err
	}

	pkg.id = id
	pkg.trackingCode = trackingCode
	pkg.courierID = copyID(courierID)
	pkg.status = status
	pkg.isDeleted = isDeleted
	if deletedAt != nil {
		at := *deletedAt
		pkg.deletedAt = &at
	}

	return pkg, nil
}

// Validate ensures the Package instance was properly constructed.
func (p *Package) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPackageIsNotConstructed
	}

	return nil
}

// IsEqual compares two packages by their identifiers.
func (p *Package) IsEqual(other *Package) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the internal identifier.
func (p *Package) ID() kernel.UUID {
	return p.id
}

// TrackingCode returns the public tracking code.
func (p *Package) TrackingCode() kernel.TrackingCode {
	return p.trackingCode
}

// Owner returns the identifier of the customer who registered the package.
func (p *Package) Owner() kernel.UUID {
	return p.ownerID
}

// Courier returns the assigned courier's ID.
// Returns nil if no courier is assigned.
func (p *Package) Courier() *kernel.UUID {
	return copyID(p.courierID)
}

// Details returns the descriptive fields.
func (p *Package) Details() Details {
	return p.details
}

// Status returns the current lifecycle state.
func (p *Package) Status() Status {
	return p.status
}

// IsDeleted reports whether the package is soft-deleted.
func (p *Package) IsDeleted() bool {
	return p.isDeleted
}

// DeletedAt returns the soft-delete timestamp, nil unless IsDeleted.
func (p *Package) DeletedAt() *time.Time {
	if p.deletedAt == nil {
		return nil
	}
	at := *p.deletedAt
	return &at
}

func (p *Package) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Package) UpdatedAt() time.Time {
	return p.updatedAt
}

// UpdateStatus sets the lifecycle status and produces the matching audit record.
//
// Any valid status may follow any other. The package must not be soft-deleted;
// a deleted package is reported as not found, like on every other path that
// does not special-case deletion.
//
// Parameters:
//   - by: the actor performing the update
//   - status: the new status
//   - note: free-text note stored on the record
//   - at: the mutation timestamp
//
// Returns:
//   - the StatusRecord with status equal to the requested status
//   - error if the status is invalid or the package is deleted; the package is unchanged then
func (p *Package) UpdateStatus(by kernel.UUID, status Status, note string, at time.Time) (*StatusRecord, error) {
	if err := p.ensureNotDeleted(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	record, err := NewStatusRecord(p.id, status, note, &by, at)
	if err != nil {
		return nil, err
	}

	p.status = status
	p.updatedAt = at
	return record, nil
}

// AssignCourier sets (or replaces) the courier of the package. The status is
// left unchanged; the produced record repeats the current status with an
// assignment note.
func (p *Package) AssignCourier(by kernel.UUID, courierID kernel.UUID, at time.Time) (*StatusRecord, error) {
	if err := p.ensureNotDeleted(); err != nil {
		return nil, err
	}
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	record, err := NewStatusRecord(p.id, p.status, fmt.Sprintf("assigned to courier %s", courierID), &by, at)
	if err != nil {
		return nil, err
	}

	p.courierID = &courierID
	p.updatedAt = at
	return record, nil
}

// SoftDelete hides the package from default views. Deleting an already
// deleted package refreshes deletedAt and still produces a record, so the
// audit trail shows every request.
func (p *Package) SoftDelete(by kernel.UUID, at time.Time) (*StatusRecord, error) {
	record, err := NewStatusRecord(p.id, p.status, noteSoftDeleted, &by, at)
	if err != nil {
		return nil, err
	}

	deletedAt := at
	p.isDeleted = true
	p.deletedAt = &deletedAt
	p.updatedAt = at
	return record, nil
}

// Restore brings a soft-deleted package back into default views.
func (p *Package) Restore(by kernel.UUID, at time.Time) (*StatusRecord, error) {
	record, err := NewStatusRecord(p.id, p.status, noteRestored, &by, at)
	if err != nil {
		return nil, err
	}

	p.isDeleted = false
	p.deletedAt = nil
	p.updatedAt = at
	return record, nil
}

func (p *Package) ensureNotDeleted() error {
	if p.isDeleted {
		return errs.NewObjectNotFoundError("package", p.id.String())
	}
	return nil
}

func (p *Package) setOwner(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	p.ownerID = ownerID
	return nil
}

func (p *Package) setDetails(details Details) error {
	if err := details.Validate(); err != nil {
		return err
	}
	p.details = details
	return nil
}

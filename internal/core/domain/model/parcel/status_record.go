package parcel

import (
	"errors"
	"time"

	"tracker/internal/core/domain/model/kernel"
)

// ErrStatusRecordIsNotConstructed is returned when a StatusRecord was not created
// through NewStatusRecord or RestoreStatusRecord.
var ErrStatusRecordIsNotConstructed = errors.New("StatusRecord must be created via NewStatusRecord constructor")

// StatusRecord is one entry of a package's audit trail. It captures the
// status at the time of a status-affecting mutation, a free-text note and the
// actor who caused it.
//
// Records are immutable and append-only. The actor reference is nullable so
// a record survives the removal of the actor who wrote it.
type StatusRecord struct {
	id        kernel.UUID
	packageID kernel.UUID
	status    Status
	note      string
	actorID   *kernel.UUID
	createdAt time.Time

	isConstructed bool
}

// NewStatusRecord creates a fresh audit entry with a new identifier.
func NewStatusRecord(
	packageID kernel.UUID,
	status Status,
	note string,
	actorID *kernel.UUID,
	createdAt time.Time,
) (*StatusRecord, error) {
	return RestoreStatusRecord(kernel.NewUUID(), packageID, status, note, actorID, createdAt)
}

// RestoreStatusRecord rebuilds a record read back from storage.
func RestoreStatusRecord(
	id kernel.UUID,
	packageID kernel.UUID,
	status Status,
	note string,
	actorID *kernel.UUID,
	createdAt time.Time,
) (*StatusRecord, error) {
	var actorErr error
	if actorID != nil {
		actorErr = actorID.Validate()
	}

	if err := errors.Join(
		id.Validate(),
		packageID.Validate(),
		status.Validate(),
		actorErr,
	); err != nil {
		return nil, err
	}

	return &StatusRecord{
		id:            id,
		packageID:     packageID,
		status:        status,
		note:          note,
		actorID:       copyID(actorID),
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the record was built by one of its constructors.
func (r *StatusRecord) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrStatusRecordIsNotConstructed
	}
	return nil
}

func (r *StatusRecord) ID() kernel.UUID {
	return r.id
}

func (r *StatusRecord) PackageID() kernel.UUID {
	return r.packageID
}

func (r *StatusRecord) Status() Status {
	return r.status
}

func (r *StatusRecord) Note() string {
	return r.note
}

// ActorID returns the actor who caused the record, or nil when unknown.
func (r *StatusRecord) ActorID() *kernel.UUID {
	return copyID(r.actorID)
}

func (r *StatusRecord) CreatedAt() time.Time {
	return r.createdAt
}

func copyID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

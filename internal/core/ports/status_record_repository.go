package ports

import (
	"context"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"
)

// StatusRecordRepository is the append-only store of the package audit trail.
type StatusRecordRepository interface {
	// Add appends a record. Records are never updated or removed.
	Add(ctx context.Context, record *parcel.StatusRecord) error

	// ListByPackage returns every record of a package, newest first.
	// An unknown package yields an empty slice.
	ListByPackage(ctx context.Context, packageID kernel.UUID) ([]*parcel.StatusRecord, error)
}

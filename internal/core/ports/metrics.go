package ports

import (
	"tracker/internal/core/domain/model/parcel"
)

// LifecycleMetrics receives lifecycle events once they are committed.
type LifecycleMetrics interface {
	// PackageMutated counts a committed operation, e.g. "create" or "soft_delete".
	PackageMutated(operation string)

	// StatusRecorded counts a status record appended with status.
	StatusRecorded(status parcel.Status)

	// SetPackagesByStatus publishes the current number of live packages per status.
	SetPackagesByStatus(counts map[parcel.Status]int)
}

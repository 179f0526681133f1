package commands

import (
	"time"

	"tracker/internal/pkg/errs"
)

// Operation labels reported to LifecycleMetrics and used in persistence errors.
const (
	OperationCreate        = "create"
	OperationUpdateStatus  = "update_status"
	OperationAssignCourier = "assign_courier"
	OperationSoftDelete    = "soft_delete"
	OperationRestore       = "restore"
)

// persistenceFailure keeps domain kinds (not found, validation, permission)
// as they are and reports anything else from the store as a persistence failure.
func persistenceFailure(operation string, err error) error {
	if err == nil || errs.HasKind(err) {
		return err
	}
	return errs.NewPersistenceFailureError(operation, err)
}

func now() time.Time {
	return time.Now().UTC()
}

// Package queries contains the read operations of the tracking service.
// Handlers read through the repository ports outside of any unit of work.
package queries

import (
	"tracker/internal/pkg/errs"
)

func storeError(operation string, err error) error {
	if err == nil || errs.HasKind(err) {
		return err
	}
	return errs.NewPersistenceFailureError(operation, err)
}

package queries

import (
	"context"
	"errors"

	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/guard"
)

var ErrCountPackagesByStatusQueryIsNotConstructed = errors.New(
	"CountPackagesByStatusQuery must be created via NewCountPackagesByStatusQuery constructor",
)

// CountPackagesByStatusQuery counts live packages per status. It is an
// internal read used by the operations gauge, not exposed to actors.
type CountPackagesByStatusQuery struct {
	guard guard.ConstructorGuard
}

func NewCountPackagesByStatusQuery() CountPackagesByStatusQuery {
	return CountPackagesByStatusQuery{guard: guard.NewConstructorGuard()}
}

func (q CountPackagesByStatusQuery) Validate() error {
	return q.guard.Validate(ErrCountPackagesByStatusQueryIsNotConstructed)
}

type CountPackagesByStatusQueryHandler struct {
	packages ports.PackageRepository
}

func NewCountPackagesByStatusQueryHandler(packages ports.PackageRepository) CountPackagesByStatusQueryHandler {
	return CountPackagesByStatusQueryHandler{packages: packages}
}

// Handle returns a count for every status, zero included.
func (h CountPackagesByStatusQueryHandler) Handle(
	ctx context.Context,
	query CountPackagesByStatusQuery,
) (map[parcel.Status]int, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	counts, err := h.packages.CountByStatus(ctx)
	if err != nil {
		return nil, storeError("count packages", err)
	}

	result := make(map[parcel.Status]int, len(parcel.Statuses()))
	for _, status := range parcel.Statuses() {
		result[status] = counts[status]
	}
	return result, nil
}

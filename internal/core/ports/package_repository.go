// Package ports defines the contracts between the tracking core and its
// infrastructure: persistence, identity, caching and metrics.
package ports

import (
	"context"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/core/domain/services"
)

// PackageRepository defines the persistence contract for package aggregates.
//
// Get and GetByTrackingCode never return soft-deleted packages; a deleted
// package is reported as not found. GetIncludingDeleted is the one lookup
// that sees deleted packages.
type PackageRepository interface {
	// Add persists a new package. A tracking code collision is reported as a
	// persistence failure.
	Add(ctx context.Context, pkg *parcel.Package) error

	// Update persists changes to an existing package, deleted or not.
	Update(ctx context.Context, pkg *parcel.Package) error

	// Get retrieves a live package by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Package, error)

	// GetIncludingDeleted retrieves a package by its identifier whatever its deletion state.
	GetIncludingDeleted(ctx context.Context, id kernel.UUID) (*parcel.Package, error)

	// GetByTrackingCode retrieves a live package by its public tracking code.
	GetByTrackingCode(ctx context.Context, code kernel.TrackingCode) (*parcel.Package, error)

	// Filter returns the packages matching scope, narrowed and ordered by opts.
	// An empty scope yields an empty slice without touching the store.
	//
	// Example:
	//   scope := services.ScopeFor(caller, false)
	//   packages, err := repo.Filter(ctx, scope, ports.ListOptions{Search: "books"})
	Filter(ctx context.Context, scope services.Scope, opts ListOptions) ([]*parcel.Package, error)

	// CountByStatus returns the number of live packages per status. Every
	// status is present in the result, with zero when no package has it.
	CountByStatus(ctx context.Context) (map[parcel.Status]int, error)
}

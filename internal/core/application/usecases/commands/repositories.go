// Package commands contains the lifecycle operations that modify packages.
// Every handler follows the same shape: validate the command, open a unit of
// work, load the package, authorize, mutate, persist the package together
// with its status record, commit.
package commands

import (
	"context"

	"tracker/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// PackageRepoFactory provides access to the package repository within a transaction.
	PackageRepoFactory interface {
		PackageRepository() ports.PackageRepository
	}

	// StatusRecordRepoFactory provides access to the status record repository within a transaction.
	StatusRecordRepoFactory interface {
		StatusRecordRepository() ports.StatusRecordRepository
	}

	// UoW groups the package change and its status record in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   packages := uow.PackageRepository()
	//   records := uow.StatusRecordRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		PackageRepoFactory
		StatusRecordRepoFactory
	}

	// UoWFactory creates new unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)

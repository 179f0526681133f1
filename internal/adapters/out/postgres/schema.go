package postgres

import (
	"tracker/internal/adapters/out/postgres/packagerepo"
	"tracker/internal/adapters/out/postgres/statusrecordrepo"
	"tracker/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the packages and status_records tables.
// It is meant for development and tests; production schemas are managed
// outside of the service.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&packagerepo.PackageDTO{}, &statusrecordrepo.StatusRecordDTO{})
}

// NewReadRepositories returns repositories bound to the plain connection,
// for query handlers that read outside of any unit of work.
func NewReadRepositories(db *gorm.DB) (*packagerepo.GormPackageRepository, *statusrecordrepo.GormStatusRecordRepository) {
	return packagerepo.NewGormPackageRepository(db, discardTracker{}), statusrecordrepo.NewGormStatusRecordRepository(db)
}

type discardTracker struct{}

func (discardTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// Package statusrecordrepo stores the append-only package audit trail.
package statusrecordrepo

import (
	"context"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormStatusRecordRepository struct {
	db *gorm.DB
}

func NewGormStatusRecordRepository(db *gorm.DB) *GormStatusRecordRepository {
	return &GormStatusRecordRepository{db: db}
}

func (r *GormStatusRecordRepository) Add(ctx context.Context, record *parcel.StatusRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error
}

func (r *GormStatusRecordRepository) ListByPackage(
	ctx context.Context,
	packageID kernel.UUID,
) ([]*parcel.StatusRecord, error) {
	if err := packageID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StatusRecordDTO
	err := r.db.WithContext(ctx).
		Where("package_id = ?", packageID.Bytes()).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*parcel.StatusRecord, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

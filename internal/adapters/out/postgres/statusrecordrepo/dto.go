package statusrecordrepo

import (
	"time"

	"tracker/internal/adapters/out/postgres/packagerepo"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// StatusRecordDTO is the row layout of the status_records table. Package is
// only declared so that AutoMigrate creates the foreign key; it is never loaded.
type StatusRecordDTO struct {
	ID        uuid.UUID              `gorm:"type:uuid;primaryKey"`
	PackageID uuid.UUID              `gorm:"type:uuid;not null;index:idx_status_records_package_created,priority:1"`
	Package   packagerepo.PackageDTO `gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE"`
	Status    string                 `gorm:"size:20;not null"`
	Note      string                 `gorm:"type:text;not null;default:''"`
	ActorID   *uuid.UUID             `gorm:"type:uuid"`
	CreatedAt time.Time              `gorm:"autoCreateTime:false;not null;index:idx_status_records_package_created,priority:2,sort:desc"`
}

func (StatusRecordDTO) TableName() string {
	return "status_records"
}

func fromDomain(record *parcel.StatusRecord) StatusRecordDTO {
	var actorID *uuid.UUID
	if id := record.ActorID(); id != nil {
		raw := id.Bytes()
		actorID = &raw
	}

	return StatusRecordDTO{
		ID:        record.ID().Bytes(),
		PackageID: record.PackageID().Bytes(),
		Status:    record.Status().String(),
		Note:      record.Note(),
		ActorID:   actorID,
		CreatedAt: record.CreatedAt(),
	}
}

func toDomain(dto StatusRecordDTO) (*parcel.StatusRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	packageID, err := kernel.UUIDFromBytes(dto.PackageID[:])
	if err != nil {
		return nil, err
	}

	var actorID *kernel.UUID
	if dto.ActorID != nil {
		aID, actorErr := kernel.UUIDFromBytes((*dto.ActorID)[:])
		if actorErr != nil {
			return nil, actorErr
		}
		actorID = &aID
	}

	status, err := parcel.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return parcel.RestoreStatusRecord(id, packageID, status, dto.Note, actorID, dto.CreatedAt)
}

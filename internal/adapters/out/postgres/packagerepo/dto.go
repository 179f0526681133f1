package packagerepo

import (
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// PackageDTO is the row layout of the packages table. Timestamps are owned by
// the domain, so GORM's automatic tracking is disabled on them.
type PackageDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingNumber  string     `gorm:"size:20;not null;uniqueIndex"`
	OwnerID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	CourierID       *uuid.UUID `gorm:"type:uuid;index"`
	Description     string     `gorm:"type:text;not null"`
	Weight          float64    `gorm:"type:numeric(6,2);not null"`
	Dimensions      string     `gorm:"size:50;not null"`
	PickupAddress   string     `gorm:"type:text;not null"`
	DeliveryAddress string     `gorm:"type:text;not null"`
	Status          string     `gorm:"size:20;not null;index"`
	IsDeleted       bool       `gorm:"not null;default:false;index"`
	DeletedAt       *time.Time
	CreatedAt       time.Time `gorm:"autoCreateTime:false;not null;index"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime:false;not null"`
}

func (PackageDTO) TableName() string {
	return "packages"
}

func fromDomain(pkg *parcel.Package) PackageDTO {
	var courierID *uuid.UUID
	if id := pkg.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	details := pkg.Details()
	return PackageDTO{
		ID:              pkg.ID().Bytes(),
		TrackingNumber:  pkg.TrackingCode().String(),
		OwnerID:         pkg.Owner().Bytes(),
		CourierID:       courierID,
		Description:     details.Description(),
		Weight:          details.Weight(),
		Dimensions:      details.Dimensions(),
		PickupAddress:   details.PickupAddress(),
		DeliveryAddress: details.DeliveryAddress(),
		Status:          pkg.Status().String(),
		IsDeleted:       pkg.IsDeleted(),
		DeletedAt:       pkg.DeletedAt(),
		CreatedAt:       pkg.CreatedAt(),
		UpdatedAt:       pkg.UpdatedAt(),
	}
}

func toDomain(dto PackageDTO) (*parcel.Package, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	code, err := kernel.ParseTrackingCode(dto.TrackingNumber)
	if err != nil {
		return nil, err
	}

	details, err := parcel.NewDetails(
		dto.Description,
		dto.Weight,
		dto.Dimensions,
		dto.PickupAddress,
		dto.DeliveryAddress,
	)
	if err != nil {
		return nil, err
	}

	status, err := parcel.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return parcel.RestorePackage(
		id,
		code,
		ownerID,
		courierID,
		details,
		status,
		dto.IsDeleted,
		dto.DeletedAt,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

package http

import (
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func toPackage(pkg *parcel.Package, history []*parcel.StatusRecord) Package {
	details := pkg.Details()

	response := Package{
		Id:              pkg.ID().Bytes(),
		TrackingNumber:  pkg.TrackingCode().String(),
		Customer:        pkg.Owner().Bytes(),
		Courier:         toOptionalID(pkg.Courier()),
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
	if history != nil {
		response.StatusUpdates = toStatusUpdates(history)
	}

	return response
}

func toPackages(packages []*parcel.Package) []Package {
	response := make([]Package, len(packages))
	for i, pkg := range packages {
		response[i] = toPackage(pkg, nil)
	}
	return response
}

func toStatusUpdate(record *parcel.StatusRecord) StatusUpdate {
	return StatusUpdate{
		Id:        record.ID().Bytes(),
		Status:    record.Status().String(),
		Notes:     record.Note(),
		UpdatedBy: toOptionalID(record.ActorID()),
		CreatedAt: record.CreatedAt(),
	}
}

func toStatusUpdates(records []*parcel.StatusRecord) []StatusUpdate {
	response := make([]StatusUpdate, len(records))
	for i, record := range records {
		response[i] = toStatusUpdate(record)
	}
	return response
}

func toOptionalID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	googleUUID := id.Bytes()
	return &googleUUID
}

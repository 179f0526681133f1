package parcel

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"tracker/internal/pkg/errs"
)

const (
	// MaxWeight is the heaviest package accepted, in kilograms.
	MaxWeight = 999.99

	// MaxDimensionsLength bounds the raw "LxWxH" string.
	MaxDimensionsLength = 50
)

var dimensionsPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)x(\d+(?:\.\d+)?)x(\d+(?:\.\d+)?)$`)

// ErrDetailsAreNotConstructed is returned when Details were not created through NewDetails.
var ErrDetailsAreNotConstructed = errors.New("Details must be created via NewDetails constructor")

// Details holds the descriptive fields of a package. They are captured once
// at creation and are not mutated by any lifecycle operation.
//
// Invariants:
//   - description, pickup and delivery addresses are non-blank
//   - weight is in kilograms, greater than 0, at most MaxWeight, with two decimals at most
//   - dimensions follow the "LxWxH" format in centimetres with three positive numbers
type Details struct {
	description     string
	weight          float64
	dimensions      string
	pickupAddress   string
	deliveryAddress string

	isConstructed bool
}

// NewDetails validates and builds package details. All violations are
// reported at once, joined with errors.Join.
//
// Example:
//
//	details, err := parcel.NewDetails("Books", 2.5, "30x20x10", "1 Pickup St", "9 Delivery Ave")
//	if err != nil {
//	    // Handle validation error
//	}
func NewDetails(
	description string,
	weight float64,
	dimensions string,
	pickupAddress string,
	deliveryAddress string,
) (Details, error) {
	d := Details{isConstructed: true}

	if err := errors.Join(
		d.setDescription(description),
		d.setWeight(weight),
		d.setDimensions(dimensions),
		d.setPickupAddress(pickupAddress),
		d.setDeliveryAddress(deliveryAddress),
	); err != nil {
		return Details{}, err
	}

	return d, nil
}

// Validate ensures the Details were built by NewDetails.
func (d Details) Validate() error {
	if !d.isConstructed {
		return ErrDetailsAreNotConstructed
	}
	return nil
}

// Description returns the free-text description of the contents.
func (d Details) Description() string {
	return d.description
}

// Weight returns the weight in kilograms.
func (d Details) Weight() float64 {
	return d.weight
}

// Dimensions returns the "LxWxH" string in centimetres.
func (d Details) Dimensions() string {
	return d.dimensions
}

// PickupAddress returns the address the courier collects the package from.
func (d Details) PickupAddress() string {
	return d.pickupAddress
}

// DeliveryAddress returns the destination address.
func (d Details) DeliveryAddress() string {
	return d.deliveryAddress
}

func (d *Details) setDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}
	d.description = description
	return nil
}

func (d *Details) setWeight(weight float64) error {
	if math.IsNaN(weight) || weight <= 0 || weight > MaxWeight {
		return errs.NewValueIsOutOfRangeError("weight", weight, 0, MaxWeight)
	}
	if cents := weight * 100; math.Abs(cents-math.Round(cents)) > 1e-6 {
		return errs.NewValueIsInvalidErrorWithCause(
			"weight",
			fmt.Errorf("%v has more than two decimal places", weight),
		)
	}
	d.weight = math.Round(weight*100) / 100
	return nil
}

func (d *Details) setDimensions(dimensions string) error {
	dimensions = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(dimensions), " ", ""))
	if dimensions == "" {
		return errs.NewValueIsRequiredError("dimensions")
	}
	if len(dimensions) > MaxDimensionsLength {
		return errs.NewValueIsOutOfRangeError("dimensions length", len(dimensions), 1, MaxDimensionsLength)
	}

	match := dimensionsPattern.FindStringSubmatch(dimensions)
	if match == nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"dimensions",
			fmt.Errorf("%q is not in LxWxH format", dimensions),
		)
	}
	for _, side := range match[1:] {
		if strings.Trim(side, "0.") == "" {
			return errs.NewValueIsInvalidErrorWithCause(
				"dimensions",
				fmt.Errorf("%q has a zero side", dimensions),
			)
		}
	}

	d.dimensions = dimensions
	return nil
}

func (d *Details) setPickupAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("pickup_address")
	}
	d.pickupAddress = address
	return nil
}

func (d *Details) setDeliveryAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("delivery_address")
	}
	d.deliveryAddress = address
	return nil
}

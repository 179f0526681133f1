package parcel

import (
	"fmt"

	"tracker/internal/pkg/errs"
)

// Status represents the lifecycle state of a package.
//
//	Pending ──> InTransit ──> Delivered
//
// The arrow shows the usual order only. Couriers and admins may set any of
// the three values at any time, including moving a package backwards, so
// Status exposes no transition methods.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of every new package.
	Pending

	// InTransit indicates the package has left the pickup address.
	InTransit

	// Delivered indicates the package reached its delivery address.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		InTransit: "in_transit",
		Delivered: "delivered",
	}
}

// Statuses lists the valid statuses in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, InTransit, Delivered}
}

// ParseStatus converts the wire/storage form ("pending", "in_transit",
// "delivered") into a Status.
//
// Returns:
//   - the matching Status
//   - ValueIsInvalidError for any other input, including "unknown"
func ParseStatus(s string) (Status, error) {
	for _, status := range Statuses() {
		if status.String() == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of Pending, InTransit, Delivered.
func (s Status) Validate() error {
	if s != Pending && s != InTransit && s != Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire/storage form of the status.
// It is safe to call on invalid values, which render as "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

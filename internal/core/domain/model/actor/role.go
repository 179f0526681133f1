package actor

import (
	"fmt"

	"tracker/internal/pkg/errs"
)

// Role tags an actor with the class of operations it may perform.
type Role int

const (
	// Unknown is the role of the anonymous actor and of any unrecognised tag.
	Unknown Role = iota

	// Customer owns packages: creates them and reads its own.
	Customer

	// Courier delivers packages assigned to it and reports their status.
	Courier

	// Admin manages every package, including assignment, soft delete and restore.
	Admin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		Unknown:  "unknown",
		Customer: "customer",
		Courier:  "courier",
		Admin:    "admin",
	}
}

// ParseRole converts the persisted/claimed form of a role ("customer",
// "courier", "admin") into a Role.
func ParseRole(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if role != Unknown && str == s {
			return role, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// String returns the lower case name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Validate rejects Unknown and out of range values.
func (r Role) Validate() error {
	if r != Customer && r != Courier && r != Admin {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

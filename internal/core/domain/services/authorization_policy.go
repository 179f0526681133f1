package services

import (
	"tracker/internal/core/domain/model/actor"
	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/pkg/errs"
)

// Operation names an operation gated by the AuthorizationPolicy.
type Operation int

const (
	OpUnknown Operation = iota
	OpCreate
	OpList
	OpRetrieve
	OpUpdateStatus
	OpAssignCourier
	OpSoftDelete
	OpRestore
	OpListDeleted
	OpUpdate
	OpTrack
)

func getOperationStrings() map[Operation]string {
	return map[Operation]string{
		OpUnknown:       "unknown operation",
		OpCreate:        "create package",
		OpList:          "list packages",
		OpRetrieve:      "retrieve package",
		OpUpdateStatus:  "update status",
		OpAssignCourier: "assign courier",
		OpSoftDelete:    "soft delete package",
		OpRestore:       "restore package",
		OpListDeleted:   "list deleted packages",
		OpUpdate:        "update package",
		OpTrack:         "track package",
	}
}

func (o Operation) String() string {
	if str, ok := getOperationStrings()[o]; ok {
		return str
	}
	return "unknown operation"
}

// Access qualifies a general package update (OpUpdate) by what it touches.
type Access int

const (
	// AccessRead is a read-safe request against the package resource.
	AccessRead Access = iota

	// AccessStatusWrite changes the status only.
	AccessStatusWrite

	// AccessWrite changes any other field.
	AccessWrite
)

// Request is the input of a policy decision. Target is nil for operations
// that are not bound to a single package (create, list, list deleted).
type Request struct {
	Operation Operation
	Access    Access
	Target    *parcel.Package
}

type rule struct {
	operation Operation
	allow     func(a actor.Actor, req Request) bool
}

// AuthorizationPolicy decides whether an actor may perform an operation.
//
// The policy is a single ordered rule table: the first rule matching the
// operation decides, and an operation without a rule is denied. Rules never
// look anything up; resolving the target (and reporting NotFound) happens
// before the policy runs.
//
// Rule table:
//
//	create package              customer
//	list packages               any authenticated actor (results are scoped separately)
//	retrieve package            admin, assigned courier, owning customer
//	update status               admin, assigned courier
//	assign courier              admin
//	soft delete package         admin
//	restore package             admin
//	list deleted packages       admin
//	update package              admin; assigned courier for read or status access;
//	                            owning customer for read access
//	track package               anyone (the projection is decided by TrackView)
//
// Example:
//
//	policy := services.NewAuthorizationPolicy()
//	if err := policy.CanPerform(caller, services.OpUpdateStatus, pkg); err != nil {
//	    return err // *errs.PermissionDeniedError
//	}
type AuthorizationPolicy struct {
	rules []rule
}

// NewAuthorizationPolicy builds the policy with the rule table above.
func NewAuthorizationPolicy() AuthorizationPolicy {
	return AuthorizationPolicy{
		rules: []rule{
			{OpCreate, func(a actor.Actor, _ Request) bool {
				return a.IsCustomer()
			}},
			{OpList, func(a actor.Actor, _ Request) bool {
				return a.IsAuthenticated()
			}},
			{OpRetrieve, func(a actor.Actor, req Request) bool {
				return a.IsAdmin() || isAssignedCourier(a, req.Target) || isOwner(a, req.Target)
			}},
			{OpUpdateStatus, func(a actor.Actor, req Request) bool {
				return a.IsAdmin() || isAssignedCourier(a, req.Target)
			}},
			{OpAssignCourier, adminOnly},
			{OpSoftDelete, adminOnly},
			{OpRestore, adminOnly},
			{OpListDeleted, adminOnly},
			{OpUpdate, func(a actor.Actor, req Request) bool {
				switch {
				case a.IsAdmin():
					return true
				case isAssignedCourier(a, req.Target):
					return req.Access == AccessRead || req.Access == AccessStatusWrite
				case isOwner(a, req.Target):
					return req.Access == AccessRead
				}
				return false
			}},
			{OpTrack, func(actor.Actor, Request) bool {
				return true
			}},
		},
	}
}

// CanPerform is Evaluate for a request without a specific access qualifier.
func (p AuthorizationPolicy) CanPerform(a actor.Actor, op Operation, target *parcel.Package) error {
	return p.Evaluate(a, Request{Operation: op, Target: target})
}

// Evaluate returns nil when the request is allowed and a PermissionDeniedError otherwise.
func (p AuthorizationPolicy) Evaluate(a actor.Actor, req Request) error {
	for _, r := range p.rules {
		if r.operation != req.Operation {
			continue
		}
		if r.allow(a, req) {
			return nil
		}
		break
	}
	return errs.NewPermissionDeniedError(req.Operation.String(), a.String())
}

func adminOnly(a actor.Actor, _ Request) bool {
	return a.IsAdmin()
}

func isAssignedCourier(a actor.Actor, target *parcel.Package) bool {
	return target != nil && a.IsCourier() && a.Is(target.Courier())
}

func isOwner(a actor.Actor, target *parcel.Package) bool {
	if target == nil || !a.IsCustomer() {
		return false
	}
	owner := target.Owner()
	return a.Is(&owner)
}

// View selects the projection returned by a tracking lookup.
type View int

const (
	// ViewReduced exposes tracking code, status, last update and the status
	// history (status and timestamp only).
	ViewReduced View = iota

	// ViewFull exposes the whole package.
	ViewFull
)

// TrackView returns ViewFull for the admin, the assigned courier and the
// owning customer, and ViewReduced for anyone else, including anonymous callers.
func TrackView(a actor.Actor, target *parcel.Package) View {
	if a.IsAdmin() || isAssignedCourier(a, target) || isOwner(a, target) {
		return ViewFull
	}
	return ViewReduced
}

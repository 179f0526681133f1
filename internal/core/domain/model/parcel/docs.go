// Package parcel provides the Package aggregate of the tracking service and
// its append-only status history.
//
// The package includes:
//   - Package: the aggregate root with identity, tracking code, ownership,
//     courier assignment, descriptive details, status and soft-delete state
//   - Status: the three lifecycle states pending, in_transit and delivered
//   - Details: the descriptive fields captured at creation
//   - StatusRecord: an immutable audit entry produced by every status-affecting mutation
//
// Key business rules:
//   - The tracking code is generated exactly once, in NewPackage, and never changes
//   - The owner is set exactly once and never reassigned
//   - Any of the three statuses may follow any other; role gating happens in the
//     authorization policy, not here
//   - A soft-deleted package rejects every mutation except Restore and SoftDelete
//   - Every mutation returns the StatusRecord it produced, so the caller can persist
//     the package and the record in the same unit of work
package parcel

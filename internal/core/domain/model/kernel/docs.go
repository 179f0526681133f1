// Package kernel provides the domain primitives shared by the package tracking model.
//
// The package includes:
//   - UUID: a value object for identifiers of packages, status records and actors
//   - TrackingCode: the public, immutable identifier printed on a package label
//
// Both types are immutable, validate themselves and reject their zero values,
// so they are safe to pass across goroutines and layers.
package kernel

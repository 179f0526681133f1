// Package services provides the domain services of the tracking core: the
// decisions that span an actor and a package rather than belonging to either.
//
// The package includes:
//   - AuthorizationPolicy: a declarative rule table deciding whether an actor may
//     perform an operation on a package
//   - Scope / ScopeFor: the visible-package predicate per actor role, used by
//     listing, searching and the deleted-packages view
//   - TrackView: whether a tracking lookup returns the full package or the
//     reduced projection
package services

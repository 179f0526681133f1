// Package actor models the caller of an operation: an identifier and exactly
// one role out of Customer, Courier and Admin, or the anonymous caller.
//
// Actors are built per request by the identity provider and threaded through
// every command and query explicitly; nothing in the core reads an ambient
// "current user".
package actor

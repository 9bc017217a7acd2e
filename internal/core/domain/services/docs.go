// Package services provides domain services for the order lifecycle.
//
// The package includes:
//   - TransitionValidator: a side-effect-free legality check for status
//     transitions, usable both for instant UI feedback and as the
//     authoritative re-check inside the transition executor's transaction.
//
// Domain services hold logic that does not naturally belong to a single
// aggregate root, following Domain-Driven Design principles.
package services

// Package order contains the order aggregate and the status lifecycle model:
// the canonical status set, the actor roles, the role-tagged transition graph
// and the immutable history entries produced by committed transitions.
//
// The package is pure domain logic with no I/O. The transition graph is
// immutable shared data and safe for concurrent reads; the Order aggregate is
// only ever mutated inside the transition executor's per-order transaction.
package order

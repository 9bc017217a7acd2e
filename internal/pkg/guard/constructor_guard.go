package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller did not
// supply its own construction error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as having passed through its constructor.
// Domain types embed one so that a zero-value struct, which skips the
// constructor's validation, fails Validate instead of flowing into the
// lifecycle as a half-built aggregate.
//
//	type Order struct {
//	    id     kernel.UUID
//	    status Status
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewOrder(id kernel.UUID, status Status) (*Order, error) {
//	    // ... field validation ...
//	    return &Order{id: id, status: status, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (o *Order) Validate() error {
//	    return o.guard.Validate(ErrOrderIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking the enclosing value as
// properly constructed. Call it only from constructors.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed value. For a zero value it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}

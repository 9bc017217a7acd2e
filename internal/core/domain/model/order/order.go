package order

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order represents a marketplace order. It is the aggregate root for the
// status lifecycle: the current status, the timestamp of the last transition
// and the identities the standing checks are evaluated against.
//
// Order follows these invariants:
//   - Must have valid order, customer and restaurant identifiers
//   - status is always a member of the defined status set
//   - statusUpdatedAt records the moment of the last committed transition
//   - Can only be created through NewOrder or RestoreOrder
//
// The aggregate never leaves the boundary of a single request: it is read
// from storage, mutated under the per-order lock and written back within
// one transaction.
type Order struct {
	id kernel.UUID

	// userID is the customer who placed the order.
	userID kernel.UUID

	// restaurantID is the seller fulfilling the order.
	restaurantID kernel.UUID

	// courierID is the assigned courier's ID (nil until a courier claims the order).
	courierID *kernel.UUID

	// status is the current state in the order lifecycle.
	status Status

	// statusUpdatedAt is the timestamp of the last status transition.
	statusUpdatedAt time.Time

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates a new Order instance with validation.
//
// Parameters:
//   - id: unique identifier for the order
//   - userID: the customer placing the order
//   - restaurantID: the restaurant fulfilling the order
//   - awaitingPayment: whether the order starts in pending_payment (true)
//     or directly in placed (false, payment already settled)
//   - createdAt: the creation timestamp, recorded as the first status change
//
// Returns the created order, or a validation error if any parameter is invalid.
func NewOrder(
	id, userID, restaurantID kernel.UUID,
	awaitingPayment bool,
	createdAt time.Time,
) (*Order, error) {
	status := Placed
	if awaitingPayment {
		status = PendingPayment
	}

	return RestoreOrder(id, userID, restaurantID, nil, status, createdAt)
}

// RestoreOrder reconstructs an order from persistence.
// Unlike NewOrder it accepts any valid status and an optional courier,
// validating the combination before returning the aggregate.
func RestoreOrder(
	id, userID, restaurantID kernel.UUID,
	courierID *kernel.UUID,
	status Status,
	statusUpdatedAt time.Time,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setRestaurantID(restaurantID),
		o.setCourierID(courierID),
		o.setStatus(status),
		o.setStatusUpdatedAt(statusUpdatedAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a factory method.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// UserID returns the customer who placed the order.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// RestaurantID returns the restaurant fulfilling the order.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// Courier returns the assigned courier's ID.
// Returns nil if no courier has claimed the order yet.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// StatusUpdatedAt returns the timestamp of the last status transition.
func (o *Order) StatusUpdatedAt() time.Time {
	return o.statusUpdatedAt
}

// HasStanding reports whether the actor has authority over this specific
// order in the given role. This check is independent of the status graph:
//   - admin and system always have standing
//   - a customer must have placed the order
//   - a seller must own the fulfilling restaurant
//   - a courier must be the assigned courier, or the order must be unassigned
func (o *Order) HasStanding(actorID kernel.UUID, role ActorRole) bool {
	switch role {
	case RoleAdmin, RoleSystem:
		return true
	case RoleCustomer:
		return o.userID.IsEqual(actorID)
	case RoleSeller:
		return o.restaurantID.IsEqual(actorID)
	case RoleCourier:
		return o.courierID == nil || o.courierID.IsEqual(actorID)
	}
	return false
}

// ApplyTransition moves the order to newStatus and stamps statusUpdatedAt.
//
// The aggregate only enforces that the target status is a valid member of
// the status set and that the current status is not terminal; whether the
// edge is legal for a given role is the transition validator's concern and
// must be checked before calling this method.
func (o *Order) ApplyTransition(newStatus Status, at time.Time) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return errs.NewInvalidTransitionError(o.status.String(), newStatus.String(), "")
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("at")
	}

	o.status = newStatus
	o.statusUpdatedAt = at
	return nil
}

// AssignCourier claims the order for a courier.
// Returns an error if another courier already holds the order.
func (o *Order) AssignCourier(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.courierID != nil && !o.courierID.IsEqual(courierID) {
		return errs.NewValueIsInvalidError("courierID")
	}

	o.courierID = &courierID
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	return nil
}

func (o *Order) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setCourierID(courierID *kernel.UUID) error {
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return err
		}
	}
	o.courierID = courierID
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setStatusUpdatedAt(t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("statusUpdatedAt")
	}
	o.statusUpdatedAt = t
	return nil
}

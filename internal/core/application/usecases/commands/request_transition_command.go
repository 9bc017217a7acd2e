package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var (
	ErrRequestTransitionCommandIsNotConstructed = errors.New(
		"RequestTransitionCommand must be created via NewRequestTransitionCommand constructor",
	)
	ErrActorIsRequired = errors.New("actor id is required for non-system roles")
)

// RequestTransitionCommand is the ephemeral request to move one order to a
// new status. It is constructed per call, consumed by the transition
// executor and discarded with the response.
//
// The optional expected status is the status the caller last observed; when
// supplied and the freshly locked status differs, the executor fails with a
// conflict instead of validating against a state the caller never saw.
//
// Example:
//
//	cmd, err := NewRequestTransitionCommand(
//	    orderID, order.Preparing, sellerID, order.RoleSeller, "",
//	)
//	if err != nil {
//	    return err
//	}
//	cmd = cmd.WithExpectedStatus(order.Confirmed)
//	result, err := handler.Handle(ctx, cmd)
type RequestTransitionCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	requestedStatus order.Status
	actorID         kernel.UUID
	actorRole       order.ActorRole
	reason          string
	expectedStatus  order.Status

	guard guard.ConstructorGuard
}

// NewRequestTransitionCommand creates a transition request.
//
// The actor id must be valid for customer, seller, courier and admin roles;
// system callers (payment webhooks, sweep jobs) may pass the zero UUID, in
// which case the resulting history entry records no actor.
func NewRequestTransitionCommand(
	orderID kernel.UUID,
	requestedStatus order.Status,
	actorID kernel.UUID,
	actorRole order.ActorRole,
	reason string,
) (RequestTransitionCommand, error) {
	cmd := RequestTransitionCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRequestedStatus(requestedStatus),
		cmd.setActorRole(actorRole),
	); err != nil {
		return RequestTransitionCommand{}, err
	}

	if err := cmd.setActorID(actorID); err != nil {
		return RequestTransitionCommand{}, err
	}

	return cmd, nil
}

// WithExpectedStatus returns a copy of the command carrying the status the
// caller last observed. The executor uses it to distinguish a stale view
// (conflict) from a transition that was never legal.
func (c RequestTransitionCommand) WithExpectedStatus(expected order.Status) RequestTransitionCommand {
	c.expectedStatus = expected
	return c
}

// Validate ensures the command was created through the constructor.
func (c RequestTransitionCommand) Validate() error {
	return c.guard.Validate(ErrRequestTransitionCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c RequestTransitionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RequestedStatus returns the status the actor wants the order moved to.
func (c RequestTransitionCommand) RequestedStatus() order.Status {
	return c.requestedStatus
}

// ActorID returns the acting identity. Zero for anonymous system callers.
func (c RequestTransitionCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the capacity in which the caller acts.
func (c RequestTransitionCommand) ActorRole() order.ActorRole {
	return c.actorRole
}

// Reason returns the justification supplied with the request, if any.
func (c RequestTransitionCommand) Reason() string {
	return c.reason
}

// ExpectedStatus returns the status the caller last observed, or
// order.Unknown when no stale-view check was requested.
func (c RequestTransitionCommand) ExpectedStatus() order.Status {
	return c.expectedStatus
}

// HasExpectedStatus reports whether the caller supplied an observed status.
func (c RequestTransitionCommand) HasExpectedStatus() bool {
	return c.expectedStatus != order.Unknown
}

// HistoryActor returns the identity recorded on the history entry:
// nil for anonymous system-initiated transitions.
func (c RequestTransitionCommand) HistoryActor() *kernel.UUID {
	if c.actorID.Validate() != nil {
		return nil
	}
	actor := c.actorID
	return &actor
}

func (c *RequestTransitionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *RequestTransitionCommand) setRequestedStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.requestedStatus = status
	return nil
}

func (c *RequestTransitionCommand) setActorRole(role order.ActorRole) error {
	if err := role.Validate(); err != nil {
		return err
	}
	c.actorRole = role
	return nil
}

func (c *RequestTransitionCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		if c.actorRole == order.RoleSystem {
			return nil
		}
		return ErrActorIsRequired
	}
	c.actorID = actorID
	return nil
}

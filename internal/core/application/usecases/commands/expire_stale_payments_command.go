package commands

import (
	"errors"
	"time"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrExpireStalePaymentsCommandIsNotConstructed = errors.New(
	"ExpireStalePaymentsCommand must be created via NewExpireStalePaymentsCommand constructor",
)

// ExpireStalePaymentsCommand triggers one sweep cancelling orders that have
// been awaiting payment longer than the time-to-live.
type ExpireStalePaymentsCommand struct {
	ttl time.Duration

	guard guard.ConstructorGuard
}

// NewExpireStalePaymentsCommand creates a command to expire stale payments.
// The TTL must be positive.
func NewExpireStalePaymentsCommand(ttl time.Duration) (ExpireStalePaymentsCommand, error) {
	if ttl <= 0 {
		return ExpireStalePaymentsCommand{}, errs.NewValueIsOutOfRangeError("ttl", ttl, 1, nil)
	}

	return ExpireStalePaymentsCommand{
		ttl:   ttl,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireStalePaymentsCommand) Validate() error {
	return c.guard.Validate(ErrExpireStalePaymentsCommandIsNotConstructed)
}

// TTL returns how long an order may await payment before cancellation.
func (c ExpireStalePaymentsCommand) TTL() time.Duration {
	return c.ttl
}

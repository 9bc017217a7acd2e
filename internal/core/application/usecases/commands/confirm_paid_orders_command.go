package commands

import (
	"errors"

	"orderflow/internal/pkg/guard"
)

var ErrConfirmPaidOrdersCommandIsNotConstructed = errors.New(
	"ConfirmPaidOrdersCommand must be created via NewConfirmPaidOrdersCommand constructor",
)

// ConfirmPaidOrdersCommand triggers one sweep over orders awaiting payment,
// confirming those whose payment has settled.
type ConfirmPaidOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewConfirmPaidOrdersCommand creates a command to sweep paid orders.
func NewConfirmPaidOrdersCommand() ConfirmPaidOrdersCommand {
	return ConfirmPaidOrdersCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPaidOrdersCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaidOrdersCommandIsNotConstructed)
}

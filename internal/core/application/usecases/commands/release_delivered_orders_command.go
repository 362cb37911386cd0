package commands

import (
	"errors"

	"moveline/internal/pkg/guard"
)

var ErrReleaseDeliveredOrdersCommandIsNotConstructed = errors.New(
	"ReleaseDeliveredOrdersCommand must be created via NewReleaseDeliveredOrdersCommand constructor",
)

// ReleaseDeliveredOrdersCommand triggers the automatic release sweep: every
// order sitting in the delivered status is completed and its resources are
// returned to the pools. The background release job issues this command on a
// schedule.
type ReleaseDeliveredOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewReleaseDeliveredOrdersCommand creates a command to release all delivered
// orders.
func NewReleaseDeliveredOrdersCommand() ReleaseDeliveredOrdersCommand {
	return ReleaseDeliveredOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *ReleaseDeliveredOrdersCommand) Validate() error {
	return c.guard.Validate(ErrReleaseDeliveredOrdersCommandIsNotConstructed)
}

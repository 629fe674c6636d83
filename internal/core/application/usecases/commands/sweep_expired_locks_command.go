package commands

import (
	"errors"

	"starmap/internal/pkg/guard"
)

var ErrSweepExpiredLocksCommandIsNotConstructed = errors.New(
	"SweepExpiredLocksCommand must be created via NewSweepExpiredLocksCommand constructor",
)

// SweepExpiredLocksCommand removes claims older than the claim TTL.
// It carries no parameters; the TTL belongs to the coordinator.
type SweepExpiredLocksCommand struct {
	guard guard.ConstructorGuard
}

func NewSweepExpiredLocksCommand() SweepExpiredLocksCommand {
	return SweepExpiredLocksCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c SweepExpiredLocksCommand) Validate() error {
	return c.guard.Validate(ErrSweepExpiredLocksCommandIsNotConstructed)
}

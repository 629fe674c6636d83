package commands

import (
	"errors"
	"fmt"

	"starmap/internal/pkg/errs"
	"starmap/internal/pkg/guard"
)

var ErrReleaseLockCommandIsNotConstructed = errors.New(
	"ReleaseLockCommand must be created via NewReleaseLockCommand constructor",
)

// ReleaseLockCommand asks to drop the processing claim of an order, so that
// the next delivery of a failed order is processed again.
type ReleaseLockCommand struct { //nolint:recvcheck //using for validation
	orderID int64

	guard guard.ConstructorGuard
}

// NewReleaseLockCommand validates that orderID is positive.
func NewReleaseLockCommand(orderID int64) (ReleaseLockCommand, error) {
	if orderID <= 0 {
		return ReleaseLockCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"orderId", fmt.Errorf("%d is not greater than 0", orderID))
	}
	return ReleaseLockCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseLockCommand) Validate() error {
	return c.guard.Validate(ErrReleaseLockCommandIsNotConstructed)
}

// OrderID returns the order whose claim is released.
func (c ReleaseLockCommand) OrderID() int64 {
	return c.orderID
}

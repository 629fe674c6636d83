package commands

import (
	"context"
)

// ReleaseLockCommandHandler drops order claims on operator request.
type ReleaseLockCommandHandler struct {
	releaser ClaimReleaser
}

func NewReleaseLockCommandHandler(releaser ClaimReleaser) ReleaseLockCommandHandler {
	return ReleaseLockCommandHandler{releaser: releaser}
}

// Handle removes the claim. Returns an error wrapping errs.ErrObjectNotFound
// when the order has no claim.
func (h *ReleaseLockCommandHandler) Handle(ctx context.Context, cmd ReleaseLockCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.releaser.Release(ctx, cmd.OrderID())
}

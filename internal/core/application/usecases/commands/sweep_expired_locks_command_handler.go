package commands

import (
	"context"
	"log/slog"
)

// SweepExpiredLocksCommandHandler purges abandoned claims. It is run
// periodically by the lock sweeper job and on demand from the operator CLI.
type SweepExpiredLocksCommandHandler struct {
	sweeper ClaimSweeper
	logger  *slog.Logger
}

func NewSweepExpiredLocksCommandHandler(sweeper ClaimSweeper, logger *slog.Logger) SweepExpiredLocksCommandHandler {
	return SweepExpiredLocksCommandHandler{
		sweeper: sweeper,
		logger:  logger.With("component", "lock_sweeper"),
	}
}

// Handle removes expired claims and returns how many were removed.
func (h *SweepExpiredLocksCommandHandler) Handle(ctx context.Context, cmd SweepExpiredLocksCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	n, err := h.sweeper.SweepExpired(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		h.logger.InfoContext(ctx, "expired claims removed", "count", n)
	}
	return n, nil
}

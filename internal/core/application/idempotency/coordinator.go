// Package idempotency decides, per order, whether a webhook delivery should
// run the pipeline. All coordination goes through the artifact store; the
// process keeps no state between deliveries.
package idempotency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"starmap/internal/core/domain/model/artifact"
	"starmap/internal/core/ports"
	"starmap/internal/pkg/errs"

	"github.com/google/uuid"
)

// DefaultLockTTL is how long a claim blocks other deliveries of the same order.
const DefaultLockTTL = 15 * time.Minute

// Outcome is the result of an acquisition attempt.
type Outcome int

const (
	// Claimed means this delivery owns the order and must process it.
	Claimed Outcome = iota + 1
	// AlreadyDone means a document for the order is already stored.
	AlreadyDone
	// InProgress means another delivery holds a live claim.
	InProgress
)

func (o Outcome) String() string {
	switch o {
	case Claimed:
		return "claimed"
	case AlreadyDone:
		return "already_done"
	case InProgress:
		return "in_progress"
	default:
		return "unknown"
	}
}

// Decision is the outcome of Acquire.
type Decision struct {
	Outcome Outcome
	// ArtifactURL is the stored document when Outcome is AlreadyDone.
	ArtifactURL string
	// Owner identifies the claim when Outcome is Claimed.
	Owner string
}

// Coordinator guarantees that at most one delivery per order runs the
// pipeline at a time, and that a completed order is never processed again.
//
// The claim is a single conditional create of the order's lock object, so two
// concurrent deliveries can never both observe "no lock" and both proceed.
// A claim older than the TTL is treated as abandoned and may be taken over.
//
// Example:
//
//	c := idempotency.NewCoordinator(store, 15*time.Minute, logger)
//	d, err := c.Acquire(ctx, rec.ID())
//	if err != nil {
//	    return err // storage failure, retry later
//	}
//	if d.Outcome != idempotency.Claimed {
//	    return nil
//	}
type Coordinator struct {
	store   ports.ArtifactStore
	lockTTL time.Duration
	logger  *slog.Logger

	now      func() time.Time
	newOwner func() string
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithClock replaces the time source used for claim timestamps and sweeps.
// It should agree with the store's clock.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		c.now = now
	}
}

// NewCoordinator creates a coordinator. A non-positive lockTTL falls back to
// DefaultLockTTL.
func NewCoordinator(
	store ports.ArtifactStore,
	lockTTL time.Duration,
	logger *slog.Logger,
	opts ...Option,
) *Coordinator {
	if lockTTL <= 0 {
		lockTTL = DefaultLockTTL
	}
	c := &Coordinator{
		store:    store,
		lockTTL:  lockTTL,
		logger:   logger.With("component", "idempotency_coordinator"),
		now:      time.Now,
		newOwner: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LockTTL returns the claim lifetime.
func (c *Coordinator) LockTTL() time.Duration {
	return c.lockTTL
}

// Acquire checks for a stored document, then tries to claim the order.
// Any storage error is returned as is; the caller must not proceed on error.
func (c *Coordinator) Acquire(ctx context.Context, orderID int64) (Decision, error) {
	done, err := c.store.List(ctx, artifact.OrderPrefix(orderID), 1)
	if err != nil {
		return Decision{}, fmt.Errorf("check completion of order %d: %w", orderID, err)
	}
	if len(done) > 0 {
		c.logger.InfoContext(ctx, "order already fulfilled", "orderId", orderID, "key", done[0].Key)
		return Decision{Outcome: AlreadyDone, ArtifactURL: done[0].URL}, nil
	}

	lock := artifact.Lock{
		OrderID:   orderID,
		Owner:     c.newOwner(),
		ClaimedAt: c.now().UTC(),
	}
	body, err := lock.Marshal()
	if err != nil {
		return Decision{}, err
	}

	_, err = c.store.Create(ctx, artifact.LockKey(orderID), body, artifact.ContentTypeJSON, c.lockTTL)
	switch {
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		c.logger.InfoContext(ctx, "order is being processed by another delivery", "orderId", orderID)
		return Decision{Outcome: InProgress}, nil
	case err != nil:
		return Decision{}, fmt.Errorf("claim order %d: %w", orderID, err)
	}

	c.logger.InfoContext(ctx, "order claimed", "orderId", orderID, "owner", lock.Owner)
	return Decision{Outcome: Claimed, Owner: lock.Owner}, nil
}

// Release removes the order's claim so a redelivery can process it again.
// Returns an error wrapping errs.ErrObjectNotFound when there is no claim.
func (c *Coordinator) Release(ctx context.Context, orderID int64) error {
	if err := c.store.Delete(ctx, artifact.LockKey(orderID)); err != nil {
		return fmt.Errorf("release order %d: %w", orderID, err)
	}
	c.logger.InfoContext(ctx, "order claim released", "orderId", orderID)
	return nil
}

// SweepExpired removes every claim older than the TTL and reports how many
// were removed.
func (c *Coordinator) SweepExpired(ctx context.Context) (int64, error) {
	n, err := c.store.DeleteExpired(ctx, artifact.LockPrefix, c.now().Add(-c.lockTTL))
	if err != nil {
		return 0, fmt.Errorf("sweep expired claims: %w", err)
	}
	return n, nil
}

// Package commands contains the operations that change system state: running
// the fulfillment pipeline for a webhook delivery and managing order claims.
// Every command is built through its constructor and handled by a matching
// handler with a Handle(ctx, cmd) method.
package commands

import (
	"context"

	"starmap/internal/core/application/idempotency"
	"starmap/internal/core/domain/model/order"
)

// Collaborators the handlers depend on beyond the ports. Each is implemented
// by a domain service or by the idempotency coordinator; the interfaces exist
// so handlers can be tested in isolation.
type (
	// Authenticator verifies webhook signatures.
	Authenticator interface {
		Verify(body []byte, signature string) bool
	}

	// OrderParser reads shop order payloads.
	OrderParser interface {
		OrderID(body []byte) (int64, error)
		Extract(body []byte) (*order.Record, error)
	}

	// OrderClaimer decides whether a delivery may run the pipeline.
	OrderClaimer interface {
		Acquire(ctx context.Context, orderID int64) (idempotency.Decision, error)
	}

	// ClaimReleaser removes a claim on operator request.
	ClaimReleaser interface {
		Release(ctx context.Context, orderID int64) error
	}

	// ClaimSweeper removes abandoned claims.
	ClaimSweeper interface {
		SweepExpired(ctx context.Context) (int64, error)
	}
)

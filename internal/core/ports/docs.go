// Package ports defines the contracts between the fulfillment pipeline and
// the collaborators it drives: geocoding, chart rendering, document rendering,
// artifact storage and notification.
// Adapters under internal/adapters/out implement these interfaces; the
// application layer depends on nothing else.
package ports

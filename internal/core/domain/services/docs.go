// Package services provides the domain services at the inbound edge of the
// fulfillment pipeline.
//
// The package includes:
//   - WebhookAuthenticator: verifies the keyed signature of a raw webhook body
//   - OrderExtractor: turns a loosely typed shop order into a validated order.Record
//
// Both are pure with respect to the rest of the system: they perform no I/O
// besides logging.
package services
